// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// An Occurrence is one use of the construct found in source text.
type Occurrence struct {
	Indent  string // leading whitespace of the with line
	RawArgs string // text between the construct's parentheses
	RawKeys string // text of the as clause, without parentheses; "" if absent
	Body    string // rest of the with line and the lines indented below it

	Offset int // byte offset of the start of the with line
	End    int // byte offset just past the colon
	Line   int // line number of Offset, starting at 1
}

// A plan says how the wrapped values are bound to names.
type plan int

const (
	unbound      plan = iota // with nested(A(), B()):
	destructured             // with nested(A(), B()) as (a, b):
	singleAlias              // with nested(A(), B()) as ab:
)

var continuation = regexp.MustCompile(`\s*\\?\n\s*`)

// RewriteBlock returns the statement replacing the with line of occ.
// The body is not part of the result.
//
//	with nested(A(), B(), C()):             =>  with A(), B(), C():
//	with nested(A(), B(), C()) as (a, _, c): =>  with A() as a, B(), C() as c:
//	with nested(A(), B()) as ab:            =>  with A() as v1, B() as v2:
//	                                                ab = (v1, v2)
//
// In the second form, names not mentioned in the body are dropped.
// The third form needs the body on lines of its own.
// A value or name list containing a comment is left alone.
func (r *Rewriter) RewriteBlock(occ *Occurrence) (string, error) {
	_, vals, _, err := SplitArgs("(" + occ.RawArgs + ")")
	if err != nil {
		return "", xerrors.Errorf("splitting values: %w", err)
	}
	if len(vals) == 0 {
		return "", &EmptyNestedError{Line: occ.Line, frame: xerrors.Caller(0)}
	}
	if hasComment(vals) {
		return "", &CommentError{Line: occ.Line, frame: xerrors.Caller(0)}
	}
	for i, v := range vals {
		vals[i] = continuation.ReplaceAllString(v, " ")
	}

	keys, alias, p, err := bindings(occ, vals)
	if err != nil {
		return "", err
	}
	if p == singleAlias && inlineBody(occ.Body) {
		return "", &InlineBodyError{Line: occ.Line, frame: xerrors.Caller(0)}
	}

	if p == destructured {
		for i, k := range keys {
			if k != "" && !strings.HasPrefix(k, "(") && !wordPattern(k).MatchString(occ.Body) {
				keys[i] = ""
			}
		}
	}

	clauses := make([]string, len(vals))
	for i, v := range vals {
		if keys[i] != "" {
			v += " as " + keys[i]
		}
		clauses[i] = v
	}

	width := r.width()
	lines := []string{occ.Indent + "with " + strings.Join(clauses, ", ") + ":"}
	if runeLen(lines[0]) > width {
		stmt := occ.Indent + "with " + strings.Join(clauses, ",\\\n"+occ.Indent+"        ") + ":"
		lines = strings.Split(stmt, "\n")
	}
	if p == singleAlias {
		lines = append(lines, occ.Indent+"    "+alias+" = ("+strings.Join(keys, ", ")+")")
	}

	for i, line := range lines {
		lines[i] = Reflow(line, width)
	}
	return strings.Join(lines, "\n"), nil
}

// bindings pairs the as clause of occ with vals. It returns one key
// per value ("" for none) and, for a single alias, the alias name.
func bindings(occ *Occurrence, vals []string) (keys []string, alias string, p plan, err error) {
	keys = make([]string, len(vals))
	if occ.RawKeys == "" {
		return keys, "", unbound, nil
	}
	_, ks, _, err := SplitArgs("(" + occ.RawKeys + ")")
	if err != nil {
		return nil, "", 0, xerrors.Errorf("splitting keys: %w", err)
	}
	if hasComment(ks) {
		return nil, "", 0, &CommentError{Line: occ.Line, frame: xerrors.Caller(0)}
	}
	for i, k := range ks {
		ks[i] = continuation.ReplaceAllString(k, " ")
	}

	switch {
	case len(ks) == len(vals):
		copy(keys, ks)
		return keys, "", destructured, nil
	case len(ks) == 1 && ks[0] == "_":
		return keys, "", unbound, nil
	case len(ks) == 1:
		for i := range keys {
			keys[i] = "v" + strconv.Itoa(i+1)
		}
		return keys, ks[0], singleAlias, nil
	}
	return nil, "", 0, &MalformedBindingError{Keys: ks, Vals: vals, Line: occ.Line, frame: xerrors.Caller(0)}
}

func hasComment(list []string) bool {
	for _, s := range list {
		if commentIndex(s) >= 0 {
			return true
		}
	}
	return false
}

// inlineBody reports whether body has a statement on the with line.
func inlineBody(body string) bool {
	first, _, _ := strings.Cut(body, "\n")
	first = strings.TrimSpace(first)
	return first != "" && !strings.HasPrefix(first, "#")
}
