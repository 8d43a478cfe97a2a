// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/xerrors"
	"rsc.io/unnest/edit"
)

// A Result is the outcome of rewriting one source text.
type Result struct {
	Text     string
	Rewrites int

	// Skipped lists occurrences left unchanged because they
	// could not be parsed, in source order.
	Skipped []error
}

var (
	colonTail = regexp.MustCompile(`^\s*:`)
	asTail    = regexp.MustCompile(`^\s+as\s+`)
	nameTail  = regexp.MustCompile(`^([^\s:][^:\n]*?)\s*:`)
)

func (r *Rewriter) headPattern() *regexp.Regexp {
	return regexp.MustCompile(`(?m)^([ \t]*)with\s+(?:` + regexp.QuoteMeta(r.namespace()) + `\.)?` +
		regexp.QuoteMeta(r.keyword()) + `\s*\(`)
}

// Scan returns content with every occurrence rewritten.
func (r *Rewriter) Scan(content string) (string, error) {
	res, err := r.Rewrite(content)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Rewrite rewrites every occurrence in content.
// Occurrences are located in the original text first and the
// replacements are applied together at the end, so rewriting one
// never moves another.
//
// A *MalformedBindingError aborts the rewrite. Other problems leave
// the occurrence unchanged and are listed in Result.Skipped.
func (r *Rewriter) Rewrite(content string) (*Result, error) {
	occs, skipped := r.find(content)
	res := &Result{Skipped: skipped}
	buf := edit.NewBufferString(content)
	for _, occ := range occs {
		block, err := r.RewriteBlock(occ)
		if err != nil {
			var mb *MalformedBindingError
			if xerrors.As(err, &mb) {
				return nil, err
			}
			res.Skipped = append(res.Skipped, err)
			continue
		}
		buf.Replace(occ.Offset, occ.End, block)
		res.Rewrites++
	}
	if len(res.Skipped) > 1 {
		sortByLine(res.Skipped)
	}
	res.Text = buf.String()
	return res, nil
}

// find locates the occurrences in content.
func (r *Rewriter) find(content string) (occs []*Occurrence, skipped []error) {
	end := 0
	for _, m := range r.headPattern().FindAllStringSubmatchIndex(content, -1) {
		if m[0] < end {
			continue
		}
		open := m[1] - 1
		_, _, after, err := SplitArgs(content[open:])
		if err != nil {
			skipped = append(skipped, &UnterminatedError{
				Offset: open,
				Line:   lineAt(content, m[0]),
				frame:  xerrors.Caller(0),
			})
			continue
		}
		rparen := len(content) - len(after)
		n, keys, ok := parseTail(content[rparen+1:])
		if !ok {
			continue
		}
		occ := &Occurrence{
			Indent:  content[m[2]:m[3]],
			RawArgs: content[open+1 : rparen],
			RawKeys: keys,
			Offset:  m[0],
			End:     rparen + 1 + n,
			Line:    lineAt(content, m[0]),
		}
		occ.Body = bodyOf(content[occ.End:], occ.Indent)
		occs = append(occs, occ)
		end = occ.End
	}
	return occs, skipped
}

// parseTail parses what follows the closing parenthesis:
// an optional as clause and the colon. It returns the length
// of the tail and the key text.
func parseTail(s string) (n int, keys string, ok bool) {
	if m := colonTail.FindStringIndex(s); m != nil {
		return m[1], "", true
	}
	m := asTail.FindStringIndex(s)
	if m == nil {
		return 0, "", false
	}
	n = m[1]
	if strings.HasPrefix(s[n:], "(") {
		_, _, after, err := SplitArgs(s[n:])
		if err != nil {
			return 0, "", false
		}
		rparen := len(s) - len(after)
		c := colonTail.FindStringIndex(s[rparen+1:])
		if c == nil {
			return 0, "", false
		}
		return rparen + 1 + c[1], s[n+1 : rparen], true
	}
	k := nameTail.FindStringSubmatchIndex(s[n:])
	if k == nil {
		return 0, "", false
	}
	return n + k[1], s[n+k[2] : n+k[3]], true
}

// bodyOf returns the body following a with line: the rest of that line
// and every following line that is blank or indented deeper than indent.
func bodyOf(s, indent string) string {
	first, rest, more := strings.Cut(s, "\n")
	lines := []string{first}
	if more {
		for _, line := range strings.Split(rest, "\n") {
			if strings.TrimSpace(line) != "" && !deeper(line, indent) {
				break
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func deeper(line, indent string) bool {
	if !strings.HasPrefix(line, indent) || len(line) == len(indent) {
		return false
	}
	c := line[len(indent)]
	return c == ' ' || c == '\t'
}

func lineAt(s string, off int) int {
	return strings.Count(s[:off], "\n") + 1
}

func sortByLine(errs []error) {
	sort.SliceStable(errs, func(i, j int) bool {
		return Line(errs[i]) < Line(errs[j])
	})
}
