// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"strings"

	"golang.org/x/xerrors"
)

// SplitArgs splits the first parenthesized argument list in s.
//
// For example, given
//
//	   with mock(x, "string", call(), 42) as m:
//
// it returns before = `   with mock(`, args = [x "string" call() 42]
// and after = `) as m:`. The after text begins with the closing parenthesis.
//
// Commas and parentheses inside quoted strings, comments or nested brackets
// do not split arguments, and a trailing comma does not produce an empty
// argument. Comments are kept in the argument text.
// If s has no opening parenthesis, SplitArgs returns s, nil, "" and a nil error.
// If the list is not closed, it returns an *UnterminatedError.
func SplitArgs(s string) (before string, args []string, after string, err error) {
	open := indexOpen(s)
	if open < 0 {
		return s, nil, "", nil
	}
	i := open + 1
	before = s[:i]

	depth := 0
	var q byte
	for j := i; j < len(s); j++ {
		c := s[j]
		switch {
		case q != 0:
			if c == '\\' {
				j++
			} else if c == q {
				q = 0
			}
		case c == '\'' || c == '"':
			q = c
		case c == '#':
			j = endOfComment(s, j) - 1
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
		case c == ')':
			depth--
			if depth < 0 {
				if arg := strings.TrimSpace(s[i:j]); arg != "" {
					args = append(args, arg)
				}
				return before, args, s[j:], nil
			}
		case c == ',' && depth == 0:
			args = append(args, strings.TrimSpace(s[i:j]))
			i = j + 1
		}
	}
	return before, args, "", &UnterminatedError{Offset: open, frame: xerrors.Caller(0)}
}

// indexOpen returns the index of the first '(' in s outside a quoted string
// or comment, or -1.
func indexOpen(s string) int {
	var q byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case q != 0:
			if c == '\\' {
				i++
			} else if c == q {
				q = 0
			}
		case c == '\'' || c == '"':
			q = c
		case c == '#':
			i = endOfComment(s, i) - 1
		case c == '(':
			return i
		}
	}
	return -1
}

// commentIndex returns the index of the first # in s outside a quoted
// string, or -1.
func commentIndex(s string) int {
	var q byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case q != 0:
			if c == '\\' {
				i++
			} else if c == q {
				q = 0
			}
		case c == '\'' || c == '"':
			q = c
		case c == '#':
			return i
		}
	}
	return -1
}

// endOfComment returns the index of the newline ending the comment
// that starts at s[i], or len(s).
func endOfComment(s string, i int) int {
	if n := strings.IndexByte(s[i:], '\n'); n >= 0 {
		return i + n
	}
	return len(s)
}
