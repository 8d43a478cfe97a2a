// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rewrite rewrites Python source that uses the deprecated
// contextlib.nested construct into multi-item with statements.
//
// Given
//
//	with contextlib.nested(A(), B()) as (a, b):
//	    use(a, b)
//
// Scan produces
//
//	with A() as a, B() as b:
//	    use(a, b)
//
// The rewriter does not parse Python. It tracks only parenthesis depth
// and quoting, which is enough to find top-level commas and the end of
// a call.
package rewrite

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DefaultWidth     = 79
	DefaultNamespace = "contextlib"
	DefaultKeyword   = "nested"
)

// A Rewriter holds the settings for rewriting source text.
// The zero value uses the defaults. A Rewriter is never modified
// by its methods and may be used concurrently.
type Rewriter struct {
	// Width is the maximum length of a generated line, in runes.
	Width int

	// Namespace is the optional qualifier of Keyword, as in contextlib.nested.
	Namespace string

	// Keyword is the name of the deprecated construct.
	Keyword string
}

// Default is the Rewriter used by the package-level functions.
var Default = &Rewriter{}

func (r *Rewriter) width() int {
	if r.Width <= 0 {
		return DefaultWidth
	}
	return r.Width
}

func (r *Rewriter) namespace() string {
	if r.Namespace == "" {
		return DefaultNamespace
	}
	return r.Namespace
}

func (r *Rewriter) keyword() string {
	if r.Keyword == "" {
		return DefaultKeyword
	}
	return r.Keyword
}

// Scan rewrites every occurrence in content using Default.
func Scan(content string) (string, error) {
	return Default.Scan(content)
}

// RemoveUnusedImport drops imports made useless by Scan, using Default.
func RemoveUnusedImport(content string) string {
	return Default.RemoveUnusedImport(content)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// fits reports whether every line of s is at most width runes long.
func fits(s string, width int) bool {
	for _, line := range strings.Split(s, "\n") {
		if runeLen(line) > width {
			return false
		}
	}
	return true
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// wordPattern returns a pattern matching name as a whole word.
func wordPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}
