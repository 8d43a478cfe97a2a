// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import "strings"

// maxReflowDepth bounds how deep Reflow descends into nested calls.
const maxReflowDepth = 8

// Reflow splits a line longer than width runes at the arguments
// of its first call, trying layouts in this order:
//
//	long_function(a,
//	              b,
//	              c)
//
//	long_function(
//	    a,
//	    b,
//	    c)
//
//	long_function(
//	    a,
//	    other_long_function(x,
//	                        y),
//	    c)
//
// It returns the first layout whose lines all fit, or line itself
// if none does.
func Reflow(line string, width int) string {
	return reflow(line, width, 0)
}

func reflow(line string, width, depth int) string {
	if runeLen(line) <= width || depth >= maxReflowDepth {
		return line
	}
	before, args, after, err := SplitArgs(line)
	if err != nil || len(args) == 0 {
		return line
	}

	attempt := before + strings.Join(args, ",\n"+strings.Repeat(" ", runeLen(before))) + after
	if fits(attempt, width) {
		return attempt
	}

	indent := leadingSpace(before) + "    "
	attempt = before + "\n" + indent + strings.Join(args, ",\n"+indent) + after
	if fits(attempt, width) {
		return attempt
	}

	lines := strings.Split(attempt, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = reflow(lines[i], width, depth+1)
	}
	attempt = strings.Join(lines, "\n")
	if fits(attempt, width) {
		return attempt
	}

	return line
}
