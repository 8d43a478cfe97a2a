// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff implements a Diff function that compares two inputs
// line by line and reports the result in unified diff format.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// context is the number of unchanged lines shown around each change.
const context = 3

type line struct {
	op   diffmatchpatch.Operation
	text string
}

// Diff returns the difference between old and new in unified diff format,
// or nil if they are equal.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(string(old), string(new))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var lines []line
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			lines = append(lines, line{d.Type, text})
		}
	}

	// oldAt[k] and newAt[k] count the old and new lines before lines[k].
	oldAt := make([]int, len(lines)+1)
	newAt := make([]int, len(lines)+1)
	for k, l := range lines {
		oldAt[k+1], newAt[k+1] = oldAt[k], newAt[k]
		if l.op != diffmatchpatch.DiffInsert {
			oldAt[k+1]++
		}
		if l.op != diffmatchpatch.DiffDelete {
			newAt[k+1]++
		}
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "diff %s %s\n--- %s\n+++ %s\n", oldName, newName, oldName, newName)
	n := len(lines)
	for i := 0; i < n; {
		for i < n && lines[i].op == diffmatchpatch.DiffEqual {
			i++
		}
		if i == n {
			break
		}
		start := i - context
		if start < 0 {
			start = 0
		}
		j := i
		for {
			for j < n && lines[j].op != diffmatchpatch.DiffEqual {
				j++
			}
			k := j
			for k < n && lines[k].op == diffmatchpatch.DiffEqual {
				k++
			}
			if k < n && k-j <= 2*context {
				j = k
				continue
			}
			break
		}
		end := j + context
		if end > n {
			end = n
		}

		fmt.Fprintf(&out, "@@ -%s +%s @@\n",
			span(oldAt[start], oldAt[end]-oldAt[start]),
			span(newAt[start], newAt[end]-newAt[start]))
		for _, l := range lines[start:end] {
			switch l.op {
			case diffmatchpatch.DiffDelete:
				out.WriteByte('-')
			case diffmatchpatch.DiffInsert:
				out.WriteByte('+')
			default:
				out.WriteByte(' ')
			}
			out.WriteString(l.text)
			if !strings.HasSuffix(l.text, "\n") {
				out.WriteString("\n\\ No newline at end of file\n")
			}
		}
		i = end
	}
	return out.Bytes(), nil
}

// span formats a hunk range the way diff -u does.
func span(before, count int) string {
	switch count {
	case 0:
		return fmt.Sprintf("%d,0", before)
	case 1:
		return fmt.Sprintf("%d", before+1)
	}
	return fmt.Sprintf("%d,%d", before+1, count)
}

func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
