// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

// A MalformedBindingError reports an as clause whose names cannot be
// paired with the wrapped values. It is fatal for the whole text:
// no partial rewrite is produced.
type MalformedBindingError struct {
	Keys []string
	Vals []string
	Line int

	frame xerrors.Frame
}

func (e *MalformedBindingError) Error() string { return fmt.Sprint(e) }

func (e *MalformedBindingError) Format(s fmt.State, v rune) { xerrors.FormatError(e, s, v) }

func (e *MalformedBindingError) FormatError(p xerrors.Printer) error {
	p.Printf("number of keys and values not matching: %d keys (%s), %d values (%s)",
		len(e.Keys), strings.Join(e.Keys, ", "), len(e.Vals), strings.Join(e.Vals, ", "))
	e.frame.Format(p)
	return nil
}

func (e *MalformedBindingError) line() int { return e.Line }

// An UnterminatedError reports an argument list whose opening
// parenthesis is never closed. The occurrence is left unchanged.
type UnterminatedError struct {
	Offset int // byte offset of the opening parenthesis
	Line   int

	frame xerrors.Frame
}

func (e *UnterminatedError) Error() string { return fmt.Sprint(e) }

func (e *UnterminatedError) Format(s fmt.State, v rune) { xerrors.FormatError(e, s, v) }

func (e *UnterminatedError) FormatError(p xerrors.Printer) error {
	p.Printf("unterminated argument list")
	e.frame.Format(p)
	return nil
}

func (e *UnterminatedError) line() int { return e.Line }

// An EmptyNestedError reports a construct that wraps no values.
// The occurrence is left unchanged.
type EmptyNestedError struct {
	Line int

	frame xerrors.Frame
}

func (e *EmptyNestedError) Error() string { return fmt.Sprint(e) }

func (e *EmptyNestedError) Format(s fmt.State, v rune) { xerrors.FormatError(e, s, v) }

func (e *EmptyNestedError) FormatError(p xerrors.Printer) error {
	p.Printf("no context managers to unnest")
	e.frame.Format(p)
	return nil
}

func (e *EmptyNestedError) line() int { return e.Line }

// A CommentError reports a comment inside the values or names of a
// construct. The occurrence is left unchanged.
type CommentError struct {
	Line int

	frame xerrors.Frame
}

func (e *CommentError) Error() string { return fmt.Sprint(e) }

func (e *CommentError) Format(s fmt.State, v rune) { xerrors.FormatError(e, s, v) }

func (e *CommentError) FormatError(p xerrors.Printer) error {
	p.Printf("comment inside argument list")
	e.frame.Format(p)
	return nil
}

func (e *CommentError) line() int { return e.Line }

// An InlineBodyError reports a construct bound to a single name whose
// body starts on the with line. The occurrence is left unchanged.
type InlineBodyError struct {
	Line int

	frame xerrors.Frame
}

func (e *InlineBodyError) Error() string { return fmt.Sprint(e) }

func (e *InlineBodyError) Format(s fmt.State, v rune) { xerrors.FormatError(e, s, v) }

func (e *InlineBodyError) FormatError(p xerrors.Printer) error {
	p.Printf("body on the with line leaves no room to rebuild the tuple")
	e.frame.Format(p)
	return nil
}

func (e *InlineBodyError) line() int { return e.Line }

// Line returns the source line an error from this package refers to,
// or 0 if it has none.
func Line(err error) int {
	var le interface{ line() int }
	if xerrors.As(err, &le) {
		return le.line()
	}
	return 0
}
