// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edit

import "testing"

func TestEdit(t *testing.T) {
	b := NewBuffer([]byte("0123456789"))
	b.Replace(8, 8, ",7½,")
	b.Replace(9, 10, "the-end")
	b.Replace(10, 10, "!")
	b.Replace(4, 4, "3.14,")
	b.Replace(4, 4, "π,")
	b.Replace(4, 4, "3.15,")
	b.Replace(3, 4, "three,")
	want := "012three,3.14,π,3.15,4567,7½,8the-end!"

	s := b.String()
	if s != want {
		t.Errorf("b.String() = %q, want %q", s, want)
	}
	sb := b.Bytes()
	if string(sb) != want {
		t.Errorf("b.Bytes() = %q, want %q", sb, want)
	}
}

func TestReplaceOriginalOffsets(t *testing.T) {
	b := NewBufferString("with nested(a, b):\n    pass\nwith nested(c):\n")
	b.Replace(28, 43, "with c:")
	b.Replace(0, 18, "with a, b:")
	if got, want := b.String(), "with a, b:\n    pass\nwith c:\n"; got != want {
		t.Errorf("b.String() = %q, want %q", got, want)
	}
}

func TestOverlapPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("overlapping edits did not panic")
		}
	}()
	b := NewBufferString("0123456789")
	b.Replace(2, 5, "x")
	b.Replace(4, 6, "y")
	b.Bytes()
}
