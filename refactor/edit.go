// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bytes"
	"fmt"
	"os"

	"rsc.io/unnest/diff"
)

// An Edit is the rewritten text of one file.
type Edit struct {
	Name     string
	File     *File
	OldText  []byte
	NewText  []byte
	Rewrites int
}

func (s *Snapshot) currentBytes(name string) []byte {
	if ed := s.edits[name]; ed != nil {
		return ed.NewText
	}
	if f := s.files[name]; f != nil {
		return f.Text
	}
	return nil
}

func (s *Snapshot) oldBytes(name string) []byte {
	if f := s.files[name]; f != nil {
		return f.Text
	}
	return nil
}

// Diff returns a unified diff of every modified file.
func (s *Snapshot) Diff() ([]byte, error) {
	var diffs []byte
	for _, name := range s.names {
		new := s.currentBytes(name)
		old := s.oldBytes(name)
		if bytes.Equal(old, new) {
			continue
		}
		d, err := diff.Diff("old/"+name, old, "new/"+name, new)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, d...)
	}
	return diffs, nil
}

// Write writes every modified file back to disk, keeping its mode.
func (s *Snapshot) Write() error {
	failed := false
	for _, name := range s.names {
		ed := s.edits[name]
		if ed == nil || bytes.Equal(ed.OldText, ed.NewText) {
			continue
		}
		if err := os.WriteFile(ed.File.Path, ed.NewText, ed.File.Mode); err != nil {
			fmt.Fprintf(s.r.Stderr, "%s\n", err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("errors writing files")
	}
	return nil
}

// Modified returns the names of the files whose text changed.
func (s *Snapshot) Modified() []string {
	var names []string
	for _, name := range s.names {
		if ed := s.edits[name]; ed != nil && !bytes.Equal(ed.OldText, ed.NewText) {
			names = append(names, name)
		}
	}
	return names
}
