// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"fmt"
	"go/token"
	"io/fs"
	"strings"

	"golang.org/x/sync/errgroup"
	"rsc.io/unnest/rewrite"
)

// A Snapshot is a set of loaded files and the edits made to them.
type Snapshot struct {
	r     *Refactor
	names []string // load order
	files map[string]*File
	edits map[string]*Edit

	errors   ErrorList
	warnings ErrorList
}

// A File is a loaded source file.
type File struct {
	Name string // name as shown to the user
	Path string // name for reading and writing
	Mode fs.FileMode
	Text []byte
}

// Files returns the names of the loaded files.
func (s *Snapshot) Files() []string {
	return append([]string(nil), s.names...)
}

// ErrorAt records an error at the given line of the named file.
// Line 0 means the whole file.
func (s *Snapshot) ErrorAt(name string, line int, format string, args ...any) {
	s.errors.Add(newError(name, line, format, args...))
}

// WarnAt records a problem that did not stop the file from being rewritten.
func (s *Snapshot) WarnAt(name string, line int, format string, args ...any) {
	s.warnings.Add(newError(name, line, format, args...))
}

func newError(name string, line int, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	msg = strings.TrimRight(msg, "\n")
	msg = strings.ReplaceAll(msg, "\n", "\n\t")
	return &Error{Pos: token.Position{Filename: name, Line: line}, Msg: msg}
}

// Errors returns the number of errors recorded so far.
func (s *Snapshot) Errors() int {
	return s.errors.Len()
}

// Err returns the recorded errors, or nil if there are none.
func (s *Snapshot) Err() error {
	return s.errors.Err()
}

// Warnings returns the recorded warnings, or nil if there are none.
func (s *Snapshot) Warnings() error {
	return s.warnings.Err()
}

type fileResult struct {
	text     []byte
	rewrites int
	skipped  []error
	err      error
}

// Rewrite rewrites every loaded file, several at a time.
// A file whose rewrite fails is recorded as an error and left unedited;
// the others are unaffected.
func (s *Snapshot) Rewrite() {
	rw := s.r.rewriter()
	results := make([]fileResult, len(s.names))

	var g errgroup.Group
	g.SetLimit(s.r.jobs())
	for i, name := range s.names {
		i, f := i, s.files[name]
		g.Go(func() error {
			results[i] = s.rewriteFile(rw, f)
			return nil
		})
	}
	g.Wait()

	for i, name := range s.names {
		res := results[i]
		for _, err := range res.skipped {
			s.WarnAt(name, rewrite.Line(err), "left unchanged: %v", err)
		}
		if res.err != nil {
			s.ErrorAt(name, rewrite.Line(res.err), "%v", res.err)
			continue
		}
		if res.rewrites == 0 {
			continue
		}
		s.r.logf("%s: %d rewritten", name, res.rewrites)
		f := s.files[name]
		s.edits[name] = &Edit{Name: name, File: f, OldText: f.Text, NewText: res.text, Rewrites: res.rewrites}
	}
}

func (s *Snapshot) rewriteFile(rw *rewrite.Rewriter, f *File) (res fileResult) {
	defer func() {
		if p := recover(); p != nil {
			res = fileResult{err: fmt.Errorf("internal error: %v", p)}
		}
	}()

	r, err := rw.Rewrite(string(f.Text))
	if err != nil {
		return fileResult{err: err}
	}
	text := r.Text
	if r.Rewrites > 0 && s.r.Config.RemoveUnusedImport {
		text = rw.RemoveUnusedImport(text)
	}
	return fileResult{text: []byte(text), rewrites: r.Rewrites, skipped: r.Skipped}
}
