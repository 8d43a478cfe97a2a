// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"rsc.io/unnest/rewrite"
)

// A Refactor holds the state for an active rewrite
// of the files below a directory.
type Refactor struct {
	Config *Config

	Stdout io.Writer
	Stderr io.Writer

	// Log, if non-nil, receives a line per rewritten file.
	Log *log.Logger

	dir string
}

// New returns a new refactoring rooted at dir (usually ".").
// A nil cfg means DefaultConfig.
func New(dir string, cfg *Config) (*Refactor, error) {
	dir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, err
	}
	dir = filepath.Clean(dir)

	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Refactor{
		Config: cfg,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		dir:    dir,
	}
	return r, nil
}

// Dir returns the directory relative paths are resolved against.
func (r *Refactor) Dir() string {
	return r.dir
}

func (r *Refactor) rewriter() *rewrite.Rewriter {
	return &rewrite.Rewriter{
		Width:     r.Config.Width,
		Namespace: r.Config.Namespace,
		Keyword:   r.Config.Keyword,
	}
}

func (r *Refactor) jobs() int {
	if r.Config.Jobs > 0 {
		return r.Config.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

func (r *Refactor) logf(format string, args ...any) {
	if r.Log != nil {
		r.Log.Printf(format, args...)
	}
}

// Load reads the files named by paths into a new Snapshot.
// A file is always loaded. A directory is searched recursively for files
// with one of the configured extensions, skipping excluded directories.
func (r *Refactor) Load(paths ...string) (*Snapshot, error) {
	seen := make(map[string]bool)
	var names []string
	add := func(path string) {
		name := r.shortPath(path)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.dir, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !info.Mode().IsRegular() {
				return nil, fmt.Errorf("path %q is neither a file nor a directory", r.shortPath(path))
			}
			add(path)
			continue
		}
		root := path
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && r.Config.excluded(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && r.Config.matches(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(names, func(i, j int) bool {
		di, dj := filepath.Dir(names[i]), filepath.Dir(names[j])
		if di != dj {
			return di < dj
		}
		return names[i] < names[j]
	})

	s := &Snapshot{
		r:     r,
		files: make(map[string]*File),
		edits: make(map[string]*Edit),
	}
	for _, name := range names {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.dir, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		s.names = append(s.names, name)
		s.files[name] = &File{Name: name, Path: path, Mode: info.Mode().Perm(), Text: text}
	}
	return s, nil
}

// shortPath returns an absolute or relative name for path, whatever is shorter.
func (r *Refactor) shortPath(path string) string {
	if rel, err := filepath.Rel(r.dir, path); err == nil && len(rel) < len(path) {
		return rel
	}
	return path
}
