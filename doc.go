// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Unnest rewrites Python programs that use contextlib.nested.
//
// Usage:
//
//	unnest [-diff] [-l] [-v] [-config file] [-width n] [-j n] path...
//
// contextlib.nested was deprecated in Python 2.7 and removed in Python 3,
// which allows several context managers in one with statement instead.
// Unnest finds every use in the named files, and in the files with a
// configured extension (by default .py) below the named directories,
// and rewrites it in place:
//
//	with contextlib.nested(A(), B(), C()):
//	    do_stuff()
//
// becomes
//
//	with A(), B(), C():
//	    do_stuff()
//
// Names bound by a tuple are kept only if the body of the with statement
// uses them:
//
//	with contextlib.nested(A(), B(), C()) as (a, _, c):
//	    do_stuff(a, c)
//
// becomes
//
//	with A() as a, B(), C() as c:
//	    do_stuff(a, c)
//
// A single name bound to the whole tuple is rebuilt from one name
// per context manager:
//
//	with contextlib.nested(A(), B()) as ab:
//	    do_stuff(ab)
//
// becomes
//
//	with A() as v1, B() as v2:
//	    ab = (v1, v2)
//	    do_stuff(ab)
//
// Statements longer than the maximum line length (by default 79) are
// continued with backslashes, and long calls inside them are split
// across lines. When a file no longer uses contextlib after the rewrite,
// its import contextlib line is removed.
//
// By default, unnest writes changes back to the disk.
// The -diff flag causes unnest to print a diff of the intended changes instead.
// The -l flag causes it to print the names of the files that would change.
// The -v flag logs each rewritten file.
//
// A file whose as clause names neither one value per context manager nor a
// single name is reported and left unchanged. A use that cannot be parsed,
// such as one with an unterminated string, is reported as a warning and left
// unchanged; the rest of the file is still rewritten.
//
// # Configuration
//
// Unnest reads .unnest.yaml in the current directory, or the file named
// by -config. Every setting is optional:
//
//	width: 79                  # maximum line length
//	namespace: contextlib      # qualifier of the construct
//	keyword: nested            # name of the construct
//	extensions: [.py]          # files searched for in directories
//	exclude: [.git, .hg, .tox, __pycache__]
//	remove_unused_import: true
//	jobs: 0                    # files rewritten at once; 0 means one per CPU
//
// The -width and -j flags override the file.
package main
