// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"rsc.io/unnest/refactor"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: unnest [-diff] [-l] [-v] [-config file] [-width n] [-j n] path...\n")
	os.Exit(2)
}

// options holds the command-line flags.
type options struct {
	diff    bool
	list    bool
	verbose bool
	config  string
	width   int
	jobs    int
}

func addFlags(f *flag.FlagSet) *options {
	o := new(options)
	f.BoolVar(&o.diff, "diff", false, "show diff instead of writing files")
	f.BoolVar(&o.list, "l", false, "list files that would change instead of writing them")
	f.BoolVar(&o.verbose, "v", false, "log each rewritten file")
	f.StringVar(&o.config, "config", "", "read configuration from `file` (default "+refactor.DefaultConfigFile+")")
	f.IntVar(&o.width, "width", 0, "maximum line length (overrides config)")
	f.IntVar(&o.jobs, "j", 0, "number of files rewritten at once (overrides config)")
	return o
}

func main() {
	log.SetPrefix("unnest: ")
	log.SetFlags(0)

	flag.Usage = usage
	opts := addFlags(flag.CommandLine)
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

	rf, err := newRefactor(".", opts)
	if err != nil {
		log.Fatal(err)
	}
	if opts.verbose {
		rf.Log = log.Default()
	}
	if err := run(rf, opts, flag.Args()); err != nil {
		var u *errUsage
		if errors.As(err, &u) {
			log.Print(err)
			usage()
		}
		log.Fatal(err)
	}
}

// newRefactor returns a Refactor for dir configured by opts.
func newRefactor(dir string, opts *options) (*refactor.Refactor, error) {
	cfg, err := loadConfig(dir, opts.config)
	if err != nil {
		return nil, err
	}
	if opts.width != 0 {
		cfg.Width = opts.width
	}
	if opts.jobs != 0 {
		cfg.Jobs = opts.jobs
	}
	return refactor.New(dir, cfg)
}

// loadConfig reads the named configuration file, or the default one
// if it exists. Relative names are relative to dir.
func loadConfig(dir, file string) (*refactor.Config, error) {
	if file != "" {
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}
		return refactor.LoadConfig(file)
	}
	cfg, err := refactor.LoadConfig(filepath.Join(dir, refactor.DefaultConfigFile))
	if errors.Is(err, fs.ErrNotExist) {
		return refactor.DefaultConfig(), nil
	}
	return cfg, err
}

func run(rf *refactor.Refactor, opts *options, paths []string) error {
	if len(paths) == 0 {
		return newErrUsage("no paths to rewrite")
	}
	if opts.diff && opts.list {
		return newErrUsage("cannot use -diff with -l")
	}

	snap, err := rf.Load(paths...)
	if err != nil {
		return err
	}
	snap.Rewrite()
	if w := snap.Warnings(); w != nil {
		fmt.Fprintf(rf.Stderr, "%v\n", w)
	}

	switch {
	case opts.diff:
		d, err := snap.Diff()
		if err != nil {
			return err
		}
		rf.Stdout.Write(d)
	case opts.list:
		for _, name := range snap.Modified() {
			fmt.Fprintf(rf.Stdout, "%s\n", name)
		}
	default:
		if err := snap.Write(); err != nil {
			return err
		}
	}

	return snap.Err()
}
