// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
	"rsc.io/unnest/rewrite"
)

// DefaultConfigFile is the configuration file read when none is named.
const DefaultConfigFile = ".unnest.yaml"

// A Config controls which files are rewritten and how.
type Config struct {
	// Width is the maximum length of a generated line.
	Width int `yaml:"width"`

	// Namespace and Keyword name the construct to rewrite,
	// as in contextlib.nested.
	Namespace string `yaml:"namespace"`
	Keyword   string `yaml:"keyword"`

	// Extensions lists the file extensions searched for in directories.
	Extensions []string `yaml:"extensions"`

	// Exclude lists directory names never searched.
	Exclude []string `yaml:"exclude"`

	// RemoveUnusedImport drops the import of Namespace or Keyword
	// from rewritten files that no longer use it.
	RemoveUnusedImport bool `yaml:"remove_unused_import"`

	// Jobs is the number of files rewritten at once.
	// Zero means one per CPU.
	Jobs int `yaml:"jobs"`
}

// DefaultConfig returns the configuration used when there is no file.
func DefaultConfig() *Config {
	return &Config{
		Width:              rewrite.DefaultWidth,
		Namespace:          rewrite.DefaultNamespace,
		Keyword:            rewrite.DefaultKeyword,
		Extensions:         []string{".py"},
		Exclude:            []string{".git", ".hg", ".tox", "__pycache__"},
		RemoveUnusedImport: true,
	}
}

// LoadConfig reads the configuration in the named file.
// Settings the file does not mention keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

var isIdent = regexp.MustCompile(`^[\p{L}_][\p{L}\p{Nd}_]*$`)

// Validate reports every problem with c.
func (c *Config) Validate() error {
	var errs []error

	if c.Width <= 0 {
		errs = append(errs, fmt.Errorf("invalid width: %d", c.Width))
	}
	if !isIdent.MatchString(c.Namespace) {
		errs = append(errs, fmt.Errorf("invalid namespace: %q", c.Namespace))
	}
	if !isIdent.MatchString(c.Keyword) {
		errs = append(errs, fmt.Errorf("invalid keyword: %q", c.Keyword))
	}
	if len(c.Extensions) == 0 {
		errs = append(errs, errors.New("must specify at least one extension"))
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Errorf("invalid extension: %q", ext))
		}
	}
	for _, dir := range c.Exclude {
		if dir == "" || strings.ContainsRune(dir, filepath.Separator) {
			errs = append(errs, fmt.Errorf("invalid exclude: %q", dir))
		}
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("invalid jobs: %d", c.Jobs))
	}

	return errors.Join(errs...)
}

func (c *Config) matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (c *Config) excluded(dir string) bool {
	for _, x := range c.Exclude {
		if dir == x {
			return true
		}
	}
	return false
}
