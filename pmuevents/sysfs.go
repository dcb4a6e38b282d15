// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package pmuevents

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// SysFS is a thin, synchronous reader over a filesystem rooted wherever
// the caller chooses — "/sys" in production, a fixture tree in tests.
// There is no caching: every call re-reads the underlying fs.FS, per
// spec.md §4.C ("all reads are one-shot and synchronous; no caching or
// retry").
type SysFS struct {
	fsys fs.FS
}

// NewSysFS wraps fsys for one-shot sysfs-style reads.
func NewSysFS(fsys fs.FS) *SysFS {
	return &SysFS{fsys: fsys}
}

// ReadLine reads the file at path and returns its content truncated at
// the first newline, if any.
func (s *SysFS) ReadLine(path string) (string, error) {
	b, err := fs.ReadFile(s.fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrMissingSysfsNode, path)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	line, _, _ := strings.Cut(string(b), "\n")
	return line, nil
}

// Exists reports whether path exists.
func (s *SysFS) Exists(path string) bool {
	_, err := fs.Stat(s.fsys, path)
	return err == nil
}

// ReadDir lists the entries directly under path, excluding "." and
// "..".
func (s *SysFS) ReadDir(path string) ([]string, error) {
	ents, err := fs.ReadDir(s.fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingSysfsNode, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.Name() == "." || e.Name() == ".." {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
