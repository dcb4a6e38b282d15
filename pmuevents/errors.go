// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package pmuevents

import "errors"

// Error kinds returned (wrapped) by the fallible operations in this
// package. Callers classify errors with errors.Is.
var (
	// ErrParse means an input string violated one of the textual grammars
	// in ranges.go/assignment.go.
	ErrParse = errors.New("pmuevents: parse error")

	// ErrMissingSysfsNode means a required sysfs file or directory was
	// absent.
	ErrMissingSysfsNode = errors.New("pmuevents: missing sysfs node")

	// ErrIO means a sysfs open/read/list failed for a reason other than
	// the node being absent.
	ErrIO = errors.New("pmuevents: sysfs i/o error")

	// ErrEventNotFound means no event with the requested name exists in
	// a PMU instance's event list.
	ErrEventNotFound = errors.New("pmuevents: event not found")

	// ErrNoApplicableCatalog means no compiled catalog's cpuid pattern
	// matched the requested CPU identifier.
	ErrNoApplicableCatalog = errors.New("pmuevents: no applicable catalog")
)
