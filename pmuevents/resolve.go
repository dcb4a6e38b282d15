// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package pmuevents

import "fmt"

// FindEvent scans instance's event list, decompressing each entry
// until one with an exact name match is found. A linear scan is
// acceptable (spec.md §4.F): catalogs are small, hundreds to low
// thousands of events per PMU.
func FindEvent(instance PmuInstance, name string) (Event, error) {
	for _, off := range instance.events {
		ev := instance.catalog.Decompress(off)
		if ev.Name == name {
			return ev, nil
		}
	}
	return Event{}, fmt.Errorf("%w: %q in pmu %q", ErrEventNotFound, name, instance.Name)
}
