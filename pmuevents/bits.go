// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package pmuevents

import "golang.org/x/sys/unix"

// lowBitsMask returns a mask of the low width bits, for width in [0, 64].
func lowBitsMask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	if width <= 0 {
		return 0
	}
	return (uint64(1) << uint(width)) - 1
}

// ApplyRangeList splices value into target according to layout: ranges
// are walked in list order, each consuming the next `width` low bits of
// the running value and placing them at the range's Start bit of
// target. Leftover high bits of value, once the last range is
// consumed, are silently discarded. Overlapping ranges are not
// detected; later writes in the same call clobber earlier ones.
func ApplyRangeList(layout RangeList, value uint64, target *uint64) {
	for _, r := range layout {
		width := r.Width()
		mask := lowBitsMask(width) << r.Start
		*target = (*target &^ mask) | ((value & lowBitsMask(width)) << r.Start)
		if width >= 64 {
			value = 0
		} else {
			value >>= uint(width)
		}
	}
}

// ApplyToAttr dispatches to the perf_event_attr word named by d.Var and
// splices value into it via ApplyRangeList.
func (d ConfigDef) ApplyToAttr(attr *unix.PerfEventAttr, value uint64) {
	switch d.Var {
	case ConfigWord:
		ApplyRangeList(d.Layout, value, &attr.Config)
	case Config1Word:
		ApplyRangeList(d.Layout, value, &attr.Ext1)
	case Config2Word:
		ApplyRangeList(d.Layout, value, &attr.Ext2)
	}
}
