// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package pmuevents

import (
	"math"
	"testing"

	"golang.org/x/sys/unix"
)

func TestApplyRangeList(t *testing.T) {
	tests := []struct {
		name   string
		layout RangeList
		value  uint64
		want   uint64
	}{
		{
			name:   "scattered single bits",
			layout: mustRangeList(t, "1,3,5,7,9"),
			value:  math.MaxUint64,
			want:   0b1010101010,
		},
		{
			name:   "two nibble groups",
			layout: mustRangeList(t, "0-3,8-11"),
			value:  math.MaxUint64,
			want:   0b111100001111,
		},
		{
			name:   "bit splice from worked example",
			layout: mustRangeList(t, "0-3,8-11"),
			value:  0xFF,
			want:   0x0F0F,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var target uint64
			ApplyRangeList(tc.layout, tc.value, &target)
			if target != tc.want {
				t.Errorf("ApplyRangeList(%v, %#x) = %#x, want %#x", tc.layout, tc.value, target, tc.want)
			}
		})
	}
}

func TestApplyRangeListOverwritesLaterRanges(t *testing.T) {
	// Overlapping ranges are not checked for overlap: later writes
	// clobber earlier ones, in list order (spec.md §3 invariants). The
	// first range consumes the low 4 bits (0x5), so the second range
	// receives the next 4 bits of the value, which are 0.
	layout := RangeList{{0, 3}, {0, 3}}
	var target uint64 = 0xF
	ApplyRangeList(layout, 0x5, &target)
	if target != 0 {
		t.Errorf("got %#x, want %#x (second write should win)", target, 0)
	}
}

func TestApplyToAttr(t *testing.T) {
	tests := []struct {
		name   string
		def    ConfigDef
		value  uint64
		want   unix.PerfEventAttr
	}{
		{
			name:  "config1",
			def:   ConfigDef{Config1Word, mustRangeList(t, "1,3,5,7,9")},
			value: math.MaxUint64,
			want:  unix.PerfEventAttr{Ext1: 0b1010101010},
		},
		{
			name:  "config",
			def:   ConfigDef{ConfigWord, mustRangeList(t, "0-3,8-11")},
			value: math.MaxUint64,
			want:  unix.PerfEventAttr{Config: 0b111100001111},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var attr unix.PerfEventAttr
			tc.def.ApplyToAttr(&attr, tc.value)
			if attr != tc.want {
				t.Errorf("got %+v, want %+v", attr, tc.want)
			}
		})
	}
}

func mustRangeList(t *testing.T, s string) RangeList {
	t.Helper()
	rl, err := ParseRangeList(s)
	if err != nil {
		t.Fatalf("ParseRangeList(%q): %v", s, err)
	}
	return rl
}
