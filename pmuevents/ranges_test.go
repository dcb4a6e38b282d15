// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package pmuevents

import (
	"errors"
	"testing"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		want    Range
		wantErr bool
	}{
		{"5", Range{5, 5}, false},
		{"0", Range{0, 0}, false},
		{"4-7", Range{4, 7}, false},
		{"4-4", Range{4, 4}, false},
		{"", Range{}, true},
		{"N-", Range{}, true},
		{"4-", Range{}, true},
		{"4-7xyz", Range{}, true},
		{"abc", Range{}, true},
		{"-7", Range{}, true},
	}
	for _, tc := range tests {
		got, err := ParseRange(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRange(%q) = %v, want error", tc.in, got)
			} else if !errors.Is(err, ErrParse) {
				t.Errorf("ParseRange(%q) error %v does not wrap ErrParse", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRange(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRange(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseRangeList(t *testing.T) {
	tests := []struct {
		in      string
		want    RangeList
		wantErr bool
	}{
		{"1", RangeList{{1, 1}}, false},
		{"1,7-9", RangeList{{1, 1}, {7, 9}}, false},
		{"0-3,8-11", RangeList{{0, 3}, {8, 11}}, false},
		{"1,7-9,", nil, true}, // stray trailing comma
		{"1,,7-9", nil, true}, // stray consecutive comma
		{"", nil, true},
		{",", nil, true},
	}
	for _, tc := range tests {
		got, err := ParseRangeList(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRangeList(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRangeList(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("ParseRangeList(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("ParseRangeList(%q)[%d] = %v, want %v", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}

func TestRangeListContains(t *testing.T) {
	rl := RangeList{{0, 3}, {8, 11}}
	for n := uint64(0); n <= 15; n++ {
		want := (n <= 3) || (n >= 8 && n <= 11)
		if got := rl.Contains(n); got != want {
			t.Errorf("RangeList{0-3,8-11}.Contains(%d) = %v, want %v", n, got, want)
		}
	}
}
