// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package pmuevents

import (
	"errors"
	"testing"
)

func TestFindEvent(t *testing.T) {
	catalog := NewEventTable().AddClass("default_core",
		Event{Name: "INST_RETIRED", EventStr: "event=0xc0"},
		Event{Name: "CPU_CLK_UNHALTED", EventStr: "event=0x3c"},
	)
	instance := PmuInstance{
		Name:    "cpu",
		CPUs:    RangeList{{0, 7}},
		events:  catalog.Classes()[0].EventOffsets,
		catalog: catalog,
	}

	ev, err := FindEvent(instance, "CPU_CLK_UNHALTED")
	if err != nil {
		t.Fatalf("FindEvent: %v", err)
	}
	if ev.EventStr != "event=0x3c" {
		t.Errorf("FindEvent(CPU_CLK_UNHALTED).EventStr = %q, want %q", ev.EventStr, "event=0x3c")
	}

	_, err = FindEvent(instance, "NO_SUCH_EVENT")
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("FindEvent(missing) error = %v, want ErrEventNotFound", err)
	}
}

func TestFindEventEmptyInstance(t *testing.T) {
	instance := PmuInstance{Name: "cpu", CPUs: RangeList{{0, 0}}, catalog: emptyCatalog}
	_, err := FindEvent(instance, "anything")
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("FindEvent on empty instance error = %v, want ErrEventNotFound", err)
	}
}
