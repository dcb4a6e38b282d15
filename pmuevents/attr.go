// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package pmuevents

import (
	"fmt"
	"path"
	"strconv"

	"golang.org/x/sys/unix"
)

// Synthesize fills in attr.Type, attr.Config, attr.Ext1, and attr.Ext2
// for event on instance (spec.md §4.G). The caller must have zeroed
// attr (and set attr.Size, if the kernel ABI in use requires it)
// before calling.
//
// Keys other than "period" are not whitelisted: any key with a
// matching format/<key> sysfs file is accepted, whatever the kernel
// happens to expose. "period" assignments are skipped — sampling
// period is the caller's concern, not a bit-layout field.
//
// On failure, attr may already have partial writes from earlier
// assignments in event's list; Synthesize is not transactional, and
// the caller is expected to discard attr.
func (d *Discoverer) Synthesize(instance PmuInstance, event Event, attr *unix.PerfEventAttr) error {
	typLine, err := d.sysfs.ReadLine(path.Join(d.baseDir, instance.Name, "type"))
	if err != nil {
		return fmt.Errorf("synthesize %q on pmu %q: %w", event.Name, instance.Name, err)
	}
	typ, err := strconv.ParseUint(typLine, 10, 32)
	if err != nil {
		return fmt.Errorf("synthesize %q on pmu %q: %w: type %q: %v", event.Name, instance.Name, ErrParse, typLine, err)
	}
	attr.Type = uint32(typ)

	assignments, err := ParseAssignmentList(event.EventStr)
	if err != nil {
		return fmt.Errorf("synthesize %q on pmu %q: %w", event.Name, instance.Name, err)
	}

	for _, asn := range assignments {
		if asn.Key == "period" {
			continue
		}
		defLine, err := d.sysfs.ReadLine(path.Join(d.baseDir, instance.Name, "format", asn.Key))
		if err != nil {
			return fmt.Errorf("synthesize %q on pmu %q: field %q: %w", event.Name, instance.Name, asn.Key, err)
		}
		def, err := ParseConfigDef(defLine)
		if err != nil {
			return fmt.Errorf("synthesize %q on pmu %q: field %q: %w", event.Name, instance.Name, asn.Key, err)
		}
		def.ApplyToAttr(attr, asn.Value)
	}
	return nil
}
