// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package pmuevents

import "fmt"

// EventOffset identifies one event within a CatalogSource's storage.
// The compiled catalog this bridges to (tud-zih-energy/pmu-events' own
// generated table) stores events compressed behind such an offset;
// Decompress is the only operation this package needs from it.
type EventOffset int

// Event is a catalog event's metadata: its name, its kernel assignment
// string, and the descriptive fields the upstream JSON definitions
// carry alongside it. Events are immutable, read-only views produced
// by CatalogSource.Decompress.
type Event struct {
	Name     string
	EventStr string // assignment-list string, e.g. "event=0x40,umask=1"

	Desc     string
	Topic    string
	LongDesc string
	Unit     string
	Compat   string

	RetirementLatencyMin  string
	RetirementLatencyMean string
	RetirementLatencyMax  string

	PerPkg     bool
	Deprecated bool
}

// PmuClassSource is one PMU class as the catalog describes it: a name
// and the ordered event offsets that belong to it.
type PmuClassSource struct {
	Name         string
	EventOffsets []EventOffset
}

// CatalogSource is the opaque, read-only interface onto a compiled
// event catalog (spec.md §4.D). It treats catalog storage and
// decompression as a black box: an implementation is free to keep the
// upstream's offset-into-a-compressed-blob scheme or, as EventTable
// does, materialize events eagerly — only the two operations below are
// part of the contract (spec.md §9, "Catalog representation").
type CatalogSource interface {
	// Classes returns every PMU class the catalog knows about, each
	// with its ordered event offsets.
	Classes() []PmuClassSource

	// Decompress looks up the event at off. The operation is
	// infallible: an out-of-range offset is a catalog-generation bug,
	// not a runtime error a caller should expect to handle.
	Decompress(off EventOffset) Event
}

// EventTable is a simple, eagerly-materialized CatalogSource backed by
// a flat slice: EventOffset is an index into it rather than an address
// into a compressed string blob.
type EventTable struct {
	events  []Event
	classes []PmuClassSource
}

// NewEventTable returns an empty, appendable EventTable.
func NewEventTable() *EventTable {
	return &EventTable{}
}

// AddClass registers a PMU class with its events, appending them to the
// table's flat storage and recording their resulting offsets. It
// returns the receiver so calls can be chained.
func (t *EventTable) AddClass(name string, events ...Event) *EventTable {
	offsets := make([]EventOffset, len(events))
	for i, ev := range events {
		offsets[i] = EventOffset(len(t.events))
		t.events = append(t.events, ev)
	}
	t.classes = append(t.classes, PmuClassSource{Name: name, EventOffsets: offsets})
	return t
}

func (t *EventTable) Classes() []PmuClassSource { return t.classes }

func (t *EventTable) Decompress(off EventOffset) Event { return t.events[off] }

// emptyCatalog is what CatalogFor returns when no registered catalog's
// cpuid pattern matches.
var emptyCatalog = NewEventTable()

// CPUIDMatcher decides whether a compiled catalog's cpuid pattern
// applies to a live CPU identification string. The real matching
// algorithm is architecture-specific (spec.md §4.D) and is treated here
// as an opaque, pluggable predicate.
type CPUIDMatcher func(pattern, cpuid string) bool

// ExactCPUIDMatch is the simplest CPUIDMatcher: exact string equality.
func ExactCPUIDMatch(pattern, cpuid string) bool { return pattern == cpuid }

// CompiledCatalog is one architecture's compiled event catalog, keyed
// by a cpuid pattern — the Go-native analog of original_source/'s
// pmu_events_map (arch, cpuid, event_table).
type CompiledCatalog struct {
	Arch  string
	CPUID string
	CatalogSource
}

// CatalogRegistry holds every compiled catalog a program links in and
// resolves catalog_for(cpu_id) against them.
type CatalogRegistry struct {
	catalogs []CompiledCatalog
	matcher  CPUIDMatcher
}

// NewCatalogRegistry returns a registry that matches cpuid patterns
// with matcher. A nil matcher defaults to ExactCPUIDMatch.
func NewCatalogRegistry(matcher CPUIDMatcher) *CatalogRegistry {
	if matcher == nil {
		matcher = ExactCPUIDMatch
	}
	return &CatalogRegistry{matcher: matcher}
}

// Register adds a compiled catalog to the registry.
func (r *CatalogRegistry) Register(c CompiledCatalog) {
	r.catalogs = append(r.catalogs, c)
}

// CatalogFor chooses the catalog whose cpuid pattern matches cpuid, in
// registration order. If none match, it returns an empty catalog — not
// an error — so the core can still operate, producing an empty
// Topology (spec.md §4.D bullet 1).
func (r *CatalogRegistry) CatalogFor(cpuid string) CatalogSource {
	for _, c := range r.catalogs {
		if r.matcher(c.CPUID, cpuid) {
			return c.CatalogSource
		}
	}
	return emptyCatalog
}

// RequireCatalogFor is CatalogFor for callers that would rather fail
// fast than silently discover zero PMU classes: a program built for a
// fixed, known set of architectures can use this to catch a missing
// catalog at startup instead of at topology-inspection time.
func (r *CatalogRegistry) RequireCatalogFor(cpuid string) (CatalogSource, error) {
	for _, c := range r.catalogs {
		if r.matcher(c.CPUID, cpuid) {
			return c.CatalogSource, nil
		}
	}
	return nil, fmt.Errorf("%w: cpuid %q", ErrNoApplicableCatalog, cpuid)
}
