// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package pmuevents

import (
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/go-logr/logr"
)

// defaultCoreClass is the PMU class name with the privileged discovery
// path described in spec.md §4.E.
const defaultCoreClass = "default_core"

// PmuInstance is one live sysfs PMU: a directory name, the CPUs it
// serves, and a non-owning reference into its class's event list (the
// events slice and catalog are shared across every instance of the
// same class, never copied).
type PmuInstance struct {
	Name string
	CPUs RangeList

	events  []EventOffset
	catalog CatalogSource
}

// PmuClass pairs a catalog class name with its live instances. Only
// classes with at least one instance ever appear in a Topology.
type PmuClass struct {
	Name      string
	Instances []PmuInstance
}

// Topology is the result of discovery: every catalog PMU class that has
// at least one live sysfs instance, in catalog order.
type Topology []PmuClass

// InstanceForCPU returns the instance of the named class serving cpu,
// if any. This is a plain lookup into an already-built Topology (it
// does not re-walk sysfs), added as a Go-native analog of
// original_source/'s per-CPU get_pmu_path_for_cpu helper.
func (t Topology) InstanceForCPU(class string, cpu uint64) (PmuInstance, bool) {
	for _, c := range t {
		if c.Name != class {
			continue
		}
		for _, inst := range c.Instances {
			if inst.CPUs.Contains(cpu) {
				return inst, true
			}
		}
	}
	return PmuInstance{}, false
}

// Discoverer resolves a catalog's PMU classes to their live sysfs
// instances. It holds no global state: the sysfs root and the
// online-CPU-count source are injectable, so tests can point it at a
// fixture tree instead of the real /sys (spec.md §9, "No globals").
// The event device subdirectory is fixed at bus/event_source/devices
// relative to that root.
type Discoverer struct {
	sysfs          *SysFS
	baseDir        string
	onlinePath     string
	onlineCPUCount func() (int, error)
	logger         logr.Logger
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithFS roots the discoverer at fsys instead of the real "/sys".
func WithFS(fsys fs.FS) Option {
	return func(d *Discoverer) { d.sysfs = NewSysFS(fsys) }
}

// WithSysRoot roots the discoverer at the OS directory dir instead of
// "/sys" (a convenience wrapper around WithFS(os.DirFS(dir))).
func WithSysRoot(dir string) Option {
	return func(d *Discoverer) { d.sysfs = NewSysFS(os.DirFS(dir)) }
}

// WithLogger sets the logger used for best-effort discovery failures.
// The default is logr.Discard().
func WithLogger(l logr.Logger) Option {
	return func(d *Discoverer) { d.logger = l }
}

// WithOnlineCPUCount overrides how the discoverer learns the number of
// online CPUs, bypassing /sys/devices/system/cpu/online.
func WithOnlineCPUCount(f func() (int, error)) Option {
	return func(d *Discoverer) { d.onlineCPUCount = f }
}

// NewDiscoverer returns a Discoverer rooted at the real "/sys" unless
// overridden by options.
func NewDiscoverer(opts ...Option) *Discoverer {
	d := &Discoverer{
		sysfs:      NewSysFS(os.DirFS("/sys")),
		baseDir:    "bus/event_source/devices",
		onlinePath: "devices/system/cpu/online",
		logger:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.onlineCPUCount == nil {
		d.onlineCPUCount = d.readOnlineCPUCount
	}
	return d
}

// readOnlineCPUCount reads /sys/devices/system/cpu/online (a RangeList)
// and returns the total number of CPUs it covers. This is the "online
// processor count" spec.md §6 says the core needs; the core never
// needs the individual online CPU numbers, only the count.
func (d *Discoverer) readOnlineCPUCount() (int, error) {
	line, err := d.sysfs.ReadLine(d.onlinePath)
	if err != nil {
		return 0, err
	}
	rl, err := ParseRangeList(line)
	if err != nil {
		return 0, err
	}
	var n uint64
	for _, r := range rl {
		n += r.End - r.Start + 1
	}
	return int(n), nil
}

// Discover builds the Topology for catalog: for every PMU class, it
// resolves live instances and keeps the class only if at least one was
// found. Per-class and per-instance failures are swallowed
// (best-effort enumeration, spec.md §7) and logged at V(1); Discover
// itself never fails.
func (d *Discoverer) Discover(catalog CatalogSource) Topology {
	var topo Topology
	for _, class := range catalog.Classes() {
		instances := d.resolveClass(class, catalog)
		if len(instances) == 0 {
			d.logger.V(1).Info("pmu class has no live instances", "class", class.Name)
			continue
		}
		topo = append(topo, PmuClass{Name: class.Name, Instances: instances})
	}
	return topo
}

func (d *Discoverer) resolveClass(class PmuClassSource, catalog CatalogSource) []PmuInstance {
	entries, err := d.sysfs.ReadDir(d.baseDir)
	if err != nil {
		d.logger.V(1).Info("cannot list pmu device tree", "dir", d.baseDir, "err", err)
		return nil
	}
	if class.Name == defaultCoreClass {
		return d.resolveDefaultCore(entries, class, catalog)
	}
	return d.resolveNamedClass(class, entries, catalog)
}

// resolveDefaultCore implements spec.md §4.E case 1: a "cpu" directory,
// if present, is authoritative and short-circuits the search with a
// single instance owning all online CPUs; otherwise every sibling
// directory with a parseable "cpus" file becomes its own instance.
func (d *Discoverer) resolveDefaultCore(entries []string, class PmuClassSource, catalog CatalogSource) []PmuInstance {
	var instances []PmuInstance
	for _, name := range entries {
		if name == "cpu" {
			n, err := d.onlineCPUCount()
			if err != nil || n <= 0 {
				d.logger.V(1).Info("cannot determine online cpu count for default_core", "err", err, "n", n)
				return nil
			}
			return []PmuInstance{{
				Name:    "cpu",
				CPUs:    contiguousRange(n),
				events:  class.EventOffsets,
				catalog: catalog,
			}}
		}
		line, err := d.sysfs.ReadLine(path.Join(d.baseDir, name, "cpus"))
		if err != nil {
			d.logger.V(1).Info("skipping default_core candidate with no cpus file", "instance", name, "err", err)
			continue
		}
		rl, err := ParseRangeList(line)
		if err != nil {
			d.logger.V(1).Info("skipping default_core candidate with unparseable cpus file", "instance", name, "err", err)
			continue
		}
		instances = append(instances, PmuInstance{Name: name, CPUs: rl, events: class.EventOffsets, catalog: catalog})
	}
	return instances
}

// resolveNamedClass implements spec.md §4.E case 2: a live instance's
// directory name must either equal the class name exactly (the sole
// unnumbered instance) or be "<class>_<N>" for a non-empty decimal N.
// Anything else, including an unrelated class sharing a prefix (e.g.
// "foobar_0" for class "foo"), is rejected.
func (d *Discoverer) resolveNamedClass(class PmuClassSource, entries []string, catalog CatalogSource) []PmuInstance {
	var instances []PmuInstance
	for _, name := range entries {
		if !strings.HasPrefix(name, class.Name) {
			continue
		}
		if len(name) != len(class.Name) {
			suffix := name[len(class.Name):]
			if !strings.HasPrefix(suffix, "_") {
				continue
			}
			num := suffix[1:]
			if num == "" || !isDecimalNatural(num) {
				continue
			}
		}
		cpus, ok := d.instanceCPUs(name)
		if !ok {
			d.logger.V(1).Info("skipping pmu instance with no resolvable cpu set", "instance", name)
			continue
		}
		instances = append(instances, PmuInstance{Name: name, CPUs: cpus, events: class.EventOffsets, catalog: catalog})
	}
	return instances
}

// instanceCPUs resolves the CPU affinity of a named instance in
// priority order: its "cpus" file, then its "cpumask" file, then "all
// online CPUs". It reports false only if every source is unavailable,
// which keeps the invariant that a returned PmuInstance never has an
// empty CPUs list.
func (d *Discoverer) instanceCPUs(name string) (RangeList, bool) {
	if line, err := d.sysfs.ReadLine(path.Join(d.baseDir, name, "cpus")); err == nil {
		if rl, err := ParseRangeList(line); err == nil {
			return rl, true
		}
	}
	if line, err := d.sysfs.ReadLine(path.Join(d.baseDir, name, "cpumask")); err == nil {
		if rl, err := ParseRangeList(line); err == nil {
			return rl, true
		}
	}
	n, err := d.onlineCPUCount()
	if err != nil || n <= 0 {
		return nil, false
	}
	return contiguousRange(n), true
}

func isDecimalNatural(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
