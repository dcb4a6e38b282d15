// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pmuattr resolves a PMU event name against the live kernel
// sysfs tree and prints the perf_event_attr fields the kernel's
// perf_event_open would need to open it.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/tud-zih-energy/pmu-events/pmuevents"
	"golang.org/x/sys/unix"
)

func main() {
	var (
		flagClass = flag.String("class", "default_core", "PMU `class` to resolve the event against")
		flagCPU   = flag.Uint64("cpu", 0, "CPU number to pick the instance for")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <event-name>\n", "pmuattr")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		log.Fatal("exactly one event name is required")
	}
	eventName := flag.Arg(0)

	catalog := demoCatalog()
	d := pmuevents.NewDiscoverer()
	topo := d.Discover(catalog)

	instance, ok := topo.InstanceForCPU(*flagClass, *flagCPU)
	if !ok {
		log.Fatalf("no live instance of class %q serves cpu %d", *flagClass, *flagCPU)
	}

	event, err := pmuevents.FindEvent(instance, eventName)
	if err != nil {
		log.Fatalf("resolve %q on pmu %q: %v", eventName, instance.Name, err)
	}

	var attr unix.PerfEventAttr
	if err := d.Synthesize(instance, event, &attr); err != nil {
		log.Fatalf("synthesize %q on pmu %q: %v", eventName, instance.Name, err)
	}

	printPMUEvent(event)
	fmt.Printf("pmu=%s type=%d config=%#x config1=%#x config2=%#x\n",
		instance.Name, attr.Type, attr.Config, attr.Ext1, attr.Ext2)
}

// printPMUEvent dumps every descriptive field of ev, mirroring
// original_source/examples/main.c's print_pmu_event.
func printPMUEvent(ev pmuevents.Event) {
	fmt.Printf("name: %s\n", ev.Name)
	fmt.Printf("compat: %s\n", ev.Compat)
	fmt.Printf("event: %s\n", ev.EventStr)
	fmt.Printf("desc: %s\n", ev.Desc)
	fmt.Printf("topic: %s\n", ev.Topic)
	fmt.Printf("long_desc: %s\n", ev.LongDesc)
	fmt.Printf("unit: %s\n", ev.Unit)
	fmt.Printf("retirement_latency_mean: %s\n", ev.RetirementLatencyMean)
	fmt.Printf("retirement_latency_min: %s\n", ev.RetirementLatencyMin)
	fmt.Printf("retirement_latency_max: %s\n", ev.RetirementLatencyMax)
	if ev.PerPkg {
		fmt.Println("Is perpkg")
	}
	if ev.Deprecated {
		fmt.Println("Is deprecated")
	}
}

// demoCatalog is a tiny, hand-written stand-in for a compiled
// tud-zih-energy/pmu-events catalog. A real program links a generated
// package that implements pmuevents.CatalogSource instead.
func demoCatalog() pmuevents.CatalogSource {
	return pmuevents.NewEventTable().AddClass("default_core",
		pmuevents.Event{
			Name:                  "INST_RETIRED.ANY",
			EventStr:              "event=0xc0,umask=0x00",
			Desc:                  "Instructions retired",
			Topic:                 "Pipeline",
			LongDesc:              "Counts the number of instructions retired, counted on a per-core basis",
			Unit:                  "cpu_core",
			Compat:                "GenuineIntel-6-8F",
			RetirementLatencyMin:  "1",
			RetirementLatencyMean: "1",
			RetirementLatencyMax:  "1",
			PerPkg:                false,
			Deprecated:            false,
		},
		pmuevents.Event{
			Name:                  "CPU_CLK_UNHALTED.THREAD",
			EventStr:              "event=0x3c,umask=0x00",
			Desc:                  "Core cycles when the core is not in a halt state",
			Topic:                 "Pipeline",
			LongDesc:              "Counts the number of core cycles while the core is not in a halt state, per logical thread",
			Unit:                  "cpu_core",
			Compat:                "GenuineIntel-6-8F",
			RetirementLatencyMin:  "",
			RetirementLatencyMean: "",
			RetirementLatencyMax:  "",
			PerPkg:                false,
			Deprecated:            false,
		},
	)
}
