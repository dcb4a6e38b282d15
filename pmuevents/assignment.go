// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package pmuevents

import (
	"fmt"
	"strconv"
	"strings"
)

// An Assignment is a (key, value) pair parsed from an event's
// assignment-list string, e.g. the "umask=1" in "event=0x40,umask=1".
type Assignment struct {
	Key   string
	Value uint64
}

// ParseAssignment parses "key=value". key must be non-empty; value must
// be non-empty and is interpreted as hexadecimal, except for the
// literal "None", which normalizes to 0.
func ParseAssignment(s string) (Assignment, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return Assignment{}, fmt.Errorf("%w: assignment %q: missing '='", ErrParse, s)
	}
	if key == "" {
		return Assignment{}, fmt.Errorf("%w: assignment %q: empty key", ErrParse, s)
	}
	if value == "" {
		return Assignment{}, fmt.Errorf("%w: assignment %q: empty value", ErrParse, s)
	}
	v, err := parseAssignmentValue(value)
	if err != nil {
		return Assignment{}, fmt.Errorf("%w: assignment %q: %v", ErrParse, s, err)
	}
	return Assignment{key, v}, nil
}

// parseAssignmentValue interprets value as hexadecimal, normalizing the
// sentinel "None" to 0. An optional "0x"/"0X" prefix is tolerated, as
// it is by the C strtoull(..., 16) the original parser used.
func parseAssignmentValue(value string) (uint64, error) {
	if value == "None" {
		return 0, nil
	}
	trimmed := value
	if len(trimmed) > 1 && trimmed[0] == '0' && (trimmed[1] == 'x' || trimmed[1] == 'X') {
		trimmed = trimmed[2:]
	}
	return strconv.ParseUint(trimmed, 16, 64)
}

// An AssignmentList is an ordered sequence of Assignments. Duplicate
// keys are legal; later keys overwrite earlier ones when applied to an
// attribute (see Synthesize).
type AssignmentList []Assignment

// ParseAssignmentList parses a comma-separated list of assignments. Each
// segment is parsed independently as an Assignment; there is no
// leniency for stray or trailing commas (an empty segment fails like
// any other malformed assignment).
func ParseAssignmentList(s string) (AssignmentList, error) {
	parts := strings.Split(s, ",")
	list := make(AssignmentList, 0, len(parts))
	for _, p := range parts {
		a, err := ParseAssignment(p)
		if err != nil {
			return nil, fmt.Errorf("assignment list %q: %w", s, err)
		}
		list = append(list, a)
	}
	return list, nil
}

// ConfigVar names one of the three perf_event_attr words a ConfigDef
// can target.
type ConfigVar int

const (
	ConfigWord ConfigVar = iota
	Config1Word
	Config2Word
)

func (v ConfigVar) String() string {
	switch v {
	case ConfigWord:
		return "config"
	case Config1Word:
		return "config1"
	case Config2Word:
		return "config2"
	default:
		return fmt.Sprintf("ConfigVar(%d)", int(v))
	}
}

// A ConfigDef describes how to splice a field's value into one of the
// three attribute words, as read from a PMU's format/<field> sysfs
// file, e.g. "config:0-7,32-35".
type ConfigDef struct {
	Var    ConfigVar
	Layout RangeList
}

// ParseConfigDef parses "config<V>:<range-list>" where V is "", "1", or
// "2". Any other prefix, including "config3:", fails.
func ParseConfigDef(s string) (ConfigDef, error) {
	var v ConfigVar
	var rest string
	switch {
	case strings.HasPrefix(s, "config1:"):
		v, rest = Config1Word, s[len("config1:"):]
	case strings.HasPrefix(s, "config2:"):
		v, rest = Config2Word, s[len("config2:"):]
	case strings.HasPrefix(s, "config:"):
		v, rest = ConfigWord, s[len("config:"):]
	default:
		return ConfigDef{}, fmt.Errorf("%w: config def %q: unrecognized prefix", ErrParse, s)
	}
	layout, err := ParseRangeList(rest)
	if err != nil {
		return ConfigDef{}, fmt.Errorf("config def %q: %w", s, err)
	}
	return ConfigDef{v, layout}, nil
}
