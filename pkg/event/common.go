// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package event

import "github.com/ls-2018/retis/pkg/retistime"

// CommonEventMd is written once per event; consumers use
// ClockMonotonicOffset to map monotonic timestamps to wall-clock time.
// Every produced Event MUST contain it.
type CommonEventMd struct {
	RetisVersion         string             `json:"retis_version"`
	ClockMonotonicOffset retistime.TimeSpec `json:"clock_monotonic_offset"`
}

// SectionID implements Section.
func (*CommonEventMd) SectionID() SectionID { return MdCommon }

// TaskEvent carries the process that was running when a probe fired.
type TaskEvent struct {
	Pid  int32  `json:"pid"`
	Tgid int32  `json:"tgid"`
	Comm string `json:"comm"`
}

// CommonEvent is the only other section every produced Event MUST contain.
type CommonEvent struct {
	// Timestamp is nanoseconds, CLOCK_MONOTONIC.
	Timestamp uint64     `json:"timestamp"`
	SmpID     uint32     `json:"smp_id"`
	Task      *TaskEvent `json:"task"`
}

// SectionID implements Section.
func (*CommonEvent) SectionID() SectionID { return Common }

// KernelEvent records which probe produced the event: restored from
// original_source beyond what spec.md details, since a rendered event
// benefits from knowing which of the four probe kinds fired it.
type KernelEvent struct {
	Symbol string `json:"symbol"`
	Probe  string `json:"probe"`
}

// SectionID implements Section.
func (*KernelEvent) SectionID() SectionID { return Kernel }

// TrackingEvent correlates an skb across multiple probe firings by a
// tracking cookie stamped into the skb the first time it is seen.
// Grounded on
// original_source/retis/src/collect/collector/skb_tracking/mod.rs.
type TrackingEvent struct {
	TrackingID uint64 `json:"tracking_id"`
	OrigHead   uint64 `json:"orig_head"`
}

// SectionID implements Section.
func (*TrackingEvent) SectionID() SectionID { return SkbTracking }

// UserStackEvent carries a resolved user-space call stack captured at probe
// time. The spec names the UserStack section id but does not detail its
// fields; this is a minimal, conventional stack-trace shape.
type UserStackEvent struct {
	Frames []string `json:"frames"`
}

// SectionID implements Section.
func (*UserStackEvent) SectionID() SectionID { return UserStack }

// CtEvent carries the conntrack state associated with the packet. The spec
// names the Ct section id but does not detail its fields; this is a
// minimal, conventional conntrack shape.
type CtEvent struct {
	Zone   uint16 `json:"zone"`
	Status uint32 `json:"status"`
}

// SectionID implements Section.
func (*CtEvent) SectionID() SectionID { return Ct }
