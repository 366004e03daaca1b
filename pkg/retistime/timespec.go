// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package retistime provides the nanosecond-precise TimeSpec value used to
// carry kernel timestamps and the monotonic-to-wall-clock offset.
package retistime

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

const nsecsInSec = int64(1_000_000_000)

// TimeSpec is a normalized (sec, nsec) pair, modeled after struct timespec.
// New carries nsec overflow into sec but leaves a negative nsec as is; Add
// and Sub keep 0 <= Nsec < 1e9 when both operands already satisfy it.
type TimeSpec struct {
	Sec  int64 `json:"sec"`
	Nsec int64 `json:"nsec"`
}

// New builds a normalized TimeSpec, carrying any nsec overflow into sec.
func New(sec, nsec int64) TimeSpec {
	if nsec >= nsecsInSec {
		diff := nsec / nsecsInSec
		sec += diff
		nsec -= diff * nsecsInSec
	}
	return TimeSpec{Sec: sec, Nsec: nsec}
}

// Add returns ts+other, normalized.
func (ts TimeSpec) Add(other TimeSpec) TimeSpec {
	sec := ts.Sec + other.Sec
	nsec := ts.Nsec + other.Nsec
	if nsec >= nsecsInSec {
		sec++
		nsec -= nsecsInSec
	}
	return TimeSpec{Sec: sec, Nsec: nsec}
}

// Sub returns ts-other, normalized (borrowing from sec when nsec goes negative).
func (ts TimeSpec) Sub(other TimeSpec) TimeSpec {
	sec := ts.Sec - other.Sec
	nsec := ts.Nsec - other.Nsec
	if nsec < 0 {
		sec--
		nsec += nsecsInSec
	}
	return TimeSpec{Sec: sec, Nsec: nsec}
}

// WallClock converts ts to a wall-clock instant. It fails when Nsec is
// outside [0, 1e9) (a negative Nsec after normalization indicates clock
// corruption) and when the resulting UTC year falls outside 0..9999.
func (ts TimeSpec) WallClock() (time.Time, error) {
	if ts.Nsec < 0 || ts.Nsec >= nsecsInSec {
		return time.Time{}, errors.Errorf("corrupt TimeSpec: nsec %d out of range", ts.Nsec)
	}
	t := time.Unix(ts.Sec, ts.Nsec).UTC()
	if t.Year() < 0 || t.Year() > 9999 {
		return time.Time{}, errors.Errorf("TimeSpec seconds %d out of wall-clock range", ts.Sec)
	}
	return t, nil
}

// String renders ts as "sec.nsec".
func (ts TimeSpec) String() string {
	return fmt.Sprintf("%d.%09d", ts.Sec, ts.Nsec)
}
