// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package nettext

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/ls-2018/retis/pkg/retistime"
)

// MonotonicTimestamp returns CLOCK_MONOTONIC as nanoseconds, the same clock
// source kernel probes stamp events with.
func MonotonicTimestamp() (uint64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, errors.Wrap(err, "clock_gettime(CLOCK_MONOTONIC)")
	}
	ns := ts.Sec*1_000_000_000 + ts.Nsec
	if ns < 0 {
		return 0, errors.Errorf("monotonic timestamp is negative: %d", ns)
	}
	return uint64(ns), nil
}

// MonotonicClockOffset computes CLOCK_REALTIME - CLOCK_MONOTONIC, the offset
// a consumer adds to a monotonic event timestamp to get a wall-clock one.
func MonotonicClockOffset() (retistime.TimeSpec, error) {
	var realtime, monotonic unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_REALTIME, &realtime); err != nil {
		return retistime.TimeSpec{}, errors.Wrap(err, "clock_gettime(CLOCK_REALTIME)")
	}
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &monotonic); err != nil {
		return retistime.TimeSpec{}, errors.Wrap(err, "clock_gettime(CLOCK_MONOTONIC)")
	}
	rt := retistime.New(realtime.Sec, realtime.Nsec)
	mt := retistime.New(monotonic.Sec, monotonic.Nsec)
	return rt.Sub(mt), nil
}
