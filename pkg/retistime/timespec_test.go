// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package retistime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNormalizesOverflow(t *testing.T) {
	assert.Equal(t, TimeSpec{Sec: 1, Nsec: 0}, New(0, 1_000_000_000))
	assert.Equal(t, TimeSpec{Sec: 2, Nsec: 1}, New(0, 2_000_000_001))
	assert.Equal(t, TimeSpec{Sec: 5, Nsec: 0}, New(5, 0))
}

func TestSubBorrows(t *testing.T) {
	got := New(5, 0).Sub(New(0, 1))
	assert.Equal(t, TimeSpec{Sec: 4, Nsec: 999_999_999}, got)
}

func TestAddThenSubIsIdentity(t *testing.T) {
	a := New(123, 456_789)
	b := New(7, 999_999_999)
	assert.Equal(t, a, a.Add(b).Sub(b))
}

func TestWallClockRejectsNegativeNsec(t *testing.T) {
	bad := TimeSpec{Sec: 0, Nsec: -1}
	_, err := bad.WallClock()
	assert.Error(t, err)
}

func TestWallClockRoundTrips(t *testing.T) {
	ts := New(1_700_000_000, 123)
	wc, err := ts.WallClock()
	assert.NoError(t, err)
	assert.Equal(t, int64(1_700_000_000), wc.Unix())
	assert.Equal(t, 123, wc.Nanosecond())
}
