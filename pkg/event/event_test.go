// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ls-2018/retis/pkg/retistime"
)

func TestInsertRejectsDuplicateSection(t *testing.T) {
	e := New()
	require.NoError(t, e.Insert(&CommonEventMd{RetisVersion: "x"}))
	err := e.Insert(&CommonEventMd{RetisVersion: "y"})
	assert.Error(t, err)
}

func TestSectionsPreservesInsertionOrder(t *testing.T) {
	e := New()
	require.NoError(t, e.Insert(&CommonEvent{Timestamp: 1}))
	require.NoError(t, e.Insert(&CommonEventMd{RetisVersion: "x"}))
	sections := e.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, Common, sections[0].SectionID())
	assert.Equal(t, MdCommon, sections[1].SectionID())
}

func TestMinimalEventMarshalsExactly(t *testing.T) {
	e := New()
	require.NoError(t, e.Insert(&CommonEventMd{
		RetisVersion:         "x",
		ClockMonotonicOffset: retistime.New(0, 0),
	}))
	require.NoError(t, e.Insert(&CommonEvent{Timestamp: 1, SmpID: 0, Task: nil}))

	got, err := json.Marshal(e)
	require.NoError(t, err)
	want := `{"md_common":{"retis_version":"x","clock_monotonic_offset":{"sec":0,"nsec":0}},"common":{"timestamp":1,"smp_id":0,"task":null}}`
	assert.JSONEq(t, want, string(got))
	assert.Equal(t, want, string(got))
}

func TestSkbIPEventFlattensVersion(t *testing.T) {
	ip := &SkbIPEvent{
		Saddr:    "1.1.1.1",
		Daddr:    "2.2.2.2",
		Version:  4,
		V4:       &SkbIPv4Fields{Tos: 0, ID: 1, Flags: 0, Offset: 0},
		Protocol: 6,
		Len:      40,
		TTL:      64,
		Ecn:      0,
	}
	got, err := json.Marshal(ip)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(got, &m))
	assert.EqualValues(t, 4, m["version"])
	assert.EqualValues(t, 1, m["id"])
	assert.NotContains(t, m, "flow_label")
}
