// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package display

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ls-2018/retis/pkg/event"
)

func TestCommonEventRendersPidBeforeTgid(t *testing.T) {
	e := &event.CommonEvent{
		Timestamp: 1,
		SmpID:     0,
		Task:      &event.TaskEvent{Pid: 100, Tgid: 200, Comm: "prog"},
	}
	format := NewDisplayFormat(SingleLine)
	got := Render(WrapCommon(e), format, NewFormatterConf())
	require.Equal(t, "1 (0) [prog] 100/200", got)
}

func TestTrackingEventRendersPinnedFormat(t *testing.T) {
	e := &event.TrackingEvent{TrackingID: 1, OrigHead: 0xabc}
	format := NewDisplayFormat(SingleLine)
	got := Render(WrapTracking(e), format, NewFormatterConf())
	require.Equal(t, "[tracking] id 1 orig_head 0xabc", got)
}

func TestEventRenderSkipsMetadataByDefault(t *testing.T) {
	e := event.New()
	require.NoError(t, e.Insert(&event.CommonEventMd{RetisVersion: "x"}))
	require.NoError(t, e.Insert(&event.CommonEvent{Timestamp: 1, SmpID: 0}))

	format := NewDisplayFormat(SingleLine)
	got := Render(WrapEvent(e), format, NewFormatterConf())
	require.Equal(t, "1 (0)", got)
}

func TestEventRenderIncludesMetadataWhenRequested(t *testing.T) {
	e := event.New()
	require.NoError(t, e.Insert(&event.CommonEventMd{RetisVersion: "x"}))
	require.NoError(t, e.Insert(&event.CommonEvent{Timestamp: 1, SmpID: 0}))

	format := NewDisplayFormat(SingleLine)
	format.ShowMetadata = true
	got := Render(WrapEvent(e), format, NewFormatterConf())
	require.Equal(t, "Retis version x 1 (0)", got)
}
