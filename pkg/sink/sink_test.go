// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ls-2018/retis/pkg/display"
	"github.com/ls-2018/retis/pkg/event"
)

func minimalEvent(t *testing.T, timestamp uint64) *event.Event {
	t.Helper()
	e := event.New()
	require.NoError(t, e.Insert(&event.CommonEventMd{RetisVersion: "x"}))
	require.NoError(t, e.Insert(&event.CommonEvent{Timestamp: timestamp, SmpID: 0}))
	return e
}

func TestPrintSingleTextAppendsSingleNewline(t *testing.T) {
	var buf bytes.Buffer
	format := display.NewDisplayFormat(display.SingleLine)
	require.NoError(t, PrintSingle(&buf, minimalEvent(t, 1), format, Text))
	require.True(t, strings.HasSuffix(buf.String(), "\n"))
	require.False(t, strings.HasSuffix(buf.String(), "\n\n"))
}

func TestPrintSingleMultilineAppendsBlankLine(t *testing.T) {
	var buf bytes.Buffer
	format := display.NewDisplayFormat(display.MultiLine)
	require.NoError(t, PrintSingle(&buf, minimalEvent(t, 1), format, Text))
	require.True(t, strings.HasSuffix(buf.String(), "\n\n"))
}

func TestPrintSingleJSONMatchesPinnedProjection(t *testing.T) {
	var buf bytes.Buffer
	format := display.NewDisplayFormat(display.SingleLine)
	require.NoError(t, PrintSingle(&buf, minimalEvent(t, 1), format, JSON))
	want := `{"md_common":{"retis_version":"x","clock_monotonic_offset":{"sec":0,"nsec":0}},` +
		`"common":{"timestamp":1,"smp_id":0,"task":null}}` + "\n"
	require.Equal(t, want, buf.String())
}

func TestPrintSeriesIndentsContinuationMembers(t *testing.T) {
	var buf bytes.Buffer
	format := display.NewDisplayFormat(display.SingleLine)
	series := EventSeries{minimalEvent(t, 1), minimalEvent(t, 2)}
	require.NoError(t, PrintSeries(&buf, series, format, Text))

	lines := strings.Split(buf.String(), "\n")
	require.Equal(t, "1 (0)", lines[0])
	require.Equal(t, "    + 2 (0)", lines[1])
	// trailing blank line after the group
	require.Equal(t, "", lines[len(lines)-1])
}

func TestPrintSeriesJSONSerializesGroupAtomically(t *testing.T) {
	var buf bytes.Buffer
	format := display.NewDisplayFormat(display.SingleLine)
	series := EventSeries{minimalEvent(t, 1), minimalEvent(t, 2)}
	require.NoError(t, PrintSeries(&buf, series, format, JSON))
	require.True(t, strings.HasPrefix(buf.String(), "["))
	require.True(t, strings.HasSuffix(buf.String(), "]\n"))
}
