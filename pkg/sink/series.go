// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package sink

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/ls-2018/retis/pkg/display"
	"github.com/ls-2018/retis/pkg/event"
)

// Both prefixes are six characters wide so the "+ " marker on a group
// member's first line and the plain spaces on its continuation lines line
// up in the same column.
const (
	seriesLeadPrefix = "    + "
	seriesContPrefix = "      "
)

// EventSeries is an ordered group of events correlated by the collector
// (e.g. an skb tracked across multiple probe firings).
type EventSeries []*event.Event

// PrintSeries writes a correlated group of events to w. For Text, the first
// event renders at indent 0; every subsequent event renders indented and
// marked as a continuation of the group, per §4.6/§8. For JSON, the whole
// group is serialized as one array so readers see it atomically.
func PrintSeries(w io.Writer, series EventSeries, format *display.DisplayFormat, out Format) error {
	if out == JSON {
		return writeSeriesJSON(w, series)
	}
	return writeSeriesText(w, series, format)
}

func writeSeriesText(w io.Writer, series EventSeries, format *display.DisplayFormat) error {
	var sb strings.Builder
	for i, e := range series {
		if md, ok := e.CommonMd(); ok {
			format.SetMonotonicOffset(md.ClockMonotonicOffset)
		}
		rendered := display.Render(display.WrapEvent(e), format, display.NewFormatterConf())
		if rendered == "" {
			continue
		}
		if i == 0 {
			sb.WriteString(rendered)
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(indentContinuation(rendered))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// indentContinuation prefixes rendered's first line with seriesLeadPrefix
// and every following line with seriesContPrefix, so multi-line members of
// a group stay visually aligned under the "+ " marker.
func indentContinuation(rendered string) string {
	lines := strings.Split(rendered, "\n")
	var sb strings.Builder
	for i, line := range lines {
		if i == 0 {
			sb.WriteString(seriesLeadPrefix)
		} else {
			sb.WriteString("\n")
			sb.WriteString(seriesContPrefix)
		}
		sb.WriteString(line)
	}
	return sb.String()
}

func writeSeriesJSON(w io.Writer, series EventSeries) error {
	b, err := json.Marshal(series)
	if err != nil {
		return errors.Wrap(err, "marshal event series")
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
