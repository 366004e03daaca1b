// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package sink implements the two event consumers named in §4.6: PrintSingle
// renders one event at a time, PrintSeries renders a correlated group with
// continuation-line indentation.
package sink

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/ls-2018/retis/pkg/display"
	"github.com/ls-2018/retis/pkg/event"
)

// Format selects the sink's output encoding.
type Format int

const (
	// Text renders through the display package's Formatter/EventFmt chain.
	Text Format = iota
	// JSON emits the event's stable JSON projection.
	JSON
)

// PrintSingle writes one event to w. For Text, format.MonotonicOffset is set
// from the event's MdCommon section (if present) before rendering, and a
// trailing blank line is appended for multi-line flavor, a single newline
// otherwise — but only if the rendered text is non-empty. For JSON, the
// event's JSON projection is written followed by a newline.
func PrintSingle(w io.Writer, e *event.Event, format *display.DisplayFormat, out Format) error {
	switch out {
	case JSON:
		return writeJSON(w, e)
	default:
		return writeText(w, e, format)
	}
}

func writeText(w io.Writer, e *event.Event, format *display.DisplayFormat) error {
	if md, ok := e.CommonMd(); ok {
		format.SetMonotonicOffset(md.ClockMonotonicOffset)
	}

	rendered := display.Render(display.WrapEvent(e), format, display.NewFormatterConf())
	if rendered == "" {
		return nil
	}

	suffix := "\n"
	if format.Multiline() {
		suffix = "\n\n"
	}
	_, err := io.WriteString(w, rendered+suffix)
	return err
}

func writeJSON(w io.Writer, e *event.Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
