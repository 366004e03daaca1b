// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package display

import (
	"bytes"

	"go.uber.org/zap"

	"github.com/ls-2018/retis/internal/retislog"
	"github.com/ls-2018/retis/pkg/retistime"
)

// Flavor controls whether sub-sections of an event separate with a space or
// a newline.
type Flavor int

const (
	SingleLine Flavor = iota
	MultiLine
)

// TimeFormat selects how CommonEvent.Timestamp is rendered.
type TimeFormat int

const (
	MonotonicTimestamp TimeFormat = iota
	UtcDate
)

// DisplayFormat configures how an Event is rendered to text. It is mutable
// across a render pass: PrintSingle/PrintSeries bind MonotonicOffset from
// each event's MdCommon section before rendering it.
type DisplayFormat struct {
	Flavor          Flavor
	TimeFormat      TimeFormat
	ShowMetadata    bool
	MonotonicOffset *retistime.TimeSpec
	// PrintLL includes link-layer (Ethernet, VLAN acceleration) fields in
	// skb text rendering. It never affects the JSON projection.
	PrintLL bool
}

// NewDisplayFormat returns a DisplayFormat with the given flavor and
// otherwise-default options.
func NewDisplayFormat(flavor Flavor) *DisplayFormat {
	return &DisplayFormat{Flavor: flavor}
}

// SetMonotonicOffset binds the offset used to translate monotonic
// timestamps to wall-clock time when TimeFormat is UtcDate.
func (d *DisplayFormat) SetMonotonicOffset(offset retistime.TimeSpec) {
	d.MonotonicOffset = &offset
}

// Multiline reports whether sub-sections should be separated with newlines
// rather than spaces.
func (d *DisplayFormat) Multiline() bool {
	return d.Flavor == MultiLine
}

// EventFmt is implemented by every event section (and any value nested
// inside one) that knows how to render itself given a Formatter and the
// active DisplayFormat.
type EventFmt interface {
	EventFmt(f *Formatter, format *DisplayFormat) error
}

// Render renders e to a string using a fresh Formatter at conf's initial
// indentation level. Render errors are logged and swallowed: the text sink
// contract is that output is always well-formed text, never a propagated
// error (§7).
func Render(e EventFmt, format *DisplayFormat, conf FormatterConf) string {
	var buf bytes.Buffer
	f := NewFormatter(&buf, conf)
	if err := e.EventFmt(f, format); err != nil {
		retislog.L().Error("event render error", zap.Error(err))
	}
	f.Close()
	return buf.String()
}
