// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package display

import (
	"github.com/ls-2018/retis/pkg/event"
)

// WrapEvent adapts a full Event for EventFmt-based rendering: every section
// is rendered in insertion order, separated by a space (single-line) or a
// newline (multi-line). MdCommon only renders when format.ShowMetadata is
// set, per §4.5's show_metadata option. An event missing its required
// Common section renders as empty text, per §7.
func WrapEvent(e *event.Event) EventFmt { return eventFmt{e} }

type eventFmt struct{ *event.Event }

func (e eventFmt) EventFmt(f *Formatter, format *DisplayFormat) error {
	if _, ok := e.Get(event.Common); !ok {
		return nil
	}

	delim := byte(' ')
	if format.Multiline() {
		delim = '\n'
	}
	space := NewDelimWriter(delim)

	for _, section := range e.Sections() {
		inner, ok := sectionEventFmt(section, format)
		if !ok {
			continue
		}
		if err := space.Write(f); err != nil {
			return err
		}
		if err := inner.EventFmt(f, format); err != nil {
			return err
		}
	}
	return nil
}

// sectionEventFmt returns the EventFmt adapter for a section's concrete
// type. MdCommon is metadata rather than narrative text, so it is only
// included when format.ShowMetadata asks for it.
func sectionEventFmt(s event.Section, format *DisplayFormat) (EventFmt, bool) {
	switch v := s.(type) {
	case *event.CommonEventMd:
		if !format.ShowMetadata {
			return nil, false
		}
		return WrapCommonMd(v), true
	case *event.CommonEvent:
		return WrapCommon(v), true
	case *event.SkbEvent:
		return WrapSkb(v), true
	case *event.TrackingEvent:
		return WrapTracking(v), true
	case *event.KernelEvent:
		return WrapKernel(v), true
	case *event.UserStackEvent:
		return WrapUserStack(v), true
	case *event.CtEvent:
		return WrapCt(v), true
	default:
		return nil, false
	}
}
