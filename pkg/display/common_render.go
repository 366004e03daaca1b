// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package display

import (
	"github.com/ls-2018/retis/pkg/event"
	"github.com/ls-2018/retis/pkg/retistime"
)

// WrapCommonMd adapts a CommonEventMd for EventFmt-based rendering.
func WrapCommonMd(e *event.CommonEventMd) EventFmt { return commonMdFmt{e} }

type commonMdFmt struct{ *event.CommonEventMd }

func (c commonMdFmt) EventFmt(f *Formatter, _ *DisplayFormat) error {
	return f.Printf("Retis version %s", c.RetisVersion)
}

// WrapCommon adapts a CommonEvent for EventFmt-based rendering.
func WrapCommon(e *event.CommonEvent) EventFmt { return commonFmt{e} }

type commonFmt struct{ *event.CommonEvent }

func (c commonFmt) EventFmt(f *Formatter, format *DisplayFormat) error {
	if err := writeTimestamp(f, c.Timestamp, format); err != nil {
		return err
	}
	if err := f.Printf(" (%d)", c.SmpID); err != nil {
		return err
	}

	if c.Task == nil {
		return nil
	}
	if err := f.Printf(" [%s] ", c.Task.Comm); err != nil {
		return err
	}
	if c.Task.Pid != c.Task.Tgid {
		return f.Printf("%d/%d", c.Task.Pid, c.Task.Tgid)
	}
	return f.Printf("%d", c.Task.Pid)
}

func writeTimestamp(f *Formatter, ts uint64, format *DisplayFormat) error {
	if format.TimeFormat == MonotonicTimestamp || format.MonotonicOffset == nil {
		return f.Printf("%d", ts)
	}

	offset := *format.MonotonicOffset
	wall := offset.Add(retistime.New(0, int64(ts)))
	t, err := wall.WallClock()
	if err != nil {
		return f.Printf("%d", ts)
	}
	return f.WriteString(t.UTC().Format("2006-01-02T15:04:05.000000000Z"))
}

// WrapKernel adapts a KernelEvent for EventFmt-based rendering.
func WrapKernel(e *event.KernelEvent) EventFmt { return kernelFmt{e} }

type kernelFmt struct{ *event.KernelEvent }

func (k kernelFmt) EventFmt(f *Formatter, _ *DisplayFormat) error {
	return f.Printf("%s:%s", k.Probe, k.Symbol)
}

// WrapTracking adapts a TrackingEvent for EventFmt-based rendering.
func WrapTracking(e *event.TrackingEvent) EventFmt { return trackingFmt{e} }

type trackingFmt struct{ *event.TrackingEvent }

func (t trackingFmt) EventFmt(f *Formatter, _ *DisplayFormat) error {
	return f.Printf("[tracking] id %d orig_head 0x%x", t.TrackingID, t.OrigHead)
}

// WrapUserStack adapts a UserStackEvent for EventFmt-based rendering.
func WrapUserStack(e *event.UserStackEvent) EventFmt { return userStackFmt{e} }

type userStackFmt struct{ *event.UserStackEvent }

func (u userStackFmt) EventFmt(f *Formatter, format *DisplayFormat) error {
	space := NewDelimWriter(' ')
	if format.Multiline() {
		space = NewDelimWriter('\n')
	}
	for _, frame := range u.Frames {
		if err := space.Write(f); err != nil {
			return err
		}
		if err := f.WriteString(frame); err != nil {
			return err
		}
	}
	return nil
}

// WrapCt adapts a CtEvent for EventFmt-based rendering.
func WrapCt(e *event.CtEvent) EventFmt { return ctFmt{e} }

type ctFmt struct{ *event.CtEvent }

func (c ctFmt) EventFmt(f *Formatter, _ *DisplayFormat) error {
	return f.Printf("zone %d status 0x%x", c.Zone, c.Status)
}
