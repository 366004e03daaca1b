// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package display implements the indented, context-aware formatter and the
// per-section text renderers, including the external pcap-dissector
// integration for raw packet bytes.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ls-2018/retis/internal/retislog"
)

// FormatterConf tracks the indentation level a Formatter writes at, plus a
// stack of saved levels so nested renderers can restore their caller's
// indentation.
type FormatterConf struct {
	level       int
	savedLevels []int
}

// NewFormatterConf returns a conf at indentation level 0.
func NewFormatterConf() FormatterConf {
	return FormatterConf{}
}

// WithLevel returns a conf starting at the given indentation level.
func WithLevel(level int) FormatterConf {
	return FormatterConf{level: level}
}

// IncLevel increases the indentation level by diff, saving the previous
// level so a later ResetLevel can restore it.
func (c *FormatterConf) IncLevel(diff int) {
	c.savedLevels = append(c.savedLevels, c.level)
	c.level += diff
}

// ResetLevel restores the indentation level saved by the most recent
// IncLevel. Resetting with no saved level logs a warning but is not fatal.
func (c *FormatterConf) ResetLevel() {
	if len(c.savedLevels) == 0 {
		retislog.L().Warn("cannot reset the indentation level: no saved level")
		return
	}
	last := len(c.savedLevels) - 1
	c.level = c.savedLevels[last]
	c.savedLevels = c.savedLevels[:last]
}

// Formatter is a scoped writer that prefixes every output line with the
// current indentation level. Writes are buffered internally and only
// prefixed on flush, so indentation changes mid-render never corrupt
// already-written output.
type Formatter struct {
	inner io.Writer
	conf  FormatterConf
	level int
	start bool
	buf   strings.Builder
}

// NewFormatter wraps inner, writing at conf's initial indentation level.
func NewFormatter(inner io.Writer, conf FormatterConf) *Formatter {
	return &Formatter{inner: inner, conf: conf, level: conf.level, start: true}
}

// Write implements io.Writer, buffering p until the next flush point.
func (f *Formatter) Write(p []byte) (int, error) {
	if f.conf.level != f.level {
		if f.buf.Len() > 0 {
			if err := f.flush(); err != nil {
				return 0, err
			}
		}
		f.level = f.conf.level
	}
	return f.buf.Write(p)
}

// Printf is a convenience wrapper over fmt.Fprintf(f, ...).
func (f *Formatter) Printf(format string, args ...any) error {
	_, err := fmt.Fprintf(f, format, args...)
	return err
}

// WriteString is a convenience wrapper over Write([]byte(s)).
func (f *Formatter) WriteString(s string) error {
	_, err := f.Write([]byte(s))
	return err
}

// flush prefixes every buffered line with the current indentation and
// writes it to inner. The first line of a new Formatter is prefixed on its
// first non-empty write; every line after an embedded newline is prefixed
// too.
func (f *Formatter) flush() error {
	if f.buf.Len() == 0 {
		return nil
	}
	s := f.buf.String()
	endsWithNewline := strings.HasSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\n")
	prefix := strings.Repeat(" ", f.level)

	for i, line := range strings.Split(s, "\n") {
		if i == 0 {
			if f.start {
				f.start = false
				if _, err := io.WriteString(f.inner, prefix); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(f.inner, line); err != nil {
				return err
			}
			continue
		}
		if _, err := io.WriteString(f.inner, "\n"+prefix); err != nil {
			return err
		}
		if _, err := io.WriteString(f.inner, line); err != nil {
			return err
		}
	}

	if endsWithNewline {
		if _, err := io.WriteString(f.inner, "\n"); err != nil {
			return err
		}
		f.start = true
	}

	f.buf.Reset()
	return nil
}

// Close flushes any remaining buffered output. A flush failure here is a
// fatal program bug (the sink has already committed to writing this event),
// distinct from a user-visible render error, so it panics rather than
// returning an error callers would likely ignore.
func (f *Formatter) Close() {
	if f.buf.Len() == 0 {
		return
	}
	if err := f.flush(); err != nil {
		retislog.L().Error("formatter flush failed on close", zap.Error(err))
		panic(errors.Wrap(err, "could not flush Formatter buffer"))
	}
}

// DelimWriter prints a configurable delimiter only on writes after the
// first, so a renderer can separate a list of optional fields without
// knowing in advance which ones will be present.
type DelimWriter struct {
	delim byte
	first bool
}

// NewDelimWriter returns a DelimWriter that prints delim before every write
// except the first.
func NewDelimWriter(delim byte) *DelimWriter {
	return &DelimWriter{delim: delim, first: true}
}

// Write emits the delimiter unless this is the first call since
// construction or the last Reset.
func (d *DelimWriter) Write(f *Formatter) error {
	if d.first {
		d.first = false
		return nil
	}
	return f.WriteString(string(d.delim))
}

// Used reports whether Write has been called since construction or the last
// Reset. The first call emits nothing but still counts.
func (d *DelimWriter) Used() bool {
	return !d.first
}

// Reset returns the DelimWriter to its just-constructed state.
func (d *DelimWriter) Reset() {
	d.first = true
}
