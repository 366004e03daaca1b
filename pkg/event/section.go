// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package event implements the polymorphic, section-composed event data
// model: a closed set of typed Section kinds, an Event that maps each
// SectionID to exactly one Section, and a JSON projection that is stable
// across releases.
package event

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// SectionID is the stable, short-string tag identifying a Section kind. The
// set of valid values is closed; new section kinds are added here, never
// registered at runtime.
type SectionID string

const (
	MdCommon    SectionID = "md_common"
	Common      SectionID = "common"
	Skb         SectionID = "skb"
	SkbTracking SectionID = "skb_tracking"
	Kernel      SectionID = "kernel"
	UserStack   SectionID = "user_stack"
	Ct          SectionID = "ct"
)

// Section is implemented by every event section kind. SectionID is static
// per concrete type: it never varies with a value's contents.
type Section interface {
	SectionID() SectionID
}

// Event is an ordered, unique-keyed map from SectionID to Section. Key
// uniqueness is semantic; insertion order is preserved only so that text
// rendering and JSON serialization are stable across runs of the same
// collection.
type Event struct {
	order    []SectionID
	sections map[SectionID]Section
}

// New returns an empty Event.
func New() *Event {
	return &Event{sections: make(map[SectionID]Section)}
}

// Insert binds section under its own SectionID. It fails if that id is
// already bound in this event.
func (e *Event) Insert(section Section) error {
	id := section.SectionID()
	if _, ok := e.sections[id]; ok {
		return errors.Errorf("section %q already present in event", id)
	}
	e.sections[id] = section
	e.order = append(e.order, id)
	return nil
}

// Get returns the section bound to id, if any.
func (e *Event) Get(id SectionID) (Section, bool) {
	s, ok := e.sections[id]
	return s, ok
}

// Sections returns the event's sections in insertion order.
func (e *Event) Sections() []Section {
	out := make([]Section, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.sections[id])
	}
	return out
}

// CommonMd returns the event's required MdCommon section, if present.
func (e *Event) CommonMd() (*CommonEventMd, bool) {
	s, ok := e.Get(MdCommon)
	if !ok {
		return nil, false
	}
	md, ok := s.(*CommonEventMd)
	return md, ok
}

// MarshalJSON renders the event as {section_id: {fields...}, ...} in
// insertion order. Standard map marshaling would sort keys alphabetically,
// which would silently reorder md_common/common relative to collection
// order, so the object is built manually.
func (e *Event) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range e.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(id))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.sections[id])
		if err != nil {
			return nil, errors.Wrapf(err, "marshal section %q", id)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
