// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package probe

import (
	manager "github.com/DataDog/ebpf-manager"
	"github.com/pkg/errors"

	"github.com/ls-2018/retis/internal/retislog"
)

// RawTracepointBuilder attaches to statically defined kernel tracepoint
// sites via BPF_PROG_TYPE_RAW_TRACEPOINT.
type RawTracepointBuilder struct {
	baseBuilder
	object      objectSource
	programName string
}

// NewRawTracepointBuilder builds a Fresh RawTracepointBuilder.
func NewRawTracepointBuilder(object objectSource, programName string) *RawTracepointBuilder {
	return &RawTracepointBuilder{baseBuilder: baseBuilder{kind: RawTracepointKind}, object: object, programName: programName}
}

// Init binds shared maps and hooks. See ProbeBuilder.
func (b *RawTracepointBuilder) Init(mapFDs []MapFD, hooks map[Hook]struct{}) error {
	return b.init(mapFDs, hooks)
}

// Attach loads a fresh program instance and attaches it to the raw
// tracepoint named p.Symbol.Name (e.g. "skb:kfree_skb").
func (b *RawTracepointBuilder) Attach(p Probe) (Link, error) {
	if err := b.readyToAttach(); err != nil {
		return nil, err
	}
	if p.Kind != RawTracepointKind {
		return nil, errors.Errorf("raw tracepoint builder cannot attach a %s probe", p.Kind)
	}

	editors, err := reuseMapFDs(b.mapFDs)
	if err != nil {
		return nil, err
	}

	uid := "retis_tp_" + p.Symbol.Name
	mgr := &manager.Manager{
		Probes: []*manager.Probe{
			{
				ProbeIdentificationPair: manager.ProbeIdentificationPair{
					UID:          uid,
					EBPFFuncName: b.programName,
				},
				TracepointName: p.Symbol.Name,
			},
		},
	}
	if err := mgr.InitWithOptions(b.object, manager.Options{MapEditors: editors}); err != nil {
		return nil, errors.Wrapf(err, "load raw tracepoint program for %q", p.Symbol.Name)
	}
	if err := mgr.Start(); err != nil {
		return nil, errors.Wrapf(err, "attach raw tracepoint to %q", p.Symbol.Name)
	}

	retislog.L().Info("attached raw tracepoint", zapSymbol(p.Symbol.Name))
	link := &managerLink{mgr: mgr}
	b.trackAttached(link)
	return link, nil
}

// Detach drops every link attached so far. Idempotent.
func (b *RawTracepointBuilder) Detach() error {
	return b.detach()
}
