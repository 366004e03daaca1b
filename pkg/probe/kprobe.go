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

// KprobeBuilder attaches function-entry kprobes. Each Attach call loads a
// fresh *manager.Manager over object, reusing the builder's shared maps by
// fd, and attaches the single program named programName to the probed
// symbol.
type KprobeBuilder struct {
	baseBuilder
	object      objectSource
	programName string
}

// NewKprobeBuilder builds a Fresh KprobeBuilder over the given compiled BPF
// object, whose entry program is named programName.
func NewKprobeBuilder(object objectSource, programName string) *KprobeBuilder {
	return &KprobeBuilder{baseBuilder: baseBuilder{kind: KprobeKind}, object: object, programName: programName}
}

// Init binds shared maps and hooks. See ProbeBuilder.
func (b *KprobeBuilder) Init(mapFDs []MapFD, hooks map[Hook]struct{}) error {
	return b.init(mapFDs, hooks)
}

// Attach loads a fresh program instance and attaches it as a kprobe on
// p.Symbol.Name.
func (b *KprobeBuilder) Attach(p Probe) (Link, error) {
	if err := b.readyToAttach(); err != nil {
		return nil, err
	}
	if p.Kind != KprobeKind {
		return nil, errors.Errorf("kprobe builder cannot attach a %s probe", p.Kind)
	}

	editors, err := reuseMapFDs(b.mapFDs)
	if err != nil {
		return nil, err
	}

	uid := "retis_kp_" + p.Symbol.Name
	mgr := &manager.Manager{
		Probes: []*manager.Probe{
			{
				ProbeIdentificationPair: manager.ProbeIdentificationPair{
					UID:          uid,
					EBPFFuncName: b.programName,
				},
				AttachToFuncName: p.Symbol.Name,
			},
		},
	}
	if err := mgr.InitWithOptions(b.object, manager.Options{MapEditors: editors}); err != nil {
		return nil, errors.Wrapf(err, "load kprobe program for %q", p.Symbol.Name)
	}
	if err := mgr.Start(); err != nil {
		return nil, errors.Wrapf(err, "attach kprobe to %q", p.Symbol.Name)
	}

	retislog.L().Info("attached kprobe", zapSymbol(p.Symbol.Name))
	link := &managerLink{mgr: mgr}
	b.trackAttached(link)
	return link, nil
}

// Detach drops every link attached so far. Idempotent.
func (b *KprobeBuilder) Detach() error {
	return b.detach()
}

// managerLink adapts a single-probe *manager.Manager to the Link contract.
type managerLink struct {
	mgr *manager.Manager
}

func (l *managerLink) Close() error {
	return l.mgr.Stop(manager.CleanAll)
}
