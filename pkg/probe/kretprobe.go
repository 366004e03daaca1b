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

// KretprobeBuilder attaches function-return kretprobes, same contract as
// KprobeBuilder but with KProbeMaxActive honored for the return probe.
type KretprobeBuilder struct {
	baseBuilder
	object      objectSource
	programName string
	maxActive   int
}

// NewKretprobeBuilder builds a Fresh KretprobeBuilder. maxActive <= 0 means
// "let the kernel pick a default".
func NewKretprobeBuilder(object objectSource, programName string, maxActive int) *KretprobeBuilder {
	return &KretprobeBuilder{baseBuilder: baseBuilder{kind: KretprobeKind}, object: object, programName: programName, maxActive: maxActive}
}

// Init binds shared maps and hooks. See ProbeBuilder.
func (b *KretprobeBuilder) Init(mapFDs []MapFD, hooks map[Hook]struct{}) error {
	return b.init(mapFDs, hooks)
}

// Attach loads a fresh program instance and attaches it as a kretprobe on
// p.Symbol.Name.
func (b *KretprobeBuilder) Attach(p Probe) (Link, error) {
	if err := b.readyToAttach(); err != nil {
		return nil, err
	}
	if p.Kind != KretprobeKind {
		return nil, errors.Errorf("kretprobe builder cannot attach a %s probe", p.Kind)
	}

	editors, err := reuseMapFDs(b.mapFDs)
	if err != nil {
		return nil, err
	}

	uid := "retis_krp_" + p.Symbol.Name
	mgr := &manager.Manager{
		Probes: []*manager.Probe{
			{
				ProbeIdentificationPair: manager.ProbeIdentificationPair{
					UID:          uid,
					EBPFFuncName: b.programName,
				},
				AttachToFuncName: p.Symbol.Name,
				KProbeMaxActive:  b.maxActive,
			},
		},
	}
	if err := mgr.InitWithOptions(b.object, manager.Options{MapEditors: editors}); err != nil {
		return nil, errors.Wrapf(err, "load kretprobe program for %q", p.Symbol.Name)
	}
	if err := mgr.Start(); err != nil {
		return nil, errors.Wrapf(err, "attach kretprobe to %q", p.Symbol.Name)
	}

	retislog.L().Info("attached kretprobe", zapSymbol(p.Symbol.Name))
	link := &managerLink{mgr: mgr}
	b.trackAttached(link)
	return link, nil
}

// Detach drops every link attached so far. Idempotent.
func (b *KretprobeBuilder) Detach() error {
	return b.detach()
}
