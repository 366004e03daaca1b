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

// UsdtBuilder attaches to a user-space statically defined tracepoint in a
// target process. Grounded on
// original_source/retis/src/core/probe/user/usdt.rs: it rejects more than a
// single hook at Init time.
type UsdtBuilder struct {
	baseBuilder
	object      objectSource
	programName string
}

// NewUsdtBuilder builds a Fresh UsdtBuilder.
func NewUsdtBuilder(object objectSource, programName string) *UsdtBuilder {
	return &UsdtBuilder{baseBuilder: baseBuilder{kind: UsdtKind}, object: object, programName: programName}
}

// Init binds shared maps and hooks. USDT probes only support a single hook.
func (b *UsdtBuilder) Init(mapFDs []MapFD, hooks map[Hook]struct{}) error {
	if len(hooks) > 1 {
		return errors.New("USDT probes only support a single hook")
	}
	return b.init(mapFDs, hooks)
}

// Attach loads a fresh program instance and attaches it to the USDT probe
// named provider:name in the target process.
func (b *UsdtBuilder) Attach(p Probe) (Link, error) {
	if err := b.readyToAttach(); err != nil {
		return nil, err
	}
	if p.Kind != UsdtKind || p.Usdt == nil {
		return nil, errors.Errorf("USDT builder cannot attach a %s probe", p.Kind)
	}

	editors, err := reuseMapFDs(b.mapFDs)
	if err != nil {
		return nil, err
	}

	target := p.Usdt
	uid := "retis_usdt_" + target.Provider + "_" + target.Name
	mgr := &manager.Manager{
		Probes: []*manager.Probe{
			{
				ProbeIdentificationPair: manager.ProbeIdentificationPair{
					UID:          uid,
					EBPFFuncName: b.programName,
				},
				BinaryPath:    target.Path,
				UsdtProvider:  target.Provider,
				UsdtName:      target.Name,
				PID:           target.Pid,
			},
		},
	}
	if err := mgr.InitWithOptions(b.object, manager.Options{MapEditors: editors}); err != nil {
		return nil, errors.Wrapf(err, "load USDT program for %s:%s", target.Provider, target.Name)
	}
	if err := mgr.Start(); err != nil {
		return nil, errors.Wrapf(err, "attach USDT %s:%s in pid %d", target.Provider, target.Name, target.Pid)
	}

	retislog.L().Info("attached USDT probe", zapSymbol(target.Provider+":"+target.Name))
	link := &managerLink{mgr: mgr}
	b.trackAttached(link)
	return link, nil
}

// Detach drops every link attached so far. Idempotent.
func (b *UsdtBuilder) Detach() error {
	return b.detach()
}
