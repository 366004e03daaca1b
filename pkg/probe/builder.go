// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package probe

import (
	"io"

	"github.com/cilium/ebpf"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ls-2018/retis/internal/retislog"
)

// MapFD names a BPF map already created by the (out-of-scope) loader, shared
// across every builder so kernel-side state survives a probe's reattach.
type MapFD struct {
	Name string
	Fd   int
}

// Link is the opaque attach handle a ProbeBuilder returns from Attach. It is
// owned by the builder that created it: detaching the builder closes every
// outstanding Link.
type Link interface {
	Close() error
}

// ProbeBuilder attaches and detaches BPF programs of one probe Kind. State
// machine: Fresh -> Initialized -> Attached*(N) -> Detached(final).
// Attaching on Fresh is a fatal misuse; Detach is idempotent.
type ProbeBuilder interface {
	Init(mapFDs []MapFD, hooks map[Hook]struct{}) error
	Attach(p Probe) (Link, error)
	Detach() error
}

type builderState int

const (
	stateFresh builderState = iota
	stateInitialized
	stateAttached
	stateDetached
)

// baseBuilder factors the state machine and shared-map bookkeeping common to
// every per-kind builder; concrete builders embed it.
type baseBuilder struct {
	kind    Kind
	mapFDs  []MapFD
	hooks   map[Hook]struct{}
	state   builderState
	links   []Link
}

func (b *baseBuilder) init(mapFDs []MapFD, hooks map[Hook]struct{}) error {
	if b.state != stateFresh {
		return errors.Errorf("%s builder: init called out of Fresh state", b.kind)
	}
	b.mapFDs = mapFDs
	b.hooks = hooks
	b.state = stateInitialized
	return nil
}

// readyToAttach enforces the state machine; attaching on Fresh is a fatal
// misuse by contract.
func (b *baseBuilder) readyToAttach() error {
	switch b.state {
	case stateFresh:
		return errors.Errorf("%s builder: attach called before init (fatal misuse)", b.kind)
	case stateDetached:
		return errors.Errorf("%s builder: attach called after detach", b.kind)
	default:
		return nil
	}
}

func (b *baseBuilder) trackAttached(l Link) {
	b.links = append(b.links, l)
	b.state = stateAttached
}

// detach drops every outstanding link. Idempotent: calling it twice, or on a
// builder that never attached, is not an error.
func (b *baseBuilder) detach() error {
	var firstErr error
	for _, l := range b.links {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	b.links = nil
	b.state = stateDetached
	retislog.L().Debug("probe builder detached", zap.Stringer("kind", b.kind))
	return firstErr
}

// reuseMapFDs opens each shared map by its fd and returns them keyed by
// name, so a builder's fresh program instance reuses kernel-side state
// instead of creating new, empty maps.
func reuseMapFDs(mapFDs []MapFD) (map[string]*ebpf.Map, error) {
	out := make(map[string]*ebpf.Map, len(mapFDs))
	for _, m := range mapFDs {
		em, err := ebpf.NewMapFromFD(m.Fd)
		if err != nil {
			return nil, errors.Wrapf(err, "reuse map %q from fd %d", m.Name, m.Fd)
		}
		out[m.Name] = em
	}
	return out, nil
}

// objectSource is the compiled BPF object a builder loads a fresh program
// instance from. The (out-of-scope) build/embed step supplies it.
type objectSource = io.ReaderAt

func zapSymbol(name string) zap.Field {
	return zap.String("symbol", name)
}
