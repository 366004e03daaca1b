// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package probe implements the Symbol + BTF inspector, the tagged-variant
// Probe model with its CLI parser, and the per-kind attach/detach builders.
package probe

import (
	"fmt"

	"github.com/cilium/ebpf/btf"
	"github.com/pkg/errors"
)

// offsetAbsent is the signed-byte sentinel meaning "this parameter type is
// not present in the symbol's prototype". Valid offsets are in [0, 127].
const offsetAbsent int8 = -1

// Well-known parameter type names the inspector looks for, matching
// original_source/retis/src/core/probe/kernel/inspect.rs.
const (
	typeSkBuff       = "struct sk_buff *"
	typeNetDevice    = "struct net_device *"
	typeNet          = "struct net *"
	typeNftPktinfo   = "struct nft_pktinfo *"
	typeNftTraceinfo = "struct nft_traceinfo *"
)

// dropReasonEnums are tried in order; the first one present in a symbol's
// prototype wins. They are treated as a single virtual enum downstream.
var dropReasonEnums = []string{
	"enum skb_drop_reason",
	"enum mac80211_drop_reason",
	"enum ovs_drop_reason",
}

// Offsets is the on-wire probe config record: the register offset of each
// well-known parameter type, or offsetAbsent if not present.
type Offsets struct {
	SkBuff         int8
	SkbDropReason  int8
	NetDevice      int8
	Net            int8
	NftPktinfo     int8
	NftTraceinfo   int8
}

// ProbeConfig is the result of inspecting a Symbol.
type ProbeConfig struct {
	Offsets Offsets
}

// Symbol is an opaque handle naming a kernel function or tracepoint. It is
// read-only once constructed: ParameterOffset queries are backed by the BTF
// spec it was resolved against.
type Symbol struct {
	Name string
	spec *btf.Spec
}

// NewSymbol resolves name against spec without inspecting it. spec may be
// nil in tests that don't exercise BTF lookups.
func NewSymbol(name string, spec *btf.Spec) *Symbol {
	return &Symbol{Name: name, spec: spec}
}

// ParameterOffset returns the register offset of the first parameter whose
// type renders as typeName in this symbol's prototype. A symbol that simply
// doesn't take a parameter of that type is not an error: ok is false.
func (s *Symbol) ParameterOffset(typeName string) (offset int, ok bool, err error) {
	if s.spec == nil {
		return 0, false, errors.New("symbol has no BTF spec bound")
	}

	var fn *btf.Func
	if err := s.spec.TypeByName(s.Name, &fn); err != nil {
		return 0, false, errors.Wrapf(err, "resolve BTF function %q", s.Name)
	}
	proto, ok := fn.Type.(*btf.FuncProto)
	if !ok {
		return 0, false, errors.Errorf("symbol %q has no function prototype", s.Name)
	}

	for i, param := range proto.Params {
		if btfTypeName(param.Type) == typeName {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// btfTypeName renders a BTF type the way the kernel's prototype strings
// name it, e.g. "struct sk_buff *" or "enum skb_drop_reason".
func btfTypeName(t btf.Type) string {
	if ptr, ok := t.(*btf.Pointer); ok {
		return btfTypeName(ptr.Target) + " *"
	}
	switch v := t.(type) {
	case *btf.Struct:
		return "struct " + v.Name
	case *btf.Union:
		return "union " + v.Name
	case *btf.Enum:
		return "enum " + v.Name
	case *btf.Typedef:
		return btfTypeName(v.Type)
	case *btf.Const:
		return btfTypeName(v.Type)
	case *btf.Volatile:
		return btfTypeName(v.Type)
	default:
		return fmt.Sprintf("%s", t)
	}
}

// InspectSymbol walks the closed list of well-known parameter type names and
// fills a ProbeConfig with their offsets. BTF absence on the Symbol itself
// is a hard failure; an individual parameter lookup returning "not present"
// is not an error.
func InspectSymbol(symbol *Symbol) (ProbeConfig, error) {
	cfg := ProbeConfig{Offsets: Offsets{
		SkBuff:        offsetAbsent,
		SkbDropReason: offsetAbsent,
		NetDevice:     offsetAbsent,
		Net:           offsetAbsent,
		NftPktinfo:    offsetAbsent,
		NftTraceinfo:  offsetAbsent,
	}}

	set := func(dst *int8, typeName string) error {
		offset, ok, err := symbol.ParameterOffset(typeName)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if offset < 0 || offset > 127 {
			return errors.Errorf("parameter offset %d for %q out of signed-byte range", offset, typeName)
		}
		*dst = int8(offset)
		return nil
	}

	if err := set(&cfg.Offsets.SkBuff, typeSkBuff); err != nil {
		return ProbeConfig{}, err
	}
	if err := set(&cfg.Offsets.NetDevice, typeNetDevice); err != nil {
		return ProbeConfig{}, err
	}
	if err := set(&cfg.Offsets.Net, typeNet); err != nil {
		return ProbeConfig{}, err
	}
	if err := set(&cfg.Offsets.NftPktinfo, typeNftPktinfo); err != nil {
		return ProbeConfig{}, err
	}
	if err := set(&cfg.Offsets.NftTraceinfo, typeNftTraceinfo); err != nil {
		return ProbeConfig{}, err
	}

	for _, name := range dropReasonEnums {
		offset, ok, err := symbol.ParameterOffset(name)
		if err != nil {
			return ProbeConfig{}, err
		}
		if ok {
			if offset < 0 || offset > 127 {
				return ProbeConfig{}, errors.Errorf("drop reason offset %d out of signed-byte range", offset)
			}
			cfg.Offsets.SkbDropReason = int8(offset)
			break
		}
	}

	return cfg, nil
}

// LoadKernelBTF loads the running kernel's BTF spec. Absence of BTF support
// is fatal to collection.
func LoadKernelBTF() (*btf.Spec, error) {
	spec, err := btf.LoadKernelSpec()
	if err != nil {
		return nil, errors.Wrap(err, "load kernel BTF (kernel built without CONFIG_DEBUG_INFO_BTF?)")
	}
	return spec, nil
}
