// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package probe

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind discriminates the Probe tagged variant.
type Kind int

const (
	KprobeKind Kind = iota
	KretprobeKind
	RawTracepointKind
	UsdtKind
)

func (k Kind) String() string {
	switch k {
	case KprobeKind:
		return "kprobe"
	case KretprobeKind:
		return "kretprobe"
	case RawTracepointKind:
		return "raw_tracepoint"
	case UsdtKind:
		return "usdt"
	default:
		return "unknown"
	}
}

// UsdtTarget names a user-space statically defined tracepoint.
type UsdtTarget struct {
	Pid      int
	Path     string
	Provider string
	Name     string
}

// Probe is a tagged variant over the four probe kinds. Exactly one of
// Symbol or Usdt is populated, matching Kind.
type Probe struct {
	Kind   Kind
	Symbol *Symbol
	Usdt   *UsdtTarget
}

// NewKprobe wraps symbol as a Kprobe probe.
func NewKprobe(symbol *Symbol) Probe {
	return Probe{Kind: KprobeKind, Symbol: symbol}
}

// NewKretprobe wraps symbol as a Kretprobe probe.
func NewKretprobe(symbol *Symbol) Probe {
	return Probe{Kind: KretprobeKind, Symbol: symbol}
}

// NewRawTracepoint wraps symbol as a RawTracepoint probe.
func NewRawTracepoint(symbol *Symbol) Probe {
	return Probe{Kind: RawTracepointKind, Symbol: symbol}
}

// NewUsdt builds a Usdt probe.
func NewUsdt(target UsdtTarget) Probe {
	return Probe{Kind: UsdtKind, Usdt: &target}
}

// CLIType is the probe type as named on the CLI.
type CLIType int

const (
	CLIKprobe CLIType = iota
	CLIKretprobe
	CLIRawTracepoint
)

func (t CLIType) String() string {
	switch t {
	case CLIKprobe:
		return "kprobe"
	case CLIKretprobe:
		return "kretprobe"
	case CLIRawTracepoint:
		return "raw_tracepoint"
	default:
		return "unknown"
	}
}

// ParseCLI parses a "type:target" probe spec. Recognized type prefixes are
// kprobe|k, kretprobe|kr and raw_tracepoint|tp. With no colon at all, the
// default type is kprobe and the whole input is the target. Any prefix that
// doesn't match a known type is a fatal parse error — including when the
// target itself contains further colons, since tracepoint names must be
// spelled with the explicit tp: (or raw_tracepoint:) prefix.
func ParseCLI(input string) (CLIType, string, error) {
	prefix, target, hasColon := strings.Cut(input, ":")
	if !hasColon {
		return CLIKprobe, input, nil
	}

	switch prefix {
	case "kprobe", "k":
		return CLIKprobe, target, nil
	case "kretprobe", "kr":
		return CLIKretprobe, target, nil
	case "raw_tracepoint", "tp":
		return CLIRawTracepoint, target, nil
	default:
		return 0, "", errors.Errorf("invalid probe type %q", prefix)
	}
}

// SymbolFilter decides whether a resolved Symbol should become a Probe, e.g.
// "does this function actually take an sk_buff".
type SymbolFilter func(*Symbol) bool

// SymbolResolver resolves a CLI target string to the set of kernel symbols
// it names. Kprobe/kretprobe targets match function names; raw tracepoint
// targets match event names. This indirection is the seam where the
// (out-of-scope) symbol enumeration/loader plumbing plugs in.
type SymbolResolver interface {
	MatchingFunctions(target string) ([]*Symbol, error)
	MatchingEvents(target string) ([]*Symbol, error)
}

// ProbeFromCLI resolves spec to a set of Probes: it parses the CLI spec,
// resolves the target to candidate Symbols via resolver, drops any symbol
// that filter rejects, and wraps survivors into Probes of the parsed kind.
func ProbeFromCLI(spec string, resolver SymbolResolver, filter SymbolFilter) ([]Probe, error) {
	cliType, target, err := ParseCLI(spec)
	if err != nil {
		return nil, err
	}

	var symbols []*Symbol
	switch cliType {
	case CLIKprobe, CLIKretprobe:
		symbols, err = resolver.MatchingFunctions(target)
	case CLIRawTracepoint:
		symbols, err = resolver.MatchingEvents(target)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "resolve probe target %q", target)
	}

	probes := make([]Probe, 0, len(symbols))
	for _, sym := range symbols {
		if filter != nil && !filter(sym) {
			continue
		}
		switch cliType {
		case CLIKprobe:
			probes = append(probes, NewKprobe(sym))
		case CLIKretprobe:
			probes = append(probes, NewKretprobe(sym))
		case CLIRawTracepoint:
			probes = append(probes, NewRawTracepoint(sym))
		}
	}
	return probes, nil
}
