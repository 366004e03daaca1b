// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCLIDefaultsToKprobe(t *testing.T) {
	typ, target, err := ParseCLI("consume_skb")
	require.NoError(t, err)
	assert.Equal(t, CLIKprobe, typ)
	assert.Equal(t, "consume_skb", target)
}

func TestParseCLIShortKretprobe(t *testing.T) {
	typ, target, err := ParseCLI("kr:kfree_skb")
	require.NoError(t, err)
	assert.Equal(t, CLIKretprobe, typ)
	assert.Equal(t, "kfree_skb", target)
}

func TestParseCLITracepointPrefixWinsOverExtraColons(t *testing.T) {
	typ, target, err := ParseCLI("tp:skb:kfree_skb")
	require.NoError(t, err)
	assert.Equal(t, CLIRawTracepoint, typ)
	assert.Equal(t, "skb:kfree_skb", target)
}

func TestParseCLIUnknownPrefixIsFatal(t *testing.T) {
	_, _, err := ParseCLI("xyz:foo")
	assert.Error(t, err)
}

type fakeResolver struct {
	functions map[string][]*Symbol
	events    map[string][]*Symbol
}

func (f *fakeResolver) MatchingFunctions(target string) ([]*Symbol, error) {
	return f.functions[target], nil
}

func (f *fakeResolver) MatchingEvents(target string) ([]*Symbol, error) {
	return f.events[target], nil
}

func TestProbeFromCLIDropsFilteredSymbols(t *testing.T) {
	resolver := &fakeResolver{
		functions: map[string][]*Symbol{
			"consume_skb": {NewSymbol("consume_skb", nil), NewSymbol("consume_skb_unrelated", nil)},
		},
	}
	filter := func(s *Symbol) bool { return s.Name == "consume_skb" }

	probes, err := ProbeFromCLI("consume_skb", resolver, filter)
	require.NoError(t, err)
	require.Len(t, probes, 1)
	assert.Equal(t, KprobeKind, probes[0].Kind)
	assert.Equal(t, "consume_skb", probes[0].Symbol.Name)
}
