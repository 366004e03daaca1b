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

func TestAttachOnFreshBuilderIsFatal(t *testing.T) {
	b := &baseBuilder{kind: KprobeKind}
	err := b.readyToAttach()
	assert.Error(t, err)
}

func TestInitThenAttachIsReady(t *testing.T) {
	b := &baseBuilder{kind: KprobeKind}
	require.NoError(t, b.init(nil, nil))
	assert.NoError(t, b.readyToAttach())
}

func TestDetachIsIdempotent(t *testing.T) {
	b := &baseBuilder{kind: KprobeKind}
	require.NoError(t, b.init(nil, nil))
	require.NoError(t, b.detach())
	require.NoError(t, b.detach())
	assert.Error(t, b.readyToAttach())
}

func TestUsdtBuilderRejectsMultipleHooks(t *testing.T) {
	b := NewUsdtBuilder(nil, "probe_usdt")
	hooks := map[Hook]struct{}{
		{Program: "a"}: {},
		{Program: "b"}: {},
	}
	err := b.Init(nil, hooks)
	assert.Error(t, err)
}

func TestUsdtBuilderAcceptsSingleHook(t *testing.T) {
	b := NewUsdtBuilder(nil, "probe_usdt")
	hooks := map[Hook]struct{}{{Program: "a"}: {}}
	assert.NoError(t, b.Init(nil, hooks))
}
