// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package display

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ls-2018/retis/pkg/event"
)

func TestEventMissingCommonRendersEmpty(t *testing.T) {
	e := event.New()
	require.NoError(t, e.Insert(&event.KernelEvent{Symbol: "consume_skb", Probe: "kprobe"}))

	format := NewDisplayFormat(SingleLine)
	got := Render(WrapEvent(e), format, NewFormatterConf())
	require.Equal(t, "", got)
}
