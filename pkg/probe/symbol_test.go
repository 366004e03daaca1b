// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInspectSymbolFailsHardWithoutBTF(t *testing.T) {
	sym := NewSymbol("consume_skb", nil)
	_, err := InspectSymbol(sym)
	assert.Error(t, err)
}

func TestParameterOffsetWithoutBTFIsError(t *testing.T) {
	sym := NewSymbol("consume_skb", nil)
	_, ok, err := sym.ParameterOffset("struct sk_buff *")
	assert.Error(t, err)
	assert.False(t, ok)
}
