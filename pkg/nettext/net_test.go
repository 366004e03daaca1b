// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package nettext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPv4(t *testing.T) {
	assert.Equal(t, "1.2.3.4", IPv4(0x01020304))
	assert.Equal(t, "0.0.0.0", IPv4(0))
	assert.Equal(t, "255.0.0.1", IPv4(0xFF000001))
}

func TestMAC(t *testing.T) {
	assert.Equal(t, "aa:bb:cc:00:11:22", MAC([6]byte{0xaa, 0xbb, 0xcc, 0x00, 0x11, 0x22}))
}
