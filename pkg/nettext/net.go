// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package nettext holds allocation-light text encoders for addresses and the
// monotonic/realtime clock reads the collector needs to compute the
// wall-clock offset stamped into every event.
package nettext

import (
	"strconv"
	"strings"
)

// IPv4 renders a big-endian-packed IPv4 address as dotted decimal, with no
// leading zeros and the final octet always present (e.g. "0.0.0.0").
func IPv4(raw uint32) string {
	var b strings.Builder
	b.Grow(15)
	b.WriteString(strconv.Itoa(int(raw >> 24 & 0xff)))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(int(raw >> 16 & 0xff)))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(int(raw >> 8 & 0xff)))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(int(raw & 0xff)))
	return b.String()
}

const hexDigits = "0123456789abcdef"

// MAC renders a 6-byte hardware address as six lowercase hex pairs separated
// by colons.
func MAC(raw [6]byte) string {
	var b strings.Builder
	b.Grow(17)
	for i, o := range raw {
		b.WriteByte(hexDigits[o>>4])
		b.WriteByte(hexDigits[o&0xf])
		if i < 5 {
			b.WriteByte(':')
		}
	}
	return b.String()
}
