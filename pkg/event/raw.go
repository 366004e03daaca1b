// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package event

import "github.com/ls-2018/retis/pkg/nettext"

// NewSkbEthEvent builds an Ethernet section from the wire-format hardware
// addresses a probe extracts from skb->head.
func NewSkbEthEvent(etype uint16, src, dst [6]byte) *SkbEthEvent {
	return &SkbEthEvent{
		Etype: etype,
		Src:   nettext.MAC(src),
		Dst:   nettext.MAC(dst),
	}
}

// NewSkbIPv4Event builds an IPv4 IP section from the wire-format (raw u32,
// network byte order already resolved to host order by the extraction
// layer) source/destination addresses.
func NewSkbIPv4Event(saddr, daddr uint32, protocol uint8, length uint16, ttl, ecn uint8, v4 SkbIPv4Fields) *SkbIPEvent {
	return &SkbIPEvent{
		Saddr:    nettext.IPv4(saddr),
		Daddr:    nettext.IPv4(daddr),
		Version:  4,
		V4:       &v4,
		Protocol: protocol,
		Len:      length,
		TTL:      ttl,
		Ecn:      ecn,
	}
}

// NewSkbIPv6Event builds an IPv6 IP section. IPv6 addresses are rendered by
// the extraction layer (net.IP's own text form), not by nettext, which only
// covers the IPv4 32-bit packed form the kernel stamps into skb metadata.
func NewSkbIPv6Event(saddr, daddr string, protocol uint8, length uint16, ttl, ecn uint8, v6 SkbIPv6Fields) *SkbIPEvent {
	return &SkbIPEvent{
		Saddr:    saddr,
		Daddr:    daddr,
		Version:  6,
		V6:       &v6,
		Protocol: protocol,
		Len:      length,
		TTL:      ttl,
		Ecn:      ecn,
	}
}
