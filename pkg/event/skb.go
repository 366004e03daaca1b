// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package event

import "encoding/json"

// SkbEvent composes every optional sub-record extracted from an sk_buff at
// a probe site. Field shapes are grounded on
// original_source/retis-events/src/skb.rs.
type SkbEvent struct {
	Eth      *SkbEthEvent     `json:"eth,omitempty"`
	Vlan     *SkbVlanEvent    `json:"vlan,omitempty"`
	Arp      *SkbArpEvent     `json:"arp,omitempty"`
	IP       *SkbIPEvent      `json:"ip,omitempty"`
	TCP      *SkbTCPEvent     `json:"tcp,omitempty"`
	UDP      *SkbUDPEvent     `json:"udp,omitempty"`
	ICMP     *SkbICMPEvent    `json:"icmp,omitempty"`
	ICMPv6   *SkbICMPEvent    `json:"icmpv6,omitempty"`
	Dev      *SkbDevEvent     `json:"dev,omitempty"`
	Ns       *SkbNsEvent      `json:"ns,omitempty"`
	Meta     *SkbMetaEvent    `json:"meta,omitempty"`
	DataRef  *SkbDataRefEvent `json:"data_ref,omitempty"`
	Gso      *SkbGsoEvent     `json:"gso,omitempty"`
	Packet   *SkbPacketEvent  `json:"packet,omitempty"`
}

// SectionID implements Section.
func (*SkbEvent) SectionID() SectionID { return Skb }

// SkbEthEvent carries Ethernet header fields.
type SkbEthEvent struct {
	Etype uint16 `json:"etype"`
	Src   string `json:"src"`
	Dst   string `json:"dst"`
}

// SkbVlanEvent carries 802.1Q tag fields.
type SkbVlanEvent struct {
	Pcp         uint8  `json:"pcp"`
	Dei         bool   `json:"dei"`
	Vid         uint16 `json:"vid"`
	Acceleration bool  `json:"acceleration"`
}

// ArpOperation is an ARP opcode.
type ArpOperation int

const (
	ArpRequest ArpOperation = iota
	ArpReply
	ArpReverseRequest
	ArpReverseReply
)

func (op ArpOperation) String() string {
	switch op {
	case ArpRequest:
		return "request"
	case ArpReply:
		return "reply"
	case ArpReverseRequest:
		return "reverse_request"
	case ArpReverseReply:
		return "reverse_reply"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the operation as its lowercase name.
func (op ArpOperation) MarshalJSON() ([]byte, error) {
	return json.Marshal(op.String())
}

// SkbArpEvent carries ARP fields.
type SkbArpEvent struct {
	Operation ArpOperation `json:"operation"`
	Sha       string       `json:"sha"`
	Spa       string       `json:"spa"`
	Tha       string       `json:"tha"`
	Tpa       string       `json:"tpa"`
}

// SkbIPv4Fields carries IPv4-only header fields.
type SkbIPv4Fields struct {
	Tos    uint8  `json:"tos"`
	ID     uint16 `json:"id"`
	Flags  uint8  `json:"flags"`
	Offset uint16 `json:"offset"`
}

// SkbIPv6Fields carries IPv6-only header fields.
type SkbIPv6Fields struct {
	FlowLabel uint32 `json:"flow_label"`
}

// SkbIPEvent carries the fields common to IPv4 and IPv6, plus exactly one of
// V4/V6. Its JSON projection flattens the version-specific fields into the
// same object, tagged by Version: the discriminant is absorbed rather than
// nested, per the spec's stable-serialization contract.
type SkbIPEvent struct {
	Saddr    string
	Daddr    string
	Version  uint8 // 4 or 6
	V4       *SkbIPv4Fields
	V6       *SkbIPv6Fields
	Protocol uint8
	Len      uint16
	TTL      uint8
	Ecn      uint8
}

// MarshalJSON flattens V4/V6 fields into the parent object alongside a
// version tag, as required by the stable JSON projection (§4.2).
func (ip *SkbIPEvent) MarshalJSON() ([]byte, error) {
	base := map[string]any{
		"saddr":    ip.Saddr,
		"daddr":    ip.Daddr,
		"version":  ip.Version,
		"protocol": ip.Protocol,
		"len":      ip.Len,
		"ttl":      ip.TTL,
		"ecn":      ip.Ecn,
	}
	switch ip.Version {
	case 4:
		if ip.V4 != nil {
			base["tos"] = ip.V4.Tos
			base["id"] = ip.V4.ID
			base["flags"] = ip.V4.Flags
			base["offset"] = ip.V4.Offset
		}
	case 6:
		if ip.V6 != nil {
			base["flow_label"] = ip.V6.FlowLabel
		}
	}
	return json.Marshal(base)
}

// SkbTCPEvent carries TCP header fields.
type SkbTCPEvent struct {
	Sport   uint16 `json:"sport"`
	Dport   uint16 `json:"dport"`
	Seq     uint32 `json:"seq"`
	AckSeq  uint32 `json:"ack_seq"`
	Window  uint16 `json:"window"`
	Doff    uint8  `json:"doff"`
	Flags   uint8  `json:"flags"`
}

// SkbUDPEvent carries UDP header fields.
type SkbUDPEvent struct {
	Sport uint16 `json:"sport"`
	Dport uint16 `json:"dport"`
	Len   uint16 `json:"len"`
}

// SkbICMPEvent carries ICMP/ICMPv6 header fields; both share this shape.
type SkbICMPEvent struct {
	Type uint8 `json:"type"`
	Code uint8 `json:"code"`
}

// SkbDevEvent carries the net_device the packet is associated with.
type SkbDevEvent struct {
	Name      string  `json:"name"`
	Ifindex   uint32  `json:"ifindex"`
	RxIfindex *uint32 `json:"rx_ifindex,omitempty"`
}

// SkbNsEvent carries the network namespace id.
type SkbNsEvent struct {
	Netns uint32 `json:"netns"`
}

// SkbMetaEvent carries skb bookkeeping metadata: length, hash, checksum
// status and QoS priority.
type SkbMetaEvent struct {
	Len       uint32 `json:"len"`
	DataLen   uint32 `json:"data_len"`
	Hash      uint32 `json:"hash"`
	IPSummed  uint8  `json:"ip_summed"`
	Csum      uint32 `json:"csum"`
	CsumLevel uint8  `json:"csum_level"`
	Priority  uint32 `json:"priority"`
}

// SkbDataRefEvent carries the skb's clone/refcount bookkeeping.
type SkbDataRefEvent struct {
	Nohdr   bool  `json:"nohdr"`
	Cloned  bool  `json:"cloned"`
	Fclone  uint8 `json:"fclone"`
	Users   uint8 `json:"users"`
	Dataref uint8 `json:"dataref"`
}

// SkbGsoEvent carries GSO (Generic Segmentation Offload) bookkeeping.
type SkbGsoEvent struct {
	Flags uint8  `json:"flags"`
	Frags uint8  `json:"frags"`
	Size  uint32 `json:"size"`
	Segs  uint32 `json:"segs"`
	Type  uint32 `json:"type"`
}

// SkbPacketEvent carries the raw packet bytes captured at the probe site,
// along with the total (pre-truncation) length.
type SkbPacketEvent struct {
	Len        uint32 `json:"len"`
	CaptureLen uint32 `json:"capture_len"`
	Packet     []byte `json:"packet"`
}
