// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package display

import (
	"github.com/ls-2018/retis/pkg/event"
)

// skbEventFmt implements EventFmt for *event.SkbEvent. Rendering order and
// elision rules are pinned by §4.5 and §8 and must match exactly.
type skbEventFmt struct {
	*event.SkbEvent
}

// WrapSkb adapts a SkbEvent for EventFmt-based rendering.
func WrapSkb(e *event.SkbEvent) EventFmt {
	return skbEventFmt{e}
}

func (s skbEventFmt) EventFmt(f *Formatter, format *DisplayFormat) error {
	space := NewDelimWriter(' ')

	if s.Ns != nil {
		if err := space.Write(f); err != nil {
			return err
		}
		if err := f.Printf("ns %d", s.Ns.Netns); err != nil {
			return err
		}
	}

	if s.Dev != nil {
		if err := space.Write(f); err != nil {
			return err
		}
		if s.Dev.Ifindex > 0 {
			if err := f.Printf("if %d", s.Dev.Ifindex); err != nil {
				return err
			}
			if s.Dev.Name != "" {
				if err := f.Printf(" (%s)", s.Dev.Name); err != nil {
					return err
				}
			}
		}
		if s.Dev.RxIfindex != nil {
			if err := f.Printf(" rxif %d", *s.Dev.RxIfindex); err != nil {
				return err
			}
		}
	}

	// Only print VLAN acceleration info if the link layer is printed, as
	// otherwise we'd print this but not the VLAN data in the payload,
	// which would be confusing. JSON is unaffected: it always includes
	// the vlan section when present.
	if format.PrintLL && s.Vlan != nil {
		if err := space.Write(f); err != nil {
			return err
		}
		drop, accel := "", ""
		if s.Vlan.Dei {
			drop = " drop"
		}
		if s.Vlan.Acceleration {
			accel = " accel"
		}
		if err := f.Printf("vlan (id %d prio %d%s%s)", s.Vlan.Vid, s.Vlan.Pcp, drop, accel); err != nil {
			return err
		}
	}

	if s.Meta != nil || s.DataRef != nil {
		if err := space.Write(f); err != nil {
			return err
		}
		if err := f.WriteString("skb ["); err != nil {
			return err
		}
		if s.Meta != nil {
			if err := writeMeta(f, s.Meta); err != nil {
				return err
			}
		}
		if s.Meta != nil && s.DataRef != nil {
			if err := f.WriteString(" "); err != nil {
				return err
			}
		}
		if s.DataRef != nil {
			if err := writeDataRef(f, s.DataRef); err != nil {
				return err
			}
		}
		if err := f.WriteString("]"); err != nil {
			return err
		}
	}

	if s.Gso != nil {
		if err := space.Write(f); err != nil {
			return err
		}
		if err := writeGso(f, s.Gso); err != nil {
			return err
		}
	}

	// Do not add any other section than the raw packet one after this.
	if format.Multiline() && space.Used() {
		if err := f.WriteString("\n"); err != nil {
			return err
		}
		space.Reset()
	}

	if s.Packet != nil {
		if err := space.Write(f); err != nil {
			return err
		}
		line := RenderPacket(s.Packet.CaptureLen, s.Packet.Len, s.Packet.Packet, format)
		return f.WriteString(line)
	}

	if err := space.Write(f); err != nil {
		return err
	}
	return f.WriteString("unknown packet")
}

func writeMeta(f *Formatter, meta *event.SkbMetaEvent) error {
	if err := f.WriteString("csum "); err != nil {
		return err
	}
	switch meta.IPSummed {
	case 0:
		if err := f.WriteString("none "); err != nil {
			return err
		}
	case 1:
		if err := f.Printf("unnecessary (level %d) ", meta.CsumLevel); err != nil {
			return err
		}
	case 2:
		if err := f.Printf("complete (0x%x) ", meta.Csum); err != nil {
			return err
		}
	case 3:
		start := meta.Csum & 0xffff
		off := meta.Csum >> 16
		if err := f.Printf("partial (start %d off %d) ", start, off); err != nil {
			return err
		}
	default:
		if err := f.Printf("unknown (%d) ", meta.IPSummed); err != nil {
			return err
		}
	}

	if meta.Hash != 0 {
		if err := f.Printf("hash 0x%x ", meta.Hash); err != nil {
			return err
		}
	}
	if err := f.Printf("len %d ", meta.Len); err != nil {
		return err
	}
	if meta.DataLen != 0 {
		if err := f.Printf("data_len %d ", meta.DataLen); err != nil {
			return err
		}
	}
	return f.Printf("priority %d", meta.Priority)
}

func writeDataRef(f *Formatter, dr *event.SkbDataRefEvent) error {
	if dr.Nohdr {
		if err := f.WriteString("nohdr "); err != nil {
			return err
		}
	}
	if dr.Cloned {
		if err := f.WriteString("cloned "); err != nil {
			return err
		}
	}
	if dr.Fclone > 0 {
		if err := f.Printf("fclone %d ", dr.Fclone); err != nil {
			return err
		}
	}
	return f.Printf("users %d dataref %d", dr.Users, dr.Dataref)
}

func writeGso(f *Formatter, gso *event.SkbGsoEvent) error {
	if err := f.Printf("gso [type 0x%x ", gso.Type); err != nil {
		return err
	}
	if gso.Flags != 0 {
		if err := f.Printf("flags 0x%x ", gso.Flags); err != nil {
			return err
		}
	}
	if gso.Frags != 0 {
		if err := f.Printf("frags %d ", gso.Frags); err != nil {
			return err
		}
	}
	if gso.Segs != 0 {
		if err := f.Printf("segs %d ", gso.Segs); err != nil {
			return err
		}
	}
	return f.Printf("size %d]", gso.Size)
}
