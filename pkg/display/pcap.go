// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package display

import (
	"bytes"
	"encoding/binary"
	"io"
	"os/exec"
	"sync"
	"syscall"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ls-2018/retis/internal/retislog"
)

// snaplen is 2^18, the capture length ceiling the spec pins for the pcap
// file header.
const snaplen = 1 << 18

// pcapDispatcher is the process-wide, lazily-initialized external packet
// disassembler. It is a process-wide shared resource: only one renderer
// writes+reads at a time, serialized by mu.
type pcapDispatcher struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
}

var (
	dispatcherOnce sync.Once
	dispatcher     *pcapDispatcher
	dispatcherErr  error
)

func getDispatcher(printLL bool) (*pcapDispatcher, error) {
	dispatcherOnce.Do(func() {
		dispatcher, dispatcherErr = newPcapDispatcher(printLL)
	})
	return dispatcher, dispatcherErr
}

// newPcapDispatcher spawns tcpdump in pipe mode and writes the pcap file
// header through pcapgo. Unlike a plain pcapgo file writer, the destination
// is a child process's stdin, not a file.
func newPcapDispatcher(printLL bool) (*pcapDispatcher, error) {
	args := []string{
		"-l",
		"--absolute-tcp-sequence-number",
		"--dont-verify-checksums",
		"-nn",
		"-t",
		"-r",
		"-",
	}
	if printLL {
		args = append(args, "-e")
	}

	cmd := exec.Command("tcpdump", args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "open tcpdump stdin pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "open tcpdump stdout pipe")
	}
	// stderr is discarded per the external tool contract (§6).
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		retislog.L().Error("cannot execute tcpdump", zap.Error(err))
		return nil, errors.Wrap(err, "spawn tcpdump")
	}

	// pcapgo.Writer.WriteFileHeader emits exactly the 24-byte header the
	// spec pins: microsecond-resolution magic d4c3b2a1 in little-endian
	// byte order, version 2.4, zone/sigfigs 0, the given snaplen and
	// linktype.
	w := pcapgo.NewWriter(stdin)
	if err := w.WriteFileHeader(snaplen, layers.LinkTypeEthernet); err != nil {
		_ = stdin.Close()
		_ = cmd.Process.Kill()
		return nil, errors.Wrap(err, "write pcap file header")
	}

	return &pcapDispatcher{cmd: cmd, stdin: stdin, stdout: stdout}, nil
}

// writePacketRecord emits the 16-byte per-packet record header (both
// timestamp fields zeroed, per §4.5.1) followed by the raw bytes. Written
// by hand rather than through pcapgo.Writer.WritePacket, which stamps a
// wall-clock-derived timestamp the spec requires to stay zeroed.
func writePacketRecord(w io.Writer, captureLen, length uint32, data []byte) error {
	var hdr [16]byte
	binary.NativeEndian.PutUint32(hdr[0:4], 0)
	binary.NativeEndian.PutUint32(hdr[4:8], 0)
	binary.NativeEndian.PutUint32(hdr[8:12], captureLen)
	binary.NativeEndian.PutUint32(hdr[12:16], length)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

const readChunk = 250

// render writes one packet's pcap record to the child and performs
// blocking reads of up to readChunk bytes until a short read occurs,
// stripping the terminating line's trailing newline.
func (d *pcapDispatcher) render(captureLen, length uint32, packet []byte) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := writePacketRecord(d.stdin, captureLen, length, packet); err != nil {
		return "", err
	}

	var out bytes.Buffer
	buf := make([]byte, readChunk)
	for {
		n, err := d.stdout.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if n < readChunk {
				chunk = bytes.TrimSuffix(chunk, []byte("\n"))
			}
			out.Write(chunk)
		}
		if err != nil {
			return out.String(), err
		}
		if n < readChunk {
			return out.String(), nil
		}
	}
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, io.EOF)
}

// RenderPacket formats a raw skb packet through the pcap dispatcher. Any
// error — dispatcher spawn failure, broken pipe, or a render I/O error —
// degrades to the literal "unknown packet" rather than propagating: the
// text sink's contract is that output is always well-formed (§7).
func RenderPacket(captureLen, length uint32, packet []byte, format *DisplayFormat) string {
	d, err := getDispatcher(format.PrintLL)
	if err != nil {
		retislog.L().Error("pcap dispatcher unavailable", zap.Error(err))
		return "unknown packet"
	}

	out, err := d.render(captureLen, length, packet)
	if err != nil {
		if isBrokenPipe(err) {
			retislog.L().Debug("got broken pipe from pcap dispatcher")
		} else {
			retislog.L().Error("cannot format packet", zap.Error(err))
		}
		return "unknown packet"
	}
	return out
}
