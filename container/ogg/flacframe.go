/*
NAME
  flacframe.go

DESCRIPTION
  flacframe.go wraps a FLAC-in-Ogg audio packet with the STREAMINFO
  bytes remembered from the stream's first page.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ogg

import (
	"github.com/ausocean/audioframe/bitio"
	"github.com/ausocean/audioframe/codec/codecutil"
	"github.com/ausocean/audioframe/codec/flac"
)

// flacOggMagic identifies the first packet of a FLAC-in-Ogg stream:
// 0x7F, "FLAC", a mapping version, header-packet count, then the
// literal "fLaC" marker and a STREAMINFO metadata block starting at
// byte 13.
var flacOggMagic = []byte("\x7FFLAC")

const flacOggStreamInfoOffset = 13

// FLACFrame is one FLAC-in-Ogg audio packet, decoded in isolation (no
// trailing-CRC resync is needed since Ogg already delimits it) and
// carrying the STREAMINFO block recovered from the stream's first
// page.
type FLACFrame struct {
	Header     flac.Header
	StreamInfo []byte
	Data       []byte
	CRC32      uint32

	Samples     int
	Duration    float64
	FrameNumber int

	TotalBytesOut int64
	TotalSamples  int64
	TotalDuration float64
}

func (f *FLACFrame) GetTotalBytesOut() int64   { return f.TotalBytesOut }
func (f *FLACFrame) GetTotalSamples() int64    { return f.TotalSamples }
func (f *FLACFrame) GetTotalDuration() float64 { return f.TotalDuration }

var _ codecutil.Frame = (*FLACFrame)(nil)

// parseFLACOggFrame decodes packet as a FLAC native frame header in
// isolation. ok is false for packets that aren't frame candidates (not
// starting with the 0xFF sync byte) or that fail header validation.
func parseFLACOggFrame(packet []byte, streamInfo []byte, warn func(msg string, kv ...interface{})) (*FLACFrame, bool) {
	if len(packet) == 0 || packet[0] != 0xFF {
		return nil, false
	}
	h, _, ok, _ := flac.ParseHeader(packet)
	if !ok {
		warn("ogg: flac-in-ogg packet failed header validation")
		return nil, false
	}
	return &FLACFrame{
		Header:     h,
		StreamInfo: streamInfo,
		Data:       packet,
		CRC32:      bitio.FrameCRC32(packet),
		Samples:    h.BlockSize,
	}, true
}
