/*
NAME
  header.go

DESCRIPTION
  header.go decodes the Opus identification header carried as the
  first packet of an Ogg-wrapped Opus stream.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package opus decodes Opus identification headers and per-packet TOC
// bytes from already-framed Ogg packets; Opus carries no byte-stream
// sync pattern of its own, so there is no incremental resync loop
// here, unlike the fixed-length codec packages.
package opus

import (
	"encoding/binary"
	"errors"
)

// OutputSampleRate is the rate Opus always decodes to, regardless of
// the informational input rate carried in the identification header.
const OutputSampleRate = 48000

var errShortHeader = errors.New("opus: identification header too short")
var errBadMagic = errors.New("opus: identification header missing OpusHead magic")

// IdentificationHeader holds the decoded fields of an Opus "OpusHead"
// packet.
type IdentificationHeader struct {
	Version           int
	Channels          int
	PreSkip           int
	InputSampleRate   int
	OutputGain        int16
	ChannelMappingFam int

	StreamCount  int
	CoupledCount int
	ChannelMap   []byte
}

// ParseIdentificationHeader decodes b, which must be the full first
// Opus packet in a stream (the "OpusHead" page payload).
func ParseIdentificationHeader(b []byte) (IdentificationHeader, error) {
	var h IdentificationHeader
	if len(b) < 19 {
		return h, errShortHeader
	}
	if string(b[0:8]) != "OpusHead" {
		return h, errBadMagic
	}
	h.Version = int(b[8])
	h.Channels = int(b[9])
	h.PreSkip = int(binary.LittleEndian.Uint16(b[10:12]))
	h.InputSampleRate = int(binary.LittleEndian.Uint32(b[12:16]))
	h.OutputGain = int16(binary.LittleEndian.Uint16(b[16:18]))
	h.ChannelMappingFam = int(b[18])

	if h.ChannelMappingFam == 0 {
		return h, nil
	}
	if len(b) < 21+h.Channels {
		return h, errShortHeader
	}
	h.StreamCount = int(b[19])
	h.CoupledCount = int(b[20])
	h.ChannelMap = append([]byte{}, b[21:21+h.Channels]...)
	return h, nil
}
