/*
NAME
  header.go

DESCRIPTION
  header.go decodes the 4-byte (plus optional 2-byte CRC) MPEG audio
  frame header.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package mpeg provides an incremental MPEG (Layer I/II/III) audio
// frame parser.
package mpeg

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the fixed MPEG header size before any optional CRC.
const HeaderSize = 4

// CRCSize is the size of the optional 16-bit CRC that follows the
// header when Protection is false.
const CRCSize = 2

// Header holds the decoded fields of one MPEG audio frame header.
// BitDepth, Channels, ChannelMode, SampleRate and Bitrate are the
// fields shared across all codec headers; Bitrate is left zero here
// and only set during frame statistics mapping, never at header-parse
// time.
type Header struct {
	Version     float64 // 1, 2, or 2.5.
	Layer       int     // 1, 2, or 3.
	Protection  bool     // true: protection bit set, no CRC follows.
	BitrateIdx  int
	SampleRateIdx int
	Padding     bool
	Private     bool
	ChannelModeIdx int
	ModeExtension  int // Raw 2-bit value, not re-indexed per layer; see SPEC_FULL.md §11.
	Copyright   bool
	Original    bool
	Emphasis    int

	BitDepth    int
	Channels    int
	ChannelMode string
	SampleRate  int
	Bitrate     int // Set during frame statistics mapping.

	Samples     int // Samples per frame for this version/layer.
	Length      int // Header length in bytes, including CRC if present.
	FrameLength int // Total frame length (header + payload), in bytes.

	nominalBitrate int // kbps, from the bitrate table; used to derive FrameLength.
}

// Key returns the cache key for this header: the stable bits that two
// frames of the "same" format will always share, excluding the
// length-variable Padding bit.
func (h *Header) Key() string {
	return fmt.Sprintf("%v|%d|%v|%d|%d|%v|%d|%d",
		h.Version, h.Layer, h.Protection, h.BitrateIdx, h.SampleRateIdx,
		h.Private, h.ChannelModeIdx, h.ModeExtension)
}

var channelModeNames = [4]string{"stereo", "joint stereo", "dual channel", "mono"}

// bitrateTableV1 and bitrateTableV2 map (version-is-v1, layer) to the kbps bitrate table
// indexed by the 4-bit bitrate index (0 and 15 are always invalid).
var bitrateTableV1 = [3][16]int{
	// Layer I
	{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0},
	// Layer II
	{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0},
	// Layer III
	{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
}

var bitrateTableV2 = [3][16]int{
	// Layer I
	{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
	// Layer II & III (shared table for MPEG2/2.5).
	{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
	{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
}

var sampleRateTableV1 = [4]int{44100, 48000, 32000, 0}
var sampleRateTableV2 = [4]int{22050, 24000, 16000, 0}
var sampleRateTableV25 = [4]int{11025, 12000, 8000, 0}

// ParseHeader decodes a header from the front of b, which must hold at
// least HeaderSize bytes. It returns ok == false for any structural
// rejection (bad sync, reserved fields, zero bitrate index, etc.) so
// the caller can advance and resynchronize.
func ParseHeader(b []byte) (h Header, ok bool) {
	if len(b) < HeaderSize {
		return h, false
	}
	fixed := binary.BigEndian.Uint32(b[0:4])

	if (fixed&0xFFE00000)>>21 != 0x7FF {
		return h, false
	}

	versionBits := (fixed & 0x00180000) >> 19
	switch versionBits {
	case 0b00:
		h.Version = 2.5
	case 0b10:
		h.Version = 2
	case 0b11:
		h.Version = 1
	default:
		return h, false // Reserved.
	}

	layerBits := (fixed & 0x00060000) >> 17
	switch layerBits {
	case 0b01:
		h.Layer = 3
	case 0b10:
		h.Layer = 2
	case 0b11:
		h.Layer = 1
	default:
		return h, false // Reserved.
	}

	h.Protection = (fixed&0x00010000)>>16 == 1

	h.BitrateIdx = int((fixed & 0x0000F000) >> 12)
	if h.BitrateIdx == 0x0 || h.BitrateIdx == 0xF {
		return h, false
	}

	h.SampleRateIdx = int((fixed & 0x00000C00) >> 10)
	if h.SampleRateIdx == 0x3 {
		return h, false
	}

	h.Padding = (fixed&0x00000200)>>9 == 1
	h.Private = (fixed&0x00000100)>>8 == 1
	h.ChannelModeIdx = int((fixed & 0x000000C0) >> 6)
	// ModeExtension keeps the raw 2-bit field regardless of layer; a
	// deliberate choice, not an oversight, see SPEC_FULL.md §11.
	h.ModeExtension = int((fixed & 0x00000030) >> 4)
	h.Copyright = (fixed&0x00000008)>>3 == 1
	h.Original = (fixed&0x00000004)>>2 == 1
	h.Emphasis = int(fixed & 0x00000003)
	if h.Emphasis == 0b10 {
		return h, false // Reserved.
	}

	var bitrates *[16]int
	var rates *[4]int
	if h.Version == 1 {
		bitrates = &bitrateTableV1[h.Layer-1]
		rates = &sampleRateTableV1
	} else {
		bitrates = &bitrateTableV2[h.Layer-1]
		if h.Version == 2 {
			rates = &sampleRateTableV2
		} else {
			rates = &sampleRateTableV25
		}
	}
	h.nominalBitrate = bitrates[h.BitrateIdx]
	h.SampleRate = rates[h.SampleRateIdx]

	switch {
	case h.Layer == 1:
		h.Samples = 384
	case h.Layer == 2:
		h.Samples = 1152
	default: // Layer III
		if h.Version == 1 {
			h.Samples = 1152
		} else {
			h.Samples = 576
		}
	}

	h.Channels = 2
	if h.ChannelModeIdx == 3 {
		h.Channels = 1
	}
	h.ChannelMode = channelModeNames[h.ChannelModeIdx]
	h.BitDepth = 16

	h.Length = HeaderSize
	if !h.Protection {
		h.Length += CRCSize
	}

	padBytes := 1
	if h.Layer == 1 {
		padBytes = 4
	}
	pad := 0
	if h.Padding {
		pad = padBytes
	}
	h.FrameLength = (125*h.nominalBitrate*h.Samples)/h.SampleRate + pad

	return h, true
}
