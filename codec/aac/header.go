/*
NAME
  header.go

DESCRIPTION
  header.go decodes the 7 or 9 byte AAC ADTS frame header. It began as
  an adaptation of this module's earlier single-shot ADTS reader but is
  now driven incrementally from the shared RawReader instead of an
  io.Reader.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package aac provides an incremental AAC-ADTS frame parser.
package aac

import "fmt"

// FixedVariableSize is the ADTS header size when no CRC is present.
const FixedVariableSize = 7

// CRCSize is the size of the optional CRC that follows the fixed and
// variable header fields when ProtectionAbsent is false.
const CRCSize = 2

// bufferFullnessVBR is the adts_buffer_fullness sentinel value meaning
// "variable bit rate; fullness not applicable".
const bufferFullnessVBR = 0x7FF

// Header holds the decoded ADTS header fields.
type Header struct {
	MPEGVersion      int // 0: MPEG-4, 1: MPEG-2.
	ProtectionAbsent bool
	Profile          int // AAC profile (object type minus one); 1 == LC.
	SamplingFreqIdx  int
	Private          bool
	ChannelConfig    int

	// OriginalCopy and Home are the fixed-header original/copy and home
	// bits. Home is read from byte 3 bit 3 (mask 0x08) per the resolved
	// divergence: see DESIGN.md.
	OriginalCopy bool
	Home         bool

	// CopyrightID and CopyrightStart are distinct variable-header bits,
	// decoded from their own positions (Home at byte 3 bit 3, CopyrightID
	// at byte 3 bit 2) rather than conflated onto one bit position.
	// CopyrightStart takes the byte 3 bit 4 slot Home would otherwise
	// occupy, keeping all three fields on distinct bits. See DESIGN.md.
	CopyrightID    bool
	CopyrightStart bool

	FrameLength     int
	BufferFullness  int
	IsVBR           bool
	NumberAACFrames int

	BitDepth    int
	Channels    int
	ChannelMode string
	SampleRate  int
	Bitrate     int // Set during frame statistics mapping.

	Samples int
	Length  int // Header length in bytes, including CRC if present.
}

var samplingFrequencies = [16]int{
	96000, 88200, 64000, 48000, 44100, 32000,
	24000, 22050, 16000, 12000, 11025, 8000,
	7350, 0, 0, 0, // 13-15 reserved/escape.
}

// channelConfigNames mirrors MPEG's channel-mode naming style so the
// two codecs read consistently in logs and stats.
var channelConfigNames = map[int]string{
	1: "mono",
	2: "stereo (left, right)",
	3: "3.0 (center, left, right)",
	4: "4.0 (center, left, right, rear)",
	5: "5.0 (center, left, right, rear left, rear right)",
	6: "5.1 (5.0 + LFE)",
	7: "7.1 (6.1 + extra front)",
}

// ParseHeader decodes a header from the front of b, which must hold at
// least FixedVariableSize bytes.
func ParseHeader(b []byte) (h Header, ok bool) {
	if len(b) < FixedVariableSize {
		return h, false
	}

	sync := uint16(b[0])<<4 | uint16(b[1])>>4
	if sync != 0xFFF {
		return h, false
	}

	h.MPEGVersion = int((b[1] >> 3) & 0x1)
	layer := (b[1] >> 1) & 0x3
	if layer != 0 {
		return h, false
	}
	h.ProtectionAbsent = b[1]&0x1 == 1

	h.Profile = int((b[2] >> 6) & 0x3)
	h.SamplingFreqIdx = int((b[2] >> 2) & 0xF)
	if h.SamplingFreqIdx == 15 {
		return h, false
	}
	h.Private = (b[2]>>1)&0x1 == 1
	chanCfgMSB := b[2] & 0x1

	h.ChannelConfig = int(chanCfgMSB)<<2 | int((b[3]>>6)&0x3)
	h.OriginalCopy = (b[3]>>5)&0x1 == 1
	h.CopyrightStart = (b[3]>>4)&0x1 == 1
	h.Home = (b[3]>>3)&0x1 == 1
	h.CopyrightID = (b[3]>>2)&0x1 == 1

	h.FrameLength = int(b[3]&0x3)<<11 | int(b[4])<<3 | int((b[5]>>5)&0x7)
	if h.FrameLength == 0 {
		return h, false
	}

	h.BufferFullness = int(b[5]&0x1F)<<6 | int((b[6]>>2)&0x3F)
	h.IsVBR = h.BufferFullness == bufferFullnessVBR
	h.NumberAACFrames = int(b[6] & 0x3)

	h.SampleRate = samplingFrequencies[h.SamplingFreqIdx]
	if h.SampleRate == 0 {
		return h, false
	}
	h.ChannelMode = channelConfigNames[h.ChannelConfig]

	h.Samples = 1024
	h.BitDepth = 16
	h.Channels = h.ChannelConfig

	h.Length = FixedVariableSize
	if !h.ProtectionAbsent {
		h.Length += CRCSize
	}

	return h, true
}

// BufferFullnessString renders BufferFullness as "VBR" for the
// sentinel value, otherwise the numeric fullness.
func (h *Header) BufferFullnessString() string {
	if h.IsVBR {
		return "VBR"
	}
	return fmt.Sprintf("%d", h.BufferFullness)
}

// Key returns the cache key for this header, excluding the
// length-variable FrameLength and BufferFullness fields.
func (h *Header) Key() string {
	return fmt.Sprintf("%d|%v|%d|%d|%v|%d|%v|%v|%v|%v",
		h.MPEGVersion, h.ProtectionAbsent, h.Profile, h.SamplingFreqIdx,
		h.Private, h.ChannelConfig, h.OriginalCopy, h.Home, h.CopyrightID,
		h.CopyrightStart)
}
