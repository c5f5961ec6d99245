/*
NAME
  header.go

DESCRIPTION
  header.go decodes the variable-length FLAC native frame header.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package flac provides an incremental FLAC native frame parser.
package flac

import "fmt"

// MinFrameSize and MaxFrameSize bound the trailing-CRC confirmation
// scan.
const (
	MinFrameSize = 2
	MaxFrameSize = 512 << 10
)

// Header holds the decoded fields of one FLAC native frame header.
type Header struct {
	BlockingStrategyVariable bool
	BlockSizeCode            int
	SampleRateCode           int
	ChannelAssignment        int
	SampleSizeCode           int
	CodedNumber              uint64
	CodedNumberIsSample      bool

	BlockSize int

	BitDepth    int
	Channels    int
	ChannelMode string
	SampleRate  int
	Bitrate     int // Set during frame statistics mapping.

	Length int // Header length in bytes, including the header CRC-8 byte.
}

var blockSizeTable = [16]int{
	0, 192, 576, 1152, 2304, 4608,
	-1, -1, // 6, 7: read from trailing 8/16 bits.
	256, 512, 1024, 2048, 4096, 8192, 16384, 32768,
}

var sampleRateTable = [16]int{
	0, 88200, 176400, 192000,
	8000, 16000, 22050, 24000,
	32000, 44100, 48000, 96000,
	-1, -1, -1, // 12, 13, 14: read from trailing bits.
	0, // 15: invalid.
}

var sampleSizeTable = [8]int{
	0, 8, 12, 0, 16, 20, 24, 0,
}

var channelAssignmentNames = map[int]string{
	0: "mono", 1: "stereo", 2: "3.0", 3: "4.0 (quad)", 4: "5.0",
	5: "5.1", 6: "6.1", 7: "7.1",
	8: "left/side stereo", 9: "right/side stereo", 10: "mid/side stereo",
}

// ParseHeader decodes a header from the front of b. ok reports whether
// a structurally valid header was found; needMore reports that b does
// not (yet) hold enough bytes to tell, and the caller should wait for
// more input (unless flushing, in which case the caller should treat
// it as a rejection).
func ParseHeader(b []byte) (h Header, length int, ok bool, needMore bool) {
	if len(b) < 4 {
		return h, 0, false, true
	}
	if b[0] != 0xFF || b[1]&0xFE != 0xF8 {
		return h, 0, false, false
	}
	h.BlockingStrategyVariable = b[1]&0x01 == 1

	h.BlockSizeCode = int(b[2] >> 4)
	h.SampleRateCode = int(b[2] & 0x0F)
	h.ChannelAssignment = int(b[3] >> 4)
	h.SampleSizeCode = int((b[3] >> 1) & 0x07)
	if b[3]&0x01 != 0 {
		return h, 0, false, false // Reserved bit must be 0.
	}
	if h.SampleRateCode == 0b1111 {
		return h, 0, false, false
	}
	if h.SampleSizeCode == 0b011 || h.SampleSizeCode == 0b111 {
		return h, 0, false, false
	}
	if h.ChannelAssignment >= 11 {
		return h, 0, false, false // Reserved.
	}

	off := 4
	num, n, ok2, needMore2 := decodeCodedNumber(b[off:])
	if needMore2 {
		return h, 0, false, true
	}
	if !ok2 {
		return h, 0, false, false
	}
	h.CodedNumber = num
	h.CodedNumberIsSample = h.BlockingStrategyVariable
	off += n

	switch h.BlockSizeCode {
	case 0b0110:
		if len(b) < off+1 {
			return h, 0, false, true
		}
		h.BlockSize = int(b[off]) + 1
		off++
	case 0b0111:
		if len(b) < off+2 {
			return h, 0, false, true
		}
		h.BlockSize = int(b[off])<<8 | int(b[off+1]) + 1
		off += 2
	case 0b0000:
		return h, 0, false, false // Reserved.
	default:
		h.BlockSize = blockSizeTable[h.BlockSizeCode]
	}

	switch h.SampleRateCode {
	case 0b1100:
		if len(b) < off+1 {
			return h, 0, false, true
		}
		h.SampleRate = int(b[off]) * 1000
		off++
	case 0b1101:
		if len(b) < off+2 {
			return h, 0, false, true
		}
		h.SampleRate = int(b[off])<<8 | int(b[off+1])
		off += 2
	case 0b1110:
		if len(b) < off+2 {
			return h, 0, false, true
		}
		h.SampleRate = (int(b[off])<<8 | int(b[off+1])) * 10
		off += 2
	default:
		h.SampleRate = sampleRateTable[h.SampleRateCode]
		if h.SampleRate <= 0 {
			return h, 0, false, false
		}
	}

	if len(b) < off+1 {
		return h, 0, false, true
	}
	off++ // Header CRC-8 byte; not independently validated.

	switch {
	case h.ChannelAssignment <= 7:
		h.Channels = h.ChannelAssignment + 1
	default:
		h.Channels = 2
	}
	h.ChannelMode = channelAssignmentNames[h.ChannelAssignment]
	h.BitDepth = sampleSizeTable[h.SampleSizeCode]

	h.Length = off
	return h, off, true, false
}

// decodeCodedNumber decodes FLAC's UTF-8-like variable-length frame or
// sample number, returning the number of bytes it consumed.
func decodeCodedNumber(b []byte) (value uint64, n int, ok bool, needMore bool) {
	if len(b) == 0 {
		return 0, 0, false, true
	}
	first := b[0]
	switch {
	case first&0x80 == 0x00:
		n = 1
	case first&0xE0 == 0xC0:
		n = 2
	case first&0xF0 == 0xE0:
		n = 3
	case first&0xF8 == 0xF0:
		n = 4
	case first&0xFC == 0xF8:
		n = 5
	case first&0xFE == 0xFC:
		n = 6
	case first == 0xFE:
		n = 7
	default:
		return 0, 0, false, false
	}
	if len(b) < n {
		return 0, 0, false, true
	}
	switch n {
	case 1:
		value = uint64(first)
	case 2:
		value = uint64(first & 0x1F)
	case 3:
		value = uint64(first & 0x0F)
	case 4:
		value = uint64(first & 0x07)
	case 5:
		value = uint64(first & 0x03)
	case 6:
		value = uint64(first & 0x01)
	case 7:
		value = 0
	}
	for i := 1; i < n; i++ {
		cb := b[i]
		if cb&0xC0 != 0x80 {
			return 0, 0, false, false
		}
		value = value<<6 | uint64(cb&0x3F)
	}
	return value, n, true, false
}

// Key returns the cache key for this header, excluding the
// length-variable CodedNumber field.
func (h *Header) Key() string {
	return fmt.Sprintf("%v|%d|%d|%d|%d",
		h.BlockingStrategyVariable, h.BlockSizeCode, h.SampleRateCode,
		h.ChannelAssignment, h.SampleSizeCode)
}
