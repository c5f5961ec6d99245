/*
NAME
  header.go

DESCRIPTION
  header.go decodes the Vorbis identification header, the first of the
  three header packets every Ogg Vorbis stream begins with.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package vorbis decodes Vorbis header and audio packets already
// framed by the Ogg container: identification, comment, and setup
// headers, plus per-packet block-size lookup built from the setup
// header's mode table.
package vorbis

import (
	"encoding/binary"
	"errors"
)

var (
	errShortHeader  = errors.New("vorbis: header packet too short")
	errBadPacket    = errors.New("vorbis: wrong packet type")
	errBadMagic     = errors.New("vorbis: missing vorbis magic")
	errBadVersion   = errors.New("vorbis: unsupported vorbis_version")
	errBadFraming   = errors.New("vorbis: framing bit not set")
)

const (
	packetTypeIdentification = 1
	packetTypeComment        = 3
	packetTypeSetup          = 5
)

// IdentificationHeader holds the decoded fields of a Vorbis
// identification header packet.
type IdentificationHeader struct {
	Version       uint32
	Channels      int
	SampleRate    int
	BitrateMax    int32
	BitrateNomial int32
	BitrateMin    int32
	Blocksize0    int // 2^exponent
	Blocksize1    int
}

// ParseIdentificationHeader decodes a complete Vorbis identification
// header packet.
func ParseIdentificationHeader(b []byte) (IdentificationHeader, error) {
	var h IdentificationHeader
	if len(b) < 30 {
		return h, errShortHeader
	}
	if b[0] != packetTypeIdentification {
		return h, errBadPacket
	}
	if string(b[1:7]) != "vorbis" {
		return h, errBadMagic
	}
	h.Version = binary.LittleEndian.Uint32(b[7:11])
	if h.Version != 0 {
		return h, errBadVersion
	}
	h.Channels = int(b[11])
	h.SampleRate = int(binary.LittleEndian.Uint32(b[12:16]))
	h.BitrateMax = int32(binary.LittleEndian.Uint32(b[16:20]))
	h.BitrateNomial = int32(binary.LittleEndian.Uint32(b[20:24]))
	h.BitrateMin = int32(binary.LittleEndian.Uint32(b[24:28]))

	blocksizeByte := b[28]
	h.Blocksize0 = 1 << (blocksizeByte & 0x0F)
	h.Blocksize1 = 1 << (blocksizeByte >> 4)

	if b[29]&0x1 == 0 {
		return h, errBadFraming
	}
	return h, nil
}

// IsCommentHeader and IsSetupHeader report a packet's declared type
// without fully decoding it.
func IsCommentHeader(b []byte) bool {
	return len(b) >= 7 && b[0] == packetTypeComment && string(b[1:7]) == "vorbis"
}

func IsSetupHeader(b []byte) bool {
	return len(b) >= 7 && b[0] == packetTypeSetup && string(b[1:7]) == "vorbis"
}
