/*
NAME
  page.go

DESCRIPTION
  page.go decodes a single Ogg page: the 27-byte fixed header, its
  segment table, and the CRC-32 checksum covering the whole page.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ogg demuxes the Ogg page/segment container that wraps Opus,
// Vorbis, and FLAC-in-Ogg streams, and dispatches reassembled packets
// to the matching codec parser.
package ogg

import (
	"encoding/binary"

	"github.com/ausocean/audioframe/bitio"
	"github.com/ausocean/audioframe/codec/codecutil"
)

// HeaderTypeContinued, HeaderTypeBOS, and HeaderTypeEOS are the three
// flag bits carried in a page's header_type_flag byte.
const (
	HeaderTypeContinued = 0x01
	HeaderTypeBOS       = 0x02
	HeaderTypeEOS       = 0x04
)

// fixedHeaderSize is the size of an Ogg page header before its
// segment table.
const fixedHeaderSize = 27

// Page holds one decoded Ogg page's header fields and payload.
type Page struct {
	Version            int
	HeaderType         byte
	GranulePosition    int64
	StreamSerialNumber uint32
	PageSequenceNumber uint32
	Checksum           uint32
	SegmentTable       []byte
	Payload            []byte

	Length int // Total bytes consumed from the stream for this page.

	// CodecFrames holds the frames a Demuxer decoded from this page's
	// packets. Samples, Duration, and the running totals are filled in
	// by frame-statistics mapping once CodecFrames itself is populated.
	CodecFrames   []codecutil.Frame
	Samples       int
	Duration      float64
	TotalBytesOut int64
	TotalSamples  int64
	TotalDuration float64
}

// Continued, BOS, and EOS report the three header_type_flag bits.
func (p *Page) Continued() bool { return p.HeaderType&HeaderTypeContinued != 0 }
func (p *Page) BOS() bool       { return p.HeaderType&HeaderTypeBOS != 0 }
func (p *Page) EOS() bool       { return p.HeaderType&HeaderTypeEOS != 0 }

func (p *Page) GetTotalBytesOut() int64   { return p.TotalBytesOut }
func (p *Page) GetTotalSamples() int64    { return p.TotalSamples }
func (p *Page) GetTotalDuration() float64 { return p.TotalDuration }

var _ codecutil.Frame = (*Page)(nil)

// ParsePage decodes one page from the front of b. ok reports a
// structurally valid, checksum-verified page was found; needMore
// reports b does not yet hold the whole page.
func ParsePage(b []byte) (p Page, ok bool, needMore bool) {
	if len(b) < fixedHeaderSize+1 {
		return p, false, true
	}
	if string(b[0:4]) != "OggS" {
		return p, false, false
	}
	p.Version = int(b[4])
	if p.Version != 0 {
		return p, false, false
	}
	p.HeaderType = b[5]
	p.GranulePosition = int64(binary.LittleEndian.Uint64(b[6:14]))
	p.StreamSerialNumber = binary.LittleEndian.Uint32(b[14:18])
	p.PageSequenceNumber = binary.LittleEndian.Uint32(b[18:22])
	p.Checksum = binary.LittleEndian.Uint32(b[22:26])
	numSegments := int(b[26])

	if len(b) < fixedHeaderSize+numSegments {
		return p, false, true
	}
	p.SegmentTable = append([]byte{}, b[fixedHeaderSize:fixedHeaderSize+numSegments]...)

	payloadLen := 0
	for _, s := range p.SegmentTable {
		payloadLen += int(s)
	}

	total := fixedHeaderSize + numSegments + payloadLen
	if len(b) < total {
		return p, false, true
	}
	p.Payload = append([]byte{}, b[fixedHeaderSize+numSegments:total]...)
	p.Length = total

	page := append([]byte{}, b[:total]...)
	binary.LittleEndian.PutUint32(page[22:26], 0)
	if bitio.OggCRC32(page) != p.Checksum {
		return p, false, false
	}

	return p, true, false
}
