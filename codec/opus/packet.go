/*
NAME
  packet.go

DESCRIPTION
  packet.go decodes the Opus TOC byte that begins every audio packet,
  and the frame-count byte for "code 3" packets.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package opus

import (
	"github.com/ausocean/audioframe/bitio"
	"github.com/ausocean/audioframe/codec/codecutil"
)

// Mode is the Opus coding mode selected by the TOC config value.
type Mode string

const (
	ModeSILK   Mode = "silk"
	ModeHybrid Mode = "hybrid"
	ModeCELT   Mode = "celt"
)

type configEntry struct {
	mode        Mode
	bandwidth   string
	frameSizeMs float64
}

// configTable is RFC 6716 Table 2, indexed by the TOC's 5-bit config.
var configTable = buildConfigTable()

func buildConfigTable() [32]configEntry {
	var t [32]configEntry

	silkSizes := [4]float64{10, 20, 40, 60}
	silkBands := [3]string{"narrowband", "mediumband", "wideband"}
	for band := 0; band < 3; band++ {
		for i := 0; i < 4; i++ {
			t[band*4+i] = configEntry{ModeSILK, silkBands[band], silkSizes[i]}
		}
	}

	hybridSizes := [2]float64{10, 20}
	hybridBands := [2]string{"superwideband", "fullband"}
	for band := 0; band < 2; band++ {
		for i := 0; i < 2; i++ {
			t[12+band*2+i] = configEntry{ModeHybrid, hybridBands[band], hybridSizes[i]}
		}
	}

	celtSizes := [4]float64{2.5, 5, 10, 20}
	celtBands := [4]string{"narrowband", "wideband", "superwideband", "fullband"}
	for band := 0; band < 4; band++ {
		for i := 0; i < 4; i++ {
			t[16+band*4+i] = configEntry{ModeCELT, celtBands[band], celtSizes[i]}
		}
	}

	return t
}

// TOC holds the decoded fields of an Opus packet's leading TOC byte.
type TOC struct {
	Config         int
	Mode           Mode
	Bandwidth      string
	FrameSizeMs    float64
	Stereo         bool
	FrameCountCode int
}

func parseTOC(b byte) TOC {
	config := int(b >> 3)
	e := configTable[config]
	return TOC{
		Config:         config,
		Mode:           e.mode,
		Bandwidth:      e.bandwidth,
		FrameSizeMs:    e.frameSizeMs,
		Stereo:         (b>>2)&0x1 == 1,
		FrameCountCode: int(b & 0x3),
	}
}

// Frame is one decoded Opus packet's statistics.
type Frame struct {
	TOC        TOC
	FrameCount int
	IsVBR      bool
	Data       []byte
	CRC32      uint32

	Samples     int
	Duration    float64
	FrameNumber int

	TotalBytesOut int64
	TotalSamples  int64
	TotalDuration float64
}

func (f *Frame) GetTotalBytesOut() int64   { return f.TotalBytesOut }
func (f *Frame) GetTotalSamples() int64    { return f.TotalSamples }
func (f *Frame) GetTotalDuration() float64 { return f.TotalDuration }

var _ codecutil.Frame = (*Frame)(nil)

// Parser decodes already-framed Opus packets handed to it (by
// container/ogg) into per-packet Frame statistics.
type Parser struct {
	id   IdentificationHeader
	warn func(msg string, kv ...interface{})
}

// NewParser returns a Parser for a stream whose identification header
// has already been decoded.
func NewParser(id IdentificationHeader, warn func(msg string, kv ...interface{})) *Parser {
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}
	return &Parser{id: id, warn: warn}
}

// Codec returns this parser's codec tag.
func (p *Parser) Codec() string { return codecutil.OPUS }

// ParsePacket decodes one complete Opus packet (as already delimited
// by the Ogg container) into a Frame.
func (p *Parser) ParsePacket(data []byte) (*Frame, bool) {
	if len(data) < 1 {
		p.warn("opus: empty packet")
		return nil, false
	}
	toc := parseTOC(data[0])

	var frameCount int
	var isVBR bool
	switch toc.FrameCountCode {
	case 0:
		frameCount = 1
	case 1, 2:
		frameCount = 2
	case 3:
		if len(data) < 2 {
			p.warn("opus: code-3 packet missing frame count byte")
			return nil, false
		}
		fc := data[1]
		frameCount = int(fc & 0x3F)
		isVBR = fc&0x80 != 0
		if frameCount == 0 || frameCount > 48 {
			p.warn("opus: invalid frame count", "count", frameCount)
			return nil, false
		}
	}

	samplesPerFrame := int(toc.FrameSizeMs * OutputSampleRate / 1000)
	samples := samplesPerFrame * frameCount
	duration := toc.FrameSizeMs * float64(frameCount)

	out := &Frame{
		TOC:        toc,
		FrameCount: frameCount,
		IsVBR:      isVBR,
		Data:       data,
		CRC32:      bitio.FrameCRC32(data),
		Samples:    samples,
		Duration:   duration,
	}
	return out, true
}
