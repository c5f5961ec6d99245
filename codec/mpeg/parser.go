/*
NAME
  parser.go

DESCRIPTION
  parser.go implements the MPEG audio frame sync loop: two-header
  confirmation (or flushing), header-cache enable/reset, and an ID3v2
  tag skip attempted before sync.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package mpeg

import (
	"github.com/ausocean/audioframe/bitio"
	"github.com/ausocean/audioframe/codec/codecutil"
)

// Frame is one decoded MPEG audio frame.
type Frame struct {
	Header Header
	Data   []byte

	Samples     int
	Duration    float64
	FrameNumber int
	CRC32       uint32

	TotalBytesOut int64
	TotalSamples  int64
	TotalDuration float64
}

func (f *Frame) GetTotalBytesOut() int64    { return f.TotalBytesOut }
func (f *Frame) GetTotalSamples() int64     { return f.TotalSamples }
func (f *Frame) GetTotalDuration() float64  { return f.TotalDuration }

var _ codecutil.Frame = (*Frame)(nil)

// Parser incrementally demuxes MPEG audio frames from a RawReader.
type Parser struct {
	cache       *codecutil.HeaderCache[Header]
	skippedID3  bool
	warn        func(msg string, kv ...interface{})
}

// NewParser returns a fresh MPEG Parser.
func NewParser(warn func(msg string, kv ...interface{})) *Parser {
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}
	return &Parser{cache: codecutil.NewHeaderCache[Header](), warn: warn}
}

// Codec returns this parser's codec tag.
func (p *Parser) Codec() string { return codecutil.MPEG }

// Next attempts to produce the next frame from r. It returns
// (frame, n, false) when a frame was fully confirmed and the caller
// should advance past its n bytes; (nil, n, false) means the caller
// should advance n bytes (to skip an ID3v2 tag, or 1 to resync) and
// call Next again; (nil, 0, true) means the caller should suspend
// until more input arrives.
func (p *Parser) Next(r *codecutil.RawReader) (frame *Frame, advance int, needMore bool) {
	if !p.skippedID3 {
		n, found, wait := p.tryID3v2(r)
		if wait {
			return nil, 0, true
		}
		if found {
			return nil, n, false
		}
		p.skippedID3 = true
	}

	view, ok := r.Ensure(HeaderSize, 0)
	if !ok {
		return nil, 0, true
	}
	h, valid := ParseHeader(view)
	if !valid {
		return nil, 1, false
	}

	confirmed := r.Flushing()
	if !confirmed {
		view2, ok2 := r.Ensure(HeaderSize, h.FrameLength)
		if !ok2 {
			return nil, 0, true
		}
		if len(view2) >= HeaderSize {
			if _, ok3 := ParseHeader(view2); ok3 {
				confirmed = true
			}
		} else if r.Flushing() {
			confirmed = true
		}
	}

	if !confirmed {
		p.warn("mpeg: second header confirmation failed, resyncing")
		p.cache.Reset()
		return nil, 1, false
	}

	frameLen := h.FrameLength
	if frameLen > r.Len() {
		frameLen = r.Len() // Flushing: emit whatever prefix remains.
	}
	if frameLen < HeaderSize {
		return nil, 1, false
	}

	data := make([]byte, frameLen)
	copy(data, view[:frameLen])

	p.cache.Enable()
	p.cache.GetHeader(h.Key())
	p.cache.SetHeader(h.Key(), h, codecutil.UpdateFields{
		BitDepth:    h.BitDepth,
		Channels:    h.Channels,
		ChannelMode: h.ChannelMode,
		SampleRate:  h.SampleRate,
	})

	out := &Frame{Header: h, Data: data, Samples: h.Samples, CRC32: bitio.FrameCRC32(data)}
	return out, frameLen, false
}

// HeaderCache exposes the parser's header cache so the driver can
// drive CheckCodecUpdate from frame statistics mapping.
func (p *Parser) HeaderCache() *codecutil.HeaderCache[Header] { return p.cache }

const id3Magic = "ID3"

// tryID3v2 checks for an ID3v2 tag at the front of the buffer. wait
// reports that more data is needed before a decision can be made (no
// ID3 bytes are consumed in that case); found reports a tag was
// located and advance is the number of bytes to skip past it.
func (p *Parser) tryID3v2(r *codecutil.RawReader) (advance int, found, wait bool) {
	view, have := r.Ensure(10, 0)
	if !have {
		return 0, false, true
	}
	if len(view) < 10 {
		if r.Flushing() {
			return 0, false, false
		}
		return 0, false, true
	}
	if string(view[0:3]) != id3Magic {
		return 0, false, false
	}
	size := synchsafe28(view[6:10])
	need := 10 + size
	if len(view) < need && !r.Flushing() {
		return 0, false, true
	}
	if need > len(view) {
		need = len(view)
	}
	return need, true, false
}

// synchsafe28 decodes ID3's 7-bits-per-byte synchsafe integer.
func synchsafe28(b []byte) int {
	return int(b[0])<<21 | int(b[1])<<14 | int(b[2])<<7 | int(b[3])
}
