/*
NAME
  parser.go

DESCRIPTION
  parser.go implements the AAC-ADTS frame sync loop: the same
  two-header (or flushing) confirmation skeleton MPEG uses, since both
  are fixed-length-framed formats.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package aac

import (
	"github.com/ausocean/audioframe/bitio"
	"github.com/ausocean/audioframe/codec/codecutil"
)

// Frame is one decoded AAC-ADTS frame.
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

func (f *Frame) GetTotalBytesOut() int64   { return f.TotalBytesOut }
func (f *Frame) GetTotalSamples() int64    { return f.TotalSamples }
func (f *Frame) GetTotalDuration() float64 { return f.TotalDuration }

var _ codecutil.Frame = (*Frame)(nil)

// Parser incrementally demuxes AAC-ADTS frames from a RawReader.
type Parser struct {
	cache *codecutil.HeaderCache[Header]
	warn  func(msg string, kv ...interface{})
}

// NewParser returns a fresh AAC Parser.
func NewParser(warn func(msg string, kv ...interface{})) *Parser {
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}
	return &Parser{cache: codecutil.NewHeaderCache[Header](), warn: warn}
}

// Codec returns this parser's codec tag.
func (p *Parser) Codec() string { return codecutil.AAC }

// Next attempts to produce the next frame from r, with the same
// return-value contract as mpeg.Parser.Next.
func (p *Parser) Next(r *codecutil.RawReader) (frame *Frame, advance int, needMore bool) {
	view, ok := r.Ensure(FixedVariableSize, 0)
	if !ok {
		return nil, 0, true
	}
	h, valid := ParseHeader(view)
	if !valid {
		return nil, 1, false
	}

	confirmed := r.Flushing()
	if !confirmed {
		view2, ok2 := r.Ensure(FixedVariableSize, h.FrameLength)
		if !ok2 {
			return nil, 0, true
		}
		if len(view2) >= FixedVariableSize {
			if _, ok3 := ParseHeader(view2); ok3 {
				confirmed = true
			}
		} else if r.Flushing() {
			confirmed = true
		}
	}

	if !confirmed {
		p.warn("aac: second header confirmation failed, resyncing")
		p.cache.Reset()
		return nil, 1, false
	}

	frameLen := h.FrameLength
	if frameLen > r.Len() {
		frameLen = r.Len()
	}
	if frameLen < FixedVariableSize {
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

// HeaderCache exposes the parser's header cache to the driver.
func (p *Parser) HeaderCache() *codecutil.HeaderCache[Header] { return p.cache }
