/*
NAME
  parser.go

DESCRIPTION
  parser.go implements the FLAC native frame sync loop: since FLAC
  frames carry no length field, confirmation comes from a trailing
  CRC-16 over the whole frame rather than from a second header.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package flac

import (
	"encoding/binary"

	"github.com/ausocean/audioframe/bitio"
	"github.com/ausocean/audioframe/codec/codecutil"
)

// Frame is one decoded FLAC native frame.
type Frame struct {
	Header Header
	Data   []byte

	Samples     int
	Duration    float64
	FrameNumber int
	CRC16       uint16

	TotalBytesOut int64
	TotalSamples  int64
	TotalDuration float64
}

func (f *Frame) GetTotalBytesOut() int64   { return f.TotalBytesOut }
func (f *Frame) GetTotalSamples() int64    { return f.TotalSamples }
func (f *Frame) GetTotalDuration() float64 { return f.TotalDuration }

var _ codecutil.Frame = (*Frame)(nil)

// Parser incrementally demuxes FLAC native frames from a RawReader.
type Parser struct {
	cache *codecutil.HeaderCache[Header]
	warn  func(msg string, kv ...interface{})
}

// NewParser returns a fresh FLAC Parser.
func NewParser(warn func(msg string, kv ...interface{})) *Parser {
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}
	return &Parser{cache: codecutil.NewHeaderCache[Header](), warn: warn}
}

// Codec returns this parser's codec tag.
func (p *Parser) Codec() string { return codecutil.FLAC }

// Next attempts to produce the next frame from r, following the same
// (frame, advance, needMore) contract as the fixed-length codec
// parsers, but confirming sync by scanning forward for a trailing
// CRC-16 match rather than a second header.
func (p *Parser) Next(r *codecutil.RawReader) (frame *Frame, advance int, needMore bool) {
	view, ok := r.Ensure(4, 0)
	if !ok {
		return nil, 0, true
	}
	h, hlen, valid, needMore2 := ParseHeader(view)
	if needMore2 {
		return nil, 0, true
	}
	if !valid {
		return nil, 1, false
	}

	frameLen, found, wait := p.confirmByCRC(r, hlen)
	if wait {
		return nil, 0, true
	}
	if !found {
		p.warn("flac: trailing CRC-16 confirmation failed, resyncing")
		p.cache.Reset()
		return nil, 1, false
	}

	data := make([]byte, frameLen)
	fullView, okFull := r.Ensure(frameLen-1, 0)
	if !okFull || len(fullView) < frameLen {
		fullView, _ = r.Ensure(0, 0) // Flushing: take whatever prefix remains.
	}
	copy(data, fullView[:frameLen])

	p.cache.Enable()
	p.cache.GetHeader(h.Key())
	p.cache.SetHeader(h.Key(), h, codecutil.UpdateFields{
		BitDepth:    h.BitDepth,
		Channels:    h.Channels,
		ChannelMode: h.ChannelMode,
		SampleRate:  h.SampleRate,
	})

	out := &Frame{
		Header:   h,
		Data:     data,
		Samples:  h.BlockSize,
		CRC16:    binary.BigEndian.Uint16(data[len(data)-2:]),
	}
	return out, frameLen, false
}

// confirmByCRC locates the end of the current frame by jumping between
// apparent frame-sync candidates (nextFrameSyncCandidate) starting at
// hlen+MinFrameSize, rather than trying every possible length. A
// candidate is only accepted once both (a) its trailing two bytes
// match the CRC-16 over the frame body and (b) a valid FLAC header
// also parses at the candidate position, confirming it is a real next
// frame and not a coincidental CRC match. The last frame of a flushed
// stream has no following header to confirm against, so once no
// further candidate exists and the reader is flushing, the remaining
// buffered tail is accepted by CRC-16 alone. wait reports the buffer
// doesn't yet hold enough bytes to decide and isn't flushing.
func (p *Parser) confirmByCRC(r *codecutil.RawReader, hlen int) (frameLen int, found, wait bool) {
	searchFrom := hlen + MinFrameSize
	for {
		view, ok := r.Ensure(searchFrom+1, 0)
		if !ok {
			if r.Flushing() {
				break
			}
			return 0, false, true
		}
		if len(view) < searchFrom+2 {
			if r.Flushing() {
				break
			}
			return 0, false, true
		}

		upto := searchFrom + MaxFrameSize
		idx, ok2 := nextFrameSyncCandidate(view, searchFrom, upto)
		if !ok2 {
			if r.Flushing() {
				break
			}
			if len(view) >= upto {
				return 0, false, false // Exhausted the max-frame-size window.
			}
			return 0, false, true
		}

		try := idx
		body := view[:try-2]
		want := binary.BigEndian.Uint16(view[try-2 : try])
		if bitio.FLACCRC16(body) == want {
			_, _, valid, needMore := ParseHeader(view[try:])
			if valid {
				return try, true, false
			}
			if needMore && !r.Flushing() {
				return 0, false, true
			}
		}
		searchFrom = idx + 1
	}

	view, _ := r.Ensure(0, 0)
	if len(view) >= hlen+2 {
		body := view[:len(view)-2]
		want := binary.BigEndian.Uint16(view[len(view)-2:])
		if bitio.FLACCRC16(body) == want {
			return len(view), true, false
		}
	}
	return 0, false, false
}

// nextFrameSyncCandidate scans b[from:upto] for the next apparent FLAC
// frame sync pattern (0xFF followed by 0xF8 or 0xF9), returning the
// first matching index and true, or (0, false) if none is found.
func nextFrameSyncCandidate(b []byte, from, upto int) (int, bool) {
	if upto > len(b) {
		upto = len(b)
	}
	for i := from; i < upto-1; i++ {
		if b[i] == 0xFF && b[i+1]&0xFE == 0xF8 {
			return i, true
		}
	}
	return 0, false
}

// HeaderCache exposes the parser's header cache to the driver.
func (p *Parser) HeaderCache() *codecutil.HeaderCache[Header] { return p.cache }
