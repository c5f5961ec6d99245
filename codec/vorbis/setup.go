/*
NAME
  setup.go

DESCRIPTION
  setup.go builds a mode-to-blockflag table from the Vorbis setup
  header without parsing the preceding codebook, floor, residue, and
  mapping structures it is not otherwise interested in. Those earlier
  structures are variable-length and deeply nested; the mode list at
  the tail of the packet is fixed-width per entry, so it is read
  backward from the framing bit instead.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vorbis

import (
	"errors"

	"github.com/ausocean/audioframe/bitio"
)

// ErrSetup reports that a setup header packet's mode table could not
// be located by the reverse scan.
var ErrSetup = errors.New("vorbis: could not locate mode table in setup header")

// maxModeScan bounds the number of trailing mode candidates the
// reverse scan will attempt before giving up.
const maxModeScan = 64

// maxFramingSkip bounds how many trailing zero bits the reverse scan
// will skip while looking for the framing bit. A packet is only
// byte-aligned as a whole, so up to 7 padding bits can separate the
// buffer's last bit from the real framing bit.
const maxFramingSkip = 8

// ModeEntry is one entry of the Vorbis mode table: which of the two
// block sizes a packet selecting this mode uses, and its mapping
// number (unused by this demuxer but kept for completeness).
type ModeEntry struct {
	BlockFlag bool // true: long block (Blocksize1).
	Mapping   int
}

// SetupHeader holds the mode table extracted from a Vorbis setup
// header packet.
type SetupHeader struct {
	Modes    []ModeEntry
	ModeBits int // Number of bits used to select a mode in each audio packet.
}

// ParseSetupHeader extracts the mode table from a complete Vorbis
// setup header packet.
func ParseSetupHeader(b []byte) (SetupHeader, error) {
	var h SetupHeader
	if len(b) < 8 || !IsSetupHeader(b) {
		return h, ErrSetup
	}
	br := bitio.NewBitReader(b)
	// Skip any zero padding bits before the real framing bit.
	framed := false
	for i := 0; i < maxFramingSkip; i++ {
		bit, err := br.ReadBit()
		if err != nil {
			return h, ErrSetup
		}
		if bit == 1 {
			framed = true
			break
		}
	}
	if !framed {
		return h, ErrSetup
	}

	// Once any candidate fails (short read, or a nonzero window/transform
	// type, both illegal in Vorbis I), the scan stops and br is not
	// consulted again, so there is no need to rewind a failed read.
	var entries []ModeEntry
	for i := 0; i < maxModeScan; i++ {
		mapping, err := br.ReadBits(8)
		if err != nil {
			break
		}
		transform, err := br.ReadBits(16)
		if err != nil || transform != 0 {
			break
		}
		window, err := br.ReadBits(16)
		if err != nil || window != 0 {
			break
		}
		blockflag, err := br.ReadBits(1)
		if err != nil {
			break
		}
		entries = append(entries, ModeEntry{BlockFlag: blockflag == 1, Mapping: int(mapping)})
	}
	if len(entries) == 0 {
		return h, ErrSetup
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	h.Modes = entries
	h.ModeBits = ilog(len(entries) - 1)
	return h, nil
}

// ilog returns the number of bits needed to represent v (returns 0 for
// v <= 0), matching the Vorbis spec's ilog() helper.
func ilog(v int) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}
