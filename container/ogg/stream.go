/*
NAME
  stream.go

DESCRIPTION
  stream.go reassembles Ogg pages into packets, identifies the wrapped
  codec from the first page, and dispatches each page's packets to the
  matching nested codec parser.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ogg

import (
	"bytes"

	"github.com/ausocean/audioframe/codec/codecutil"
	"github.com/ausocean/audioframe/codec/opus"
	"github.com/ausocean/audioframe/codec/vorbis"
)

// nestedKind tags which codec's page-handling rules apply to the
// stream a Demuxer is following.
type nestedKind int

const (
	nestedNone nestedKind = iota
	nestedOpus
	nestedVorbis
	nestedFLAC
	nestedSkeleton
)

var (
	opusMagic     = []byte("OpusHead")
	vorbisMagic   = []byte("\x01vorbis")
	skeletonMagic = []byte("fishead")
)

// Demuxer reassembles packets from a single logical Ogg stream,
// pulling pages from a shared RawReader, and dispatches them to
// whichever nested codec parser the stream's first page identifies.
type Demuxer struct {
	warn func(msg string, kv ...interface{})

	serial     uint32
	haveSerial bool
	lastSeq    uint32
	haveSeq    bool

	pageIndex int
	continued []byte

	kind  nestedKind
	codec string

	opusParser *opus.Parser

	vorbisID     vorbis.IdentificationHeader
	vorbisSetup  vorbis.SetupHeader
	vorbisParser *vorbis.Parser

	flacStreamInfo []byte
}

// NewDemuxer returns a fresh Ogg Demuxer.
func NewDemuxer(warn func(msg string, kv ...interface{})) *Demuxer {
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}
	return &Demuxer{warn: warn}
}

// Codec returns the codec identified from the stream's first page, or
// "" if no page carrying an identifiable codec signature has arrived
// yet.
func (d *Demuxer) Codec() string { return d.codec }

// SampleRate returns the sample rate implied by the identified nested
// codec, or 0 if it isn't known yet. Opus always decodes to a fixed
// 48 kHz regardless of the input rate carried in its identification
// header; Vorbis carries its own rate; FLAC-in-Ogg frames carry their
// own sample rate per frame instead, so this returns 0 for that case.
func (d *Demuxer) SampleRate() int {
	switch d.kind {
	case nestedOpus:
		return opus.OutputSampleRate
	case nestedVorbis:
		return d.vorbisID.SampleRate
	default:
		return 0
	}
}

// NextPage pulls one fully reassembled, checksum-verified page from r,
// stitches any packet continued from the previous page, identifies
// the wrapped codec on the stream's first page, and dispatches the
// page's packets to the matching nested codec parser. needMore
// reports that r does not yet hold enough bytes to make progress. err
// is non-nil only for a structural failure severe enough to fail the
// whole stream (a Vorbis setup header whose mode table could not be
// located, since every later packet in the stream depends on it).
func (d *Demuxer) NextPage(r *codecutil.RawReader) (page *Page, ok bool, needMore bool, err error) {
	for {
		p, pgOK, wait := d.nextPage(r)
		if wait {
			return nil, false, true, nil
		}
		if !pgOK {
			continue
		}

		d.trackSequence(p)
		packets := d.stitchSegments(p)

		if d.pageIndex == 0 && len(packets) > 0 {
			d.identifyCodec(packets[0])
		}
		frames, dispatchErr := d.dispatch(packets)
		if dispatchErr != nil {
			return nil, false, false, dispatchErr
		}
		p.CodecFrames = frames
		d.pageIndex++

		return &p, true, false, nil
	}
}

// nextPage pulls one page from r, advancing past it on success and
// advancing a single byte to resync past a corrupt page.
func (d *Demuxer) nextPage(r *codecutil.RawReader) (Page, bool, bool) {
	view, ok := r.Ensure(fixedHeaderSize, 0)
	if !ok {
		return Page{}, false, true
	}
	page, pgOK, needMore := ParsePage(view)
	if needMore {
		return Page{}, false, true
	}
	if !pgOK {
		d.warn("ogg: bad page sync or checksum, resyncing")
		r.Advance(1)
		return Page{}, false, false
	}
	r.Advance(page.Length)
	return page, true, false
}

// trackSequence warns on a page-sequence-number gap within the same
// logical stream. The warning is suppressed immediately after stream
// start, where either side of the comparison is still <= 1.
func (d *Demuxer) trackSequence(page Page) {
	if d.haveSerial && page.StreamSerialNumber != d.serial {
		d.haveSeq = false
	}
	d.serial = page.StreamSerialNumber
	d.haveSerial = true

	if d.haveSeq {
		expected := d.lastSeq + 1
		if page.PageSequenceNumber != expected && d.lastSeq > 1 && page.PageSequenceNumber > 1 {
			d.warn("ogg: page sequence gap", "expected", expected, "got", page.PageSequenceNumber)
		}
	}
	d.lastSeq = page.PageSequenceNumber
	d.haveSeq = true
}

// stitchSegments splits a page's payload into packets per its segment
// table. A page-terminal segment of length 255 means the packet is
// incomplete: its bytes are carried into d.continued instead of
// closing a packet, to be prepended to the next page's first segment.
func (d *Demuxer) stitchSegments(p Page) [][]byte {
	cur := d.continued
	d.continued = nil

	var packets [][]byte
	off := 0
	for i, segLen := range p.SegmentTable {
		cur = append(cur, p.Payload[off:off+int(segLen)]...)
		off += int(segLen)

		if segLen == 255 {
			if i == len(p.SegmentTable)-1 {
				d.continued = cur
				cur = nil
			}
			continue
		}
		packets = append(packets, cur)
		cur = nil
	}
	return packets
}

// identifyCodec inspects the stream's first page's first packet to
// determine which codec it carries. Skeleton bookkeeping streams are
// recognised and marked so their packets are silently dropped.
func (d *Demuxer) identifyCodec(packet []byte) {
	switch {
	case bytes.HasPrefix(packet, opusMagic):
		d.kind, d.codec = nestedOpus, codecutil.OPUS
	case bytes.HasPrefix(packet, vorbisMagic):
		d.kind, d.codec = nestedVorbis, codecutil.VORBIS
	case bytes.HasPrefix(packet, flacOggMagic):
		d.kind, d.codec = nestedFLAC, codecutil.FLAC
	case bytes.HasPrefix(packet, skeletonMagic):
		d.kind = nestedSkeleton
	default:
		d.warn("ogg: unrecognised first-page codec signature")
	}
}

// dispatch applies this stream's nested codec's page-position rules
// to packets, returning whatever audio frames resulted (none, for
// header pages). err is non-nil only for the Vorbis hard-failure case.
func (d *Demuxer) dispatch(packets [][]byte) (frames []codecutil.Frame, err error) {
	switch d.kind {
	case nestedOpus:
		return d.dispatchOpus(packets), nil
	case nestedVorbis:
		return d.dispatchVorbis(packets)
	case nestedFLAC:
		return d.dispatchFLAC(packets), nil
	default:
		return nil, nil
	}
}

func (d *Demuxer) dispatchOpus(packets [][]byte) []codecutil.Frame {
	switch d.pageIndex {
	case 0:
		if len(packets) == 0 {
			return nil
		}
		id, err := opus.ParseIdentificationHeader(packets[0])
		if err != nil {
			d.warn("ogg: opus identification header invalid", "error", err)
			return nil
		}
		d.opusParser = opus.NewParser(id, d.warn)
		return nil
	case 1:
		return nil // OpusTags comment header, ignored.
	default:
		if d.opusParser == nil {
			return nil
		}
		var frames []codecutil.Frame
		for _, pkt := range packets {
			f, ok := d.opusParser.ParsePacket(pkt)
			if ok {
				frames = append(frames, f)
			}
		}
		return frames
	}
}

// dispatchVorbis returns a non-nil error only when the setup header's
// mode table cannot be located: every audio packet in the stream
// depends on it, so this fails the whole stream rather than warning
// and continuing.
func (d *Demuxer) dispatchVorbis(packets [][]byte) ([]codecutil.Frame, error) {
	switch d.pageIndex {
	case 0:
		if len(packets) == 0 {
			return nil, nil
		}
		id, err := vorbis.ParseIdentificationHeader(packets[0])
		if err != nil {
			d.warn("ogg: vorbis identification header invalid", "error", err)
			return nil, nil
		}
		d.vorbisID = id
		return nil, nil
	case 1:
		// packets[0] is the comment header (ignored); packets[1] is setup.
		if len(packets) < 2 {
			d.warn("ogg: vorbis second page missing setup packet")
			return nil, nil
		}
		setup, err := vorbis.ParseSetupHeader(packets[1])
		if err != nil {
			return nil, err
		}
		d.vorbisSetup = setup
		d.vorbisParser = vorbis.NewParser(d.vorbisID, d.vorbisSetup, d.warn)
		return nil, nil
	default:
		if d.vorbisParser == nil {
			return nil, nil
		}
		var frames []codecutil.Frame
		for _, pkt := range packets {
			f, ok := d.vorbisParser.ParsePacket(pkt)
			if ok {
				frames = append(frames, f)
			}
		}
		return frames, nil
	}
}

func (d *Demuxer) dispatchFLAC(packets [][]byte) []codecutil.Frame {
	switch d.pageIndex {
	case 0:
		if len(packets) == 0 || len(packets[0]) <= flacOggStreamInfoOffset {
			d.warn("ogg: flac-in-ogg first page too short for STREAMINFO")
			return nil
		}
		d.flacStreamInfo = append([]byte{}, packets[0][flacOggStreamInfoOffset:]...)
		return nil
	case 1:
		return nil // Vorbis comment block, ignored.
	default:
		var frames []codecutil.Frame
		for _, pkt := range packets {
			f, ok := parseFLACOggFrame(pkt, d.flacStreamInfo, d.warn)
			if ok {
				frames = append(frames, f)
			}
		}
		return frames
	}
}
