/*
NAME
  driver.go

DESCRIPTION
  driver.go implements the top-level Driver: MIME-to-parser selection,
  ID3v2 skip (delegated to codec/mpeg), and the public push/flush API
  that drives whichever codec parser the constructed mime family
  selected.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package demux ties the codec and container packages together behind
// a single push/flush driver: given a declared mime family, it selects
// the matching parser, maps frame statistics as each frame is emitted,
// and reports codec identification and parameter changes via optional
// callbacks.
package demux

import (
	goerrors "errors"
	"io"
	"os"

	pkgerrors "github.com/pkg/errors"

	"github.com/ausocean/audioframe/codec/aac"
	"github.com/ausocean/audioframe/codec/codecutil"
	"github.com/ausocean/audioframe/codec/flac"
	"github.com/ausocean/audioframe/codec/mpeg"
	"github.com/ausocean/audioframe/codec/vorbis"
	"github.com/ausocean/audioframe/container/ogg"
	"github.com/ausocean/utils/logging"
)

// Driver demuxes one audio stream of a declared mime family into a
// sequence of emitted frames. It is not safe for concurrent use from
// multiple goroutines; like the teacher's Revid, it expects a single
// owning goroutine to alternate Push/Flush calls.
type Driver struct {
	mime  string
	codec string

	r *codecutil.RawReader

	mpegParser *mpeg.Parser
	aacParser  *aac.Parser
	flacParser *flac.Parser
	oggDemuxer *ogg.Demuxer

	sampleRate int

	totalBytesOut int64
	totalSamples  int64
	frameNumber   int

	onCodec       func(codec string)
	onCodecUpdate func(codecutil.UpdateFields, float64)

	logger        logging.Logger
	enableLogging bool
}

// New constructs a Driver for mime, one of MimeMPEG, MimeAAC, MimeAACP,
// MimeFLAC, MimeOgg, or MimeOggX (see codec/codecutil). Returns
// ErrUnsupportedMime for any other value.
func New(mime string, opts ...Option) (*Driver, error) {
	codec, ok := codecutil.CodecForMime(mime)
	if !ok {
		return nil, ErrUnsupportedMime
	}

	d := &Driver{mime: mime, codec: codec, r: codecutil.NewRawReader()}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	if d.logger == nil {
		d.logger = defaultLogger(d.enableLogging)
	}

	d.newParser()

	if d.codec != "" && d.onCodec != nil {
		d.onCodec(d.codec)
	}
	return d, nil
}

// newParser (re)builds whichever codec parser this Driver's mime
// family selects, wired to this Driver's warn function.
func (d *Driver) newParser() {
	switch d.codec {
	case codecutil.MPEG:
		d.mpegParser = mpeg.NewParser(d.warn)
	case codecutil.AAC:
		d.aacParser = aac.NewParser(d.warn)
	case codecutil.FLAC:
		d.flacParser = flac.NewParser(d.warn)
	default:
		d.oggDemuxer = ogg.NewDemuxer(d.warn)
	}
}

// Codec returns the currently detected codec, or "" for an Ogg stream
// whose first page hasn't arrived yet. Flush keeps the detected codec;
// a later Ogg stream replaces it once its first page identifies a
// different codec.
func (d *Driver) Codec() string { return d.codec }

// ParseChunk appends b to the internal buffer and returns every frame
// that chunk makes it possible to fully decode.
func (d *Driver) ParseChunk(b []byte) ([]codecutil.Frame, error) {
	d.r.Push(b)
	return d.drain()
}

// Flush tells the Driver no more data is coming, drains every
// remaining frame the buffered bytes allow, then resets the Driver
// (fresh buffer, parser, and counters) so it can be reused for a new
// stream of the same mime family.
func (d *Driver) Flush() ([]codecutil.Frame, error) {
	d.r.Flush()
	frames, err := d.drain()
	d.resetForNewStream()
	return frames, err
}

// ParseAll parses a whole, complete input in one call: equivalent to
// ParseChunk(b) followed by Flush().
func (d *Driver) ParseAll(b []byte) ([]codecutil.Frame, error) {
	chunk, err := d.ParseChunk(b)
	if err != nil {
		return chunk, err
	}
	tail, err := d.Flush()
	return append(chunk, tail...), err
}

// resetForNewStream rebuilds the read buffer, running counters, and
// codec parser, leaving mime/options and the detected codec untouched.
func (d *Driver) resetForNewStream() {
	d.r = codecutil.NewRawReader()
	d.totalBytesOut = 0
	d.totalSamples = 0
	d.frameNumber = 0
	d.sampleRate = 0

	d.newParser()
}

// drain drives whichever parser this Driver selected until it needs
// more input than is currently buffered.
func (d *Driver) drain() ([]codecutil.Frame, error) {
	switch {
	case d.mpegParser != nil:
		return d.drainMPEG(), nil
	case d.aacParser != nil:
		return d.drainAAC(), nil
	case d.flacParser != nil:
		return d.drainFLAC(), nil
	case d.oggDemuxer != nil:
		return d.drainOgg()
	default:
		return nil, nil
	}
}

func (d *Driver) drainMPEG() []codecutil.Frame {
	var out []codecutil.Frame
	for {
		f, advance, needMore := d.mpegParser.Next(d.r)
		if needMore {
			return out
		}
		d.r.Advance(advance)
		if f == nil {
			continue
		}
		d.applyMPEGStats(f)
		out = append(out, f)
	}
}

func (d *Driver) drainAAC() []codecutil.Frame {
	var out []codecutil.Frame
	for {
		f, advance, needMore := d.aacParser.Next(d.r)
		if needMore {
			return out
		}
		d.r.Advance(advance)
		if f == nil {
			continue
		}
		d.applyAACStats(f)
		out = append(out, f)
	}
}

func (d *Driver) drainFLAC() []codecutil.Frame {
	var out []codecutil.Frame
	for {
		f, advance, needMore := d.flacParser.Next(d.r)
		if needMore {
			return out
		}
		d.r.Advance(advance)
		if f == nil {
			continue
		}
		d.applyFLACStats(f)
		out = append(out, f)
	}
}

func (d *Driver) drainOgg() ([]codecutil.Frame, error) {
	var out []codecutil.Frame
	for {
		p, ok, needMore, err := d.oggDemuxer.NextPage(d.r)
		if err != nil {
			return out, translateOggErr(err)
		}
		if needMore {
			return out, nil
		}
		if !ok {
			continue
		}
		if c := d.oggDemuxer.Codec(); c != "" && c != d.codec {
			d.codec = c
			if d.onCodec != nil {
				d.onCodec(d.codec)
			}
		}
		d.applyOggPageStats(p)
		out = append(out, p)
	}
}

// translateOggErr maps an internal container/ogg error to the
// sentinel a caller can branch on, preserving the cause chain.
func translateOggErr(err error) error {
	if goerrors.Is(err, vorbis.ErrSetup) {
		return pkgerrors.Wrapf(ErrVorbisSetup, "%v", err)
	}
	return pkgerrors.Wrapf(err, "ogg: stream failed")
}

// defaultLogger returns a logging.Logger that writes warnings to
// stderr when enabled is true, and discards them otherwise.
func defaultLogger(enabled bool) logging.Logger {
	var w io.Writer = io.Discard
	if enabled {
		w = os.Stderr
	}
	return logging.New(logging.Info, w, false)
}

// warn routes a parser warning to the configured logger, annotated
// with the running stats the error-handling design calls for.
func (d *Driver) warn(msg string, kv ...interface{}) {
	kv = append(append([]interface{}{}, kv...),
		"codec", d.codec,
		"mime", d.mime,
		"readPosition", d.r.Position(),
		"totalBytesIn", d.r.TotalIn(),
		"totalBytesOut", d.totalBytesOut,
	)
	d.logger.Warning(msg, kv...)
}
