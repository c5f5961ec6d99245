/*
NAME
  errors.go

DESCRIPTION
  errors.go declares the sentinel errors a Driver's public methods can
  return: conditions a caller might reasonably branch on, per the
  teacher's convention of package-scope errors.New values (see
  codec/wav/wav.go's errInvalid* vars).

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package demux

import "errors"

var (
	// ErrUnsupportedMime is returned by New when the mime family isn't
	// one of the recognised audio mime types.
	ErrUnsupportedMime = errors.New("demux: unsupported mime type")

	// ErrVorbisSetup is returned from ParseChunk/Flush/ParseAll when an
	// Ogg-Vorbis stream's setup header's mode table cannot be located:
	// every later audio packet in the stream depends on it, so parsing
	// the stream fails outright rather than warning and resyncing.
	ErrVorbisSetup = errors.New("demux: vorbis setup header structural mismatch")

	// ErrNilLogger is returned by WithLogger when given a nil Logger.
	ErrNilLogger = errors.New("demux: nil logger")
)
