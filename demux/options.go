/*
NAME
  options.go

DESCRIPTION
  options.go implements Driver's functional options, following the same
  func(*T) error closure convention as the teacher's
  protocol/rtmp.Option and container/mts.Option.

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

import (
	"github.com/ausocean/audioframe/codec/codecutil"
	"github.com/ausocean/utils/logging"
)

// Option configures a Driver at construction time.
type Option func(*Driver) error

// WithOnCodec sets the callback invoked once the stream's codec is
// known: immediately at construction for a fixed mime family, or once
// the nested codec is identified from an Ogg stream's first page.
func WithOnCodec(f func(codec string)) Option {
	return func(d *Driver) error {
		d.onCodec = f
		return nil
	}
}

// WithOnCodecUpdate sets the callback invoked whenever a frame's
// effective codec parameters (bitrate, or any header-cache update
// field) change from the previous frame.
func WithOnCodecUpdate(f func(codecutil.UpdateFields, float64)) Option {
	return func(d *Driver) error {
		d.onCodecUpdate = f
		return nil
	}
}

// WithLogger overrides the Driver's logging sink. Takes precedence
// over WithLogging.
func WithLogger(l logging.Logger) Option {
	return func(d *Driver) error {
		if l == nil {
			return ErrNilLogger
		}
		d.logger = l
		return nil
	}
}

// WithLogging enables the Driver's default stderr logger when no
// WithLogger override is given. Warnings are discarded by default.
func WithLogging(enable bool) Option {
	return func(d *Driver) error {
		d.enableLogging = enable
		return nil
	}
}
