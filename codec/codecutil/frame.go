/*
NAME
  frame.go

DESCRIPTION
  frame.go defines the minimal common surface every emitted frame type
  (per-codec CodecFrame and container/ogg.Page) implements, so the
  driver and host can treat both uniformly without a dependency cycle
  between the codec packages and the top-level driver.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package codecutil

// Frame is the minimal surface shared by every emitted frame: the
// per-codec CodecFrame types (mpeg.Frame, aac.Frame, flac.Frame,
// opus.Frame, vorbis.Frame) and container/ogg.Page.
type Frame interface {
	// GetTotalBytesOut is the running total of emitted payload bytes. A
	// codec frame reports the total as it stood before its own bytes
	// were added; an ogg.Page reports it after all of its codec frames
	// were added.
	GetTotalBytesOut() int64
	// GetTotalSamples is the running total of decoded samples, counted
	// the same way as GetTotalBytesOut.
	GetTotalSamples() int64
	// GetTotalDuration is GetTotalSamples expressed in milliseconds at
	// the current sample rate.
	GetTotalDuration() float64
}
