/*
NAME
  rawreader.go

DESCRIPTION
  rawreader.go implements a suspendable read coroutine as an
  append-only buffer that parsers pull fixed-size views from, realized
  as explicit state (buffer, offset, flushing flag) rather than a
  literal stackful coroutine.

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

// RawReader is the shared, zero-copy input buffer every codec parser
// pulls from. It generalises the buffer/offset shape of this package's
// former io.Reader-driven ByteScanner into a push/flush model: bytes
// arrive via Push, parsers request prefixes via Ensure, and the buffer
// only shrinks when a parser calls Advance once it has fully consumed
// a frame.
//
// RawReader is not safe for concurrent use; it is driven by a single
// parse loop.
type RawReader struct {
	buf      []byte
	pos      int64 // currentReadPosition: total bytes ever advanced past.
	totalIn  int64 // totalBytesIn: total bytes ever pushed.
	flushing bool
}

// NewRawReader returns an empty RawReader.
func NewRawReader() *RawReader {
	return &RawReader{}
}

// Push appends chunk to the buffer. It is the only way the buffer
// grows.
func (r *RawReader) Push(chunk []byte) {
	r.buf = append(r.buf, chunk...)
	r.totalIn += int64(len(chunk))
}

// Flush marks the stream as final: subsequent Ensure calls never
// report "need more data" again, instead returning whatever prefix
// already exists.
func (r *RawReader) Flush() {
	r.flushing = true
}

// Reset clears the buffer and flushing state, returning the RawReader
// to its initial condition so the owning driver can be reused for a
// new stream.
func (r *RawReader) Reset() {
	r.buf = r.buf[:0]
	r.pos = 0
	r.totalIn = 0
	r.flushing = false
}

// Ensure requests a view of the buffer starting at readOffset, holding
// more than minBytes bytes beyond readOffset. If the buffer doesn't
// yet hold that much, Ensure returns ok == false unless the reader is
// flushing, in which case it returns whatever prefix (possibly empty
// or short) exists starting at readOffset instead of asking the
// caller to suspend. The returned slice is a view into the shared
// buffer: it is invalidated by the next Advance.
func (r *RawReader) Ensure(minBytes, readOffset int) (view []byte, ok bool) {
	if readOffset > len(r.buf) {
		if r.flushing {
			return nil, true
		}
		return nil, false
	}
	have := len(r.buf) - readOffset
	if have <= minBytes && !r.flushing {
		return nil, false
	}
	return r.buf[readOffset:], true
}

// Advance drops the first n bytes from the buffer and records them as
// consumed. Only Advance may shrink the buffer. Any view previously
// returned by Ensure is invalidated after this call.
func (r *RawReader) Advance(n int) {
	if n <= 0 {
		return
	}
	if n > len(r.buf) {
		n = len(r.buf)
	}
	r.buf = r.buf[n:]
	r.pos += int64(n)
}

// Flushing reports whether Flush has been called.
func (r *RawReader) Flushing() bool { return r.flushing }

// Len returns the number of unconsumed bytes currently buffered.
func (r *RawReader) Len() int { return len(r.buf) }

// Position returns currentReadPosition: the total number of bytes
// Advance has ever consumed.
func (r *RawReader) Position() int64 { return r.pos }

// TotalIn returns totalBytesIn: the total number of bytes ever pushed.
func (r *RawReader) TotalIn() int64 { return r.totalIn }
