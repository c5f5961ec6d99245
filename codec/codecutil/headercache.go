/*
NAME
  headercache.go

DESCRIPTION
  headercache.go implements a keyed cache of recently-parsed codec
  headers that stabilises repeated parses and detects mid-stream
  codec-parameter changes.

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

// UpdateFields carries the subset of a header's fields that, when
// changed between two cache entries, represents a codec-parameter
// change worth reporting to the host.
type UpdateFields struct {
	BitDepth    int
	Channels    int
	ChannelMode string
	SampleRate  int
	Bitrate     int
}

// entry is one cached header record.
type entry[H any] struct {
	header  H
	update  UpdateFields
	bitrate int
}

// HeaderCache is a keyed cache of parsed codec headers of type H. It
// is disabled by default: SetHeader is a no-op until Enable is called,
// which a parser does only once it has achieved sync, so that bogus
// matches encountered while still hunting for the first valid frame
// can never poison the cache.
type HeaderCache[H any] struct {
	entries map[string]entry[H]
	enabled bool

	current      string
	shouldUpdate bool
}

// NewHeaderCache returns an empty, disabled HeaderCache.
func NewHeaderCache[H any]() *HeaderCache[H] {
	return &HeaderCache[H]{entries: make(map[string]entry[H])}
}

// GetHeader returns the cached header for key, if any. If the cached
// header differs from the previously current one, a codec update is
// marked pending until the next CheckCodecUpdate call.
func (c *HeaderCache[H]) GetHeader(key string) (H, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero H
		return zero, false
	}
	if key != c.current {
		c.current = key
		c.shouldUpdate = true
	}
	return e.header, true
}

// SetHeader stores header and its update-field subset under key. It
// is a no-op unless the cache has been enabled.
func (c *HeaderCache[H]) SetHeader(key string, header H, update UpdateFields) {
	if !c.enabled {
		return
	}
	c.entries[key] = entry[H]{header: header, update: update}
}

// Enable allows SetHeader to start storing entries. Called only once a
// parser has confirmed its first frame.
func (c *HeaderCache[H]) Enable() { c.enabled = true }

// Reset wipes all cached entries and disables the cache. Called when a
// parser de-syncs, so stale headers from before the de-sync can never
// be matched again.
func (c *HeaderCache[H]) Reset() {
	c.entries = make(map[string]entry[H])
	c.enabled = false
	c.current = ""
	c.shouldUpdate = false
}

// Enabled reports whether the cache is currently accepting entries.
func (c *HeaderCache[H]) Enabled() bool { return c.enabled }

// CheckCodecUpdate compares bitrate against the last bitrate observed
// for the current header and, if it differs (or an update was already
// pending from GetHeader), invokes onUpdate with the current update
// fields (bitrate included) and timestampMs, then clears the pending
// flag.
func (c *HeaderCache[H]) CheckCodecUpdate(bitrate int, timestampMs float64, onUpdate func(UpdateFields, float64)) {
	e, ok := c.entries[c.current]
	if ok && e.bitrate != bitrate {
		c.shouldUpdate = true
	}
	if !c.shouldUpdate {
		return
	}
	update := e.update
	update.Bitrate = bitrate
	if ok {
		e.bitrate = bitrate
		c.entries[c.current] = e
	}
	if onUpdate != nil {
		onUpdate(update, timestampMs)
	}
	c.shouldUpdate = false
}
