/*
NAME
  stats.go

DESCRIPTION
  stats.go implements per-frame statistics mapping: bitrate, frame
  number, running byte/sample totals, duration, and the header-cache
  codec-update check, applied uniformly across every codec this module
  supports.

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
	"math"

	"github.com/ausocean/audioframe/codec/aac"
	"github.com/ausocean/audioframe/codec/flac"
	"github.com/ausocean/audioframe/codec/mpeg"
	"github.com/ausocean/audioframe/codec/opus"
	"github.com/ausocean/audioframe/codec/vorbis"
	"github.com/ausocean/audioframe/container/ogg"
)

// applyStats computes this frame's own duration, its bitrate, the
// current frame number, and the running totals as they stood before
// this frame's bytes/samples are folded in, then updates the running
// totals. sampleRate is read from d.sampleRate, which each codec's
// apply*Stats method sets before calling this.
func (d *Driver) applyStats(dataLen, samples int) (bitrate, frameNumber int, totalBytesOut, totalSamples int64, totalDuration, duration float64) {
	if d.sampleRate > 0 {
		duration = float64(samples) / float64(d.sampleRate) * 1000
	}
	if duration > 0 {
		bitrate = int(math.Round(float64(dataLen)/duration)) * 8
	}

	frameNumber = d.frameNumber
	d.frameNumber++

	totalBytesOut = d.totalBytesOut
	totalSamples = d.totalSamples
	if d.sampleRate > 0 {
		totalDuration = float64(totalSamples) / float64(d.sampleRate) * 1000
	}

	d.totalBytesOut += int64(dataLen)
	d.totalSamples += int64(samples)
	return
}

func (d *Driver) applyMPEGStats(f *mpeg.Frame) {
	d.sampleRate = f.Header.SampleRate
	bitrate, frameNum, totBytes, totSamples, totDur, dur := d.applyStats(len(f.Data), f.Samples)
	f.Header.Bitrate = bitrate
	f.FrameNumber = frameNum
	f.TotalBytesOut = totBytes
	f.TotalSamples = totSamples
	f.TotalDuration = totDur
	f.Duration = dur
	d.mpegParser.HeaderCache().CheckCodecUpdate(bitrate, totDur, d.onCodecUpdate)
}

func (d *Driver) applyAACStats(f *aac.Frame) {
	d.sampleRate = f.Header.SampleRate
	bitrate, frameNum, totBytes, totSamples, totDur, dur := d.applyStats(len(f.Data), f.Samples)
	f.Header.Bitrate = bitrate
	f.FrameNumber = frameNum
	f.TotalBytesOut = totBytes
	f.TotalSamples = totSamples
	f.TotalDuration = totDur
	f.Duration = dur
	d.aacParser.HeaderCache().CheckCodecUpdate(bitrate, totDur, d.onCodecUpdate)
}

func (d *Driver) applyFLACStats(f *flac.Frame) {
	d.sampleRate = f.Header.SampleRate
	bitrate, frameNum, totBytes, totSamples, totDur, dur := d.applyStats(len(f.Data), f.Samples)
	f.Header.Bitrate = bitrate
	f.FrameNumber = frameNum
	f.TotalBytesOut = totBytes
	f.TotalSamples = totSamples
	f.TotalDuration = totDur
	f.Duration = dur
	d.flacParser.HeaderCache().CheckCodecUpdate(bitrate, totDur, d.onCodecUpdate)
}

// applyOggPageStats maps statistics for every codec frame an Ogg page
// carried, accumulating the page's own samples/duration, then sets the
// page's running totals from the Driver's totals once every frame in
// the page has been folded in.
func (d *Driver) applyOggPageStats(p *ogg.Page) {
	for _, cf := range p.CodecFrames {
		switch f := cf.(type) {
		case *opus.Frame:
			d.sampleRate = opus.OutputSampleRate
			_, frameNum, totBytes, totSamples, totDur, dur := d.applyStats(len(f.Data), f.Samples)
			f.FrameNumber = frameNum
			f.TotalBytesOut = totBytes
			f.TotalSamples = totSamples
			f.TotalDuration = totDur
			f.Duration = dur
			p.Samples += f.Samples
			p.Duration += f.Duration
		case *vorbis.Frame:
			if sr := d.oggDemuxer.SampleRate(); sr > 0 {
				d.sampleRate = sr
			}
			_, frameNum, totBytes, totSamples, totDur, dur := d.applyStats(len(f.Data), f.Samples)
			f.FrameNumber = frameNum
			f.TotalBytesOut = totBytes
			f.TotalSamples = totSamples
			f.TotalDuration = totDur
			f.Duration = dur
			p.Samples += f.Samples
			p.Duration += f.Duration
		case *ogg.FLACFrame:
			d.sampleRate = f.Header.SampleRate
			bitrate, frameNum, totBytes, totSamples, totDur, dur := d.applyStats(len(f.Data), f.Samples)
			f.Header.Bitrate = bitrate
			f.FrameNumber = frameNum
			f.TotalBytesOut = totBytes
			f.TotalSamples = totSamples
			f.TotalDuration = totDur
			f.Duration = dur
			p.Samples += f.Samples
			p.Duration += f.Duration
		}
	}
	p.TotalBytesOut = d.totalBytesOut
	p.TotalSamples = d.totalSamples
	if d.sampleRate > 0 {
		p.TotalDuration = float64(d.totalSamples) / float64(d.sampleRate) * 1000
	}
}
