package mpeg

import (
	"testing"

	"github.com/ausocean/audioframe/codec/codecutil"
)

func TestParserEmitsTwoConsecutiveFrames(t *testing.T) {
	header := mp3FrameHeaderBytes()
	frame := make([]byte, 365)
	copy(frame, header)

	r := codecutil.NewRawReader()
	r.Push(append(append([]byte{}, frame...), frame...))
	r.Flush()

	p := NewParser(nil)
	var frames []*Frame
	for i := 0; i < 10 && len(frames) < 2; i++ {
		f, advance, needMore := p.Next(r)
		if needMore {
			t.Fatalf("unexpected needMore at step %d", i)
		}
		r.Advance(advance)
		if f != nil {
			frames = append(frames, f)
		}
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].Header.FrameLength != 365 {
		t.Errorf("FrameLength = %d, want 365", frames[0].Header.FrameLength)
	}
}

func TestParserSkipsID3v2TagBeforeSync(t *testing.T) {
	tag := make([]byte, 10)
	copy(tag, []byte("ID3"))
	tag[3], tag[4] = 3, 0 // Version.
	// Synchsafe size for 20 bytes of tag payload.
	tag[6], tag[7], tag[8], tag[9] = 0, 0, 0, 20
	payload := make([]byte, 20)

	header := mp3FrameHeaderBytes()
	frame := make([]byte, 365)
	copy(frame, header)

	stream := append(append(append([]byte{}, tag...), payload...), frame...)

	r := codecutil.NewRawReader()
	r.Push(stream)
	r.Flush()

	p := NewParser(nil)
	var got *Frame
	total := 0
	for i := 0; i < 10 && got == nil; i++ {
		f, advance, needMore := p.Next(r)
		if needMore {
			t.Fatalf("unexpected needMore at step %d", i)
		}
		r.Advance(advance)
		total += advance
		got = f
	}
	if got == nil {
		t.Fatalf("expected a frame after ID3v2 skip")
	}
	if total != len(tag)+len(payload)+365 {
		t.Errorf("total advance = %d, want %d", total, len(tag)+len(payload)+365)
	}
}
