package opus

import "testing"

func TestParsePacketCode0SingleFrame(t *testing.T) {
	toc := byte(16<<3) | 0 // Config 16: CELT narrowband, 2.5ms, mono, code 0.
	data := append([]byte{toc}, make([]byte, 10)...)

	p := NewParser(IdentificationHeader{Channels: 1}, nil)
	f, ok := p.ParsePacket(data)
	if !ok {
		t.Fatalf("expected a frame")
	}
	if f.FrameCount != 1 {
		t.Errorf("FrameCount = %d, want 1", f.FrameCount)
	}
	if f.TOC.Mode != ModeCELT {
		t.Errorf("Mode = %v, want celt", f.TOC.Mode)
	}
	wantSamples := int(2.5 * OutputSampleRate / 1000)
	if f.Samples != wantSamples {
		t.Errorf("Samples = %d, want %d", f.Samples, wantSamples)
	}
}

func TestParsePacketCode3VBRFrameCount(t *testing.T) {
	toc := byte(0<<3) | 0x3 // Config 0: SILK NB 10ms, code 3.
	frameCountByte := byte(0x80) | 5 // VBR, 5 frames.
	data := []byte{toc, frameCountByte, 0, 0, 0}

	p := NewParser(IdentificationHeader{Channels: 1}, nil)
	f, ok := p.ParsePacket(data)
	if !ok {
		t.Fatalf("expected a frame")
	}
	if f.FrameCount != 5 {
		t.Errorf("FrameCount = %d, want 5", f.FrameCount)
	}
	if !f.IsVBR {
		t.Errorf("expected IsVBR true")
	}
	if f.Duration != 50 {
		t.Errorf("Duration = %v, want 50", f.Duration)
	}
}

func TestParsePacketCode3RejectsZeroFrameCount(t *testing.T) {
	toc := byte(0<<3) | 0x3
	data := []byte{toc, 0x00}
	p := NewParser(IdentificationHeader{Channels: 1}, nil)
	if _, ok := p.ParsePacket(data); ok {
		t.Fatalf("expected rejection on zero frame count")
	}
}

func TestParsePacketRejectsEmpty(t *testing.T) {
	p := NewParser(IdentificationHeader{Channels: 1}, nil)
	if _, ok := p.ParsePacket(nil); ok {
		t.Fatalf("expected rejection on empty packet")
	}
}
