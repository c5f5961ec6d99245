package mpeg

import "testing"

// mp3FrameHeaderBytes builds a MPEG1 Layer III header: bitrate index
// 8 (112kbps), 44100Hz, stereo, no padding, no CRC.
func mp3FrameHeaderBytes() []byte {
	// 1111 1111 1111 1011 1000 0000 0000 0000
	return []byte{0xFF, 0xFB, 0x80, 0x00}
}

func TestParseHeaderDecodesMPEG1LayerIII(t *testing.T) {
	h, ok := ParseHeader(mp3FrameHeaderBytes())
	if !ok {
		t.Fatalf("expected valid header")
	}
	if h.Version != 1 {
		t.Errorf("Version = %v, want 1", h.Version)
	}
	if h.Layer != 3 {
		t.Errorf("Layer = %d, want 3", h.Layer)
	}
	if h.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", h.SampleRate)
	}
	if h.Channels != 2 {
		t.Errorf("Channels = %d, want 2", h.Channels)
	}
	if h.FrameLength != 365 {
		t.Errorf("FrameLength = %d, want 365", h.FrameLength)
	}
}

func TestParseHeaderRejectsBadSync(t *testing.T) {
	b := mp3FrameHeaderBytes()
	b[0] = 0x00
	if _, ok := ParseHeader(b); ok {
		t.Fatalf("expected rejection on bad sync")
	}
}

func TestParseHeaderRejectsZeroAndReservedBitrateIndex(t *testing.T) {
	for _, idx := range []byte{0x0, 0xF} {
		b := mp3FrameHeaderBytes()
		b[2] = (b[2] & 0x0F) | (idx << 4)
		if _, ok := ParseHeader(b); ok {
			t.Errorf("bitrate index %x: expected rejection", idx)
		}
	}
}

func TestParseHeaderRejectsReservedSampleRateIndex(t *testing.T) {
	b := mp3FrameHeaderBytes()
	b[2] = (b[2] & 0xF3) | (0x3 << 2)
	if _, ok := ParseHeader(b); ok {
		t.Fatalf("expected rejection on reserved sample rate index")
	}
}

func TestParseHeaderRejectsReservedEmphasis(t *testing.T) {
	b := mp3FrameHeaderBytes()
	b[3] = (b[3] & 0xFC) | 0x2
	if _, ok := ParseHeader(b); ok {
		t.Fatalf("expected rejection on reserved emphasis")
	}
}

func TestModeExtensionKeepsRawMaskedValue(t *testing.T) {
	b := mp3FrameHeaderBytes()
	b[3] = (b[3] & 0x0F) | (0x2 << 6) | (0x3 << 4) // Joint stereo, ModeExtension bits = 0b11.
	h, ok := ParseHeader(b)
	if !ok {
		t.Fatalf("expected valid header")
	}
	if h.ChannelModeIdx != 0b10 {
		t.Errorf("ChannelModeIdx = %d, want 2 (joint stereo)", h.ChannelModeIdx)
	}
	if h.ModeExtension != 0b11 {
		t.Errorf("ModeExtension = %d, want 3 (raw masked value)", h.ModeExtension)
	}
}
