package vorbis

import (
	"encoding/binary"
	"testing"
)

func buildIdentificationHeader(channels, sampleRate int, bs0exp, bs1exp byte) []byte {
	b := make([]byte, 30)
	b[0] = packetTypeIdentification
	copy(b[1:7], []byte("vorbis"))
	binary.LittleEndian.PutUint32(b[7:11], 0)
	b[11] = byte(channels)
	binary.LittleEndian.PutUint32(b[12:16], uint32(sampleRate))
	b[28] = bs0exp | (bs1exp << 4)
	b[29] = 0x01 // Framing bit.
	return b
}

func TestParseIdentificationHeaderDecodesBlocksizes(t *testing.T) {
	b := buildIdentificationHeader(2, 44100, 8, 11) // 2^8=256, 2^11=2048.
	h, err := ParseIdentificationHeader(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Channels != 2 || h.SampleRate != 44100 {
		t.Errorf("Channels/SampleRate = %d/%d, want 2/44100", h.Channels, h.SampleRate)
	}
	if h.Blocksize0 != 256 {
		t.Errorf("Blocksize0 = %d, want 256", h.Blocksize0)
	}
	if h.Blocksize1 != 2048 {
		t.Errorf("Blocksize1 = %d, want 2048", h.Blocksize1)
	}
}

func TestParseIdentificationHeaderRejectsMissingFraming(t *testing.T) {
	b := buildIdentificationHeader(1, 48000, 8, 10)
	b[29] = 0x00
	if _, err := ParseIdentificationHeader(b); err == nil {
		t.Fatalf("expected error on missing framing bit")
	}
}

func TestParseIdentificationHeaderRejectsBadMagic(t *testing.T) {
	b := buildIdentificationHeader(1, 48000, 8, 10)
	copy(b[1:7], []byte("XXXXXX"))
	if _, err := ParseIdentificationHeader(b); err == nil {
		t.Fatalf("expected error on bad magic")
	}
}

func TestIsCommentAndSetupHeader(t *testing.T) {
	comment := []byte{packetTypeComment, 'v', 'o', 'r', 'b', 'i', 's', 0}
	if !IsCommentHeader(comment) {
		t.Errorf("expected IsCommentHeader true")
	}
	if IsSetupHeader(comment) {
		t.Errorf("expected IsSetupHeader false")
	}
}
