package opus

import (
	"encoding/binary"
	"testing"
)

func buildIdentificationHeader(channels int, preSkip int, sampleRate int, family int) []byte {
	b := make([]byte, 19)
	copy(b, []byte("OpusHead"))
	b[8] = 1
	b[9] = byte(channels)
	binary.LittleEndian.PutUint16(b[10:12], uint16(preSkip))
	binary.LittleEndian.PutUint32(b[12:16], uint32(sampleRate))
	binary.LittleEndian.PutUint16(b[16:18], 0)
	b[18] = byte(family)
	return b
}

func TestParseIdentificationHeaderMappingFamily0(t *testing.T) {
	b := buildIdentificationHeader(2, 312, 44100, 0)
	h, err := ParseIdentificationHeader(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Channels != 2 {
		t.Errorf("Channels = %d, want 2", h.Channels)
	}
	if h.PreSkip != 312 {
		t.Errorf("PreSkip = %d, want 312", h.PreSkip)
	}
	if h.InputSampleRate != 44100 {
		t.Errorf("InputSampleRate = %d, want 44100", h.InputSampleRate)
	}
}

func TestParseIdentificationHeaderRejectsBadMagic(t *testing.T) {
	b := buildIdentificationHeader(1, 0, 48000, 0)
	copy(b, []byte("NotOpus!"))
	if _, err := ParseIdentificationHeader(b); err == nil {
		t.Fatalf("expected error on bad magic")
	}
}

func TestParseIdentificationHeaderMultistream(t *testing.T) {
	b := buildIdentificationHeader(4, 0, 48000, 1)
	b = append(b, 2, 1, 0, 1, 2, 3) // streamCount=2, coupledCount=1, channel map.
	h, err := ParseIdentificationHeader(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.StreamCount != 2 || h.CoupledCount != 1 {
		t.Errorf("StreamCount/CoupledCount = %d/%d, want 2/1", h.StreamCount, h.CoupledCount)
	}
	if len(h.ChannelMap) != 4 {
		t.Errorf("len(ChannelMap) = %d, want 4", len(h.ChannelMap))
	}
}
