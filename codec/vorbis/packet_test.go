package vorbis

import "testing"

func TestParsePacketSelectsModeAndBlockSize(t *testing.T) {
	id := IdentificationHeader{Blocksize0: 256, Blocksize1: 2048}
	setup := SetupHeader{
		Modes:    []ModeEntry{{BlockFlag: false, Mapping: 0}, {BlockFlag: true, Mapping: 1}},
		ModeBits: 1,
	}
	p := NewParser(id, setup, nil)

	// Packet type bit 0 = 0 (audio), mode selector bit (bit1) = 1 -> mode 1 (long block).
	data := []byte{0b00000010, 0x00}
	f, ok := p.ParsePacket(data)
	if !ok {
		t.Fatalf("expected a frame")
	}
	if !f.BlockFlag {
		t.Errorf("expected long block selected")
	}
	if f.Samples != 1024 {
		t.Errorf("Samples = %d, want 1024 (Blocksize1/2)", f.Samples)
	}
}

func TestParsePacketShortBlock(t *testing.T) {
	id := IdentificationHeader{Blocksize0: 256, Blocksize1: 2048}
	setup := SetupHeader{
		Modes:    []ModeEntry{{BlockFlag: false, Mapping: 0}},
		ModeBits: 0,
	}
	p := NewParser(id, setup, nil)

	data := []byte{0x00, 0x00}
	f, ok := p.ParsePacket(data)
	if !ok {
		t.Fatalf("expected a frame")
	}
	if f.BlockFlag {
		t.Errorf("expected short block selected")
	}
	if f.Samples != 64 {
		t.Errorf("Samples = %d, want 64 (Blocksize0/4)", f.Samples)
	}
}

func TestParsePacketRejectsHeaderPacketType(t *testing.T) {
	p := NewParser(IdentificationHeader{}, SetupHeader{Modes: []ModeEntry{{}}}, nil)
	data := []byte{0x01, 0x00} // Packet-type bit set: not an audio packet.
	if _, ok := p.ParsePacket(data); ok {
		t.Fatalf("expected rejection")
	}
}
