/*
NAME
  crc_test.go

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package bitio

import "testing"

// byteByByteCRC32 is a reference implementation independent of the
// table-driven one above, used to confirm the tables are correct.
func byteByByteCRC32(poly uint32, b []byte) uint32 {
	var crc uint32
	for _, v := range b {
		crc ^= uint32(v) << 24
		for i := 0; i < 8; i++ {
			if crc&0x80000000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func byteByByteCRC16(poly uint16, b []byte) uint16 {
	var crc uint16
	for _, v := range b {
		crc ^= uint16(v) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func TestOggCRC32MatchesReference(t *testing.T) {
	cases := [][]byte{
		[]byte("OggS"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		make([]byte, 37),
		{},
	}
	for _, c := range cases {
		got := OggCRC32(c)
		want := byteByByteCRC32(0x04C11DB7, c)
		if got != want {
			t.Errorf("OggCRC32(%v) = %#x, want %#x", c, got, want)
		}
	}
}

func TestFLACCRC16MatchesReference(t *testing.T) {
	cases := [][]byte{
		[]byte("fLaC"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		make([]byte, 41),
	}
	for _, c := range cases {
		got := FLACCRC16(c)
		want := byteByByteCRC16(0x8005, c)
		if got != want {
			t.Errorf("FLACCRC16(%v) = %#x, want %#x", c, got, want)
		}
	}
}

func TestFrameCRC32KnownVector(t *testing.T) {
	// "123456789" is the standard CRC check string; CRC-32/ISO-HDLC
	// (the reflected IEEE polynomial used here) of it is 0xCBF43926.
	got := FrameCRC32([]byte("123456789"))
	const want = 0xCBF43926
	if got != want {
		t.Errorf("FrameCRC32(123456789) = %#x, want %#x", got, want)
	}
}

func TestReverseByte(t *testing.T) {
	cases := []struct {
		in, want byte
	}{
		{0x00, 0x00},
		{0xFF, 0xFF},
		{0x01, 0x80},
		{0x80, 0x01},
		{0b1100_0001, 0b1000_0011},
	}
	for _, c := range cases {
		if got := ReverseByte(c.in); got != c.want {
			t.Errorf("ReverseByte(%08b) = %08b, want %08b", c.in, got, c.want)
		}
	}
}
