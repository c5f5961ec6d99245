/*
NAME
  crc.go

DESCRIPTION
  crc.go provides the CRC variants used across the codec and container
  packages: CRC-8 (reserved for future use), the Ogg page CRC-32, the
  FLAC frame CRC-16, and the per-frame statistics CRC-32.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bitio provides the CRC implementations and bit-level reader
// shared by the codec and container packages.
package bitio

import "hash/crc32"

// CRC8 is an MSB-first, non-reflected CRC-8 with polynomial 0x07 and a
// zero initial value. No format in this module currently relies on it;
// it is kept available the way the source implementation keeps it
// available for future codecs.
func CRC8(b []byte) byte {
	var crc byte
	for _, v := range b {
		crc ^= v
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = (crc << 1) ^ 0x07
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// oggCRCTable is the table for the Ogg page CRC-32: polynomial
// 0x04C11DB7, no reflection, no final XOR, MSB-first byte injection.
// Built the way container/mts/psi builds its PSI CRC-32 table.
var oggCRCTable = makeCRC32Table(0x04C11DB7)

// OggCRC32 computes the Ogg page checksum over b, which must already
// have its 4-byte pageChecksum field zeroed. The table-driven inner
// loop processes one byte per lookup; there is no wider slicing
// variant.
func OggCRC32(b []byte) uint32 {
	var crc uint32
	for _, v := range b {
		crc = oggCRCTable[byte(crc>>24)^v] ^ (crc << 8)
	}
	return crc
}

// flacCRCTable16 is the table for FLAC's CRC-16: polynomial 0x8005, no
// reflection, big-endian byte injection.
var flacCRCTable16 = makeCRC16Table(0x8005)

// FLACCRC16 computes the FLAC frame footer checksum over b (the frame
// header and payload, excluding the 2-byte footer itself).
func FLACCRC16(b []byte) uint16 {
	var crc uint16
	for _, v := range b {
		crc = (crc << 8) ^ flacCRCTable16[byte(crc>>8)^v]
	}
	return crc
}

// FrameCRC32 is the per-frame statistics checksum: the reflected
// IEEE/PNG polynomial (0xEDB88320), deliberately using a distinct
// table from OggCRC32 so the two never share state. hash/crc32's IEEE
// table already is this polynomial, so it is reused directly rather
// than re-derived.
func FrameCRC32(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

// makeCRC32Table builds the 256-entry MSB-first, non-reflected CRC-32
// table for poly.
func makeCRC32Table(poly uint32) *[256]uint32 {
	var t [256]uint32
	for i := 0; i < 256; i++ {
		crc := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return &t
}

// makeCRC16Table builds the 256-entry MSB-first, non-reflected CRC-16
// table for poly.
func makeCRC16Table(poly uint16) *[256]uint16 {
	var t [256]uint16
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return &t
}
