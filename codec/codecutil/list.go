/*
NAME
  list.go

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


package codecutil

// All audio codecs this module can demux. When adding or removing a
// codec from this list, the IsValid function below must be updated.
const (
	MPEG   = "mpeg"
	AAC    = "aac"
	FLAC   = "flac"
	OPUS   = "opus"
	VORBIS = "vorbis"
)

// IsValid checks if a string is a known and valid codec in the right format.
func IsValid(s string) bool {
	switch s {
	case MPEG, AAC, FLAC, OPUS, VORBIS:
		return true
	default:
		return false
	}
}

// Mime families this module accepts at construction, and the codec
// each one implies before any Ogg-carried codec identification occurs.
const (
	MimeMPEG = "audio/mpeg"
	MimeAAC  = "audio/aac"
	MimeAACP = "audio/aacp"
	MimeFLAC = "audio/flac"
	MimeOgg  = "audio/ogg"
	MimeOggX = "application/ogg"
)

// CodecForMime returns the fixed codec a non-Ogg mime family implies,
// and whether mime is recognised at all. The Ogg families return ""
// since their codec is only known once the first page is identified.
func CodecForMime(mime string) (codec string, ok bool) {
	switch mime {
	case MimeMPEG:
		return MPEG, true
	case MimeAAC, MimeAACP:
		return AAC, true
	case MimeFLAC:
		return FLAC, true
	case MimeOgg, MimeOggX:
		return "", true
	default:
		return "", false
	}
}
