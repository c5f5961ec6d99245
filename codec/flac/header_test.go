package flac

import "testing"

func TestParseHeaderDecodesFixedBlockingFrame(t *testing.T) {
	b := []byte{0xFF, 0xF8, 0x99, 0x18, 0x00, 0xAB}
	h, length, ok, needMore := ParseHeader(b)
	if needMore {
		t.Fatalf("unexpected needMore")
	}
	if !ok {
		t.Fatalf("expected valid header")
	}
	if length != 6 {
		t.Errorf("length = %d, want 6", length)
	}
	if h.BlockingStrategyVariable {
		t.Errorf("expected fixed blocking strategy")
	}
	if h.BlockSize != 512 {
		t.Errorf("BlockSize = %d, want 512", h.BlockSize)
	}
	if h.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", h.SampleRate)
	}
	if h.Channels != 2 {
		t.Errorf("Channels = %d, want 2", h.Channels)
	}
	if h.BitDepth != 16 {
		t.Errorf("BitDepth = %d, want 16", h.BitDepth)
	}
}

func TestParseHeaderRejectsBadSync(t *testing.T) {
	b := []byte{0xFF, 0xE8, 0x99, 0x18, 0x00, 0xAB}
	_, _, ok, needMore := ParseHeader(b)
	if ok || needMore {
		t.Fatalf("expected rejection, got ok=%v needMore=%v", ok, needMore)
	}
}

func TestParseHeaderNeedsMoreOnShortInput(t *testing.T) {
	b := []byte{0xFF, 0xF8, 0x99}
	_, _, ok, needMore := ParseHeader(b)
	if ok {
		t.Fatalf("did not expect ok on truncated input")
	}
	if !needMore {
		t.Fatalf("expected needMore on truncated input")
	}
}

func TestParseHeaderRejectsReservedSampleSize(t *testing.T) {
	b := []byte{0xFF, 0xF8, 0x99, 0x06, 0x00, 0xAB} // sample size code 0b011.
	_, _, ok, needMore := ParseHeader(b)
	if ok || needMore {
		t.Fatalf("expected rejection, got ok=%v needMore=%v", ok, needMore)
	}
}

func TestDecodeCodedNumberSingleAndMultiByte(t *testing.T) {
	cases := []struct {
		name string
		b    []byte
		want uint64
		n    int
	}{
		{"single byte", []byte{0x00}, 0, 1},
		{"two byte", []byte{0b11000001, 0b10000000}, 1 << 6, 2},
		{"three byte", []byte{0b11100000, 0b10000001, 0b10000010}, (1 << 6) | 2, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, n, ok, needMore := decodeCodedNumber(c.b)
			if needMore || !ok {
				t.Fatalf("ok=%v needMore=%v", ok, needMore)
			}
			if v != c.want || n != c.n {
				t.Errorf("got (%d,%d), want (%d,%d)", v, n, c.want, c.n)
			}
		})
	}
}
