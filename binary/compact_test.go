package binary

import "testing"

func TestReadCompactUint64SingleByteMode(t *testing.T) {
	// 63 encodes as (63 << 2) | 0b00 = 0xfc.
	c := NewCursor([]byte{0xfc})
	v, err := c.ReadCompactUint64()
	if err != nil {
		t.Fatalf("ReadCompactUint64: %v", err)
	}
	if v != 63 {
		t.Fatalf("got %d, want 63", v)
	}
}

func TestReadCompactUint64TwoByteMode(t *testing.T) {
	// 100 -> (100<<2)|0b01 = 0x191, little-endian bytes: 0x91, 0x01.
	c := NewCursor([]byte{0x91, 0x01})
	v, err := c.ReadCompactUint64()
	if err != nil {
		t.Fatalf("ReadCompactUint64: %v", err)
	}
	if v != 100 {
		t.Fatalf("got %d, want 100", v)
	}
}

func TestReadCompactUint64FourByteMode(t *testing.T) {
	// 1 << 16 -> (65536<<2)|0b10 = 0x40002, LE bytes: 02 00 04 00.
	c := NewCursor([]byte{0x02, 0x00, 0x04, 0x00})
	v, err := c.ReadCompactUint64()
	if err != nil {
		t.Fatalf("ReadCompactUint64: %v", err)
	}
	if v != 1<<16 {
		t.Fatalf("got %d, want %d", v, 1<<16)
	}
}

func TestReadCompactBigUintBigMode(t *testing.T) {
	// Encode 2^40 in big mode: needs 6 bytes -> length byte = (6-4)<<2 | 0b11 = 0x0b.
	c := NewCursor([]byte{0x0b, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01})
	v, err := c.ReadCompactBigUint()
	if err != nil {
		t.Fatalf("ReadCompactBigUint: %v", err)
	}
	want := int64(1) << 40
	if v.Int64() != want {
		t.Fatalf("got %s, want %d", v.String(), want)
	}
}

func TestReadCompactBigUintOverflow(t *testing.T) {
	// The largest length byte, 0xff, claims (0xff>>2)+4 = 67 bytes, which
	// exceeds maxCompactBigModeLen.
	c := NewCursor([]byte{0xff}) // (0xff>>2)=63, +4 = 67 > 64
	if _, err := c.ReadCompactBigUint(); err != ErrCompactOverflow {
		t.Fatalf("err = %v, want ErrCompactOverflow", err)
	}
}

func TestReadCompactUint64TruncatedPropagates(t *testing.T) {
	c := NewCursor([]byte{0x01}) // two-byte mode, missing second byte
	if _, err := c.ReadCompactUint64(); err != ErrTruncated {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}
