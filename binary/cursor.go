// Package binary implements the low-level byte primitives the decoder and
// the IR lowering pipeline build on: a read-only cursor over an immutable
// byte slice, fixed-width little-endian integers, and the variable-length
// "compact" integer encoding used throughout the wire format.
//
// Cursor reads do not allocate; the compact big-integer reads
// (ReadCompactBigUint, and ReadCompactUint64 through it) allocate a
// big.Int and a scratch slice per value, and the Append functions grow
// their destination slice. Every read is bounds-checked and reports
// ErrTruncated rather than panicking, since the cursor is driven directly
// by attacker-controlled input.
package binary

import "errors"

// ErrTruncated is returned whenever a read would need more bytes than the
// cursor has remaining.
var ErrTruncated = errors.New("binary: truncated input")

// Cursor is a forward-only reader over an immutable byte slice. It never
// copies the underlying slice; callers must not mutate it while a Cursor is
// in use.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data in a Cursor starting at offset 0.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int {
	return len(c.data) - c.pos
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the unread tail of the underlying slice without
// advancing the cursor.
func (c *Cursor) Remaining() []byte {
	return c.data[c.pos:]
}

// ReadByte consumes and returns a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	if c.Len() < 1 {
		return 0, ErrTruncated
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// ReadBytes consumes and returns the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.Len() < n {
		return nil, ErrTruncated
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadUintLE reads an n-byte little-endian unsigned integer and returns it
// widened into a uint64. n must be <= 8; wider fixed-width integers (u128,
// u256) are read with ReadBytes instead, since a uint64 cannot hold them.
func (c *Cursor) ReadUintLE(n int) (uint64, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}
