// Package decode implements the single-pass, schema-driven decoder that
// walks a byte stream against a typeir.Graph, advancing a binary.Cursor
// and reporting every type id and enumeration variant it touches along
// the way. It never backtracks: a cursor position is read at most once.
package decode

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Value is a decoded primitive leaf: exactly one of its fields is
// meaningful, the one matching the inline kind that was decoded (Value
// itself does not record that kind). Compact-encoded integers and the
// fixed-width 128/256-bit integers use different backing types because
// they come from genuinely different wire shapes — a compact value's
// byte width is only known after reading its mode tag, while a fixed
// 128/256-bit word has unambiguous width up front, which is exactly what
// uint256.Int is built for.
type Value struct {
	Bool    bool
	Str     string
	U64     uint64       // u8/u16/u32/u64 and the signed widths up to i64 (raw bit pattern)
	Big     *uint256.Int // u128/u256/i128/i256 (raw bit pattern)
	Compact *big.Int     // compact<u8|u16|u32|u64|u128>
}

// leWordToUint256 interprets a little-endian byte slice as a uint256.Int.
func leWordToUint256(le []byte) *uint256.Int {
	be := make([]byte, len(le))
	for i, b := range le {
		be[len(le)-1-i] = b
	}
	return new(uint256.Int).SetBytes(be)
}
