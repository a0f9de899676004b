package merkle

import "github.com/bkchr/merkelized-metadata/binary"

// digestV1Discriminant is the tag byte selecting the V1 digest shape. It
// exists so future digest versions can be added without breaking decoders
// that only understand V1.
const digestV1Discriminant = 0x00

// ChainInfo is the small bundle of chain-identification fields folded into
// the digest alongside the types-tree root and the extrinsic metadata
// hash. None of these fields are derivable from the type registry itself.
type ChainInfo struct {
	SpecVersion  uint32
	SpecName     string
	Base58Prefix uint16
	Decimals     uint8
	TokenSymbol  string
}

// Digest is the tagged, versioned commitment described in §6.2: a 32-byte
// root over the canonicalized type leaves, a hash of the extrinsic
// envelope metadata, and the chain-identification bundle.
type Digest struct {
	TypesTreeRoot         Hash
	ExtrinsicMetadataHash Hash
	ChainInfo             ChainInfo
}

// Encode returns the canonical serialization of the digest: the V1
// discriminant byte, followed by the two 32-byte hashes and the
// little-endian / compact-length-prefixed chain-info fields.
func (d Digest) Encode() []byte {
	buf := make([]byte, 0, 1+32+32+4+1+len(d.ChainInfo.SpecName)+2+1+1+len(d.ChainInfo.TokenSymbol))
	buf = append(buf, digestV1Discriminant)
	buf = append(buf, d.TypesTreeRoot[:]...)
	buf = append(buf, d.ExtrinsicMetadataHash[:]...)
	buf = append(buf,
		byte(d.ChainInfo.SpecVersion),
		byte(d.ChainInfo.SpecVersion>>8),
		byte(d.ChainInfo.SpecVersion>>16),
		byte(d.ChainInfo.SpecVersion>>24),
	)
	buf = binary.AppendCompactBytes(buf, []byte(d.ChainInfo.SpecName))
	buf = append(buf, byte(d.ChainInfo.Base58Prefix), byte(d.ChainInfo.Base58Prefix>>8))
	buf = append(buf, d.ChainInfo.Decimals)
	buf = binary.AppendCompactBytes(buf, []byte(d.ChainInfo.TokenSymbol))
	return buf
}

// Hash returns blake2b-256 of the digest's canonical serialization — the
// 32-byte value a verifier ultimately compares against.
func (d Digest) Hash() Hash {
	return Sum256(d.Encode())
}
