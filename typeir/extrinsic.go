package typeir

import "github.com/bkchr/merkelized-metadata/binary"

// SignedExtension is one signed extension's contribution to an extrinsic,
// already resolved to IR references: the bytes it writes into the
// extrinsic body, and the bytes it contributes to the additional-signed
// payload that accompanies (but is never itself part of) the extrinsic.
type SignedExtension struct {
	Identifier           string
	IncludedInExtrinsic  TypeRef
	IncludedInSignedData TypeRef
}

// ExtrinsicSchema is a runtime's extrinsic envelope, lowered: every type
// id registry.ExtrinsicMetadata named has been resolved to a TypeRef
// against the same Graph this schema was lowered alongside.
type ExtrinsicSchema struct {
	Version          uint8
	Address          TypeRef
	Call             TypeRef
	Signature        TypeRef
	Extra            TypeRef
	SignedExtensions []SignedExtension
}

// Encode returns the canonical serialization of the schema, hashed
// separately from the type registry's own Merkle root so a verifier can
// check the envelope shape without re-deriving it from the full type
// tree.
func (s *ExtrinsicSchema) Encode() []byte {
	var buf []byte
	buf = append(buf, s.Version)
	buf = s.Address.encodeInto(buf)
	buf = s.Call.encodeInto(buf)
	buf = s.Signature.encodeInto(buf)
	buf = s.Extra.encodeInto(buf)
	buf = binary.AppendCompactUint64(buf, uint64(len(s.SignedExtensions)))
	for _, se := range s.SignedExtensions {
		buf = binary.AppendCompactBytes(buf, []byte(se.Identifier))
		buf = se.IncludedInExtrinsic.encodeInto(buf)
		buf = se.IncludedInSignedData.encodeInto(buf)
	}
	return buf
}
