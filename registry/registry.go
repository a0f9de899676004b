// Package registry defines the shape of a runtime's self-describing type
// registry as handed to this pipeline by an upstream collaborator that has
// already parsed the concrete runtime-metadata binary format. Nothing in
// this package reads bytes; it is a plain, already-decoded data model —
// the input contract for package lower.
package registry

// TypeID identifies a type within a Registry. IDs are assigned by whatever
// produced the registry and need not be dense or start at zero.
type TypeID uint32

// PrimitiveKind enumerates the primitive type names a Primitive TypeDef (or
// a Compact's inner type) may name.
type PrimitiveKind int

const (
	Bool PrimitiveKind = iota
	Char
	Str
	U8
	U16
	U32
	U64
	U128
	U256
	I8
	I16
	I32
	I64
	I128
	I256
)

// IsUnsignedInteger reports whether p is one of U8..U256. Package lower
// accepts only U8..U128 as the inner type of a Compact; U256 is rejected
// there.
func (p PrimitiveKind) IsUnsignedInteger() bool {
	switch p {
	case U8, U16, U32, U64, U128, U256:
		return true
	default:
		return false
	}
}

// DefKind discriminates the shape of a TypeDef.
type DefKind int

const (
	DefComposite DefKind = iota
	DefVariant
	DefSequence
	DefArray
	DefTuple
	DefPrimitive
	DefCompact
	DefBitSequence
)

// Field is one member of a Composite or Variant, referencing its type by
// id. Name and TypeName are both optional (tuple-structs and unnamed
// variant fields have no Name; TypeName is purely documentary).
type Field struct {
	Name     *string
	Type     TypeID
	TypeName *string
}

// Variant is one declared case of an enumeration, carrying its own index
// (the byte written on the wire to select it) and ordered field list.
type Variant struct {
	Name   string
	Fields []Field
	Index  uint8
}

// TypeDef is the tagged union of everything a registry Type can define.
// Only the field(s) matching Kind are meaningful.
type TypeDef struct {
	Kind DefKind

	Composite []Field // DefComposite

	Variants []Variant // DefVariant

	SequenceElem TypeID // DefSequence

	ArrayLen  uint32 // DefArray
	ArrayElem TypeID // DefArray

	Tuple []TypeID // DefTuple

	Primitive PrimitiveKind // DefPrimitive

	CompactInner TypeID // DefCompact

	BitStoreType TypeID // DefBitSequence
	BitOrderType TypeID // DefBitSequence
}

// Type is one registry entry: a path (possibly empty, for anonymous or
// built-in types) and its definition.
type Type struct {
	ID      TypeID
	Path    []string
	TypeDef TypeDef
}

// SignedExtensionMetadata names one signed extension's contribution to the
// extrinsic and to the additional-signed payload.
type SignedExtensionMetadata struct {
	Identifier           string
	IncludedInExtrinsic  TypeID
	IncludedInSignedData TypeID
}

// ExtrinsicMetadata is the small record describing how a runtime's
// extrinsics are framed: which types carry the address, call, signature
// and extra data, and the ordered list of signed extensions.
type ExtrinsicMetadata struct {
	Version          uint8
	AddressType      TypeID
	CallType         TypeID
	SignatureType    TypeID
	ExtraType        TypeID
	SignedExtensions []SignedExtensionMetadata
}

// Registry is the complete self-describing type registry for one runtime:
// every type it exposes, plus the extrinsic envelope metadata.
type Registry struct {
	Types             map[TypeID]Type
	ExtrinsicMetadata ExtrinsicMetadata
}
