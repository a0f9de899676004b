// Package typeir implements the canonical, content-addressed intermediate
// representation (IR) that the rest of the pipeline is built on: a
// registry of dense unique_id -> Entry, with late-resolved references that
// tolerate cycles during construction.
//
// Unlike package registry (the raw, upstream-supplied type registry), a
// typeir.Graph has already been through canonicalization: primitives and
// compacts are inlined, void wrappers are gone, and every surviving
// enumeration has been expanded into one Entry per variant. It is built
// once per call (see package lower) and is read-only for the remainder of
// that call.
package typeir

import "github.com/bkchr/merkelized-metadata/binary"

// InlineKind enumerates the primitives (and their compact forms) a TypeRef
// can carry inline, plus the synthetic Void primitive used for composites
// and tuples whose transitive-primitive closure is empty.
type InlineKind int

const (
	InlineVoid InlineKind = iota
	InlineBool
	InlineChar
	InlineStr
	InlineU8
	InlineU16
	InlineU32
	InlineU64
	InlineU128
	InlineU256
	InlineI8
	InlineI16
	InlineI32
	InlineI64
	InlineI128
	InlineI256
	InlineCompactU8
	InlineCompactU16
	InlineCompactU32
	InlineCompactU64
	InlineCompactU128
)

// FixedWidth returns the number of bytes a fixed-width (non-compact,
// non-str) inline primitive occupies on the wire, or -1 if k does not name
// one (str, void and the compact forms have no fixed width).
func (k InlineKind) FixedWidth() int {
	switch k {
	case InlineBool, InlineU8, InlineI8:
		return 1
	case InlineU16, InlineI16:
		return 2
	case InlineChar, InlineU32, InlineI32:
		return 4
	case InlineU64, InlineI64:
		return 8
	case InlineU128, InlineI128:
		return 16
	case InlineU256, InlineI256:
		return 32
	default:
		return -1
	}
}

// TypeRef is either an inlined primitive or a by-id reference into the
// same Graph. It never carries identity of its own: inlined primitives are
// never Merkle leaves.
type TypeRef struct {
	Inline     bool
	InlineKind InlineKind
	ID         uint32
}

// RefInline builds an inlined TypeRef.
func RefInline(k InlineKind) TypeRef { return TypeRef{Inline: true, InlineKind: k} }

// RefID builds a by-id TypeRef.
func RefID(id uint32) TypeRef { return TypeRef{ID: id} }

func (r TypeRef) encodeInto(buf []byte) []byte {
	if r.Inline {
		buf = append(buf, 0, byte(r.InlineKind))
		return buf
	}
	buf = append(buf, 1)
	return binary.AppendCompactUint64(buf, uint64(r.ID))
}

// Kind discriminates the shape of a resolved Entry.
type Kind int

const (
	KindComposite Kind = iota
	KindVariant
	KindSequence
	KindArray
	KindTuple
	KindBitSequence
)

// Field is one member of a Composite, or of an enumeration Variant.
type Field struct {
	Name     *string
	Ref      TypeRef
	TypeName *string
}

func (f Field) encodeInto(buf []byte) []byte {
	if f.Name != nil {
		buf = append(buf, 1)
		buf = binary.AppendCompactBytes(buf, []byte(*f.Name))
	} else {
		buf = append(buf, 0)
	}
	// TypeName is documentary only; it never changes decode behaviour, so it
	// is intentionally excluded from the canonical encoding.
	return f.Ref.encodeInto(buf)
}

// Variant is the single enumeration case an Entry of KindVariant carries.
type Variant struct {
	Name   string
	Fields []Field
	Index  uint8
}

// BitSequenceDef is the normalized bit-sequence layout: a storage width in
// {1,2,4,8} bytes and a bit order.
type BitSequenceDef struct {
	NumBytes int
	LSBFirst bool
}

// Entry is one resolved IR record. Exactly one enumeration entry exists
// per declared variant, all sharing UniqueID but each carrying a distinct
// Variant — this is what lets a proof disclose only the variants a decode
// actually took.
type Entry struct {
	UniqueID uint32
	Path     []string
	Kind     Kind

	Composite []Field // KindComposite
	Variant   Variant // KindVariant

	SequenceElem TypeRef // KindSequence

	ArrayLen  uint32  // KindArray
	ArrayElem TypeRef // KindArray

	Tuple []TypeRef // KindTuple

	BitSeq BitSequenceDef // KindBitSequence
}

// Encode returns the canonical, self-describing serialization of the
// entry: this is what gets hashed into a Merkle leaf, and what a proof
// discloses so a verifier can reconstruct the entry without the full
// registry.
func (e *Entry) Encode() []byte {
	var buf []byte
	buf = binary.AppendCompactUint64(buf, uint64(e.UniqueID))
	buf = binary.AppendCompactUint64(buf, uint64(len(e.Path)))
	for _, seg := range e.Path {
		buf = binary.AppendCompactBytes(buf, []byte(seg))
	}
	buf = append(buf, byte(e.Kind))

	switch e.Kind {
	case KindComposite:
		buf = binary.AppendCompactUint64(buf, uint64(len(e.Composite)))
		for _, f := range e.Composite {
			buf = f.encodeInto(buf)
		}
	case KindVariant:
		buf = append(buf, e.Variant.Index)
		buf = binary.AppendCompactBytes(buf, []byte(e.Variant.Name))
		buf = binary.AppendCompactUint64(buf, uint64(len(e.Variant.Fields)))
		for _, f := range e.Variant.Fields {
			buf = f.encodeInto(buf)
		}
	case KindSequence:
		buf = e.SequenceElem.encodeInto(buf)
	case KindArray:
		buf = binary.AppendCompactUint64(buf, uint64(e.ArrayLen))
		buf = e.ArrayElem.encodeInto(buf)
	case KindTuple:
		buf = binary.AppendCompactUint64(buf, uint64(len(e.Tuple)))
		for _, r := range e.Tuple {
			buf = r.encodeInto(buf)
		}
	case KindBitSequence:
		buf = append(buf, byte(e.BitSeq.NumBytes))
		if e.BitSeq.LSBFirst {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	return buf
}

// Graph is the complete, immutable IR: a dense, leaf-ordered entry vector
// plus an index back to entries by their source unique_id (a slice of
// length > 1 only for enumeration groups).
type Graph struct {
	Entries []*Entry
	byID    map[uint32][]*Entry
}

// NewGraph builds a Graph's lookup index over an already leaf-ordered
// entry slice (ascending unique_id, then ascending variant index within a
// shared id — see package lower).
func NewGraph(entries []*Entry) *Graph {
	byID := make(map[uint32][]*Entry, len(entries))
	for _, e := range entries {
		byID[e.UniqueID] = append(byID[e.UniqueID], e)
	}
	return &Graph{Entries: entries, byID: byID}
}

// ByID returns every entry sharing unique_id id, in ascending variant-index
// order for an enumeration, or a single-element slice for anything else.
// It returns nil if id is not present.
func (g *Graph) ByID(id uint32) []*Entry {
	return g.byID[id]
}
