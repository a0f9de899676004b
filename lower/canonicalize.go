package lower

import (
	"github.com/bkchr/merkelized-metadata/errkind"
	"github.com/bkchr/merkelized-metadata/registry"
	"github.com/bkchr/merkelized-metadata/typeir"
)

// resolveRef produces the TypeRef a use site (a field, array element,
// tuple member, ...) should carry for a reference to source type id.
// Primitives and compacts are inlined; void composites and tuples are
// inlined as InlineVoid; everything else resolves to the referenced
// entry's final unique_id.
func (l *lowerer) resolveRef(id registry.TypeID) (typeir.TypeRef, error) {
	t, ok := l.reg.Types[id]
	if !ok {
		return typeir.TypeRef{}, errkind.New(errkind.UnresolvedReference, "reference names a type id absent from the registry").WithTypeID(uint32(id))
	}

	switch t.TypeDef.Kind {
	case registry.DefPrimitive:
		return typeir.RefInline(primitiveInline(t.TypeDef.Primitive)), nil

	case registry.DefCompact:
		inner, ok := l.reg.Types[t.TypeDef.CompactInner]
		if !ok {
			return typeir.TypeRef{}, errkind.New(errkind.UnresolvedReference, "compact names a missing inner type id").WithTypeID(uint32(t.TypeDef.CompactInner))
		}
		if inner.TypeDef.Kind != registry.DefPrimitive ||
			!inner.TypeDef.Primitive.IsUnsignedInteger() ||
			inner.TypeDef.Primitive == registry.U256 {
			return typeir.TypeRef{}, errkind.New(errkind.BadCompactInner, "compact inner type is not an unsigned integer primitive narrower than u256").WithTypeID(uint32(id))
		}
		return typeir.RefInline(compactInline(inner.TypeDef.Primitive)), nil

	case registry.DefComposite, registry.DefTuple:
		if !l.hasPrimitiveDescendant(id) {
			return typeir.RefInline(typeir.InlineVoid), nil
		}
		return typeir.RefID(l.finalID[id]), nil

	default: // DefVariant, DefSequence, DefArray, DefBitSequence are always kept
		return typeir.RefID(l.finalID[id]), nil
	}
}

// hasPrimitiveDescendant reports whether id's transitive closure of
// member types reaches at least one primitive. A Composite or Tuple for
// which this is false encodes no information on the wire (every member is
// itself void, all the way down) and is collapsed to InlineVoid rather
// than kept as an empty IR entry.
//
// Each call gets its own visited set, mirroring the reserve-then-fill
// traversal this is adapted from: cycles terminate the walk for that
// branch without poisoning a later, unrelated call.
func (l *lowerer) hasPrimitiveDescendant(id registry.TypeID) bool {
	if v, ok := l.primDescendant[id]; ok {
		return v
	}
	v := l.visitForPrimitive(id, make(map[registry.TypeID]bool))
	l.primDescendant[id] = v
	return v
}

func (l *lowerer) visitForPrimitive(id registry.TypeID, visited map[registry.TypeID]bool) bool {
	if visited[id] {
		return false
	}
	visited[id] = true

	t, ok := l.reg.Types[id]
	if !ok {
		return false
	}

	switch t.TypeDef.Kind {
	case registry.DefPrimitive:
		return true
	case registry.DefCompact:
		return l.visitForPrimitive(t.TypeDef.CompactInner, visited)
	case registry.DefComposite:
		for _, f := range t.TypeDef.Composite {
			if l.visitForPrimitive(f.Type, visited) {
				return true
			}
		}
		return false
	case registry.DefVariant:
		for _, variant := range t.TypeDef.Variants {
			for _, f := range variant.Fields {
				if l.visitForPrimitive(f.Type, visited) {
					return true
				}
			}
		}
		return false
	case registry.DefSequence:
		return l.visitForPrimitive(t.TypeDef.SequenceElem, visited)
	case registry.DefArray:
		return l.visitForPrimitive(t.TypeDef.ArrayElem, visited)
	case registry.DefTuple:
		for _, elem := range t.TypeDef.Tuple {
			if l.visitForPrimitive(elem, visited) {
				return true
			}
		}
		return false
	case registry.DefBitSequence:
		if l.visitForPrimitive(t.TypeDef.BitStoreType, visited) {
			return true
		}
		return l.visitForPrimitive(t.TypeDef.BitOrderType, visited)
	default:
		return false
	}
}

// resolveBitSequence normalizes a DefBitSequence's storage type to a byte
// width and its order type to a direction. The storage type must reduce
// directly to an unsigned integer primitive of 1, 2, 4 or 8 bytes; the
// order type is recognised by the last segment of its path, "Lsb0" or
// "Msb0" (the bitvec convention every pack example that touches bit
// layout follows).
func (l *lowerer) resolveBitSequence(def registry.TypeDef) (typeir.BitSequenceDef, error) {
	store, ok := l.reg.Types[def.BitStoreType]
	if !ok || store.TypeDef.Kind != registry.DefPrimitive {
		return typeir.BitSequenceDef{}, errkind.New(errkind.BadBitStoreWidth, "bit-sequence storage type is not a primitive").WithTypeID(uint32(def.BitStoreType))
	}
	var numBytes int
	switch store.TypeDef.Primitive {
	case registry.U8:
		numBytes = 1
	case registry.U16:
		numBytes = 2
	case registry.U32:
		numBytes = 4
	case registry.U64:
		numBytes = 8
	default:
		return typeir.BitSequenceDef{}, errkind.New(errkind.BadBitStoreWidth, "bit-sequence storage type must be u8, u16, u32 or u64").WithTypeID(uint32(def.BitStoreType))
	}

	order, ok := l.reg.Types[def.BitOrderType]
	if !ok || len(order.Path) == 0 {
		return typeir.BitSequenceDef{}, errkind.New(errkind.BadBitStoreWidth, "bit-sequence order type has no recognisable path").WithTypeID(uint32(def.BitOrderType))
	}
	switch order.Path[len(order.Path)-1] {
	case "Lsb0":
		return typeir.BitSequenceDef{NumBytes: numBytes, LSBFirst: true}, nil
	case "Msb0":
		return typeir.BitSequenceDef{NumBytes: numBytes, LSBFirst: false}, nil
	default:
		return typeir.BitSequenceDef{}, errkind.New(errkind.BadBitStoreWidth, "bit-sequence order type path is neither Lsb0 nor Msb0").WithTypeID(uint32(def.BitOrderType))
	}
}

func primitiveInline(p registry.PrimitiveKind) typeir.InlineKind {
	switch p {
	case registry.Bool:
		return typeir.InlineBool
	case registry.Char:
		return typeir.InlineChar
	case registry.Str:
		return typeir.InlineStr
	case registry.U8:
		return typeir.InlineU8
	case registry.U16:
		return typeir.InlineU16
	case registry.U32:
		return typeir.InlineU32
	case registry.U64:
		return typeir.InlineU64
	case registry.U128:
		return typeir.InlineU128
	case registry.U256:
		return typeir.InlineU256
	case registry.I8:
		return typeir.InlineI8
	case registry.I16:
		return typeir.InlineI16
	case registry.I32:
		return typeir.InlineI32
	case registry.I64:
		return typeir.InlineI64
	case registry.I128:
		return typeir.InlineI128
	default: // registry.I256
		return typeir.InlineI256
	}
}

func compactInline(p registry.PrimitiveKind) typeir.InlineKind {
	switch p {
	case registry.U8:
		return typeir.InlineCompactU8
	case registry.U16:
		return typeir.InlineCompactU16
	case registry.U32:
		return typeir.InlineCompactU32
	case registry.U64:
		return typeir.InlineCompactU64
	default: // registry.U128; U256 is rejected before this is reached
		return typeir.InlineCompactU128
	}
}
