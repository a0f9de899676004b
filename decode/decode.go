package decode

import (
	"unicode/utf8"

	"github.com/bkchr/merkelized-metadata/binary"
	"github.com/bkchr/merkelized-metadata/errkind"
	"github.com/bkchr/merkelized-metadata/typeir"
)

// Decode reads one value of shape ref from c, dispatching through graph
// for by-id references, and reports every sub-value to v in left-to-right
// wire order. It never reads past what ref's shape actually describes.
func Decode(c *binary.Cursor, ref typeir.TypeRef, graph *typeir.Graph, v Visitor) error {
	if ref.Inline {
		return decodeInline(c, ref.InlineKind, v)
	}
	return decodeByID(c, ref.ID, graph, v)
}

func decodeInline(c *binary.Cursor, kind typeir.InlineKind, v Visitor) error {
	if kind == typeir.InlineVoid {
		return nil
	}
	if kind == typeir.InlineStr {
		n, err := c.ReadCompactUint64()
		if err != nil {
			return errkind.WrapBinary(err)
		}
		raw, err := c.ReadBytes(int(n))
		if err != nil {
			return errkind.WrapBinary(err)
		}
		if !utf8.Valid(raw) {
			return errkind.New(errkind.BadInput, "str field is not valid utf8")
		}
		v.OnPrimitive(Value{Str: string(raw)})
		return nil
	}
	if isCompactKind(kind) {
		big, err := c.ReadCompactBigUint()
		if err != nil {
			return errkind.WrapBinary(err)
		}
		v.OnPrimitive(Value{Compact: big})
		return nil
	}

	w := kind.FixedWidth()
	if kind == typeir.InlineBool {
		b, err := c.ReadByte()
		if err != nil {
			return errkind.WrapBinary(err)
		}
		v.OnPrimitive(Value{Bool: b != 0})
		return nil
	}
	raw, err := c.ReadBytes(w)
	if err != nil {
		return errkind.WrapBinary(err)
	}
	if w <= 8 {
		u, err := binary.NewCursor(raw).ReadUintLE(w)
		if err != nil {
			return errkind.WrapBinary(err)
		}
		v.OnPrimitive(Value{U64: u})
		return nil
	}
	v.OnPrimitive(Value{Big: leWordToUint256(raw)})
	return nil
}

func isCompactKind(kind typeir.InlineKind) bool {
	switch kind {
	case typeir.InlineCompactU8, typeir.InlineCompactU16, typeir.InlineCompactU32,
		typeir.InlineCompactU64, typeir.InlineCompactU128:
		return true
	default:
		return false
	}
}

func decodeByID(c *binary.Cursor, id uint32, graph *typeir.Graph, v Visitor) error {
	entries := graph.ByID(id)
	if len(entries) == 0 {
		return errkind.New(errkind.UnresolvedReference, "decode touched a type id absent from the graph").WithTypeID(id)
	}

	if entries[0].Kind == typeir.KindVariant {
		return decodeVariant(c, id, entries, graph, v)
	}

	v.OnTypeID(id)
	e := entries[0]
	switch e.Kind {
	case typeir.KindComposite:
		for _, f := range e.Composite {
			if err := Decode(c, f.Ref, graph, v); err != nil {
				return err
			}
		}
	case typeir.KindSequence:
		n, err := c.ReadCompactUint64()
		if err != nil {
			return errkind.WrapBinary(err)
		}
		for i := uint64(0); i < n; i++ {
			if err := Decode(c, e.SequenceElem, graph, v); err != nil {
				return err
			}
		}
	case typeir.KindArray:
		for i := uint32(0); i < e.ArrayLen; i++ {
			if err := Decode(c, e.ArrayElem, graph, v); err != nil {
				return err
			}
		}
	case typeir.KindTuple:
		for _, r := range e.Tuple {
			if err := Decode(c, r, graph, v); err != nil {
				return err
			}
		}
	case typeir.KindBitSequence:
		nBits, err := c.ReadCompactUint64()
		if err != nil {
			return errkind.WrapBinary(err)
		}
		nBytes := (nBits + 7) / 8
		if _, err := c.ReadBytes(int(nBytes)); err != nil {
			return errkind.WrapBinary(err)
		}
	}
	return nil
}

func decodeVariant(c *binary.Cursor, id uint32, entries []*typeir.Entry, graph *typeir.Graph, v Visitor) error {
	idx, err := c.ReadByte()
	if err != nil {
		return errkind.WrapBinary(err)
	}
	for _, e := range entries {
		if e.Variant.Index != idx {
			continue
		}
		v.OnVariant(id, idx)
		for _, f := range e.Variant.Fields {
			if err := Decode(c, f.Ref, graph, v); err != nil {
				return err
			}
		}
		return nil
	}
	return errkind.New(errkind.UnknownVariant, "enumeration variant index has no matching entry").WithTypeID(id)
}
