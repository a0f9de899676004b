// Package lower canonicalizes a raw registry.Registry into a typeir.Graph:
// it inlines primitives and compacts, collapses void composites and
// tuples, expands enumerations into one IR entry per variant, and
// normalizes bit-sequence layouts. This is the hardest component in the
// pipeline because the result has to be stable (two lowerings of the same
// registry must be byte-identical) and tolerant of cyclic type graphs.
package lower

import (
	"sort"

	"github.com/bkchr/merkelized-metadata/errkind"
	"github.com/bkchr/merkelized-metadata/log"
	"github.com/bkchr/merkelized-metadata/registry"
	"github.com/bkchr/merkelized-metadata/typeir"
)

// lowerer holds the per-call working state. It is built and discarded
// inside Lower; nothing about it survives a call.
type lowerer struct {
	reg *registry.Registry

	// primDescendant memoizes hasPrimitiveDescendant per source type id.
	primDescendant map[registry.TypeID]bool

	// finalID maps a kept source type id to its dense, leaf-ordered
	// unique_id in the resulting Graph.
	finalID map[registry.TypeID]uint32

	// kept holds every kept source type id in final leaf order.
	kept []registry.TypeID
}

// Lower canonicalizes reg into a typeir.Graph. It is deterministic: the
// same registry always lowers to byte-identical entries in the same
// order.
func Lower(reg *registry.Registry) (*typeir.Graph, error) {
	l := newLowerer(reg)

	entries := make([]*typeir.Entry, 0, len(l.kept))
	for _, id := range l.kept {
		built, err := l.buildEntries(id)
		if err != nil {
			return nil, err
		}
		entries = append(entries, built...)
	}

	return typeir.NewGraph(entries), nil
}

// LowerExtrinsicSchema resolves reg's extrinsic envelope metadata against
// the IR graph that Lower(reg) would produce. It recomputes the same
// kept-type-id -> unique_id mapping Lower does (a pure function of reg),
// so the two are always consistent with each other for the same registry.
func LowerExtrinsicSchema(reg *registry.Registry) (*typeir.ExtrinsicSchema, error) {
	l := newLowerer(reg)
	return l.buildExtrinsicSchema()
}

func newLowerer(reg *registry.Registry) *lowerer {
	l := &lowerer{
		reg:            reg,
		primDescendant: make(map[registry.TypeID]bool),
		finalID:        make(map[registry.TypeID]uint32),
	}

	kept := make([]registry.TypeID, 0, len(reg.Types))
	for id, t := range reg.Types {
		if l.isKept(t) {
			kept = append(kept, id)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i] < kept[j] })
	for i, id := range kept {
		l.finalID[id] = uint32(i)
	}
	l.kept = kept

	log.Default().Module("lower").Debug("canonicalized type registry",
		"source_types", len(reg.Types), "kept_entries", len(kept))

	return l
}

func (l *lowerer) buildExtrinsicSchema() (*typeir.ExtrinsicSchema, error) {
	em := l.reg.ExtrinsicMetadata

	address, err := l.resolveRef(em.AddressType)
	if err != nil {
		return nil, err
	}
	call, err := l.resolveRef(em.CallType)
	if err != nil {
		return nil, err
	}
	signature, err := l.resolveRef(em.SignatureType)
	if err != nil {
		return nil, err
	}
	extra, err := l.resolveRef(em.ExtraType)
	if err != nil {
		return nil, err
	}

	exts := make([]typeir.SignedExtension, len(em.SignedExtensions))
	for i, se := range em.SignedExtensions {
		inExtrinsic, err := l.resolveRef(se.IncludedInExtrinsic)
		if err != nil {
			return nil, err
		}
		inSigned, err := l.resolveRef(se.IncludedInSignedData)
		if err != nil {
			return nil, err
		}
		exts[i] = typeir.SignedExtension{
			Identifier:           se.Identifier,
			IncludedInExtrinsic:  inExtrinsic,
			IncludedInSignedData: inSigned,
		}
	}

	return &typeir.ExtrinsicSchema{
		Version:          em.Version,
		Address:          address,
		Call:             call,
		Signature:        signature,
		Extra:            extra,
		SignedExtensions: exts,
	}, nil
}

// isKept reports whether t survives into the IR as its own entry (as
// opposed to being inlined at every use site).
func (l *lowerer) isKept(t registry.Type) bool {
	switch t.TypeDef.Kind {
	case registry.DefPrimitive, registry.DefCompact:
		return false
	case registry.DefComposite, registry.DefTuple:
		return l.hasPrimitiveDescendant(t.ID)
	default:
		return true
	}
}

// buildEntries produces the one-or-more typeir.Entry records for a kept
// source type, in final leaf order (a single entry for everything except
// enumerations, which produce one per declared variant, sorted ascending
// by index).
func (l *lowerer) buildEntries(id registry.TypeID) ([]*typeir.Entry, error) {
	t, ok := l.reg.Types[id]
	if !ok {
		return nil, errkind.New(errkind.UnresolvedReference, "kept type id missing from registry").WithTypeID(uint32(id))
	}
	uid := l.finalID[id]

	switch t.TypeDef.Kind {
	case registry.DefComposite:
		fields, err := l.resolveFields(t.TypeDef.Composite)
		if err != nil {
			return nil, err
		}
		return []*typeir.Entry{{
			UniqueID:  uid,
			Path:      t.Path,
			Kind:      typeir.KindComposite,
			Composite: fields,
		}}, nil

	case registry.DefTuple:
		refs, err := l.resolveRefs(t.TypeDef.Tuple)
		if err != nil {
			return nil, err
		}
		return []*typeir.Entry{{
			UniqueID: uid,
			Path:     t.Path,
			Kind:     typeir.KindTuple,
			Tuple:    refs,
		}}, nil

	case registry.DefSequence:
		elem, err := l.resolveRef(t.TypeDef.SequenceElem)
		if err != nil {
			return nil, err
		}
		return []*typeir.Entry{{
			UniqueID:     uid,
			Path:         t.Path,
			Kind:         typeir.KindSequence,
			SequenceElem: elem,
		}}, nil

	case registry.DefArray:
		elem, err := l.resolveRef(t.TypeDef.ArrayElem)
		if err != nil {
			return nil, err
		}
		return []*typeir.Entry{{
			UniqueID:  uid,
			Path:      t.Path,
			Kind:      typeir.KindArray,
			ArrayLen:  t.TypeDef.ArrayLen,
			ArrayElem: elem,
		}}, nil

	case registry.DefBitSequence:
		def, err := l.resolveBitSequence(t.TypeDef)
		if err != nil {
			return nil, err
		}
		return []*typeir.Entry{{
			UniqueID: uid,
			Path:     t.Path,
			Kind:     typeir.KindBitSequence,
			BitSeq:   def,
		}}, nil

	case registry.DefVariant:
		return l.buildVariantEntries(uid, t)

	default:
		return nil, errkind.New(errkind.Internal, "kept type has unexpected def kind").WithTypeID(uint32(id))
	}
}

func (l *lowerer) buildVariantEntries(uid uint32, t registry.Type) ([]*typeir.Entry, error) {
	if len(t.TypeDef.Variants) == 0 {
		return nil, errkind.New(errkind.Internal, "enumeration has no variants").WithTypeID(uint32(t.ID))
	}
	log.Default().Module("lower").Debug("expanding enumeration into per-variant leaves",
		"unique_id", uid, "variants", len(t.TypeDef.Variants))

	variants := make([]registry.Variant, len(t.TypeDef.Variants))
	copy(variants, t.TypeDef.Variants)
	sort.Slice(variants, func(i, j int) bool { return variants[i].Index < variants[j].Index })

	entries := make([]*typeir.Entry, 0, len(variants))
	seen := make(map[uint8]bool, len(variants))
	for _, v := range variants {
		if seen[v.Index] {
			return nil, errkind.New(errkind.Internal, "duplicate variant index in enumeration").WithTypeID(uint32(t.ID))
		}
		seen[v.Index] = true

		fields, err := l.resolveFields(v.Fields)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &typeir.Entry{
			UniqueID: uid,
			Path:     t.Path,
			Kind:     typeir.KindVariant,
			Variant: typeir.Variant{
				Name:   v.Name,
				Index:  v.Index,
				Fields: fields,
			},
		})
	}
	return entries, nil
}

func (l *lowerer) resolveFields(fields []registry.Field) ([]typeir.Field, error) {
	out := make([]typeir.Field, len(fields))
	for i, f := range fields {
		ref, err := l.resolveRef(f.Type)
		if err != nil {
			return nil, err
		}
		out[i] = typeir.Field{Name: f.Name, Ref: ref, TypeName: f.TypeName}
	}
	return out, nil
}

func (l *lowerer) resolveRefs(ids []registry.TypeID) ([]typeir.TypeRef, error) {
	out := make([]typeir.TypeRef, len(ids))
	for i, id := range ids {
		ref, err := l.resolveRef(id)
		if err != nil {
			return nil, err
		}
		out[i] = ref
	}
	return out, nil
}
