package typeir

import "testing"

func strp(s string) *string { return &s }

func TestEntryEncodeDeterministic(t *testing.T) {
	e := &Entry{
		UniqueID: 5,
		Path:     []string{"pallet_balances", "Call"},
		Kind:     KindComposite,
		Composite: []Field{
			{Name: strp("dest"), Ref: RefInline(InlineU32)},
			{Name: strp("value"), Ref: RefInline(InlineCompactU128)},
		},
	}
	a := e.Encode()
	b := e.Encode()
	if string(a) != string(b) {
		t.Fatal("Encode() is not deterministic")
	}
}

func TestEntryEncodeDiffersByUniqueID(t *testing.T) {
	base := &Entry{UniqueID: 1, Kind: KindTuple, Tuple: []TypeRef{RefInline(InlineBool)}}
	other := &Entry{UniqueID: 2, Kind: KindTuple, Tuple: []TypeRef{RefInline(InlineBool)}}
	if string(base.Encode()) == string(other.Encode()) {
		t.Fatal("entries with different unique_id encoded identically")
	}
}

func TestEntryEncodeIgnoresTypeName(t *testing.T) {
	name := "dest"
	typeNameA := "AccountId"
	typeNameB := "MultiAddress"
	a := &Entry{UniqueID: 1, Kind: KindComposite, Composite: []Field{
		{Name: &name, Ref: RefInline(InlineU32), TypeName: &typeNameA},
	}}
	b := &Entry{UniqueID: 1, Kind: KindComposite, Composite: []Field{
		{Name: &name, Ref: RefInline(InlineU32), TypeName: &typeNameB},
	}}
	if string(a.Encode()) != string(b.Encode()) {
		t.Fatal("TypeName should not affect the canonical encoding")
	}
}

func TestGraphByIDGroupsVariants(t *testing.T) {
	entries := []*Entry{
		{UniqueID: 3, Kind: KindVariant, Variant: Variant{Name: "None", Index: 0}},
		{UniqueID: 3, Kind: KindVariant, Variant: Variant{Name: "Some", Index: 1}},
		{UniqueID: 4, Kind: KindComposite},
	}
	g := NewGraph(entries)

	group := g.ByID(3)
	if len(group) != 2 {
		t.Fatalf("ByID(3) len = %d, want 2", len(group))
	}
	if group[0].Variant.Index != 0 || group[1].Variant.Index != 1 {
		t.Fatalf("ByID(3) variant order = %d,%d, want 0,1", group[0].Variant.Index, group[1].Variant.Index)
	}

	single := g.ByID(4)
	if len(single) != 1 {
		t.Fatalf("ByID(4) len = %d, want 1", len(single))
	}

	if g.ByID(999) != nil {
		t.Fatal("ByID of unknown id should be nil")
	}
}

func TestFixedWidth(t *testing.T) {
	cases := map[InlineKind]int{
		InlineBool: 1, InlineU8: 1, InlineI8: 1,
		InlineU16: 2, InlineI16: 2,
		InlineChar: 4, InlineU32: 4, InlineI32: 4,
		InlineU64: 8, InlineI64: 8,
		InlineU128: 16, InlineI128: 16,
		InlineU256: 32, InlineI256: 32,
	}
	for k, want := range cases {
		if got := k.FixedWidth(); got != want {
			t.Fatalf("%v.FixedWidth() = %d, want %d", k, got, want)
		}
	}
	for _, k := range []InlineKind{InlineVoid, InlineStr, InlineCompactU8} {
		if got := k.FixedWidth(); got != -1 {
			t.Fatalf("%v.FixedWidth() = %d, want -1", k, got)
		}
	}
}
