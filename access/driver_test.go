package access

import (
	"testing"

	"github.com/bkchr/merkelized-metadata/lower"
	"github.com/bkchr/merkelized-metadata/merkle"
	"github.com/bkchr/merkelized-metadata/registry"
)

func buildTestRegistry() *registry.Registry {
	prim := func(id registry.TypeID, p registry.PrimitiveKind) registry.Type {
		return registry.Type{ID: id, TypeDef: registry.TypeDef{Kind: registry.DefPrimitive, Primitive: p}}
	}
	return &registry.Registry{
		Types: map[registry.TypeID]registry.Type{
			10: prim(10, registry.U8), // address
			11: {ID: 11, TypeDef: registry.TypeDef{Kind: registry.DefVariant, Variants: []registry.Variant{
				{Name: "Noop", Index: 0},
				{Name: "Transfer", Index: 1, Fields: []registry.Field{{Type: 12}}},
			}}}, // call
			12: prim(12, registry.U64),
			13: {ID: 13, TypeDef: registry.TypeDef{Kind: registry.DefComposite, Composite: []registry.Field{
				{Type: 14}, {Type: 14},
			}}}, // signature
			14: prim(14, registry.U8),
			15: prim(15, registry.U32), // CheckNonce in extrinsic
			16: prim(16, registry.U8),  // CheckNonce in signed data
			17: {ID: 17, TypeDef: registry.TypeDef{Kind: registry.DefComposite}}, // extra, void
		},
		ExtrinsicMetadata: registry.ExtrinsicMetadata{
			Version:       4,
			AddressType:   10,
			CallType:      11,
			SignatureType: 13,
			ExtraType:     17,
			SignedExtensions: []registry.SignedExtensionMetadata{
				{Identifier: "CheckNonce", IncludedInExtrinsic: 15, IncludedInSignedData: 16},
			},
		},
	}
}

func TestDecodeExtrinsicAndCollectEndToEnd(t *testing.T) {
	reg := buildTestRegistry()
	graph, err := lower.Lower(reg)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	schema, err := lower.LowerExtrinsicSchema(reg)
	if err != nil {
		t.Fatalf("LowerExtrinsicSchema() error = %v", err)
	}

	extrinsic := []byte{
		0x44,                   // compact length prefix = 17
		0x84,                   // signed, version 4
		0x2a,                   // address: u8
		0x11, 0x22,             // signature: composite of two u8
		0x07, 0x00, 0x00, 0x00, // CheckNonce in extrinsic: u32
		0x01,                   // call variant index: Transfer
		0x64, 0, 0, 0, 0, 0, 0, 0, // u64 value
	}
	additionalSigned := []byte{0x09} // CheckNonce in signed data: u8

	collector, err := DecodeExtrinsicAndCollect(graph, schema, extrinsic, additionalSigned)
	if err != nil {
		t.Fatalf("DecodeExtrinsicAndCollect() error = %v", err)
	}

	records := collector.Records()
	sigRecord, ok := records[1]
	if !ok || !sigRecord.All {
		t.Fatalf("records[1] (signature) = %+v, want All=true", sigRecord)
	}
	callRecord, ok := records[0]
	if !ok || callRecord.All {
		t.Fatalf("records[0] (call) = %+v, want All=false", callRecord)
	}
	if !callRecord.Variants[1] || len(callRecord.Variants) != 1 {
		t.Fatalf("records[0].Variants = %v, want {1}", callRecord.Variants)
	}

	positions := LeafPositions(graph, records)
	if len(positions) != 2 || positions[0] != 1 || positions[1] != 2 {
		t.Fatalf("LeafPositions() = %v, want [1 2]", positions)
	}

	leaves := make([]merkle.Hash, len(graph.Entries))
	encoded := make([][]byte, len(graph.Entries))
	for i, e := range graph.Entries {
		encoded[i] = e.Encode()
		leaves[i] = merkle.Sum256(encoded[i])
	}
	root := merkle.RootOf(leaves)

	proof, err := merkle.BuildProof(leaves, encoded, positions)
	if err != nil {
		t.Fatalf("BuildProof() error = %v", err)
	}
	if !merkle.Verify(proof, root) {
		t.Fatal("Verify() = false, want true")
	}
	if len(proof.Leaves) != 2 {
		t.Fatalf("len(proof.Leaves) = %d, want 2 (Noop must stay undisclosed)", len(proof.Leaves))
	}
}

func TestDecodeExtrinsicAndCollectNilAdditionalSignedSkipsSignedData(t *testing.T) {
	reg := buildTestRegistry()
	graph, err := lower.Lower(reg)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	schema, err := lower.LowerExtrinsicSchema(reg)
	if err != nil {
		t.Fatalf("LowerExtrinsicSchema() error = %v", err)
	}

	extrinsic := []byte{
		0x44,                   // compact length prefix = 17
		0x84,                   // signed, version 4
		0x2a,                   // address: u8
		0x11, 0x22,             // signature: composite of two u8
		0x07, 0x00, 0x00, 0x00, // CheckNonce in extrinsic: u32
		0x01,                   // call variant index: Transfer
		0x64, 0, 0, 0, 0, 0, 0, 0, // u64 value
	}

	// additionalSignedBytes is nil: the caller did not supply it, so the
	// driver must not attempt to decode CheckNonce's IncludedInSignedData
	// (a u8) against an empty cursor, which would otherwise fail with
	// Truncated.
	if _, err := DecodeExtrinsicAndCollect(graph, schema, extrinsic, nil); err != nil {
		t.Fatalf("DecodeExtrinsicAndCollect() error = %v, want nil", err)
	}
}

func TestDecodeExtrinsicWrongVersionRejected(t *testing.T) {
	reg := buildTestRegistry()
	graph, err := lower.Lower(reg)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	schema, err := lower.LowerExtrinsicSchema(reg)
	if err != nil {
		t.Fatalf("LowerExtrinsicSchema() error = %v", err)
	}
	extrinsic := []byte{0x04, 0x83} // signed, version 3
	if _, err := DecodeExtrinsicAndCollect(graph, schema, extrinsic, nil); err == nil {
		t.Fatal("error = nil, want UnsupportedExtrinsicVersion")
	}
}
