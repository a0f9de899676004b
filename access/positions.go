package access

import "github.com/bkchr/merkelized-metadata/typeir"

// LeafPositions translates a set of Records into the sorted leaf
// positions a merkle.Proof must disclose: one position per non-variant
// type id touched, and one position per distinct variant touched of an
// enumeration. graph.Entries is already leaf-ordered, so a single pass
// over it produces positions in ascending order.
func LeafPositions(graph *typeir.Graph, records map[uint32]*Record) []int {
	var positions []int
	for i, e := range graph.Entries {
		r, ok := records[e.UniqueID]
		if !ok {
			continue
		}
		if e.Kind != typeir.KindVariant || r.All {
			positions = append(positions, i)
			continue
		}
		if r.Variants[e.Variant.Index] {
			positions = append(positions, i)
		}
	}
	return positions
}
