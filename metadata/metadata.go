// Package metadata is the public entry point: given a runtime's type
// registry, it produces the metadata digest a light client pins once and
// the per-extrinsic Merkle proof that lets it verify a decode against
// that digest without holding the full type registry.
package metadata

import (
	"github.com/bkchr/merkelized-metadata/access"
	"github.com/bkchr/merkelized-metadata/errkind"
	"github.com/bkchr/merkelized-metadata/lower"
	"github.com/bkchr/merkelized-metadata/merkle"
	"github.com/bkchr/merkelized-metadata/registry"
	"github.com/bkchr/merkelized-metadata/typeir"
)

// ChainInfo is the chain-identifying data folded into a metadata digest
// alongside the type registry's Merkle root.
type ChainInfo = merkle.ChainInfo

// Prepare lowers reg into its canonical IR graph. GenerateMetadataDigest
// and GenerateProofForExtrinsic do not accept a prepared graph; each
// lowers reg itself on every call.
func Prepare(reg *registry.Registry) (*typeir.Graph, error) {
	return lower.Lower(reg)
}

// GenerateMetadataDigest produces the digest a light client pins: the
// Merkle root of reg's canonicalized type registry, the hash of its
// extrinsic envelope shape, and chainInfo, all folded into one hash.
func GenerateMetadataDigest(reg *registry.Registry, chainInfo ChainInfo) (merkle.Hash, error) {
	graph, err := lower.Lower(reg)
	if err != nil {
		return merkle.Hash{}, err
	}
	schema, err := lower.LowerExtrinsicSchema(reg)
	if err != nil {
		return merkle.Hash{}, err
	}

	typesRoot := merkle.RootOf(leafHashes(graph))
	extrinsicHash := merkle.Sum256(schema.Encode())

	digest := merkle.Digest{
		TypesTreeRoot:         typesRoot,
		ExtrinsicMetadataHash: extrinsicHash,
		ChainInfo:             chainInfo,
	}
	return digest.Hash(), nil
}

// GenerateProofForExtrinsic decodes extrinsicBytes (and the
// additional-signed payload accompanying it) against reg, and returns the
// minimal Merkle proof covering exactly the type ids and enumeration
// variants that decode touched.
func GenerateProofForExtrinsic(reg *registry.Registry, extrinsicBytes, additionalSignedBytes []byte) (*merkle.Proof, error) {
	graph, err := lower.Lower(reg)
	if err != nil {
		return nil, err
	}
	schema, err := lower.LowerExtrinsicSchema(reg)
	if err != nil {
		return nil, err
	}

	collector, err := access.DecodeExtrinsicAndCollect(graph, schema, extrinsicBytes, additionalSignedBytes)
	if err != nil {
		return nil, err
	}
	positions := access.LeafPositions(graph, collector.Records())

	encoded := make([][]byte, len(graph.Entries))
	leaves := make([]merkle.Hash, len(graph.Entries))
	for i, e := range graph.Entries {
		encoded[i] = e.Encode()
		leaves[i] = merkle.Sum256(encoded[i])
	}
	proof, err := merkle.BuildProof(leaves, encoded, positions)
	if err != nil {
		return nil, errkind.New(errkind.Internal, err.Error())
	}
	return proof, nil
}

func leafHashes(graph *typeir.Graph) []merkle.Hash {
	leaves := make([]merkle.Hash, len(graph.Entries))
	for i, e := range graph.Entries {
		leaves[i] = merkle.Sum256(e.Encode())
	}
	return leaves
}
