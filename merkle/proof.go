package merkle

import (
	"errors"
	"sort"
)

// ErrInvalidProof is the error value for a proof that does not recompute
// the expected root. Verify does not return it: it reports such a proof,
// or one with an out-of-range leaf position or a missing sibling, by
// returning false.
var ErrInvalidProof = errors.New("merkle: invalid proof")

// ProofLeaf is one disclosed leaf: its position in the full leaf vector and
// the canonical bytes that hash to the leaf's node value. Carrying the raw
// bytes (not just the hash) is what lets a verifier recover the touched IR
// entries, not merely confirm their existence.
type ProofLeaf struct {
	Position int
	Encoded  []byte
}

// ProofSibling is one internal node supplied so the verifier can recompute
// a parent it cannot derive purely from disclosed leaves.
type ProofSibling struct {
	Level int
	Index int
	Hash  Hash
}

// Proof is a compact Merkle multi-proof: the disclosed leaves plus the
// minimal set of sibling hashes needed to recompute the root, plus the
// total leaf count needed to reconstruct tree shape.
type Proof struct {
	Leaves    []ProofLeaf
	Siblings  []ProofSibling
	LeafCount int
}

// BuildProof builds a Proof disclosing the leaves at the given positions
// (which must be strictly increasing and in range) from the full leaf
// vector. encoded[i] must be the canonical bytes whose hash is leaves[i].
func BuildProof(leaves []Hash, encoded [][]byte, positions []int) (*Proof, error) {
	if len(leaves) != len(encoded) {
		return nil, errors.New("merkle: leaves/encoded length mismatch")
	}
	if len(positions) == 0 {
		return nil, errors.New("merkle: no positions given")
	}
	for i, p := range positions {
		if p < 0 || p >= len(leaves) {
			return nil, errors.New("merkle: position out of range")
		}
		if i > 0 && positions[i-1] >= p {
			return nil, errors.New("merkle: positions must be strictly increasing")
		}
	}

	tree := Build(leaves)

	known := make(map[int]bool, len(positions))
	for _, p := range positions {
		known[p] = true
	}

	var siblings []ProofSibling
	cur := known
	for level := 0; level < tree.Depth(); level++ {
		levelSize := len(tree.levels[level])
		next := make(map[int]bool, len(cur))
		// Process in deterministic order so siblings are emitted sorted.
		ps := make([]int, 0, len(cur))
		for p := range cur {
			ps = append(ps, p)
		}
		sort.Ints(ps)
		for _, p := range ps {
			sib, has := siblingIndex(p, levelSize)
			if has && !cur[sib] {
				siblings = append(siblings, ProofSibling{
					Level: level,
					Index: sib,
					Hash:  tree.levels[level][sib],
				})
			}
			next[parentIndex(p)] = true
		}
		cur = next
	}

	proofLeaves := make([]ProofLeaf, len(positions))
	for i, p := range positions {
		proofLeaves[i] = ProofLeaf{Position: p, Encoded: encoded[p]}
	}

	return &Proof{
		Leaves:    proofLeaves,
		Siblings:  siblings,
		LeafCount: len(leaves),
	}, nil
}

// Verify recomputes the root implied by proof and reports whether it
// equals root.
func Verify(proof *Proof, root Hash) bool {
	if proof == nil || len(proof.Leaves) == 0 || proof.LeafCount <= 0 {
		return false
	}

	known := make(map[int]Hash, len(proof.Leaves))
	for _, l := range proof.Leaves {
		if l.Position < 0 || l.Position >= proof.LeafCount {
			return false
		}
		known[l.Position] = hashLeaf(l.Encoded)
	}

	siblingsByLevel := make(map[int]map[int]Hash)
	for _, s := range proof.Siblings {
		m, ok := siblingsByLevel[s.Level]
		if !ok {
			m = make(map[int]Hash)
			siblingsByLevel[s.Level] = m
		}
		m[s.Index] = s.Hash
	}

	levelSize := proof.LeafCount
	level := 0
	for levelSize > 1 {
		parents := make(map[int]Hash)
		ps := make([]int, 0, len(known))
		for p := range known {
			ps = append(ps, p)
		}
		sort.Ints(ps)
		for _, p := range ps {
			sib, has := siblingIndex(p, levelSize)
			parent := parentIndex(p)
			if !has {
				parents[parent] = known[p]
				continue
			}
			sibHash, ok := known[sib]
			if !ok {
				sibHash, ok = siblingsByLevel[level][sib]
				if !ok {
					return false
				}
			}
			var left, right Hash
			if p%2 == 0 {
				left, right = known[p], sibHash
			} else {
				left, right = sibHash, known[p]
			}
			parents[parent] = hashPair(left, right)
		}
		known = parents
		levelSize = (levelSize + 1) / 2
		level++
	}

	root0, ok := known[0]
	return ok && root0 == root
}
