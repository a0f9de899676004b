package merkle

// Tree holds every level of a binary Merkle tree built over a leaf vector,
// from the leaves (level 0) up to the single root (the last level). It is
// kept in memory for the lifetime of a single digest or proof computation;
// nothing here is mutated after Build returns.
//
// Level sizes shrink by ceil(n/2) at each step. When a level has an odd
// number of nodes, the trailing node has no sibling and is carried to the
// next level unchanged rather than duplicated — this is what makes the
// scheme stable under append-only growth of the type registry and avoids
// ever hashing a node with itself.
type Tree struct {
	levels    [][]Hash
	leafCount int
}

// Build constructs the full tree over leaves. An empty leaf set yields a
// tree whose single "root" level is the zero hash.
func Build(leaves []Hash) *Tree {
	if len(leaves) == 0 {
		return &Tree{levels: [][]Hash{{ZeroHash}}, leafCount: 0}
	}

	levels := make([][]Hash, 0, 32)
	cur := append([]Hash(nil), leaves...)
	levels = append(levels, cur)

	for len(cur) > 1 {
		next := make([]Hash, (len(cur)+1)/2)
		for i := range next {
			left := 2 * i
			right := left + 1
			if right < len(cur) {
				next[i] = hashPair(cur[left], cur[right])
			} else {
				next[i] = cur[left] // odd node carried up unchanged
			}
		}
		levels = append(levels, next)
		cur = next
	}
	return &Tree{levels: levels, leafCount: len(leaves)}
}

// Root returns the tree's root hash.
func (t *Tree) Root() Hash {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Depth returns the number of levels above the leaves (0 for an empty or
// single-leaf tree).
func (t *Tree) Depth() int {
	return len(t.levels) - 1
}

// LeafCount returns the number of leaves the tree was built over (0 for the
// empty-tree sentinel, not 1).
func (t *Tree) LeafCount() int {
	return t.leafCount
}

// RootOf is a convenience wrapper that builds a tree over leaves and
// returns only its root.
func RootOf(leaves []Hash) Hash {
	return Build(leaves).Root()
}

// siblingIndex returns the sibling position of p within a level of the
// given size, and whether p actually has a sibling (false for a carried-up
// odd trailing node).
func siblingIndex(p, levelSize int) (int, bool) {
	sib := p ^ 1
	if sib >= levelSize {
		return 0, false
	}
	return sib, true
}

// parentIndex returns the index p maps to in the next level up.
func parentIndex(p int) int {
	return p / 2
}
