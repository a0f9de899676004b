// Package merkle implements the hashing and binary Merkle tree scheme used
// to commit to the canonicalized set of IR leaves (see package typeir) and
// to prove that a subset of those leaves was visited while decoding an
// extrinsic.
//
// Grounded on the generalized-index multi-proof in the reference crypto
// package, but reworked for a tree whose odd trailing node at each level is
// carried upward unchanged instead of being duplicated or zero-padded —
// the shape mandated by the metadata digest scheme.
package merkle

import "golang.org/x/crypto/blake2b"

// Hash is a 32-byte digest produced by the tree's hash function.
type Hash [32]byte

// ZeroHash is the root of the empty tree and the all-zero leaf sentinel.
var ZeroHash = Hash{}

// hashLeaf returns blake2b-256(data). Domain separation between leaves and
// internal nodes is not required: leaf encodings are self-describing (see
// typeir.Entry.Encode) and never collide with the 64-byte internal-node
// input shape in a way that could substitute one for the other across a
// digest boundary, since the whole tree only ever hashes these two shapes
// within itself.
func hashLeaf(data []byte) Hash {
	return Hash(blake2b.Sum256(data))
}

// hashPair combines two node hashes into their parent.
func hashPair(left, right Hash) Hash {
	var buf [64]byte
	copy(buf[:32], left[:])
	copy(buf[32:], right[:])
	return Hash(blake2b.Sum256(buf[:]))
}

// Sum256 hashes an arbitrary byte string with the same function used for
// the tree; exported for callers that need to hash the digest envelope or
// the extrinsic metadata record (see Digest and ExtrinsicMetadataHash).
func Sum256(data []byte) Hash {
	return Hash(blake2b.Sum256(data))
}
