// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle builds the binary Merkle tree used to prove that a single
// extension key-value pair is included in a header's extension root. The
// pairwise-hash-with-duplicated-last-node construction follows the same
// shape as the teacher's blockchain/standalone.CalcMerkleRoot, generalized
// here to also emit inclusion proofs (the teacher only needed the root).
package merkle

import (
	"crypto/sha256"

	"github.com/ergolabs/nipopow-core/chainhash"
)

// Proof is an inclusion proof for a single leaf: the sibling hash at each
// level of the tree, ordered from the leaf upward, plus which side of the
// pair the sibling sits on.
type Proof struct {
	LeafIndex int
	Siblings  []chainhash.Hash
	// SiblingOnRight[i] is true when Siblings[i] is the right-hand node of
	// the pair being hashed at level i.
	SiblingOnRight []bool
}

func hashPair(left, right chainhash.Hash) chainhash.Hash {
	h := sha256.New()
	h.Write(left[:])
	h.Write(right[:])
	var out chainhash.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// CalcRoot computes the Merkle root over leaves, duplicating the final node
// of a level when it has no pair, matching the teacher's CalcMerkleRoot.
func CalcRoot(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 0 {
		return chainhash.Hash{}
	}
	level := append([]chainhash.Hash(nil), leaves...)
	for len(level) > 1 {
		level = hashLevel(level)
	}
	return level[0]
}

func hashLevel(level []chainhash.Hash) []chainhash.Hash {
	next := make([]chainhash.Hash, 0, (len(level)+1)/2)
	for i := 0; i < len(level); i += 2 {
		if i+1 == len(level) {
			next = append(next, hashPair(level[i], level[i]))
		} else {
			next = append(next, hashPair(level[i], level[i+1]))
		}
	}
	return next
}

// BuildProof returns the inclusion proof for the leaf at index.
func BuildProof(leaves []chainhash.Hash, index int) (Proof, bool) {
	if index < 0 || index >= len(leaves) {
		return Proof{}, false
	}

	proof := Proof{LeafIndex: index}
	level := append([]chainhash.Hash(nil), leaves...)
	idx := index
	for len(level) > 1 {
		var sibling chainhash.Hash
		var onRight bool
		if idx%2 == 0 {
			if idx+1 < len(level) {
				sibling = level[idx+1]
			} else {
				sibling = level[idx]
			}
			onRight = true
		} else {
			sibling = level[idx-1]
			onRight = false
		}
		proof.Siblings = append(proof.Siblings, sibling)
		proof.SiblingOnRight = append(proof.SiblingOnRight, onRight)

		level = hashLevel(level)
		idx /= 2
	}
	return proof, true
}

// Verify reports whether leaf, combined with the proof's sibling path,
// reconstructs root.
func (p Proof) Verify(leaf, root chainhash.Hash) bool {
	cur := leaf
	for i, sib := range p.Siblings {
		if p.SiblingOnRight[i] {
			cur = hashPair(cur, sib)
		} else {
			cur = hashPair(sib, cur)
		}
	}
	return cur == root
}
