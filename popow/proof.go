// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package popow

import "github.com/ergolabs/nipopow-core/chainhash"

// Params bundles the prover's two security parameters: m controls the
// density of superblocks required per level, k is the suffix length.
type Params struct {
	M uint32
	K uint32
}

// Validate reports whether the parameters satisfy m >= 1 and k >= 1.
func (p Params) Validate() error {
	if p.M < 1 || p.K < 1 {
		return ruleErrorf(ErrInvalidParams, "m and k must both be >= 1, got m=%d k=%d", p.M, p.K)
	}
	return nil
}

// Proof is a succinct assertion that a chain suffix is anchored in a long
// proof-of-work history: a sparse, superblock-sampled prefix back to
// genesis, plus the suffix carried in full so recent reorgs stay visible.
type Proof struct {
	M          uint32
	K          uint32
	Prefix     []PoPowHeader
	SuffixHead PoPowHeader
	SuffixTail []Header
}

// PoPowProof is an alias kept for readers coming from the data model in
// the design documents, where the type is named PoPowProof.
type PoPowProof = Proof

// ProofPrefix is the detachable, prefix-only companion to Proof, used when the
// (large) prefix and the (short) suffix are propagated on separate wires.
type ProofPrefix struct {
	M        uint32
	Chain    []PoPowHeader
	SuffixID chainhash.Hash
}

// PoPowProofPrefix is kept for the same reason as PoPowProof.
type PoPowProofPrefix = ProofPrefix
