// Copyright (c) 2018 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interlink

import (
	"crypto/sha256"

	"github.com/ergolabs/nipopow-core/chainhash"
	"github.com/ergolabs/nipopow-core/merkle"
)

// ExtensionCandidate is the ordered set of extension key-value fields a
// header commits to, plus the ability to produce a Merkle inclusion proof
// for one of them. Its concrete implementation and the commitment scheme
// that binds it into the header are owned by a collaborator outside this
// core; this interface is the seam the interlink codec needs.
type ExtensionCandidate interface {
	// Fields returns the extension fields in commitment order.
	Fields() []Field
}

// leafHash is the value committed to the extension Merkle tree for a single
// field: the hash of its key followed by its value.
func leafHash(f Field) chainhash.Hash {
	h := sha256.New()
	h.Write(f.Key[:])
	h.Write(f.Value)
	var out chainhash.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// ProofForBlockID finds the first field whose key namespace is PrefixByte
// and whose packed id equals blockID, and returns the Merkle inclusion
// proof for that field. The second return value is false if no such field
// exists.
func ProofForBlockID(ext ExtensionCandidate, blockID chainhash.Hash) (merkle.Proof, bool) {
	fields := ext.Fields()

	index := -1
	for i, f := range fields {
		if f.Key[0] != PrefixByte || len(f.Value) != fieldValueSize {
			continue
		}
		var id chainhash.Hash
		copy(id[:], f.Value[1:fieldValueSize])
		if id == blockID {
			index = i
			break
		}
	}
	if index < 0 {
		return merkle.Proof{}, false
	}

	leaves := make([]chainhash.Hash, len(fields))
	for i, f := range fields {
		leaves[i] = leafHash(f)
	}

	return merkle.BuildProof(leaves, index)
}
