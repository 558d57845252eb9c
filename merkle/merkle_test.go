// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"testing"

	"github.com/ergolabs/nipopow-core/chainhash"
)

func leavesOf(n int) []chainhash.Hash {
	out := make([]chainhash.Hash, n)
	for i := range out {
		out[i][0] = byte(i + 1)
	}
	return out
}

func TestBuildProofVerifiesForEveryLeaf(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8} {
		leaves := leavesOf(n)
		root := CalcRoot(leaves)
		for i := range leaves {
			proof, ok := BuildProof(leaves, i)
			if !ok {
				t.Fatalf("n=%d i=%d: BuildProof failed", n, i)
			}
			if !proof.Verify(leaves[i], root) {
				t.Fatalf("n=%d i=%d: proof did not verify", n, i)
			}
		}
	}
}

func TestBuildProofOutOfRange(t *testing.T) {
	if _, ok := BuildProof(leavesOf(3), 5); ok {
		t.Fatal("expected out-of-range index to fail")
	}
}
