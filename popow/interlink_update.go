// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package popow

import (
	"github.com/ergolabs/nipopow-core/chainhash"
	"github.com/ergolabs/nipopow-core/pow"
)

// UpdateInterlinks computes the interlink vector of the block that follows
// prevHeader, given prevHeader's own (already unpacked) interlink vector.
//
// For every level i, the invariant maintained is that result[i] (when
// present) is the most recent ancestor of μ-level at least i.
func UpdateInterlinks(prevHeader Header, prevInterlinks []chainhash.Hash, hit pow.HitFunc) ([]chainhash.Hash, error) {
	if prevHeader.IsGenesis() {
		return []chainhash.Hash{prevHeader.ID()}, nil
	}

	if len(prevInterlinks) == 0 {
		return nil, ruleError(ErrMalformedInterlinks,
			"previous interlink vector must have at least one entry")
	}

	mu := pow.MaxLevelOf(prevHeader, hit)
	if mu <= 0 {
		return prevInterlinks, nil
	}

	genesis := prevInterlinks[0]
	tail := prevInterlinks[1:]

	keep := len(tail) - mu
	if keep < 0 {
		keep = 0
	}

	result := make([]chainhash.Hash, 0, 1+keep+mu)
	result = append(result, genesis)
	result = append(result, tail[:keep]...)
	for i := 0; i < mu; i++ {
		result = append(result, prevHeader.ID())
	}
	return result, nil
}
