// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"math"
	"math/big"
)

// GenesisLevel is the μ-level assigned to a genesis header. It is treated as
// "greater than every other level" so that the genesis header belongs to
// every superchain, per the data model invariant that interlinks[0] is
// always the genesis id.
const GenesisLevel = math.MaxInt32

// Q is the fixed PoW modulus that every target is measured against:
// T = Q / target. It is a 256-bit modulus, matching the width of the
// arbitrary-precision target and hit values the spec requires.
var Q = new(big.Int).Lsh(big.NewInt(1), 256)

// Header is the subset of header behavior the level calculus depends on.
// The concrete header type and its storage are owned by a collaborator
// outside this core (§1); this interface is the seam.
type Header interface {
	// IsGenesis reports whether the header is the chain's genesis block.
	IsGenesis() bool

	// NBits returns the compact-encoded PoW target.
	NBits() uint32
}

// HitFunc evaluates the PoW hit of a header as a non-negative big integer
// strictly less than the header's decoded target. It is supplied by the
// PoW scheme, which lives outside this core.
type HitFunc func(h Header) *big.Int

// MaxLevelOf returns the μ-level of a header: the integer number of bits by
// which the header's hit beat its required target. Genesis headers return
// GenesisLevel unconditionally, since they belong to every superchain.
//
// The floor(log2(T) - log2(B)) computation is performed in float64 exactly
// as the reference implementation does; this is a documented compatibility
// surface (see the design notes), not a free rounding choice — two
// implementations that round differently will disagree about levels near a
// power-of-two boundary and so will disagree about proof validity.
func MaxLevelOf(h Header, hit HitFunc) int {
	if h.IsGenesis() {
		return GenesisLevel
	}

	target := CompactToBig(h.NBits())
	t := new(big.Int).Div(Q, target)
	b := hit(h)

	tf, _ := new(big.Float).SetInt(t).Float64()
	bf, _ := new(big.Float).SetInt(b).Float64()

	return int(math.Floor(math.Log2(tf) - math.Log2(bf)))
}
