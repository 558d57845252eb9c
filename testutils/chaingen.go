// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package testutils

import (
	"math/big"

	"github.com/ergolabs/nipopow-core/chainhash"
	"github.com/ergolabs/nipopow-core/pow"
	"github.com/ergolabs/nipopow-core/popow"
)

// DefaultNBits is the fixed compact target every mock header in a ChainGen
// chain shares; only the forced "level" (see MockHitFunc) varies between
// headers.
const DefaultNBits = uint32(0x1d00ffff)

// MockHitFunc returns a pow.HitFunc that reconstructs the exact μ-level a
// testutils.Header was built with, instead of evaluating a real PoW
// scheme. It shifts T = Q / (the header's decoded target) right by the
// header's forced level, which makes MaxLevelOf recover that same level, letting
// end-to-end tests pin μ-levels per height exactly as spec'd.
func MockHitFunc() pow.HitFunc {
	return func(h pow.Header) *big.Int {
		lvl := 0
		if leveled, ok := h.(interface{ Level() int }); ok {
			lvl = leveled.Level()
		}
		target := pow.CompactToBig(h.NBits())
		t := new(big.Int).Div(pow.Q, target)
		if lvl <= 0 {
			return t
		}
		return new(big.Int).Rsh(t, uint(lvl))
	}
}

// ChainGen builds a deterministic chain of mock headers and their
// interlink vectors, the same role the teacher's blockchain/v4/chaingen
// module plays for its own difficulty/stake tests.
type ChainGen struct {
	hit     pow.HitFunc
	headers []popow.PoPowHeader
}

// NewChainGen returns a ChainGen seeded with a genesis header.
func NewChainGen() *ChainGen {
	g := &ChainGen{hit: MockHitFunc()}

	genesis := &Header{
		height:  0,
		genesis: true,
		nBits:   DefaultNBits,
	}
	genesis.id = idFromHeight(0)

	ph, err := popow.NewPoPowHeader(genesis, []chainhash.Hash{genesis.id})
	if err != nil {
		panic(err)
	}
	g.headers = append(g.headers, ph)
	return g
}

// Next appends a header at the given forced μ-level and returns it.
func (g *ChainGen) Next(level int) popow.PoPowHeader {
	prev := g.headers[len(g.headers)-1]

	h := &Header{
		height:   prev.Header.Height() + 1,
		parentID: prev.Header.ID(),
		nBits:    DefaultNBits,
		level:    level,
	}
	h.id = idFromHeight(h.height)

	interlinks, err := popow.UpdateInterlinks(prev.Header, prev.Interlinks, g.hit)
	if err != nil {
		panic(err)
	}

	ph, err := popow.NewPoPowHeader(h, interlinks)
	if err != nil {
		panic(err)
	}
	g.headers = append(g.headers, ph)
	return ph
}

// NextN appends count headers, all at the given forced μ-level.
func (g *ChainGen) NextN(count int, level int) {
	for i := 0; i < count; i++ {
		g.Next(level)
	}
}

// Chain returns the chain built so far, ascending by height.
func (g *ChainGen) Chain() []popow.PoPowHeader {
	return g.headers
}

// HitFunc returns the mock hit function this generator (and anything
// consuming its chain) should use for level computations.
func (g *ChainGen) HitFunc() pow.HitFunc {
	return g.hit
}
