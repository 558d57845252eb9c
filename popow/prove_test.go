// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package popow_test

import (
	"errors"
	"testing"

	"github.com/ergolabs/nipopow-core/popow"
	"github.com/ergolabs/nipopow-core/testutils"
)

// buildS1Chain reproduces scenario S1 from the design notes: a 13-header
// chain (genesis at height 0) with a single level-1 superblock at height 6.
func buildS1Chain() *testutils.ChainGen {
	g := testutils.NewChainGen()
	for h := 1; h <= 12; h++ {
		level := 0
		if h == 6 {
			level = 1
		}
		g.Next(level)
	}
	return g
}

func TestProveFromChainMinimalProof(t *testing.T) {
	g := buildS1Chain()
	params := popow.Params{M: 6, K: 6}

	proof, err := popow.ProveFromChain(g.Chain(), params, g.HitFunc())
	if err != nil {
		t.Fatalf("ProveFromChain: %v", err)
	}

	if len(proof.SuffixTail) != int(params.K)-1 {
		t.Fatalf("suffixTail length = %d, want %d", len(proof.SuffixTail), params.K-1)
	}
	if !proof.Prefix[0].Header.IsGenesis() {
		t.Fatal("prefix[0] is not genesis")
	}
	if !proof.IsValid() {
		t.Fatal("proof should be valid")
	}

	foundLevel1 := false
	for _, ph := range proof.Prefix {
		if ph.Header.Height() == 6 {
			foundLevel1 = true
		}
	}
	if !foundLevel1 {
		t.Fatal("prefix does not contain the level-1 superblock at height 6")
	}
}

func TestProveFromChainInsufficientChain(t *testing.T) {
	g := testutils.NewChainGen()
	g.NextN(9, 0) // 10 headers total, less than k+m=12

	_, err := popow.ProveFromChain(g.Chain(), popow.Params{M: 6, K: 6}, g.HitFunc())
	if !errors.Is(err, popow.ErrInsufficientChain) {
		t.Fatalf("got %v, want ErrInsufficientChain", err)
	}
}

func TestProveFromChainNotAnchored(t *testing.T) {
	g := testutils.NewChainGen()
	g.NextN(9, 0)
	chain := g.Chain()[1:] // drop the genesis header

	_, err := popow.ProveFromChain(chain, popow.Params{M: 3, K: 3}, g.HitFunc())
	if !errors.Is(err, popow.ErrNotAnchored) {
		t.Fatalf("got %v, want ErrNotAnchored", err)
	}
}

func TestProveFromChainInvalidParams(t *testing.T) {
	g := buildS1Chain()
	if _, err := popow.ProveFromChain(g.Chain(), popow.Params{M: 0, K: 6}, g.HitFunc()); !errors.Is(err, popow.ErrInvalidParams) {
		t.Fatalf("got %v, want ErrInvalidParams", err)
	}
	if _, err := popow.ProveFromChain(g.Chain(), popow.Params{M: 6, K: 0}, g.HitFunc()); !errors.Is(err, popow.ErrInvalidParams) {
		t.Fatalf("got %v, want ErrInvalidParams", err)
	}
}

func TestProveFromReaderMatchesProveFromChainSuffix(t *testing.T) {
	g := buildS1Chain()
	reader := testutils.NewMockHistoryReader(g.Chain())
	params := popow.Params{M: 6, K: 6}

	fromChain, err := popow.ProveFromChain(g.Chain(), params, g.HitFunc())
	if err != nil {
		t.Fatalf("ProveFromChain: %v", err)
	}
	fromReader, err := popow.ProveFromReader(reader, nil, params, g.HitFunc())
	if err != nil {
		t.Fatalf("ProveFromReader: %v", err)
	}

	if fromChain.SuffixHead.Header.ID() != fromReader.SuffixHead.Header.ID() {
		t.Fatalf("suffix head mismatch: chain=%s reader=%s",
			fromChain.SuffixHead.Header.ID(), fromReader.SuffixHead.Header.ID())
	}
	if len(fromChain.SuffixTail) != len(fromReader.SuffixTail) {
		t.Fatalf("suffix tail length mismatch: chain=%d reader=%d",
			len(fromChain.SuffixTail), len(fromReader.SuffixTail))
	}
	if !fromReader.IsValid() {
		t.Fatal("proof built from reader should be valid")
	}
}

func TestProveFromReaderEmptyChain(t *testing.T) {
	reader := testutils.NewMockHistoryReader(nil)
	_, err := popow.ProveFromReader(reader, nil, popow.Params{M: 1, K: 1}, testutils.MockHitFunc())
	if !errors.Is(err, popow.ErrEmptyChain) {
		t.Fatalf("got %v, want ErrEmptyChain", err)
	}
}
