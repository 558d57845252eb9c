// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package popow_test

import (
	"testing"

	"github.com/ergolabs/nipopow-core/popow"
	"github.com/ergolabs/nipopow-core/testutils"
)

func TestUpdateInterlinksGenesisSuccessor(t *testing.T) {
	g := testutils.NewChainGen()
	genesis := g.Chain()[0]

	next, err := popow.UpdateInterlinks(genesis.Header, genesis.Interlinks, testutils.MockHitFunc())
	if err != nil {
		t.Fatalf("UpdateInterlinks: %v", err)
	}
	if len(next) != 1 || next[0] != genesis.Header.ID() {
		t.Fatalf("genesis successor interlinks = %v, want [genesis id]", next)
	}
}

func TestUpdateInterlinksZeroLevelLeavesVectorUnchanged(t *testing.T) {
	g := testutils.NewChainGen()
	g.NextN(3, 0)
	prev := g.Chain()[len(g.Chain())-1]

	next, err := popow.UpdateInterlinks(prev.Header, prev.Interlinks, testutils.MockHitFunc())
	if err != nil {
		t.Fatalf("UpdateInterlinks: %v", err)
	}
	if len(next) != len(prev.Interlinks) {
		t.Fatalf("interlinks length = %d, want unchanged %d", len(next), len(prev.Interlinks))
	}
	for i := range next {
		if next[i] != prev.Interlinks[i] {
			t.Fatalf("interlinks[%d] changed for a level-0 predecessor", i)
		}
	}
}

// TestUpdateInterlinksPositiveLevelAppendsSelf checks the invariant from
// the design notes: when the previous header reaches μ-level mu > 0, the
// resulting vector has length max(mu+1, len(prevInterlinks)), and every
// position from len-mu onward holds the previous header's own id.
func TestUpdateInterlinksPositiveLevelAppendsSelf(t *testing.T) {
	g := testutils.NewChainGen()
	g.NextN(3, 0)
	prevInterlinks := g.Chain()[len(g.Chain())-1].Interlinks

	level := 2
	parent := g.Next(level)

	child, err := popow.UpdateInterlinks(parent.Header, parent.Interlinks, testutils.MockHitFunc())
	if err != nil {
		t.Fatalf("UpdateInterlinks: %v", err)
	}

	wantLen := level + 1
	if wantLen < len(prevInterlinks) {
		wantLen = len(prevInterlinks)
	}
	if len(child) != wantLen {
		t.Fatalf("interlinks length = %d, want %d", len(child), wantLen)
	}

	for i := len(child) - level; i < len(child); i++ {
		if child[i] != parent.Header.ID() {
			t.Fatalf("interlinks[%d] = %s, want parent id %s", i, child[i], parent.Header.ID())
		}
	}

	if child[0] != parent.Interlinks[0] {
		t.Fatal("genesis entry at index 0 must be preserved")
	}
}

func TestUpdateInterlinksRejectsEmptyPredecessorVector(t *testing.T) {
	g := testutils.NewChainGen()
	g.NextN(1, 0)
	prev := g.Chain()[len(g.Chain())-1]

	if _, err := popow.UpdateInterlinks(prev.Header, nil, testutils.MockHitFunc()); err == nil {
		t.Fatal("expected an error for an empty predecessor interlink vector")
	}
}
