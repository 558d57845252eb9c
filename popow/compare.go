// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package popow

import (
	"math"

	"github.com/ergolabs/nipopow-core/pow"
)

// ChainOfLevel returns the subsequence of chain whose μ-level is at least
// level. It is not used by BestArg or the comparator but is retained as a
// public accessor for test scaffolding, per the design notes.
func ChainOfLevel(chain []Header, level int, hit pow.HitFunc) []Header {
	var out []Header
	for _, h := range chain {
		if pow.MaxLevelOf(h, hit) >= level {
			out = append(out, h)
		}
	}
	return out
}

// BestArg computes the chain-quality score used to compare competing
// chains: the maximum, over admissible levels L, of 2^L times the count of
// headers at level >= L. Level 0 is always admissible; level L >= 1 is
// admissible only while its count is still >= m.
//
// The result is widened to uint64 rather than left as a machine int, since
// the source language's toInt() conversion can silently overflow on very
// long chains; this core never wraps silently (see the design notes).
func BestArg(chain []Header, hit pow.HitFunc, m uint32) uint64 {
	if len(chain) == 0 {
		return 0
	}

	counts := make(map[int]int)
	maxLevel := 0
	for _, h := range chain {
		lvl := pow.MaxLevelOf(h, hit)
		if lvl > maxLevel {
			maxLevel = lvl
		}
		// Every header at level >= 0 counts toward every admissible
		// level it reaches; accumulate per-level counts below instead
		// of per-header to avoid capping maxLevel at pow.GenesisLevel.
	}
	if maxLevel > len(chain) {
		maxLevel = len(chain)
	}

	for level := 0; level <= maxLevel; level++ {
		n := 0
		for _, h := range chain {
			if pow.MaxLevelOf(h, hit) >= level {
				n++
			}
		}
		counts[level] = n
	}

	best := uint64(len(chain))
	for level := 0; level <= maxLevel; level++ {
		n := counts[level]
		if level >= 1 && n < int(m) {
			break
		}
		// Saturate instead of wrapping when 2^level * n exceeds uint64.
		score := uint64(math.MaxUint64)
		if level < 64 && uint64(n) <= uint64(math.MaxUint64)>>uint(level) {
			score = uint64(n) << uint(level)
		}
		if score > best {
			best = score
		}
	}
	return best
}

// LowestCommonAncestor returns the last header that appears in both a and
// b, provided their first headers agree; otherwise it returns false. This
// is a deliberately narrower notion than a graph-theoretic LCA — see the
// design notes — and callers must always pass chains anchored at the same
// header.
func LowestCommonAncestor(a, b []Header) (Header, bool) {
	if len(a) == 0 || len(b) == 0 {
		return nil, false
	}
	if a[0].ID() != b[0].ID() {
		return nil, false
	}

	inB := make(map[[32]byte]struct{}, len(b))
	for _, h := range b {
		inB[h.ID()] = struct{}{}
	}

	var last Header
	for _, h := range a {
		if _, ok := inB[h.ID()]; ok {
			last = h
		}
	}
	if last == nil {
		return nil, false
	}
	return last, true
}

// IsBetterThan reports whether self should be preferred over that. If
// exactly one proof is invalid, the valid one wins. If both are invalid,
// neither wins. Otherwise the two proofs' header chains are compared by
// BestArg, restricted to the portion strictly above their lowest common
// ancestor when one can be found; ties favor the incumbent (that), so this
// always returns false on a tie.
func (self *Proof) IsBetterThan(that *Proof, hit pow.HitFunc) bool {
	selfValid := self.IsValid()
	thatValid := that.IsValid()
	if selfValid != thatValid {
		return selfValid
	}
	if !selfValid {
		return false
	}

	selfChain := self.HeadersChain()
	thatChain := that.HeadersChain()

	lca, ok := LowestCommonAncestor(selfChain, thatChain)

	selfSuffix := selfChain
	thatSuffix := thatChain
	if ok {
		selfSuffix = aboveHeight(selfChain, lca.Height())
		thatSuffix = aboveHeight(thatChain, lca.Height())
	}

	selfScore := BestArg(selfSuffix, hit, self.M)
	thatScore := BestArg(thatSuffix, hit, that.M)
	return selfScore > thatScore
}

func aboveHeight(chain []Header, height uint32) []Header {
	var out []Header
	for _, h := range chain {
		if h.Height() > height {
			out = append(out, h)
		}
	}
	return out
}
