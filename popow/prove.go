// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package popow

import (
	"sort"

	"github.com/ergolabs/nipopow-core/chainhash"
	"github.com/ergolabs/nipopow-core/pow"
)

// ProveFromChain builds a Proof from a fully materialized, ascending-height
// chain. chain must start at genesis and contain at least k+m headers.
func ProveFromChain(chain []PoPowHeader, params Params, hit pow.HitFunc) (*Proof, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if uint32(len(chain)) < params.K+params.M {
		return nil, ruleErrorf(ErrInsufficientChain,
			"chain has %d headers, need at least k+m=%d", len(chain), params.K+params.M)
	}
	if !chain[0].Header.IsGenesis() {
		return nil, ruleError(ErrNotAnchored, "first header of chain is not genesis")
	}

	n := len(chain)
	k := int(params.K)
	m := int(params.M)

	suffix := chain[n-k:]
	suffixHead := suffix[0]
	suffixTail := make([]Header, 0, k-1)
	for _, ph := range suffix[1:] {
		suffixTail = append(suffixTail, ph.Header)
	}

	body := chain[:n-k]
	maxLevel := len(body[len(body)-1].Interlinks) - 1

	seen := make(map[chainhash.Hash]PoPowHeader)
	anchorHeight := body[0].Header.Height()

	for level := maxLevel; level >= 0; level-- {
		var sub []PoPowHeader
		for _, ph := range body {
			if ph.Header.Height() < anchorHeight {
				continue
			}
			if pow.MaxLevelOf(ph.Header, hit) >= level {
				sub = append(sub, ph)
			}
		}

		for _, ph := range sub {
			seen[ph.Header.ID()] = ph
		}

		if len(sub) > m {
			anchorHeight = sub[len(sub)-m].Header.Height()
		}
	}

	prefix := make([]PoPowHeader, 0, len(seen))
	for _, ph := range seen {
		prefix = append(prefix, ph)
	}
	sort.Slice(prefix, func(i, j int) bool {
		return prefix[i].Header.Height() < prefix[j].Header.Height()
	})

	return &Proof{
		M:          params.M,
		K:          params.K,
		Prefix:     prefix,
		SuffixHead: suffixHead,
		SuffixTail: suffixTail,
	}, nil
}

// ProveFromReader builds a Proof by walking a HistoryReader rather than a
// fully materialized chain. If headerID is non-nil it names the desired
// suffix head; otherwise the suffix is the last k headers of the best
// chain.
func ProveFromReader(reader HistoryReader, headerID *chainhash.Hash, params Params, hit pow.HitFunc) (*Proof, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var suffixHead PoPowHeader
	var suffixTail []Header

	if headerID != nil {
		ph, ok := reader.PoPowHeaderByID(*headerID)
		if !ok {
			return nil, ruleErrorf(ErrInsufficientChain, "unknown header id %s", headerID)
		}
		suffixHead = ph
		suffixTail = reader.BestHeadersAfter(ph.Header, params.K-1)
	} else {
		best, ok := reader.BestHeader()
		if !ok {
			return nil, ruleError(ErrEmptyChain, "history has no best header")
		}
		if best.Height()+1 < params.K {
			return nil, ruleErrorf(ErrInsufficientChain,
				"best height %d is shorter than k=%d", best.Height(), params.K)
		}
		last := reader.LastHeaders(params.K)
		if uint32(len(last)) < params.K {
			return nil, ruleErrorf(ErrInsufficientChain,
				"only %d headers available, need k=%d", len(last), params.K)
		}
		headPH, ok := reader.PoPowHeaderByID(last[0].ID())
		if !ok {
			return nil, ruleErrorf(ErrInsufficientChain, "missing interlinks for header %s", last[0].ID())
		}
		suffixHead = headPH
		suffixTail = last[1:]
	}

	log.Debugf("building nipopow prefix for suffix head at height %d", suffixHead.Header.Height())

	genesisID := suffixHead.GenesisID()
	genesisPH, ok := reader.PoPowHeaderByID(genesisID)
	if !ok {
		return nil, ruleErrorf(ErrNotAnchored, "genesis header %s not found", genesisID)
	}

	collected := make(map[chainhash.Hash]PoPowHeader)
	anchoringHeight := uint32(1)

	levels := suffixHead.Interlinks[1:]
	for i := len(levels) - 1; i >= 0; i-- {
		levelHeaders := collectLevel(reader, levels[i], i, anchoringHeight)
		for _, ph := range levelHeaders {
			collected[ph.Header.ID()] = ph
		}

		m := int(params.M)
		if len(levelHeaders) > m {
			anchoringHeight = levelHeaders[len(levelHeaders)-m].Header.Height()
		}
	}

	prefix := make([]PoPowHeader, 0, len(collected)+1)
	prefix = append(prefix, genesisPH)
	for id, ph := range collected {
		if id == genesisID {
			continue
		}
		prefix = append(prefix, ph)
	}
	sort.Slice(prefix, func(i, j int) bool {
		return prefix[i].Header.Height() < prefix[j].Header.Height()
	})

	return &Proof{
		M:          params.M,
		K:          params.K,
		Prefix:     prefix,
		SuffixHead: suffixHead,
		SuffixTail: suffixTail,
	}, nil
}

// collectLevel walks backwards from prevID along a single interlink level,
// following each encountered header's interlink entry at the same level,
// and stops once a header's height drops below anchoringHeight. The
// returned slice is in descending-height (walk) order.
func collectLevel(reader HistoryReader, prevID chainhash.Hash, levelIdx int, anchoringHeight uint32) []PoPowHeader {
	var out []PoPowHeader

	id := prevID
	for {
		ph, ok := reader.PoPowHeaderByID(id)
		if !ok {
			break
		}
		if ph.Header.Height() < anchoringHeight {
			break
		}
		out = append(out, ph)

		nextLevel := levelIdx + 1
		if nextLevel >= len(ph.Interlinks) {
			break
		}
		next := ph.Interlinks[nextLevel]
		if next == id {
			break
		}
		id = next
	}

	return out
}
