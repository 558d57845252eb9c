// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package popow

import "github.com/ergolabs/nipopow-core/chainhash"

// HeadersChain returns the full header sequence the proof asserts:
// prefix headers, then the suffix head, then the suffix tail.
func (p *PoPowProof) HeadersChain() []Header {
	out := make([]Header, 0, len(p.Prefix)+1+len(p.SuffixTail))
	for _, ph := range p.Prefix {
		out = append(out, ph.Header)
	}
	out = append(out, p.SuffixHead.Header)
	out = append(out, p.SuffixTail...)
	return out
}

// IsValid reports whether the proof is internally consistent: height
// monotone across its full header sequence, and connected both by
// interlink (across prefix ++ suffixHead) and by parent id (across
// suffixHead ++ suffixTail). Invalidity is silent — it never allocates an
// error — so higher layers decide whether to penalize whoever sent it.
func (p *PoPowProof) IsValid() bool {
	chain := p.HeadersChain()
	if len(chain) < 2 {
		return len(chain) == 1 && p.K == 1 && len(p.SuffixTail) == 0
	}

	for i := 1; i < len(chain); i++ {
		if chain[i-1].Height() >= chain[i].Height() {
			return false
		}
	}

	prefixAndHead := make([]PoPowHeader, 0, len(p.Prefix)+1)
	prefixAndHead = append(prefixAndHead, p.Prefix...)
	prefixAndHead = append(prefixAndHead, p.SuffixHead)
	for i := 1; i < len(prefixAndHead); i++ {
		prev := prefixAndHead[i-1].Header
		next := prefixAndHead[i]
		if !interlinksContain(next.Interlinks, prev.ID()) {
			return false
		}
	}

	suffix := make([]Header, 0, 1+len(p.SuffixTail))
	suffix = append(suffix, p.SuffixHead.Header)
	suffix = append(suffix, p.SuffixTail...)
	for i := 1; i < len(suffix); i++ {
		if suffix[i].ParentID() != suffix[i-1].ID() {
			return false
		}
	}

	return true
}

func interlinksContain(interlinks []chainhash.Hash, id chainhash.Hash) bool {
	for _, h := range interlinks {
		if h == id {
			return true
		}
	}
	return false
}
