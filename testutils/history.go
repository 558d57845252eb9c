// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package testutils

import (
	"github.com/ergolabs/nipopow-core/chainhash"
	"github.com/ergolabs/nipopow-core/popow"
)

// MockHistoryReader is an in-memory popow.HistoryReader over a chain built
// by ChainGen, standing in for the on-disk header database this core
// treats as an external collaborator.
type MockHistoryReader struct {
	chain []popow.PoPowHeader
	byID  map[chainhash.Hash]int
}

// NewMockHistoryReader indexes chain for lookup by id and height.
func NewMockHistoryReader(chain []popow.PoPowHeader) *MockHistoryReader {
	byID := make(map[chainhash.Hash]int, len(chain))
	for i, ph := range chain {
		byID[ph.Header.ID()] = i
	}
	return &MockHistoryReader{chain: chain, byID: byID}
}

// HeadersHeight returns the height of the best known header.
func (r *MockHistoryReader) HeadersHeight() uint32 {
	if len(r.chain) == 0 {
		return 0
	}
	return r.chain[len(r.chain)-1].Header.Height()
}

// BestHeader returns the chain's tip header.
func (r *MockHistoryReader) BestHeader() (popow.Header, bool) {
	if len(r.chain) == 0 {
		return nil, false
	}
	return r.chain[len(r.chain)-1].Header, true
}

// BestHeaderIDAtHeight returns the id of the header at the given height.
func (r *MockHistoryReader) BestHeaderIDAtHeight(height uint32) (chainhash.Hash, bool) {
	if int(height) >= len(r.chain) {
		return chainhash.Hash{}, false
	}
	return r.chain[height].Header.ID(), true
}

// PoPowHeaderByID returns the header and interlinks for id.
func (r *MockHistoryReader) PoPowHeaderByID(id chainhash.Hash) (popow.PoPowHeader, bool) {
	i, ok := r.byID[id]
	if !ok {
		return popow.PoPowHeader{}, false
	}
	return r.chain[i], true
}

// PoPowHeaderByHeight returns the header and interlinks at the given
// height.
func (r *MockHistoryReader) PoPowHeaderByHeight(height uint32) (popow.PoPowHeader, bool) {
	if int(height) >= len(r.chain) {
		return popow.PoPowHeader{}, false
	}
	return r.chain[height], true
}

// LastHeaders returns the last count headers, ascending by height.
func (r *MockHistoryReader) LastHeaders(count uint32) []popow.Header {
	n := int(count)
	if n > len(r.chain) {
		n = len(r.chain)
	}
	out := make([]popow.Header, 0, n)
	for _, ph := range r.chain[len(r.chain)-n:] {
		out = append(out, ph.Header)
	}
	return out
}

// BestHeadersAfter returns up to count headers following h, ascending by
// height.
func (r *MockHistoryReader) BestHeadersAfter(h popow.Header, count uint32) []popow.Header {
	i, ok := r.byID[h.ID()]
	if !ok {
		return nil
	}
	start := i + 1
	end := start + int(count)
	if end > len(r.chain) {
		end = len(r.chain)
	}
	if start >= end {
		return nil
	}
	out := make([]popow.Header, 0, end-start)
	for _, ph := range r.chain[start:end] {
		out = append(out, ph.Header)
	}
	return out
}
