// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package popow

import "github.com/ergolabs/nipopow-core/chainhash"

// HistoryReader is the synchronous view of the header database the prover
// and proof cache read from. Its implementation — and any I/O, caching, or
// snapshot semantics it relies on — belongs entirely to a collaborator
// outside this core; the reader is assumed to hand back a single
// consistent snapshot for the lifetime of one prove* call.
type HistoryReader interface {
	// HeadersHeight returns the height of the best known header.
	HeadersHeight() uint32

	// BestHeader returns the current best header, or false if the
	// history has no headers at all.
	BestHeader() (Header, bool)

	// BestHeaderIDAtHeight returns the id of the best chain's header at
	// the given height, or false if no such header exists.
	BestHeaderIDAtHeight(height uint32) (chainhash.Hash, bool)

	// PoPowHeaderByID returns the header and its unpacked interlinks for
	// the given id, or false if unknown.
	PoPowHeaderByID(id chainhash.Hash) (PoPowHeader, bool)

	// PoPowHeaderByHeight returns the header and its unpacked interlinks
	// for the best chain's header at the given height, or false if no
	// such header exists.
	PoPowHeaderByHeight(height uint32) (PoPowHeader, bool)

	// LastHeaders returns the last count headers of the best chain, in
	// ascending height order. It may return fewer than count if the
	// chain is shorter.
	LastHeaders(count uint32) []Header

	// BestHeadersAfter returns up to count headers that follow h on the
	// best chain, in ascending height order.
	BestHeadersAfter(h Header, count uint32) []Header
}
