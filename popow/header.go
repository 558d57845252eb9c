// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package popow implements the NiPoPoW core: the interlink-aware header
// view, the recursive prover, the bestArg scorer and comparator, and the
// proof validator. The block/header database, the PoW hit-evaluation
// scheme, and anything past these typed values is a collaborator reached
// only through the interfaces declared here.
package popow

import (
	"github.com/ergolabs/nipopow-core/chainhash"
	"github.com/ergolabs/nipopow-core/pow"
)

// Header is the view this core needs of an otherwise opaque header value.
// The concrete type, its storage, and its byte encoding belong to the
// block/header database collaborator.
type Header interface {
	pow.Header

	// ID returns the header's own id.
	ID() chainhash.Hash

	// ParentID returns the id of the header's parent. It is the zero
	// hash for the genesis header.
	ParentID() chainhash.Hash

	// Height returns the header's height, zero for genesis.
	Height() uint32

	// ExtensionID returns the commitment id of the header's extension
	// section, where the packed interlink fields live.
	ExtensionID() chainhash.Hash

	// Bytes returns the header's own deterministic encoding.
	Bytes() []byte
}

// PoPowHeader pairs a header with its unpacked interlink vector.
type PoPowHeader struct {
	Header     Header
	Interlinks []chainhash.Hash
}

// NewPoPowHeader validates and constructs a PoPowHeader. interlinks must be
// non-empty and its first entry is expected to be the chain's genesis id,
// per the data model invariant; the genesis id itself is supplied by the
// caller since this core has no independent notion of "the" genesis.
func NewPoPowHeader(h Header, interlinks []chainhash.Hash) (PoPowHeader, error) {
	if len(interlinks) == 0 {
		return PoPowHeader{}, ruleError(ErrMalformedInterlinks,
			"interlink vector must have at least one entry")
	}
	return PoPowHeader{Header: h, Interlinks: interlinks}, nil
}

// GenesisID returns interlinks[0], the chain's genesis id.
func (ph PoPowHeader) GenesisID() chainhash.Hash {
	return ph.Interlinks[0]
}
