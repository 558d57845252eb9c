// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package testutils provides a deterministic, chaingen-style chain builder
// and an in-memory HistoryReader, standing in for the teacher's
// blockchain/v4/chaingen module and its on-disk header database. Headers
// here carry a fixed, caller-assigned μ-level instead of running a real
// PoW scheme, exactly as spec'd for the end-to-end test scenarios ("use a
// deterministic mock PoW that assigns fixed μ-levels per height").
package testutils

import (
	"encoding/binary"
	"errors"

	"github.com/ergolabs/nipopow-core/chainhash"
)

var errBadMockHeaderLength = errors.New("testutils: malformed mock header encoding")

// Header is a minimal, self-contained implementation of popow.Header
// sufficient for tests: a height, a parent id, a fixed nBits, and an
// explicit "level" used by the mock hit function below instead of a real
// PoW evaluation.
type Header struct {
	height      uint32
	parentID    chainhash.Hash
	id          chainhash.Hash
	genesis     bool
	nBits       uint32
	extensionID chainhash.Hash
	level       int
}

// ID returns the header's id.
func (h *Header) ID() chainhash.Hash { return h.id }

// ParentID returns the header's parent id.
func (h *Header) ParentID() chainhash.Hash { return h.parentID }

// Height returns the header's height.
func (h *Header) Height() uint32 { return h.height }

// NBits returns the header's compact target. All mock headers share one
// fixed target; level is controlled directly instead.
func (h *Header) NBits() uint32 { return h.nBits }

// ExtensionID returns the header's extension commitment id.
func (h *Header) ExtensionID() chainhash.Hash { return h.extensionID }

// IsGenesis reports whether this is the chain's genesis header.
func (h *Header) IsGenesis() bool { return h.genesis }

// mockHeaderEncodedSize is the fixed size of Header's synthetic encoding:
// id, parentID, extensionID (32 bytes each), height, nBits, level (4 bytes
// each), and a one-byte genesis flag.
const mockHeaderEncodedSize = 3*chainhash.HashSize + 3*4 + 1

// Bytes returns a deterministic, synthetic encoding carrying every field
// needed to reconstruct an identical Header, so wire round-trip tests can
// decode back a fully equal value without consulting a real header store.
func (h *Header) Bytes() []byte {
	buf := make([]byte, mockHeaderEncodedSize)
	off := 0
	copy(buf[off:], h.id[:])
	off += chainhash.HashSize
	copy(buf[off:], h.parentID[:])
	off += chainhash.HashSize
	copy(buf[off:], h.extensionID[:])
	off += chainhash.HashSize
	binary.BigEndian.PutUint32(buf[off:], h.height)
	off += 4
	binary.BigEndian.PutUint32(buf[off:], h.nBits)
	off += 4
	binary.BigEndian.PutUint32(buf[off:], uint32(h.level))
	off += 4
	if h.genesis {
		buf[off] = 1
	}
	return buf
}

// DecodeHeader reconstructs a Header from the encoding Bytes produces. It
// implements the decode half of a wire.HeaderCodec for tests.
func DecodeHeader(b []byte) (*Header, error) {
	if len(b) != mockHeaderEncodedSize {
		return nil, errBadMockHeaderLength
	}
	h := &Header{}
	off := 0
	copy(h.id[:], b[off:])
	off += chainhash.HashSize
	copy(h.parentID[:], b[off:])
	off += chainhash.HashSize
	copy(h.extensionID[:], b[off:])
	off += chainhash.HashSize
	h.height = binary.BigEndian.Uint32(b[off:])
	off += 4
	h.nBits = binary.BigEndian.Uint32(b[off:])
	off += 4
	h.level = int(binary.BigEndian.Uint32(b[off:]))
	off += 4
	h.genesis = b[off] == 1
	return h, nil
}

// Level returns the header's fixed mock μ-level; used by MockHitFunc.
func (h *Header) Level() int { return h.level }

// idFromHeight derives a deterministic, collision-free id for a mock
// header purely from its height, so tests never depend on hashing.
func idFromHeight(height uint32) chainhash.Hash {
	var id chainhash.Hash
	binary.BigEndian.PutUint32(id[HashSizeOffset:], height+1)
	return id
}

// HashSizeOffset places the height-derived bytes at the end of the id so
// the leading bytes stay zero and ids sort the same way heights do, which
// makes test failure output easier to read.
const HashSizeOffset = chainhash.HashSize - 4
