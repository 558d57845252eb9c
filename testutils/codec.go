// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package testutils

import "github.com/ergolabs/nipopow-core/popow"

// HeaderCodec implements wire.HeaderCodec for the mock Header type. It is
// structurally compatible with wire.HeaderCodec without importing the wire
// package, keeping testutils usable from wire's own tests without a cycle.
type HeaderCodec struct{}

// Encode returns h's own byte encoding.
func (HeaderCodec) Encode(h popow.Header) []byte {
	return h.Bytes()
}

// Decode reconstructs a mock Header from bytes produced by Encode.
func (HeaderCodec) Decode(b []byte) (popow.Header, error) {
	h, err := DecodeHeader(b)
	if err != nil {
		return nil, err
	}
	return h, nil
}
