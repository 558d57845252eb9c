// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"

	"github.com/ergolabs/nipopow-core/chainhash"
	"github.com/ergolabs/nipopow-core/popow"
)

// Modifier type ids for the two wire-level proof variants, matching the
// values the wider protocol reserves for them.
const (
	ProofTypeID       = 105
	ProofPrefixTypeID = 111
)

// HeaderCodec encodes and decodes the otherwise-opaque Header type this
// core treats as external. Its implementation belongs to whatever defines
// the concrete header (the block/header database collaborator); this core
// only needs to round-trip bytes through it.
type HeaderCodec interface {
	Encode(h popow.Header) []byte
	Decode(b []byte) (popow.Header, error)
}

// EncodePoPowHeader writes a PoPowHeader as:
//
//	uint(headerBytesLen) | headerBytes… | uint(linksCount) | linkId[32]·linksCount
func EncodePoPowHeader(w io.Writer, ph popow.PoPowHeader) error {
	if err := PutBytes(w, ph.Header.Bytes()); err != nil {
		return err
	}
	if err := PutUint(w, uint64(len(ph.Interlinks))); err != nil {
		return err
	}
	for _, id := range ph.Interlinks {
		if _, err := w.Write(id[:]); err != nil {
			return err
		}
	}
	return nil
}

// DecodePoPowHeader reads a PoPowHeader written by EncodePoPowHeader.
func DecodePoPowHeader(r io.Reader, codec HeaderCodec) (popow.PoPowHeader, error) {
	headerBytes, err := GetBytes(r)
	if err != nil {
		return popow.PoPowHeader{}, err
	}
	h, err := codec.Decode(headerBytes)
	if err != nil {
		return popow.PoPowHeader{}, ErrMalformedProof
	}

	linksCount, err := GetUint(r)
	if err != nil {
		return popow.PoPowHeader{}, err
	}
	if linksCount > MaxLength {
		return popow.PoPowHeader{}, ErrMalformedProof
	}

	interlinks := make([]chainhash.Hash, linksCount)
	for i := range interlinks {
		if _, err := io.ReadFull(r, interlinks[i][:]); err != nil {
			return popow.PoPowHeader{}, ErrMalformedProof
		}
	}

	return popow.PoPowHeader{Header: h, Interlinks: interlinks}, nil
}

// EncodeProof writes a PoPowProof as:
//
//	uint(m) | uint(k) |
//	uint(prefixCount) | { uint(hLen) | PoPowHeaderBytes(hLen) } · prefixCount |
//	uint(suffixHeadLen) | PoPowHeaderBytes(suffixHeadLen) |
//	uint(suffixTailCount) | { uint(hLen) | HeaderBytes(hLen) } · suffixTailCount
//
// Each PoPowHeader payload is length-prefixed a second time at this level
// (on top of the header length inside its own encoding) so a parser can
// skip an inner value it doesn't recognize without decoding it, matching
// the nested length-prefix shape of the teacher's message codecs. Suffix
// tail headers carry a single length prefix.
func EncodeProof(w io.Writer, p *popow.Proof) error {
	if err := PutUint(w, uint64(p.M)); err != nil {
		return err
	}
	if err := PutUint(w, uint64(p.K)); err != nil {
		return err
	}

	if err := PutUint(w, uint64(len(p.Prefix))); err != nil {
		return err
	}
	for _, ph := range p.Prefix {
		if err := putLengthPrefixed(w, func(buf *bytes.Buffer) error {
			return EncodePoPowHeader(buf, ph)
		}); err != nil {
			return err
		}
	}

	if err := putLengthPrefixed(w, func(buf *bytes.Buffer) error {
		return EncodePoPowHeader(buf, p.SuffixHead)
	}); err != nil {
		return err
	}

	if err := PutUint(w, uint64(len(p.SuffixTail))); err != nil {
		return err
	}
	for _, h := range p.SuffixTail {
		if err := PutBytes(w, h.Bytes()); err != nil {
			return err
		}
	}

	return nil
}

func putLengthPrefixed(w io.Writer, encode func(buf *bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return err
	}
	return PutBytes(w, buf.Bytes())
}

// DecodeProof reads a PoPowProof written by EncodeProof.
func DecodeProof(r io.Reader, codec HeaderCodec) (*popow.Proof, error) {
	m, err := GetUint(r)
	if err != nil {
		return nil, err
	}
	k, err := GetUint(r)
	if err != nil {
		return nil, err
	}

	prefixCount, err := GetUint(r)
	if err != nil {
		return nil, err
	}
	if prefixCount > MaxLength {
		return nil, ErrMalformedProof
	}

	prefix := make([]popow.PoPowHeader, prefixCount)
	for i := range prefix {
		raw, err := GetBytes(r)
		if err != nil {
			return nil, err
		}
		ph, err := DecodePoPowHeader(bytes.NewReader(raw), codec)
		if err != nil {
			return nil, err
		}
		prefix[i] = ph
	}

	rawHead, err := GetBytes(r)
	if err != nil {
		return nil, err
	}
	suffixHead, err := DecodePoPowHeader(bytes.NewReader(rawHead), codec)
	if err != nil {
		return nil, err
	}

	suffixTailCount, err := GetUint(r)
	if err != nil {
		return nil, err
	}
	if suffixTailCount > MaxLength {
		return nil, ErrMalformedProof
	}

	suffixTail := make([]popow.Header, suffixTailCount)
	for i := range suffixTail {
		raw, err := GetBytes(r)
		if err != nil {
			return nil, err
		}
		h, err := codec.Decode(raw)
		if err != nil {
			return nil, ErrMalformedProof
		}
		suffixTail[i] = h
	}

	return &popow.Proof{
		M:          uint32(m),
		K:          uint32(k),
		Prefix:     prefix,
		SuffixHead: suffixHead,
		SuffixTail: suffixTail,
	}, nil
}

// EncodeProofPrefix writes a PoPowProofPrefix as:
//
//	uint(m) | suffixId[32] | uint(chainCount) | { uint(hLen) | PoPowHeaderBytes(hLen) } · chainCount
func EncodeProofPrefix(w io.Writer, p *popow.ProofPrefix) error {
	if err := PutUint(w, uint64(p.M)); err != nil {
		return err
	}
	if _, err := w.Write(p.SuffixID[:]); err != nil {
		return err
	}
	if err := PutUint(w, uint64(len(p.Chain))); err != nil {
		return err
	}
	for _, ph := range p.Chain {
		if err := putLengthPrefixed(w, func(buf *bytes.Buffer) error {
			return EncodePoPowHeader(buf, ph)
		}); err != nil {
			return err
		}
	}
	return nil
}

// DecodeProofPrefix reads a PoPowProofPrefix written by EncodeProofPrefix.
func DecodeProofPrefix(r io.Reader, codec HeaderCodec) (*popow.ProofPrefix, error) {
	m, err := GetUint(r)
	if err != nil {
		return nil, err
	}

	var suffixID chainhash.Hash
	if _, err := io.ReadFull(r, suffixID[:]); err != nil {
		return nil, ErrMalformedProof
	}

	chainCount, err := GetUint(r)
	if err != nil {
		return nil, err
	}
	if chainCount > MaxLength {
		return nil, ErrMalformedProof
	}

	chainHeaders := make([]popow.PoPowHeader, chainCount)
	for i := range chainHeaders {
		raw, err := GetBytes(r)
		if err != nil {
			return nil, err
		}
		ph, err := DecodePoPowHeader(bytes.NewReader(raw), codec)
		if err != nil {
			return nil, err
		}
		chainHeaders[i] = ph
	}

	return &popow.ProofPrefix{
		M:        uint32(m),
		Chain:    chainHeaders,
		SuffixID: suffixID,
	}, nil
}
