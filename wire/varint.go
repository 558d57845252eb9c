// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the bit-exact, length-prefixed binary encoding
// for PoPowHeader, PoPowProof, and PoPowProofPrefix. Every integer is a
// LEB128-style unsigned varint, and every variable-length field is
// length-prefixed with one, exactly as spec'd; the io.Reader/io.Writer
// shape and the "reject any length that would exceed the remaining
// buffer" discipline follow the teacher's wire package (see
// ReadVarBytes/WriteVarBytes in wire/msgcfilter.go).
package wire

import (
	"errors"
	"io"
)

// ErrMalformedProof is returned when a length prefix exceeds the
// remaining buffer, a field is truncated, or an inner value fails its own
// parser.
var ErrMalformedProof = errors.New("wire: malformed proof encoding")

// MaxLength caps every length-prefixed field this package decodes, guarding
// against a peer claiming an implausibly large count and forcing a huge
// allocation before any byte of the claimed payload has even arrived.
const MaxLength = 1 << 24

// PutUint writes v to w as an unsigned LEB128 varint: seven bits per byte,
// high bit set on every byte but the last.
func PutUint(w io.Writer, v uint64) error {
	var buf [10]byte
	n := 0
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if v == 0 {
			break
		}
	}
	_, err := w.Write(buf[:n])
	return err
}

// GetUint reads an unsigned LEB128 varint from r.
func GetUint(r io.Reader) (uint64, error) {
	var result uint64
	var shift uint
	var b [1]byte

	for {
		if shift >= 64 {
			return 0, ErrMalformedProof
		}
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, ErrMalformedProof
		}
		result |= uint64(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			break
		}
		shift += 7
	}
	return result, nil
}

// PutBytes writes the length-prefixed byte slice uint(len(b)) || b.
func PutBytes(w io.Writer, b []byte) error {
	if err := PutUint(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// GetBytes reads a length-prefixed byte slice, rejecting any length claim
// larger than MaxLength so a hostile length prefix can't force an
// unbounded allocation.
func GetBytes(r io.Reader) ([]byte, error) {
	n, err := GetUint(r)
	if err != nil {
		return nil, err
	}
	if n > MaxLength {
		return nil, ErrMalformedProof
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ErrMalformedProof
	}
	return buf, nil
}
