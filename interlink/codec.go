// Copyright (c) 2016-2017 The btcsuite developers
// Copyright (c) 2018 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package interlink packs and unpacks the interlink vector into the
// key-value fields of a header's extension section, and locates the Merkle
// inclusion proof for a single interlink entry. The duplicate-run-length
// encoding and the explicit sentinel errors follow the shape of the
// teacher's gcs package: small, self-contained codecs with named Err*
// values instead of ad hoc fmt.Errorf strings at call sites.
package interlink

import (
	"errors"

	"github.com/ergolabs/nipopow-core/chainhash"
)

// PrefixByte is the reserved extension namespace byte for interlink fields.
// It must agree with the network-wide constant used by the wider protocol;
// this core treats it as a fixed, compiled-in value.
const PrefixByte = 0x01

// fieldValueSize is the fixed size of a packed interlink field's value:
// one count byte followed by a 32-byte id.
const fieldValueSize = 1 + chainhash.HashSize

// ErrMalformedInterlinks indicates a packed interlink value did not have
// the required 33-byte shape, or packing produced more groups than the
// single-byte group index can address.
var ErrMalformedInterlinks = errors.New("interlink: malformed interlink field")

// Field is a single extension key-value pair. Key[0] is always PrefixByte
// for a field produced by Pack; Key[1] is the field's group index.
type Field struct {
	Key   [2]byte
	Value []byte
}

// Pack run-length encodes ids into extension fields. Consecutive equal ids
// are represented once with a count byte; runs longer than 255 are split
// across multiple consecutive groups, since the count byte is a single
// unsigned byte.
func Pack(ids []chainhash.Hash) ([]Field, error) {
	var fields []Field
	groupIndex := 0

	i := 0
	for i < len(ids) {
		j := i + 1
		for j < len(ids) && ids[j] == ids[i] {
			j++
		}
		runLen := j - i

		for runLen > 0 {
			count := runLen
			if count > 255 {
				count = 255
			}
			if groupIndex > 255 {
				return nil, ErrMalformedInterlinks
			}

			value := make([]byte, fieldValueSize)
			value[0] = byte(count)
			copy(value[1:], ids[i][:])

			fields = append(fields, Field{
				Key:   [2]byte{PrefixByte, byte(groupIndex)},
				Value: value,
			})

			groupIndex++
			runLen -= count
		}

		i = j
	}

	return fields, nil
}

// Unpack recovers the original ordered interlink sequence from an
// unordered set of extension key-value pairs. Fields are reordered by
// their group index (Key[1]) before expansion, which is how the original
// packing order survives an unordered transport.
func Unpack(fields []Field) ([]chainhash.Hash, error) {
	var relevant []Field
	for _, f := range fields {
		if f.Key[0] != PrefixByte {
			continue
		}
		if len(f.Value) != fieldValueSize {
			return nil, ErrMalformedInterlinks
		}
		relevant = append(relevant, f)
	}

	sortByGroupIndex(relevant)

	var out []chainhash.Hash
	for _, f := range relevant {
		dupCount := int(f.Value[0])
		var id chainhash.Hash
		copy(id[:], f.Value[1:fieldValueSize])
		for k := 0; k < dupCount; k++ {
			out = append(out, id)
		}
	}
	return out, nil
}

// sortByGroupIndex performs a small insertion sort on Key[1]; the number of
// interlink groups is bounded by the maximum μ-level, which in practice
// never approaches a size where an O(n^2) sort matters.
func sortByGroupIndex(fields []Field) {
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j-1].Key[1] > fields[j].Key[1]; j-- {
			fields[j-1], fields[j] = fields[j], fields[j-1]
		}
	}
}
