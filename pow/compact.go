// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pow computes the superblock (μ-) level of a header from its
// compact-encoded PoW target and its hit, and provides the big.Int
// conversions that arithmetic depends on. The hit itself comes from an
// external PoW scheme and is supplied through the HitFunc collaborator.
package pow

import "math/big"

// compactMantissaMask and friends mirror the standard compact
// "nBits" representation: a one-byte exponent followed by a three-byte
// mantissa, the same encoding CompactToBig/BigToCompact in the teacher's
// blockchain/standalone package converts to and from a big.Int target.
const (
	compactExponentBytes = 1
	compactMantissaMask  = 0x007fffff
	compactNegativeBit   = 0x00800000
)

// CompactToBig converts a compact-encoded difficulty target, as found in a
// header's nBits field, into its equivalent big.Int representation.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & compactMantissaMask
	isNegative := compact&compactNegativeBit != 0
	exponent := uint(compact >> 24)

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}
	return bn
}

// BigToCompact converts a whole number N to a compact representation using
// an unsigned 32-bit number. The compact representation only provides 23
// bits of precision, so values larger than (2^23 - 1) only have the
// most significant digits of the number set while the rest are zeroed.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	if mantissa&compactNegativeBit != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= compactNegativeBit
	}
	return compact
}
