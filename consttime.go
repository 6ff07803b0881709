// Copyright (c) 2020-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "math/bits"

// The helpers in this file operate on 0/1 flags held in machine words rather
// than bools because it is not possible in Go to convert from a bool to a
// numeric value in constant time.

// constantTimeEq returns 1 if a == b or 0 otherwise in constant time.
func constantTimeEq(a, b uint32) uint32 {
	return uint32((uint64(a^b) - 1) >> 63)
}

// constantTimeLess returns 1 if a < b or 0 otherwise in constant time.
func constantTimeLess(a, b uint32) uint32 {
	return uint32((uint64(a) - uint64(b)) >> 63)
}

// constantTimeMin returns min(a,b) in constant time.
func constantTimeMin(a, b uint32) uint32 {
	return b ^ ((a ^ b) & -constantTimeLess(a, b))
}

// isZero64 returns 1 when v is zero or 0 otherwise in constant time.
func isZero64(v uint64) uint64 {
	// v | -v has the top bit set for every value except zero.
	return 1 ^ ((v | -v) >> 63)
}

// limbsIsZero returns 1 when all four limbs are zero or 0 otherwise.
func limbsIsZero(a *[4]uint64) uint64 {
	return isZero64(a[0] | a[1] | a[2] | a[3])
}

// limbsEq returns 1 when the two 256-bit values are equal or 0 otherwise.
func limbsEq(a, b *[4]uint64) uint64 {
	return isZero64((a[0] ^ b[0]) | (a[1] ^ b[1]) | (a[2] ^ b[2]) | (a[3] ^ b[3]))
}

// limbsSelect sets dst to a when flag is 1 and to b when flag is 0.  The flag
// MUST be 0 or 1.
func limbsSelect(dst, a, b *[4]uint64, flag uint64) {
	mask := -flag
	dst[0] = b[0] ^ (mask & (a[0] ^ b[0]))
	dst[1] = b[1] ^ (mask & (a[1] ^ b[1]))
	dst[2] = b[2] ^ (mask & (a[2] ^ b[2]))
	dst[3] = b[3] ^ (mask & (a[3] ^ b[3]))
}

// limbsAdd sets dst = a + b mod 2^256 and returns the carry.
func limbsAdd(dst, a, b *[4]uint64) uint64 {
	var c uint64
	dst[0], c = bits.Add64(a[0], b[0], 0)
	dst[1], c = bits.Add64(a[1], b[1], c)
	dst[2], c = bits.Add64(a[2], b[2], c)
	dst[3], c = bits.Add64(a[3], b[3], c)
	return c
}

// limbsSub sets dst = a - b mod 2^256 and returns the borrow.
func limbsSub(dst, a, b *[4]uint64) uint64 {
	var c uint64
	dst[0], c = bits.Sub64(a[0], b[0], 0)
	dst[1], c = bits.Sub64(a[1], b[1], c)
	dst[2], c = bits.Sub64(a[2], b[2], c)
	dst[3], c = bits.Sub64(a[3], b[3], c)
	return c
}

// mulLimbs sets out to the full product of x and y using schoolbook
// multiplication.  The out slice must have len(x)+len(y) zeroed limbs.  The
// slice lengths are fixed by the callers so the loop bounds never depend on
// the values involved.
func mulLimbs(out, x, y []uint64) {
	for i := range x {
		var carry uint64
		for j := range y {
			hi, lo := bits.Mul64(x[i], y[j])
			var c uint64
			lo, c = bits.Add64(lo, out[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			out[i+j] = lo
			carry = hi
		}
		out[i+len(y)] = carry
	}
}

// limbsFromBytes packs a 32-byte big-endian value into little-endian limbs.
func limbsFromBytes(dst *[4]uint64, b *[32]byte) {
	for i := 0; i < 4; i++ {
		off := 24 - 8*i
		dst[i] = uint64(b[off])<<56 | uint64(b[off+1])<<48 |
			uint64(b[off+2])<<40 | uint64(b[off+3])<<32 |
			uint64(b[off+4])<<24 | uint64(b[off+5])<<16 |
			uint64(b[off+6])<<8 | uint64(b[off+7])
	}
}

// limbsToBytes unpacks little-endian limbs into a 32-byte big-endian value.
// The target slice MUST have at least 32 bytes available.
func limbsToBytes(b []byte, src *[4]uint64) {
	for i := 0; i < 4; i++ {
		off := 24 - 8*i
		v := src[i]
		b[off] = byte(v >> 56)
		b[off+1] = byte(v >> 48)
		b[off+2] = byte(v >> 40)
		b[off+3] = byte(v >> 32)
		b[off+4] = byte(v >> 24)
		b[off+5] = byte(v >> 16)
		b[off+6] = byte(v >> 8)
		b[off+7] = byte(v)
	}
}

// zero32 is an array of 32 zero bytes used to clear buffers.
var zero32 [32]byte

// zeroArray32 zeroes the provided 32-byte buffer.
func zeroArray32(b *[32]byte) {
	copy(b[:], zero32[:])
}
