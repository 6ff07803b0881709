// Copyright (c) 2020-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"encoding/hex"
	"fmt"
	"math/bits"
)

var (
	// curveOrder is the secp256k1 group order N as little-endian 64-bit
	// limbs.
	curveOrder = [4]uint64{
		0xbfd25e8cd0364141, 0xbaaedce6af48a03b,
		0xfffffffffffffffe, 0xffffffffffffffff,
	}

	// orderComplement is 2^256 - N.  It only occupies 129 bits, so the top
	// limb that would be zero is omitted.
	orderComplement = [3]uint64{
		0x402da1732fc9bebf, 0x4551231950b75fc4, 0x1,
	}

	// halfOrder is floor(N/2).
	halfOrder = [4]uint64{
		0xdfe92f46681b20a0, 0x5d576e7357a4501d,
		0xffffffffffffffff, 0x7fffffffffffffff,
	}

	// orderMinusTwo is N-2, the exponent used for inversion.
	orderMinusTwo = [4]uint64{
		0xbfd25e8cd036413f, 0xbaaedce6af48a03b,
		0xfffffffffffffffe, 0xffffffffffffffff,
	}
)

// ModNScalar implements optimized 256-bit constant-time fixed-precision
// arithmetic over the secp256k1 group order.  This means all arithmetic is
// performed modulo:
//
//	0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141
//
// Private keys, nonces and signature components are all values of this type,
// so every operation other than String runs in constant time.  The value is
// always kept in the canonical range [0, N).
type ModNScalar struct {
	// The scalar is represented as four 64-bit limbs in base 2^64 with the
	// least significant limb first.
	n [4]uint64
}

// String returns the scalar as a human-readable hex string.
//
// This is NOT constant time.
func (s ModNScalar) String() string {
	b := s.Bytes()
	return hex.EncodeToString(b[:])
}

// Set sets the scalar equal to a copy of the passed one in constant time.
//
// The scalar is returned to support chaining.  This enables syntax like:
// s := new(ModNScalar).Set(s2).Add(s3) so that s = s2 + s3 where s2 is not
// modified.
func (s *ModNScalar) Set(val *ModNScalar) *ModNScalar {
	*s = *val
	return s
}

// Zero sets the scalar to zero in constant time.  A newly created scalar is
// already set to zero.  This function can be useful to clear an existing
// scalar for reuse or to wipe secret material.
func (s *ModNScalar) Zero() {
	s.n[0] = 0
	s.n[1] = 0
	s.n[2] = 0
	s.n[3] = 0
}

// IsZeroBit returns 1 when the scalar is equal to zero or 0 otherwise in
// constant time.
func (s *ModNScalar) IsZeroBit() uint32 {
	return uint32(limbsIsZero(&s.n))
}

// IsZero returns whether or not the scalar is equal to zero in constant time.
func (s *ModNScalar) IsZero() bool {
	return s.IsZeroBit() == 1
}

// SetInt sets the scalar to the passed integer in constant time.  This is a
// convenience function since it is fairly common to perform some arithmetic
// with small native integers.
func (s *ModNScalar) SetInt(ui uint32) *ModNScalar {
	s.n = [4]uint64{uint64(ui), 0, 0, 0}
	return s
}

// reduce256 subtracts the group order from the scalar when it is greater than
// or equal to it and returns 1 when it did or 0 otherwise.  The value MUST be
// less than 2N, which always holds for a 256-bit value since N > 2^255.
func (s *ModNScalar) reduce256() uint32 {
	var t [4]uint64
	borrow := limbsSub(&t, &s.n, &curveOrder)
	overflow := borrow ^ 1
	limbsSelect(&s.n, &t, &s.n, overflow)
	return uint32(overflow)
}

// SetBytes interprets the provided array as a 256-bit big-endian unsigned
// integer, reduces it modulo the group order, sets the scalar to the result,
// and returns either 1 if it was reduced (aka it overflowed) or 0 otherwise in
// constant time.
func (s *ModNScalar) SetBytes(b *[32]byte) uint32 {
	limbsFromBytes(&s.n, b)
	return s.reduce256()
}

// SetByteSlice interprets the provided slice as a 256-bit big-endian unsigned
// integer (meaning it is truncated to the first 32 bytes), reduces it modulo
// the group order, sets the scalar to the result, and returns whether or not
// the resulting truncated 256-bit integer overflowed in constant time.
//
// Note that since passing a slice with more than 32 bytes is truncated, it is
// possible that the truncated value is less than the order of the curve and
// hence it will not be reported as having overflowed in that case.
func (s *ModNScalar) SetByteSlice(b []byte) bool {
	var b32 [32]byte
	b = b[:constantTimeMin(uint32(len(b)), 32)]
	copy(b32[32-len(b):], b)
	result := s.SetBytes(&b32)
	zeroArray32(&b32)
	return result != 0
}

// ParseModNScalar decodes a 32-byte big-endian scalar without reducing it.
// Inputs of any other length fail with ErrScalarInvalidLen and values greater
// than or equal to the group order fail with ErrScalarOverflow.
func ParseModNScalar(b []byte) (ModNScalar, error) {
	var s ModNScalar
	if len(b) != 32 {
		str := fmt.Sprintf("malformed scalar: invalid length: %d != 32", len(b))
		return s, makeError(ErrScalarInvalidLen, str)
	}
	if s.SetByteSlice(b) {
		s.Zero()
		str := "malformed scalar: value >= group order"
		return s, makeError(ErrScalarOverflow, str)
	}
	return s, nil
}

// PutBytesUnchecked unpacks the scalar to a 32-byte big-endian value directly
// into the passed byte slice in constant time.  The target slice must have
// at least 32 bytes available or it will panic.
func (s *ModNScalar) PutBytesUnchecked(b []byte) {
	limbsToBytes(b, &s.n)
}

// PutBytes unpacks the scalar to a 32-byte big-endian value using the passed
// byte array in constant time.
func (s *ModNScalar) PutBytes(b *[32]byte) {
	limbsToBytes(b[:], &s.n)
}

// Bytes unpacks the scalar to a 32-byte big-endian value in constant time.
func (s *ModNScalar) Bytes() [32]byte {
	var b [32]byte
	limbsToBytes(b[:], &s.n)
	return b
}

// IsOddBit returns 1 when the scalar is an odd number or 0 otherwise in
// constant time.
func (s *ModNScalar) IsOddBit() uint32 {
	return uint32(s.n[0] & 1)
}

// IsOdd returns whether or not the scalar is an odd number in constant time.
func (s *ModNScalar) IsOdd() bool {
	return s.IsOddBit() == 1
}

// EqualsBit returns 1 when the two scalars are the same or 0 otherwise in
// constant time.
func (s *ModNScalar) EqualsBit(val *ModNScalar) uint32 {
	return uint32(limbsEq(&s.n, &val.n))
}

// Equals returns whether or not the two scalars are the same in constant time.
func (s *ModNScalar) Equals(val *ModNScalar) bool {
	return s.EqualsBit(val) == 1
}

// CMov sets the scalar to val when flag is 1 and leaves it unchanged when
// flag is 0.  The flag MUST be 0 or 1.
func (s *ModNScalar) CMov(val *ModNScalar, flag uint32) *ModNScalar {
	limbsSelect(&s.n, &val.n, &s.n, uint64(flag))
	return s
}

// Add2 adds the passed two scalars together modulo the group order in
// constant time and stores the result in s.
//
// The scalar is returned to support chaining.  This enables syntax like:
// s3.Add2(s, s2).Add(s4) so that s3 = s + s2 + s4.
func (s *ModNScalar) Add2(val1, val2 *ModNScalar) *ModNScalar {
	var sum, t [4]uint64
	carry := limbsAdd(&sum, &val1.n, &val2.n)
	borrow := limbsSub(&t, &sum, &curveOrder)

	// The reduced value is needed when the sum wrapped past 2^256 or when it
	// did not wrap but is still at least N.
	limbsSelect(&s.n, &t, &sum, carry|(borrow^1))
	return s
}

// Add adds the passed scalar to the existing one modulo the group order in
// constant time and stores the result in s.
func (s *ModNScalar) Add(val *ModNScalar) *ModNScalar {
	return s.Add2(s, val)
}

// NegateVal negates the passed scalar modulo the group order and stores the
// result in s in constant time.  Zero negates to zero.
func (s *ModNScalar) NegateVal(val *ModNScalar) *ModNScalar {
	var t [4]uint64
	limbsSub(&t, &curveOrder, &val.n)
	var zero [4]uint64
	limbsSelect(&s.n, &zero, &t, limbsIsZero(&val.n))
	return s
}

// Negate negates the scalar modulo the group order in constant time.
func (s *ModNScalar) Negate() *ModNScalar {
	return s.NegateVal(s)
}

// Sub2 subtracts val2 from val1 modulo the group order in constant time and
// stores the result in s.
func (s *ModNScalar) Sub2(val1, val2 *ModNScalar) *ModNScalar {
	var neg ModNScalar
	neg.NegateVal(val2)
	return s.Add2(val1, &neg)
}

// reduce512 reduces the passed 512-bit little-endian product modulo the group
// order and stores the result in s.
func (s *ModNScalar) reduce512(t *[8]uint64) {
	// Since 2^256 = 2^256 - N (mod N), the value t = lo + hi*2^256 is
	// congruent to lo + hi*C where C = 2^256 - N is a 129-bit constant.
	// Folding repeatedly shrinks the value: 512 -> 386 -> 260 -> 257 bits,
	// and one last fold of the final carry leaves a 256-bit value.
	var c uint64

	var m1 [7]uint64
	mulLimbs(m1[:], t[4:8], orderComplement[:])
	var r1 [7]uint64
	r1[0], c = bits.Add64(t[0], m1[0], 0)
	r1[1], c = bits.Add64(t[1], m1[1], c)
	r1[2], c = bits.Add64(t[2], m1[2], c)
	r1[3], c = bits.Add64(t[3], m1[3], c)
	r1[4], c = bits.Add64(m1[4], 0, c)
	r1[5], c = bits.Add64(m1[5], 0, c)
	r1[6], _ = bits.Add64(m1[6], 0, c)

	var m2 [6]uint64
	mulLimbs(m2[:], r1[4:7], orderComplement[:])
	var r2 [5]uint64
	r2[0], c = bits.Add64(r1[0], m2[0], 0)
	r2[1], c = bits.Add64(r1[1], m2[1], c)
	r2[2], c = bits.Add64(r1[2], m2[2], c)
	r2[3], c = bits.Add64(r1[3], m2[3], c)
	r2[4], _ = bits.Add64(m2[4], 0, c)

	var m3 [4]uint64
	mulLimbs(m3[:], r2[4:5], orderComplement[:])
	var r [4]uint64
	r[0], c = bits.Add64(r2[0], m3[0], 0)
	r[1], c = bits.Add64(r2[1], m3[1], c)
	r[2], c = bits.Add64(r2[2], m3[2], c)
	r[3], c = bits.Add64(r2[3], m3[3], c)

	// A carry means the low limbs wrapped around to a small value, so adding
	// the complement once more cannot carry again.
	mask := -c
	r[0], c = bits.Add64(r[0], orderComplement[0]&mask, 0)
	r[1], c = bits.Add64(r[1], orderComplement[1]&mask, c)
	r[2], c = bits.Add64(r[2], orderComplement[2]&mask, c)
	r[3], _ = bits.Add64(r[3], 0, c)

	s.n = r
	s.reduce256()
}

// Mul2 multiplies the passed two scalars together modulo the group order in
// constant time and stores the result in s.
//
// The scalar is returned to support chaining.  This enables syntax like:
// s3.Mul2(s, s2).Add(s4) so that s3 = (s * s2) + s4.
func (s *ModNScalar) Mul2(val, val2 *ModNScalar) *ModNScalar {
	var t [8]uint64
	mulLimbs(t[:], val.n[:], val2.n[:])
	s.reduce512(&t)
	return s
}

// Mul multiplies the passed scalar with the existing one modulo the group
// order in constant time and stores the result in s.
func (s *ModNScalar) Mul(val *ModNScalar) *ModNScalar {
	return s.Mul2(s, val)
}

// SquareVal squares the passed scalar modulo the group order in constant time
// and stores the result in s.
func (s *ModNScalar) SquareVal(val *ModNScalar) *ModNScalar {
	return s.Mul2(val, val)
}

// Square squares the scalar modulo the group order in constant time.
func (s *ModNScalar) Square() *ModNScalar {
	return s.Mul2(s, s)
}

// InverseVal finds the modular multiplicative inverse of the passed scalar
// and stores result in s in constant time.  The inverse of zero is zero.
func (s *ModNScalar) InverseVal(val *ModNScalar) *ModNScalar {
	// The group order is prime, so by Fermat's little theorem the inverse is
	// val^(N-2).  The exponent is a public constant, so it is processed with
	// a fixed 4-bit window where the table index only depends on the
	// exponent and every window performs the same squarings and one
	// multiplication.
	var table [16]ModNScalar
	table[0].SetInt(1)
	table[1].Set(val)
	for i := 2; i < 16; i++ {
		table[i].Mul2(&table[i-1], val)
	}

	var result ModNScalar
	result.SetInt(1)
	for i := 63; i >= 0; i-- {
		result.Square().Square().Square().Square()
		window := (orderMinusTwo[i/16] >> (uint(i%16) * 4)) & 0xf
		result.Mul(&table[window])
	}
	*s = result
	return s
}

// Inverse finds the modular multiplicative inverse of the scalar in constant
// time.
func (s *ModNScalar) Inverse() *ModNScalar {
	return s.InverseVal(s)
}

// IsOverHalfOrder returns whether or not the scalar exceeds the group order
// divided by 2 in constant time.
func (s *ModNScalar) IsOverHalfOrder() bool {
	var t [4]uint64
	return limbsSub(&t, &halfOrder, &s.n) == 1
}

// nibble returns the 4-bit window of the scalar at the given window index,
// where index 0 is the least significant window.  The index is public; the
// extraction itself uses only shifts and masks.
func (s *ModNScalar) nibble(i int) uint32 {
	return uint32(s.n[i/16]>>(uint(i%16)*4)) & 0xf
}
