// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"encoding/hex"
	"fmt"
	"math/bits"
)

// References:
//   [HAC]: Handbook of Applied Cryptography Menezes, van Oorschot, Vanstone.
//     http://cacr.uwaterloo.ca/hac/
//
//   [SEC2]: SEC 2: Recommended Elliptic Curve Domain Parameters
//     https://www.secg.org/sec2-v2.pdf

const (
	// fieldPrimeComplement is 2^256 - P, the value that a carry out of the
	// top limb is congruent to.  Since P = 2^256 - 2^32 - 977, this is
	// 2^32 + 977 and the reduction of a 512-bit product folds the upper half
	// back in by multiplying it with this 33-bit constant.
	fieldPrimeComplement = 0x1000003d1
)

var (
	// fieldPrime is the secp256k1 prime as little-endian 64-bit limbs.
	fieldPrime = [4]uint64{
		0xfffffffefffffc2f, 0xffffffffffffffff,
		0xffffffffffffffff, 0xffffffffffffffff,
	}

	// fieldPrimeMinusOrder is P - N as little-endian limbs.  It is used to
	// determine whether an x coordinate reduced modulo the group order could
	// have originally been larger than the order.
	fieldPrimeMinusOrder = [4]uint64{
		0x402da1722fc9baee, 0x4551231950b75fc4, 0x1, 0x0,
	}
)

// FieldVal implements optimized fixed-precision arithmetic over the
// secp256k1 finite field.  This means all arithmetic is performed modulo
//
//	0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f
//
// Unlike representations that allow limbs to accumulate lazily, every
// exported method leaves the value fully reduced into the range [0, P), so
// values can be compared, serialized and used as map keys at any point
// without a separate normalization step.
//
// All arithmetic runs in constant time with respect to the values involved:
// there is no data-dependent branching and no data-dependent memory access.
// The exceptions are String and the explicitly named non-constant time
// helpers, which are meant for debugging and public values only.
type FieldVal struct {
	// The value is represented as four 64-bit limbs in base 2^64 with the
	// least significant limb first.
	n [4]uint64
}

// String returns the field value as a human-readable hex string.
//
// This is NOT constant time.
func (f FieldVal) String() string {
	b := f.Bytes()
	return hex.EncodeToString(b[:])
}

// Zero sets the field value to zero in constant time.  A newly created field
// value is already set to zero.  This function can be useful to clear an
// existing field value for reuse.
func (f *FieldVal) Zero() {
	f.n = [4]uint64{}
}

// Set sets the field value equal to the passed value in constant time.
//
// The field value is returned to support chaining.  This enables syntax like:
// f := new(FieldVal).Set(f2).Add(f3) so that f = f2 + f3 where f2 is not
// modified.
func (f *FieldVal) Set(val *FieldVal) *FieldVal {
	*f = *val
	return f
}

// SetInt sets the field value to the passed integer in constant time.  This
// is a convenience function since it is fairly common to perform some
// arithmetic with small native integers.
func (f *FieldVal) SetInt(ui uint32) *FieldVal {
	f.n = [4]uint64{uint64(ui), 0, 0, 0}
	return f
}

// reduceOnce subtracts the prime from the value when it is greater than or
// equal to it.  The value MUST be less than 2P.
func (f *FieldVal) reduceOnce() uint32 {
	// v - P = v + (2^256 - P) mod 2^256 and the addition carries exactly when
	// v >= P.
	var t [4]uint64
	var c uint64
	t[0], c = bits.Add64(f.n[0], fieldPrimeComplement, 0)
	t[1], c = bits.Add64(f.n[1], 0, c)
	t[2], c = bits.Add64(f.n[2], 0, c)
	t[3], c = bits.Add64(f.n[3], 0, c)
	limbsSelect(&f.n, &t, &f.n, c)
	return uint32(c)
}

// SetBytes interprets the provided array as a 256-bit big-endian unsigned
// integer, reduces it modulo the field prime, sets the field value to the
// result, and returns either 1 if it was reduced (aka it overflowed) or 0
// otherwise in constant time.
func (f *FieldVal) SetBytes(b *[32]byte) uint32 {
	limbsFromBytes(&f.n, b)
	return f.reduceOnce()
}

// SetByteSlice interprets the provided slice as a 256-bit big-endian unsigned
// integer (meaning it is truncated to the first 32 bytes), reduces it modulo
// the field prime, sets the field value to the result, and returns whether or
// not the resulting truncated 256-bit integer overflowed in constant time.
//
// Callers that must reject non-canonical input rather than reduce it should
// use ParseFieldVal instead.
func (f *FieldVal) SetByteSlice(b []byte) bool {
	var b32 [32]byte
	b = b[:constantTimeMin(uint32(len(b)), 32)]
	copy(b32[32-len(b):], b)
	result := f.SetBytes(&b32)
	zeroArray32(&b32)
	return result != 0
}

// ParseFieldVal decodes a 32-byte big-endian field element.  Unlike
// SetByteSlice, no reduction takes place: values that are not exactly 32
// bytes fail with ErrFieldInvalidLen and values greater than or equal to the
// field prime fail with ErrFieldOverflow.
func ParseFieldVal(b []byte) (FieldVal, error) {
	var f FieldVal
	if len(b) != 32 {
		str := fmt.Sprintf("malformed field element: invalid length: %d != 32",
			len(b))
		return f, makeError(ErrFieldInvalidLen, str)
	}
	if f.SetByteSlice(b) {
		f.Zero()
		str := "malformed field element: value >= field prime"
		return f, makeError(ErrFieldOverflow, str)
	}
	return f, nil
}

// PutBytesUnchecked unpacks the field value to a 32-byte big-endian value
// directly into the passed byte slice in constant time.  The target slice
// must have at least 32 bytes available or it will panic.
func (f *FieldVal) PutBytesUnchecked(b []byte) {
	limbsToBytes(b, &f.n)
}

// PutBytes unpacks the field value to a 32-byte big-endian value using the
// passed byte array in constant time.
func (f *FieldVal) PutBytes(b *[32]byte) {
	limbsToBytes(b[:], &f.n)
}

// Bytes unpacks the field value to a 32-byte big-endian value in constant
// time.
func (f *FieldVal) Bytes() [32]byte {
	var b [32]byte
	limbsToBytes(b[:], &f.n)
	return b
}

// IsZeroBit returns 1 when the field value is equal to zero or 0 otherwise in
// constant time.
func (f *FieldVal) IsZeroBit() uint32 {
	return uint32(limbsIsZero(&f.n))
}

// IsZero returns whether or not the field value is equal to zero in constant
// time.
func (f *FieldVal) IsZero() bool {
	return f.IsZeroBit() == 1
}

// IsOneBit returns 1 when the field value is equal to one or 0 otherwise in
// constant time.
func (f *FieldVal) IsOneBit() uint32 {
	return uint32(isZero64((f.n[0] ^ 1) | f.n[1] | f.n[2] | f.n[3]))
}

// IsOne returns whether or not the field value is equal to one in constant
// time.
func (f *FieldVal) IsOne() bool {
	return f.IsOneBit() == 1
}

// IsOddBit returns 1 when the field value is an odd number or 0 otherwise in
// constant time.
func (f *FieldVal) IsOddBit() uint32 {
	return uint32(f.n[0] & 1)
}

// IsOdd returns whether or not the field value is an odd number in constant
// time.
func (f *FieldVal) IsOdd() bool {
	return f.IsOddBit() == 1
}

// EqualsBit returns 1 when the two field values are the same or 0 otherwise
// in constant time.
func (f *FieldVal) EqualsBit(val *FieldVal) uint32 {
	return uint32(limbsEq(&f.n, &val.n))
}

// Equals returns whether or not the two field values are the same in constant
// time.
func (f *FieldVal) Equals(val *FieldVal) bool {
	return f.EqualsBit(val) == 1
}

// CMov sets the field value to val when flag is 1 and leaves it unchanged
// when flag is 0.  The flag MUST be 0 or 1.
func (f *FieldVal) CMov(val *FieldVal, flag uint32) *FieldVal {
	limbsSelect(&f.n, &val.n, &f.n, uint64(flag))
	return f
}

// Add2 adds the passed two field values together modulo the field prime and
// stores the result in f in constant time.
//
// The field value is returned to support chaining.  This enables syntax like:
// f3.Add2(f, f2).Add(f4) so that f3 = f + f2 + f4.
func (f *FieldVal) Add2(val, val2 *FieldVal) *FieldVal {
	// Both inputs are less than P, so the sum is less than 2P and at most one
	// subtraction of P is needed.  A carry out of the top limb means the sum
	// is at least 2^256 > P, in which case adding 2^256 - P and discarding
	// the carry is the same as subtracting P.
	var s, t [4]uint64
	carry := limbsAdd(&s, &val.n, &val2.n)
	var c uint64
	t[0], c = bits.Add64(s[0], fieldPrimeComplement, 0)
	t[1], c = bits.Add64(s[1], 0, c)
	t[2], c = bits.Add64(s[2], 0, c)
	t[3], c = bits.Add64(s[3], 0, c)
	limbsSelect(&f.n, &t, &s, carry|c)
	return f
}

// Add adds the passed value to the existing field value modulo the field
// prime and stores the result in f in constant time.
func (f *FieldVal) Add(val *FieldVal) *FieldVal {
	return f.Add2(f, val)
}

// Sub2 subtracts val2 from val modulo the field prime and stores the result
// in f in constant time.
func (f *FieldVal) Sub2(val, val2 *FieldVal) *FieldVal {
	// When the subtraction borrows, the wrapped result is v + 2^256 and
	// adding P back is the same as subtracting 2^256 - P.  The wrapped value
	// is always larger than 2^256 - P, so that never borrows again.
	var d [4]uint64
	borrow := limbsSub(&d, &val.n, &val2.n)
	var c uint64
	d[0], c = bits.Sub64(d[0], fieldPrimeComplement&-borrow, 0)
	d[1], c = bits.Sub64(d[1], 0, c)
	d[2], c = bits.Sub64(d[2], 0, c)
	d[3], _ = bits.Sub64(d[3], 0, c)
	f.n = d
	return f
}

// Sub subtracts the passed value from the existing field value modulo the
// field prime and stores the result in f in constant time.
func (f *FieldVal) Sub(val *FieldVal) *FieldVal {
	return f.Sub2(f, val)
}

// NegateVal negates the passed value modulo the field prime and stores the
// result in f in constant time.  Zero negates to zero.
func (f *FieldVal) NegateVal(val *FieldVal) *FieldVal {
	var zero FieldVal
	return f.Sub2(&zero, val)
}

// Negate negates the field value modulo the field prime in constant time.
func (f *FieldVal) Negate() *FieldVal {
	return f.NegateVal(f)
}

// reduce512 reduces the passed 512-bit little-endian product modulo the field
// prime and stores the result in f.
func (f *FieldVal) reduce512(t *[8]uint64) {
	// Since 2^256 = 2^32 + 977 (mod P), the value t = lo + hi*2^256 is
	// congruent to lo + hi*(2^32 + 977).  The first fold produces a value of
	// at most 290 bits, the second folds the fifth limb back in and a final
	// carry, when present, is folded once more.
	var r [4]uint64
	var carry uint64
	for i := 0; i < 4; i++ {
		hi, lo := bits.Mul64(t[4+i], fieldPrimeComplement)
		var c uint64
		lo, c = bits.Add64(lo, carry, 0)
		hi += c
		r[i], c = bits.Add64(t[i], lo, 0)
		carry = hi + c
	}

	hi, lo := bits.Mul64(carry, fieldPrimeComplement)
	var c uint64
	r[0], c = bits.Add64(r[0], lo, 0)
	r[1], c = bits.Add64(r[1], hi, c)
	r[2], c = bits.Add64(r[2], 0, c)
	r[3], c = bits.Add64(r[3], 0, c)

	// A carry here implies the low limbs wrapped to a small value, so adding
	// the complement cannot carry again.
	r[0], c = bits.Add64(r[0], fieldPrimeComplement&-c, 0)
	r[1], c = bits.Add64(r[1], 0, c)
	r[2], c = bits.Add64(r[2], 0, c)
	r[3], _ = bits.Add64(r[3], 0, c)

	f.n = r
	f.reduceOnce()
}

// Mul2 multiplies the passed two field values together modulo the field prime
// and stores the result in f in constant time.
//
// The field value is returned to support chaining.  This enables syntax like:
// f3.Mul2(f, f2).AddInt(1) so that f3 = (f * f2) + 1.
func (f *FieldVal) Mul2(val, val2 *FieldVal) *FieldVal {
	var t [8]uint64
	mulLimbs(t[:], val.n[:], val2.n[:])
	f.reduce512(&t)
	return f
}

// Mul multiplies the passed value to the existing field value modulo the
// field prime and stores the result in f in constant time.
func (f *FieldVal) Mul(val *FieldVal) *FieldVal {
	return f.Mul2(f, val)
}

// MulInt multiplies the field value by the passed small integer modulo the
// field prime in constant time.
func (f *FieldVal) MulInt(val uint32) *FieldVal {
	var v FieldVal
	v.SetInt(val)
	return f.Mul2(f, &v)
}

// AddInt adds the passed small integer to the field value modulo the field
// prime in constant time.
func (f *FieldVal) AddInt(ui uint32) *FieldVal {
	var v FieldVal
	v.SetInt(ui)
	return f.Add2(f, &v)
}

// SquareVal squares the passed value modulo the field prime and stores the
// result in f in constant time.
func (f *FieldVal) SquareVal(val *FieldVal) *FieldVal {
	return f.Mul2(val, val)
}

// Square squares the field value modulo the field prime in constant time.
func (f *FieldVal) Square() *FieldVal {
	return f.Mul2(f, f)
}

// squareN squares the field value n times.  The count is always a constant
// chosen by the caller.
func (f *FieldVal) squareN(n int) *FieldVal {
	for i := 0; i < n; i++ {
		f.Mul2(f, f)
	}
	return f
}

// powChainPrefix computes the shared prefix of the fixed addition chains
// used for inversion and square roots.  It returns a^(2^2-1), a^(2^22-1) and
// a^(2^223-1).
func powChainPrefix(a *FieldVal) (x2, x22, x223 FieldVal) {
	// The chain is the one used by libsecp256k1 and dcrd.  The exponents
	// P-2 and (P+1)/4 both start with 223 one bits followed by a zero, so the
	// blocks of consecutive ones are built once here.  Each xN holds
	// a^(2^N - 1).
	var x3, x6, x9, x11, x44, x88, x176, x220 FieldVal
	x2.SquareVal(a).Mul(a)
	x3.SquareVal(&x2).Mul(a)
	x6.Set(&x3).squareN(3).Mul(&x3)
	x9.Set(&x6).squareN(3).Mul(&x3)
	x11.Set(&x9).squareN(2).Mul(&x2)
	x22.Set(&x11).squareN(11).Mul(&x11)
	x44.Set(&x22).squareN(22).Mul(&x22)
	x88.Set(&x44).squareN(44).Mul(&x44)
	x176.Set(&x88).squareN(88).Mul(&x88)
	x220.Set(&x176).squareN(44).Mul(&x44)
	x223.Set(&x220).squareN(3).Mul(&x3)
	return x2, x22, x223
}

// InverseVal finds the modular multiplicative inverse of the passed value and
// stores the result in f in constant time.  The inverse of zero is zero.
func (f *FieldVal) InverseVal(val *FieldVal) *FieldVal {
	// Fermat's little theorem states that for a nonzero number a and prime
	// P, a^(P-1) = 1 (mod P).  Multiplying both sides by a^-1 gives
	// a^(P-2) = a^-1 (mod P), so the inverse is a fixed exponentiation whose
	// sequence of squarings and multiplications never depends on the value.
	//
	// P-2 in binary is 223 ones, a zero, 22 ones, followed by 0000101101.
	var a FieldVal
	a.Set(val)
	x2, x22, x223 := powChainPrefix(&a)
	f.Set(&x223).squareN(23).Mul(&x22)
	f.squareN(5).Mul(&a)
	f.squareN(3).Mul(&x2)
	f.squareN(2).Mul(&a)
	return f
}

// Inverse finds the modular multiplicative inverse of the field value in
// constant time.
func (f *FieldVal) Inverse() *FieldVal {
	return f.InverseVal(f)
}

// SquareRootVal either calculates the square root of the passed value when it
// exists or the square root of the negation of the value when it does not
// exist and stores the result in f in constant time.  The return flag is true
// when the calculated square root is for the passed value itself and false
// when it is for its negation.
func (f *FieldVal) SquareRootVal(val *FieldVal) bool {
	// Since P = 3 (mod 4), a square root of a quadratic residue a is
	// a^((P+1)/4).  (P+1)/4 in binary is 223 ones, a zero, 22 ones,
	// followed by 00001100.
	var a FieldVal
	a.Set(val)
	x2, x22, x223 := powChainPrefix(&a)
	f.Set(&x223).squareN(23).Mul(&x22)
	f.squareN(6).Mul(&x2)
	f.squareN(2)

	// The result is only a root of a when its square is a itself.
	var check FieldVal
	check.SquareVal(f)
	return check.Equals(&a)
}

// IsGtOrEqPrimeMinusOrder returns whether or not the field value is greater
// than or equal to P - N in constant time, where P is the field prime and N
// is the group order.  An x coordinate reduced modulo the group order can only
// have originally been x + N when this returns false.
func (f *FieldVal) IsGtOrEqPrimeMinusOrder() bool {
	var t [4]uint64
	borrow := limbsSub(&t, &f.n, &fieldPrimeMinusOrder)
	return borrow == 0
}
