// Copyright 2020-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// References:
//   [SECG]: Recommended Elliptic Curve Domain Parameters
//     https://www.secg.org/sec2-v2.pdf

import (
	"crypto/elliptic"
	"math/big"
)

// KoblitzCurve provides an implementation for secp256k1 that fits the ECC
// Curve interface from crypto/elliptic.  The point at infinity is represented
// by (0, 0) as crypto/elliptic expects.
type KoblitzCurve struct {
	*elliptic.CurveParams
}

// fromHex converts the passed hex string into a big integer pointer and will
// panic if there is an error.  This is only provided for the hard-coded
// constants so errors in the source code can be detected.  It will only (and
// must only) be called for initialization purposes.
func fromHex(s string) *big.Int {
	if s == "" {
		return big.NewInt(0)
	}
	r, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex in source file: " + s)
	}
	return r
}

var secp256k1 = &KoblitzCurve{CurveParams: &elliptic.CurveParams{
	P:       fromHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"),
	N:       fromHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
	B:       fromHex("0000000000000000000000000000000000000000000000000000000000000007"),
	Gx:      fromHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
	Gy:      fromHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
	BitSize: 256,
	Name:    "secp256k1",
}}

// S256 returns an elliptic.Curve which implements secp256k1.
func S256() *KoblitzCurve {
	return secp256k1
}

// Params returns the secp256k1 curve parameters for convenience.
func Params() *elliptic.CurveParams {
	return secp256k1.CurveParams
}

// bigAffineToField converts an affine big integer coordinate to a field
// value.  Coordinates that are negative or not less than the field prime are
// reported as invalid.
func bigAffineToField(v *big.Int) (FieldVal, bool) {
	var f FieldVal
	if v.Sign() < 0 || v.BitLen() > 256 {
		return f, false
	}
	var buf [32]byte
	v.FillBytes(buf[:])
	overflow := f.SetBytes(&buf)
	return f, overflow == 0
}

// bigAffineToProjective converts the affine coordinates to a projective point.
// The (0, 0) encoding of the point at infinity maps to (0:1:0).
func bigAffineToProjective(x, y *big.Int, result *ProjectivePoint) bool {
	if x.Sign() == 0 && y.Sign() == 0 {
		result.SetIdentity()
		return true
	}
	fx, okX := bigAffineToField(x)
	fy, okY := bigAffineToField(y)
	if !okX || !okY {
		return false
	}
	var one FieldVal
	one.SetInt(1)
	*result = MakeProjectivePoint(&fx, &fy, &one)
	return true
}

// projectiveToBigAffine converts the projective point to affine big integer
// coordinates, returning (0, 0) for the point at infinity.
func projectiveToBigAffine(point *ProjectivePoint) (*big.Int, *big.Int) {
	var p ProjectivePoint
	p.Set(point)
	if p.IsIdentity() {
		return new(big.Int), new(big.Int)
	}
	p.ToAffine()
	xBytes := p.X.Bytes()
	yBytes := p.Y.Bytes()
	return new(big.Int).SetBytes(xBytes[:]), new(big.Int).SetBytes(yBytes[:])
}

// Params returns the parameters for the curve.
//
// This is part of the elliptic.Curve interface implementation.
func (curve *KoblitzCurve) Params() *elliptic.CurveParams {
	return curve.CurveParams
}

// IsOnCurve returns whether or not the affine point (x,y) is on the curve.
//
// This is part of the elliptic.Curve interface implementation.
func (curve *KoblitzCurve) IsOnCurve(x, y *big.Int) bool {
	fx, okX := bigAffineToField(x)
	fy, okY := bigAffineToField(y)
	return okX && okY && isOnCurveAffine(&fx, &fy)
}

// Add returns the sum of (x1,y1) and (x2,y2).
//
// This is part of the elliptic.Curve interface implementation.
func (curve *KoblitzCurve) Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	var p1, p2, result ProjectivePoint
	if !bigAffineToProjective(x1, y1, &p1) || !bigAffineToProjective(x2, y2, &p2) {
		return new(big.Int), new(big.Int)
	}
	AddPoints(&p1, &p2, &result)
	return projectiveToBigAffine(&result)
}

// Double returns 2*(x1,y1).
//
// This is part of the elliptic.Curve interface implementation.
func (curve *KoblitzCurve) Double(x1, y1 *big.Int) (*big.Int, *big.Int) {
	var p, result ProjectivePoint
	if !bigAffineToProjective(x1, y1, &p) {
		return new(big.Int), new(big.Int)
	}
	DoublePoint(&p, &result)
	return projectiveToBigAffine(&result)
}

// ScalarMult returns k*(bx, by) where k is a big endian integer.
//
// This is part of the elliptic.Curve interface implementation.
func (curve *KoblitzCurve) ScalarMult(bx, by *big.Int, k []byte) (*big.Int, *big.Int) {
	var kModN ModNScalar
	kModN.SetByteSlice(k)
	var p, result ProjectivePoint
	if !bigAffineToProjective(bx, by, &p) {
		return new(big.Int), new(big.Int)
	}
	ScalarMult(&kModN, &p, &result)
	return projectiveToBigAffine(&result)
}

// ScalarBaseMult returns k*G where G is the base point of the group and k is a
// big endian integer.
//
// This is part of the elliptic.Curve interface implementation.
func (curve *KoblitzCurve) ScalarBaseMult(k []byte) (*big.Int, *big.Int) {
	var kModN ModNScalar
	kModN.SetByteSlice(k)
	var result ProjectivePoint
	ScalarBaseMult(&kModN, &result)
	return projectiveToBigAffine(&result)
}
