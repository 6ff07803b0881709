// Copyright (c) 2015-2024 The Decred developers
// Copyright 2013-2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// References:
//   [SECG]: Recommended Elliptic Curve Domain Parameters
//     https://www.secg.org/sec2-v2.pdf
//
//   [RCB]: Complete addition formulas for prime order elliptic curves
//     Joost Renes, Craig Costello, Lejla Batina
//     https://eprint.iacr.org/2015/1060.pdf

// All group operations are performed on points in homogeneous projective
// coordinates (X:Y:Z), which represent the affine point (X/Z, Y/Z).  The
// addition and doubling formulas are the complete ones from [RCB] for short
// Weierstrass curves with a = 0.  They are correct for every pair of inputs,
// including the point at infinity and a point added to itself, so there are
// no special cases to branch on.

// curveB3 is 3*b where b = 7 is the curve coefficient in y^2 = x^3 + b.
const curveB3 = 21

var (
	// curveB is the curve coefficient b = 7.
	curveB = FieldVal{n: [4]uint64{7, 0, 0, 0}}

	// generatorX and generatorY are the affine coordinates of the secp256k1
	// base point G.
	generatorX = FieldVal{n: [4]uint64{
		0x59f2815b16f81798, 0x029bfcdb2dce28d9,
		0x55a06295ce870b07, 0x79be667ef9dcbbac,
	}}
	generatorY = FieldVal{n: [4]uint64{
		0x9c47d08ffb10d4b8, 0xfd17b448a6855419,
		0x5da4fbfc0e1108a8, 0x483ada7726a3c465,
	}}
)

// ProjectivePoint is an element of the secp256k1 group in homogeneous
// projective coordinates.  Any point with Z = 0 is the point at infinity
// and the canonical form of that point is (0:1:0).
type ProjectivePoint struct {
	// X, Y and Z are the projective coordinates of the point.
	X FieldVal
	Y FieldVal
	Z FieldVal
}

// MakeProjectivePoint returns a point with the provided coordinates.
func MakeProjectivePoint(x, y, z *FieldVal) ProjectivePoint {
	var p ProjectivePoint
	p.X.Set(x)
	p.Y.Set(y)
	p.Z.Set(z)
	return p
}

// Generator returns the group generator G in projective coordinates.
func Generator() ProjectivePoint {
	var one FieldVal
	one.SetInt(1)
	return MakeProjectivePoint(&generatorX, &generatorY, &one)
}

// Set sets the point equal to a copy of the passed one.
func (p *ProjectivePoint) Set(other *ProjectivePoint) {
	p.X.Set(&other.X)
	p.Y.Set(&other.Y)
	p.Z.Set(&other.Z)
}

// SetIdentity sets the point to the canonical point at infinity (0:1:0).
func (p *ProjectivePoint) SetIdentity() {
	p.X.Zero()
	p.Y.SetInt(1)
	p.Z.Zero()
}

// IsIdentityBit returns 1 when the point is the point at infinity or 0
// otherwise in constant time.
func (p *ProjectivePoint) IsIdentityBit() uint32 {
	return p.Z.IsZeroBit()
}

// IsIdentity returns whether or not the point is the point at infinity.
func (p *ProjectivePoint) IsIdentity() bool {
	return p.IsIdentityBit() == 1
}

// CMov sets the point to other when flag is 1 and leaves it unchanged when
// flag is 0.  The flag MUST be 0 or 1.
func (p *ProjectivePoint) CMov(other *ProjectivePoint, flag uint32) {
	p.X.CMov(&other.X, flag)
	p.Y.CMov(&other.Y, flag)
	p.Z.CMov(&other.Z, flag)
}

// EqualsBit returns 1 when the two points represent the same group element
// or 0 otherwise in constant time.
func (p *ProjectivePoint) EqualsBit(other *ProjectivePoint) uint32 {
	// (X1:Y1:Z1) and (X2:Y2:Z2) are the same point exactly when the cross
	// products X1*Z2 = X2*Z1 and Y1*Z2 = Y2*Z1 agree.  This also holds for
	// the point at infinity since its Y coordinate is never zero.
	var a, b, c, d FieldVal
	a.Mul2(&p.X, &other.Z)
	b.Mul2(&other.X, &p.Z)
	c.Mul2(&p.Y, &other.Z)
	d.Mul2(&other.Y, &p.Z)
	return a.EqualsBit(&b) & c.EqualsBit(&d)
}

// EqualsPoint returns whether or not the two points represent the same group
// element.
func (p *ProjectivePoint) EqualsPoint(other *ProjectivePoint) bool {
	return p.EqualsBit(other) == 1
}

// NegatePoint sets result to the negation of p.
func NegatePoint(p, result *ProjectivePoint) {
	result.X.Set(&p.X)
	result.Y.NegateVal(&p.Y)
	result.Z.Set(&p.Z)
}

// AddPoints adds the passed points together and stores the result in result.
// The inputs and the result may alias.
func AddPoints(p1, p2, result *ProjectivePoint) {
	// Algorithm 7 in [RCB].
	var xx, yy, zz, xy, yz, xz, t FieldVal
	xx.Mul2(&p1.X, &p2.X)
	yy.Mul2(&p1.Y, &p2.Y)
	zz.Mul2(&p1.Z, &p2.Z)

	// xy = X1*Y2 + X2*Y1 and similarly for yz and xz.
	xy.Add2(&p1.X, &p1.Y)
	t.Add2(&p2.X, &p2.Y)
	xy.Mul(&t).Sub(&xx).Sub(&yy)
	yz.Add2(&p1.Y, &p1.Z)
	t.Add2(&p2.Y, &p2.Z)
	yz.Mul(&t).Sub(&yy).Sub(&zz)
	xz.Add2(&p1.X, &p1.Z)
	t.Add2(&p2.X, &p2.Z)
	xz.Mul(&t).Sub(&xx).Sub(&zz)

	var xx3, bzz3, yyPlus, yyMinus, bxz3 FieldVal
	xx3.Set(&xx).MulInt(3)
	bzz3.Set(&zz).MulInt(curveB3)
	yyPlus.Add2(&yy, &bzz3)
	yyMinus.Sub2(&yy, &bzz3)
	bxz3.Set(&xz).MulInt(curveB3)

	// X3 = xy*(yy - 3b*zz) - 3b*yz*xz
	var x3, y3, z3 FieldVal
	x3.Mul2(&xy, &yyMinus)
	t.Mul2(&yz, &bxz3)
	x3.Sub(&t)

	// Y3 = (yy + 3b*zz)*(yy - 3b*zz) + 9b*xx*xz
	y3.Mul2(&yyPlus, &yyMinus)
	t.Mul2(&xx3, &bxz3)
	y3.Add(&t)

	// Z3 = yz*(yy + 3b*zz) + 3*xx*xy
	z3.Mul2(&yz, &yyPlus)
	t.Mul2(&xx3, &xy)
	z3.Add(&t)

	result.X.Set(&x3)
	result.Y.Set(&y3)
	result.Z.Set(&z3)
}

// DoublePoint doubles the passed point and stores the result in result.  The
// input and the result may alias.
func DoublePoint(p, result *ProjectivePoint) {
	// Algorithm 9 in [RCB].
	var yy, yz, bzz3, bzz9, xy, t FieldVal
	yy.SquareVal(&p.Y)
	yz.Mul2(&p.Y, &p.Z)
	bzz3.SquareVal(&p.Z).MulInt(curveB3)
	bzz9.Set(&bzz3).MulInt(3)
	xy.Mul2(&p.X, &p.Y)

	// X3 = 2*xy*(yy - 9b*zz)
	var yyMinus, yyPlus, x3, y3, z3 FieldVal
	yyMinus.Sub2(&yy, &bzz9)
	x3.Mul2(&xy, &yyMinus).MulInt(2)

	// Y3 = (yy - 9b*zz)*(yy + 3b*zz) + 24b*yy*zz
	yyPlus.Add2(&yy, &bzz3)
	y3.Mul2(&yyMinus, &yyPlus)
	t.Mul2(&yy, &bzz3).MulInt(8)
	y3.Add(&t)

	// Z3 = 8*yy*yz
	z3.Mul2(&yy, &yz).MulInt(8)

	result.X.Set(&x3)
	result.Y.Set(&y3)
	result.Z.Set(&z3)
}

// ToAffine normalizes the point so that Z = 1 and X, Y hold the affine
// coordinates.  The point at infinity is left in its canonical form (0:1:0).
// This runs in constant time.
func (p *ProjectivePoint) ToAffine() {
	isInf := p.IsIdentityBit()

	// The inverse of zero is zero, so the point at infinity flows through the
	// same computation and is then replaced.
	var zInv, one FieldVal
	zInv.InverseVal(&p.Z)
	one.SetInt(1)
	p.X.Mul(&zInv)
	p.Y.Mul(&zInv)
	p.Z.Set(&one)

	var inf ProjectivePoint
	inf.SetIdentity()
	p.CMov(&inf, isInf)
}

// isOnCurveAffine returns whether or not the affine point (x, y) satisfies
// y^2 = x^3 + 7.
func isOnCurveAffine(x, y *FieldVal) bool {
	var lhs, rhs FieldVal
	lhs.SquareVal(y)
	rhs.SquareVal(x).Mul(x).Add(&curveB)
	return lhs.Equals(&rhs)
}

// IsOnCurve returns whether or not the point satisfies the projective curve
// equation Y^2*Z = X^3 + 7*Z^3.  The point at infinity satisfies it.
func (p *ProjectivePoint) IsOnCurve() bool {
	var lhs, rhs, z3 FieldVal
	lhs.SquareVal(&p.Y).Mul(&p.Z)
	z3.SquareVal(&p.Z).Mul(&p.Z).MulInt(7)
	rhs.SquareVal(&p.X).Mul(&p.X).Add(&z3)
	return lhs.Equals(&rhs)
}

// DecompressY attempts to calculate the y coordinate for the given x
// coordinate such that the result pair is a point on the secp256k1 curve.  It
// adjusts y based on the desired oddness and returns whether or not it was
// successful since not all x coordinates are valid.
//
// The y coordinate is computed in constant time with respect to x.
func DecompressY(x *FieldVal, odd bool, resultY *FieldVal) bool {
	// The curve equation for secp256k1 is: y^2 = x^3 + 7.  Thus
	// y = +-sqrt(x^3 + 7).
	var rhs FieldVal
	rhs.SquareVal(x).Mul(x).Add(&curveB)
	if !resultY.SquareRootVal(&rhs) {
		return false
	}

	var wantOdd uint32
	if odd {
		wantOdd = 1
	}
	var neg FieldVal
	neg.NegateVal(resultY)
	resultY.CMov(&neg, resultY.IsOddBit()^wantOdd)
	return true
}

// pointTable16 holds the multiples 0*P through 15*P of a point.
type pointTable16 [16]ProjectivePoint

// lookup sets out to the table entry at the passed index.  Every entry is
// read regardless of the index so the memory access pattern does not depend
// on it.
func (t *pointTable16) lookup(idx uint32, out *ProjectivePoint) {
	out.SetIdentity()
	for j := range t {
		out.CMov(&t[j], constantTimeEq(uint32(j), idx))
	}
}

// ScalarMult multiplies k*P where k is a scalar modulo the curve order and P
// is a point in projective coordinates, and stores the result in result.
//
// The scalar is processed in 4-bit windows from the most significant end.
// Every window costs the same four doublings, one full table scan and one
// addition, so the sequence of operations does not depend on k.
func ScalarMult(k *ModNScalar, point, result *ProjectivePoint) {
	var table pointTable16
	table[0].SetIdentity()
	table[1].Set(point)
	for i := 2; i < 16; i++ {
		AddPoints(&table[i-1], point, &table[i])
	}

	var acc, entry ProjectivePoint
	acc.SetIdentity()
	for i := 63; i >= 0; i-- {
		if i != 63 {
			DoublePoint(&acc, &acc)
			DoublePoint(&acc, &acc)
			DoublePoint(&acc, &acc)
			DoublePoint(&acc, &acc)
		}
		table.lookup(k.nibble(i), &entry)
		AddPoints(&acc, &entry, &acc)
	}
	result.Set(&acc)
}
