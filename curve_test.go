// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// fieldFromHex returns a field value for the passed hex string and panics on
// values that do not fit.  Only used with hard-coded test values.
func fieldFromHex(s string) FieldVal {
	f, err := ParseFieldVal(hexToBytes(s))
	if err != nil {
		panic(err)
	}
	return f
}

func scalarFromHex(s string) ModNScalar {
	b := hexToBytes(s)
	var buf [32]byte
	copy(buf[32-len(b):], b)
	var k ModNScalar
	if k.SetBytes(&buf) != 0 {
		panic("scalar overflows: " + s)
	}
	return k
}

// affineEquals reports whether the projective point is the affine point
// (x, y).
func affineEquals(p *ProjectivePoint, x, y string) bool {
	var a ProjectivePoint
	a.Set(p)
	a.ToAffine()
	wantX, wantY := fieldFromHex(x), fieldFromHex(y)
	return a.Z.IsOne() && a.X.Equals(&wantX) && a.Y.Equals(&wantY)
}

var knownMultiples = []struct {
	k, x, y string
}{{
	k: "02",
	x: "c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5",
	y: "1ae168fea63dc339a3c58419466ceaeef7f632653266d0e1236431a950cfe52a",
}, {
	k: "03",
	x: "f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9",
	y: "388f7b0f632de8140fe337e62a37f3566500a99934c2231b6cb9fd7584b8e672",
}, {
	k: "07",
	x: "5cbdf0646e5db4eaa398f365f2ea7a0e3d419b7e0330e39ce92bddedcac4f9bc",
	y: "6aebca40ba255960a3178d6d861a54dba813d0b813fde7b5a5082628087264da",
}, {
	k: "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140",
	x: "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
	y: "b7c52588d95c3b9aa25b0403f1eef75702e84bb7597aabe663b82f6f04ef2777",
}, {
	k: "d7b37a3b7bfbd8c3f6fe5a6c1e2e7a1d1a4a66b3c7b94e42bd4b6a2e9b1c1f01",
	x: "a1781298c2e0828eb8b138211e5565926d332f5361f6792df4ab3ee753e233f8",
	y: "b45b8d994ffd8137e37963541f5250e4afe45a0e99e4b69be466dc73a226513e",
}, {
	k: "1f2e3d4c5b6a79880a9b8c7d6e5f40312233445566778899aabbccddeeff0011",
	x: "948a8d910102f50237a0227c565b868e71f65676f593c384fd842abd251c5117",
	y: "a86d33f21d2b13ddcd8977d4bcceabaadfca13c9564a6fb36f76cb8f7d7d15c5",
}}

// TestGeneratorOnCurve ensures the base point satisfies the curve equation in
// both affine and projective form.
func TestGeneratorOnCurve(t *testing.T) {
	g := Generator()
	if !g.IsOnCurve() || !isOnCurveAffine(&g.X, &g.Y) {
		t.Fatal("generator is not on the curve")
	}
	if !affineEquals(&g, "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8") {
		t.Fatalf("unexpected generator %s", spew.Sdump(g))
	}

	// Scaling the projective coordinates does not change the point.
	var z FieldVal
	z.SetInt(12345)
	var scaled ProjectivePoint
	scaled.X.Mul2(&g.X, &z)
	scaled.Y.Mul2(&g.Y, &z)
	scaled.Z.Set(&z)
	if !scaled.IsOnCurve() || !scaled.EqualsPoint(&g) {
		t.Fatal("scaled generator does not equal the generator")
	}
}

// TestScalarMultKnown ensures both multiplication routines produce known
// multiples of the generator.
func TestScalarMultKnown(t *testing.T) {
	g := Generator()
	for _, test := range knownMultiples {
		k := scalarFromHex(test.k)

		var viaBase, viaGeneric ProjectivePoint
		ScalarBaseMult(&k, &viaBase)
		ScalarMult(&k, &g, &viaGeneric)

		if !affineEquals(&viaBase, test.x, test.y) {
			t.Errorf("%s*G: unexpected base mult result %s", test.k,
				spew.Sdump(viaBase))
		}
		if !affineEquals(&viaGeneric, test.x, test.y) {
			t.Errorf("%s*G: unexpected generic mult result %s", test.k,
				spew.Sdump(viaGeneric))
		}
	}
}

// TestScalarMultRepeatedAddition ensures k*P equals P added to itself k times
// for small k, for both the generator and another point.
func TestScalarMultRepeatedAddition(t *testing.T) {
	var seven ModNScalar
	seven.SetInt(7)
	var p7 ProjectivePoint
	ScalarBaseMult(&seven, &p7)

	for _, base := range []ProjectivePoint{Generator(), p7} {
		var sum ProjectivePoint
		sum.SetIdentity()
		for k := uint32(0); k <= 40; k++ {
			var scalar ModNScalar
			scalar.SetInt(k)
			var product ProjectivePoint
			ScalarMult(&scalar, &base, &product)
			if !product.EqualsPoint(&sum) {
				t.Fatalf("%d*P does not match repeated addition", k)
			}
			if !product.IsOnCurve() {
				t.Fatalf("%d*P is not on the curve", k)
			}
			AddPoints(&sum, &base, &sum)
		}
	}
}

// TestScalarMultDistributes ensures (k1+k2)*P == k1*P + k2*P and that the
// fixed and variable base routines agree on random scalars.
func TestScalarMultDistributes(t *testing.T) {
	rng := newTestRand(t)
	var p ProjectivePoint
	k0 := scalarFromBig(randScalarBig(rng))
	ScalarBaseMult(&k0, &p)

	for i := 0; i < 25; i++ {
		k1 := scalarFromBig(randScalarBig(rng))
		k2 := scalarFromBig(randScalarBig(rng))
		var sum ModNScalar
		sum.Add2(&k1, &k2)

		var r1, r2, lhs, rhs ProjectivePoint
		ScalarMult(&k1, &p, &r1)
		ScalarMult(&k2, &p, &r2)
		AddPoints(&r1, &r2, &rhs)
		ScalarMult(&sum, &p, &lhs)
		if !lhs.EqualsPoint(&rhs) {
			t.Fatalf("(k1+k2)P != k1P + k2P for k1=%v k2=%v", k1, k2)
		}

		g := Generator()
		var viaBase, viaGeneric ProjectivePoint
		ScalarBaseMult(&k1, &viaBase)
		ScalarMult(&k1, &g, &viaGeneric)
		if !viaBase.EqualsPoint(&viaGeneric) {
			t.Fatalf("base and generic multiplication disagree for %v", k1)
		}
	}
}

// TestPointIdentity ensures the complete formulas handle the point at
// infinity and inverse points without special cases.
func TestPointIdentity(t *testing.T) {
	g := Generator()
	var inf, r, neg ProjectivePoint
	inf.SetIdentity()
	if !inf.IsIdentity() || !inf.IsOnCurve() {
		t.Fatal("identity is not recognized")
	}

	AddPoints(&g, &inf, &r)
	if !r.EqualsPoint(&g) {
		t.Fatal("G + O != G")
	}
	AddPoints(&inf, &g, &r)
	if !r.EqualsPoint(&g) {
		t.Fatal("O + G != G")
	}
	AddPoints(&inf, &inf, &r)
	if !r.IsIdentity() {
		t.Fatal("O + O != O")
	}
	DoublePoint(&inf, &r)
	if !r.IsIdentity() {
		t.Fatal("2O != O")
	}

	NegatePoint(&g, &neg)
	AddPoints(&g, &neg, &r)
	if !r.IsIdentity() {
		t.Fatalf("G + -G is not the identity: %s", spew.Sdump(r))
	}

	// G + G through the addition formula matches doubling.
	var doubled ProjectivePoint
	AddPoints(&g, &g, &r)
	DoublePoint(&g, &doubled)
	if !r.EqualsPoint(&doubled) {
		t.Fatal("G + G != 2G")
	}

	// Multiplying by zero and by the group order gives the identity.
	var zero ModNScalar
	ScalarMult(&zero, &g, &r)
	if !r.IsIdentity() {
		t.Fatal("0*G is not the identity")
	}
	ScalarBaseMult(&zero, &r)
	if !r.IsIdentity() {
		t.Fatal("0*G (base) is not the identity")
	}
	var nMinusOne ModNScalar
	nMinusOne.SetInt(1).Negate()
	ScalarMult(&nMinusOne, &g, &r)
	AddPoints(&r, &g, &r)
	if !r.IsIdentity() {
		t.Fatal("(N-1)*G + G is not the identity")
	}

	// The identity stays in canonical form through ToAffine.
	inf.ToAffine()
	if !inf.X.IsZero() || !inf.Y.IsOne() || !inf.Z.IsZero() {
		t.Fatalf("unexpected affine identity %s", spew.Sdump(inf))
	}

	// Multiplying the identity by any scalar is the identity.
	k := scalarFromHex(knownMultiples[4].k)
	inf.SetIdentity()
	ScalarMult(&k, &inf, &r)
	if !r.IsIdentity() {
		t.Fatal("k*O is not the identity")
	}
}

// TestPointCMov ensures conditional point moves only happen for flag 1.
func TestPointCMov(t *testing.T) {
	g := Generator()
	var p ProjectivePoint
	p.SetIdentity()
	p.CMov(&g, 0)
	if !p.IsIdentity() {
		t.Fatal("CMov with flag 0 changed the point")
	}
	p.CMov(&g, 1)
	if !p.EqualsPoint(&g) || p.EqualsBit(&g) != 1 {
		t.Fatal("CMov with flag 1 did not move the point")
	}
}

// TestDecompressY ensures decompression yields the requested oddness and
// fails for x coordinates that are not on the curve.
func TestDecompressY(t *testing.T) {
	for _, test := range knownMultiples {
		x := fieldFromHex(test.x)
		wantY := fieldFromHex(test.y)
		for _, odd := range []bool{false, true} {
			var y FieldVal
			if !DecompressY(&x, odd, &y) {
				t.Fatalf("%s: decompression failed", test.x)
			}
			if y.IsOdd() != odd {
				t.Fatalf("%s: got oddness %v, want %v", test.x, y.IsOdd(), odd)
			}
			if odd == wantY.IsOdd() && !y.Equals(&wantY) {
				t.Fatalf("%s: got y %v, want %v", test.x, y, wantY)
			}
			if !isOnCurveAffine(&x, &y) {
				t.Fatalf("%s: decompressed point is not on the curve", test.x)
			}
		}
	}

	// x^3 + 7 is not a square for x = 0 and x = 5.
	for _, v := range []uint32{0, 5} {
		var x, y FieldVal
		x.SetInt(v)
		if DecompressY(&x, false, &y) {
			t.Errorf("x = %d: decompression unexpectedly succeeded", v)
		}
	}
}

// TestBaseTable ensures every precomputed entry is the expected multiple of
// the generator.
func TestBaseTable(t *testing.T) {
	table := precomputedBaseTable()
	g := Generator()
	for i := 0; i < len(table); i += 9 {
		for j := 0; j < 16; j++ {
			// Entry j of window i is j * 16^i * G.
			kBig := new(big.Int).Lsh(big.NewInt(int64(j)), uint(4*i))
			k := scalarFromBig(kBig)
			var want ProjectivePoint
			ScalarMult(&k, &g, &want)
			if !table[i][j].EqualsPoint(&want) {
				t.Fatalf("window %d entry %d mismatch", i, j)
			}
		}
	}
}

func BenchmarkScalarBaseMult(b *testing.B) {
	k := scalarFromHex(knownMultiples[4].k)
	var result ProjectivePoint
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ScalarBaseMult(&k, &result)
	}
}

func BenchmarkScalarMult(b *testing.B) {
	k := scalarFromHex(knownMultiples[4].k)
	g := Generator()
	var result ProjectivePoint
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ScalarMult(&k, &g, &result)
	}
}
