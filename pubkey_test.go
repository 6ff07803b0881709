// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"bytes"
	"errors"
	"testing"
)

// TestParsePubKey ensures that public keys are properly parsed according
// to SEC 1 and ANSI X9.62 including both the positive and negative cases.
func TestParsePubKey(t *testing.T) {
	const (
		gx = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
		gy = "483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
		p  = "fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"
	)
	tests := []struct {
		name  string // test description
		key   string // hex encoded public key
		err   error  // expected error
		wantX string // expected x coordinate
		wantY string // expected y coordinate
	}{{
		name:  "uncompressed generator",
		key:   "04" + gx + gy,
		wantX: gx,
		wantY: gy,
	}, {
		name:  "compressed generator",
		key:   "02" + gx,
		wantX: gx,
		wantY: gy,
	}, {
		name:  "compressed negated generator",
		key:   "03" + gx,
		wantX: gx,
		wantY: "b7c52588d95c3b9aa25b0403f1eef75702e84bb7597aabe663b82f6f04ef2777",
	}, {
		name:  "hybrid generator",
		key:   "06" + gx + gy,
		wantX: gx,
		wantY: gy,
	}, {
		name: "hybrid generator with wrong oddness",
		key:  "07" + gx + gy,
		err:  ErrPubKeyMismatchedOddness,
	}, {
		name: "uncompressed with compressed format byte",
		key:  "02" + gx + gy,
		err:  ErrPubKeyInvalidFormat,
	}, {
		name: "compressed with uncompressed format byte",
		key:  "04" + gx,
		err:  ErrPubKeyInvalidFormat,
	}, {
		name: "empty",
		key:  "",
		err:  ErrPubKeyInvalidLen,
	}, {
		name: "x-only length",
		key:  gx,
		err:  ErrPubKeyInvalidLen,
	}, {
		name: "uncompressed x == P",
		key:  "04" + p + gy,
		err:  ErrPubKeyXTooBig,
	}, {
		name: "uncompressed y == P",
		key:  "04" + gx + p,
		err:  ErrPubKeyYTooBig,
	}, {
		name: "compressed x == P",
		key:  "02" + p,
		err:  ErrPubKeyXTooBig,
	}, {
		name: "uncompressed not on curve",
		key:  "04" + gx + "483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b9",
		err:  ErrPubKeyNotOnCurve,
	}, {
		name: "compressed x with no square root",
		key:  "02" + "0000000000000000000000000000000000000000000000000000000000000005",
		err:  ErrPubKeyNotOnCurve,
	}}

	for _, test := range tests {
		pubKey, err := ParsePubKey(hexToBytes(test.key))
		if !errors.Is(err, test.err) {
			t.Errorf("%s mismatched err -- got %v, want %v", test.name, err,
				test.err)
			continue
		}
		if err != nil {
			continue
		}

		wantX, wantY := fieldFromHex(test.wantX), fieldFromHex(test.wantY)
		x, y := pubKey.X(), pubKey.Y()
		if !x.Equals(&wantX) || !y.Equals(&wantY) {
			t.Errorf("%s: mismatched coordinates -- got (%v, %v), want "+
				"(%v, %v)", test.name, x, y, wantX, wantY)
			continue
		}
		if !pubKey.IsOnCurve() {
			t.Errorf("%s: parsed key is not on the curve", test.name)
		}
	}
}

// TestPubKeyErrorCategories ensures parse failures report their category.
func TestPubKeyErrorCategories(t *testing.T) {
	tests := []struct {
		key      string
		category error
	}{
		{"05" + "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", ErrDecode},
		{"0102", ErrDecode},
		{"02" + "fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", ErrRange},
		{"02" + "0000000000000000000000000000000000000000000000000000000000000000", ErrInvalidPoint},
	}
	for _, test := range tests {
		_, err := ParsePubKey(hexToBytes(test.key))
		if !errors.Is(err, test.category) {
			t.Errorf("%s: got %v, want category %v", test.key, err, test.category)
		}
	}
}

// TestPubKeySerializeRoundTrip ensures both encodings of derived public keys
// decode to the same key and that x-only keys keep the even y.
func TestPubKeySerializeRoundTrip(t *testing.T) {
	rng := newTestRand(t)
	for i := 0; i < 50; i++ {
		k := scalarFromBig(randScalarBig(rng))
		priv, err := NewPrivateKey(&k)
		if err != nil {
			continue
		}
		pub := priv.PubKey()
		if !pub.IsOnCurve() {
			t.Fatalf("public key of %v is not on the curve", k)
		}

		for _, serialized := range [][]byte{pub.SerializeCompressed(), pub.SerializeUncompressed()} {
			parsed, err := ParsePubKey(serialized)
			if err != nil {
				t.Fatalf("unexpected error parsing %x: %v", serialized, err)
			}
			if !parsed.IsEqual(pub) {
				t.Fatalf("round trip mismatch for %x", serialized)
			}
		}

		xOnly, err := ParseXOnlyPubKey(pub.SerializeXOnly())
		if err != nil {
			t.Fatalf("unexpected error parsing x-only key: %v", err)
		}
		y := xOnly.Y()
		if y.IsOdd() {
			t.Fatal("x-only key decoded with odd y")
		}
		if !bytes.Equal(xOnly.SerializeXOnly(), pub.SerializeXOnly()) {
			t.Fatal("x-only round trip mismatch")
		}
	}

	if _, err := ParseXOnlyPubKey(make([]byte, 33)); !errors.Is(err, ErrPubKeyInvalidLen) {
		t.Fatalf("unexpected error for 33-byte x-only key: %v", err)
	}
}

// TestNewPublicKey ensures public keys can only be created from points on
// the curve and never from the point at infinity.
func TestNewPublicKey(t *testing.T) {
	g := Generator()
	pub, err := NewPublicKey(&g.X, &g.Y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var proj ProjectivePoint
	pub.AsProjective(&proj)
	if !proj.EqualsPoint(&g) {
		t.Fatal("AsProjective does not round trip the generator")
	}

	var badY FieldVal
	badY.Set(&g.Y).AddInt(1)
	if _, err := NewPublicKey(&g.X, &badY); !errors.Is(err, ErrPubKeyNotOnCurve) {
		t.Fatalf("unexpected error for off-curve point: %v", err)
	}

	var inf ProjectivePoint
	inf.SetIdentity()
	if _, err := newPublicKeyFromPoint(&inf); !errors.Is(err, ErrPointAtInfinity) ||
		!errors.Is(err, ErrInvalidPoint) {
		t.Fatalf("unexpected error for the point at infinity: %v", err)
	}
}

// TestPubKeyToECDSA ensures the standard library conversion keeps the
// coordinates.
func TestPubKeyToECDSA(t *testing.T) {
	g := Generator()
	pub, _ := NewPublicKey(&g.X, &g.Y)
	ecdsaPub := pub.ToECDSA()
	if ecdsaPub.Curve != S256() {
		t.Fatal("unexpected curve")
	}
	if ecdsaPub.X.Cmp(S256().Gx) != 0 || ecdsaPub.Y.Cmp(S256().Gy) != 0 {
		t.Fatal("unexpected coordinates")
	}
}

// FuzzParsePubKey ensures the parser never panics and that every key it
// accepts is on the curve and re-encodes to an equivalent key.
func FuzzParsePubKey(f *testing.F) {
	f.Add(hexToBytes("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"))
	f.Add(hexToBytes("0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"))
	f.Add([]byte{})
	f.Fuzz(func(t *testing.T, b []byte) {
		pub, err := ParsePubKey(b)
		if err != nil {
			return
		}
		if !pub.IsOnCurve() {
			t.Fatalf("accepted key %x is not on the curve", b)
		}
		again, err := ParsePubKey(pub.SerializeCompressed())
		if err != nil || !again.IsEqual(pub) {
			t.Fatalf("re-encoding of %x does not round trip: %v", b, err)
		}
	})
}
