// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// References:
//   [BIP340]: Schnorr Signatures for secp256k1
//     https://github.com/bitcoin/bips/blob/master/bip-0340.mediawiki

// SchnorrSigLen is the length of a serialized BIP-340 signature.
const SchnorrSigLen = 64

var (
	// The tags used to domain separate the hashes in [BIP340].
	tagBIP0340Aux       = []byte("BIP0340/aux")
	tagBIP0340Nonce     = []byte("BIP0340/nonce")
	tagBIP0340Challenge = []byte("BIP0340/challenge")
)

// SchnorrSignature is a BIP-340 signature.  r is the x coordinate of the
// nonce point R, which always has an even y coordinate, and s is the
// signature scalar.
type SchnorrSignature struct {
	r FieldVal
	s ModNScalar
}

// NewSchnorrSignature instantiates a new signature given some r and s values.
func NewSchnorrSignature(r *FieldVal, s *ModNScalar) *SchnorrSignature {
	return &SchnorrSignature{*r, *s}
}

// Serialize returns the 64-byte r || s encoding of the signature.
func (sig *SchnorrSignature) Serialize() []byte {
	var b [SchnorrSigLen]byte
	sig.r.PutBytesUnchecked(b[:32])
	sig.s.PutBytesUnchecked(b[32:])
	return b[:]
}

// IsEqual returns whether or not the two signatures are identical.
func (sig *SchnorrSignature) IsEqual(other *SchnorrSignature) bool {
	return sig.r.Equals(&other.r) && sig.s.Equals(&other.s)
}

// ParseSchnorrSignature parses a 64-byte BIP-340 signature.  r must be less
// than the field prime and s less than the group order; values are never
// reduced.
func ParseSchnorrSignature(sig []byte) (*SchnorrSignature, error) {
	if len(sig) != SchnorrSigLen {
		str := fmt.Sprintf("malformed signature: invalid length: %d != %d",
			len(sig), SchnorrSigLen)
		return nil, makeError(ErrSchnorrSigInvalidLen, str)
	}

	var r FieldVal
	if overflow := r.SetByteSlice(sig[:32]); overflow {
		str := "invalid signature: r >= field prime"
		return nil, makeError(ErrSchnorrSigRTooBig, str)
	}
	var s ModNScalar
	if overflow := s.SetByteSlice(sig[32:]); overflow {
		str := "invalid signature: s >= group order"
		return nil, makeError(ErrSchnorrSigSTooBig, str)
	}
	return NewSchnorrSignature(&r, &s), nil
}

// schnorrChallenge computes e = int(hash_BIP0340/challenge(r || P || m)) mod
// N.
func schnorrChallenge(rBytes, pubKeyBytes, msg []byte) ModNScalar {
	h := chainhash.TaggedHash(tagBIP0340Challenge, rBytes, pubKeyBytes, msg)
	var e ModNScalar
	e.SetBytes((*[32]byte)(h))
	return e
}

// schnorrVerify checks the signature against the given x-only public key.
func schnorrVerify(sig *SchnorrSignature, msg []byte, pubKey *PublicKey) bool {
	// 1. P = lift_x(pk), done by the caller
	// 2. r and s were range checked when the signature was parsed
	// 3. e = int(hash_BIP0340/challenge(r || P.x || m)) mod N
	// 4. R = s*G - e*P
	// 5. Fail if R is infinity, R.y is odd or R.x != r
	var liftedY FieldVal
	pubX := pubKey.X()
	if !DecompressY(&pubX, false, &liftedY) {
		return false
	}
	var one FieldVal
	one.SetInt(1)
	P := MakeProjectivePoint(&pubX, &liftedY, &one)

	rBytes := sig.r.Bytes()
	pubBytes := pubX.Bytes()
	e := schnorrChallenge(rBytes[:], pubBytes[:], msg)
	e.Negate()

	var sG, eP, R ProjectivePoint
	ScalarBaseMult(&sig.s, &sG)
	ScalarMult(&e, &P, &eP)
	AddPoints(&sG, &eP, &R)
	if R.IsIdentity() {
		return false
	}
	R.ToAffine()
	if R.Y.IsOdd() {
		return false
	}
	return R.X.Equals(&sig.r)
}

// Verify returns whether or not the signature is valid for the message and
// public key.  Only the x coordinate of the public key is used, as BIP-340
// keys are x-only.
func (sig *SchnorrSignature) Verify(msg []byte, pubKey *PublicKey) bool {
	return schnorrVerify(sig, msg, pubKey)
}

// SchnorrVerify parses the 64-byte signature and the 32-byte x-only public
// key and reports whether the signature is valid for the message.  Any
// non-canonical encoding fails verification.
func SchnorrVerify(sig, msg, xOnlyPubKey []byte) bool {
	s, err := ParseSchnorrSignature(sig)
	if err != nil {
		return false
	}
	pubKey, err := ParseXOnlyPubKey(xOnlyPubKey)
	if err != nil {
		return false
	}
	return schnorrVerify(s, msg, pubKey)
}

// SchnorrSign produces a BIP-340 signature of msg with the private key.  The
// auxRand value is the 32 bytes of auxiliary randomness mixed into the
// nonce; a nil value is treated as 32 zero bytes.  The signature is verified
// before it is returned.
func SchnorrSign(privKey *PrivateKey, msg, auxRand []byte) (*SchnorrSignature, error) {
	// 1. d' = int(sk), which is in [1, N-1] by construction
	// 2. P = d'*G
	// 3. d = d' if has_even_y(P), otherwise d = N - d'
	// 4. t = bytes(d) xor hash_BIP0340/aux(a)
	// 5. rand = hash_BIP0340/nonce(t || bytes(P) || m)
	// 6. k' = int(rand) mod N, retry when k' = 0
	// 7. R = k'*G
	// 8. k = k' if has_even_y(R), otherwise k = N - k'
	// 9. e = int(hash_BIP0340/challenge(bytes(R) || bytes(P) || m)) mod N
	// 10. sig = bytes(R) || bytes((k + ed) mod N)
	// 11. Fail if the signature does not verify
	if err := privKey.checkUsable(); err != nil {
		return nil, err
	}
	var aux [32]byte
	if auxRand != nil {
		if len(auxRand) != 32 {
			str := fmt.Sprintf("invalid auxiliary randomness length: %d != 32",
				len(auxRand))
			return nil, makeError(ErrDecode, str)
		}
		copy(aux[:], auxRand)
	}

	// Steps 2 and 3.
	var P ProjectivePoint
	ScalarBaseMult(&privKey.Key, &P)
	P.ToAffine()
	var d, negD ModNScalar
	d.Set(&privKey.Key)
	negD.NegateVal(&d)
	d.CMov(&negD, P.Y.IsOddBit())
	defer d.Zero()
	defer negD.Zero()
	pubBytes := P.X.Bytes()

	var dBytes [32]byte
	d.PutBytes(&dBytes)
	defer zeroArray32(&dBytes)

	for attempt := 0; attempt < maxSignAttempts; attempt++ {
		// Step 4.
		auxHash := chainhash.TaggedHash(tagBIP0340Aux, aux[:])
		var t [32]byte
		for i := range t {
			t[i] = dBytes[i] ^ auxHash[i]
		}

		// Steps 5 and 6.
		rand := chainhash.TaggedHash(tagBIP0340Nonce, t[:], pubBytes[:], msg)
		zeroArray32(&t)
		var k ModNScalar
		k.SetBytes((*[32]byte)(rand))
		if k.IsZero() {
			// Derive fresh auxiliary data from the previous value so the
			// next attempt uses an unrelated nonce.
			aux = *chainhash.TaggedHash(tagBIP0340Aux, aux[:], []byte{byte(attempt)})
			continue
		}

		// Steps 7 and 8.
		var R ProjectivePoint
		ScalarBaseMult(&k, &R)
		R.ToAffine()
		var negK ModNScalar
		negK.NegateVal(&k)
		k.CMov(&negK, R.Y.IsOddBit())
		negK.Zero()

		// Steps 9 and 10.
		rBytes := R.X.Bytes()
		e := schnorrChallenge(rBytes[:], pubBytes[:], msg)
		var s ModNScalar
		s.Mul2(&e, &d).Add(&k)
		k.Zero()
		sig := NewSchnorrSignature(&R.X, &s)

		// Step 11.
		pubKey := &PublicKey{x: P.X, y: P.Y}
		if !schnorrVerify(sig, msg, pubKey) {
			str := "signature failed to verify after creation"
			return nil, makeError(ErrSignSelfCheckFailed, str)
		}
		return sig, nil
	}

	str := fmt.Sprintf("no valid signature after %d nonces", maxSignAttempts)
	return nil, makeError(ErrSignRetriesExhausted, str)
}
