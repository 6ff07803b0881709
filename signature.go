// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"fmt"
)

// References:
//   [GECC]: Guide to Elliptic Curve Cryptography (Hankerson, Menezes, Vanstone)
//
//   [ISO/IEC 8825-1]: Information technology - ASN.1 encoding rules:
//     Specification of Basic Encoding Rules (BER), Canonical Encoding Rules
//     (CER) and Distinguished Encoding Rules (DER)
//
//   [SEC1]: Elliptic Curve Cryptography (May 31, 2009, Version 2.0)
//     https://www.secg.org/sec1-v2.pdf

// maxSignAttempts is the number of nonces tried before signing gives up.
// Each attempt fails with probability around 2^-256.
const maxSignAttempts = 16

// orderAsFieldVal is the order of the secp256k1 group stored as a field value.
var orderAsFieldVal = FieldVal{n: curveOrder}

const (
	// asn1SequenceID is the ASN.1 identifier for a sequence and is used when
	// parsing and serializing signatures encoded with the Distinguished
	// Encoding Rules (DER) format per section 10 of [ISO/IEC 8825-1].
	asn1SequenceID = 0x30

	// asn1IntegerID is the ASN.1 identifier for an integer and is used when
	// parsing and serializing signatures encoded with the Distinguished
	// Encoding Rules (DER) format per section 10 of [ISO/IEC 8825-1].
	asn1IntegerID = 0x02

	// CompactSigLen is the length of a compact r || s signature.
	CompactSigLen = 64

	// RecoverableSigLen is the length of a recoverable signature.  It
	// consists of a recovery code byte followed by the R and S components
	// serialized as 32-byte big-endian values.
	RecoverableSigLen = 65

	// compactSigMagicOffset is a value used when creating the recovery code
	// inherited from Bitcoin and has no meaning, but has been retained for
	// compatibility.
	compactSigMagicOffset = 27

	// compactSigCompPubKey is a value used when creating the recovery code to
	// indicate the original public key was compressed.
	compactSigCompPubKey = 4

	// pubKeyRecoveryCodeOddnessBit specifies the bit that indicates the oddess
	// of the Y coordinate of the random point calculated when creating a
	// signature.
	pubKeyRecoveryCodeOddnessBit = 1 << 0

	// pubKeyRecoveryCodeOverflowBit specifies the bit that indicates the X
	// coordinate of the random point calculated when creating a signature was
	// >= N, where N is the order of the group.
	pubKeyRecoveryCodeOverflowBit = 1 << 1
)

// Signature is a type representing an ECDSA signature.
type Signature struct {
	r ModNScalar
	s ModNScalar
}

// VerifyOptions alters how a signature is verified.  The zero value is the
// strict mode used by Verify.
type VerifyOptions struct {
	// AllowHighS accepts signatures whose S component is greater than half
	// the group order.  Such signatures are valid ECDSA signatures but are
	// malleable, so they are rejected by default.
	AllowHighS bool
}

// NewSignature instantiates a new signature given some R and S values.
func NewSignature(r, s *ModNScalar) *Signature {
	return &Signature{*r, *s}
}

// R returns the r value of the signature.
func (sig *Signature) R() ModNScalar {
	return sig.r
}

// S returns the s value of the signature.
func (sig *Signature) S() ModNScalar {
	return sig.s
}

// Serialize returns the ECDSA signature in the Distinguished Encoding Rules
// (DER) format per section 10 of [ISO/IEC 8825-1].  Signatures produced by
// this package are always low-S; the S component is serialized as is.
func (sig *Signature) Serialize() []byte {
	// The format of a DER encoded signature is as follows:
	//
	// 0x30 <total length> 0x02 <length of R> <R> 0x02 <length of S> <S>
	//   - 0x30 is the ASN.1 identifier for a sequence.
	//   - Total length is 1 byte and specifies length of all remaining data.
	//   - 0x02 is the ASN.1 identifier that specifies an integer follows.
	//   - Length of R is 1 byte and specifies how many bytes R occupies.
	//   - R is the arbitrary length big-endian encoded number which
	//     represents the R value of the signature.  DER encoding dictates
	//     that the value must be encoded using the minimum possible number
	//     of bytes.  This implies the first byte can only be null if the
	//     highest bit of the next byte is set in order to prevent it from
	//     being interpreted as a negative number.
	//   - 0x02 is once again the ASN.1 integer identifier.
	//   - Length of S is 1 byte and specifies how many bytes S occupies.
	//   - S is the arbitrary length big-endian encoded number which
	//     represents the S value of the signature.  The encoding rules are
	//     identical as those for R.
	var rBuf, sBuf [33]byte
	sig.r.PutBytesUnchecked(rBuf[1:])
	sig.s.PutBytesUnchecked(sBuf[1:])

	// Trim leading zero bytes so long as the next byte does not have the
	// high bit set and it's not the final byte.
	canonR, canonS := rBuf[:], sBuf[:]
	for len(canonR) > 1 && canonR[0] == 0x00 && canonR[1]&0x80 == 0 {
		canonR = canonR[1:]
	}
	for len(canonS) > 1 && canonS[0] == 0x00 && canonS[1]&0x80 == 0 {
		canonS = canonS[1:]
	}

	// Total length of returned signature is 1 byte for each magic and length
	// (6 total), plus lengths of R and S.
	totalLen := 6 + len(canonR) + len(canonS)
	b := make([]byte, 0, totalLen)
	b = append(b, asn1SequenceID, byte(totalLen-2))
	b = append(b, asn1IntegerID, byte(len(canonR)))
	b = append(b, canonR...)
	b = append(b, asn1IntegerID, byte(len(canonS)))
	b = append(b, canonS...)
	return b
}

// SerializeCompact returns the signature as the 64-byte concatenation of the
// 32-byte big-endian R and S components.
func (sig *Signature) SerializeCompact() []byte {
	var b [CompactSigLen]byte
	sig.r.PutBytesUnchecked(b[:32])
	sig.s.PutBytesUnchecked(b[32:])
	return b[:]
}

// fieldToModNScalar converts a field value to scalar modulo the group order and
// returns the scalar along with either 1 if it was reduced (aka it overflowed)
// or 0 otherwise.
func fieldToModNScalar(v *FieldVal) (ModNScalar, uint32) {
	var buf [32]byte
	v.PutBytes(&buf)
	var s ModNScalar
	overflow := s.SetBytes(&buf)
	zeroArray32(&buf)
	return s, overflow
}

// modNScalarToField converts a scalar modulo the group order to a field value.
func modNScalarToField(v *ModNScalar) FieldVal {
	var buf [32]byte
	v.PutBytes(&buf)
	var fv FieldVal
	fv.SetBytes(&buf)
	return fv
}

// Verify returns whether or not the signature is valid for the provided hash
// and secp256k1 public key.  Signatures with an S component greater than half
// the group order are rejected; see VerifyWithOptions.
func (sig *Signature) Verify(hash []byte, pubKey *PublicKey) bool {
	return sig.VerifyWithOptions(hash, pubKey, VerifyOptions{})
}

// VerifyWithOptions returns whether or not the signature is valid for the
// provided hash and secp256k1 public key under the given options.
func (sig *Signature) VerifyWithOptions(hash []byte, pubKey *PublicKey, opts VerifyOptions) bool {
	// The algorithm for verifying an ECDSA signature is given as algorithm 4.30
	// in [GECC].
	//
	// 1. Fail if R and S are not in [1, N-1]
	// 2. e = H(m)
	// 3. w = S^-1 mod N
	// 4. u1 = e * w mod N
	//    u2 = R * w mod N
	// 5. X = u1G + u2Q
	// 6. Fail if X is the point at infinity
	// 7. x = X.x mod N (X.x is the x coordinate of X)
	// 8. Verified if x == R
	//
	// Since X is kept in projective coordinates, step 7 is done without an
	// inversion.  R is the x coordinate mod N of a point whose x coordinate
	// was originally mod P, so the affine x coordinate is either R or R+N,
	// the latter only when R+N < P.  With x = X.x / X.z that gives:
	//
	// 7. Verified if R * X.z == X.x (mod P)
	// 8. Fail if R + N >= P
	// 9. Verified if (R + N) * X.z == X.x (mod P)

	// Step 1.
	if sig.r.IsZero() || sig.s.IsZero() {
		return false
	}
	if !opts.AllowHighS && sig.s.IsOverHalfOrder() {
		return false
	}

	// Step 2.
	var e ModNScalar
	e.SetByteSlice(hash)

	// Steps 3 and 4.
	var w, u1, u2 ModNScalar
	w.InverseVal(&sig.s)
	u1.Mul2(&e, &w)
	u2.Mul2(&sig.r, &w)

	// Step 5.
	var X, Q, u1G, u2Q ProjectivePoint
	pubKey.AsProjective(&Q)
	ScalarBaseMult(&u1, &u1G)
	ScalarMult(&u2, &Q, &u2Q)
	AddPoints(&u1G, &u2Q, &X)

	// Step 6.
	if X.IsIdentity() {
		return false
	}

	// Step 7.
	sigRModP := modNScalarToField(&sig.r)
	var result FieldVal
	result.Mul2(&sigRModP, &X.Z)
	if result.Equals(&X.X) {
		return true
	}

	// Step 8.
	if sigRModP.IsGtOrEqPrimeMinusOrder() {
		return false
	}

	// Step 9.
	sigRModP.Add(&orderAsFieldVal)
	result.Mul2(&sigRModP, &X.Z)
	return result.Equals(&X.X)
}

// IsEqual compares this Signature instance to the one passed, returning true if
// both Signatures are equivalent.  A signature is equivalent to another, if
// they both have the same scalar value for R and S.
func (sig *Signature) IsEqual(otherSig *Signature) bool {
	return sig.r.Equals(&otherSig.r) && sig.s.Equals(&otherSig.s)
}

// parseSigComponents decodes 32-byte R and S values and ensures both are in
// [1, N-1].
func parseSigComponents(rBytes, sBytes []byte) (*Signature, error) {
	var r, s ModNScalar
	if overflow := r.SetByteSlice(rBytes); overflow {
		str := "invalid signature: R >= group order"
		return nil, signatureError(ErrSigRTooBig, str)
	}
	if r.IsZero() {
		str := "invalid signature: R is 0"
		return nil, signatureError(ErrSigRIsZero, str)
	}
	if overflow := s.SetByteSlice(sBytes); overflow {
		str := "invalid signature: S >= group order"
		return nil, signatureError(ErrSigSTooBig, str)
	}
	if s.IsZero() {
		str := "invalid signature: S is 0"
		return nil, signatureError(ErrSigSIsZero, str)
	}
	return NewSignature(&r, &s), nil
}

// ParseCompactSignature parses a 64-byte r || s signature.  Both components
// must be in [1, N-1].
func ParseCompactSignature(sig []byte) (*Signature, error) {
	if len(sig) != CompactSigLen {
		str := fmt.Sprintf("malformed signature: invalid length: %d != %d",
			len(sig), CompactSigLen)
		return nil, signatureError(ErrSigInvalidLen, str)
	}
	return parseSigComponents(sig[:32], sig[32:])
}

// ParseDERSignature parses a signature in the Distinguished Encoding Rules
// (DER) format per section 10 of [ISO/IEC 8825-1] and enforces the following
// additional restrictions specific to secp256k1:
//
// - The R and S values must be in the valid range for secp256k1 scalars:
//   - Negative values are rejected
//   - Zero is rejected
//   - Values greater than or equal to the secp256k1 group order are rejected
func ParseDERSignature(sig []byte) (*Signature, error) {
	// All lengths are a single byte since the largest possible signature is
	// well below 128 bytes.
	const (
		// minSigLen is the minimum length of a DER encoded signature and is
		// when both R and S are 1 byte each.
		//
		// 0x30 + <1-byte> + 0x02 + 0x01 + <byte> + 0x2 + 0x01 + <byte>
		minSigLen = 8

		// maxSigLen is the maximum length of a DER encoded signature and is
		// when both R and S are 33 bytes each.
		//
		// 0x30 + <1-byte> + 0x02 + 0x21 + <33 bytes> + 0x2 + 0x21 + <33 bytes>
		maxSigLen = 72

		sequenceOffset = 0
		dataLenOffset  = 1
		rTypeOffset    = 2
		rLenOffset     = 3
		rOffset        = 4
	)

	sigLen := len(sig)
	if sigLen < minSigLen {
		str := fmt.Sprintf("malformed signature: too short: %d < %d", sigLen,
			minSigLen)
		return nil, signatureError(ErrSigTooShort, str)
	}
	if sigLen > maxSigLen {
		str := fmt.Sprintf("malformed signature: too long: %d > %d", sigLen,
			maxSigLen)
		return nil, signatureError(ErrSigTooLong, str)
	}
	if sig[sequenceOffset] != asn1SequenceID {
		str := fmt.Sprintf("malformed signature: format has wrong type: %#x",
			sig[sequenceOffset])
		return nil, signatureError(ErrSigInvalidSeqID, str)
	}
	if int(sig[dataLenOffset]) != sigLen-2 {
		str := fmt.Sprintf("malformed signature: bad length: %d != %d",
			sig[dataLenOffset], sigLen-2)
		return nil, signatureError(ErrSigInvalidDataLen, str)
	}

	// Calculate the offsets of the elements related to S and ensure S is inside
	// the signature.
	rLen := int(sig[rLenOffset])
	sTypeOffset := rOffset + rLen
	sLenOffset := sTypeOffset + 1
	if sTypeOffset >= sigLen {
		str := "malformed signature: S type indicator missing"
		return nil, signatureError(ErrSigMissingSTypeID, str)
	}
	if sLenOffset >= sigLen {
		str := "malformed signature: S length missing"
		return nil, signatureError(ErrSigMissingSLen, str)
	}

	// The lengths of R and S must match the overall length of the signature.
	sOffset := sLenOffset + 1
	sLen := int(sig[sLenOffset])
	if sOffset+sLen != sigLen {
		str := "malformed signature: invalid S length"
		return nil, signatureError(ErrSigInvalidSLen, str)
	}

	if sig[rTypeOffset] != asn1IntegerID {
		str := fmt.Sprintf("malformed signature: R integer marker: %#x != %#x",
			sig[rTypeOffset], asn1IntegerID)
		return nil, signatureError(ErrSigInvalidRIntID, str)
	}
	if rLen == 0 {
		str := "malformed signature: R length is zero"
		return nil, signatureError(ErrSigZeroRLen, str)
	}
	if sig[rOffset]&0x80 != 0 {
		str := "malformed signature: R is negative"
		return nil, signatureError(ErrSigNegativeR, str)
	}
	if rLen > 1 && sig[rOffset] == 0x00 && sig[rOffset+1]&0x80 == 0 {
		str := "malformed signature: R value has too much padding"
		return nil, signatureError(ErrSigTooMuchRPadding, str)
	}

	if sig[sTypeOffset] != asn1IntegerID {
		str := fmt.Sprintf("malformed signature: S integer marker: %#x != %#x",
			sig[sTypeOffset], asn1IntegerID)
		return nil, signatureError(ErrSigInvalidSIntID, str)
	}
	if sLen == 0 {
		str := "malformed signature: S length is zero"
		return nil, signatureError(ErrSigZeroSLen, str)
	}
	if sig[sOffset]&0x80 != 0 {
		str := "malformed signature: S is negative"
		return nil, signatureError(ErrSigNegativeS, str)
	}
	if sLen > 1 && sig[sOffset] == 0x00 && sig[sOffset+1]&0x80 == 0 {
		str := "malformed signature: S value has too much padding"
		return nil, signatureError(ErrSigTooMuchSPadding, str)
	}

	// Strip the sign padding.  SetByteSlice truncates, so anything still
	// longer than 32 bytes must be rejected explicitly.
	rBytes := sig[rOffset : rOffset+rLen]
	for len(rBytes) > 0 && rBytes[0] == 0x00 {
		rBytes = rBytes[1:]
	}
	if len(rBytes) > 32 {
		str := "invalid signature: R is larger than 256 bits"
		return nil, signatureError(ErrSigRTooBig, str)
	}
	sBytes := sig[sOffset : sOffset+sLen]
	for len(sBytes) > 0 && sBytes[0] == 0x00 {
		sBytes = sBytes[1:]
	}
	if len(sBytes) > 32 {
		str := "invalid signature: S is larger than 256 bits"
		return nil, signatureError(ErrSigSTooBig, str)
	}
	return parseSigComponents(rBytes, sBytes)
}

// signRFC6979 generates a deterministic ECDSA signature according to RFC 6979
// and BIP 62 and returns it along with an additional public key recovery code
// for efficiently recovering the public key from the signature.
func signRFC6979(privateKey *PrivateKey, hash []byte) (*Signature, byte, error) {
	// The algorithm for producing an ECDSA signature is given as algorithm 4.29
	// in [GECC].
	//
	// G = curve generator
	// N = curve order
	// d = private key
	// m = message
	// r, s = signature
	//
	// 1. Select random nonce k in [1, N-1]
	// 2. Compute kG
	// 3. r = kG.x mod N (kG.x is the x coordinate of the point kG)
	//    Repeat from step 1 if r = 0
	// 4. e = H(m)
	// 5. s = k^-1(e + dr) mod N
	//    Repeat from step 1 if s = 0
	// 6. Return (r,s)
	//
	// The nonce in step 1 comes from RFC6979 parameterized by an iteration
	// count for the repeat cases, and s is negated when it is > N/2 so that
	// only the low-S form of each signature is ever produced.
	if err := privateKey.checkUsable(); err != nil {
		return nil, 0, err
	}
	privKeyBytes := privateKey.Key.Bytes()
	defer zeroArray32(&privKeyBytes)

	var e ModNScalar
	e.SetByteSlice(hash)

	for iteration := uint32(0); iteration < maxSignAttempts; iteration++ {
		// Compute nonce.
		k := NonceRFC6979(privKeyBytes[:], hash, nil, nil, iteration)

		// Compute point.
		var kG ProjectivePoint
		ScalarBaseMult(k, &kG)
		kG.ToAffine()

		// Compute the scalar components.
		r, overflow := fieldToModNScalar(&kG.X)
		var kInv, s ModNScalar
		kInv.InverseVal(k)
		s.Mul2(&privateKey.Key, &r).Add(&e).Mul(&kInv)
		k.Zero()
		kInv.Zero()

		// Check validity.  A degenerate result retries with the next nonce
		// in the deterministic stream.
		if r.IsZero() || s.IsZero() {
			continue
		}

		// Bit 0 of the recovery code is the oddness of the random point and
		// bit 1 whether its x coordinate was >= N.
		pubKeyRecoveryCode := byte(overflow<<1) | byte(kG.Y.IsOddBit())
		if s.IsOverHalfOrder() {
			s.Negate()

			// Negating s corresponds to the random point that would have been
			// generated by -k (mod N), which necessarily has the opposite
			// oddness since N is prime.
			pubKeyRecoveryCode ^= pubKeyRecoveryCodeOddnessBit
		}
		return NewSignature(&r, &s), pubKeyRecoveryCode, nil
	}

	str := fmt.Sprintf("no valid signature after %d nonces", maxSignAttempts)
	return nil, 0, makeError(ErrSignRetriesExhausted, str)
}

// SignChecked generates a deterministic low-S ECDSA signature of the provided
// hash using the given private key.  It fails with ErrPrivKeyOutOfRange when
// the key has been zeroed and with ErrSignRetriesExhausted when every nonce it
// tried was degenerate.
func SignChecked(key *PrivateKey, hash []byte) (*Signature, error) {
	sig, _, err := signRFC6979(key, hash)
	return sig, err
}

// Sign generates a deterministic low-S ECDSA signature of the provided hash
// using the given private key.  It panics when SignChecked fails, which only
// happens for a zeroed key or in the astronomically unlikely case that every
// nonce is degenerate.
func Sign(key *PrivateKey, hash []byte) *Signature {
	sig, err := SignChecked(key, hash)
	if err != nil {
		panic(err)
	}
	return sig
}

// SignRecoverable produces a recoverable signature of the data in hash with
// the given private key.  The isCompressedKey parameter specifies if the
// given signature should reference a compressed public key or not.
//
// Recoverable signature format:
// <1-byte recovery code><32-byte R><32-byte S>
//
// The recovery code is the value 27 + public key recovery code + 4 if the
// signature was created with a compressed public key.
func SignRecoverable(key *PrivateKey, hash []byte, isCompressedKey bool) ([]byte, error) {
	sig, pubKeyRecoveryCode, err := signRFC6979(key, hash)
	if err != nil {
		return nil, err
	}
	code := compactSigMagicOffset + pubKeyRecoveryCode
	if isCompressedKey {
		code += compactSigCompPubKey
	}

	var b [RecoverableSigLen]byte
	b[0] = code
	sig.r.PutBytesUnchecked(b[1:33])
	sig.s.PutBytesUnchecked(b[33:65])
	return b[:], nil
}

// RecoverPublicKey attempts to recover the secp256k1 public key from the
// provided recoverable signature and message hash.  It returns the recovered
// key along with whether or not the original key was compressed.
//
// The signature is not verified separately.  Any r and s in [1, N-1] with a
// usable recovery code yield a key for which the signature verifies when high
// S values are allowed, so a successful recovery only shows that the
// signature is well formed.  Compare the result with the expected key.
func RecoverPublicKey(signature, hash []byte) (*PublicKey, bool, error) {
	// The equation to recover a public key candidate from an ECDSA signature
	// is Q = r^-1(sX - eG) where X is the random point whose x coordinate mod
	// N is r (see section 4.1.6 of [SEC1]).  There are four candidates for X:
	// (r,y), (r,-y), (r+N,y) and (r+N,-y).  The recovery code produced when
	// signing identifies the right one directly:
	//
	// 1. Fail if r and s are not in [1, N-1]
	// 2. Convert r to integer mod P
	// 3. If pubkey recovery code overflow bit is set:
	//    3.1 Fail if r + N >= P
	//    3.2 r = r + N (mod P)
	// 4. y = +sqrt(r^3 + 7) (mod P)
	//    4.1 Fail if y does not exist
	//    4.2 y = -y if needed to match pubkey recovery code oddness bit
	// 5. X = (r, y)
	// 6. e = H(m) mod N
	// 7. w = r^-1 mod N
	// 8. u1 = -(e * w) mod N
	//    u2 = s * w mod N
	// 9. Q = u1G + u2X
	// 10. Fail if Q is the point at infinity
	if len(signature) != RecoverableSigLen {
		str := fmt.Sprintf("malformed signature: invalid length: %d != %d",
			len(signature), RecoverableSigLen)
		return nil, false, signatureError(ErrSigInvalidLen, str)
	}

	const (
		minValidCode = compactSigMagicOffset
		maxValidCode = compactSigMagicOffset + compactSigCompPubKey + 3
	)
	sigRecoveryCode := signature[0]
	if sigRecoveryCode < minValidCode || sigRecoveryCode > maxValidCode {
		str := fmt.Sprintf("invalid signature: public key recovery code %d "+
			"is not in the valid range [%d, %d]", sigRecoveryCode,
			minValidCode, maxValidCode)
		return nil, false, signatureError(ErrSigInvalidRecoveryCode, str)
	}
	sigRecoveryCode -= compactSigMagicOffset
	wasCompressed := sigRecoveryCode&compactSigCompPubKey != 0
	pubKeyRecoveryCode := sigRecoveryCode & 3

	// Step 1.
	sig, err := parseSigComponents(signature[1:33], signature[33:])
	if err != nil {
		return nil, false, err
	}

	// Step 2.
	fieldR := modNScalarToField(&sig.r)

	// Step 3.
	if pubKeyRecoveryCode&pubKeyRecoveryCodeOverflowBit != 0 {
		if fieldR.IsGtOrEqPrimeMinusOrder() {
			str := "invalid signature: signature R + N >= P"
			return nil, false, signatureError(ErrSigOverflowsPrime, str)
		}
		fieldR.Add(&orderAsFieldVal)
	}

	// Step 4.
	oddY := pubKeyRecoveryCode&pubKeyRecoveryCodeOddnessBit != 0
	var y FieldVal
	if valid := DecompressY(&fieldR, oddY, &y); !valid {
		str := "invalid signature: not for a valid curve point"
		return nil, false, signatureError(ErrPointNotOnCurve, str)
	}

	// Step 5.
	var one FieldVal
	one.SetInt(1)
	X := MakeProjectivePoint(&fieldR, &y, &one)

	// Steps 6 through 8.
	var e, w, u1, u2 ModNScalar
	e.SetByteSlice(hash)
	w.InverseVal(&sig.r)
	u1.Mul2(&e, &w).Negate()
	u2.Mul2(&sig.s, &w)

	// Step 9.
	var Q, u1G, u2X ProjectivePoint
	ScalarBaseMult(&u1, &u1G)
	ScalarMult(&u2, &X, &u2X)
	AddPoints(&u1G, &u2X, &Q)

	// Step 10.
	pubKey, err := newPublicKeyFromPoint(&Q)
	if err != nil {
		return nil, false, err
	}
	return pubKey, wasCompressed, nil
}
