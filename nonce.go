// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"hash"
)

var (
	// singleZero and singleOne are the separator bytes used by the RFC6979
	// state updates.
	singleZero = []byte{0x00}
	singleOne  = []byte{0x01}

	// oneInitializer is the initial value of V.
	oneInitializer = bytes.Repeat([]byte{0x01}, sha256.Size)

	// zeroInitializer is the initial value of K.
	zeroInitializer = make([]byte, sha256.Size)
)

// hmacState holds the K and V values of the RFC6979 HMAC_DRBG.
type hmacState struct {
	k, v []byte
	mac  hash.Hash
}

// rekey replaces K and resets the keyed hash for it.
func (h *hmacState) rekey(k []byte) {
	h.k = k
	h.mac = hmac.New(sha256.New, k)
}

// sum computes HMAC_K(parts...).
func (h *hmacState) sum(parts ...[]byte) []byte {
	h.mac.Reset()
	for _, p := range parts {
		h.mac.Write(p)
	}
	return h.mac.Sum(nil)
}

// NonceRFC6979 generates a nonce deterministically according to RFC 6979 using
// HMAC-SHA256 for the hashing function.  It takes a 32-byte hash as an input
// and returns a nonce in [1, N-1] to be used for deterministic signing.  The
// extra and version arguments are optional, but allow additional data to be
// added to the input of the HMAC.  When provided, the extra data must be
// 32-bytes and version must be 16 bytes or they will be ignored.
//
// Finally, the extraIterations parameter provides a method to produce a stream
// of deterministic nonces to ensure the signing code is able to produce a nonce
// that results in a valid signature in the extremely unlikely event the
// original nonce produced results in an invalid signature (e.g. R == 0).
// Signing code should start with 0 and increment it if necessary.
func NonceRFC6979(privKey []byte, hash []byte, extra []byte, version []byte, extraIterations uint32) *ModNScalar {
	const (
		privKeyLen = 32
		hashLen    = 32
		extraLen   = 32
		versionLen = 16
	)
	var keyBuf [privKeyLen + hashLen + extraLen + versionLen]byte
	defer func() {
		for i := range keyBuf {
			keyBuf[i] = 0
		}
	}()

	// int2octets(x): the private key left padded to 32 bytes.
	if len(privKey) > privKeyLen {
		privKey = privKey[:privKeyLen]
	}
	offset := privKeyLen - len(privKey)
	offset += copy(keyBuf[offset:], privKey)

	// bits2octets(h1): the leftmost 256 bits of the hash reduced modulo N.
	var h1 ModNScalar
	h1.SetByteSlice(hash)
	h1.PutBytesUnchecked(keyBuf[offset : offset+hashLen])
	offset += hashLen

	// Optional additional data per section 3.6.  A version without extra data
	// leaves the extra data portion zeroed.
	if len(extra) == extraLen {
		offset += copy(keyBuf[offset:], extra)
		if len(version) == versionLen {
			offset += copy(keyBuf[offset:], version)
		}
	} else if len(version) == versionLen {
		offset += extraLen
		offset += copy(keyBuf[offset:], version)
	}
	key := keyBuf[:offset]

	// Steps B and C.
	var st hmacState
	st.v = oneInitializer
	st.rekey(zeroInitializer)

	// Steps D through G.
	st.rekey(st.sum(st.v, singleZero, key))
	st.v = st.sum(st.v)
	st.rekey(st.sum(st.v, singleOne, key))
	st.v = st.sum(st.v)

	// Step H.  Since the HMAC output is exactly as long as the group order,
	// every round produces one full candidate.  Candidates outside [1, N-1]
	// are skipped, as are the first extraIterations valid ones.
	var generated uint32
	for {
		st.v = st.sum(st.v)

		var secret ModNScalar
		overflow := secret.SetByteSlice(st.v)
		if !overflow && !secret.IsZero() {
			generated++
			if generated > extraIterations {
				return &secret
			}
		}
		secret.Zero()

		st.rekey(st.sum(st.v, singleZero))
		st.v = st.sum(st.v)
	}
}
