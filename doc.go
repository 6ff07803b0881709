// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package secp256k1 implements constant-time secp256k1 elliptic curve
cryptography in pure Go.

This package provides a pure Go implementation of elliptic curve cryptography
operations over the secp256k1 curve as well as data structures and functions
for working with public and private secp256k1 keys, ECDSA signatures and
BIP-340 Schnorr signatures.  See https://www.secg.org/sec2-v2.pdf for details
on the standard.

An overview of the features provided by this package are as follows:

  - Private key generation by rejection sampling, serialization, and parsing
  - Scoped private keys that are wiped on every exit path (WithPrivateKey)
  - Public key generation, serialization and parsing per ANSI X9.62-1998
  - Parses uncompressed, compressed, and hybrid public keys
  - Serializes uncompressed, compressed and BIP-340 x-only public keys
  - FieldVal type for working modulo the secp256k1 field prime
  - ModNScalar type for working modulo the secp256k1 group order
  - Complete point addition and doubling in homogeneous projective
    coordinates, free of exceptional cases
  - Constant-time scalar multiplication with an arbitrary point and with the
    base point (group generator)
  - Point decompression from a given x coordinate
  - Nonce generation via RFC6979 with support for extra data and version
    information that can be used to prevent nonce reuse between signing
    algorithms
  - Deterministic low-S ECDSA signatures, strict verification and an
    explicit compatibility mode for high-S signatures
  - DER, compact and recoverable ECDSA signature encodings and public key
    recovery
  - BIP-340 Schnorr signatures
  - ECDH shared secrets and HKDF derived keys

All operations on secret data, which includes field and scalar arithmetic,
scalar multiplication and signing, run in constant time: they do not branch on
secret values and do not index memory with them.  Variable-time code is
limited to public data such as encodings and signature verification results.

It also provides an implementation of the Go standard library crypto/elliptic
Curve interface via the S256 function so that it may be used with other packages
in the standard library such as crypto/x509 and crypto/ecdsa.  PrivateKey
implements crypto.Signer and produces DER encoded signatures.

# Errors

Errors returned by this package are of type Error and wrap an ErrorKind.
Every kind belongs to one of the categories ErrDecode, ErrRange,
ErrInvalidPoint or ErrInsufficientEntropy, so callers may match either the
specific kind or the category:

	if errors.Is(err, secp256k1.ErrRange) {
		...
	}

Failed signature verification is not an error; the verification functions
return false.
*/
package secp256k1
