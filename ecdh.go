// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// maxDerivedKeyLen is the most output HKDF-SHA256 can produce.
const maxDerivedKeyLen = 255 * sha256.Size

// GenerateSharedSecret generates a shared secret based on a private key and a
// public key using Diffie-Hellman key exchange (ECDH) (RFC 5903).
// RFC5903 Section 9 states we should only return x.
//
// The multiplication runs in constant time with respect to the private key.
// The key must not have been zeroed: the result would be 32 zero bytes.  ECDH
// and DeriveSharedKey report that case as ErrPrivKeyOutOfRange instead.
// It is recommended to securely hash the result before using as a
// cryptographic key, see DeriveSharedKey.
func GenerateSharedSecret(privkey *PrivateKey, pubkey *PublicKey) []byte {
	var point, result ProjectivePoint
	pubkey.AsProjective(&point)
	ScalarMult(&privkey.Key, &point, &result)
	result.ToAffine()
	xBytes := result.X.Bytes()
	return xBytes[:]
}

// DeriveSharedKey runs the ECDH shared secret through HKDF-SHA256 with the
// given salt and info and returns a key of the requested length.  The length
// must be in [1, 255*32] or ErrRange is returned.
func DeriveSharedKey(privkey *PrivateKey, pubkey *PublicKey, salt, info []byte, length int) ([]byte, error) {
	if length < 1 || length > maxDerivedKeyLen {
		str := fmt.Sprintf("derived key length %d is not in [1, %d]", length,
			maxDerivedKeyLen)
		return nil, makeError(ErrRange, str)
	}
	if err := privkey.checkUsable(); err != nil {
		return nil, err
	}

	secret := GenerateSharedSecret(privkey, pubkey)
	defer func() {
		for i := range secret {
			secret[i] = 0
		}
	}()

	key := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, info), key); err != nil {
		str := fmt.Sprintf("failed to derive shared key: %v", err)
		return nil, makeError(ErrRange, str)
	}
	return key, nil
}

// ECDH generates a shared secret like GenerateSharedSecret, however by being
// part of the private key it is closer to go's own ecdh api.  A zeroed key
// fails with ErrPrivKeyOutOfRange.
func (privkey *PrivateKey) ECDH(remote *PublicKey) ([]byte, error) {
	if err := privkey.checkUsable(); err != nil {
		return nil, err
	}
	return GenerateSharedSecret(privkey, remote), nil
}
