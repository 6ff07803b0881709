// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// PrivKeyBytesLen defines the length in bytes of a serialized private key.
const PrivKeyBytesLen = 32

// maxKeyGenRejections bounds the number of candidates rejected while
// generating a key before the random source is considered broken.  An honest
// source produces an invalid candidate with probability below 2^-127.
const maxKeyGenRejections = 128

// PrivateKey provides facilities for working with secp256k1 private keys
// within this package and includes functionality such as serializing and
// parsing them as well as computing their associated public key.
//
// The key is in the range [1, N-1] until Zero is called.  Call Zero once the
// key is no longer needed, or use WithPrivateKey to scope its lifetime.  A
// zeroed key is rejected with ErrPrivKeyOutOfRange by every function that
// returns an error, and PubKey panics on it.
type PrivateKey struct {
	Key ModNScalar
}

// NewPrivateKey instantiates a new private key from a scalar encoded as a
// ModNScalar.  Zero is not a valid private key and fails with
// ErrPrivKeyOutOfRange.
func NewPrivateKey(key *ModNScalar) (*PrivateKey, error) {
	if key.IsZero() {
		str := "invalid private key: zero"
		return nil, makeError(ErrPrivKeyOutOfRange, str)
	}
	return &PrivateKey{Key: *key}, nil
}

// ParsePrivateKey decodes a 32-byte big-endian private key.  Inputs of any
// other length fail with ErrPrivKeyInvalidLen.  Values that are zero or
// greater than or equal to the group order fail with ErrPrivKeyOutOfRange
// rather than being silently reduced.
func ParsePrivateKey(privKeyBytes []byte) (*PrivateKey, error) {
	if len(privKeyBytes) != PrivKeyBytesLen {
		str := fmt.Sprintf("malformed private key: invalid length: %d != %d",
			len(privKeyBytes), PrivKeyBytesLen)
		return nil, makeError(ErrPrivKeyInvalidLen, str)
	}

	var key PrivateKey
	overflow := key.Key.SetByteSlice(privKeyBytes)
	if overflow || key.Key.IsZero() {
		key.Zero()
		str := "invalid private key: not in range [1, N-1]"
		return nil, makeError(ErrPrivKeyOutOfRange, str)
	}
	return &key, nil
}

// WithPrivateKey parses the passed private key bytes, invokes fn with the
// resulting key and wipes the key before returning.  The key is wiped on
// every exit path, including when fn fails or panics, so fn must not retain
// it.
func WithPrivateKey(privKeyBytes []byte, fn func(*PrivateKey) error) error {
	key, err := ParsePrivateKey(privKeyBytes)
	if err != nil {
		return err
	}
	defer key.Zero()
	return fn(key)
}

// GeneratePrivateKeyFromRand generates a private key that is guaranteed to be
// in the range [1, N-1] using the provided reader as a source of entropy.
//
// Candidates are read 32 bytes at a time and rejected when they are zero or
// not less than the group order, so the resulting key is uniformly
// distributed.  A failed read or too many rejected candidates fails with
// ErrInsufficientEntropy.
func GeneratePrivateKeyFromRand(rand io.Reader) (*PrivateKey, error) {
	var buf [PrivKeyBytesLen]byte
	defer zeroArray32(&buf)

	var key PrivateKey
	for i := 0; i < maxKeyGenRejections; i++ {
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			str := fmt.Sprintf("failed to read random bytes: %v", err)
			return nil, Error{
				Err:         fmt.Errorf("%w: %w", ErrInsufficientEntropy, err),
				Description: str,
			}
		}

		overflow := key.Key.SetBytes(&buf)
		if overflow == 0 && !key.Key.IsZero() {
			return &key, nil
		}
	}

	key.Zero()
	str := fmt.Sprintf("random source produced %d invalid candidates",
		maxKeyGenRejections)
	return nil, makeError(ErrInsufficientEntropy, str)
}

// GeneratePrivateKey generates and returns a new cryptographically secure
// private key that is suitable for use with secp256k1.
func GeneratePrivateKey() (*PrivateKey, error) {
	return GeneratePrivateKeyFromRand(rand.Reader)
}

// checkUsable returns ErrPrivKeyOutOfRange for a key that has been zeroed.
func (p *PrivateKey) checkUsable() error {
	if p.Key.IsZero() {
		str := "invalid private key: key has been zeroed"
		return makeError(ErrPrivKeyOutOfRange, str)
	}
	return nil
}

// PubKey computes and returns the public key corresponding to this private
// key.  The multiplication runs in constant time with respect to the key.
//
// It panics when the key has been zeroed, since zero has no public key.
func (p *PrivateKey) PubKey() *PublicKey {
	if err := p.checkUsable(); err != nil {
		panic(err)
	}
	var result ProjectivePoint
	ScalarBaseMult(&p.Key, &result)
	result.ToAffine()
	return &PublicKey{x: result.X, y: result.Y}
}

// ToECDSA returns the private key as a *ecdsa.PrivateKey.
func (p *PrivateKey) ToECDSA() *ecdsa.PrivateKey {
	var privKeyBytes [PrivKeyBytesLen]byte
	p.Key.PutBytes(&privKeyBytes)
	var result ecdsa.PrivateKey
	result.Curve = S256()
	result.D = new(big.Int).SetBytes(privKeyBytes[:])
	pub := p.PubKey()
	pubECDSA := pub.ToECDSA()
	result.X, result.Y = pubECDSA.X, pubECDSA.Y
	zeroArray32(&privKeyBytes)
	return &result
}

// Zero manually clears the memory associated with the private key.  This can
// be used to explicitly clear key material from memory for enhanced security
// against memory scraping.
func (p *PrivateKey) Zero() {
	p.Key.Zero()
}

// Serialize returns the private key as a 256-bit big-endian binary-encoded
// number, padded to a length of 32 bytes.
func (p PrivateKey) Serialize() []byte {
	var privKeyBytes [PrivKeyBytesLen]byte
	p.Key.PutBytes(&privKeyBytes)
	return privKeyBytes[:]
}
