package secp256k1

import (
	"crypto"
	"io"
)

// SignOptions carries the hash function used to produce the digest passed to
// PrivateKey.Sign.  It only exists to satisfy crypto.SignerOpts.
type SignOptions struct {
	Hash crypto.Hash
}

func (s *SignOptions) HashFunc() crypto.Hash {
	return s.Hash
}

// Public returns the public key corresponding to the private key, as required
// by crypto.Signer.  The value is a *PublicKey.
func (privkey *PrivateKey) Public() crypto.PublicKey {
	return privkey.PubKey()
}

// Sign will sign the provided digest, returning the resulting DER encoded
// signature.  Nonces are derived deterministically, so rand is ignored.
// [SignOptions] can be used to pass options.
func (privkey *PrivateKey) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	sig, err := SignChecked(privkey, digest)
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil
}
