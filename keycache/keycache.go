// Package keycache provides a bounded cache of parsed secp256k1 public keys.
//
// Parsing a compressed public key requires a field square root, which costs
// about as much as a third of a signature verification.  Services that
// verify many signatures from a small set of signers can avoid repeating
// that work by parsing through a Cache.
package keycache

import (
	"github.com/hashicorp/golang-lru"
	"github.com/mapxus/secp256k1"
)

// Cache holds parsed public keys keyed by their serialized form.  It is safe
// for concurrent use.  The cached keys are immutable, so handing the same
// *secp256k1.PublicKey to several goroutines is fine.
type Cache struct {
	keys *lru.ARCCache

	// VerifyOptions are applied by Verify.  They must be set before the
	// cache is shared between goroutines.
	VerifyOptions secp256k1.VerifyOptions
}

// New returns a cache that holds at most size public keys.
func New(size int) (*Cache, error) {
	keys, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &Cache{keys: keys}, nil
}

// Parse returns the public key for the serialized bytes, parsing and
// caching it on a miss.  Invalid encodings are never cached.
func (c *Cache) Parse(serialized []byte) (*secp256k1.PublicKey, error) {
	k := string(serialized)
	if v, ok := c.keys.Get(k); ok {
		return v.(*secp256k1.PublicKey), nil // panic if we have put the wrong type in the cache
	}

	pubKey, err := secp256k1.ParsePubKey(serialized)
	if err != nil {
		return nil, err
	}
	c.keys.Add(k, pubKey)
	return pubKey, nil
}

// Verify parses the public key through the cache and the DER encoded
// signature and reports whether the signature is valid for the hash.  Errors
// are only returned for malformed inputs; a signature that does not verify
// returns false.
func (c *Cache) Verify(pubKeyBytes, hash, sigDER []byte) (bool, error) {
	pubKey, err := c.Parse(pubKeyBytes)
	if err != nil {
		return false, err
	}
	sig, err := secp256k1.ParseDERSignature(sigDER)
	if err != nil {
		return false, err
	}
	return sig.VerifyWithOptions(hash, pubKey, c.VerifyOptions), nil
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	return c.keys.Len()
}

// Purge removes every cached key.
func (c *Cache) Purge() {
	c.keys.Purge()
}
