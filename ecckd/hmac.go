package ecckd

import (
	"crypto/hmac"
	"crypto/sha512"

	"github.com/mapxus/secp256k1"
	"github.com/pkg/errors"
)

var (
	ErrShaKeyInvalid = errors.New("generated key zero or overflow, try next one")
)

// hmacCKD returns parse256(IL) and the chain code IR for a given seed and
// salt.
//
// See: https://github.com/bitcoin/bips/blob/master/bip-0032.mediawiki
func hmacCKD(seed, salt []byte) (il secp256k1.ModNScalar, chainCode []byte, err error) {
	data := hmac.New(sha512.New, salt)
	if _, err = data.Write(seed); err != nil {
		return
	}
	I := data.Sum(nil)
	defer func() {
		for i := range I[:32] {
			I[i] = 0
		}
	}()

	chainCode = append([]byte(nil), I[32:]...) // IR

	// In case parse256(IL) >= n or ki = 0, the resulting key is invalid, and
	// one should proceed with the next value for i.  This has probability
	// lower than 1 in 2^127.
	il, err = secp256k1.ParseModNScalar(I[:32])
	if err != nil || il.IsZero() {
		il.Zero()
		return il, nil, ErrShaKeyInvalid
	}
	return il, chainCode, nil
}
