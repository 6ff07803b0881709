package ecckd

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160"
)

func doubleSha256(in []byte) []byte {
	return chainhash.DoubleHashB(in)
}

// ripemd160 + sha256
func rmd160sha256(in []byte) []byte {
	rmd := ripemd160.New()
	rmd.Write(chainhash.HashB(in))
	return rmd.Sum(nil)
}
