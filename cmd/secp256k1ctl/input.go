package main

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/mapxus/secp256k1"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// messageFlags selects the 32-byte digest a command signs or verifies: either
// the SHA-256 of a plain message or a hex encoded hash given directly.
type messageFlags struct {
	msg  string
	hash string
}

func (m *messageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&m.msg, "msg", "", "message to hash with SHA-256")
	cmd.Flags().StringVar(&m.hash, "hash", "", "hex encoded 32-byte hash")
}

func (m *messageFlags) digest() ([]byte, error) {
	switch {
	case m.msg != "" && m.hash != "":
		return nil, errors.New("only one of --msg and --hash may be given")
	case m.msg != "":
		h := sha256.Sum256([]byte(m.msg))
		return h[:], nil
	case m.hash != "":
		h, err := decodeHex("hash", m.hash)
		if err != nil {
			return nil, err
		}
		if len(h) != sha256.Size {
			return nil, errors.Errorf("hash must be %d bytes, got %d", sha256.Size, len(h))
		}
		return h, nil
	}
	return nil, errors.New("one of --msg or --hash is required")
}

func decodeHex(what, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", what)
	}
	return b, nil
}

// withPrivKeyHex decodes a hex private key and runs fn with it.  Both the
// decoded bytes and the key are wiped when fn returns.
func withPrivKeyHex(s string, fn func(*secp256k1.PrivateKey) error) error {
	b, err := decodeHex("private key", s)
	if err != nil {
		return err
	}
	defer func() {
		for i := range b {
			b[i] = 0
		}
	}()

	var fnErr error
	err = secp256k1.WithPrivateKey(b, func(key *secp256k1.PrivateKey) error {
		fnErr = fn(key)
		return fnErr
	})
	if err != nil && err != fnErr {
		return errors.Wrap(err, "parsing private key")
	}
	return err
}
