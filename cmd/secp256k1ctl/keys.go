package main

import (
	"fmt"

	"github.com/mapxus/secp256k1"
	"github.com/mapxus/secp256k1/ecckd"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new private key and print it with its public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secp256k1.GeneratePrivateKey()
			if err != nil {
				return errors.Wrap(err, "generating private key")
			}
			defer key.Zero()

			fmt.Fprintf(a.out, "private %x\npublic %x\n", key.Serialize(), a.serializePubKey(key.PubKey()))
			a.logger.Info("generated key pair")
			return nil
		},
	}
}

func (a *app) pubkeyCmd() *cobra.Command {
	var xOnly bool
	cmd := &cobra.Command{
		Use:   "pubkey <private key>",
		Short: "Print the public key of a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPrivKeyHex(args[0], func(key *secp256k1.PrivateKey) error {
				pub := key.PubKey()
				if xOnly {
					fmt.Fprintf(a.out, "%x\n", pub.SerializeXOnly())
					return nil
				}
				fmt.Fprintf(a.out, "%x\n", a.serializePubKey(pub))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&xOnly, "xonly", false, "print the 32-byte BIP-340 x-only key")
	return cmd
}

func (a *app) ecdhCmd() *cobra.Command {
	var (
		length int
		salt   string
		info   string
	)
	cmd := &cobra.Command{
		Use:   "ecdh <private key> <public key>",
		Short: "Compute an ECDH shared secret, optionally expanded with HKDF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pubBytes, err := decodeHex("public key", args[1])
			if err != nil {
				return err
			}
			pub, err := a.cache.Parse(pubBytes)
			if err != nil {
				return errors.Wrap(err, "parsing public key")
			}
			saltBytes, err := decodeHex("salt", salt)
			if err != nil {
				return err
			}

			return withPrivKeyHex(args[0], func(key *secp256k1.PrivateKey) error {
				var secret []byte
				if length == 0 {
					secret = secp256k1.GenerateSharedSecret(key, pub)
				} else {
					secret, err = secp256k1.DeriveSharedKey(key, pub, saltBytes, []byte(info), length)
					if err != nil {
						return errors.Wrap(err, "deriving shared key")
					}
				}
				fmt.Fprintf(a.out, "%x\n", secret)
				a.logger.Info("computed shared secret", zap.Int("length", len(secret)))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&length, "length", 0, "derive a key of this many bytes with HKDF-SHA256 instead of printing the raw secret")
	cmd.Flags().StringVar(&salt, "salt", "", "hex encoded HKDF salt")
	cmd.Flags().StringVar(&info, "info", "", "HKDF context info")
	return cmd
}

func (a *app) deriveCmd() *cobra.Command {
	var (
		seed   string
		key    string
		public bool
		showIL bool
	)
	cmd := &cobra.Command{
		Use:   "derive <path>",
		Short: "Derive a BIP-32 child key from a seed or an extended key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ecckd.ParsePath(args[0])
			if err != nil {
				return errors.Wrapf(err, "parsing path %q", args[0])
			}

			var parent *ecckd.ExtendedKey
			switch {
			case (seed == "") == (key == ""):
				return errors.New("exactly one of --seed and --key is required")
			case seed != "":
				seedBytes, err := decodeHex("seed", seed)
				if err != nil {
					return err
				}
				parent, err = ecckd.FromBitcoinSeed(seedBytes)
				for i := range seedBytes {
					seedBytes[i] = 0
				}
				if err != nil {
					return errors.Wrap(err, "creating master key")
				}
			default:
				parent, err = ecckd.FromString(key)
				if err != nil {
					return errors.Wrap(err, "parsing extended key")
				}
			}

			il, child, err := parent.DeriveWithIL(path)
			if err != nil {
				return errors.Wrapf(err, "deriving %s", args[0])
			}
			defer il.Zero()
			if public {
				if child, err = child.Public(); err != nil {
					return errors.Wrap(err, "converting to public key")
				}
			}

			fmt.Fprintln(a.out, child.String())
			if showIL {
				fmt.Fprintf(a.out, "il %x\n", il.Bytes())
			}
			a.logger.Info("derived extended key",
				zap.Int("depth", int(child.Depth)),
				zap.Bool("private", child.IsPrivate()),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "hex encoded seed of 16 to 64 bytes")
	cmd.Flags().StringVar(&key, "key", "", "base58 extended key to derive from")
	cmd.Flags().BoolVar(&public, "public", false, "print the public extended key")
	cmd.Flags().BoolVar(&showIL, "show-il", false, "also print the sum of the derivation tweaks")
	return cmd
}
