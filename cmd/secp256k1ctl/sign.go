package main

import (
	"fmt"

	"github.com/mapxus/secp256k1"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Signature encodings accepted by --format.
const (
	formatDER         = "der"
	formatCompact     = "compact"
	formatRecoverable = "recoverable"
)

var errSignatureInvalid = errors.New("signature is not valid")

func (a *app) signCmd() *cobra.Command {
	var (
		m      messageFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "sign <private key>",
		Short: "Create a deterministic low-S ECDSA signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := m.digest()
			if err != nil {
				return err
			}

			return withPrivKeyHex(args[0], func(key *secp256k1.PrivateKey) error {
				var out []byte
				switch format {
				case formatDER, formatCompact:
					sig, err := secp256k1.SignChecked(key, hash)
					if err != nil {
						return errors.Wrap(err, "signing")
					}
					if format == formatDER {
						out = sig.Serialize()
					} else {
						out = sig.SerializeCompact()
					}
				case formatRecoverable:
					out, err = secp256k1.SignRecoverable(key, hash, a.v.GetBool(cfgCompressed))
					if err != nil {
						return errors.Wrap(err, "signing")
					}
				default:
					return errors.Errorf("unknown signature format %q", format)
				}
				fmt.Fprintf(a.out, "%x\n", out)
				a.logger.Info("created signature", zap.String("format", format))
				return nil
			})
		},
	}
	m.register(cmd)
	cmd.Flags().StringVar(&format, "format", formatDER, "signature encoding (der, compact or recoverable)")
	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	var (
		m      messageFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "verify <public key> <signature>",
		Short: "Verify an ECDSA signature",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := m.digest()
			if err != nil {
				return err
			}
			pubBytes, err := decodeHex("public key", args[0])
			if err != nil {
				return err
			}
			sigBytes, err := decodeHex("signature", args[1])
			if err != nil {
				return err
			}

			var valid bool
			switch format {
			case formatDER:
				valid, err = a.cache.Verify(pubBytes, hash, sigBytes)
				if err != nil {
					return errors.Wrap(err, "verifying")
				}
			case formatCompact:
				pub, err := a.cache.Parse(pubBytes)
				if err != nil {
					return errors.Wrap(err, "parsing public key")
				}
				sig, err := secp256k1.ParseCompactSignature(sigBytes)
				if err != nil {
					return errors.Wrap(err, "parsing signature")
				}
				valid = sig.VerifyWithOptions(hash, pub, a.cache.VerifyOptions)
			default:
				return errors.Errorf("unknown signature format %q", format)
			}
			return a.report(valid)
		},
	}
	m.register(cmd)
	cmd.Flags().StringVar(&format, "format", formatDER, "signature encoding (der or compact)")
	return cmd
}

func (a *app) recoverCmd() *cobra.Command {
	var m messageFlags
	cmd := &cobra.Command{
		Use:   "recover <recoverable signature>",
		Short: "Recover the public key from a 65-byte recoverable signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := m.digest()
			if err != nil {
				return err
			}
			sig, err := decodeHex("signature", args[0])
			if err != nil {
				return err
			}
			pub, compressed, err := secp256k1.RecoverPublicKey(sig, hash)
			if err != nil {
				return errors.Wrap(err, "recovering public key")
			}
			if compressed {
				fmt.Fprintf(a.out, "%x\n", pub.SerializeCompressed())
			} else {
				fmt.Fprintf(a.out, "%x\n", pub.SerializeUncompressed())
			}
			return nil
		},
	}
	m.register(cmd)
	return cmd
}

func (a *app) schnorrSignCmd() *cobra.Command {
	var (
		m   messageFlags
		aux string
	)
	cmd := &cobra.Command{
		Use:   "schnorr-sign <private key>",
		Short: "Create a BIP-340 Schnorr signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := m.digest()
			if err != nil {
				return err
			}
			var auxRand []byte
			if aux != "" {
				if auxRand, err = decodeHex("aux", aux); err != nil {
					return err
				}
			}

			return withPrivKeyHex(args[0], func(key *secp256k1.PrivateKey) error {
				sig, err := secp256k1.SchnorrSign(key, msg, auxRand)
				if err != nil {
					return errors.Wrap(err, "signing")
				}
				fmt.Fprintf(a.out, "%x\n", sig.Serialize())
				a.logger.Info("created schnorr signature")
				return nil
			})
		},
	}
	m.register(cmd)
	cmd.Flags().StringVar(&aux, "aux", "", "hex encoded 32 bytes of auxiliary randomness")
	return cmd
}

func (a *app) schnorrVerifyCmd() *cobra.Command {
	var m messageFlags
	cmd := &cobra.Command{
		Use:   "schnorr-verify <x-only public key> <signature>",
		Short: "Verify a BIP-340 Schnorr signature",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := m.digest()
			if err != nil {
				return err
			}
			pub, err := decodeHex("public key", args[0])
			if err != nil {
				return err
			}
			sig, err := decodeHex("signature", args[1])
			if err != nil {
				return err
			}
			return a.report(secp256k1.SchnorrVerify(sig, msg, pub))
		},
	}
	m.register(cmd)
	return cmd
}

// report prints the verification result.  An invalid signature is returned
// as an error so the process exits with a non-0 status.
func (a *app) report(valid bool) error {
	if !valid {
		fmt.Fprintln(a.out, "invalid")
		a.logger.Warn("signature verification failed")
		return errSignatureInvalid
	}
	fmt.Fprintln(a.out, "valid")
	return nil
}
