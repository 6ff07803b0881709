// Command secp256k1ctl exposes key generation, ECDSA and BIP-340 signing,
// verification, public key recovery, ECDH and BIP-32 derivation on the
// command line.  All binary inputs and outputs are hex encoded.
package main

import (
	"os"

	"go.uber.org/zap"
)

func main() {
	a := newApp(os.Stdout, os.Stderr)

	// On failure Cobra prints the usage message and error string, so we only
	// need to log and exit with a non-0 status
	if err := a.rootCmd().Execute(); err != nil {
		a.logger.Debug("command failed", zap.Error(err))
		os.Exit(1)
	}
}
