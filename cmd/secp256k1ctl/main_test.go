package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mapxus/secp256k1"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	// privOne is the private key 1, whose public key is the generator.
	privOne         = "0000000000000000000000000000000000000000000000000000000000000001"
	pubOneCompact   = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	pubOneUncompact = "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	privThree     = "0000000000000000000000000000000000000000000000000000000000000003"
	xOnlyPubThree = "f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9"
)

// run executes the command line and returns what it printed to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := newApp(&out, &errOut)
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "secp256k1ctl %s", strings.Join(args, " "))
	return out
}

func TestPubkey(t *testing.T) {
	require.Equal(t, pubOneCompact, mustRun(t, "pubkey", privOne))
	require.Equal(t, pubOneUncompact, mustRun(t, "pubkey", "--compressed=false", privOne))
	require.Equal(t, xOnlyPubThree, mustRun(t, "pubkey", "--xonly", privThree))

	_, err := run(t, "pubkey", strings.Repeat("00", 32))
	require.True(t, errors.Is(err, secp256k1.ErrPrivKeyOutOfRange))
	require.True(t, errors.Is(err, secp256k1.ErrRange))

	_, err = run(t, "pubkey", "zz")
	require.Error(t, err)
}

func TestFlagsBound(t *testing.T) {
	a := newApp(io.Discard, io.Discard)
	require.NotPanics(t, func() { a.rootCmd() })
	require.Equal(t, "info", a.v.GetString(cfgLogLevel))
	require.Equal(t, "console", a.v.GetString(cfgLogFormat))
	require.False(t, a.v.GetBool(cfgAllowHighS))
	require.True(t, a.v.GetBool(cfgCompressed))
	require.Equal(t, 128, a.v.GetInt(cfgCacheSize))
}

func TestCompressedFromEnv(t *testing.T) {
	t.Setenv("SECP256K1CTL_COMPRESSED", "false")
	require.Equal(t, pubOneUncompact, mustRun(t, "pubkey", privOne))
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "secp256k1ctl.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("compressed: false\nlog-level: debug\n"), 0o600))
	require.Equal(t, pubOneUncompact, mustRun(t, "--config", cfg, "pubkey", privOne))

	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "pubkey", privOne)
	require.Error(t, err)
}

func TestBadLogSettings(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "pubkey", privOne)
	require.Error(t, err)
	_, err = run(t, "--log-format", "xml", "pubkey", privOne)
	require.Error(t, err)
	_, err = run(t, "--cache-size", "0", "pubkey", privOne)
	require.Error(t, err)
}

func TestKeygen(t *testing.T) {
	out := mustRun(t, "keygen")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "private "))
	require.True(t, strings.HasPrefix(lines[1], "public "))

	priv := strings.TrimPrefix(lines[0], "private ")
	require.Equal(t, strings.TrimPrefix(lines[1], "public "), mustRun(t, "pubkey", priv))
}

func TestSignVerify(t *testing.T) {
	for _, format := range []string{formatDER, formatCompact} {
		sig := mustRun(t, "sign", "--format", format, "--msg", "hello", privOne)
		require.Equal(t, "valid", mustRun(t, "verify", "--format", format, "--msg", "hello", pubOneCompact, sig))
		require.Equal(t, "valid", mustRun(t, "verify", "--format", format, "--msg", "hello", pubOneUncompact, sig))

		out, err := run(t, "verify", "--format", format, "--msg", "goodbye", pubOneCompact, sig)
		require.Equal(t, "invalid", out)
		require.True(t, errors.Is(err, errSignatureInvalid))
	}

	// Signing is deterministic.
	require.Equal(t,
		mustRun(t, "sign", "--msg", "hello", privOne),
		mustRun(t, "sign", "--msg", "hello", privOne))
}

func TestMessageFlags(t *testing.T) {
	hash := strings.Repeat("ab", 32)
	sig := mustRun(t, "sign", "--hash", hash, privOne)
	require.Equal(t, "valid", mustRun(t, "verify", "--hash", hash, pubOneCompact, sig))

	_, err := run(t, "sign", privOne)
	require.Error(t, err)
	_, err = run(t, "sign", "--msg", "a", "--hash", hash, privOne)
	require.Error(t, err)
	_, err = run(t, "sign", "--hash", "abcd", privOne)
	require.Error(t, err)
	_, err = run(t, "sign", "--format", "pem", "--msg", "a", privOne)
	require.Error(t, err)
}

func TestRecover(t *testing.T) {
	sig := mustRun(t, "sign", "--format", formatRecoverable, "--msg", "recover me", privOne)
	require.Len(t, sig, 2*secp256k1.RecoverableSigLen)
	require.Equal(t, pubOneCompact, mustRun(t, "recover", "--msg", "recover me", sig))

	sig = mustRun(t, "sign", "--compressed=false", "--format", formatRecoverable, "--msg", "recover me", privOne)
	require.Equal(t, pubOneUncompact, mustRun(t, "recover", "--msg", "recover me", sig))

	_, err := run(t, "recover", "--msg", "recover me", sig[:10])
	require.Error(t, err)
}

func TestSchnorr(t *testing.T) {
	sig := mustRun(t, "schnorr-sign", "--msg", "schnorr", privThree)
	require.Len(t, sig, 2*secp256k1.SchnorrSigLen)
	require.Equal(t, "valid", mustRun(t, "schnorr-verify", "--msg", "schnorr", xOnlyPubThree, sig))

	withAux := mustRun(t, "schnorr-sign", "--aux", strings.Repeat("11", 32), "--msg", "schnorr", privThree)
	require.NotEqual(t, sig, withAux)
	require.Equal(t, "valid", mustRun(t, "schnorr-verify", "--msg", "schnorr", xOnlyPubThree, withAux))

	out, err := run(t, "schnorr-verify", "--msg", "other", xOnlyPubThree, sig)
	require.Equal(t, "invalid", out)
	require.True(t, errors.Is(err, errSignatureInvalid))

	_, err = run(t, "schnorr-sign", "--aux", "11", "--msg", "schnorr", privThree)
	require.True(t, errors.Is(err, secp256k1.ErrDecode))
}

func TestECDH(t *testing.T) {
	pubThree := mustRun(t, "pubkey", privThree)

	// 1*(3G) == 3*G
	ab := mustRun(t, "ecdh", privOne, pubThree)
	ba := mustRun(t, "ecdh", privThree, pubOneCompact)
	require.Equal(t, ab, ba)
	require.Len(t, ab, 64)

	k1 := mustRun(t, "ecdh", "--length", "16", "--salt", "0102", "--info", "ctx", privOne, pubThree)
	k2 := mustRun(t, "ecdh", "--length", "16", "--salt", "0102", "--info", "ctx", privThree, pubOneCompact)
	require.Equal(t, k1, k2)
	require.Len(t, k1, 32)

	_, err := run(t, "ecdh", privOne, "02"+strings.Repeat("ff", 32))
	require.True(t, errors.Is(err, secp256k1.ErrPubKeyXTooBig))
}

func TestDerive(t *testing.T) {
	// BIP-32 test vector 1.
	const seed = "000102030405060708090a0b0c0d0e0f"
	const m0h = "xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7"
	const m0hPub = "xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw"

	require.Equal(t, m0h, mustRun(t, "derive", "--seed", seed, "m/0'"))
	require.Equal(t, m0hPub, mustRun(t, "derive", "--public", "--seed", seed, "m/0h"))

	// Continuing from the serialized key gives the same result as deriving
	// the full path from the seed.
	full := mustRun(t, "derive", "--seed", seed, "m/0'/1")
	require.Equal(t, full, mustRun(t, "derive", "--key", m0h, "m/1"))
	require.Equal(t,
		mustRun(t, "derive", "--public", "--seed", seed, "m/0'/1"),
		mustRun(t, "derive", "--key", m0hPub, "1"))

	out := mustRun(t, "derive", "--show-il", "--key", m0h, "m/1")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[1], "il "))

	_, err := run(t, "derive", "--key", m0hPub, "m/1'")
	require.Error(t, err)
	_, err = run(t, "derive", "m/1")
	require.Error(t, err)
	_, err = run(t, "derive", "--seed", seed, "m/x")
	require.Error(t, err)
	_, err = run(t, "derive", "--seed", "0102", "m/1")
	require.Error(t, err)
}
