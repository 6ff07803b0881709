package main

import (
	"io"
	"strings"

	"github.com/mapxus/secp256k1"
	"github.com/mapxus/secp256k1/keycache"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "SECP256K1CTL"

// Configuration keys.  Each one is also a persistent flag of the root command
// and may be set through SECP256K1CTL_<KEY> with dashes replaced by
// underscores.
const (
	cfgLogLevel   = "log-level"
	cfgLogFormat  = "log-format"
	cfgAllowHighS = "allow-high-s"
	cfgCompressed = "compressed"
	cfgCacheSize  = "cache-size"
)

type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer

	cfgFile string
	logger  *zap.Logger
	cache   *keycache.Cache
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		v:      viper.New(),
		out:    out,
		errOut: errOut,
		logger: zap.NewNop(),
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "secp256k1ctl",
		Short:             "secp256k1 keys, signatures and key agreement",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "path to a configuration file")
	flags.String(cfgLogLevel, "info", "log level (debug, info, warn, error)")
	flags.String(cfgLogFormat, "console", "log format (console or json)")
	flags.Bool(cfgAllowHighS, false, "accept ECDSA signatures with s above half the group order")
	flags.Bool(cfgCompressed, true, "print public keys in compressed form")
	flags.Int(cfgCacheSize, 128, "number of parsed public keys kept by verify")
	for _, name := range []string{cfgLogLevel, cfgLogFormat, cfgAllowHighS, cfgCompressed, cfgCacheSize} {
		// BindPFlag only fails for a nil flag, which is a programming error.
		if err := a.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(errors.Wrapf(err, "binding flag %s", name))
		}
	}

	cmd.AddCommand(
		a.keygenCmd(),
		a.pubkeyCmd(),
		a.signCmd(),
		a.verifyCmd(),
		a.recoverCmd(),
		a.schnorrSignCmd(),
		a.schnorrVerifyCmd(),
		a.ecdhCmd(),
		a.deriveCmd(),
	)
	return cmd
}

// setup loads the optional configuration file and builds the logger and the
// public key cache before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config file %s", a.cfgFile)
		}
	}

	logger, err := newLogger(a.errOut, a.v.GetString(cfgLogLevel), a.v.GetString(cfgLogFormat))
	if err != nil {
		return err
	}
	a.logger = logger.Named("secp256k1ctl")

	cache, err := keycache.New(a.v.GetInt(cfgCacheSize))
	if err != nil {
		return errors.Wrap(err, "creating public key cache")
	}
	cache.VerifyOptions = secp256k1.VerifyOptions{AllowHighS: a.v.GetBool(cfgAllowHighS)}
	a.cache = cache

	a.logger.Debug("executing command",
		zap.String("command", cmd.CommandPath()),
		zap.Bool("allowHighS", cache.VerifyOptions.AllowHighS),
		zap.String("configFile", a.v.ConfigFileUsed()),
	)
	return nil
}

// serializePubKey encodes the public key according to the compressed option.
func (a *app) serializePubKey(pub *secp256k1.PublicKey) []byte {
	if a.v.GetBool(cfgCompressed) {
		return pub.SerializeCompressed()
	}
	return pub.SerializeUncompressed()
}
