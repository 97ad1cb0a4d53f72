package cmd

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	"gopkg.in/yaml.v2"

	channeltypes "github.com/cosmos/ibc-handshake/modules/core/04-channel/types"
	ibctesting "github.com/cosmos/ibc-handshake/testing"
)

const (
	flagConfig     = "config"
	flagChainAID   = "chain-a-id"
	flagChainBID   = "chain-b-id"
	flagBlockTime  = "block-time"
	flagMaxHistory = "max-history"
	flagPort       = "port"
	flagOrder      = "order"
	flagClose      = "close"
	flagMetrics    = "metrics"
	flagLogLevel   = "log-level"

	// EnvPrefix prefixes the environment variables overriding flags, e.g. IBCSIM_BLOCK_TIME.
	EnvPrefix = "IBCSIM"

	defaultChainAID = "mockgaiaA-0"
	defaultChainBID = "mockgaiaB-0"
)

// NewRootCmd creates the ibcsim root command. Flags, IBCSIM_* environment variables
// and an optional YAML config file are merged by viper, in that order of precedence.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:          "ibcsim",
		Short:        "Simulate IBC client, connection and channel handshakes between two in-memory chains",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", "path to a YAML configuration file")
	flags.String(flagChainAID, defaultChainAID, "chain id of chain A")
	flags.String(flagChainBID, defaultChainBID, "chain id of chain B")
	flags.Duration(flagBlockTime, ibctesting.DefaultBlockTime, "time between two blocks on both chains")
	flags.Uint64(flagMaxHistory, ibctesting.DefaultMaxHistorySize, "number of blocks each chain keeps in its history")
	flags.String(flagPort, ibctesting.TransferPort, "port the channel is opened on")
	flags.String(flagOrder, "unordered", "channel ordering, ordered or unordered")
	flags.Bool(flagClose, false, "close the channel once it is open")
	flags.Bool(flagMetrics, false, "collect telemetry and print the counters")
	flags.String(flagLogLevel, "info", "log level (debug, info, error, none)")

	rootCmd.AddCommand(
		handshakeCmd(v),
		configCmd(v),
	)

	return rootCmd
}

func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}

	if path := v.GetString(flagConfig); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	return nil
}

func configCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(v)
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), cfg)
		},
	}
}

func handshakeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "handshake",
		Short: "Create clients, then open a connection and a channel between chain A and chain B",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(v)
			if err != nil {
				return err
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}

			summary, err := RunHandshake(cfg, logger)
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), summary)
		},
	}
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	allowed, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(w)), allowed), nil
}

func printYAML(w io.Writer, v interface{}) error {
	bz, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to encode output")
	}
	_, err = w.Write(bz)
	return errors.Wrap(err, "failed to write output")
}

func parseOrder(order string) (channeltypes.Order, error) {
	switch strings.ToLower(order) {
	case "unordered", strings.ToLower(channeltypes.UNORDERED.String()):
		return channeltypes.UNORDERED, nil
	case "ordered", strings.ToLower(channeltypes.ORDERED.String()):
		return channeltypes.ORDERED, nil
	default:
		return channeltypes.NONE, errors.Errorf("invalid channel order %q", order)
	}
}
