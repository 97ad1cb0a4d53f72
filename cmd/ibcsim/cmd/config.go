package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
	ibctesting "github.com/cosmos/ibc-handshake/testing"
)

// Config is the effective configuration of a handshake run.
type Config struct {
	ChainA ibctesting.ChainConfig `yaml:"chain_a"`
	ChainB ibctesting.ChainConfig `yaml:"chain_b"`

	PortID   string `yaml:"port_id"`
	Order    string `yaml:"order"`
	Close    bool   `yaml:"close"`
	Metrics  bool   `yaml:"metrics"`
	LogLevel string `yaml:"log_level"`
}

// LoadConfig reads the merged flag, environment and file settings from v. Both chains
// share the block time and history size and otherwise use the chain defaults.
func LoadConfig(v *viper.Viper) (Config, error) {
	blockTime, err := cast.ToDurationE(v.Get(flagBlockTime))
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid %s", flagBlockTime)
	}
	maxHistory, err := cast.ToUint64E(v.Get(flagMaxHistory))
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid %s", flagMaxHistory)
	}

	chainConfig := func(chainID string) ibctesting.ChainConfig {
		cfg := ibctesting.NewChainConfig(chainID)
		cfg.BlockTime = blockTime
		cfg.MaxHistorySize = maxHistory
		return cfg
	}

	cfg := Config{
		ChainA:   chainConfig(cast.ToString(v.Get(flagChainAID))),
		ChainB:   chainConfig(cast.ToString(v.Get(flagChainBID))),
		PortID:   cast.ToString(v.Get(flagPort)),
		Order:    cast.ToString(v.Get(flagOrder)),
		Close:    cast.ToBool(v.Get(flagClose)),
		Metrics:  cast.ToBool(v.Get(flagMetrics)),
		LogLevel: cast.ToString(v.Get(flagLogLevel)),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks both chain configurations and the channel and logging settings.
func (cfg Config) Validate() error {
	if err := cfg.ChainA.Validate(); err != nil {
		return errors.Wrap(err, "chain A")
	}
	if err := cfg.ChainB.Validate(); err != nil {
		return errors.Wrap(err, "chain B")
	}
	if err := host.PortIdentifierValidator(cfg.PortID); err != nil {
		return errors.Wrap(err, "invalid port")
	}
	if _, err := parseOrder(cfg.Order); err != nil {
		return err
	}
	if _, err := log.AllowLevel(cfg.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	return nil
}
