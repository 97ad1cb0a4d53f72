package ibctesting

import (
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-handshake/modules/core/04-channel/types"
	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
)

const (
	DefaultChainID        = "mockgaia-0"
	DefaultBlockTime      = 3 * time.Second
	DefaultMaxHistorySize = 5

	TrustingPeriod time.Duration = time.Hour * 24 * 7 * 2
	MaxClockDrift  time.Duration = time.Second * 10

	DefaultDelayPeriod uint64 = 0

	TransferPort          = "transfer"
	DefaultChannelVersion = ""
)

var (
	DefaultLatestHeight    = clienttypes.NewHeight(0, 5)
	DefaultLatestTimestamp = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	// ConnectionVersion is the version every test connection is negotiated with.
	ConnectionVersion = connectiontypes.DefaultIBCVersion
)

// ChainConfig configures a TestChain. LatestHeight and LatestTimestamp describe the
// newest block of the seeded history.
type ChainConfig struct {
	ChainID         string             `mapstructure:"chain_id" yaml:"chain_id"`
	BlockTime       time.Duration      `mapstructure:"block_time" yaml:"block_time"`
	MaxHistorySize  uint64             `mapstructure:"max_history_size" yaml:"max_history_size"`
	LatestHeight    clienttypes.Height `mapstructure:"latest_height" yaml:"latest_height"`
	LatestTimestamp time.Time          `mapstructure:"latest_timestamp" yaml:"latest_timestamp"`

	// Signer is the bech32 address messages are signed with. When empty the address of
	// the chain's validator key is used.
	Signer string `mapstructure:"signer" yaml:"signer,omitempty"`
}

// NewChainConfig returns the default configuration for a chain with the given id. The
// latest height takes the revision number parsed from the chain id. A revision that
// cannot be parsed is left at zero for Validate to reject.
func NewChainConfig(chainID string) ChainConfig {
	revision, _ := clienttypes.ParseChainIDE(chainID)
	return ChainConfig{
		ChainID:         chainID,
		BlockTime:       DefaultBlockTime,
		MaxHistorySize:  DefaultMaxHistorySize,
		LatestHeight:    clienttypes.NewHeight(revision, DefaultLatestHeight.RevisionHeight),
		LatestTimestamp: DefaultLatestTimestamp,
	}
}

// DefaultChainConfig returns the configuration of the default mock chain.
func DefaultChainConfig() ChainConfig {
	return NewChainConfig(DefaultChainID)
}

// Validate checks the configuration describes a chain that can be constructed.
func (cfg ChainConfig) Validate() error {
	if err := host.ChainIdentifierValidator(cfg.ChainID); err != nil {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidConfig, "invalid chain id: %s", err)
	}
	if cfg.BlockTime <= 0 {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidConfig, "block time must be positive, got %s", cfg.BlockTime)
	}
	if cfg.MaxHistorySize == 0 {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidConfig, "max history size cannot be zero")
	}
	if cfg.LatestHeight.RevisionHeight == 0 {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidConfig, "latest height cannot have a zero revision height")
	}
	revision, err := clienttypes.ParseChainIDE(cfg.ChainID)
	if err != nil {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidConfig, err.Error())
	}
	if revision != cfg.LatestHeight.RevisionNumber {
		return sdkerrors.Wrapf(
			ibcerrors.ErrInvalidConfig,
			"latest height revision %d does not match chain id %s revision %d",
			cfg.LatestHeight.RevisionNumber, cfg.ChainID, revision,
		)
	}
	if cfg.LatestTimestamp.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidConfig, "latest timestamp cannot be zero")
	}
	return nil
}

type ClientConfig struct {
	TrustingPeriod time.Duration `yaml:"trusting_period"`
	MaxClockDrift  time.Duration `yaml:"max_clock_drift"`
}

func NewClientConfig() *ClientConfig {
	return &ClientConfig{
		TrustingPeriod: TrustingPeriod,
		MaxClockDrift:  MaxClockDrift,
	}
}

type ConnectionConfig struct {
	DelayPeriod uint64                   `yaml:"delay_period"`
	Version     *connectiontypes.Version `yaml:"version"`
}

func NewConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		DelayPeriod: DefaultDelayPeriod,
		Version:     ConnectionVersion,
	}
}

type ChannelConfig struct {
	PortID  string             `yaml:"port_id"`
	Version string             `yaml:"version"`
	Order   channeltypes.Order `yaml:"order"`
}

func NewChannelConfig() *ChannelConfig {
	return &ChannelConfig{
		PortID:  TransferPort,
		Version: DefaultChannelVersion,
		Order:   channeltypes.UNORDERED,
	}
}
