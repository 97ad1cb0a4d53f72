package types

import (
	"bytes"
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/crypto/tmhash"

	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

// ClientState is the light client view a chain keeps of a counterparty chain. Its
// LatestHeight only ever advances.
type ClientState struct {
	ChainID        string        `json:"chain_id"`
	LatestHeight   Height        `json:"latest_height"`
	FrozenHeight   Height        `json:"frozen_height"`
	TrustingPeriod time.Duration `json:"trusting_period"`
	MaxClockDrift  time.Duration `json:"max_clock_drift"`
}

// NewClientState creates a new ClientState instance
func NewClientState(
	chainID string, latestHeight Height, trustingPeriod, maxClockDrift time.Duration,
) *ClientState {
	return &ClientState{
		ChainID:        chainID,
		LatestHeight:   latestHeight,
		FrozenHeight:   ZeroHeight(),
		TrustingPeriod: trustingPeriod,
		MaxClockDrift:  maxClockDrift,
	}
}

// ClientType returns the light client type verifying this state.
func (ClientState) ClientType() string {
	return exported.Mock
}

// GetLatestHeight returns latest block height.
func (cs ClientState) GetLatestHeight() exported.Height {
	return cs.LatestHeight
}

// IsFrozen returns true if the frozen height has been set.
func (cs ClientState) IsFrozen() bool {
	return !cs.FrozenHeight.IsZero()
}

// IsExpired returns whether or not the client has passed the trusting period since the
// given consensus timestamp.
func (cs ClientState) IsExpired(latestTimestamp, now time.Time) bool {
	expirationTime := latestTimestamp.Add(cs.TrustingPeriod)
	return !expirationTime.After(now)
}

// Status returns the status of the client given the timestamp of its latest consensus
// state and the current host time.
func (cs ClientState) Status(latestTimestamp, now time.Time) exported.Status {
	if cs.IsFrozen() {
		return exported.Frozen
	}

	if cs.IsExpired(latestTimestamp, now) {
		return exported.Expired
	}

	return exported.Active
}

// Validate performs a basic validation of the client state fields.
func (cs ClientState) Validate() error {
	if err := host.ChainIdentifierValidator(cs.ChainID); err != nil {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidChainID, err.Error())
	}
	if cs.TrustingPeriod <= 0 {
		return sdkerrors.Wrap(ErrInvalidClient, "trusting period must be greater than zero")
	}
	if cs.MaxClockDrift <= 0 {
		return sdkerrors.Wrap(ErrInvalidClient, "max clock drift must be greater than zero")
	}
	if cs.LatestHeight.RevisionHeight == 0 {
		return sdkerrors.Wrap(ErrInvalidClient, "client's latest height revision height cannot be zero")
	}
	revision, err := ParseChainIDE(cs.ChainID)
	if err != nil {
		return err
	}
	if revision != cs.LatestHeight.RevisionNumber {
		return sdkerrors.Wrapf(
			ErrInvalidClient,
			"latest height revision number must match chain id revision number (%d != %d)",
			cs.LatestHeight.RevisionNumber, revision,
		)
	}
	return nil
}

// ConsensusState is the state of a counterparty chain a light client trusts at one height.
type ConsensusState struct {
	Timestamp          time.Time                  `json:"timestamp"`
	Root               commitmenttypes.MerkleRoot `json:"root"`
	NextValidatorsHash []byte                     `json:"next_validators_hash"`
}

// NewConsensusState creates a new ConsensusState instance.
func NewConsensusState(timestamp time.Time, root commitmenttypes.MerkleRoot, nextValsHash []byte) *ConsensusState {
	return &ConsensusState{
		Timestamp:          timestamp,
		Root:               root,
		NextValidatorsHash: nextValsHash,
	}
}

// ClientType returns the light client type the consensus state belongs to.
func (ConsensusState) ClientType() string {
	return exported.Mock
}

// GetRoot returns the commitment Root for the specific
func (cs ConsensusState) GetRoot() commitmenttypes.MerkleRoot {
	return cs.Root
}

// GetTimestamp returns block time in nanoseconds of the header that created consensus state
func (cs ConsensusState) GetTimestamp() uint64 {
	return uint64(cs.Timestamp.UnixNano())
}

// Equal returns true if both consensus states commit to the same block.
func (cs ConsensusState) Equal(other *ConsensusState) bool {
	return other != nil &&
		cs.Timestamp.Equal(other.Timestamp) &&
		cs.Root.Equal(other.Root) &&
		bytes.Equal(cs.NextValidatorsHash, other.NextValidatorsHash)
}

// ValidateBasic defines a basic validation for the consensus state.
func (cs ConsensusState) ValidateBasic() error {
	if cs.Root.Empty() {
		return sdkerrors.Wrap(ErrInvalidConsensus, "root cannot be empty")
	}
	if len(cs.NextValidatorsHash) != tmhash.Size {
		return sdkerrors.Wrapf(ErrInvalidConsensus, "next validators hash is invalid: expected %d bytes, got %d", tmhash.Size, len(cs.NextValidatorsHash))
	}
	if cs.Timestamp.Unix() <= 0 {
		return sdkerrors.Wrap(ErrInvalidConsensus, "timestamp must be a positive Unix time")
	}
	return nil
}
