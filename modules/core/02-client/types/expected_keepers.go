package types

import (
	"time"

	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

// HostChain is the chain the IBC keepers execute on. Height and timestamp are those of
// the block currently being executed.
type HostChain interface {
	ChainID() string
	HostHeight() Height
	HostTimestamp() time.Time

	// SelfConsensusState returns the consensus state a counterparty light client would
	// store for the host block at height. It fails with ErrSelfConsensusStateNotFound
	// once the block is no longer in the host history.
	SelfConsensusState(height exported.Height) (*ConsensusState, error)
}

// ClientValidationContext is the host and registry view a light client module
// verifies against.
type ClientValidationContext interface {
	HostHeight() Height
	HostTimestamp() time.Time

	GetClientConsensusState(clientID string, height exported.Height) (*ConsensusState, error)
	ConsensusStateHeights(clientID string) []Height
	NextConsensusState(clientID string, height exported.Height) (*ConsensusState, bool)
	PrevConsensusState(clientID string, height exported.Height) (*ConsensusState, bool)
}
