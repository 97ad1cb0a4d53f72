package types

import (
	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

// ClientKeeper expected account IBC client keeper
type ClientKeeper interface {
	HostHeight() clienttypes.Height
	GetClientStatus(clientID string) exported.Status
	GetClientState(clientID string) (*clienttypes.ClientState, bool)
	GetClientConsensusState(clientID string, height exported.Height) (*clienttypes.ConsensusState, error)
	GetSelfConsensusState(height exported.Height) (*clienttypes.ConsensusState, error)
	ValidateSelfClient(clientState *clienttypes.ClientState) error
	VerifyMembership(clientID string, height exported.Height, proof []byte, path commitmenttypes.MerklePath, value []byte) error
}
