package keeper

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	"github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-handshake/modules/core/04-channel/types"
	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
)

// VerifyClientState verifies a proof of a client state of the running machine
// stored on the target machine
func (k *Keeper) VerifyClientState(
	connection types.ConnectionEnd,
	height clienttypes.Height,
	proof []byte,
	clientState *clienttypes.ClientState,
) error {
	clientID := connection.ClientID

	merklePath := commitmenttypes.NewMerklePath(host.FullClientStatePath(connection.Counterparty.ClientID))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, merklePath)
	if err != nil {
		return err
	}

	bz := clienttypes.MustMarshalClientState(clientState)

	if err := k.clientKeeper.VerifyMembership(clientID, height, proof, merklePath, bz); err != nil {
		return sdkerrors.Wrapf(err, "failed client state verification for target client: %s", clientID)
	}

	return nil
}

// VerifyClientConsensusState verifies a proof of the consensus state of the
// specified client stored on the target machine.
func (k *Keeper) VerifyClientConsensusState(
	connection types.ConnectionEnd,
	height clienttypes.Height,
	consensusHeight clienttypes.Height,
	proof []byte,
	consensusState *clienttypes.ConsensusState,
) error {
	clientID := connection.ClientID

	merklePath := commitmenttypes.NewMerklePath(host.FullConsensusStatePath(connection.Counterparty.ClientID, consensusHeight))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, merklePath)
	if err != nil {
		return err
	}

	bz := clienttypes.MustMarshalConsensusState(consensusState)

	if err := k.clientKeeper.VerifyMembership(clientID, height, proof, merklePath, bz); err != nil {
		return sdkerrors.Wrapf(err, "failed consensus state verification for client (%s)", clientID)
	}

	return nil
}

// VerifyConnectionState verifies a proof of the connection state of the
// specified connection end stored on the target machine.
func (k *Keeper) VerifyConnectionState(
	connection types.ConnectionEnd,
	height clienttypes.Height,
	proof []byte,
	connectionID string,
	counterpartyConnection types.ConnectionEnd, // opposite connection
) error {
	clientID := connection.ClientID

	merklePath := commitmenttypes.NewMerklePath(host.ConnectionPath(connectionID))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, merklePath)
	if err != nil {
		return err
	}

	bz := types.MustMarshalConnection(counterpartyConnection)

	if err := k.clientKeeper.VerifyMembership(clientID, height, proof, merklePath, bz); err != nil {
		return sdkerrors.Wrapf(err, "failed connection state verification for client (%s)", clientID)
	}

	return nil
}

// VerifyChannelState verifies a proof of the channel state of the specified
// channel end, under the specified port, stored on the target machine.
func (k *Keeper) VerifyChannelState(
	connection types.ConnectionEnd,
	height clienttypes.Height,
	proof []byte,
	portID,
	channelID string,
	channel channeltypes.Channel,
) error {
	clientID := connection.ClientID

	merklePath := commitmenttypes.NewMerklePath(host.ChannelPath(portID, channelID))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, merklePath)
	if err != nil {
		return err
	}

	bz := channeltypes.MustMarshalChannel(channel)

	if err := k.clientKeeper.VerifyMembership(clientID, height, proof, merklePath, bz); err != nil {
		return sdkerrors.Wrapf(err, "failed channel state verification for client (%s)", clientID)
	}

	return nil
}
