package keeper

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-handshake/modules/core/04-channel/types"
	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
	"github.com/cosmos/ibc-handshake/modules/core/types"
)

// dispatch routes a message to the handler of its submodule.
func (k *Keeper) dispatch(em *types.EventManager, msg types.Msg) error {
	switch msg := msg.(type) {
	case *clienttypes.MsgCreateClient:
		return k.CreateClient(em, msg)
	case *clienttypes.MsgUpdateClient:
		return k.UpdateClient(em, msg)
	case *connectiontypes.MsgConnectionOpenInit:
		return k.ConnectionOpenInit(em, msg)
	case *connectiontypes.MsgConnectionOpenTry:
		return k.ConnectionOpenTry(em, msg)
	case *connectiontypes.MsgConnectionOpenAck:
		return k.ConnectionOpenAck(em, msg)
	case *connectiontypes.MsgConnectionOpenConfirm:
		return k.ConnectionOpenConfirm(em, msg)
	case *channeltypes.MsgChannelOpenInit:
		return k.ChannelOpenInit(em, msg)
	case *channeltypes.MsgChannelOpenTry:
		return k.ChannelOpenTry(em, msg)
	case *channeltypes.MsgChannelOpenAck:
		return k.ChannelOpenAck(em, msg)
	case *channeltypes.MsgChannelOpenConfirm:
		return k.ChannelOpenConfirm(em, msg)
	case *channeltypes.MsgChannelCloseInit:
		return k.ChannelCloseInit(em, msg)
	case *channeltypes.MsgChannelCloseConfirm:
		return k.ChannelCloseConfirm(em, msg)
	default:
		return sdkerrors.Wrapf(ibcerrors.ErrUnknownRequest, "unrecognized IBC message type: %T", msg)
	}
}

// CreateClient defines a rpc handler method for MsgCreateClient.
func (k *Keeper) CreateClient(em *types.EventManager, msg *clienttypes.MsgCreateClient) error {
	if _, err := k.ClientKeeper.CreateClient(em, msg.ClientState, msg.ConsensusState); err != nil {
		return err
	}

	return nil
}

// UpdateClient defines a rpc handler method for MsgUpdateClient.
func (k *Keeper) UpdateClient(em *types.EventManager, msg *clienttypes.MsgUpdateClient) error {
	if _, err := k.ClientKeeper.UpdateClient(em, msg.ClientID, msg.Header); err != nil {
		return err
	}

	return nil
}

// ConnectionOpenInit defines a rpc handler method for MsgConnectionOpenInit.
func (k *Keeper) ConnectionOpenInit(em *types.EventManager, msg *connectiontypes.MsgConnectionOpenInit) error {
	if _, err := k.ConnectionKeeper.ConnOpenInit(em, msg.ClientID, msg.Counterparty, msg.Version, msg.DelayPeriod); err != nil {
		return sdkerrors.Wrap(err, "connection handshake open init failed")
	}

	return nil
}

// ConnectionOpenTry defines a rpc handler method for MsgConnectionOpenTry.
func (k *Keeper) ConnectionOpenTry(em *types.EventManager, msg *connectiontypes.MsgConnectionOpenTry) error {
	if _, err := k.ConnectionKeeper.ConnOpenTry(
		em, msg.Counterparty, msg.DelayPeriod, msg.ClientID, msg.ClientState,
		msg.CounterpartyVersions, msg.ProofInit, msg.ProofClient, msg.ProofConsensus,
		msg.ProofHeight, msg.ConsensusHeight,
	); err != nil {
		return sdkerrors.Wrap(err, "connection handshake open try failed")
	}

	return nil
}

// ConnectionOpenAck defines a rpc handler method for MsgConnectionOpenAck.
func (k *Keeper) ConnectionOpenAck(em *types.EventManager, msg *connectiontypes.MsgConnectionOpenAck) error {
	if err := k.ConnectionKeeper.ConnOpenAck(
		em, msg.ConnectionID, msg.ClientState, msg.Version, msg.CounterpartyConnectionID,
		msg.ProofTry, msg.ProofClient, msg.ProofConsensus,
		msg.ProofHeight, msg.ConsensusHeight,
	); err != nil {
		return sdkerrors.Wrap(err, "connection handshake open ack failed")
	}

	return nil
}

// ConnectionOpenConfirm defines a rpc handler method for MsgConnectionOpenConfirm.
func (k *Keeper) ConnectionOpenConfirm(em *types.EventManager, msg *connectiontypes.MsgConnectionOpenConfirm) error {
	if err := k.ConnectionKeeper.ConnOpenConfirm(em, msg.ConnectionID, msg.ProofAck, msg.ProofHeight); err != nil {
		return sdkerrors.Wrap(err, "connection handshake open confirm failed")
	}

	return nil
}

// ChannelOpenInit defines a rpc handler method for MsgChannelOpenInit.
func (k *Keeper) ChannelOpenInit(em *types.EventManager, msg *channeltypes.MsgChannelOpenInit) error {
	channelID, err := k.ChannelKeeper.ChanOpenInit(
		em, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortID, msg.Channel.Counterparty, msg.Channel.Version,
	)
	if err != nil {
		k.Logger().Error("channel open init failed", "port-id", msg.PortID, "error", err)
		return sdkerrors.Wrap(err, "channel handshake open init failed")
	}

	k.Logger().Info("channel open init succeeded", "channel-id", channelID)
	return nil
}

// ChannelOpenTry defines a rpc handler method for MsgChannelOpenTry.
func (k *Keeper) ChannelOpenTry(em *types.EventManager, msg *channeltypes.MsgChannelOpenTry) error {
	channelID, err := k.ChannelKeeper.ChanOpenTry(
		em, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortID,
		msg.Channel.Counterparty, msg.Channel.Version, msg.CounterpartyVersion, msg.ProofInit, msg.ProofHeight,
	)
	if err != nil {
		k.Logger().Error("channel open try failed", "port-id", msg.PortID, "error", err)
		return sdkerrors.Wrap(err, "channel handshake open try failed")
	}

	k.Logger().Info("channel open try succeeded", "channel-id", channelID, "port-id", msg.PortID)
	return nil
}

// ChannelOpenAck defines a rpc handler method for MsgChannelOpenAck.
func (k *Keeper) ChannelOpenAck(em *types.EventManager, msg *channeltypes.MsgChannelOpenAck) error {
	if err := k.ChannelKeeper.ChanOpenAck(
		em, msg.PortID, msg.ChannelID, msg.CounterpartyVersion, msg.CounterpartyChannelID, msg.ProofTry, msg.ProofHeight,
	); err != nil {
		k.Logger().Error("channel open ack failed", "port-id", msg.PortID, "channel-id", msg.ChannelID, "error", err)
		return sdkerrors.Wrap(err, "channel handshake open ack failed")
	}

	k.Logger().Info("channel open ack succeeded", "channel-id", msg.ChannelID, "port-id", msg.PortID)
	return nil
}

// ChannelOpenConfirm defines a rpc handler method for MsgChannelOpenConfirm.
func (k *Keeper) ChannelOpenConfirm(em *types.EventManager, msg *channeltypes.MsgChannelOpenConfirm) error {
	if err := k.ChannelKeeper.ChanOpenConfirm(em, msg.PortID, msg.ChannelID, msg.ProofAck, msg.ProofHeight); err != nil {
		k.Logger().Error("channel open confirm failed", "port-id", msg.PortID, "channel-id", msg.ChannelID, "error", err)
		return sdkerrors.Wrap(err, "channel handshake open confirm failed")
	}

	k.Logger().Info("channel open confirm succeeded", "channel-id", msg.ChannelID, "port-id", msg.PortID)
	return nil
}

// ChannelCloseInit defines a rpc handler method for MsgChannelCloseInit.
func (k *Keeper) ChannelCloseInit(em *types.EventManager, msg *channeltypes.MsgChannelCloseInit) error {
	if err := k.ChannelKeeper.ChanCloseInit(em, msg.PortID, msg.ChannelID); err != nil {
		k.Logger().Error("channel close init failed", "port-id", msg.PortID, "channel-id", msg.ChannelID, "error", err)
		return sdkerrors.Wrap(err, "channel handshake close init failed")
	}

	k.Logger().Info("channel close init succeeded", "channel-id", msg.ChannelID, "port-id", msg.PortID)
	return nil
}

// ChannelCloseConfirm defines a rpc handler method for MsgChannelCloseConfirm.
func (k *Keeper) ChannelCloseConfirm(em *types.EventManager, msg *channeltypes.MsgChannelCloseConfirm) error {
	if err := k.ChannelKeeper.ChanCloseConfirm(em, msg.PortID, msg.ChannelID, msg.ProofInit, msg.ProofHeight); err != nil {
		k.Logger().Error("channel close confirm failed", "port-id", msg.PortID, "channel-id", msg.ChannelID, "error", err)
		return sdkerrors.Wrap(err, "channel handshake close confirm failed")
	}

	k.Logger().Info("channel close confirm succeeded", "channel-id", msg.ChannelID, "port-id", msg.PortID)
	return nil
}
