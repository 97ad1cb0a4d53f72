package keeper

import (
	metrics "github.com/armon/go-metrics"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
	"github.com/cosmos/ibc-handshake/modules/core/04-channel/types"
	coremetrics "github.com/cosmos/ibc-handshake/modules/core/metrics"
	coretypes "github.com/cosmos/ibc-handshake/modules/core/types"
)

// ChanOpenInit is called by a module to initiate a channel opening handshake with
// a module on another chain. The counterparty channel identifier is validated to be
// empty in msg validation.
func (k *Keeper) ChanOpenInit(
	em *coretypes.EventManager,
	order types.Order,
	connectionHops []string,
	portID string,
	counterparty types.Counterparty,
	version string,
) (string, error) {
	// connection hop length checked on msg.ValidateBasic()
	connectionEnd, err := k.GetConnection(connectionHops[0])
	if err != nil {
		return "", err
	}

	getVersions := connectionEnd.Versions
	if len(getVersions) != 1 {
		return "", sdkerrors.Wrapf(
			connectiontypes.ErrInvalidVersion,
			"single version must be negotiated on connection before opening channel, got: %v",
			getVersions,
		)
	}

	if !connectiontypes.VerifySupportedFeature(getVersions[0], order.String()) {
		return "", sdkerrors.Wrap(
			connectiontypes.ErrInvalidVersion,
			"connection version provided does not support requested channel ordering",
		)
	}

	channelID := k.GenerateChannelIdentifier()

	channel := types.NewChannel(types.INIT, order, counterparty, connectionHops, version)
	k.SetChannel(portID, channelID, channel)

	k.Logger().Info("channel state updated", "port-id", portID, "channel-id", channelID, "previous-state", types.UNINITIALIZED.String(), "new-state", types.INIT.String())

	defer telemetry.IncrCounter(1, "ibc", "channel", "open-init")

	emitChannelOpenInitEvent(em, portID, channelID, channel)

	return channelID, nil
}

// ChanOpenTry is called by a module to accept the first step of a channel opening
// handshake initiated by a module on another chain.
func (k *Keeper) ChanOpenTry(
	em *coretypes.EventManager,
	order types.Order,
	connectionHops []string,
	portID string,
	counterparty types.Counterparty,
	version string,
	counterpartyVersion string,
	proofInit []byte,
	proofHeight clienttypes.Height,
) (string, error) {
	connectionEnd, err := k.GetConnection(connectionHops[0])
	if err != nil {
		return "", err
	}

	if connectionEnd.State != connectiontypes.OPEN {
		return "", sdkerrors.Wrapf(
			connectiontypes.ErrInvalidConnectionState,
			"connection state is not OPEN (got %s)", connectionEnd.State,
		)
	}

	getVersions := connectionEnd.Versions
	if len(getVersions) != 1 {
		return "", sdkerrors.Wrapf(
			connectiontypes.ErrInvalidVersion,
			"single version must be negotiated on connection before opening channel, got: %v",
			getVersions,
		)
	}

	if !connectiontypes.VerifySupportedFeature(getVersions[0], order.String()) {
		return "", sdkerrors.Wrapf(
			connectiontypes.ErrInvalidVersion,
			"connection version %s does not support channel ordering: %s",
			getVersions[0].GetIdentifier(), order.String(),
		)
	}

	counterpartyHops := []string{connectionEnd.Counterparty.ConnectionID}

	// expectedCounterpaty is the counterparty of the counterparty's channel end
	// (i.e self)
	expectedCounterparty := types.NewCounterparty(portID, "")
	expectedChannel := types.NewChannel(
		types.INIT, order, expectedCounterparty,
		counterpartyHops, counterpartyVersion,
	)

	if err := k.connectionKeeper.VerifyChannelState(
		connectionEnd, proofHeight, proofInit,
		counterparty.PortID, counterparty.ChannelID, expectedChannel,
	); err != nil {
		return "", err
	}

	channelID := k.GenerateChannelIdentifier()

	channel := types.NewChannel(types.TRYOPEN, order, counterparty, connectionHops, version)
	k.SetChannel(portID, channelID, channel)

	k.Logger().Info("channel state updated", "port-id", portID, "channel-id", channelID, "previous-state", types.UNINITIALIZED.String(), "new-state", types.TRYOPEN.String())

	defer telemetry.IncrCounter(1, "ibc", "channel", "open-try")

	emitChannelOpenTryEvent(em, portID, channelID, channel)

	return channelID, nil
}

// ChanOpenAck is called by the handshake-originating module to acknowledge the
// acceptance of the initial request by the counterparty module on the other chain.
func (k *Keeper) ChanOpenAck(
	em *coretypes.EventManager,
	portID,
	channelID string,
	counterpartyVersion,
	counterpartyChannelID string,
	proofTry []byte,
	proofHeight clienttypes.Height,
) error {
	channel, found := k.GetChannel(portID, channelID)
	if !found {
		return sdkerrors.Wrapf(types.ErrChannelNotFound, "port ID (%s) channel ID (%s)", portID, channelID)
	}

	if channel.State != types.INIT {
		return sdkerrors.Wrapf(types.ErrInvalidChannelState, "channel state should be INIT (got %s)", channel.State)
	}

	connectionEnd, err := k.GetConnection(channel.ConnectionHops[0])
	if err != nil {
		return err
	}

	if connectionEnd.State != connectiontypes.OPEN {
		return sdkerrors.Wrapf(
			connectiontypes.ErrInvalidConnectionState,
			"connection state is not OPEN (got %s)", connectionEnd.State,
		)
	}

	counterpartyHops := []string{connectionEnd.Counterparty.ConnectionID}

	// counterparty of the counterparty channel end (i.e self)
	expectedCounterparty := types.NewCounterparty(portID, channelID)
	expectedChannel := types.NewChannel(
		types.TRYOPEN, channel.Ordering, expectedCounterparty,
		counterpartyHops, counterpartyVersion,
	)

	if err := k.connectionKeeper.VerifyChannelState(
		connectionEnd, proofHeight, proofTry,
		channel.Counterparty.PortID, counterpartyChannelID,
		expectedChannel,
	); err != nil {
		return err
	}

	channel.State = types.OPEN
	channel.Version = counterpartyVersion
	channel.Counterparty.ChannelID = counterpartyChannelID
	k.SetChannel(portID, channelID, channel)

	k.Logger().Info("channel state updated", "port-id", portID, "channel-id", channelID, "previous-state", types.INIT.String(), "new-state", types.OPEN.String())

	defer telemetry.IncrCounter(1, "ibc", "channel", "open-ack")

	emitChannelOpenAckEvent(em, portID, channelID, channel)

	return nil
}

// ChanOpenConfirm is called by the handshake-accepting module to confirm the acknowledgement
// of the handshake-originator's acknowledgement of the handshake-accepter's acceptance of the
// initial request.
func (k *Keeper) ChanOpenConfirm(
	em *coretypes.EventManager,
	portID,
	channelID string,
	proofAck []byte,
	proofHeight clienttypes.Height,
) error {
	channel, found := k.GetChannel(portID, channelID)
	if !found {
		return sdkerrors.Wrapf(types.ErrChannelNotFound, "port ID (%s) channel ID (%s)", portID, channelID)
	}

	if channel.State != types.TRYOPEN {
		return sdkerrors.Wrapf(
			types.ErrInvalidChannelState,
			"channel state is not TRYOPEN (got %s)", channel.State,
		)
	}

	connectionEnd, err := k.GetConnection(channel.ConnectionHops[0])
	if err != nil {
		return err
	}

	if connectionEnd.State != connectiontypes.OPEN {
		return sdkerrors.Wrapf(
			connectiontypes.ErrInvalidConnectionState,
			"connection state is not OPEN (got %s)", connectionEnd.State,
		)
	}

	counterpartyHops := []string{connectionEnd.Counterparty.ConnectionID}

	counterparty := types.NewCounterparty(portID, channelID)
	expectedChannel := types.NewChannel(
		types.OPEN, channel.Ordering, counterparty,
		counterpartyHops, channel.Version,
	)

	if err := k.connectionKeeper.VerifyChannelState(
		connectionEnd, proofHeight, proofAck,
		channel.Counterparty.PortID, channel.Counterparty.ChannelID,
		expectedChannel,
	); err != nil {
		return err
	}

	channel.State = types.OPEN
	k.SetChannel(portID, channelID, channel)

	k.Logger().Info("channel state updated", "port-id", portID, "channel-id", channelID, "previous-state", types.TRYOPEN.String(), "new-state", types.OPEN.String())

	defer telemetry.IncrCounter(1, "ibc", "channel", "open-confirm")

	emitChannelOpenConfirmEvent(em, portID, channelID, channel)

	return nil
}

// Closing Handshake
//
// This section defines the set of functions required to close a channel handshake
// as defined in https://github.com/cosmos/ibc/tree/master/spec/core/ics-004-channel-and-packet-semantics#closing-handshake

// ChanCloseInit is called by either module to close their end of the channel. Once
// closed, channels cannot be reopened.
func (k *Keeper) ChanCloseInit(
	em *coretypes.EventManager,
	portID,
	channelID string,
) error {
	channel, found := k.GetChannel(portID, channelID)
	if !found {
		return sdkerrors.Wrapf(types.ErrChannelNotFound, "port ID (%s) channel ID (%s)", portID, channelID)
	}

	if channel.State == types.CLOSED {
		return sdkerrors.Wrap(types.ErrInvalidChannelState, "channel is already CLOSED")
	}

	connectionEnd, err := k.GetConnection(channel.ConnectionHops[0])
	if err != nil {
		return err
	}

	if connectionEnd.State != connectiontypes.OPEN {
		return sdkerrors.Wrapf(
			connectiontypes.ErrInvalidConnectionState,
			"connection state is not OPEN (got %s)", connectionEnd.State,
		)
	}

	k.Logger().Info("channel state updated", "port-id", portID, "channel-id", channelID, "previous-state", channel.State.String(), "new-state", types.CLOSED.String())

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "channel", "close-init"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelPortID, portID),
			telemetry.NewLabel(coremetrics.LabelChannelID, channelID),
		},
	)

	channel.State = types.CLOSED
	k.SetChannel(portID, channelID, channel)

	emitChannelCloseInitEvent(em, portID, channelID, channel)

	return nil
}

// ChanCloseConfirm is called by the counterparty module to close their end of the
// channel, since the other end has been closed.
func (k *Keeper) ChanCloseConfirm(
	em *coretypes.EventManager,
	portID,
	channelID string,
	proofInit []byte,
	proofHeight clienttypes.Height,
) error {
	channel, found := k.GetChannel(portID, channelID)
	if !found {
		return sdkerrors.Wrapf(types.ErrChannelNotFound, "port ID (%s) channel ID (%s)", portID, channelID)
	}

	if channel.State == types.CLOSED {
		return sdkerrors.Wrap(types.ErrInvalidChannelState, "channel is already CLOSED")
	}

	connectionEnd, err := k.GetConnection(channel.ConnectionHops[0])
	if err != nil {
		return err
	}

	if connectionEnd.State != connectiontypes.OPEN {
		return sdkerrors.Wrapf(
			connectiontypes.ErrInvalidConnectionState,
			"connection state is not OPEN (got %s)", connectionEnd.State,
		)
	}

	counterpartyHops := []string{connectionEnd.Counterparty.ConnectionID}

	counterparty := types.NewCounterparty(portID, channelID)
	expectedChannel := types.NewChannel(
		types.CLOSED, channel.Ordering, counterparty,
		counterpartyHops, channel.Version,
	)

	if err := k.connectionKeeper.VerifyChannelState(
		connectionEnd, proofHeight, proofInit,
		channel.Counterparty.PortID, channel.Counterparty.ChannelID,
		expectedChannel,
	); err != nil {
		return err
	}

	k.Logger().Info("channel state updated", "port-id", portID, "channel-id", channelID, "previous-state", channel.State.String(), "new-state", types.CLOSED.String())

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "channel", "close-confirm"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelPortID, portID),
			telemetry.NewLabel(coremetrics.LabelChannelID, channelID),
		},
	)

	channel.State = types.CLOSED
	k.SetChannel(portID, channelID, channel)

	emitChannelCloseConfirmEvent(em, portID, channelID, channel)

	return nil
}
