package keeper

import (
	metrics "github.com/armon/go-metrics"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	clientkeeper "github.com/cosmos/ibc-handshake/modules/core/02-client/keeper"
	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	connectionkeeper "github.com/cosmos/ibc-handshake/modules/core/03-connection/keeper"
	channelkeeper "github.com/cosmos/ibc-handshake/modules/core/04-channel/keeper"
	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
	coremetrics "github.com/cosmos/ibc-handshake/modules/core/metrics"
	"github.com/cosmos/ibc-handshake/modules/core/types"
)

// Keeper defines each ICS keeper for IBC
type Keeper struct {
	ClientKeeper     *clientkeeper.Keeper
	ConnectionKeeper *connectionkeeper.Keeper
	ChannelKeeper    *channelkeeper.Keeper

	eventLog types.EventLog
	logger   log.Logger
}

// NewKeeper creates a new ibc Keeper
func NewKeeper(
	store exported.KVStore, hostChain clienttypes.HostChain, router *clienttypes.Router,
	eventLog types.EventLog, logger log.Logger,
) *Keeper {
	if store == nil {
		panic("cannot initialize IBC keeper: nil store")
	}
	if hostChain == nil {
		panic("cannot initialize IBC keeper: nil host chain")
	}
	if eventLog == nil {
		panic("cannot initialize IBC keeper: nil event log")
	}

	clientKeeper := clientkeeper.NewKeeper(store, hostChain, router, logger)
	connectionKeeper := connectionkeeper.NewKeeper(store, clientKeeper, logger)
	channelKeeper := channelkeeper.NewKeeper(store, connectionKeeper, logger)

	return &Keeper{
		ClientKeeper:     clientKeeper,
		ConnectionKeeper: connectionKeeper,
		ChannelKeeper:    channelKeeper,
		eventLog:         eventLog,
		logger:           logger,
	}
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+exported.ModuleName)
}

// EventLog returns the log every dispatched message appends its outcome event to.
func (k *Keeper) EventLog() types.EventLog {
	return k.eventLog
}

// Deliver validates and applies a single message. A successfully applied message
// produces exactly one event, which is appended to the event log and returned.
func (k *Keeper) Deliver(msg types.Msg) (types.Event, error) {
	if msg == nil {
		return types.Event{}, sdkerrors.Wrap(ibcerrors.ErrInvalidRequest, "message cannot be nil")
	}

	msgType := msg.Type()
	if err := msg.ValidateBasic(); err != nil {
		k.Logger().Error("message validation failed", "msg-type", msgType, "error", err)
		return types.Event{}, err
	}

	em := types.NewEventManager()
	if err := k.dispatch(em, msg); err != nil {
		k.Logger().Error("message dispatch failed", "msg-type", msgType, "error", err)
		return types.Event{}, err
	}

	events := em.Events()
	if len(events) != 1 {
		return types.Event{}, sdkerrors.Wrapf(ibcerrors.ErrLogic, "%s emitted %d events, expected exactly one", msgType, len(events))
	}

	event := events[0]
	k.eventLog.Append(event)

	k.Logger().Debug("message delivered", "msg-type", msgType, "event-type", event.Type)

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "msg", "deliver"},
		1,
		[]metrics.Label{telemetry.NewLabel(coremetrics.LabelMsgType, msgType)},
	)

	return event, nil
}
