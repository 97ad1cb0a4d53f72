package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	connectiontypes "github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
	"github.com/cosmos/ibc-handshake/modules/core/04-channel/types"
	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

// Keeper defines the IBC channel keeper
type Keeper struct {
	store            exported.KVStore
	connectionKeeper types.ConnectionKeeper
	logger           log.Logger
}

// NewKeeper creates a new IBC channel Keeper instance
func NewKeeper(store exported.KVStore, connectionKeeper types.ConnectionKeeper, logger log.Logger) *Keeper {
	return &Keeper{
		store:            store,
		connectionKeeper: connectionKeeper,
		logger:           logger,
	}
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName)
}

// GenerateChannelIdentifier returns the next channel identifier.
func (k *Keeper) GenerateChannelIdentifier() string {
	nextChannelSeq := k.GetNextChannelSequence()
	channelID := types.FormatChannelIdentifier(nextChannelSeq)

	nextChannelSeq++
	k.SetNextChannelSequence(nextChannelSeq)
	return channelID
}

// HasChannel true if the channel with the given identifiers exists in state.
func (k *Keeper) HasChannel(portID, channelID string) bool {
	return k.store.Has(host.ChannelKey(portID, channelID))
}

// GetChannel returns a channel with a particular identifier binded to a specific port
func (k *Keeper) GetChannel(portID, channelID string) (types.Channel, bool) {
	bz := k.store.Get(host.ChannelKey(portID, channelID))
	if len(bz) == 0 {
		return types.Channel{}, false
	}

	return types.MustUnmarshalChannel(bz), true
}

// SetChannel sets a channel to the store
func (k *Keeper) SetChannel(portID, channelID string, channel types.Channel) {
	k.store.Set(host.ChannelKey(portID, channelID), types.MustMarshalChannel(channel))
}

// GetNextChannelSequence gets the next channel sequence from the store.
func (k *Keeper) GetNextChannelSequence() uint64 {
	bz := k.store.Get(host.NextChannelSequenceKey())
	if len(bz) == 0 {
		panic("next channel sequence is nil")
	}

	return sdk.BigEndianToUint64(bz)
}

// SetNextChannelSequence sets the next channel sequence to the store.
func (k *Keeper) SetNextChannelSequence(sequence uint64) {
	bz := sdk.Uint64ToBigEndian(sequence)
	k.store.Set(host.NextChannelSequenceKey(), bz)
}

// GetConnection wraps the connection keeper's GetConnection function.
func (k *Keeper) GetConnection(connectionID string) (connectiontypes.ConnectionEnd, error) {
	connection, found := k.connectionKeeper.GetConnection(connectionID)
	if !found {
		return connectiontypes.ConnectionEnd{}, sdkerrors.Wrapf(connectiontypes.ErrConnectionNotFound, "connection-id: %s", connectionID)
	}

	return connection, nil
}

// GetChannelConnection returns the connection ID and state associated with the given port and channel identifier.
func (k *Keeper) GetChannelConnection(portID, channelID string) (string, connectiontypes.ConnectionEnd, error) {
	channel, found := k.GetChannel(portID, channelID)
	if !found {
		return "", connectiontypes.ConnectionEnd{}, sdkerrors.Wrapf(types.ErrChannelNotFound, "port-id: %s, channel-id: %s", portID, channelID)
	}

	if len(channel.ConnectionHops) == 0 {
		return "", connectiontypes.ConnectionEnd{}, sdkerrors.Wrapf(types.ErrConnectionHopsNotFound, "port-id: %s, channel-id: %s", portID, channelID)
	}

	connectionID := channel.ConnectionHops[0]
	connection, err := k.GetConnection(connectionID)
	if err != nil {
		return "", connectiontypes.ConnectionEnd{}, err
	}

	return connectionID, connection, nil
}
