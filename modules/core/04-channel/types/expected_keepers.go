package types

import (
	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
)

// ConnectionKeeper expected account IBC connection keeper
type ConnectionKeeper interface {
	GetConnection(connectionID string) (connectiontypes.ConnectionEnd, bool)
	VerifyChannelState(
		connection connectiontypes.ConnectionEnd,
		height clienttypes.Height,
		proof []byte,
		portID,
		channelID string,
		channel Channel,
	) error
}
