package keeper

import (
	"github.com/cosmos/ibc-handshake/modules/core/04-channel/types"
	coretypes "github.com/cosmos/ibc-handshake/modules/core/types"
)

func channelEvent(eventType, portID, channelID string, channel types.Channel) coretypes.Event {
	return coretypes.Event{
		Type:                  eventType,
		PortID:                portID,
		ChannelID:             channelID,
		CounterpartyPortID:    channel.Counterparty.PortID,
		CounterpartyChannelID: channel.Counterparty.ChannelID,
		ConnectionID:          channel.ConnectionHops[0],
	}
}

// emitChannelOpenInitEvent emits a channel open init event
func emitChannelOpenInitEvent(em *coretypes.EventManager, portID string, channelID string, channel types.Channel) {
	em.EmitEvent(channelEvent(types.EventTypeChannelOpenInit, portID, channelID, channel))
}

// emitChannelOpenTryEvent emits a channel open try event
func emitChannelOpenTryEvent(em *coretypes.EventManager, portID string, channelID string, channel types.Channel) {
	em.EmitEvent(channelEvent(types.EventTypeChannelOpenTry, portID, channelID, channel))
}

// emitChannelOpenAckEvent emits a channel open acknowledge event
func emitChannelOpenAckEvent(em *coretypes.EventManager, portID string, channelID string, channel types.Channel) {
	em.EmitEvent(channelEvent(types.EventTypeChannelOpenAck, portID, channelID, channel))
}

// emitChannelOpenConfirmEvent emits a channel open confirm event
func emitChannelOpenConfirmEvent(em *coretypes.EventManager, portID string, channelID string, channel types.Channel) {
	em.EmitEvent(channelEvent(types.EventTypeChannelOpenConfirm, portID, channelID, channel))
}

// emitChannelCloseInitEvent emits a channel close init event
func emitChannelCloseInitEvent(em *coretypes.EventManager, portID string, channelID string, channel types.Channel) {
	em.EmitEvent(channelEvent(types.EventTypeChannelCloseInit, portID, channelID, channel))
}

// emitChannelCloseConfirmEvent emits a channel close confirm event
func emitChannelCloseConfirmEvent(em *coretypes.EventManager, portID string, channelID string, channel types.Channel) {
	em.EmitEvent(channelEvent(types.EventTypeChannelCloseConfirm, portID, channelID, channel))
}
