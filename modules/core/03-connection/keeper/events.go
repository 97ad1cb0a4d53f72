package keeper

import (
	"github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
	coretypes "github.com/cosmos/ibc-handshake/modules/core/types"
)

// emitConnectionOpenInitEvent emits a connection open init event
func emitConnectionOpenInitEvent(em *coretypes.EventManager, connectionID string, clientID string, counterparty types.Counterparty) {
	em.EmitEvent(coretypes.Event{
		Type:                 types.EventTypeConnectionOpenInit,
		ConnectionID:         connectionID,
		ClientID:             clientID,
		CounterpartyClientID: counterparty.ClientID,
	})
}

// emitConnectionOpenTryEvent emits a connection open try event
func emitConnectionOpenTryEvent(em *coretypes.EventManager, connectionID string, clientID string, counterparty types.Counterparty) {
	em.EmitEvent(coretypes.Event{
		Type:                     types.EventTypeConnectionOpenTry,
		ConnectionID:             connectionID,
		ClientID:                 clientID,
		CounterpartyClientID:     counterparty.ClientID,
		CounterpartyConnectionID: counterparty.ConnectionID,
	})
}

// emitConnectionOpenAckEvent emits a connection open acknowledge event
func emitConnectionOpenAckEvent(em *coretypes.EventManager, connectionID string, connectionEnd types.ConnectionEnd) {
	em.EmitEvent(coretypes.Event{
		Type:                     types.EventTypeConnectionOpenAck,
		ConnectionID:             connectionID,
		ClientID:                 connectionEnd.ClientID,
		CounterpartyClientID:     connectionEnd.Counterparty.ClientID,
		CounterpartyConnectionID: connectionEnd.Counterparty.ConnectionID,
	})
}

// emitConnectionOpenConfirmEvent emits a connection open confirm event
func emitConnectionOpenConfirmEvent(em *coretypes.EventManager, connectionID string, connectionEnd types.ConnectionEnd) {
	em.EmitEvent(coretypes.Event{
		Type:                     types.EventTypeConnectionOpenConfirm,
		ConnectionID:             connectionID,
		ClientID:                 connectionEnd.ClientID,
		CounterpartyClientID:     connectionEnd.Counterparty.ClientID,
		CounterpartyConnectionID: connectionEnd.Counterparty.ConnectionID,
	})
}
