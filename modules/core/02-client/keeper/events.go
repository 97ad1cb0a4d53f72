package keeper

import (
	"github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	coretypes "github.com/cosmos/ibc-handshake/modules/core/types"
)

// emitCreateClientEvent emits a create client event
func emitCreateClientEvent(em *coretypes.EventManager, clientID string, clientState *types.ClientState) {
	em.EmitEvent(coretypes.Event{
		Type:             types.EventTypeCreateClient,
		ClientID:         clientID,
		ClientType:       clientState.ClientType(),
		ConsensusHeights: []types.Height{clientState.LatestHeight},
	})
}

// emitUpdateClientEvent emits an update client event
func emitUpdateClientEvent(em *coretypes.EventManager, clientID string, clientType string, consensusHeights []types.Height) {
	em.EmitEvent(coretypes.Event{
		Type:             types.EventTypeUpdateClient,
		ClientID:         clientID,
		ClientType:       clientType,
		ConsensusHeights: consensusHeights,
	})
}

// emitSubmitMisbehaviourEvent emits a client misbehaviour event
func emitSubmitMisbehaviourEvent(em *coretypes.EventManager, clientID string, clientType string) {
	em.EmitEvent(coretypes.Event{
		Type:       types.EventTypeSubmitMisbehaviour,
		ClientID:   clientID,
		ClientType: clientType,
	})
}
