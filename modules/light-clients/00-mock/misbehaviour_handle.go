package mock

import (
	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
)

// CheckForMisbehaviour detects duplicate height misbehaviour and BFT time violation misbehaviour.
// Headers reaching it through UpdateClient are above the latest client height, so on
// that path only a consensus state stored above that height can trigger it.
func (LightClientModule) CheckForMisbehaviour(
	ctx clienttypes.ClientValidationContext, clientID string, _ *clienttypes.ClientState, header *clienttypes.Header,
) bool {
	consState := header.ConsensusState()

	// Check if the Client store already has a consensus state for the header's height
	// If the consensus state exists, and it matches the header then we return early
	// since header has already been submitted in a previous UpdateClient.
	existingConsState, err := ctx.GetClientConsensusState(clientID, header.GetHeight())
	if err == nil {
		return !existingConsState.Equal(consState)
	}

	// Check that consensus state timestamps are monotonic
	prevCons, prevOk := ctx.PrevConsensusState(clientID, header.GetHeight())
	nextCons, nextOk := ctx.NextConsensusState(clientID, header.GetHeight())
	// if previous consensus state exists, check consensus state time is greater than previous consensus state time
	// if previous consensus state is not before current consensus state return true
	if prevOk && !prevCons.Timestamp.Before(consState.Timestamp) {
		return true
	}
	// if next consensus state exists, check consensus state time is less than next consensus state time
	// if next consensus state is not after current consensus state return true
	if nextOk && !nextCons.Timestamp.After(consState.Timestamp) {
		return true
	}

	return false
}
