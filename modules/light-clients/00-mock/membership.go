package mock

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

// VerifyMembership is a generic proof verification method which verifies a proof of the
// existence of a value at a given CommitmentPath at the specified height. The client
// must trust the proof height and hold the consensus state taken at exactly that height.
func (LightClientModule) VerifyMembership(
	ctx clienttypes.ClientValidationContext,
	clientID string,
	clientState *clienttypes.ClientState,
	height exported.Height,
	proof []byte,
	path commitmenttypes.MerklePath,
	value []byte,
) error {
	if clientState.LatestHeight.LT(height) {
		return sdkerrors.Wrapf(
			ibcerrors.ErrInvalidHeight,
			"client state height < proof height (%s < %s), please ensure the client has been updated", clientState.LatestHeight, height,
		)
	}

	consensusState, err := ctx.GetClientConsensusState(clientID, height)
	if err != nil {
		return sdkerrors.Wrap(err, "please ensure the proof was constructed against a height that exists on the client")
	}

	return commitmenttypes.VerifyMembership(consensusState.GetRoot(), proof, path, value)
}
