package mock

import (
	"bytes"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/crypto/tmhash"

	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
)

// VerifyClientMessage checks that the header was signed by the validator set the client
// trusts at the header's trusted height:
//
// - the header belongs to the chain the client tracks,
// - the header is newer than the trusted height and its consensus state exists,
// - the signing key hashes to the trusted next validators hash,
// - the signature over the block header is valid,
// - the header time is after the trusted time and not too far in the host's future.
func (LightClientModule) VerifyClientMessage(
	ctx clienttypes.ClientValidationContext, clientID string, clientState *clienttypes.ClientState, header *clienttypes.Header,
) error {
	if err := header.ValidateBasic(); err != nil {
		return sdkerrors.Wrap(ErrInvalidHeader, err.Error())
	}

	if header.BlockHeader.ChainID != clientState.ChainID {
		return sdkerrors.Wrapf(ErrInvalidChainID, "header chain-id %s does not match client chain-id %s", header.BlockHeader.ChainID, clientState.ChainID)
	}

	if header.BlockHeader.Height.RevisionNumber != clientState.LatestHeight.RevisionNumber {
		return sdkerrors.Wrapf(
			ErrInvalidHeaderHeight,
			"header height revision %d does not match trusted header revision %d",
			header.BlockHeader.Height.RevisionNumber, clientState.LatestHeight.RevisionNumber,
		)
	}

	if !header.BlockHeader.Height.GT(header.TrustedHeight) {
		return sdkerrors.Wrapf(
			ErrInvalidHeaderHeight,
			"header height ≤ consensus state height (%s ≤ %s)", header.BlockHeader.Height, header.TrustedHeight,
		)
	}

	trustedConsState, err := ctx.GetClientConsensusState(clientID, header.TrustedHeight)
	if err != nil {
		return sdkerrors.Wrapf(err, "could not get trusted consensus state from clientStore for Header at TrustedHeight: %s", header.TrustedHeight)
	}

	if !bytes.Equal(tmhash.Sum(header.ValidatorPubKey), trustedConsState.NextValidatorsHash) {
		return sdkerrors.Wrapf(
			ErrInvalidValidatorSet,
			"header validator does not match the trusted next validators hash %X", trustedConsState.NextValidatorsHash,
		)
	}

	signBytes, err := header.BlockHeader.SignBytes()
	if err != nil {
		return sdkerrors.Wrap(ErrInvalidHeader, err.Error())
	}
	if !header.ValidatorPubKey.VerifySignature(signBytes, header.Signature) {
		return sdkerrors.Wrapf(ErrInvalidSignature, "header at height %s", header.BlockHeader.Height)
	}

	if !header.GetTime().After(trustedConsState.Timestamp) {
		return sdkerrors.Wrapf(
			ErrInvalidHeader,
			"header time %s must be after the trusted consensus state time %s", header.GetTime(), trustedConsState.Timestamp,
		)
	}

	maxTime := ctx.HostTimestamp().Add(clientState.MaxClockDrift)
	if !header.GetTime().Before(maxTime) {
		return sdkerrors.Wrapf(
			ErrInvalidHeader,
			"header time %s is too far in the future of host time %s (max clock drift %s)", header.GetTime(), ctx.HostTimestamp(), clientState.MaxClockDrift,
		)
	}

	return nil
}
