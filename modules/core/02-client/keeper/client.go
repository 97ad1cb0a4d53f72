package keeper

import (
	metrics "github.com/armon/go-metrics"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
	coremetrics "github.com/cosmos/ibc-handshake/modules/core/metrics"
	coretypes "github.com/cosmos/ibc-handshake/modules/core/types"
)

// CreateClient generates a new client identifier and stores the provided client state
// and its initial consensus state at the client's latest height.
func (k *Keeper) CreateClient(
	em *coretypes.EventManager, clientState *types.ClientState, consensusState *types.ConsensusState,
) (string, error) {
	if err := clientState.Validate(); err != nil {
		return "", err
	}
	if err := consensusState.ValidateBasic(); err != nil {
		return "", err
	}

	clientType := clientState.ClientType()
	if !k.router.HasRoute(clientType) {
		return "", sdkerrors.Wrapf(types.ErrInvalidClientType, "no light client module registered for client type %s", clientType)
	}

	if status := clientState.Status(consensusState.Timestamp, k.HostTimestamp()); status != exported.Active {
		return "", sdkerrors.Wrapf(types.ErrClientNotActive, "cannot create client with status %s", status)
	}

	clientID := k.GenerateClientIdentifier(clientType)

	k.SetClientState(clientID, clientState)
	k.SetClientConsensusState(clientID, clientState.LatestHeight, consensusState)

	k.Logger().Info("client created at height", "client-id", clientID, "height", clientState.LatestHeight.String())

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "client", "create"},
		1,
		[]metrics.Label{telemetry.NewLabel(coremetrics.LabelClientType, clientType)},
	)

	emitCreateClientEvent(em, clientID, clientState)

	return clientID, nil
}

// UpdateClient updates the consensus state and the state root from a provided header.
// The header must be newer than the latest height the client trusts. A header that
// conflicts with the stored history freezes the client instead.
func (k *Keeper) UpdateClient(em *coretypes.EventManager, clientID string, header *types.Header) ([]types.Height, error) {
	clientState, found := k.GetClientState(clientID)
	if !found {
		return nil, sdkerrors.Wrapf(types.ErrClientNotFound, "cannot update client with ID %s", clientID)
	}

	if status := k.GetClientStatus(clientID); status != exported.Active {
		return nil, sdkerrors.Wrapf(types.ErrClientNotActive, "cannot update client (%s) with status %s", clientID, status)
	}

	if header.BlockHeader.Height.LTE(clientState.LatestHeight) {
		return nil, sdkerrors.Wrapf(
			ibcerrors.ErrInvalidHeight,
			"header height %s must be greater than the latest client height %s", header.BlockHeader.Height, clientState.LatestHeight,
		)
	}

	clientType := clientState.ClientType()

	lightClientModule, err := k.lightClientModule(clientID)
	if err != nil {
		return nil, err
	}

	if err := lightClientModule.VerifyClientMessage(k, clientID, clientState, header); err != nil {
		return nil, err
	}

	if lightClientModule.CheckForMisbehaviour(k, clientID, clientState, header) {
		clientState.FrozenHeight = types.NewHeight(0, 1)
		k.SetClientState(clientID, clientState)

		k.Logger().Info("client frozen due to misbehaviour", "client-id", clientID)

		defer telemetry.IncrCounterWithLabels(
			[]string{"ibc", "client", "misbehaviour"},
			1,
			[]metrics.Label{
				telemetry.NewLabel(coremetrics.LabelClientType, clientType),
				telemetry.NewLabel(coremetrics.LabelClientID, clientID),
				telemetry.NewLabel(coremetrics.LabelMsgType, "update"),
			},
		)

		emitSubmitMisbehaviourEvent(em, clientID, clientType)

		return nil, nil
	}

	height := header.BlockHeader.Height
	consensusHeights := []types.Height{height}

	k.SetClientConsensusState(clientID, height, header.ConsensusState())
	clientState.LatestHeight = height
	k.SetClientState(clientID, clientState)

	k.Logger().Info("client state updated", "client-id", clientID, "heights", consensusHeights)

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "client", "update"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelClientType, clientType),
			telemetry.NewLabel(coremetrics.LabelClientID, clientID),
			telemetry.NewLabel(coremetrics.LabelUpdateType, "msg"),
		},
	)

	emitUpdateClientEvent(em, clientID, clientType, consensusHeights)

	return consensusHeights, nil
}

// VerifyMembership verifies a proof against the consensus state the client trusts at height.
func (k *Keeper) VerifyMembership(clientID string, height exported.Height, proof []byte, path commitmenttypes.MerklePath, value []byte) error {
	clientState, found := k.GetClientState(clientID)
	if !found {
		return sdkerrors.Wrap(types.ErrClientNotFound, clientID)
	}

	if status := k.GetClientStatus(clientID); status != exported.Active {
		return sdkerrors.Wrapf(types.ErrClientNotActive, "client (%s) status is %s", clientID, status)
	}

	lightClientModule, err := k.lightClientModule(clientID)
	if err != nil {
		return err
	}

	return lightClientModule.VerifyMembership(k, clientID, clientState, height, proof, path, value)
}
