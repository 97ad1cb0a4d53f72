package keeper

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

var _ types.ClientValidationContext = (*Keeper)(nil)

// Keeper represents a type that grants read and write permissions to any client
// state information
type Keeper struct {
	store  exported.KVStore
	host   types.HostChain
	router *types.Router
	logger log.Logger
}

// NewKeeper creates a new NewKeeper instance
func NewKeeper(store exported.KVStore, hostChain types.HostChain, router *types.Router, logger log.Logger) *Keeper {
	return &Keeper{
		store:  store,
		host:   hostChain,
		router: router,
		logger: logger,
	}
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName)
}

// GetRouter returns the light client module router.
func (k *Keeper) GetRouter() *types.Router {
	return k.router
}

// HostHeight returns the height of the block being executed on the host chain.
func (k *Keeper) HostHeight() types.Height {
	return k.host.HostHeight()
}

// HostTimestamp returns the time of the block being executed on the host chain.
func (k *Keeper) HostTimestamp() time.Time {
	return k.host.HostTimestamp()
}

// GenerateClientIdentifier returns the next client identifier.
func (k *Keeper) GenerateClientIdentifier(clientType string) string {
	nextClientSeq := k.GetNextClientSequence()
	clientID := types.FormatClientIdentifier(clientType, nextClientSeq)

	nextClientSeq++
	k.SetNextClientSequence(nextClientSeq)
	return clientID
}

// GetNextClientSequence gets the next client sequence from the store.
func (k *Keeper) GetNextClientSequence() uint64 {
	bz := k.store.Get(host.NextClientSequenceKey())
	if len(bz) == 0 {
		panic("next client sequence is nil")
	}

	return sdk.BigEndianToUint64(bz)
}

// SetNextClientSequence sets the next client sequence to the store.
func (k *Keeper) SetNextClientSequence(sequence uint64) {
	bz := sdk.Uint64ToBigEndian(sequence)
	k.store.Set(host.NextClientSequenceKey(), bz)
}

// GetClientState gets a particular client from the store
func (k *Keeper) GetClientState(clientID string) (*types.ClientState, bool) {
	bz := k.store.Get(host.FullClientStateKey(clientID))
	if len(bz) == 0 {
		return nil, false
	}

	return types.MustUnmarshalClientState(bz), true
}

// SetClientState sets a particular Client to the store
func (k *Keeper) SetClientState(clientID string, clientState *types.ClientState) {
	k.store.Set(host.FullClientStateKey(clientID), types.MustMarshalClientState(clientState))
}

// GetLatestClientConsensusState gets the latest ConsensusState stored for a given client
func (k *Keeper) GetLatestClientConsensusState(clientID string) (*types.ConsensusState, bool) {
	clientState, ok := k.GetClientState(clientID)
	if !ok {
		return nil, false
	}

	consensusState, err := k.GetClientConsensusState(clientID, clientState.LatestHeight)
	if err != nil {
		return nil, false
	}
	return consensusState, true
}

// GetClientStatus returns the status for a client state given a client identifier. If
// the client or its latest consensus state is missing, Unknown is returned.
func (k *Keeper) GetClientStatus(clientID string) exported.Status {
	clientState, ok := k.GetClientState(clientID)
	if !ok {
		return exported.Unknown
	}

	consensusState, ok := k.GetLatestClientConsensusState(clientID)
	if !ok {
		return exported.Unknown
	}

	return clientState.Status(consensusState.Timestamp, k.HostTimestamp())
}

// GetSelfConsensusState introspects the (self) past historical info at a given height
// and returns the expected consensus state at that height.
func (k *Keeper) GetSelfConsensusState(height exported.Height) (*types.ConsensusState, error) {
	// check that height revision matches chainID revision
	revision := types.ParseChainID(k.host.ChainID())
	if revision != height.GetRevisionNumber() {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidHeight, "chainID revision number does not match height revision number: expected %d, got %d", revision, height.GetRevisionNumber())
	}

	consensusState, err := k.host.SelfConsensusState(height)
	if err != nil {
		return nil, sdkerrors.Wrapf(err, "height %s", height)
	}
	return consensusState, nil
}

// ValidateSelfClient validates the client parameters for a client of the running chain
// This function is only used to validate the client state the counterparty stores for this chain
// Client must be in same revision as the executing chain
func (k *Keeper) ValidateSelfClient(clientState *types.ClientState) error {
	if clientState == nil {
		return sdkerrors.Wrap(types.ErrInvalidClient, "client state cannot be nil")
	}

	if clientState.IsFrozen() {
		return types.ErrClientFrozen
	}

	chainID := k.host.ChainID()
	if chainID != clientState.ChainID {
		return sdkerrors.Wrapf(types.ErrInvalidClient, "invalid chain-id. expected: %s, got: %s",
			chainID, clientState.ChainID)
	}

	revision := types.ParseChainID(chainID)

	// client must be in the same revision as executing chain
	if clientState.LatestHeight.RevisionNumber != revision {
		return sdkerrors.Wrapf(types.ErrInvalidClient, "client is not in the same revision as the chain. expected revision: %d, got: %d",
			revision, clientState.LatestHeight.RevisionNumber)
	}

	selfHeight := k.HostHeight()
	if clientState.LatestHeight.GTE(selfHeight) {
		return sdkerrors.Wrapf(types.ErrInvalidClient, "client has LatestHeight %s greater than or equal to chain height %s",
			clientState.LatestHeight, selfHeight)
	}

	if err := clientState.Validate(); err != nil {
		return sdkerrors.Wrap(types.ErrInvalidClient, err.Error())
	}

	return nil
}

func (k *Keeper) lightClientModule(clientID string) (types.LightClientModule, error) {
	lightClientModule, found := k.router.GetRoute(clientID)
	if !found {
		return nil, sdkerrors.Wrap(types.ErrRouteNotFound, clientID)
	}
	return lightClientModule, nil
}
