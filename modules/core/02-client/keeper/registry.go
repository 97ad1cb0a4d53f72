package keeper

import (
	"bytes"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	dbm "github.com/tendermint/tm-db"

	"github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

// GetClientConsensusState gets the stored consensus state from a client at a given height.
// It returns ErrConsensusStateNotFound if no state is stored at exactly that height.
func (k *Keeper) GetClientConsensusState(clientID string, height exported.Height) (*types.ConsensusState, error) {
	bz := k.store.Get(host.FullConsensusStateKey(clientID, height))
	if len(bz) == 0 {
		return nil, sdkerrors.Wrapf(types.ErrConsensusStateNotFound, "client (%s), height (%s)", clientID, height)
	}

	return types.UnmarshalConsensusState(bz)
}

// SetClientConsensusState sets a ConsensusState to a particular client at the given
// height and indexes it for ordered iteration.
func (k *Keeper) SetClientConsensusState(clientID string, height exported.Height, consensusState *types.ConsensusState) {
	key := host.FullConsensusStateKey(clientID, height)
	k.store.Set(key, types.MustMarshalConsensusState(consensusState))
	k.store.Set(host.ConsensusStateIterationKey(clientID, height), key)
}

// ConsensusStateHeights returns every height a consensus state is stored at for the
// client, in increasing order.
func (k *Keeper) ConsensusStateHeights(clientID string) []types.Height {
	prefix := host.ConsensusStateIterationPrefix(clientID)
	iterator := k.store.Iterator(prefix, sdk.PrefixEndBytes(prefix))
	defer iterator.Close()

	heights := []types.Height{}
	for ; iterator.Valid(); iterator.Next() {
		revisionNumber, revisionHeight, err := host.ParseConsensusStateIterationKey(clientID, iterator.Key())
		if err != nil {
			panic(err)
		}
		heights = append(heights, types.NewHeight(revisionNumber, revisionHeight))
	}

	return heights
}

// NextConsensusState returns the consensus state stored at the smallest height strictly
// greater than the given height.
func (k *Keeper) NextConsensusState(clientID string, height exported.Height) (*types.ConsensusState, bool) {
	prefix := host.ConsensusStateIterationPrefix(clientID)
	iterator := k.store.Iterator(host.ConsensusStateIterationKey(clientID, height), sdk.PrefixEndBytes(prefix))

	// if iterator is at current height, ignore the consensus state at current height and get next height
	// if iterator value is not at current height, it is already at next height.
	if iterator.Valid() && bytes.Equal(iterator.Value(), host.FullConsensusStateKey(clientID, height)) {
		iterator.Next()
	}

	return k.consensusStateAt(iterator)
}

// PrevConsensusState returns the consensus state stored at the largest height strictly
// less than the given height.
func (k *Keeper) PrevConsensusState(clientID string, height exported.Height) (*types.ConsensusState, bool) {
	prefix := host.ConsensusStateIterationPrefix(clientID)
	iterator := k.store.ReverseIterator(prefix, host.ConsensusStateIterationKey(clientID, height))

	return k.consensusStateAt(iterator)
}

// consensusStateAt resolves the consensus state the iterator points to. The iterator is
// closed before the store is read.
func (k *Keeper) consensusStateAt(iterator dbm.Iterator) (*types.ConsensusState, bool) {
	if !iterator.Valid() {
		iterator.Close()
		return nil, false
	}

	key := append([]byte(nil), iterator.Value()...)
	iterator.Close()

	bz := k.store.Get(key)
	if len(bz) == 0 {
		return nil, false
	}

	consensusState, err := types.UnmarshalConsensusState(bz)
	if err != nil {
		return nil, false
	}
	return consensusState, true
}
