package types

import (
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	tmjson "github.com/tendermint/tendermint/libs/json"
)

// MustMarshalClientState returns the store and commitment encoding of a client state.
// It panics on error.
func MustMarshalClientState(clientState *ClientState) []byte {
	bz, err := tmjson.Marshal(clientState)
	if err != nil {
		panic(fmt.Errorf("failed to encode client state: %w", err))
	}

	return bz
}

// UnmarshalClientState decodes a client state from its store encoding.
func UnmarshalClientState(bz []byte) (*ClientState, error) {
	var clientState ClientState
	if err := tmjson.Unmarshal(bz, &clientState); err != nil {
		return nil, sdkerrors.Wrap(ErrInvalidClient, err.Error())
	}

	return &clientState, nil
}

// MustUnmarshalClientState decodes a client state from its store encoding.
// It panics on error.
func MustUnmarshalClientState(bz []byte) *ClientState {
	clientState, err := UnmarshalClientState(bz)
	if err != nil {
		panic(fmt.Errorf("failed to decode client state: %w", err))
	}

	return clientState
}

// MustMarshalConsensusState returns the store and commitment encoding of a consensus
// state. It panics on error.
func MustMarshalConsensusState(consensusState *ConsensusState) []byte {
	bz, err := tmjson.Marshal(consensusState)
	if err != nil {
		panic(fmt.Errorf("failed to encode consensus state: %w", err))
	}

	return bz
}

// UnmarshalConsensusState decodes a consensus state from its store encoding.
func UnmarshalConsensusState(bz []byte) (*ConsensusState, error) {
	var consensusState ConsensusState
	if err := tmjson.Unmarshal(bz, &consensusState); err != nil {
		return nil, sdkerrors.Wrap(ErrInvalidConsensus, err.Error())
	}

	return &consensusState, nil
}

// MustUnmarshalConsensusState decodes a consensus state from its store encoding.
// It panics on error.
func MustUnmarshalConsensusState(bz []byte) *ConsensusState {
	consensusState, err := UnmarshalConsensusState(bz)
	if err != nil {
		panic(fmt.Errorf("failed to decode consensus state: %w", err))
	}

	return consensusState
}
