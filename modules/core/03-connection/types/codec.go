package types

import (
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	tmjson "github.com/tendermint/tendermint/libs/json"
)

// MustMarshalConnection returns the store and commitment encoding of a connection end.
// It panics on error.
func MustMarshalConnection(connection ConnectionEnd) []byte {
	bz, err := tmjson.Marshal(connection)
	if err != nil {
		panic(fmt.Errorf("failed to encode connection end: %w", err))
	}

	return bz
}

// UnmarshalConnection decodes a connection end from its store encoding.
func UnmarshalConnection(bz []byte) (ConnectionEnd, error) {
	var connection ConnectionEnd
	if err := tmjson.Unmarshal(bz, &connection); err != nil {
		return ConnectionEnd{}, sdkerrors.Wrap(ErrInvalidConnection, err.Error())
	}

	return connection, nil
}

// MustUnmarshalConnection decodes a connection end from its store encoding. It panics on error.
func MustUnmarshalConnection(bz []byte) ConnectionEnd {
	connection, err := UnmarshalConnection(bz)
	if err != nil {
		panic(err)
	}

	return connection
}

// MustMarshalClientPaths encodes the connection identifiers associated with a client.
func MustMarshalClientPaths(paths []string) []byte {
	bz, err := tmjson.Marshal(paths)
	if err != nil {
		panic(fmt.Errorf("failed to encode client connection paths: %w", err))
	}

	return bz
}

// MustUnmarshalClientPaths decodes the connection identifiers associated with a client.
func MustUnmarshalClientPaths(bz []byte) []string {
	var paths []string
	if err := tmjson.Unmarshal(bz, &paths); err != nil {
		panic(fmt.Errorf("failed to decode client connection paths: %w", err))
	}

	return paths
}
