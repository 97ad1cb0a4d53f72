package host

import (
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/google/orderedcode"

	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

// KeyClientStorePrefix defines the KVStore key prefix for IBC clients
var KeyClientStorePrefix = []byte("clients")

const (
	KeyClientState                   = "clientState"
	KeyConsensusStatePrefix          = "consensusStates"
	KeyIterateConsensusStatePrefix   = "iterateConsensusStates"
	KeyNextClientSequence            = "nextClientSequence"
	consensusStateIterationSeparator = "/"
)

// FullClientPath returns the full path of a specific client path in the format:
// "clients/{clientID}/{path}" as a string.
func FullClientPath(clientID string, path string) string {
	return fmt.Sprintf("%s/%s/%s", KeyClientStorePrefix, clientID, path)
}

// FullClientKey returns the full path of specific client path in the format:
// "clients/{clientID}/{path}" as a byte array.
func FullClientKey(clientID string, path []byte) []byte {
	return []byte(FullClientPath(clientID, string(path)))
}

// ICS02
// The following paths are the keys to the store as defined in https://github.com/cosmos/ibc/tree/master/spec/core/ics-002-client-semantics#path-space

// FullClientStatePath takes a client identifier and returns a Path under which to store a
// particular client state
func FullClientStatePath(clientID string) string {
	return FullClientPath(clientID, KeyClientState)
}

// FullClientStateKey takes a client identifier and returns a Key under which to store a
// particular client state.
func FullClientStateKey(clientID string) []byte {
	return FullClientKey(clientID, []byte(KeyClientState))
}

// FullConsensusStatePath takes a client identifier and returns a Path under which to
// store the consensus state of a client.
func FullConsensusStatePath(clientID string, height exported.Height) string {
	return FullClientPath(clientID, ConsensusStatePath(height))
}

// FullConsensusStateKey returns the store key for the consensus state of a particular
// client.
func FullConsensusStateKey(clientID string, height exported.Height) []byte {
	return []byte(FullConsensusStatePath(clientID, height))
}

// ConsensusStatePath returns the suffix store key for the consensus state at a
// particular height stored in a client prefixed store.
func ConsensusStatePath(height exported.Height) string {
	return fmt.Sprintf("%s/%s", KeyConsensusStatePrefix, height)
}

// ConsensusStateIterationPrefix returns the prefix shared by every iteration key of a
// client. Keys under this prefix sort by height.
func ConsensusStateIterationPrefix(clientID string) []byte {
	return FullClientKey(clientID, []byte(KeyIterateConsensusStatePrefix+consensusStateIterationSeparator))
}

// ConsensusStateIterationKey returns the key under which the consensus state key for
// height is indexed. The height is encoded with orderedcode so that lexicographic key
// order matches height order.
func ConsensusStateIterationKey(clientID string, height exported.Height) []byte {
	key, err := orderedcode.Append(
		ConsensusStateIterationPrefix(clientID),
		height.GetRevisionNumber(), height.GetRevisionHeight(),
	)
	if err != nil {
		panic(err)
	}
	return key
}

// ParseConsensusStateIterationKey decodes the revision number and height from an
// iteration key produced by ConsensusStateIterationKey.
func ParseConsensusStateIterationKey(clientID string, key []byte) (revisionNumber, revisionHeight uint64, err error) {
	prefix := ConsensusStateIterationPrefix(clientID)
	if len(key) < len(prefix) || string(key[:len(prefix)]) != string(prefix) {
		return 0, 0, sdkerrors.Wrapf(ErrInvalidPath, "key %q does not belong to client %s", key, clientID)
	}

	remaining, err := orderedcode.Parse(string(key[len(prefix):]), &revisionNumber, &revisionHeight)
	if err != nil {
		return 0, 0, sdkerrors.Wrap(ErrInvalidPath, err.Error())
	}
	if len(remaining) != 0 {
		return 0, 0, sdkerrors.Wrapf(ErrInvalidPath, "expected complete key but got remainder: %s", remaining)
	}
	return revisionNumber, revisionHeight, nil
}

// NextClientSequenceKey returns the store key of the next client sequence.
func NextClientSequenceKey() []byte {
	return []byte(KeyNextClientSequence)
}
