package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	"github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

// Keeper defines the IBC connection keeper
type Keeper struct {
	store        exported.KVStore
	clientKeeper types.ClientKeeper
	logger       log.Logger
}

// NewKeeper creates a new IBC connection Keeper instance
func NewKeeper(store exported.KVStore, ck types.ClientKeeper, logger log.Logger) *Keeper {
	return &Keeper{
		store:        store,
		clientKeeper: ck,
		logger:       logger,
	}
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName)
}

// GetCommitmentPrefix returns the IBC connection store prefix as a commitment
// Prefix
func (*Keeper) GetCommitmentPrefix() commitmenttypes.MerklePrefix {
	return commitmenttypes.NewMerklePrefix([]byte(exported.StoreKey))
}

// GenerateConnectionIdentifier returns the next connection identifier.
func (k *Keeper) GenerateConnectionIdentifier() string {
	nextConnSeq := k.GetNextConnectionSequence()
	connectionID := types.FormatConnectionIdentifier(nextConnSeq)

	nextConnSeq++
	k.SetNextConnectionSequence(nextConnSeq)
	return connectionID
}

// GetConnection returns a connection with a particular identifier
func (k *Keeper) GetConnection(connectionID string) (types.ConnectionEnd, bool) {
	bz := k.store.Get(host.ConnectionKey(connectionID))
	if len(bz) == 0 {
		return types.ConnectionEnd{}, false
	}

	return types.MustUnmarshalConnection(bz), true
}

// HasConnection returns a true if the connection with the given identifier
// exists in the store.
func (k *Keeper) HasConnection(connectionID string) bool {
	return k.store.Has(host.ConnectionKey(connectionID))
}

// SetConnection sets a connection to the store
func (k *Keeper) SetConnection(connectionID string, connection types.ConnectionEnd) {
	k.store.Set(host.ConnectionKey(connectionID), types.MustMarshalConnection(connection))
}

// GetClientConnectionPaths returns all the connection paths stored under a
// particular client
func (k *Keeper) GetClientConnectionPaths(clientID string) ([]string, bool) {
	bz := k.store.Get(host.ClientConnectionsKey(clientID))
	if len(bz) == 0 {
		return nil, false
	}

	return types.MustUnmarshalClientPaths(bz), true
}

// SetClientConnectionPaths sets the connections paths for client
func (k *Keeper) SetClientConnectionPaths(clientID string, paths []string) {
	k.store.Set(host.ClientConnectionsKey(clientID), types.MustMarshalClientPaths(paths))
}

// GetNextConnectionSequence gets the next connection sequence from the store.
func (k *Keeper) GetNextConnectionSequence() uint64 {
	bz := k.store.Get(host.NextConnectionSequenceKey())
	if len(bz) == 0 {
		panic("next connection sequence is nil")
	}

	return sdk.BigEndianToUint64(bz)
}

// SetNextConnectionSequence sets the next connection sequence to the store.
func (k *Keeper) SetNextConnectionSequence(sequence uint64) {
	bz := sdk.Uint64ToBigEndian(sequence)
	k.store.Set(host.NextConnectionSequenceKey(), bz)
}

// addConnectionToClient is used to add a connection identifier to the set of
// connections associated with a client.
func (k *Keeper) addConnectionToClient(clientID, connectionID string) error {
	_, found := k.clientKeeper.GetClientState(clientID)
	if !found {
		return sdkerrors.Wrap(clienttypes.ErrClientNotFound, clientID)
	}

	conns, found := k.GetClientConnectionPaths(clientID)
	if !found {
		conns = []string{}
	}

	conns = append(conns, connectionID)
	k.SetClientConnectionPaths(clientID, conns)
	return nil
}
