package ibctesting

import (
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/crypto/ed25519"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/cosmos/ibc-handshake/internal/store"
	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-handshake/modules/core/04-channel/types"
	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
	"github.com/cosmos/ibc-handshake/modules/core/keeper"
	"github.com/cosmos/ibc-handshake/modules/core/types"
	mock "github.com/cosmos/ibc-handshake/modules/light-clients/00-mock"
)

var _ clienttypes.HostChain = (*TestChain)(nil)

// TestChain is an in-memory host chain running the IBC keepers. Every delivered message
// is executed in the pending block and committed by NextBlock, after which its state can
// be proven against the new block's app hash. The chain keeps at most MaxHistorySize
// blocks of history.
type TestChain struct {
	Config ChainConfig

	App           *keeper.Keeper
	SenderAccount string

	store    *store.CommitStore
	eventLog *types.MemEventLog
	privKey  ed25519.PrivKey
	logger   log.Logger

	history []Block
	// revision height -> store version committed by that block
	versions map[uint64]int64
}

// NewTestChain validates the configuration and constructs a chain whose history is
// seeded with min(MaxHistorySize, LatestHeight) blocks ending at LatestHeight, spaced
// BlockTime apart.
func NewTestChain(cfg ChainConfig, logger log.Logger) (*TestChain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	commitStore, err := store.NewCommitStore([]byte(exported.StoreKey))
	if err != nil {
		return nil, sdkerrors.Wrap(ibcerrors.ErrInvalidConfig, err.Error())
	}

	privKey := ed25519.GenPrivKeyFromSecret([]byte(cfg.ChainID))
	signer := cfg.Signer
	if signer == "" {
		signer = sdk.AccAddress(privKey.PubKey().Address()).String()
	}
	if _, err := sdk.AccAddressFromBech32(signer); err != nil {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidConfig, "invalid signer %s: %s", signer, err)
	}

	chain := &TestChain{
		Config:        cfg,
		SenderAccount: signer,
		store:         commitStore,
		eventLog:      types.NewMemEventLog(),
		privKey:       privKey,
		logger:        logger.With("chain-id", cfg.ChainID),
		versions:      make(map[uint64]int64),
	}

	router := clienttypes.NewRouter()
	router.AddRoute(exported.Mock, mock.NewLightClientModule())

	chain.App = keeper.NewKeeper(commitStore, chain, router, chain.eventLog, chain.logger)

	// genesis
	chain.App.ClientKeeper.SetNextClientSequence(0)
	chain.App.ConnectionKeeper.SetNextConnectionSequence(0)
	chain.App.ChannelKeeper.SetNextChannelSequence(0)

	appHash, version, err := commitStore.Commit()
	if err != nil {
		return nil, err
	}

	n := cfg.MaxHistorySize
	if latest := cfg.LatestHeight.RevisionHeight; latest < n {
		n = latest
	}
	for i := uint64(0); i < n; i++ {
		back := n - 1 - i
		height := clienttypes.NewHeight(cfg.LatestHeight.RevisionNumber, cfg.LatestHeight.RevisionHeight-back)
		timestamp := cfg.LatestTimestamp.Add(-time.Duration(back) * cfg.BlockTime).UTC()

		block, err := newBlock(cfg.ChainID, height, timestamp, appHash, privKey)
		if err != nil {
			return nil, err
		}
		chain.history = append(chain.history, block)
		chain.versions[height.RevisionHeight] = version
	}

	return chain, nil
}

// ChainID implements clienttypes.HostChain.
func (chain *TestChain) ChainID() string {
	return chain.Config.ChainID
}

// LatestBlock returns the most recently committed block.
func (chain *TestChain) LatestBlock() Block {
	return chain.history[len(chain.history)-1]
}

// LatestHeight returns the height of the most recently committed block.
func (chain *TestChain) LatestHeight() clienttypes.Height {
	return chain.LatestBlock().Height()
}

// LatestTimestamp returns the time of the most recently committed block.
func (chain *TestChain) LatestTimestamp() time.Time {
	return chain.LatestBlock().Time()
}

// HostHeight implements clienttypes.HostChain. Messages execute in the block after the
// latest committed one.
func (chain *TestChain) HostHeight() clienttypes.Height {
	return chain.LatestHeight().Increment()
}

// HostTimestamp implements clienttypes.HostChain.
func (chain *TestChain) HostTimestamp() time.Time {
	return chain.LatestTimestamp().Add(chain.Config.BlockTime)
}

// History returns the blocks currently kept, oldest first.
func (chain *TestChain) History() []Block {
	history := make([]Block, len(chain.history))
	copy(history, chain.history)
	return history
}

// HostBlock returns the block at the given height if it is still in the history.
func (chain *TestChain) HostBlock(height exported.Height) (Block, error) {
	for _, block := range chain.history {
		if block.Height().EQ(height) {
			return block, nil
		}
	}
	return Block{}, sdkerrors.Wrapf(ibcerrors.ErrNotFound, "block at height %s on chain %s", height, chain.ChainID())
}

// SelfConsensusState implements clienttypes.HostChain.
func (chain *TestChain) SelfConsensusState(height exported.Height) (*clienttypes.ConsensusState, error) {
	block, err := chain.HostBlock(height)
	if err != nil {
		return nil, sdkerrors.Wrap(clienttypes.ErrSelfConsensusStateNotFound, err.Error())
	}
	return block.ConsensusState(), nil
}

// NextBlock commits the working state and appends the resulting block, pruning the
// oldest block once the history exceeds MaxHistorySize.
func (chain *TestChain) NextBlock() error {
	appHash, version, err := chain.store.Commit()
	if err != nil {
		return err
	}

	block, err := newBlock(chain.ChainID(), chain.HostHeight(), chain.HostTimestamp(), appHash, chain.privKey)
	if err != nil {
		return err
	}

	chain.history = append(chain.history, block)
	chain.versions[block.Height().RevisionHeight] = version

	for uint64(len(chain.history)) > chain.Config.MaxHistorySize {
		delete(chain.versions, chain.history[0].Height().RevisionHeight)
		chain.history = chain.history[1:]
	}

	chain.logger.Debug("committed block", "height", block.Height(), "time", block.Time())
	return nil
}

// AdvanceBlocks commits n empty blocks.
func (chain *TestChain) AdvanceBlocks(n int) error {
	for i := 0; i < n; i++ {
		if err := chain.NextBlock(); err != nil {
			return err
		}
	}
	return nil
}

// Deliver executes msg in the pending block and commits it. The returned event is the
// outcome of the message.
func (chain *TestChain) Deliver(msg types.Msg) (types.Event, error) {
	event, err := chain.App.Deliver(msg)
	if err != nil {
		return types.Event{}, err
	}

	if err := chain.NextBlock(); err != nil {
		return types.Event{}, err
	}
	return event, nil
}

// QueryProofAtHeight returns the proof of the value committed at key by the block at
// height.
func (chain *TestChain) QueryProofAtHeight(key []byte, height clienttypes.Height) ([]byte, error) {
	version, err := chain.versionAt(height)
	if err != nil {
		return nil, err
	}
	return chain.store.QueryProof(version, key)
}

// QueryCommitted returns the value committed at key by the block at height.
func (chain *TestChain) QueryCommitted(key []byte, height clienttypes.Height) ([]byte, error) {
	version, err := chain.versionAt(height)
	if err != nil {
		return nil, err
	}
	return chain.store.GetCommitted(version, key)
}

func (chain *TestChain) versionAt(height clienttypes.Height) (int64, error) {
	version, ok := chain.versions[height.RevisionHeight]
	if !ok || height.RevisionNumber != chain.LatestHeight().RevisionNumber {
		return 0, sdkerrors.Wrapf(ibcerrors.ErrNotFound, "no committed state at height %s on chain %s", height, chain.ChainID())
	}
	return version, nil
}

// Events returns every event the chain has emitted.
func (chain *TestChain) Events() []types.Event {
	return chain.eventLog.Events()
}

// GetPrefix returns the commitment prefix of the chain's IBC store.
func (chain *TestChain) GetPrefix() commitmenttypes.MerklePrefix {
	return chain.App.ConnectionKeeper.GetCommitmentPrefix()
}

// GetClientState returns the client state of the given client.
func (chain *TestChain) GetClientState(clientID string) (*clienttypes.ClientState, error) {
	clientState, found := chain.App.ClientKeeper.GetClientState(clientID)
	if !found {
		return nil, sdkerrors.Wrapf(clienttypes.ErrClientNotFound, "client %s on chain %s", clientID, chain.ChainID())
	}
	return clientState, nil
}

// GetConnection returns the connection end with the given identifier.
func (chain *TestChain) GetConnection(connectionID string) (connectiontypes.ConnectionEnd, error) {
	connection, found := chain.App.ConnectionKeeper.GetConnection(connectionID)
	if !found {
		return connectiontypes.ConnectionEnd{}, sdkerrors.Wrapf(connectiontypes.ErrConnectionNotFound, "connection %s on chain %s", connectionID, chain.ChainID())
	}
	return connection, nil
}

// GetChannel returns the channel end bound to the given port and channel identifiers.
func (chain *TestChain) GetChannel(portID, channelID string) (channeltypes.Channel, error) {
	channel, found := chain.App.ChannelKeeper.GetChannel(portID, channelID)
	if !found {
		return channeltypes.Channel{}, sdkerrors.Wrapf(channeltypes.ErrChannelNotFound, "channel %s/%s on chain %s", portID, channelID, chain.ChainID())
	}
	return channel, nil
}

func (chain *TestChain) String() string {
	return fmt.Sprintf("%s@%s", chain.ChainID(), chain.LatestHeight())
}
