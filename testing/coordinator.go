package ibctesting

import (
	"github.com/tendermint/tendermint/libs/log"
)

// Coordinator drives two chains through the handshakes. Chains only advance when a
// message is delivered or when their clocks are synchronised.
type Coordinator struct {
	ChainA *TestChain
	ChainB *TestChain

	logger log.Logger
}

// NewCoordinator constructs both chains. It fails if either configuration is invalid.
func NewCoordinator(cfgA, cfgB ChainConfig, logger log.Logger) (*Coordinator, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	chainA, err := NewTestChain(cfgA, logger)
	if err != nil {
		return nil, err
	}
	chainB, err := NewTestChain(cfgB, logger)
	if err != nil {
		return nil, err
	}

	return &Coordinator{
		ChainA: chainA,
		ChainB: chainB,
		logger: logger.With("module", "coordinator"),
	}, nil
}

// NewPath returns a path between chain A and chain B using the default endpoint
// configurations.
func (coord *Coordinator) NewPath() *Path {
	return NewPath(coord.ChainA, coord.ChainB)
}

// SyncLatestTimestamp advances whichever of the two chains is behind until its latest
// block time is no earlier than the other's.
func (coord *Coordinator) SyncLatestTimestamp(a, b *TestChain) error {
	return SyncLatestTimestamp(a, b)
}

// SyncLatestTimestamp advances whichever of the two chains is behind until its latest
// block time is no earlier than the other's. A chain already ahead is never advanced.
func SyncLatestTimestamp(a, b *TestChain) error {
	if err := catchUp(a, b); err != nil {
		return err
	}
	return catchUp(b, a)
}

// catchUp commits blocks on lagging until its latest time reaches leading's.
func catchUp(lagging, leading *TestChain) error {
	target := leading.LatestTimestamp()
	for lagging.LatestTimestamp().Before(target) {
		if err := lagging.NextBlock(); err != nil {
			return err
		}
		lagging.logger.Debug("advanced block to sync timestamp", "height", lagging.LatestHeight(), "target", target)
	}
	return nil
}
