package keeper_test

import (
	"time"

	"github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
	coretypes "github.com/cosmos/ibc-handshake/modules/core/types"
	mock "github.com/cosmos/ibc-handshake/modules/light-clients/00-mock"
)

func (suite *KeeperTestSuite) TestCreateClient() {
	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"invalid client state", func() {
			suite.clientState.MaxClockDrift = 0
		}, types.ErrInvalidClient},
		{"invalid consensus state", func() {
			suite.consensusState.NextValidatorsHash = nil
		}, types.ErrInvalidConsensus},
		{"expired consensus state", func() {
			suite.consensusState.Timestamp = suite.now.Add(-trustingPeriod)
		}, types.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			tc.malleate()

			clientID, err := suite.keeper.CreateClient(suite.em, suite.clientState, suite.consensusState)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(clientID)
				// nothing was written
				suite.Require().Equal(uint64(0), suite.keeper.GetNextClientSequence())
				suite.Require().Empty(suite.em.Events())
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(testClientID, clientID)

			clientState, found := suite.keeper.GetClientState(clientID)
			suite.Require().True(found)
			suite.Require().Equal(suite.clientState, clientState)

			consensusState, err := suite.keeper.GetClientConsensusState(clientID, testClientHeight)
			suite.Require().NoError(err)
			suite.Require().True(suite.consensusState.Equal(consensusState))

			events := suite.em.Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.EventTypeCreateClient, events[0].Type)
			suite.Require().Equal(clientID, events[0].ClientID)
			suite.Require().Equal(exported.Mock, events[0].ClientType)
			suite.Require().Equal([]types.Height{testClientHeight}, events[0].ConsensusHeights)
		})
	}
}

func (suite *KeeperTestSuite) TestUpdateClient() {
	var (
		clientID string
		header   *types.Header
	)

	newHeight := types.NewHeight(0, 10)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"client not found", func() {
			clientID = "00-mock-9"
		}, types.ErrClientNotFound},
		{"client frozen", func() {
			clientState, _ := suite.keeper.GetClientState(clientID)
			clientState.FrozenHeight = types.NewHeight(0, 1)
			suite.keeper.SetClientState(clientID, clientState)
		}, types.ErrClientNotActive},
		{"header height not above latest height", func() {
			header = suite.signedHeader(testClientHeight, testClientHeight, suite.now.Add(-time.Second))
		}, ibcerrors.ErrInvalidHeight},
		{"wrong chain id", func() {
			header.BlockHeader.ChainID = "othertestchain-0"
		}, mock.ErrInvalidChainID},
		{"trusted consensus state not found", func() {
			header = suite.signedHeader(newHeight, types.NewHeight(0, 4), suite.now.Add(-time.Second))
		}, types.ErrConsensusStateNotFound},
		{"invalid signature", func() {
			header.BlockHeader.AppHash = []byte("tampered")
		}, mock.ErrInvalidSignature},
		{"untrusted validator", func() {
			suite.keeper.SetClientConsensusState(clientID, testClientHeight, types.NewConsensusState(
				suite.consensusState.Timestamp, suite.consensusState.Root, []byte("0123456789abcdef0123456789abcdef"),
			))
		}, mock.ErrInvalidValidatorSet},
		{"header time not after trusted time", func() {
			header = suite.signedHeader(newHeight, testClientHeight, suite.consensusState.Timestamp)
		}, mock.ErrInvalidHeader},
		{"header time beyond max clock drift", func() {
			header = suite.signedHeader(newHeight, testClientHeight, suite.now.Add(maxClockDrift))
		}, mock.ErrInvalidHeader},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()
			clientID = suite.createClient()
			suite.em = coretypes.NewEventManager()
			header = suite.signedHeader(newHeight, testClientHeight, suite.now.Add(-time.Second))

			tc.malleate()

			consensusHeights, err := suite.keeper.UpdateClient(suite.em, clientID, header)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(suite.em.Events())
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal([]types.Height{newHeight}, consensusHeights)

			clientState, _ := suite.keeper.GetClientState(clientID)
			suite.Require().Equal(newHeight, clientState.LatestHeight)

			consensusState, err := suite.keeper.GetClientConsensusState(clientID, newHeight)
			suite.Require().NoError(err)
			suite.Require().True(header.ConsensusState().Equal(consensusState))

			events := suite.em.Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.EventTypeUpdateClient, events[0].Type)
			suite.Require().Equal([]types.Height{newHeight}, events[0].ConsensusHeights)
		})
	}
}

// TestUpdateClientMisbehaviour submits a header whose time is not after the consensus
// state stored just below it, which freezes the client.
func (suite *KeeperTestSuite) TestUpdateClientMisbehaviour() {
	clientID := suite.createClient()

	// a later consensus state at height 8
	later := suite.newConsensusState(suite.now.Add(-10*time.Second), []byte("later"))
	suite.keeper.SetClientConsensusState(clientID, types.NewHeight(0, 8), later)
	clientState, _ := suite.keeper.GetClientState(clientID)
	clientState.LatestHeight = types.NewHeight(0, 8)
	suite.keeper.SetClientState(clientID, clientState)

	// trusted against height 5 but older than the state at height 8
	header := suite.signedHeader(types.NewHeight(0, 10), testClientHeight, suite.now.Add(-20*time.Second))

	suite.em = coretypes.NewEventManager()
	consensusHeights, err := suite.keeper.UpdateClient(suite.em, clientID, header)
	suite.Require().NoError(err)
	suite.Require().Empty(consensusHeights)

	suite.Require().Equal(exported.Frozen, suite.keeper.GetClientStatus(clientID))

	events := suite.em.Events()
	suite.Require().Len(events, 1)
	suite.Require().Equal(types.EventTypeSubmitMisbehaviour, events[0].Type)

	// no consensus state was stored for the header
	_, err = suite.keeper.GetClientConsensusState(clientID, types.NewHeight(0, 10))
	suite.Require().ErrorIs(err, types.ErrConsensusStateNotFound)
}

func (suite *KeeperTestSuite) TestVerifyMembership() {
	var (
		clientID string
		proof    []byte
		height   types.Height
		path     commitmenttypes.MerklePath
		value    []byte
	)

	// chain A proves a value from its own committed state
	key := host.NextClientSequenceKey()

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"client not found", func() {
			clientID = "00-mock-9"
		}, types.ErrClientNotFound},
		{"proof height above client height", func() {
			height = height.Increment()
		}, ibcerrors.ErrInvalidHeight},
		{"consensus state not found at proof height", func() {
			height = types.NewHeight(0, 1)
		}, types.ErrConsensusStateNotFound},
		{"wrong value", func() {
			value = []byte("wrong")
		}, commitmenttypes.ErrInvalidProof},
		{"wrong path", func() {
			path = commitmenttypes.NewMerklePath(exported.StoreKey, "clients/00-mock-0/clientState")
		}, commitmenttypes.ErrInvalidProof},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			block := suite.chain.LatestBlock()
			suite.clientState = types.NewClientState(testChainID, block.Height(), trustingPeriod, maxClockDrift)
			suite.consensusState = block.ConsensusState()
			clientID = suite.createClient()

			var err error
			height = block.Height()
			proof, err = suite.chain.QueryProofAtHeight(key, height)
			suite.Require().NoError(err)
			value, err = suite.chain.QueryCommitted(key, height)
			suite.Require().NoError(err)
			path, err = commitmenttypes.ApplyPrefix(suite.chain.GetPrefix(), commitmenttypes.NewMerklePath(string(key)))
			suite.Require().NoError(err)

			tc.malleate()

			err = suite.keeper.VerifyMembership(clientID, height, proof, path, value)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}
			suite.Require().NoError(err)
		})
	}
}
