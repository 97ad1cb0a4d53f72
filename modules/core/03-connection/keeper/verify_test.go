package keeper_test

import (
	"time"

	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	"github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-handshake/modules/core/04-channel/types"
	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
)

// verifyCase malleates the proof height, the proof or the expected value before a
// verification runs against chain B's state.
type verifyCase struct {
	name     string
	malleate func()
	expErr   error
}

// TestVerifyClientState verifies a client state of chainA
// stored on chainB
func (suite *KeeperTestSuite) TestVerifyClientState() {
	var (
		connection  types.ConnectionEnd
		clientState *clienttypes.ClientState
		proof       []byte
		heightDiff  uint64
	)

	testCases := []verifyCase{
		{"success", func() {}, nil},
		{"client state does not match the proof", func() {
			clientState.TrustingPeriod += time.Hour
		}, commitmenttypes.ErrInvalidProof},
		{"proof height not yet trusted", func() {
			heightDiff = 5
		}, ibcerrors.ErrInvalidHeight},
		{"client is frozen", func() {
			cs, _ := suite.chainA.App.ClientKeeper.GetClientState(connection.ClientID)
			cs.FrozenHeight = clienttypes.NewHeight(0, 1)
			suite.chainA.App.ClientKeeper.SetClientState(connection.ClientID, cs)
		}, clienttypes.ErrClientNotActive},
		{"proof is not a merkle proof", func() {
			proof = []byte("invalid proof")
		}, commitmenttypes.ErrInvalidProof},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.openConnection()
			heightDiff = 0

			var err error
			connection, err = suite.path.EndpointA.GetConnection()
			suite.Require().NoError(err)
			clientState, err = suite.path.EndpointB.GetClientState()
			suite.Require().NoError(err)

			proofHeight := suite.chainB.LatestHeight()
			proof, err = suite.chainB.QueryProofAtHeight(host.FullClientStateKey(suite.path.EndpointB.ClientID), proofHeight)
			suite.Require().NoError(err)

			tc.malleate()

			height := clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff)
			err = suite.chainA.App.ConnectionKeeper.VerifyClientState(connection, height, proof, clientState)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}
			suite.Require().NoError(err)
		})
	}
}

// TestVerifyClientConsensusState verifies that the consensus state of
// chainA stored on chainB matches the one chainA recorded for itself.
func (suite *KeeperTestSuite) TestVerifyClientConsensusState() {
	var (
		connection      types.ConnectionEnd
		consensusState  *clienttypes.ConsensusState
		consensusHeight clienttypes.Height
		proof           []byte
		heightDiff      uint64
	)

	testCases := []verifyCase{
		{"success", func() {}, nil},
		{"consensus state does not match the proof", func() {
			consensusState.Timestamp = consensusState.Timestamp.Add(time.Second)
		}, commitmenttypes.ErrInvalidProof},
		{"proof of a different consensus height", func() {
			consensusHeight = consensusHeight.Increment()
		}, commitmenttypes.ErrInvalidProof},
		{"proof height not yet trusted", func() {
			heightDiff = 5
		}, ibcerrors.ErrInvalidHeight},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.openConnection()
			heightDiff = 0

			var err error
			connection, err = suite.path.EndpointA.GetConnection()
			suite.Require().NoError(err)

			consensusHeight = clientHeight(suite.path.EndpointB)
			consensusState, err = suite.chainA.SelfConsensusState(consensusHeight)
			suite.Require().NoError(err)

			proofHeight := suite.chainB.LatestHeight()
			proof, err = suite.chainB.QueryProofAtHeight(host.FullConsensusStateKey(suite.path.EndpointB.ClientID, consensusHeight), proofHeight)
			suite.Require().NoError(err)

			tc.malleate()

			height := clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff)
			err = suite.chainA.App.ConnectionKeeper.VerifyClientConsensusState(connection, height, consensusHeight, proof, consensusState)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}
			suite.Require().NoError(err)
		})
	}
}

// TestVerifyConnectionState verifies the connection state of the connection
// on chainB.
func (suite *KeeperTestSuite) TestVerifyConnectionState() {
	var (
		connection             types.ConnectionEnd
		counterpartyConnection types.ConnectionEnd
		connectionID           string
		proof                  []byte
		heightDiff             uint64
	)

	testCases := []verifyCase{
		{"success", func() {}, nil},
		{"connection state does not match the proof", func() {
			counterpartyConnection.State = types.TRYOPEN
		}, commitmenttypes.ErrInvalidProof},
		{"proof of a different connection", func() {
			connectionID = types.FormatConnectionIdentifier(3)
		}, commitmenttypes.ErrInvalidProof},
		{"proof height not yet trusted", func() {
			heightDiff = 5
		}, ibcerrors.ErrInvalidHeight},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.openConnection()
			heightDiff = 0

			var err error
			connection, err = suite.path.EndpointA.GetConnection()
			suite.Require().NoError(err)
			counterpartyConnection, err = suite.path.EndpointB.GetConnection()
			suite.Require().NoError(err)
			connectionID = suite.path.EndpointB.ConnectionID

			proofHeight := suite.chainB.LatestHeight()
			proof, err = suite.chainB.QueryProofAtHeight(host.ConnectionKey(connectionID), proofHeight)
			suite.Require().NoError(err)

			tc.malleate()

			height := clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff)
			err = suite.chainA.App.ConnectionKeeper.VerifyConnectionState(connection, height, proof, connectionID, counterpartyConnection)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}
			suite.Require().NoError(err)
		})
	}
}

// TestVerifyChannelState verifies the channel state of the channel on
// chainB.
func (suite *KeeperTestSuite) TestVerifyChannelState() {
	var (
		connection types.ConnectionEnd
		channel    channeltypes.Channel
		proof      []byte
		heightDiff uint64
	)

	testCases := []verifyCase{
		{"success", func() {}, nil},
		{"channel state does not match the proof", func() {
			channel.State = channeltypes.CLOSED
		}, commitmenttypes.ErrInvalidProof},
		{"proof height not yet trusted", func() {
			heightDiff = 5
		}, ibcerrors.ErrInvalidHeight},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.openConnection()
			_, _, err := suite.path.CreateChannels()
			suite.Require().NoError(err)
			heightDiff = 0

			connection, err = suite.path.EndpointA.GetConnection()
			suite.Require().NoError(err)
			channel, err = suite.path.EndpointB.GetChannel()
			suite.Require().NoError(err)

			portID := suite.path.EndpointB.ChannelConfig.PortID
			channelID := suite.path.EndpointB.ChannelID

			proofHeight := suite.chainB.LatestHeight()
			proof, err = suite.chainB.QueryProofAtHeight(host.ChannelKey(portID, channelID), proofHeight)
			suite.Require().NoError(err)

			tc.malleate()

			height := clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff)
			err = suite.chainA.App.ConnectionKeeper.VerifyChannelState(connection, height, proof, portID, channelID, channel)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}
			suite.Require().NoError(err)
		})
	}
}
