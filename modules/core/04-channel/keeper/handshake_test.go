package keeper_test

import (
	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
	"github.com/cosmos/ibc-handshake/modules/core/04-channel/types"
	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
	coretypes "github.com/cosmos/ibc-handshake/modules/core/types"
	ibctesting "github.com/cosmos/ibc-handshake/testing"
)

type testCase = struct {
	msg      string
	malleate func()
	expErr   error
}

// setConnectionState overwrites the state of an endpoint's connection.
func setConnectionState(endpoint *ibctesting.Endpoint, state connectiontypes.State) {
	k := endpoint.Chain.App.ConnectionKeeper
	connection, _ := k.GetConnection(endpoint.ConnectionID)
	connection.State = state
	k.SetConnection(endpoint.ConnectionID, connection)
}

// setConnectionVersions overwrites the negotiated versions of an endpoint's connection.
func setConnectionVersions(endpoint *ibctesting.Endpoint, versions ...*connectiontypes.Version) {
	k := endpoint.Chain.App.ConnectionKeeper
	connection, _ := k.GetConnection(endpoint.ConnectionID)
	connection.Versions = versions
	k.SetConnection(endpoint.ConnectionID, connection)
}

// setChannel overwrites an endpoint's channel after applying fn to it.
func setChannel(endpoint *ibctesting.Endpoint, fn func(*types.Channel)) {
	k := endpoint.Chain.App.ChannelKeeper
	channel, _ := k.GetChannel(endpoint.ChannelConfig.PortID, endpoint.ChannelID)
	fn(&channel)
	k.SetChannel(endpoint.ChannelConfig.PortID, endpoint.ChannelID, channel)
}

// queryChannelProof returns a proof of the counterparty's channel end at the
// counterparty's latest height.
func (suite *KeeperTestSuite) queryChannelProof(endpoint *ibctesting.Endpoint) ([]byte, clienttypes.Height) {
	counterparty := endpoint.Counterparty
	proofHeight := counterparty.Chain.LatestHeight()

	proof, err := counterparty.Chain.QueryProofAtHeight(host.ChannelKey(counterparty.ChannelConfig.PortID, counterparty.ChannelID), proofHeight)
	suite.Require().NoError(err)
	return proof, proofHeight
}

var orderedOnly = connectiontypes.NewVersion(connectiontypes.DefaultIBCVersionIdentifier, []string{"ORDER_ORDERED"})

// TestChanOpenInit tests the OpenInit handshake call for channels. The channel is
// being created on chainA over an open connection.
func (suite *KeeperTestSuite) TestChanOpenInit() {
	var (
		order          types.Order
		connectionHops []string
	)

	testCases := []testCase{
		{"success", func() {}, nil},
		{"success on an ordered channel", func() {
			order = types.ORDERED
		}, nil},
		{"connection doesn't exist", func() {
			connectionHops = []string{"connection-9"}
		}, connectiontypes.ErrConnectionNotFound},
		{"connection has more than one version", func() {
			setConnectionVersions(suite.path.EndpointA, connectiontypes.DefaultIBCVersion, connectiontypes.NewVersion("2", []string{"ORDER_UNORDERED"}))
		}, connectiontypes.ErrInvalidVersion},
		{"connection version does not support the ordering", func() {
			setConnectionVersions(suite.path.EndpointA, orderedOnly)
		}, connectiontypes.ErrInvalidVersion},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.msg, func() {
			suite.SetupTest()
			suite.setupConnections()

			order = types.UNORDERED
			connectionHops = []string{suite.path.EndpointA.ConnectionID}

			tc.malleate()

			k := suite.chainA.App.ChannelKeeper
			em := coretypes.NewEventManager()
			portID := suite.path.EndpointA.ChannelConfig.PortID
			counterparty := types.NewCounterparty(suite.path.EndpointB.ChannelConfig.PortID, "")

			channelID, err := k.ChanOpenInit(em, order, connectionHops, portID, counterparty, ibctesting.DefaultChannelVersion)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(channelID)
				suite.Require().Equal(uint64(0), k.GetNextChannelSequence())
				suite.Require().Empty(em.Events())
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(types.FormatChannelIdentifier(0), channelID)

			channel, found := k.GetChannel(portID, channelID)
			suite.Require().True(found)
			suite.Require().Equal(types.NewChannel(types.INIT, order, counterparty, connectionHops, ibctesting.DefaultChannelVersion), channel)

			events := em.Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.EventTypeChannelOpenInit, events[0].Type)
			suite.Require().Equal(channelID, events[0].ChannelID)
			suite.Require().Equal(connectionHops[0], events[0].ConnectionID)
		})
	}
}

// TestChanOpenTry tests the OpenTry handshake call for channels. The proof of the
// INIT channel on chainA is checked by chainB.
func (suite *KeeperTestSuite) TestChanOpenTry() {
	var (
		order               types.Order
		connectionHops      []string
		counterpartyVersion string
		proof               []byte
		proofHeight         clienttypes.Height
	)

	testCases := []testCase{
		{"success", func() {}, nil},
		{"connection doesn't exist", func() {
			connectionHops = []string{"connection-9"}
		}, connectiontypes.ErrConnectionNotFound},
		{"connection is not OPEN", func() {
			setConnectionState(suite.path.EndpointB, connectiontypes.TRYOPEN)
		}, connectiontypes.ErrInvalidConnectionState},
		{"connection version does not support the ordering", func() {
			setConnectionVersions(suite.path.EndpointB, orderedOnly)
		}, connectiontypes.ErrInvalidVersion},
		{"ordering differs from the counterparty channel", func() {
			order = types.ORDERED
		}, commitmenttypes.ErrInvalidProof},
		{"counterparty version differs from the counterparty channel", func() {
			counterpartyVersion = "ics20-1"
		}, commitmenttypes.ErrInvalidProof},
		{"proof height not yet trusted", func() {
			proofHeight = proofHeight.Increment()
		}, ibcerrors.ErrInvalidHeight},
		{"invalid proof", func() {
			proof = []byte("invalid proof")
		}, commitmenttypes.ErrInvalidProof},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.msg, func() {
			suite.SetupTest()
			suite.setupConnections()
			suite.Require().NoError(suite.path.EndpointA.ChanOpenInit())
			suite.Require().NoError(suite.path.EndpointB.UpdateClient())

			order = types.UNORDERED
			connectionHops = []string{suite.path.EndpointB.ConnectionID}
			counterpartyVersion = ibctesting.DefaultChannelVersion
			proof, proofHeight = suite.queryChannelProof(suite.path.EndpointB)

			tc.malleate()

			k := suite.chainB.App.ChannelKeeper
			em := coretypes.NewEventManager()
			portID := suite.path.EndpointB.ChannelConfig.PortID
			counterparty := types.NewCounterparty(suite.path.EndpointA.ChannelConfig.PortID, suite.path.EndpointA.ChannelID)

			channelID, err := k.ChanOpenTry(
				em, order, connectionHops, portID, counterparty,
				ibctesting.DefaultChannelVersion, counterpartyVersion, proof, proofHeight,
			)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(channelID)
				// no partial channel is written
				suite.Require().Equal(uint64(0), k.GetNextChannelSequence())
				suite.Require().False(k.HasChannel(portID, types.FormatChannelIdentifier(0)))
				suite.Require().Empty(em.Events())
				return
			}

			suite.Require().NoError(err)

			channel, found := k.GetChannel(portID, channelID)
			suite.Require().True(found)
			suite.Require().Equal(types.TRYOPEN, channel.State)
			suite.Require().Equal(counterparty, channel.Counterparty)

			events := em.Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.EventTypeChannelOpenTry, events[0].Type)
			suite.Require().Equal(suite.path.EndpointA.ChannelID, events[0].CounterpartyChannelID)
		})
	}
}

// TestChanOpenAck tests the OpenAck handshake call for channels. chainA checks the
// proof of the TRYOPEN channel on chainB.
func (suite *KeeperTestSuite) TestChanOpenAck() {
	var (
		channelID             string
		counterpartyChannelID string
		counterpartyVersion   string
		proof                 []byte
		proofHeight           clienttypes.Height
	)

	testCases := []testCase{
		{"success", func() {}, nil},
		{"channel doesn't exist", func() {
			channelID = types.FormatChannelIdentifier(9)
		}, types.ErrChannelNotFound},
		{"channel is not INIT", func() {
			setChannel(suite.path.EndpointA, func(channel *types.Channel) { channel.State = types.TRYOPEN })
		}, types.ErrInvalidChannelState},
		{"connection is not OPEN", func() {
			setConnectionState(suite.path.EndpointA, connectiontypes.INIT)
		}, connectiontypes.ErrInvalidConnectionState},
		{"wrong counterparty channel id", func() {
			counterpartyChannelID = types.FormatChannelIdentifier(4)
		}, commitmenttypes.ErrInvalidProof},
		{"counterparty version differs from the counterparty channel", func() {
			counterpartyVersion = "ics20-1"
		}, commitmenttypes.ErrInvalidProof},
		{"proof height not yet trusted", func() {
			proofHeight = proofHeight.Increment()
		}, ibcerrors.ErrInvalidHeight},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.msg, func() {
			suite.SetupTest()
			suite.setupConnections()
			suite.Require().NoError(suite.path.EndpointA.ChanOpenInit())
			suite.Require().NoError(suite.path.EndpointB.UpdateClient())
			suite.Require().NoError(suite.path.EndpointB.ChanOpenTry())
			suite.Require().NoError(suite.path.EndpointA.UpdateClient())

			channelID = suite.path.EndpointA.ChannelID
			counterpartyChannelID = suite.path.EndpointB.ChannelID
			counterpartyVersion = ibctesting.DefaultChannelVersion
			proof, proofHeight = suite.queryChannelProof(suite.path.EndpointA)

			tc.malleate()

			k := suite.chainA.App.ChannelKeeper
			em := coretypes.NewEventManager()
			portID := suite.path.EndpointA.ChannelConfig.PortID

			err := k.ChanOpenAck(em, portID, channelID, counterpartyVersion, counterpartyChannelID, proof, proofHeight)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(em.Events())

				channel, found := k.GetChannel(portID, suite.path.EndpointA.ChannelID)
				suite.Require().True(found)
				suite.Require().NotEqual(types.OPEN, channel.State)
				return
			}

			suite.Require().NoError(err)

			channel, found := k.GetChannel(portID, channelID)
			suite.Require().True(found)
			suite.Require().Equal(types.OPEN, channel.State)
			suite.Require().Equal(counterpartyChannelID, channel.Counterparty.ChannelID)
			suite.Require().Equal(counterpartyVersion, channel.Version)

			events := em.Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.EventTypeChannelOpenAck, events[0].Type)
		})
	}
}

// TestChanOpenConfirm tests the OpenConfirm handshake call for channels. chainB
// checks the proof of the OPEN channel on chainA.
func (suite *KeeperTestSuite) TestChanOpenConfirm() {
	var (
		channelID   string
		proof       []byte
		proofHeight clienttypes.Height
	)

	testCases := []testCase{
		{"success", func() {}, nil},
		{"channel doesn't exist", func() {
			channelID = types.FormatChannelIdentifier(9)
		}, types.ErrChannelNotFound},
		{"channel is not TRYOPEN", func() {
			setChannel(suite.path.EndpointB, func(channel *types.Channel) { channel.State = types.INIT })
		}, types.ErrInvalidChannelState},
		{"connection is not OPEN", func() {
			setConnectionState(suite.path.EndpointB, connectiontypes.TRYOPEN)
		}, connectiontypes.ErrInvalidConnectionState},
		{"channel differs from the proven counterparty", func() {
			setChannel(suite.path.EndpointB, func(channel *types.Channel) { channel.Ordering = types.ORDERED })
		}, commitmenttypes.ErrInvalidProof},
		{"proof height not yet trusted", func() {
			proofHeight = proofHeight.Increment()
		}, ibcerrors.ErrInvalidHeight},
		{"invalid proof", func() {
			proof = nil
		}, commitmenttypes.ErrInvalidProof},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.msg, func() {
			suite.SetupTest()
			suite.setupConnections()
			suite.Require().NoError(suite.path.EndpointA.ChanOpenInit())
			suite.Require().NoError(suite.path.EndpointB.UpdateClient())
			suite.Require().NoError(suite.path.EndpointB.ChanOpenTry())
			suite.Require().NoError(suite.path.EndpointA.UpdateClient())
			suite.Require().NoError(suite.path.EndpointA.ChanOpenAck())
			suite.Require().NoError(suite.path.EndpointB.UpdateClient())

			channelID = suite.path.EndpointB.ChannelID
			proof, proofHeight = suite.queryChannelProof(suite.path.EndpointB)

			tc.malleate()

			k := suite.chainB.App.ChannelKeeper
			em := coretypes.NewEventManager()
			portID := suite.path.EndpointB.ChannelConfig.PortID

			err := k.ChanOpenConfirm(em, portID, channelID, proof, proofHeight)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(em.Events())

				channel, found := k.GetChannel(portID, suite.path.EndpointB.ChannelID)
				suite.Require().True(found)
				suite.Require().NotEqual(types.OPEN, channel.State)
				return
			}

			suite.Require().NoError(err)

			channel, found := k.GetChannel(portID, channelID)
			suite.Require().True(found)
			suite.Require().Equal(types.OPEN, channel.State)

			events := em.Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.EventTypeChannelOpenConfirm, events[0].Type)
		})
	}
}

// TestChanCloseInit tests the initial closing of a handshake on chainA.
func (suite *KeeperTestSuite) TestChanCloseInit() {
	var channelID string

	testCases := []testCase{
		{"success", func() {}, nil},
		{"success on a channel still in INIT", func() {
			suite.Require().NoError(suite.path.EndpointA.ChanOpenInit())
			channelID = suite.path.EndpointA.ChannelID
		}, nil},
		{"channel doesn't exist", func() {
			channelID = types.FormatChannelIdentifier(9)
		}, types.ErrChannelNotFound},
		{"channel already closed", func() {
			setChannel(suite.path.EndpointA, func(channel *types.Channel) { channel.State = types.CLOSED })
		}, types.ErrInvalidChannelState},
		{"connection is not OPEN", func() {
			setConnectionState(suite.path.EndpointA, connectiontypes.INIT)
		}, connectiontypes.ErrInvalidConnectionState},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.msg, func() {
			suite.SetupTest()
			suite.setupConnections()
			_, _, err := suite.path.CreateChannels()
			suite.Require().NoError(err)

			channelID = suite.path.EndpointA.ChannelID

			tc.malleate()

			k := suite.chainA.App.ChannelKeeper
			em := coretypes.NewEventManager()
			portID := suite.path.EndpointA.ChannelConfig.PortID

			err = k.ChanCloseInit(em, portID, channelID)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(em.Events())
				return
			}

			suite.Require().NoError(err)

			channel, found := k.GetChannel(portID, channelID)
			suite.Require().True(found)
			suite.Require().Equal(types.CLOSED, channel.State)

			events := em.Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.EventTypeChannelCloseInit, events[0].Type)
			suite.Require().Equal(channelID, events[0].ChannelID)
		})
	}
}

// TestChanCloseConfirm tests the confirming closing channel ends on chainB after
// chainA closed its end.
func (suite *KeeperTestSuite) TestChanCloseConfirm() {
	var (
		channelID   string
		proof       []byte
		proofHeight clienttypes.Height
	)

	testCases := []testCase{
		{"success", func() {}, nil},
		{"channel doesn't exist", func() {
			channelID = types.FormatChannelIdentifier(9)
		}, types.ErrChannelNotFound},
		{"channel already closed", func() {
			setChannel(suite.path.EndpointB, func(channel *types.Channel) { channel.State = types.CLOSED })
		}, types.ErrInvalidChannelState},
		{"connection is not OPEN", func() {
			setConnectionState(suite.path.EndpointB, connectiontypes.TRYOPEN)
		}, connectiontypes.ErrInvalidConnectionState},
		{"channel differs from the proven counterparty", func() {
			setChannel(suite.path.EndpointB, func(channel *types.Channel) { channel.Version = "ics20-1" })
		}, commitmenttypes.ErrInvalidProof},
		{"proof height not yet trusted", func() {
			proofHeight = proofHeight.Increment()
		}, ibcerrors.ErrInvalidHeight},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.msg, func() {
			suite.SetupTest()
			suite.setupConnections()
			_, _, err := suite.path.CreateChannels()
			suite.Require().NoError(err)
			suite.Require().NoError(suite.path.EndpointA.ChanCloseInit())
			suite.Require().NoError(suite.path.EndpointB.UpdateClient())

			channelID = suite.path.EndpointB.ChannelID
			proof, proofHeight = suite.queryChannelProof(suite.path.EndpointB)

			tc.malleate()

			k := suite.chainB.App.ChannelKeeper
			em := coretypes.NewEventManager()
			portID := suite.path.EndpointB.ChannelConfig.PortID

			err = k.ChanCloseConfirm(em, portID, channelID, proof, proofHeight)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(em.Events())
				return
			}

			suite.Require().NoError(err)

			channel, found := k.GetChannel(portID, channelID)
			suite.Require().True(found)
			suite.Require().Equal(types.CLOSED, channel.State)

			events := em.Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.EventTypeChannelCloseConfirm, events[0].Type)
		})
	}
}
