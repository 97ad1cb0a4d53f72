package keeper_test

import (
	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-handshake/modules/core/04-channel/types"
	"github.com/cosmos/ibc-handshake/modules/core/types"
	ibctesting "github.com/cosmos/ibc-handshake/testing"
)

const (
	missingClientID     = "00-mock-9"
	missingConnectionID = "connection-9"
	missingChannelID    = "channel-9"
)

var (
	proof       = []byte("proof")
	proofHeight = clienttypes.NewHeight(0, 1)
)

// TestHandlerErrors delivers each message type against state that does not exist and
// checks the submodule error surfaces through the handler unchanged in kind.
func (suite *KeeperTestSuite) TestHandlerErrors() {
	signer := suite.chainA.SenderAccount
	counterpartyClient := clienttypes.NewClientState(
		suite.chainA.ChainID(), suite.chainA.LatestHeight(), ibctesting.TrustingPeriod, ibctesting.MaxClockDrift,
	)
	history := suite.chainB.History()
	header := suite.chainB.LatestBlock().ToHeader(history[len(history)-2].Height())

	testCases := []struct {
		name   string
		msg    types.Msg
		expErr error
	}{
		{
			"update client",
			clienttypes.NewMsgUpdateClient(missingClientID, header, signer),
			clienttypes.ErrClientNotFound,
		},
		{
			"connection open init",
			connectiontypes.NewMsgConnectionOpenInit(
				missingClientID, missingClientID, suite.chainB.GetPrefix(), ibctesting.ConnectionVersion, 0, signer,
			),
			clienttypes.ErrClientNotActive,
		},
		{
			"connection open ack",
			connectiontypes.NewMsgConnectionOpenAck(
				missingConnectionID, "connection-0", counterpartyClient, proof, proof, proof,
				proofHeight, proofHeight, ibctesting.ConnectionVersion, signer,
			),
			connectiontypes.ErrConnectionNotFound,
		},
		{
			"connection open confirm",
			connectiontypes.NewMsgConnectionOpenConfirm(missingConnectionID, proof, proofHeight, signer),
			connectiontypes.ErrConnectionNotFound,
		},
		{
			"channel open init",
			channeltypes.NewMsgChannelOpenInit(
				ibctesting.TransferPort, "1.0", channeltypes.UNORDERED, []string{missingConnectionID},
				ibctesting.TransferPort, signer,
			),
			connectiontypes.ErrConnectionNotFound,
		},
		{
			"channel open ack",
			channeltypes.NewMsgChannelOpenAck(
				ibctesting.TransferPort, missingChannelID, "channel-0", "1.0", proof, proofHeight, signer,
			),
			channeltypes.ErrChannelNotFound,
		},
		{
			"channel open confirm",
			channeltypes.NewMsgChannelOpenConfirm(ibctesting.TransferPort, missingChannelID, proof, proofHeight, signer),
			channeltypes.ErrChannelNotFound,
		},
		{
			"channel close init",
			channeltypes.NewMsgChannelCloseInit(ibctesting.TransferPort, missingChannelID, signer),
			channeltypes.ErrChannelNotFound,
		},
		{
			"channel close confirm",
			channeltypes.NewMsgChannelCloseConfirm(ibctesting.TransferPort, missingChannelID, proof, proofHeight, signer),
			channeltypes.ErrChannelNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.Require().NoError(tc.msg.ValidateBasic())

			event, err := suite.chainA.App.Deliver(tc.msg)
			suite.Require().ErrorIs(err, tc.expErr)
			suite.Require().Equal(types.Event{}, event)
			suite.Require().Equal(0, suite.chainA.App.EventLog().Len())
		})
	}
}

// TestHandshakeThroughDeliver opens and closes a channel, every step delivered as a
// message, and checks the identifiers each chain assigned.
func (suite *KeeperTestSuite) TestHandshakeThroughDeliver() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	suite.Require().NoError(path.Setup())
	suite.Require().NoError(path.CloseChannel())

	suite.Require().Equal("00-mock-0", path.EndpointA.ClientID)
	suite.Require().Equal("connection-0", path.EndpointA.ConnectionID)
	suite.Require().Equal("channel-0", path.EndpointB.ChannelID)

	channelA, err := path.EndpointA.GetChannel()
	suite.Require().NoError(err)
	suite.Require().Equal(channeltypes.CLOSED, channelA.State)

	channelB, err := path.EndpointB.GetChannel()
	suite.Require().NoError(err)
	suite.Require().Equal(channeltypes.CLOSED, channelB.State)

	connectionB, err := path.EndpointB.GetConnection()
	suite.Require().NoError(err)
	suite.Require().Equal(connectiontypes.OPEN, connectionB.State)

	last, ok := suite.chainB.App.EventLog().Last()
	suite.Require().True(ok)
	suite.Require().Equal(channeltypes.EventTypeChannelCloseConfirm, last.Type)
}
