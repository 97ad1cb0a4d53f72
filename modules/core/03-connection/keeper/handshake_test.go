package keeper_test

import (
	"time"

	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	"github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
	coretypes "github.com/cosmos/ibc-handshake/modules/core/types"
	ibctesting "github.com/cosmos/ibc-handshake/testing"
)

// TestConnOpenInit - chainA initializes (INIT state) a connection with
// chainB which is yet UNINITIALIZED
func (suite *KeeperTestSuite) TestConnOpenInit() {
	var (
		clientID string
		version  *types.Version
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"success with empty version", func() {
			version = nil
		}, nil},
		{"unsupported version", func() {
			version = types.NewVersion("bad version", nil)
		}, types.ErrInvalidVersion},
		{"unsupported feature", func() {
			version = types.NewVersion(types.DefaultIBCVersionIdentifier, []string{"ORDER_DAG"})
		}, types.ErrInvalidVersion},
		{"client not found", func() {
			clientID = "00-mock-9"
		}, clienttypes.ErrClientNotActive},
		{"client frozen", func() {
			clientState, _ := suite.chainA.App.ClientKeeper.GetClientState(clientID)
			clientState.FrozenHeight = clienttypes.NewHeight(0, 1)
			suite.chainA.App.ClientKeeper.SetClientState(clientID, clientState)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.Require().NoError(suite.path.SetupClients())

			clientID = suite.path.EndpointA.ClientID
			version = types.DefaultIBCVersion
			counterparty := types.NewCounterparty(suite.path.EndpointB.ClientID, "", suite.chainB.GetPrefix())

			tc.malleate()

			k := suite.chainA.App.ConnectionKeeper
			em := coretypes.NewEventManager()
			connectionID, err := k.ConnOpenInit(em, clientID, counterparty, version, ibctesting.DefaultDelayPeriod)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(connectionID)
				suite.Require().Equal(uint64(0), k.GetNextConnectionSequence())
				suite.Require().Empty(em.Events())
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(types.FormatConnectionIdentifier(0), connectionID)

			connection, found := k.GetConnection(connectionID)
			suite.Require().True(found)
			suite.Require().Equal(types.INIT, connection.State)
			suite.Require().Equal(clientID, connection.ClientID)
			suite.Require().Equal(counterparty, connection.Counterparty)
			if version == nil {
				suite.Require().Equal(types.GetCompatibleVersions(), connection.Versions)
			} else {
				suite.Require().Equal([]*types.Version{version}, connection.Versions)
			}

			events := em.Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.EventTypeConnectionOpenInit, events[0].Type)
			suite.Require().Equal(connectionID, events[0].ConnectionID)
			suite.Require().Equal(counterparty.ClientID, events[0].CounterpartyClientID)
		})
	}
}

// TestConnOpenTry - chainB calls ConnOpenTry to verify the state of
// connection on chainA is INIT
func (suite *KeeperTestSuite) TestConnOpenTry() {
	var (
		proof                ibctesting.ConnectionHandshakeProof
		counterparty         types.Counterparty
		counterpartyVersions []*types.Version
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"consensus height >= latest height", func() {
			proof.ConsensusHeight = suite.chainB.HostHeight()
		}, ibcerrors.ErrInvalidHeight},
		{"self client has the wrong chain id", func() {
			proof.ClientState.ChainID = "wrongchainid-0"
		}, clienttypes.ErrInvalidClient},
		{"self client is frozen", func() {
			proof.ClientState.FrozenHeight = clienttypes.NewHeight(0, 1)
		}, clienttypes.ErrClientFrozen},
		{"self consensus state pruned", func() {
			proof.ConsensusHeight = clienttypes.NewHeight(0, 1)
		}, clienttypes.ErrSelfConsensusStateNotFound},
		{"no compatible counterparty version", func() {
			counterpartyVersions = []*types.Version{types.NewVersion("2", []string{"ORDER_ORDERED"})}
		}, types.ErrVersionNegotiationFailed},
		{"counterparty versions differ from the stored connection", func() {
			counterpartyVersions = []*types.Version{types.NewVersion(types.DefaultIBCVersionIdentifier, []string{"ORDER_ORDERED"})}
		}, commitmenttypes.ErrInvalidProof},
		{"proof height not yet trusted", func() {
			proof.Height = proof.Height.Increment()
		}, ibcerrors.ErrInvalidHeight},
		{"invalid connection proof", func() {
			proof.Connection = []byte("invalid proof")
		}, commitmenttypes.ErrInvalidProof},
		{"client state differs from the proven one", func() {
			proof.ClientState.TrustingPeriod += time.Hour
		}, commitmenttypes.ErrInvalidProof},
		{"invalid consensus proof", func() {
			proof.Consensus = proof.Client
		}, commitmenttypes.ErrInvalidProof},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.Require().NoError(suite.path.SetupClients())
			suite.Require().NoError(suite.path.EndpointA.ConnOpenInit())
			suite.Require().NoError(suite.path.EndpointB.UpdateClient())

			var err error
			proof, err = suite.path.EndpointB.QueryConnectionHandshakeProof()
			suite.Require().NoError(err)

			connectionA, err := suite.path.EndpointA.GetConnection()
			suite.Require().NoError(err)
			counterparty = types.NewCounterparty(suite.path.EndpointA.ClientID, suite.path.EndpointA.ConnectionID, suite.chainA.GetPrefix())
			counterpartyVersions = connectionA.Versions

			tc.malleate()

			k := suite.chainB.App.ConnectionKeeper
			em := coretypes.NewEventManager()
			connectionID, err := k.ConnOpenTry(
				em, counterparty, ibctesting.DefaultDelayPeriod, suite.path.EndpointB.ClientID, proof.ClientState, counterpartyVersions,
				proof.Connection, proof.Client, proof.Consensus, proof.Height, proof.ConsensusHeight,
			)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(connectionID)
				// no connection end is written on failure
				suite.Require().Equal(uint64(0), k.GetNextConnectionSequence())
				suite.Require().False(k.HasConnection(types.FormatConnectionIdentifier(0)))
				suite.Require().Empty(em.Events())
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(types.FormatConnectionIdentifier(0), connectionID)

			connection, found := k.GetConnection(connectionID)
			suite.Require().True(found)
			suite.Require().Equal(types.TRYOPEN, connection.State)
			suite.Require().Equal(counterparty, connection.Counterparty)
			suite.Require().Len(connection.Versions, 1)

			paths, found := k.GetClientConnectionPaths(suite.path.EndpointB.ClientID)
			suite.Require().True(found)
			suite.Require().Equal([]string{connectionID}, paths)

			events := em.Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.EventTypeConnectionOpenTry, events[0].Type)
			suite.Require().Equal(suite.path.EndpointA.ConnectionID, events[0].CounterpartyConnectionID)
		})
	}
}

// TestConnOpenAck - Chain A (ID #1) calls TestConnOpenAck to acknowledge (ACK state)
// the initialization (TRYINIT) of the connection on  Chain B (ID #2).
func (suite *KeeperTestSuite) TestConnOpenAck() {
	var (
		connectionID             string
		counterpartyConnectionID string
		version                  *types.Version
		proof                    ibctesting.ConnectionHandshakeProof
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"consensus height >= latest height", func() {
			proof.ConsensusHeight = suite.chainA.HostHeight()
		}, ibcerrors.ErrInvalidHeight},
		{"connection not found", func() {
			connectionID = types.FormatConnectionIdentifier(9)
		}, types.ErrConnectionNotFound},
		{"connection state is not INIT", func() {
			connection, _ := suite.chainA.App.ConnectionKeeper.GetConnection(connectionID)
			connection.State = types.TRYOPEN
			suite.chainA.App.ConnectionKeeper.SetConnection(connectionID, connection)
		}, types.ErrInvalidConnectionState},
		{"selected version not offered on INIT", func() {
			version = types.NewVersion("2", []string{"ORDER_ORDERED"})
		}, types.ErrInvalidConnectionState},
		{"self client has the wrong chain id", func() {
			proof.ClientState.ChainID = "wrongchainid-0"
		}, clienttypes.ErrInvalidClient},
		{"self client height not below host height", func() {
			proof.ClientState.LatestHeight = suite.chainA.HostHeight()
		}, clienttypes.ErrInvalidClient},
		{"self consensus state pruned", func() {
			proof.ConsensusHeight = clienttypes.NewHeight(0, 1)
		}, clienttypes.ErrSelfConsensusStateNotFound},
		{"proof height not yet trusted", func() {
			proof.Height = proof.Height.Increment()
		}, ibcerrors.ErrInvalidHeight},
		{"wrong counterparty connection id", func() {
			counterpartyConnectionID = types.FormatConnectionIdentifier(5)
		}, commitmenttypes.ErrInvalidProof},
		{"invalid client proof", func() {
			proof.Client = proof.Connection
		}, commitmenttypes.ErrInvalidProof},
		{"invalid consensus proof", func() {
			proof.Consensus = nil
		}, commitmenttypes.ErrInvalidProof},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.Require().NoError(suite.path.SetupClients())
			suite.Require().NoError(suite.path.EndpointA.ConnOpenInit())
			suite.Require().NoError(suite.path.EndpointB.UpdateClient())
			suite.Require().NoError(suite.path.EndpointB.ConnOpenTry())
			suite.Require().NoError(suite.path.EndpointA.UpdateClient())

			var err error
			proof, err = suite.path.EndpointA.QueryConnectionHandshakeProof()
			suite.Require().NoError(err)

			connectionB, err := suite.path.EndpointB.GetConnection()
			suite.Require().NoError(err)

			connectionID = suite.path.EndpointA.ConnectionID
			counterpartyConnectionID = suite.path.EndpointB.ConnectionID
			version = connectionB.Versions[0]

			tc.malleate()

			k := suite.chainA.App.ConnectionKeeper
			em := coretypes.NewEventManager()
			err = k.ConnOpenAck(
				em, connectionID, proof.ClientState, version, counterpartyConnectionID,
				proof.Connection, proof.Client, proof.Consensus, proof.Height, proof.ConsensusHeight,
			)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(em.Events())

				connection, found := k.GetConnection(suite.path.EndpointA.ConnectionID)
				suite.Require().True(found)
				suite.Require().NotEqual(types.OPEN, connection.State)
				suite.Require().Empty(connection.Counterparty.ConnectionID)
				return
			}

			suite.Require().NoError(err)

			connection, found := k.GetConnection(connectionID)
			suite.Require().True(found)
			suite.Require().Equal(types.OPEN, connection.State)
			suite.Require().Equal(counterpartyConnectionID, connection.Counterparty.ConnectionID)
			suite.Require().Equal([]*types.Version{version}, connection.Versions)

			events := em.Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.EventTypeConnectionOpenAck, events[0].Type)
			suite.Require().Equal(counterpartyConnectionID, events[0].CounterpartyConnectionID)
		})
	}
}

// TestConnOpenConfirm - chainB calls ConnOpenConfirm to confirm that
// chainA state is now OPEN.
func (suite *KeeperTestSuite) TestConnOpenConfirm() {
	var (
		connectionID string
		proofAck     []byte
		proofHeight  clienttypes.Height
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"connection not found", func() {
			connectionID = types.FormatConnectionIdentifier(9)
		}, types.ErrConnectionNotFound},
		{"connection state is not TRYOPEN", func() {
			connection, _ := suite.chainB.App.ConnectionKeeper.GetConnection(connectionID)
			connection.State = types.INIT
			suite.chainB.App.ConnectionKeeper.SetConnection(connectionID, connection)
		}, types.ErrInvalidConnectionState},
		{"proof height not yet trusted", func() {
			proofHeight = proofHeight.Increment()
		}, ibcerrors.ErrInvalidHeight},
		{"invalid proof", func() {
			proofAck = []byte("invalid proof")
		}, commitmenttypes.ErrInvalidProof},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.Require().NoError(suite.path.SetupClients())
			suite.Require().NoError(suite.path.EndpointA.ConnOpenInit())
			suite.Require().NoError(suite.path.EndpointB.UpdateClient())
			suite.Require().NoError(suite.path.EndpointB.ConnOpenTry())
			suite.Require().NoError(suite.path.EndpointA.UpdateClient())
			suite.Require().NoError(suite.path.EndpointA.ConnOpenAck())
			suite.Require().NoError(suite.path.EndpointB.UpdateClient())

			connectionID = suite.path.EndpointB.ConnectionID
			proofHeight = suite.chainA.LatestHeight()
			suite.Require().Equal(proofHeight, clientHeight(suite.path.EndpointB))

			var err error
			proofAck, err = suite.chainA.QueryProofAtHeight(host.ConnectionKey(suite.path.EndpointA.ConnectionID), proofHeight)
			suite.Require().NoError(err)

			tc.malleate()

			k := suite.chainB.App.ConnectionKeeper
			em := coretypes.NewEventManager()
			err = k.ConnOpenConfirm(em, connectionID, proofAck, proofHeight)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(em.Events())
				return
			}

			suite.Require().NoError(err)

			connection, found := k.GetConnection(connectionID)
			suite.Require().True(found)
			suite.Require().Equal(types.OPEN, connection.State)

			events := em.Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.EventTypeConnectionOpenConfirm, events[0].Type)
			suite.Require().Equal(suite.path.EndpointA.ConnectionID, events[0].CounterpartyConnectionID)
		})
	}
}
