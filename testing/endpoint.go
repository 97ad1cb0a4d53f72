package ibctesting

import (
	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-handshake/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-handshake/modules/core/04-channel/types"
	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
	"github.com/cosmos/ibc-handshake/modules/core/types"
)

// Endpoint is one side of a path: the chain it lives on, the client it keeps of the
// counterparty chain and the connection and channel it opens. Endpoint steps read
// proofs from the counterparty chain at its latest height and deliver the resulting
// message on the endpoint's own chain.
type Endpoint struct {
	Chain        *TestChain
	Counterparty *Endpoint
	ClientID     string
	ConnectionID string
	ChannelID    string

	ClientConfig     *ClientConfig
	ConnectionConfig *ConnectionConfig
	ChannelConfig    *ChannelConfig
}

// NewEndpoint constructs a new endpoint without the counterparty.
// CONTRACT: the counterparty endpoint must be set by the caller.
func NewEndpoint(
	chain *TestChain, clientConfig *ClientConfig,
	connectionConfig *ConnectionConfig, channelConfig *ChannelConfig,
) *Endpoint {
	return &Endpoint{
		Chain:            chain,
		ClientConfig:     clientConfig,
		ConnectionConfig: connectionConfig,
		ChannelConfig:    channelConfig,
	}
}

// NewDefaultEndpoint constructs a new endpoint using default values.
// CONTRACT: the counterparty endpoint must be set by the caller.
func NewDefaultEndpoint(chain *TestChain) *Endpoint {
	return NewEndpoint(chain, NewClientConfig(), NewConnectionConfig(), NewChannelConfig())
}

// deliver executes msg on the endpoint's chain and checks it produced an event of the
// expected type.
func (endpoint *Endpoint) deliver(step string, msg types.Msg, expected string) (types.Event, error) {
	event, err := endpoint.Chain.Deliver(msg)
	if err != nil {
		return types.Event{}, &StepError{Step: step, Chain: endpoint.Chain.ChainID(), Expected: expected, Err: err}
	}
	if event.Type != expected {
		return types.Event{}, &StepError{Step: step, Chain: endpoint.Chain.ChainID(), Expected: expected, Observed: event.Type}
	}

	endpoint.Chain.logger.Info("handshake step executed", "step", step, "height", endpoint.Chain.LatestHeight())
	return event, nil
}

// stepError wraps a failure to build a step's message.
func (endpoint *Endpoint) stepError(step string, err error) error {
	return &StepError{Step: step, Chain: endpoint.Chain.ChainID(), Err: err}
}

// CreateClient creates a client of the counterparty chain from its latest block. It
// will update the clientID for the endpoint if the message is successfully executed.
func (endpoint *Endpoint) CreateClient() error {
	const step = "create-client"

	block := endpoint.Counterparty.Chain.LatestBlock()
	clientState := clienttypes.NewClientState(
		endpoint.Counterparty.Chain.ChainID(), block.Height(),
		endpoint.ClientConfig.TrustingPeriod, endpoint.ClientConfig.MaxClockDrift,
	)

	msg := clienttypes.NewMsgCreateClient(clientState, block.ConsensusState(), endpoint.Chain.SenderAccount)
	event, err := endpoint.deliver(step, msg, clienttypes.EventTypeCreateClient)
	if err != nil {
		return err
	}

	endpoint.ClientID = event.ClientID
	return nil
}

// UpdateClient synchronises the two chains' clocks and updates the endpoint's client
// with the counterparty's latest block, verified against the consensus state at the
// client's latest height. The counterparty does not need to keep that block.
func (endpoint *Endpoint) UpdateClient() error {
	const step = "update-client"

	if err := SyncLatestTimestamp(endpoint.Chain, endpoint.Counterparty.Chain); err != nil {
		return endpoint.stepError(step, err)
	}

	clientState, err := endpoint.Chain.GetClientState(endpoint.ClientID)
	if err != nil {
		return endpoint.stepError(step, err)
	}

	header := endpoint.Counterparty.Chain.LatestBlock().ToHeader(clientState.LatestHeight)
	msg := clienttypes.NewMsgUpdateClient(endpoint.ClientID, header, endpoint.Chain.SenderAccount)

	_, err = endpoint.deliver(step, msg, clienttypes.EventTypeUpdateClient)
	return err
}

// ConnOpenInit will construct and execute a MsgConnectionOpenInit on the associated endpoint.
func (endpoint *Endpoint) ConnOpenInit() error {
	msg := connectiontypes.NewMsgConnectionOpenInit(
		endpoint.ClientID,
		endpoint.Counterparty.ClientID,
		endpoint.Counterparty.Chain.GetPrefix(), endpoint.ConnectionConfig.Version, endpoint.ConnectionConfig.DelayPeriod,
		endpoint.Chain.SenderAccount,
	)

	event, err := endpoint.deliver("conn-open-init", msg, connectiontypes.EventTypeConnectionOpenInit)
	if err != nil {
		return err
	}

	endpoint.ConnectionID = event.ConnectionID
	return nil
}

// ConnOpenTry will construct and execute a MsgConnectionOpenTry on the associated endpoint.
func (endpoint *Endpoint) ConnOpenTry() error {
	const step = "conn-open-try"

	proof, err := endpoint.QueryConnectionHandshakeProof()
	if err != nil {
		return endpoint.stepError(step, err)
	}

	counterpartyConnection, err := endpoint.Counterparty.Chain.GetConnection(endpoint.Counterparty.ConnectionID)
	if err != nil {
		return endpoint.stepError(step, err)
	}

	msg := connectiontypes.NewMsgConnectionOpenTry(
		endpoint.ClientID, endpoint.Counterparty.ConnectionID, endpoint.Counterparty.ClientID,
		proof.ClientState, endpoint.Counterparty.Chain.GetPrefix(), counterpartyConnection.Versions,
		endpoint.ConnectionConfig.DelayPeriod,
		proof.Connection, proof.Client, proof.Consensus,
		proof.Height, proof.ConsensusHeight,
		endpoint.Chain.SenderAccount,
	)

	event, err := endpoint.deliver(step, msg, connectiontypes.EventTypeConnectionOpenTry)
	if err != nil {
		return err
	}

	endpoint.ConnectionID = event.ConnectionID
	return nil
}

// ConnOpenAck will construct and execute a MsgConnectionOpenAck on the associated endpoint.
func (endpoint *Endpoint) ConnOpenAck() error {
	const step = "conn-open-ack"

	proof, err := endpoint.QueryConnectionHandshakeProof()
	if err != nil {
		return endpoint.stepError(step, err)
	}

	counterpartyConnection, err := endpoint.Counterparty.Chain.GetConnection(endpoint.Counterparty.ConnectionID)
	if err != nil {
		return endpoint.stepError(step, err)
	}
	if len(counterpartyConnection.Versions) != 1 {
		return endpoint.stepError(step, connectiontypes.ErrInvalidVersion)
	}

	msg := connectiontypes.NewMsgConnectionOpenAck(
		endpoint.ConnectionID, endpoint.Counterparty.ConnectionID, proof.ClientState,
		proof.Connection, proof.Client, proof.Consensus,
		proof.Height, proof.ConsensusHeight,
		counterpartyConnection.Versions[0],
		endpoint.Chain.SenderAccount,
	)

	_, err = endpoint.deliver(step, msg, connectiontypes.EventTypeConnectionOpenAck)
	return err
}

// ConnOpenConfirm will construct and execute a MsgConnectionOpenConfirm on the associated endpoint.
func (endpoint *Endpoint) ConnOpenConfirm() error {
	const step = "conn-open-confirm"

	proofHeight := endpoint.Counterparty.Chain.LatestHeight()
	proofAck, err := endpoint.Counterparty.Chain.QueryProofAtHeight(host.ConnectionKey(endpoint.Counterparty.ConnectionID), proofHeight)
	if err != nil {
		return endpoint.stepError(step, err)
	}

	msg := connectiontypes.NewMsgConnectionOpenConfirm(
		endpoint.ConnectionID,
		proofAck, proofHeight,
		endpoint.Chain.SenderAccount,
	)

	_, err = endpoint.deliver(step, msg, connectiontypes.EventTypeConnectionOpenConfirm)
	return err
}

// ConnectionHandshakeProof holds the proofs a connection open try or ack carries about
// the counterparty chain.
type ConnectionHandshakeProof struct {
	ClientState     *clienttypes.ClientState
	Connection      []byte
	Client          []byte
	Consensus       []byte
	Height          clienttypes.Height
	ConsensusHeight clienttypes.Height
}

// QueryConnectionHandshakeProof returns the proofs of the counterparty's connection
// end, its client of this chain and that client's latest consensus state, all taken at
// the counterparty's latest height.
func (endpoint *Endpoint) QueryConnectionHandshakeProof() (ConnectionHandshakeProof, error) {
	counterparty := endpoint.Counterparty

	clientState, err := counterparty.Chain.GetClientState(counterparty.ClientID)
	if err != nil {
		return ConnectionHandshakeProof{}, err
	}

	proofHeight := counterparty.Chain.LatestHeight()
	consensusHeight := clientState.LatestHeight

	proofConnection, err := counterparty.Chain.QueryProofAtHeight(host.ConnectionKey(counterparty.ConnectionID), proofHeight)
	if err != nil {
		return ConnectionHandshakeProof{}, err
	}
	proofClient, err := counterparty.Chain.QueryProofAtHeight(host.FullClientStateKey(counterparty.ClientID), proofHeight)
	if err != nil {
		return ConnectionHandshakeProof{}, err
	}
	proofConsensus, err := counterparty.Chain.QueryProofAtHeight(host.FullConsensusStateKey(counterparty.ClientID, consensusHeight), proofHeight)
	if err != nil {
		return ConnectionHandshakeProof{}, err
	}

	return ConnectionHandshakeProof{
		ClientState:     clientState,
		Connection:      proofConnection,
		Client:          proofClient,
		Consensus:       proofConsensus,
		Height:          proofHeight,
		ConsensusHeight: consensusHeight,
	}, nil
}

// ChanOpenInit will construct and execute a MsgChannelOpenInit on the associated endpoint.
func (endpoint *Endpoint) ChanOpenInit() error {
	msg := channeltypes.NewMsgChannelOpenInit(
		endpoint.ChannelConfig.PortID,
		endpoint.ChannelConfig.Version, endpoint.ChannelConfig.Order, []string{endpoint.ConnectionID},
		endpoint.Counterparty.ChannelConfig.PortID,
		endpoint.Chain.SenderAccount,
	)

	event, err := endpoint.deliver("chan-open-init", msg, channeltypes.EventTypeChannelOpenInit)
	if err != nil {
		return err
	}

	endpoint.ChannelID = event.ChannelID
	return nil
}

// ChanOpenTry will construct and execute a MsgChannelOpenTry on the associated endpoint.
func (endpoint *Endpoint) ChanOpenTry() error {
	const step = "chan-open-try"

	counterpartyChannel, err := endpoint.Counterparty.Chain.GetChannel(endpoint.Counterparty.ChannelConfig.PortID, endpoint.Counterparty.ChannelID)
	if err != nil {
		return endpoint.stepError(step, err)
	}

	proofHeight := endpoint.Counterparty.Chain.LatestHeight()
	proofInit, err := endpoint.Counterparty.Chain.QueryProofAtHeight(
		host.ChannelKey(endpoint.Counterparty.ChannelConfig.PortID, endpoint.Counterparty.ChannelID), proofHeight,
	)
	if err != nil {
		return endpoint.stepError(step, err)
	}

	msg := channeltypes.NewMsgChannelOpenTry(
		endpoint.ChannelConfig.PortID,
		endpoint.ChannelConfig.Version, endpoint.ChannelConfig.Order, []string{endpoint.ConnectionID},
		endpoint.Counterparty.ChannelConfig.PortID, endpoint.Counterparty.ChannelID, counterpartyChannel.Version,
		proofInit, proofHeight,
		endpoint.Chain.SenderAccount,
	)

	event, err := endpoint.deliver(step, msg, channeltypes.EventTypeChannelOpenTry)
	if err != nil {
		return err
	}

	endpoint.ChannelID = event.ChannelID
	return nil
}

// ChanOpenAck will construct and execute a MsgChannelOpenAck on the associated endpoint.
func (endpoint *Endpoint) ChanOpenAck() error {
	const step = "chan-open-ack"

	counterpartyChannel, err := endpoint.Counterparty.Chain.GetChannel(endpoint.Counterparty.ChannelConfig.PortID, endpoint.Counterparty.ChannelID)
	if err != nil {
		return endpoint.stepError(step, err)
	}

	proofHeight := endpoint.Counterparty.Chain.LatestHeight()
	proofTry, err := endpoint.Counterparty.Chain.QueryProofAtHeight(
		host.ChannelKey(endpoint.Counterparty.ChannelConfig.PortID, endpoint.Counterparty.ChannelID), proofHeight,
	)
	if err != nil {
		return endpoint.stepError(step, err)
	}

	msg := channeltypes.NewMsgChannelOpenAck(
		endpoint.ChannelConfig.PortID, endpoint.ChannelID,
		endpoint.Counterparty.ChannelID, counterpartyChannel.Version,
		proofTry, proofHeight,
		endpoint.Chain.SenderAccount,
	)

	_, err = endpoint.deliver(step, msg, channeltypes.EventTypeChannelOpenAck)
	return err
}

// ChanOpenConfirm will construct and execute a MsgChannelOpenConfirm on the associated endpoint.
func (endpoint *Endpoint) ChanOpenConfirm() error {
	const step = "chan-open-confirm"

	proofHeight := endpoint.Counterparty.Chain.LatestHeight()
	proofAck, err := endpoint.Counterparty.Chain.QueryProofAtHeight(
		host.ChannelKey(endpoint.Counterparty.ChannelConfig.PortID, endpoint.Counterparty.ChannelID), proofHeight,
	)
	if err != nil {
		return endpoint.stepError(step, err)
	}

	msg := channeltypes.NewMsgChannelOpenConfirm(
		endpoint.ChannelConfig.PortID, endpoint.ChannelID,
		proofAck, proofHeight,
		endpoint.Chain.SenderAccount,
	)

	_, err = endpoint.deliver(step, msg, channeltypes.EventTypeChannelOpenConfirm)
	return err
}

// ChanCloseInit will construct and execute a MsgChannelCloseInit on the associated endpoint.
func (endpoint *Endpoint) ChanCloseInit() error {
	msg := channeltypes.NewMsgChannelCloseInit(endpoint.ChannelConfig.PortID, endpoint.ChannelID, endpoint.Chain.SenderAccount)

	_, err := endpoint.deliver("chan-close-init", msg, channeltypes.EventTypeChannelCloseInit)
	return err
}

// ChanCloseConfirm will construct and execute a MsgChannelCloseConfirm on the associated endpoint.
func (endpoint *Endpoint) ChanCloseConfirm() error {
	const step = "chan-close-confirm"

	proofHeight := endpoint.Counterparty.Chain.LatestHeight()
	proofInit, err := endpoint.Counterparty.Chain.QueryProofAtHeight(
		host.ChannelKey(endpoint.Counterparty.ChannelConfig.PortID, endpoint.Counterparty.ChannelID), proofHeight,
	)
	if err != nil {
		return endpoint.stepError(step, err)
	}

	msg := channeltypes.NewMsgChannelCloseConfirm(
		endpoint.ChannelConfig.PortID, endpoint.ChannelID,
		proofInit, proofHeight,
		endpoint.Chain.SenderAccount,
	)

	_, err = endpoint.deliver(step, msg, channeltypes.EventTypeChannelCloseConfirm)
	return err
}

// GetClientState retrieves the client state of the endpoint's client.
func (endpoint *Endpoint) GetClientState() (*clienttypes.ClientState, error) {
	return endpoint.Chain.GetClientState(endpoint.ClientID)
}

// GetConnection retrieves the endpoint's connection end.
func (endpoint *Endpoint) GetConnection() (connectiontypes.ConnectionEnd, error) {
	return endpoint.Chain.GetConnection(endpoint.ConnectionID)
}

// GetChannel retrieves the endpoint's channel end.
func (endpoint *Endpoint) GetChannel() (channeltypes.Channel, error) {
	return endpoint.Chain.GetChannel(endpoint.ChannelConfig.PortID, endpoint.ChannelID)
}
