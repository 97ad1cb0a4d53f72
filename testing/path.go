package ibctesting

import (
	channeltypes "github.com/cosmos/ibc-handshake/modules/core/04-channel/types"
)

// Path contains two endpoints representing two chains connected over IBC
type Path struct {
	EndpointA *Endpoint
	EndpointB *Endpoint
}

// NewPath constructs an endpoint for each chain using the default values
// for the endpoints. Each endpoint is updated to have a pointer to the
// counterparty endpoint.
func NewPath(chainA, chainB *TestChain) *Path {
	endpointA := NewDefaultEndpoint(chainA)
	endpointB := NewDefaultEndpoint(chainB)

	endpointA.Counterparty = endpointB
	endpointB.Counterparty = endpointA

	return &Path{
		EndpointA: endpointA,
		EndpointB: endpointB,
	}
}

// SetChannelOrdered sets the channel order for the endpoint to ORDERED.
func (path *Path) SetChannelOrdered() {
	path.EndpointA.ChannelConfig.Order = channeltypes.ORDERED
	path.EndpointB.ChannelConfig.Order = channeltypes.ORDERED
}

// Setup constructs clients on both chains and then opens a connection and a channel
// between them.
func (path *Path) Setup() error {
	if err := path.SetupClients(); err != nil {
		return err
	}
	if _, _, err := path.CreateConnections(); err != nil {
		return err
	}
	_, _, err := path.CreateChannels()
	return err
}

// SetupClients creates a client of the counterparty chain on each chain, A first.
func (path *Path) SetupClients() error {
	if err := path.EndpointA.CreateClient(); err != nil {
		return err
	}
	return path.EndpointB.CreateClient()
}

// CreateConnections runs the connection handshake started by chain A. Every step on
// one chain is followed by an update of the other chain's client. It returns the
// connection identifiers on A and B.
func (path *Path) CreateConnections() (string, string, error) {
	a, b := path.EndpointA, path.EndpointB

	steps := []func() error{
		a.ConnOpenInit,
		b.UpdateClient,
		b.ConnOpenTry,
		a.UpdateClient,
		a.ConnOpenAck,
		b.UpdateClient,
		b.ConnOpenConfirm,
		a.UpdateClient,
	}
	if err := run(steps); err != nil {
		return "", "", err
	}
	return a.ConnectionID, b.ConnectionID, nil
}

// CreateChannels runs the channel handshake started by chain A over the open
// connection and returns the channel identifiers on A and B.
func (path *Path) CreateChannels() (string, string, error) {
	a, b := path.EndpointA, path.EndpointB

	steps := []func() error{
		a.ChanOpenInit,
		b.UpdateClient,
		b.ChanOpenTry,
		a.UpdateClient,
		a.ChanOpenAck,
		b.UpdateClient,
		b.ChanOpenConfirm,
		a.UpdateClient,
	}
	if err := run(steps); err != nil {
		return "", "", err
	}
	return a.ChannelID, b.ChannelID, nil
}

// CloseChannel closes the channel from chain A and confirms the closure on chain B.
func (path *Path) CloseChannel() error {
	a, b := path.EndpointA, path.EndpointB

	return run([]func() error{
		a.ChanCloseInit,
		b.UpdateClient,
		b.ChanCloseConfirm,
		a.UpdateClient,
	})
}

func run(steps []func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
