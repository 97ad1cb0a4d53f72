package types

import (
	"fmt"

	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

// LightClientModule verifies client messages and state proofs for one client type.
type LightClientModule interface {
	// VerifyClientMessage must verify a header against the consensus state trusted at
	// its TrustedHeight. It must not mutate state.
	VerifyClientMessage(ctx ClientValidationContext, clientID string, clientState *ClientState, header *Header) error

	// CheckForMisbehaviour checks a header that passed VerifyClientMessage for conflicts
	// with the consensus states already stored for the client.
	CheckForMisbehaviour(ctx ClientValidationContext, clientID string, clientState *ClientState, header *Header) bool

	// VerifyMembership verifies a proof of the existence of a value at a given
	// CommitmentPath at the specified height.
	VerifyMembership(
		ctx ClientValidationContext,
		clientID string,
		clientState *ClientState,
		height exported.Height,
		proof []byte,
		path commitmenttypes.MerklePath,
		value []byte,
	) error
}

// The router is a map from client type to the LightClientModule verifying it.
type Router struct {
	routes map[string]LightClientModule
}

func NewRouter() *Router {
	return &Router{
		routes: make(map[string]LightClientModule),
	}
}

// AddRoute adds LightClientModule for a given client type. It returns the Router
// so AddRoute calls can be linked. It will panic if the route is already registered.
func (rtr *Router) AddRoute(clientType string, module LightClientModule) *Router {
	if err := ValidateClientType(clientType); err != nil {
		panic(err)
	}
	if rtr.HasRoute(clientType) {
		panic(fmt.Errorf("route %s has already been registered", clientType))
	}

	rtr.routes[clientType] = module
	return rtr
}

// HasRoute returns true if the Router has a module registered or false otherwise.
func (rtr *Router) HasRoute(clientType string) bool {
	_, ok := rtr.routes[clientType]
	return ok
}

// GetRoute returns the LightClientModule for the type encoded in the client identifier.
func (rtr *Router) GetRoute(clientID string) (LightClientModule, bool) {
	clientType, _, err := ParseClientIdentifier(clientID)
	if err != nil {
		return nil, false
	}

	module, ok := rtr.routes[clientType]
	return module, ok
}
