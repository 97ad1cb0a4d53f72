// Package mock implements a light client for mock host chains whose blocks are signed by
// a single ed25519 validator.
package mock

import (
	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

// ModuleName is the client type of the mock light client.
const ModuleName = exported.Mock

var _ clienttypes.LightClientModule = (*LightClientModule)(nil)

// LightClientModule verifies headers and state proofs of mock host chains.
type LightClientModule struct{}

// NewLightClientModule creates a mock LightClientModule.
func NewLightClientModule() LightClientModule {
	return LightClientModule{}
}
