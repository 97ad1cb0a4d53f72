package mock

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// IBC mock client sentinel errors
var (
	ErrInvalidChainID      = sdkerrors.Register(ModuleName, 2, "invalid chain-id")
	ErrInvalidHeaderHeight = sdkerrors.Register(ModuleName, 3, "invalid header height")
	ErrInvalidHeader       = sdkerrors.Register(ModuleName, 4, "invalid header")
	ErrInvalidValidatorSet = sdkerrors.Register(ModuleName, 5, "invalid validator set")
	ErrInvalidSignature    = sdkerrors.Register(ModuleName, 6, "invalid header signature")
)
