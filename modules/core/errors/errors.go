package errors

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

const codespace = exported.ModuleName

var (
	// ErrUnauthorized is used whenever a request without sufficient
	// authorization is handled.
	ErrUnauthorized = sdkerrors.Register(codespace, 2, "unauthorized")

	// ErrUnknownRequest is used when the request body.
	ErrUnknownRequest = sdkerrors.Register(codespace, 3, "unknown request")

	// ErrInvalidAddress is used when an address is found to be invalid.
	ErrInvalidAddress = sdkerrors.Register(codespace, 4, "invalid address")

	// ErrInvalidRequest defines an ABCI typed error where the request contains
	// invalid data.
	ErrInvalidRequest = sdkerrors.Register(codespace, 5, "invalid request")

	// ErrInvalidHeight defines an error for an invalid height
	ErrInvalidHeight = sdkerrors.Register(codespace, 6, "invalid height")

	// ErrInvalidVersion defines a general error for an invalid version
	ErrInvalidVersion = sdkerrors.Register(codespace, 7, "invalid version")

	// ErrInvalidChainID defines an error when the chain-id is invalid.
	ErrInvalidChainID = sdkerrors.Register(codespace, 8, "invalid chain-id")

	// ErrInvalidType defines an error an invalid type.
	ErrInvalidType = sdkerrors.Register(codespace, 9, "invalid type")

	// ErrLogic defines an internal logic error, e.g. an invariant or assertion
	// that is violated. It is a programmer error, not a user-facing error.
	ErrLogic = sdkerrors.Register(codespace, 10, "internal logic error")

	// ErrNotFound defines an error when requested entity doesn't exist in the state.
	ErrNotFound = sdkerrors.Register(codespace, 11, "not found")

	// ErrInvalidConfig defines an error for a chain or client configuration that
	// violates a setup invariant.
	ErrInvalidConfig = sdkerrors.Register(codespace, 12, "invalid configuration")

	// ErrProtocolViolation defines an error for a handshake step whose dispatch failed
	// or whose outcome event did not match the step that was executed.
	ErrProtocolViolation = sdkerrors.Register(codespace, 13, "protocol violation")
)
