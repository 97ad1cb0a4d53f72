package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// IBC channel sentinel errors
var (
	ErrChannelExists              = sdkerrors.Register(SubModuleName, 2, "channel already exists")
	ErrChannelNotFound            = sdkerrors.Register(SubModuleName, 3, "channel not found")
	ErrInvalidChannel             = sdkerrors.Register(SubModuleName, 4, "invalid channel")
	ErrInvalidChannelState        = sdkerrors.Register(SubModuleName, 5, "invalid channel state")
	ErrInvalidChannelOrdering     = sdkerrors.Register(SubModuleName, 6, "invalid channel ordering")
	ErrInvalidCounterparty        = sdkerrors.Register(SubModuleName, 7, "invalid counterparty channel")
	ErrInvalidChannelIdentifier   = sdkerrors.Register(SubModuleName, 8, "invalid channel identifier")
	ErrTooManyConnectionHops      = sdkerrors.Register(SubModuleName, 9, "too many connection hops")
	ErrInvalidChannelVersion      = sdkerrors.Register(SubModuleName, 10, "invalid channel version")
	ErrChannelAlreadyClosed       = sdkerrors.Register(SubModuleName, 11, "channel already closed")
	ErrConnectionHopsNotFound     = sdkerrors.Register(SubModuleName, 12, "connection hops not found")
	ErrInvalidChannelCounterparty = sdkerrors.Register(SubModuleName, 13, "invalid channel counterparty")
)
