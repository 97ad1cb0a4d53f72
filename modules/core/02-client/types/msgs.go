package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
)

// message types for the IBC client
const (
	TypeMsgCreateClient = "create_client"
	TypeMsgUpdateClient = "update_client"
)

// MsgCreateClient defines a message to create an IBC client
type MsgCreateClient struct {
	ClientState    *ClientState    `json:"client_state"`
	ConsensusState *ConsensusState `json:"consensus_state"`
	Signer         string          `json:"signer"`
}

// NewMsgCreateClient creates a new MsgCreateClient instance
func NewMsgCreateClient(clientState *ClientState, consensusState *ConsensusState, signer string) *MsgCreateClient {
	return &MsgCreateClient{
		ClientState:    clientState,
		ConsensusState: consensusState,
		Signer:         signer,
	}
}

// Type implements sdk.Msg
func (MsgCreateClient) Type() string {
	return TypeMsgCreateClient
}

// ValidateBasic implements sdk.Msg
func (msg MsgCreateClient) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Signer); err != nil {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidAddress, "string could not be parsed as address: %v", err)
	}
	if msg.ClientState == nil {
		return sdkerrors.Wrap(ErrInvalidClient, "client state cannot be nil")
	}
	if err := msg.ClientState.Validate(); err != nil {
		return err
	}
	if msg.ConsensusState == nil {
		return sdkerrors.Wrap(ErrInvalidConsensus, "consensus state cannot be nil")
	}
	if msg.ClientState.ClientType() != msg.ConsensusState.ClientType() {
		return sdkerrors.Wrap(ErrInvalidClientType, "client type for client state and consensus state do not match")
	}
	if err := ValidateClientType(msg.ClientState.ClientType()); err != nil {
		return sdkerrors.Wrap(err, "client type does not meet naming constraints")
	}
	return msg.ConsensusState.ValidateBasic()
}

// MsgUpdateClient defines an sdk.Msg to update an IBC client state using the given
// header.
type MsgUpdateClient struct {
	ClientID string  `json:"client_id"`
	Header   *Header `json:"header"`
	Signer   string  `json:"signer"`
}

// NewMsgUpdateClient creates a new MsgUpdateClient instance
func NewMsgUpdateClient(id string, header *Header, signer string) *MsgUpdateClient {
	return &MsgUpdateClient{
		ClientID: id,
		Header:   header,
		Signer:   signer,
	}
}

// Type implements sdk.Msg
func (MsgUpdateClient) Type() string {
	return TypeMsgUpdateClient
}

// ValidateBasic implements sdk.Msg
func (msg MsgUpdateClient) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Signer); err != nil {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidAddress, "string could not be parsed as address: %v", err)
	}
	if msg.Header == nil {
		return sdkerrors.Wrap(ErrInvalidHeader, "header cannot be nil")
	}
	if err := msg.Header.ValidateBasic(); err != nil {
		return err
	}
	return host.ClientIdentifierValidator(msg.ClientID)
}
