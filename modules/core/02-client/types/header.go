package types

import (
	"bytes"
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/crypto/ed25519"
	"github.com/tendermint/tendermint/crypto/tmhash"
	tmjson "github.com/tendermint/tendermint/libs/json"

	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

// BlockHeader is the part of a host block that its validator signs.
type BlockHeader struct {
	ChainID            string    `json:"chain_id"`
	Height             Height    `json:"height"`
	Time               time.Time `json:"time"`
	AppHash            []byte    `json:"app_hash"`
	ValidatorsHash     []byte    `json:"validators_hash"`
	NextValidatorsHash []byte    `json:"next_validators_hash"`
}

// SignBytes returns the deterministic encoding the validator signs.
func (h BlockHeader) SignBytes() ([]byte, error) {
	return tmjson.Marshal(h)
}

// Header is a signed block header submitted to update a client. TrustedHeight is the
// height of the consensus state the header is verified against.
type Header struct {
	BlockHeader     BlockHeader    `json:"block_header"`
	Signature       []byte         `json:"signature"`
	ValidatorPubKey ed25519.PubKey `json:"validator_pub_key"`
	TrustedHeight   Height         `json:"trusted_height"`
}

// ClientType defines that the Header is a mock client message.
func (Header) ClientType() string {
	return exported.Mock
}

// GetHeight returns the height of the signed block.
func (h Header) GetHeight() exported.Height {
	return h.BlockHeader.Height
}

// GetTime returns the block time of the signed block.
func (h Header) GetTime() time.Time {
	return h.BlockHeader.Time
}

// ConsensusState returns the consensus state the header commits to.
func (h Header) ConsensusState() *ConsensusState {
	return NewConsensusState(
		h.BlockHeader.Time,
		commitmenttypes.NewMerkleRoot(h.BlockHeader.AppHash),
		h.BlockHeader.NextValidatorsHash,
	)
}

// ValidateBasic performs stateless checks on the header. The signature is checked by
// the light client against the trusted validator set.
func (h Header) ValidateBasic() error {
	if h.BlockHeader.ChainID == "" {
		return sdkerrors.Wrap(ErrInvalidHeader, "chain id cannot be empty")
	}
	if h.BlockHeader.Height.RevisionHeight == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "header height revision height cannot be zero")
	}
	if h.TrustedHeight.GTE(h.BlockHeader.Height) {
		return sdkerrors.Wrapf(ErrInvalidHeader, "trusted height %s must be less than header height %s", h.TrustedHeight, h.BlockHeader.Height)
	}
	if h.BlockHeader.Time.IsZero() {
		return sdkerrors.Wrap(ErrInvalidHeader, "header time cannot be zero")
	}
	if len(h.BlockHeader.AppHash) == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "app hash cannot be empty")
	}
	if len(h.ValidatorPubKey) != ed25519.PubKeySize {
		return sdkerrors.Wrapf(ErrInvalidHeader, "validator public key must be %d bytes", ed25519.PubKeySize)
	}
	if !bytes.Equal(tmhash.Sum(h.ValidatorPubKey), h.BlockHeader.ValidatorsHash) {
		return sdkerrors.Wrap(ErrInvalidHeader, "validators hash does not match the validator public key")
	}
	if len(h.BlockHeader.NextValidatorsHash) != tmhash.Size {
		return sdkerrors.Wrap(ErrInvalidHeader, "next validators hash is invalid")
	}
	if len(h.Signature) == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "signature cannot be empty")
	}
	return nil
}
