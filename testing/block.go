package ibctesting

import (
	"time"

	"github.com/tendermint/tendermint/crypto/ed25519"
	"github.com/tendermint/tendermint/crypto/tmhash"

	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
)

// Block is a committed block of a TestChain together with its validator's signature.
type Block struct {
	Header    clienttypes.BlockHeader
	Signature []byte
	PubKey    ed25519.PubKey
}

// newBlock builds and signs the block committing appHash at the given height and time.
func newBlock(chainID string, height clienttypes.Height, timestamp time.Time, appHash []byte, privKey ed25519.PrivKey) (Block, error) {
	pubKey := privKey.PubKey().(ed25519.PubKey)
	valHash := tmhash.Sum(pubKey)

	header := clienttypes.BlockHeader{
		ChainID:            chainID,
		Height:             height,
		Time:               timestamp,
		AppHash:            appHash,
		ValidatorsHash:     valHash,
		NextValidatorsHash: valHash,
	}

	signBytes, err := header.SignBytes()
	if err != nil {
		return Block{}, err
	}
	signature, err := privKey.Sign(signBytes)
	if err != nil {
		return Block{}, err
	}

	return Block{
		Header:    header,
		Signature: signature,
		PubKey:    pubKey,
	}, nil
}

func (b Block) Height() clienttypes.Height {
	return b.Header.Height
}

func (b Block) Time() time.Time {
	return b.Header.Time
}

// ConsensusState returns the consensus state a light client stores for this block.
func (b Block) ConsensusState() *clienttypes.ConsensusState {
	return clienttypes.NewConsensusState(
		b.Header.Time,
		commitmenttypes.NewMerkleRoot(b.Header.AppHash),
		b.Header.NextValidatorsHash,
	)
}

// ToHeader returns the update header for this block, to be verified against the
// consensus state the client stores at trustedHeight.
func (b Block) ToHeader(trustedHeight clienttypes.Height) *clienttypes.Header {
	return &clienttypes.Header{
		BlockHeader:     b.Header,
		Signature:       b.Signature,
		ValidatorPubKey: b.PubKey,
		TrustedHeight:   trustedHeight,
	}
}
