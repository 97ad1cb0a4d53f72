package types

import (
	"bytes"
	"fmt"
	"strings"

	ics23 "github.com/confio/ics23/go"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/gogo/protobuf/proto"
)

// DefaultPrefix is the commitment prefix every host chain stores IBC state under.
const DefaultPrefix = "ibc"

// GetSDKSpecs is a getter function for the proofspecs of the host store
func GetSDKSpecs() []*ics23.ProofSpec {
	return []*ics23.ProofSpec{ics23.IavlSpec}
}

// MerkleRoot defines a merkle root hash.
type MerkleRoot struct {
	Hash []byte `json:"hash"`
}

// NewMerkleRoot constructs a new MerkleRoot
func NewMerkleRoot(hash []byte) MerkleRoot {
	return MerkleRoot{
		Hash: hash,
	}
}

// GetHash implements RootI interface
func (mr MerkleRoot) GetHash() []byte {
	return mr.Hash
}

// Empty returns true if the root is empty
func (mr MerkleRoot) Empty() bool {
	return len(mr.GetHash()) == 0
}

// Equal returns true if both roots commit to the same hash.
func (mr MerkleRoot) Equal(other MerkleRoot) bool {
	return bytes.Equal(mr.Hash, other.Hash)
}

// MerklePrefix is merkle path prefixed to the key.
// The constructed key from the Path and the key will be append(Path.KeyPath, append(Path.KeyPrefix, key...))
type MerklePrefix struct {
	KeyPrefix []byte `json:"key_prefix"`
}

// NewMerklePrefix constructs new MerklePrefix instance
func NewMerklePrefix(keyPrefix []byte) MerklePrefix {
	return MerklePrefix{
		KeyPrefix: keyPrefix,
	}
}

// Bytes returns the key prefix bytes
func (mp MerklePrefix) Bytes() []byte {
	return mp.KeyPrefix
}

// Empty returns true if the prefix is empty
func (mp MerklePrefix) Empty() bool {
	return len(mp.Bytes()) == 0
}

// MerklePath is the path used to verify commitment proofs, which can be an
// arbitrary structured object (defined by a commitment type).
// MerklePath is represented from root-to-leaf
type MerklePath struct {
	KeyPath []string `json:"key_path"`
}

// NewMerklePath creates a new MerklePath instance
// The keys must be passed in from root-to-leaf order
func NewMerklePath(keyPath ...string) MerklePath {
	return MerklePath{
		KeyPath: keyPath,
	}
}

// String implements fmt.Stringer.
func (mp MerklePath) String() string {
	return "/" + strings.Join(mp.KeyPath, "/")
}

// Key returns the store key the path resolves to in the counterparty commitment store.
func (mp MerklePath) Key() []byte {
	return []byte(strings.Join(mp.KeyPath, "/"))
}

// Empty returns true if the path is empty
func (mp MerklePath) Empty() bool {
	return len(mp.KeyPath) == 0
}

// ApplyPrefix constructs a new commitment path from the arguments. It prepends the prefix key
// with the given path.
func ApplyPrefix(prefix MerklePrefix, path MerklePath) (MerklePath, error) {
	if prefix.Empty() {
		return MerklePath{}, sdkerrors.Wrap(ErrInvalidPrefix, "prefix can't be empty")
	}
	if path.Empty() {
		return MerklePath{}, sdkerrors.Wrap(ErrInvalidPrefix, "path can't be empty")
	}
	return NewMerklePath(append([]string{string(prefix.KeyPrefix)}, path.KeyPath...)...), nil
}

// VerifyMembership verifies the membership of a merkle proof against the given root, path, and value.
// The proof bytes are a marshalled ics23 CommitmentProof produced by the host commitment store.
func VerifyMembership(root MerkleRoot, proof []byte, path MerklePath, value []byte) error {
	if root.Empty() {
		return sdkerrors.Wrap(ErrInvalidMerkleProof, "root cannot be empty")
	}
	if path.Empty() {
		return sdkerrors.Wrap(ErrInvalidMerkleProof, "path cannot be empty")
	}
	if len(value) == 0 {
		return sdkerrors.Wrap(ErrInvalidMerkleProof, "empty value in membership proof")
	}

	commitmentProof, err := UnmarshalProof(proof)
	if err != nil {
		return err
	}

	if !ics23.VerifyMembership(ics23.IavlSpec, root.GetHash(), commitmentProof, path.Key(), value) {
		return sdkerrors.Wrapf(ErrInvalidProof, "failed to verify membership proof for path %s", path)
	}

	return nil
}

// MarshalProof encodes an ics23 commitment proof into the opaque bytes carried by messages.
func MarshalProof(proof *ics23.CommitmentProof) ([]byte, error) {
	if proof == nil {
		return nil, sdkerrors.Wrap(ErrInvalidProof, "proof cannot be nil")
	}
	return proto.Marshal(proof)
}

// UnmarshalProof decodes the opaque proof bytes carried by messages.
func UnmarshalProof(bz []byte) (*ics23.CommitmentProof, error) {
	if len(bz) == 0 {
		return nil, sdkerrors.Wrap(ErrInvalidProof, "proof cannot be empty")
	}

	var proof ics23.CommitmentProof
	if err := proto.Unmarshal(bz, &proof); err != nil {
		return nil, sdkerrors.Wrap(ErrInvalidProof, fmt.Sprintf("failed to unmarshal proof: %v", err))
	}
	return &proof, nil
}
