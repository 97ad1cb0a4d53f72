package store

import (
	"fmt"
	"sort"

	"github.com/cosmos/iavl"
	dbm "github.com/tendermint/tm-db"

	commitmenttypes "github.com/cosmos/ibc-handshake/modules/core/23-commitment/types"
	"github.com/cosmos/ibc-handshake/modules/core/exported"
)

var _ exported.KVStore = (*CommitStore)(nil)

// CommitStore is the store a host chain keeps its IBC state in. Reads and ordered
// iteration are served from an in-memory database holding the working state; on
// Commit every key written since the previous commit is mirrored into a versioned
// IAVL tree under the commitment prefix, so that values can be proven against the
// root of any committed version.
type CommitStore struct {
	db     *dbm.MemDB
	tree   *iavl.MutableTree
	prefix []byte

	// keys written since the last commit
	dirty map[string]struct{}

	lastHash    []byte
	lastVersion int64
}

// NewCommitStore returns an empty store committing under the given prefix.
func NewCommitStore(prefix []byte) (*CommitStore, error) {
	if len(prefix) == 0 {
		return nil, fmt.Errorf("commitment prefix cannot be empty")
	}

	tree, err := iavl.NewMutableTree(dbm.NewMemDB(), 0)
	if err != nil {
		return nil, err
	}

	return &CommitStore{
		db:     dbm.NewMemDB(),
		tree:   tree,
		prefix: prefix,
		dirty:  make(map[string]struct{}),
	}, nil
}

// Prefix returns the commitment prefix proofs are taken under.
func (cs *CommitStore) Prefix() []byte {
	return cs.prefix
}

// Get returns the working value at key, nil if it does not exist.
func (cs *CommitStore) Get(key []byte) []byte {
	assertValidKey(key)
	bz, err := cs.db.Get(key)
	if err != nil {
		panic(err)
	}
	return bz
}

// Has returns true if the working state contains key.
func (cs *CommitStore) Has(key []byte) bool {
	assertValidKey(key)
	ok, err := cs.db.Has(key)
	if err != nil {
		panic(err)
	}
	return ok
}

// Set writes value at key in the working state.
func (cs *CommitStore) Set(key, value []byte) {
	assertValidKey(key)
	assertValidValue(value)
	if err := cs.db.Set(key, value); err != nil {
		panic(err)
	}
	cs.dirty[string(key)] = struct{}{}
}

// Delete removes key from the working state.
func (cs *CommitStore) Delete(key []byte) {
	assertValidKey(key)
	if err := cs.db.Delete(key); err != nil {
		panic(err)
	}
	cs.dirty[string(key)] = struct{}{}
}

// Iterator implements exported.KVStore.
func (cs *CommitStore) Iterator(start, end []byte) dbm.Iterator {
	iter, err := cs.db.Iterator(start, end)
	if err != nil {
		panic(err)
	}
	return iter
}

// ReverseIterator implements exported.KVStore.
func (cs *CommitStore) ReverseIterator(start, end []byte) dbm.Iterator {
	iter, err := cs.db.ReverseIterator(start, end)
	if err != nil {
		panic(err)
	}
	return iter
}

// Commit mirrors the keys written since the last commit into the tree and saves a new
// version. It returns the root hash and the version number.
func (cs *CommitStore) Commit() ([]byte, int64, error) {
	keys := make([]string, 0, len(cs.dirty))
	for key := range cs.dirty {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := cs.Get([]byte(key))
		if value == nil {
			cs.tree.Remove(cs.commitmentKey([]byte(key)))
			continue
		}
		cs.tree.Set(cs.commitmentKey([]byte(key)), value)
	}

	hash, version, err := cs.tree.SaveVersion()
	if err != nil {
		return nil, 0, err
	}

	cs.dirty = make(map[string]struct{})
	cs.lastHash = hash
	cs.lastVersion = version

	return hash, version, nil
}

// LastCommitID returns the root hash and version of the latest commit.
func (cs *CommitStore) LastCommitID() ([]byte, int64) {
	return cs.lastHash, cs.lastVersion
}

// QueryProof returns the marshalled ics23 membership proof of the value committed at
// key in the given version.
func (cs *CommitStore) QueryProof(version int64, key []byte) ([]byte, error) {
	assertValidKey(key)

	tree, err := cs.tree.GetImmutable(version)
	if err != nil {
		return nil, fmt.Errorf("version %d is not available: %w", version, err)
	}

	proof, err := tree.GetMembershipProof(cs.commitmentKey(key))
	if err != nil {
		return nil, fmt.Errorf("failed to prove key %s at version %d: %w", key, version, err)
	}

	return commitmenttypes.MarshalProof(proof)
}

// GetCommitted returns the value committed at key in the given version, nil if the key
// was absent in that version.
func (cs *CommitStore) GetCommitted(version int64, key []byte) ([]byte, error) {
	assertValidKey(key)

	if !cs.tree.VersionExists(version) {
		return nil, fmt.Errorf("version %d is not available", version)
	}

	_, value := cs.tree.GetVersioned(cs.commitmentKey(key), version)
	return value, nil
}

// commitmentKey returns the tree key a store key is committed under. It matches the key of
// commitmenttypes.ApplyPrefix(prefix, NewMerklePath(key)).
func (cs *CommitStore) commitmentKey(key []byte) []byte {
	return commitmenttypes.NewMerklePath(string(cs.prefix), string(key)).Key()
}

func assertValidKey(key []byte) {
	if len(key) == 0 {
		panic("key is nil or empty")
	}
}

func assertValidValue(value []byte) {
	if value == nil {
		panic("value is nil")
	}
}
