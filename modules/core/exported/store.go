package exported

import (
	dbm "github.com/tendermint/tm-db"
)

// KVStore is the key/value store every IBC keeper reads and writes. Iterators
// must be closed before the store is written to again.
type KVStore interface {
	Get(key []byte) []byte
	Has(key []byte) bool
	Set(key, value []byte)
	Delete(key []byte)

	// Iterator iterates over the domain [start, end) in ascending key order.
	Iterator(start, end []byte) dbm.Iterator

	// ReverseIterator iterates over the domain [start, end) in descending key order.
	ReverseIterator(start, end []byte) dbm.Iterator
}
