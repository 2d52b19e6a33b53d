package domain

import "context"

// KVStore is the persistence capability handed to the ledger. Get reports
// whether the key exists.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// TxStore runs fn against a transactional view of the store. Writes made
// through the view are committed only when fn returns nil.
type TxStore interface {
	KVStore
	InTx(ctx context.Context, fn func(kv KVStore) error) error
}
