package store

import (
	"context"
	"fmt"

	"donationledger/internal/domain"
	"donationledger/internal/infra"
	"donationledger/internal/sqlinline"
)

const maxSerializationRetries = 5

// PostgresStore keeps values in the ledger_kv table. InTx runs fn in a
// serializable transaction and retries it on serialization conflicts.
type PostgresStore struct {
	sql infra.TxExecutor
}

func NewPostgresStore(sql infra.TxExecutor) *PostgresStore {
	return &PostgresStore{sql: sql}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return get(ctx, s.sql, key)
}

func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	return put(ctx, s.sql, key, value)
}

func (s *PostgresStore) InTx(ctx context.Context, fn func(kv domain.KVStore) error) error {
	var err error
	for attempt := 0; attempt <= maxSerializationRetries; attempt++ {
		err = s.sql.InTx(ctx, func(exec infra.SQLExecutor) error {
			return fn(&postgresTx{sql: exec})
		})
		if !infra.IsSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("store: giving up after %d serialization conflicts: %w", maxSerializationRetries+1, err)
}

type postgresTx struct {
	sql infra.SQLExecutor
}

func (t *postgresTx) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return get(ctx, t.sql, key)
}

func (t *postgresTx) Put(ctx context.Context, key string, value []byte) error {
	return put(ctx, t.sql, key, value)
}

func get(ctx context.Context, sql infra.SQLExecutor, key string) ([]byte, bool, error) {
	var value []byte
	if err := sql.QueryRow(ctx, sqlinline.QSelectKV, key).Scan(&value); err != nil {
		if infra.IsNoRows(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func put(ctx context.Context, sql infra.SQLExecutor, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := sql.Exec(ctx, sqlinline.QUpsertKV, key, value)
	return err
}

var _ domain.TxStore = (*PostgresStore)(nil)
