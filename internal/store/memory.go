package store

import (
	"context"
	"sync"

	"donationledger/internal/domain"
)

// MemoryStore keeps values in process memory. Transactions hold the store
// lock for their whole duration, so invocations run one after another.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
	// persist, when set, receives the full state before a commit becomes
	// visible. A persist error aborts the commit.
	persist func(data map[string][]byte) error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return clone(v), ok, nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(map[string][]byte{key: clone(value)})
}

// InTx buffers the writes of fn and applies them only if fn succeeds.
func (s *MemoryStore) InTx(ctx context.Context, fn func(kv domain.KVStore) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{base: s.data, writes: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	return s.apply(tx.writes)
}

// apply must be called with s.mu held.
func (s *MemoryStore) apply(writes map[string][]byte) error {
	if s.persist == nil {
		for k, v := range writes {
			s.data[k] = v
		}
		return nil
	}
	next := make(map[string][]byte, len(s.data)+len(writes))
	for k, v := range s.data {
		next[k] = v
	}
	for k, v := range writes {
		next[k] = v
	}
	if err := s.persist(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

type memoryTx struct {
	base   map[string][]byte
	writes map[string][]byte
}

func (t *memoryTx) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if v, ok := t.writes[key]; ok {
		return clone(v), true, nil
	}
	v, ok := t.base[key]
	return clone(v), ok, nil
}

func (t *memoryTx) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.writes[key] = clone(value)
	return nil
}

func clone(v []byte) []byte {
	if v == nil {
		return nil
	}
	return append([]byte(nil), v...)
}

var _ domain.TxStore = (*MemoryStore)(nil)
