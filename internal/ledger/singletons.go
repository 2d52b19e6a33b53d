package ledger

import (
	"context"
	"fmt"

	"donationledger/internal/domain"
)

const (
	ownerKey        = "owner"
	feeCollectorKey = "fee_collector"
)

// Initialize stores the owner and the fee collector. It may run only once.
func Initialize(ctx context.Context, kv domain.KVStore, owner, feeCollector domain.Address) error {
	for _, key := range []string{ownerKey, feeCollectorKey} {
		_, ok, err := kv.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("load %s: %w", key, err)
		}
		if ok {
			return fmt.Errorf("%w: %s is already set", domain.ErrAlreadyInitialized, key)
		}
	}
	if err := kv.Put(ctx, ownerKey, []byte(owner)); err != nil {
		return fmt.Errorf("save owner: %w", err)
	}
	if err := kv.Put(ctx, feeCollectorKey, []byte(feeCollector)); err != nil {
		return fmt.Errorf("save fee collector: %w", err)
	}
	return nil
}

// Owner returns the address allowed to withdraw.
func Owner(ctx context.Context, kv domain.KVStore) (domain.Address, error) {
	return loadAddress(ctx, kv, ownerKey)
}

// FeeCollector returns the address receiving donation fees.
func FeeCollector(ctx context.Context, kv domain.KVStore) (domain.Address, error) {
	return loadAddress(ctx, kv, feeCollectorKey)
}

func loadAddress(ctx context.Context, kv domain.KVStore, key string) (domain.Address, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrStorageNotFound, key)
	}
	return domain.Address(raw), nil
}
