package bank

import (
	"context"
	"fmt"

	"donationledger/internal/domain"
)

const balancesPrefix = "balances/"

// Keeper tracks the balance of every address in the KV store and executes
// transfer instructions between them.
type Keeper struct {
	kv domain.KVStore
}

func NewKeeper(kv domain.KVStore) *Keeper {
	return &Keeper{kv: kv}
}

func balanceKey(addr domain.Address) string {
	return balancesPrefix + string(addr)
}

// Balance returns the funds held by addr across all denominations.
func (k *Keeper) Balance(ctx context.Context, addr domain.Address) (domain.CoinBag, error) {
	raw, ok, err := k.kv.Get(ctx, balanceKey(addr))
	if err != nil {
		return domain.CoinBag{}, fmt.Errorf("load balance of %s: %w", addr, err)
	}
	if !ok {
		return domain.CoinBag{}, nil
	}
	bag, err := domain.ParseCoinBag(string(raw))
	if err != nil {
		return domain.CoinBag{}, fmt.Errorf("decode balance of %s: %w", addr, err)
	}
	return bag, nil
}

// Deposit credits funds arriving from outside the ledger to addr.
func (k *Keeper) Deposit(ctx context.Context, addr domain.Address, amount domain.CoinBag) error {
	balance, err := k.Balance(ctx, addr)
	if err != nil {
		return err
	}
	balance, err = balance.Add(amount)
	if err != nil {
		return err
	}
	return k.setBalance(ctx, addr, balance)
}

// Send moves amount from one address to another.
func (k *Keeper) Send(ctx context.Context, from, to domain.Address, amount domain.CoinBag) error {
	if amount.IsZero() {
		return nil
	}
	fromBalance, err := k.Balance(ctx, from)
	if err != nil {
		return err
	}
	fromBalance, err = fromBalance.Sub(amount)
	if err != nil {
		return fmt.Errorf("send from %s: %w", from, err)
	}
	if err := k.setBalance(ctx, from, fromBalance); err != nil {
		return err
	}
	return k.Deposit(ctx, to, amount)
}

// Apply executes transfers from the contract address in order.
func (k *Keeper) Apply(ctx context.Context, from domain.Address, transfers []domain.Transfer) error {
	for _, tr := range transfers {
		if err := k.Send(ctx, from, tr.To, tr.Amount); err != nil {
			return err
		}
	}
	return nil
}

func (k *Keeper) setBalance(ctx context.Context, addr domain.Address, balance domain.CoinBag) error {
	if err := k.kv.Put(ctx, balanceKey(addr), []byte(balance.String())); err != nil {
		return fmt.Errorf("save balance of %s: %w", addr, err)
	}
	return nil
}
