package bank

import (
	"context"
	"errors"
	"testing"

	"donationledger/internal/domain"
	"donationledger/internal/store"
)

func bag(t *testing.T, s string) domain.CoinBag {
	t.Helper()
	b, err := domain.ParseCoinBag(s)
	if err != nil {
		t.Fatalf("ParseCoinBag(%q): %v", s, err)
	}
	return b
}

func TestKeeperDepositAndSend(t *testing.T) {
	ctx := context.Background()
	k := NewKeeper(store.NewMemoryStore())

	if err := k.Deposit(ctx, "contract", bag(t, "100x 50y")); err != nil {
		t.Fatalf("Deposit error: %v", err)
	}
	if err := k.Send(ctx, "contract", "project", bag(t, "90x 45y")); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	contract, err := k.Balance(ctx, "contract")
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if got := contract.String(); got != "10x 5y" {
		t.Fatalf("contract balance = %q", got)
	}
	project, _ := k.Balance(ctx, "project")
	if got := project.String(); got != "90x 45y" {
		t.Fatalf("project balance = %q", got)
	}
}

func TestKeeperSendInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	k := NewKeeper(store.NewMemoryStore())
	if err := k.Deposit(ctx, "a", bag(t, "5x")); err != nil {
		t.Fatalf("Deposit error: %v", err)
	}

	err := k.Send(ctx, "a", "b", bag(t, "6x"))
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	a, _ := k.Balance(ctx, "a")
	if got := a.String(); got != "5x" {
		t.Fatalf("balance changed after failed send: %q", got)
	}
}

func TestKeeperUnknownAddressHasEmptyBalance(t *testing.T) {
	k := NewKeeper(store.NewMemoryStore())
	balance, err := k.Balance(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if !balance.IsZero() {
		t.Fatalf("expected empty balance, got %q", balance)
	}
}

func TestKeeperApplyTransfers(t *testing.T) {
	ctx := context.Background()
	k := NewKeeper(store.NewMemoryStore())
	if err := k.Deposit(ctx, "contract", bag(t, "10000x")); err != nil {
		t.Fatalf("Deposit error: %v", err)
	}
	transfers := []domain.Transfer{
		{To: "project", Amount: bag(t, "9500x")},
		{To: "collector", Amount: bag(t, "500x")},
	}
	if err := k.Apply(ctx, "contract", transfers); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	for addr, want := range map[domain.Address]string{"contract": "", "project": "9500x", "collector": "500x"} {
		got, _ := k.Balance(ctx, addr)
		if got.String() != want {
			t.Fatalf("balance of %s = %q, want %q", addr, got, want)
		}
	}
}
