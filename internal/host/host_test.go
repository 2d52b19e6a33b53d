package host

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"donationledger/internal/bank"
	"donationledger/internal/contract"
	"donationledger/internal/domain"
	"donationledger/internal/infra"
	"donationledger/internal/store"
)

const (
	contractAddr  = domain.Address("donation-contract")
	ownerAddr     = domain.Address("owner")
	collectorAddr = domain.Address("fee-collector")
	projectAddr   = domain.Address("project-p")
	donorAddr     = domain.Address("donor-d")
)

func funds(t *testing.T, s string) domain.CoinBag {
	t.Helper()
	b, err := domain.ParseCoinBag(s)
	if err != nil {
		t.Fatalf("ParseCoinBag(%q): %v", s, err)
	}
	return b
}

func newHost(t *testing.T, instantiate bool) (*Host, *store.MemoryStore) {
	t.Helper()
	kv := store.NewMemoryStore()
	h := New(kv, contractAddr, zerolog.Nop(), infra.NewMetrics(prometheus.NewRegistry()))
	if instantiate {
		msg := contract.InstantiateMsg{Owner: ownerAddr, FeeCollector: collectorAddr}
		if _, err := h.Instantiate(context.Background(), ownerAddr, msg); err != nil {
			t.Fatalf("Instantiate error: %v", err)
		}
	}
	return h, kv
}

func assertBalance(t *testing.T, h *Host, addr domain.Address, want string) {
	t.Helper()
	got, err := h.Balance(context.Background(), addr)
	if err != nil {
		t.Fatalf("Balance(%s) error: %v", addr, err)
	}
	if got.String() != want {
		t.Fatalf("balance of %s = %q, want %q", addr, got, want)
	}
}

func TestDonateMovesFunds(t *testing.T) {
	ctx := context.Background()
	h, _ := newHost(t, true)

	resp, err := h.Donate(ctx, donorAddr, projectAddr, funds(t, "10000x"))
	if err != nil {
		t.Fatalf("Donate error: %v", err)
	}
	if len(resp.Transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %+v", resp.Transfers)
	}
	assertBalance(t, h, projectAddr, "9500x")
	assertBalance(t, h, collectorAddr, "500x")
	assertBalance(t, h, contractAddr, "")

	if _, err := h.Donate(ctx, donorAddr, projectAddr, funds(t, "100x 50y")); err != nil {
		t.Fatalf("Donate error: %v", err)
	}
	assertBalance(t, h, projectAddr, "9590x 45y")
	assertBalance(t, h, collectorAddr, "510x 5y")

	total, err := h.DonationsSentToProject(ctx, projectAddr)
	if err != nil {
		t.Fatalf("DonationsSentToProject error: %v", err)
	}
	if total.RawAmount.String() != "10100x 50y" || total.NetAmount.String() != "9590x 45y" {
		t.Fatalf("unexpected totals: raw=%s net=%s", total.RawAmount, total.NetAmount)
	}
	donations, err := h.Donations(ctx, projectAddr)
	if err != nil || len(donations) != 2 {
		t.Fatalf("Donations = %+v, %v", donations, err)
	}
}

func TestFailedDonationLeavesNoTrace(t *testing.T) {
	ctx := context.Background()

	h, _ := newHost(t, false)
	_, err := h.Donate(ctx, donorAddr, projectAddr, funds(t, "10000x"))
	if !errors.Is(err, domain.ErrStorageNotFound) {
		t.Fatalf("expected ErrStorageNotFound, got %v", err)
	}
	assertBalance(t, h, contractAddr, "")
	assertBalance(t, h, projectAddr, "")

	h, _ = newHost(t, true)
	if _, err := h.Donate(ctx, donorAddr, projectAddr, domain.CoinBag{}); !errors.Is(err, domain.ErrNoFundsProvided) {
		t.Fatalf("expected ErrNoFundsProvided, got %v", err)
	}
}

func TestDonationOverflowRollsBack(t *testing.T) {
	ctx := context.Background()
	h, kv := newHost(t, true)

	var top domain.Coin
	top.Denom = "x"
	top.Amount.SetAllOne()
	full, err := domain.NewCoinBag(top)
	if err != nil {
		t.Fatalf("NewCoinBag error: %v", err)
	}
	if err := bank.NewKeeper(kv).Deposit(ctx, projectAddr, full); err != nil {
		t.Fatalf("Deposit error: %v", err)
	}

	_, err = h.Donate(ctx, donorAddr, projectAddr, funds(t, "20000x"))
	if !errors.Is(err, domain.ErrArithmeticOverflow) {
		t.Fatalf("expected ErrArithmeticOverflow, got %v", err)
	}
	assertBalance(t, h, projectAddr, full.String())
	assertBalance(t, h, contractAddr, "")
	donations, err := h.Donations(ctx, projectAddr)
	if err != nil {
		t.Fatalf("Donations error: %v", err)
	}
	if len(donations) != 0 {
		t.Fatalf("rolled back donation is visible: %+v", donations)
	}
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	h, kv := newHost(t, true)
	if err := bank.NewKeeper(kv).Deposit(ctx, contractAddr, funds(t, "300x 7y")); err != nil {
		t.Fatalf("Deposit error: %v", err)
	}

	if _, err := h.Withdraw(ctx, donorAddr); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	assertBalance(t, h, contractAddr, "300x 7y")
	assertBalance(t, h, donorAddr, "")

	resp, err := h.Withdraw(ctx, ownerAddr)
	if err != nil {
		t.Fatalf("Withdraw error: %v", err)
	}
	if len(resp.Transfers) != 1 {
		t.Fatalf("expected 1 transfer, got %+v", resp.Transfers)
	}
	assertBalance(t, h, contractAddr, "")
	assertBalance(t, h, ownerAddr, "300x 7y")
}

func TestInstantiateOnce(t *testing.T) {
	h, _ := newHost(t, true)
	_, err := h.Instantiate(context.Background(), donorAddr, contract.InstantiateMsg{})
	if !errors.Is(err, domain.ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestQuery(t *testing.T) {
	h, _ := newHost(t, true)
	got, err := h.Query(context.Background(), contract.QueryMsg{ValueIncremented: &contract.ValueIncrementedMsg{Value: "99"}})
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if v, ok := got.(contract.ValueResp); !ok || v.Value != "100" {
		t.Fatalf("Query result = %#v", got)
	}
}

func TestDonateToPaddedProjectIsRejected(t *testing.T) {
	ctx := context.Background()
	h, _ := newHost(t, true)

	_, err := h.Donate(ctx, donorAddr, " project-p\t", funds(t, "100x"))
	if !errors.Is(err, domain.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
	assertBalance(t, h, contractAddr, "")
	assertBalance(t, h, " project-p\t", "")
}
