package domain

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
)

func TestFeeTiers(t *testing.T) {
	tests := []struct {
		amount uint64
		fee    uint64
	}{
		{amount: 0, fee: 0},
		{amount: 9, fee: 0},
		{amount: 10, fee: 1},
		{amount: 19, fee: 1},
		{amount: 100, fee: 10},
		{amount: 9_999, fee: 999},
		{amount: 10_000, fee: 500},
		{amount: 10_019, fee: 500},
		{amount: 100_000, fee: 5_000},
	}
	for _, tc := range tests {
		fee := Fee(*uint256.NewInt(tc.amount))
		if fee.Uint64() != tc.fee {
			t.Fatalf("Fee(%d) = %s, want %d", tc.amount, fee.Dec(), tc.fee)
		}
	}
}

func TestFeeAndNetSumToAmount(t *testing.T) {
	check := func(amount uint256.Int) {
		t.Helper()
		fee := Fee(amount)
		net := Net(amount)
		if fee.Gt(&amount) {
			t.Fatalf("Fee(%s) = %s exceeds amount", amount.Dec(), fee.Dec())
		}
		var sum uint256.Int
		if _, overflow := sum.AddOverflow(&fee, &net); overflow || !sum.Eq(&amount) {
			t.Fatalf("Fee(%s) + Net = %s", amount.Dec(), sum.Dec())
		}
	}
	for a := uint64(0); a <= 25_000; a++ {
		check(*uint256.NewInt(a))
	}
	check(maxUint256())
}

func TestSplitFeePerDenomination(t *testing.T) {
	raw := mustParse(t, "100x 50y 10000z 5w")
	net, fee := SplitFee(raw)
	if got, want := net.String(), "5w 90x 45y 9500z"; got != want {
		t.Fatalf("net = %q, want %q", got, want)
	}
	if got, want := fee.String(), "10x 5y 500z"; got != want {
		t.Fatalf("fee = %q, want %q", got, want)
	}
	sum, err := net.Add(fee)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if !sum.Equal(raw) {
		t.Fatalf("net + fee = %q, want %q", sum, raw)
	}
}

func TestDonationDerivedAmounts(t *testing.T) {
	d := Donation{Donor: "donor", RawAmount: mustParse(t, "10000x")}
	if got := d.NetAmount().String(); got != "9500x" {
		t.Fatalf("NetAmount = %q", got)
	}
	if got := d.FeeAmount().String(); got != "500x" {
		t.Fatalf("FeeAmount = %q", got)
	}
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("  cosmwasm1abc ")
	if err != nil || addr != "cosmwasm1abc" {
		t.Fatalf("ParseAddress = %q, %v", addr, err)
	}
	for _, s := range []string{"", "   ", "a b"} {
		if _, err := ParseAddress(s); err == nil {
			t.Fatalf("ParseAddress(%q) expected error", s)
		}
	}
}

func TestValidateAddress(t *testing.T) {
	if err := ValidateAddress("cosmwasm1abc"); err != nil {
		t.Fatalf("ValidateAddress rejected a canonical address: %v", err)
	}
	for _, a := range []Address{"", " cosmwasm1abc", "cosmwasm1abc\t", "a b"} {
		if err := ValidateAddress(a); !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("ValidateAddress(%q) = %v, want ErrInvalidAddress", a, err)
		}
	}
}
