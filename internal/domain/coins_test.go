package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/holiman/uint256"
)

func mustParse(t *testing.T, s string) CoinBag {
	t.Helper()
	bag, err := ParseCoinBag(s)
	if err != nil {
		t.Fatalf("ParseCoinBag(%q) error: %v", s, err)
	}
	return bag
}

func maxUint256() uint256.Int {
	var max uint256.Int
	max.SetAllOne()
	return max
}

func TestCoinBagAddMergesDenominations(t *testing.T) {
	a := mustParse(t, "100x 7z")
	b := mustParse(t, "50y 1z")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if got, want := sum.String(), "100x 50y 8z"; got != want {
		t.Fatalf("Add = %q, want %q", got, want)
	}
	if got := a.String(); got != "100x 7z" {
		t.Fatalf("Add mutated receiver: %q", got)
	}
}

func TestCoinBagAddEmpty(t *testing.T) {
	a := mustParse(t, "5x")
	var empty CoinBag

	left, err := empty.Add(a)
	if err != nil || !left.Equal(a) {
		t.Fatalf("empty.Add(a) = %v, %v", left, err)
	}
	right, err := a.Add(empty)
	if err != nil || !right.Equal(a) {
		t.Fatalf("a.Add(empty) = %v, %v", right, err)
	}
}

func TestCoinBagAddOverflow(t *testing.T) {
	a, err := NewCoinBag(Coin{Denom: "x", Amount: maxUint256()})
	if err != nil {
		t.Fatalf("NewCoinBag error: %v", err)
	}
	_, err = a.Add(mustParse(t, "1x"))
	if !errors.Is(err, ErrArithmeticOverflow) {
		t.Fatalf("expected ErrArithmeticOverflow, got %v", err)
	}
}

func TestCoinBagSub(t *testing.T) {
	a := mustParse(t, "100x 50y")

	rest, err := a.Sub(mustParse(t, "100x 20y"))
	if err != nil {
		t.Fatalf("Sub error: %v", err)
	}
	if got := rest.String(); got != "30y" {
		t.Fatalf("Sub = %q, want 30y", got)
	}

	for _, s := range []string{"101x", "1z", "1a", "100x 51y"} {
		if _, err := a.Sub(mustParse(t, s)); !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("Sub(%q) expected ErrInsufficientFunds, got %v", s, err)
		}
	}
}

func TestNewCoinBagMergesAndDropsZero(t *testing.T) {
	bag, err := NewCoinBag(NewCoin("y", 2), NewCoin("x", 0), NewCoin("y", 3), NewCoin("a", 1))
	if err != nil {
		t.Fatalf("NewCoinBag error: %v", err)
	}
	if got := bag.String(); got != "1a 5y" {
		t.Fatalf("NewCoinBag = %q, want %q", got, "1a 5y")
	}
	if _, err := NewCoinBag(NewCoin("1x", 1)); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat for bad denom, got %v", err)
	}
}

func TestParseCoinBagCanonicalizes(t *testing.T) {
	bag := mustParse(t, "  50y\t100x \n 0z 007w")
	if got, want := bag.String(), "7w 100x 50y"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	amount := bag.AmountOf("x")
	if amount.Uint64() != 100 {
		t.Fatalf("AmountOf(x) = %s", amount.Dec())
	}
	missing := bag.AmountOf("q")
	if !missing.IsZero() {
		t.Fatalf("AmountOf(q) = %s, want 0", missing.Dec())
	}
}

func TestParseCoinBagErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no amount", input: "x"},
		{name: "no denom", input: "100"},
		{name: "negative", input: "-5x"},
		{name: "decimal", input: "1.5x"},
		{name: "comma separated", input: "1x,2y"},
		{name: "duplicate denom", input: "1x 2x"},
		{name: "denom starts with digit", input: "10 5x"},
		{name: "too large", input: strings.Repeat("9", 80) + "x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCoinBag(tc.input); !errors.Is(err, ErrInvalidFormat) {
				t.Fatalf("ParseCoinBag(%q) expected ErrInvalidFormat, got %v", tc.input, err)
			}
		})
	}
}

func TestCoinBagRoundTrip(t *testing.T) {
	max := maxUint256()
	huge, err := NewCoinBag(Coin{Denom: "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2", Amount: max}, NewCoin("uatom", 1))
	if err != nil {
		t.Fatalf("NewCoinBag error: %v", err)
	}
	bags := []CoinBag{
		{},
		mustParse(t, "1x"),
		mustParse(t, "100x 50y"),
		mustParse(t, "9999cw20 10000ucosm 1a.b:c-d_e"),
		huge,
	}
	for _, b := range bags {
		parsed, err := ParseCoinBag(b.String())
		if err != nil {
			t.Fatalf("ParseCoinBag(%q) error: %v", b.String(), err)
		}
		if !parsed.Equal(b) {
			t.Fatalf("round trip mismatch: %q -> %q", b.String(), parsed.String())
		}
	}
}

func TestCoinBagTextMarshaling(t *testing.T) {
	bag := mustParse(t, "3y 1x")
	text, err := bag.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error: %v", err)
	}
	if string(text) != "1x 3y" {
		t.Fatalf("MarshalText = %q", text)
	}
	var decoded CoinBag
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if !decoded.Equal(bag) {
		t.Fatalf("UnmarshalText = %q, want %q", decoded, bag)
	}
	if err := decoded.UnmarshalText([]byte("bogus")); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}
