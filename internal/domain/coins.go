package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/holiman/uint256"
)

var denomRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/:._-]{0,127}$`)

// Coin is a single (denomination, amount) pair.
type Coin struct {
	Denom  string
	Amount uint256.Int
}

// NewCoin builds a coin from a uint64 amount.
func NewCoin(denom string, amount uint64) Coin {
	return Coin{Denom: denom, Amount: *uint256.NewInt(amount)}
}

func (c Coin) String() string {
	return c.Amount.Dec() + c.Denom
}

// CoinBag holds amounts of several denominations. Entries are kept sorted by
// denomination, at most one per denomination, and never with a zero amount, so
// the zero value is the empty bag. A CoinBag is immutable: Add and Sub return
// a new bag.
type CoinBag struct {
	coins []Coin
}

// NewCoinBag validates the denominations of coins and merges them into a bag.
// Repeated denominations are summed.
func NewCoinBag(coins ...Coin) (CoinBag, error) {
	var bag CoinBag
	for _, c := range coins {
		if !denomRegexp.MatchString(c.Denom) {
			return CoinBag{}, fmt.Errorf("%w: invalid denomination %q", ErrInvalidFormat, c.Denom)
		}
		if c.Amount.IsZero() {
			continue
		}
		var err error
		bag, err = bag.Add(CoinBag{coins: []Coin{c}})
		if err != nil {
			return CoinBag{}, err
		}
	}
	return bag, nil
}

// Coins returns a copy of the entries in denomination order.
func (b CoinBag) Coins() []Coin {
	out := make([]Coin, len(b.coins))
	copy(out, b.coins)
	return out
}

// Len returns the number of denominations held.
func (b CoinBag) Len() int {
	return len(b.coins)
}

// IsZero reports whether the bag holds nothing.
func (b CoinBag) IsZero() bool {
	return len(b.coins) == 0
}

// AmountOf returns the amount held for denom, zero when absent.
func (b CoinBag) AmountOf(denom string) uint256.Int {
	i := sort.Search(len(b.coins), func(i int) bool { return b.coins[i].Denom >= denom })
	if i < len(b.coins) && b.coins[i].Denom == denom {
		return b.coins[i].Amount
	}
	return uint256.Int{}
}

// Equal reports whether both bags hold the same amounts.
func (b CoinBag) Equal(other CoinBag) bool {
	if len(b.coins) != len(other.coins) {
		return false
	}
	for i := range b.coins {
		if b.coins[i] != other.coins[i] {
			return false
		}
	}
	return true
}

// Add returns the sum of b and other. Matching denominations are summed,
// distinct ones are kept. Fails with ErrArithmeticOverflow instead of wrapping.
func (b CoinBag) Add(other CoinBag) (CoinBag, error) {
	if other.IsZero() {
		return b, nil
	}
	if b.IsZero() {
		return other, nil
	}
	merged := make([]Coin, 0, len(b.coins)+len(other.coins))
	i, j := 0, 0
	for i < len(b.coins) && j < len(other.coins) {
		left, right := b.coins[i], other.coins[j]
		switch {
		case left.Denom < right.Denom:
			merged = append(merged, left)
			i++
		case left.Denom > right.Denom:
			merged = append(merged, right)
			j++
		default:
			var sum uint256.Int
			if _, overflow := sum.AddOverflow(&left.Amount, &right.Amount); overflow {
				return CoinBag{}, fmt.Errorf("%w: adding %s to %s", ErrArithmeticOverflow, right, left)
			}
			merged = append(merged, Coin{Denom: left.Denom, Amount: sum})
			i++
			j++
		}
	}
	merged = append(merged, b.coins[i:]...)
	merged = append(merged, other.coins[j:]...)
	return CoinBag{coins: merged}, nil
}

// Sub returns b minus other. Every denomination of other must be covered by b,
// otherwise it fails with ErrInsufficientFunds.
func (b CoinBag) Sub(other CoinBag) (CoinBag, error) {
	if other.IsZero() {
		return b, nil
	}
	out := make([]Coin, 0, len(b.coins))
	j := 0
	for _, c := range b.coins {
		if j < len(other.coins) && other.coins[j].Denom < c.Denom {
			return CoinBag{}, fmt.Errorf("%w: missing %s", ErrInsufficientFunds, other.coins[j])
		}
		if j < len(other.coins) && other.coins[j].Denom == c.Denom {
			sub := other.coins[j]
			j++
			if c.Amount.Lt(&sub.Amount) {
				return CoinBag{}, fmt.Errorf("%w: have %s, need %s", ErrInsufficientFunds, c, sub)
			}
			var rest uint256.Int
			rest.Sub(&c.Amount, &sub.Amount)
			if !rest.IsZero() {
				out = append(out, Coin{Denom: c.Denom, Amount: rest})
			}
			continue
		}
		out = append(out, c)
	}
	if j < len(other.coins) {
		return CoinBag{}, fmt.Errorf("%w: missing %s", ErrInsufficientFunds, other.coins[j])
	}
	return CoinBag{coins: out}, nil
}

// String returns the canonical encoding: "<amount><denom>" tokens sorted by
// denomination and separated by one space. The empty bag encodes as "".
func (b CoinBag) String() string {
	tokens := make([]string, len(b.coins))
	for i, c := range b.coins {
		tokens[i] = c.String()
	}
	return strings.Join(tokens, " ")
}

// ParseCoinBag decodes a whitespace separated list of "<amount><denom>"
// tokens. Token order is free; a denomination may appear only once. The
// result round-trips through String.
func ParseCoinBag(s string) (CoinBag, error) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return CoinBag{}, nil
	}
	coins := make([]Coin, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		c, err := parseCoin(tok)
		if err != nil {
			return CoinBag{}, err
		}
		if _, dup := seen[c.Denom]; dup {
			return CoinBag{}, fmt.Errorf("%w: duplicate denomination %q", ErrInvalidFormat, c.Denom)
		}
		seen[c.Denom] = struct{}{}
		if !c.Amount.IsZero() {
			coins = append(coins, c)
		}
	}
	sort.Slice(coins, func(i, j int) bool { return coins[i].Denom < coins[j].Denom })
	return CoinBag{coins: coins}, nil
}

func parseCoin(tok string) (Coin, error) {
	split := strings.IndexFunc(tok, func(r rune) bool { return r < '0' || r > '9' })
	if split <= 0 {
		return Coin{}, fmt.Errorf("%w: token %q has no amount", ErrInvalidFormat, tok)
	}
	digits, denom := tok[:split], tok[split:]
	if !denomRegexp.MatchString(denom) {
		return Coin{}, fmt.Errorf("%w: invalid denomination in %q", ErrInvalidFormat, tok)
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	var amount uint256.Int
	if err := amount.SetFromDecimal(digits); err != nil {
		return Coin{}, fmt.Errorf("%w: amount in %q: %v", ErrInvalidFormat, tok, err)
	}
	return Coin{Denom: denom, Amount: amount}, nil
}

func (b CoinBag) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *CoinBag) UnmarshalText(text []byte) error {
	parsed, err := ParseCoinBag(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
