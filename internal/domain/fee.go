package domain

import "github.com/holiman/uint256"

// FeeTierThreshold is the amount from which the reduced fee rate applies.
const FeeTierThreshold = 10_000

var (
	feeTierThreshold = uint256.NewInt(FeeTierThreshold)
	smallFeeDivisor  = uint256.NewInt(10) // 10%
	largeFeeDivisor  = uint256.NewInt(20) // 5%
)

// Fee returns the platform fee for a single denomination amount: 10% below
// FeeTierThreshold, 5% from it on. Integer division truncates, so rounding
// favors the donor.
func Fee(amount uint256.Int) uint256.Int {
	var fee uint256.Int
	if amount.Lt(feeTierThreshold) {
		fee.Div(&amount, smallFeeDivisor)
	} else {
		fee.Div(&amount, largeFeeDivisor)
	}
	return fee
}

// Net returns amount minus Fee(amount). Net(a) + Fee(a) == a for every a.
func Net(amount uint256.Int) uint256.Int {
	fee := Fee(amount)
	var net uint256.Int
	net.Sub(&amount, &fee)
	return net
}

// SplitFee applies the fee schedule to each denomination of raw on its own
// and returns the net and fee parts. net + fee == raw.
func SplitFee(raw CoinBag) (net CoinBag, fee CoinBag) {
	netCoins := make([]Coin, 0, len(raw.coins))
	feeCoins := make([]Coin, 0, len(raw.coins))
	for _, c := range raw.coins {
		f := Fee(c.Amount)
		n := Net(c.Amount)
		if !n.IsZero() {
			netCoins = append(netCoins, Coin{Denom: c.Denom, Amount: n})
		}
		if !f.IsZero() {
			feeCoins = append(feeCoins, Coin{Denom: c.Denom, Amount: f})
		}
	}
	return CoinBag{coins: netCoins}, CoinBag{coins: feeCoins}
}
