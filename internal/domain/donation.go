package domain

// Donation is one immutable ledger record. The net and fee parts are derived
// from RawAmount on demand and never stored.
type Donation struct {
	Donor     Address `json:"donor"`
	RawAmount CoinBag `json:"raw_amount"`
}

// NetAmount is the part of the donation credited to the project.
func (d Donation) NetAmount() CoinBag {
	net, _ := SplitFee(d.RawAmount)
	return net
}

// FeeAmount is the part of the donation sent to the fee collector.
func (d Donation) FeeAmount() CoinBag {
	_, fee := SplitFee(d.RawAmount)
	return fee
}

// DonationsTotal aggregates every donation made to one project.
type DonationsTotal struct {
	RawAmount CoinBag `json:"raw_amount"`
	NetAmount CoinBag `json:"net_amount"`
}
