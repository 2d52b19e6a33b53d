package ledger

import "donationledger/internal/domain"

// Aggregate sums the raw and net amounts of donations. Addition is
// commutative, so the order of donations does not change the result.
func Aggregate(donations []domain.Donation) (domain.DonationsTotal, error) {
	var total domain.DonationsTotal
	for _, d := range donations {
		raw, err := total.RawAmount.Add(d.RawAmount)
		if err != nil {
			return domain.DonationsTotal{}, err
		}
		net, err := total.NetAmount.Add(d.NetAmount())
		if err != nil {
			return domain.DonationsTotal{}, err
		}
		total = domain.DonationsTotal{RawAmount: raw, NetAmount: net}
	}
	return total, nil
}
