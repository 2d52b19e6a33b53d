package contract

import "donationledger/internal/domain"

// Response is what an execution hands back to the host: event attributes and
// the transfers to perform from the contract balance.
type Response struct {
	Attributes []domain.Attribute `json:"attributes"`
	Transfers  []domain.Transfer  `json:"transfers"`
}

func (r *Response) addAttribute(key, value string) {
	r.Attributes = append(r.Attributes, domain.Attribute{Key: key, Value: value})
}

// addTransfer skips empty amounts, a bank cannot send nothing.
func (r *Response) addTransfer(to domain.Address, amount domain.CoinBag) {
	if amount.IsZero() {
		return
	}
	r.Transfers = append(r.Transfers, domain.Transfer{To: to, Amount: amount})
}

// Attribute returns the value of the first attribute named key.
func (r Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
