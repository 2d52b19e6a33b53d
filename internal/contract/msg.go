package contract

import (
	"fmt"

	"donationledger/internal/domain"
)

// InstantiateMsg sets the singletons. Empty fields default to the sender.
type InstantiateMsg struct {
	Owner        domain.Address `json:"owner,omitempty"`
	FeeCollector domain.Address `json:"fee_collector,omitempty"`
}

// ExecMsg is a state-changing request. Exactly one variant must be set.
type ExecMsg struct {
	Donate   *DonateMsg   `json:"donate,omitempty"`
	Withdraw *WithdrawMsg `json:"withdraw,omitempty"`
}

type DonateMsg struct {
	ProjectAddress domain.Address `json:"project_address"`
}

type WithdrawMsg struct{}

// QueryMsg is a read-only request. Exactly one variant must be set.
type QueryMsg struct {
	ValueIncremented       *ValueIncrementedMsg       `json:"value_incremented,omitempty"`
	DonationsSentToProject *DonationsSentToProjectMsg `json:"donations_sent_to_project,omitempty"`
}

// ValueIncrementedMsg carries a decimal unsigned integer.
type ValueIncrementedMsg struct {
	Value string `json:"value"`
}

type DonationsSentToProjectMsg struct {
	ProjectAddress domain.Address `json:"project_address"`
}

type ValueResp struct {
	Value string `json:"value"`
}

func (m ExecMsg) validate() error {
	n := 0
	if m.Donate != nil {
		n++
	}
	if m.Withdraw != nil {
		n++
	}
	if n != 1 {
		return fmt.Errorf("%w: exec message must set exactly one variant, got %d", domain.ErrInvalidFormat, n)
	}
	return nil
}

func (m QueryMsg) validate() error {
	n := 0
	if m.ValueIncremented != nil {
		n++
	}
	if m.DonationsSentToProject != nil {
		n++
	}
	if n != 1 {
		return fmt.Errorf("%w: query message must set exactly one variant, got %d", domain.ErrInvalidFormat, n)
	}
	return nil
}
