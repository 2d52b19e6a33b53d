package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"donationledger/internal/domain"
)

const donationsPrefix = "donations/"

// Ledger maps each project to the append-only list of donations it received.
type Ledger struct {
	kv domain.KVStore
}

// New creates a ledger backed by kv.
func New(kv domain.KVStore) *Ledger {
	return &Ledger{kv: kv}
}

func donationsKey(project domain.Address) string {
	return donationsPrefix + string(project)
}

// RecordDonation appends a donation of raw from donor to the list of project.
// The whole list is read, extended and written back as one value.
func (l *Ledger) RecordDonation(ctx context.Context, project, donor domain.Address, raw domain.CoinBag) (domain.Donation, error) {
	if raw.IsZero() {
		return domain.Donation{}, domain.ErrNoFundsProvided
	}
	donations, err := l.DonationsFor(ctx, project)
	if err != nil {
		return domain.Donation{}, err
	}
	donation := domain.Donation{Donor: donor, RawAmount: raw}
	donations = append(donations, donation)

	payload, err := json.Marshal(donations)
	if err != nil {
		return domain.Donation{}, fmt.Errorf("encode donations: %w", err)
	}
	if err := l.kv.Put(ctx, donationsKey(project), payload); err != nil {
		return domain.Donation{}, fmt.Errorf("save donations: %w", err)
	}
	return donation, nil
}

// DonationsFor returns the donations made to project in insertion order. An
// unknown project has no donations.
func (l *Ledger) DonationsFor(ctx context.Context, project domain.Address) ([]domain.Donation, error) {
	raw, ok, err := l.kv.Get(ctx, donationsKey(project))
	if err != nil {
		return nil, fmt.Errorf("load donations: %w", err)
	}
	if !ok {
		return []domain.Donation{}, nil
	}
	var donations []domain.Donation
	if err := json.Unmarshal(raw, &donations); err != nil {
		return nil, fmt.Errorf("decode donations for %s: %w", project, err)
	}
	if donations == nil {
		donations = []domain.Donation{}
	}
	return donations, nil
}

// TotalsFor folds the donations of project into raw and net totals.
func (l *Ledger) TotalsFor(ctx context.Context, project domain.Address) (domain.DonationsTotal, error) {
	donations, err := l.DonationsFor(ctx, project)
	if err != nil {
		return domain.DonationsTotal{}, err
	}
	return Aggregate(donations)
}
