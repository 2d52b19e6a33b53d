// Package host runs contract invocations against a transactional store. Every
// execution credits the attached funds to the contract, calls the contract and
// applies the transfers it asks for, all inside one store transaction.
package host

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"donationledger/internal/bank"
	"donationledger/internal/contract"
	"donationledger/internal/domain"
	"donationledger/internal/infra"
)

type Host struct {
	store    domain.TxStore
	contract domain.Address
	logger   zerolog.Logger
	metrics  *infra.Metrics
}

// New returns a host for the contract living at contractAddr. metrics may be nil.
func New(store domain.TxStore, contractAddr domain.Address, logger zerolog.Logger, metrics *infra.Metrics) *Host {
	return &Host{store: store, contract: contractAddr, logger: logger, metrics: metrics}
}

// ContractAddress is the address holding the funds attached to executions.
func (h *Host) ContractAddress() domain.Address {
	return h.contract
}

// Instantiate stores the owner and fee collector of the contract.
func (h *Host) Instantiate(ctx context.Context, sender domain.Address, msg contract.InstantiateMsg) (resp contract.Response, err error) {
	started := time.Now()
	defer func() { h.finish(ctx, "instantiate", started, resp, err) }()

	err = h.store.InTx(ctx, func(kv domain.KVStore) error {
		var err error
		resp, err = contract.Instantiate(ctx, kv, contract.MessageInfo{Sender: sender}, msg)
		return err
	})
	if err != nil {
		return contract.Response{}, err
	}
	return resp, nil
}

// Execute runs a state-changing message. On error nothing is committed.
func (h *Host) Execute(ctx context.Context, info contract.MessageInfo, msg contract.ExecMsg) (resp contract.Response, err error) {
	started := time.Now()
	operation := "execute"
	switch {
	case msg.Donate != nil && msg.Withdraw == nil:
		operation = "donate"
	case msg.Withdraw != nil && msg.Donate == nil:
		operation = "withdraw"
	}
	defer func() { h.finish(ctx, operation, started, resp, err) }()

	env := contract.Env{ContractAddress: h.contract}
	err = h.store.InTx(ctx, func(kv domain.KVStore) error {
		keeper := bank.NewKeeper(kv)
		if !info.Funds.IsZero() {
			if err := keeper.Deposit(ctx, h.contract, info.Funds); err != nil {
				return err
			}
		}
		var err error
		resp, err = contract.Execute(ctx, kv, keeper, env, info, msg)
		if err != nil {
			return err
		}
		return keeper.Apply(ctx, h.contract, resp.Transfers)
	})
	if err != nil {
		return contract.Response{}, err
	}
	if operation == "donate" {
		for _, c := range info.Funds.Coins() {
			h.metrics.IncDonation(c.Denom)
		}
	}
	return resp, nil
}

// Donate sends funds from sender to project.
func (h *Host) Donate(ctx context.Context, sender, project domain.Address, funds domain.CoinBag) (contract.Response, error) {
	return h.Execute(ctx, contract.MessageInfo{Sender: sender, Funds: funds}, contract.ExecMsg{
		Donate: &contract.DonateMsg{ProjectAddress: project},
	})
}

// Withdraw sweeps the contract balance to sender when sender is the owner.
func (h *Host) Withdraw(ctx context.Context, sender domain.Address) (contract.Response, error) {
	return h.Execute(ctx, contract.MessageInfo{Sender: sender}, contract.ExecMsg{Withdraw: &contract.WithdrawMsg{}})
}

func (h *Host) Query(ctx context.Context, msg contract.QueryMsg) (result any, err error) {
	started := time.Now()
	defer func() { h.finish(ctx, "query", started, contract.Response{}, err) }()
	return contract.Query(ctx, h.store, msg)
}

func (h *Host) DonationsSentToProject(ctx context.Context, project domain.Address) (domain.DonationsTotal, error) {
	return contract.DonationsSentToProject(ctx, h.store, project)
}

func (h *Host) Donations(ctx context.Context, project domain.Address) ([]domain.Donation, error) {
	return contract.DonationsList(ctx, h.store, project)
}

func (h *Host) Balance(ctx context.Context, addr domain.Address) (domain.CoinBag, error) {
	return bank.NewKeeper(h.store).Balance(ctx, addr)
}

func (h *Host) finish(ctx context.Context, operation string, started time.Time, resp contract.Response, err error) {
	kind := domain.ErrorCode(err)
	h.metrics.Observe(operation, kind, started)

	logger := h.loggerFrom(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("operation", operation).Str("kind", kind).Msg("invocation failed")
		return
	}
	event := logger.Info().Str("operation", operation).Int("transfers", len(resp.Transfers))
	for _, a := range resp.Attributes {
		event = event.Str("attr_"+a.Key, a.Value)
	}
	event.Dur("elapsed", time.Since(started)).Msg("invocation ok")
}

// loggerFrom prefers the request scoped logger stored in ctx.
func (h *Host) loggerFrom(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &h.logger
}
