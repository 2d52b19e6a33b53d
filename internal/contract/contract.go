// Package contract implements the donation contract entry points: it reads
// and writes ledger state through a KV store and answers with attributes and
// transfer instructions. It never moves funds itself.
package contract

import (
	"context"
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"donationledger/internal/domain"
	"donationledger/internal/ledger"
)

// MessageInfo describes the caller of an execution and the funds attached
// to it.
type MessageInfo struct {
	Sender domain.Address
	Funds  domain.CoinBag
}

// Env describes the contract itself.
type Env struct {
	ContractAddress domain.Address
}

// BalanceQuerier reads balances held by the bank.
type BalanceQuerier interface {
	Balance(ctx context.Context, addr domain.Address) (domain.CoinBag, error)
}

// Instantiate stores the owner and fee collector once.
func Instantiate(ctx context.Context, kv domain.KVStore, info MessageInfo, msg InstantiateMsg) (Response, error) {
	owner, feeCollector := msg.Owner, msg.FeeCollector
	if owner == "" {
		owner = info.Sender
	}
	if feeCollector == "" {
		feeCollector = info.Sender
	}
	if err := domain.ValidateAddress(owner); err != nil {
		return Response{}, fmt.Errorf("owner: %w", err)
	}
	if err := domain.ValidateAddress(feeCollector); err != nil {
		return Response{}, fmt.Errorf("fee collector: %w", err)
	}
	if err := ledger.Initialize(ctx, kv, owner, feeCollector); err != nil {
		return Response{}, err
	}
	var resp Response
	resp.addAttribute("action", "instantiate")
	resp.addAttribute("owner", owner.String())
	resp.addAttribute("fee_collector", feeCollector.String())
	return resp, nil
}

// Execute dispatches a state-changing message.
func Execute(ctx context.Context, kv domain.KVStore, bank BalanceQuerier, env Env, info MessageInfo, msg ExecMsg) (Response, error) {
	if err := msg.validate(); err != nil {
		return Response{}, err
	}
	switch {
	case msg.Donate != nil:
		return Donate(ctx, kv, info, msg.Donate.ProjectAddress)
	default:
		return Withdraw(ctx, kv, bank, env, info)
	}
}

// Query dispatches a read-only message.
func Query(ctx context.Context, kv domain.KVStore, msg QueryMsg) (any, error) {
	if err := msg.validate(); err != nil {
		return nil, err
	}
	switch {
	case msg.ValueIncremented != nil:
		raw := msg.ValueIncremented.Value
		var value uint256.Int
		if !isDecimal(raw) {
			return nil, fmt.Errorf("%w: value %q is not a decimal integer", domain.ErrInvalidFormat, raw)
		}
		digits := strings.TrimLeft(raw, "0")
		if digits == "" {
			digits = "0"
		}
		if err := value.SetFromDecimal(digits); err != nil {
			return nil, fmt.Errorf("%w: value %q: %v", domain.ErrInvalidFormat, raw, err)
		}
		return ValueIncremented(value)
	default:
		return DonationsSentToProject(ctx, kv, msg.DonationsSentToProject.ProjectAddress)
	}
}

// Donate records the attached funds as a donation to project and asks for the
// net part to be sent to the project and the fee part to the fee collector.
func Donate(ctx context.Context, kv domain.KVStore, info MessageInfo, project domain.Address) (Response, error) {
	if err := domain.ValidateAddress(project); err != nil {
		return Response{}, fmt.Errorf("project: %w", err)
	}
	if info.Funds.IsZero() {
		return Response{}, domain.ErrNoFundsProvided
	}
	feeCollector, err := ledger.FeeCollector(ctx, kv)
	if err != nil {
		return Response{}, err
	}
	donation, err := ledger.New(kv).RecordDonation(ctx, project, info.Sender, info.Funds)
	if err != nil {
		return Response{}, err
	}
	net, fee := domain.SplitFee(donation.RawAmount)

	var resp Response
	resp.addAttribute("action", "donate")
	resp.addAttribute("sender", info.Sender.String())
	resp.addAttribute("to", project.String())
	resp.addAttribute("net_amount", net.String())
	resp.addAttribute("fee_amount", fee.String())
	resp.addTransfer(project, net)
	resp.addTransfer(feeCollector, fee)
	return resp, nil
}

// Withdraw sends the whole contract balance to the owner. Anyone else gets
// ErrUnauthorized.
func Withdraw(ctx context.Context, kv domain.KVStore, bank BalanceQuerier, env Env, info MessageInfo) (Response, error) {
	owner, err := ledger.Owner(ctx, kv)
	if err != nil {
		return Response{}, err
	}
	if err := ledger.AuthorizeWithdraw(info.Sender, owner); err != nil {
		return Response{}, err
	}
	balance, err := bank.Balance(ctx, env.ContractAddress)
	if err != nil {
		return Response{}, err
	}

	var resp Response
	resp.addAttribute("action", "withdraw")
	resp.addAttribute("sender", info.Sender.String())
	resp.addTransfer(info.Sender, balance)
	return resp, nil
}

// DonationsSentToProject returns the raw and net totals donated to project;
// zero totals for a project nobody donated to.
func DonationsSentToProject(ctx context.Context, kv domain.KVStore, project domain.Address) (domain.DonationsTotal, error) {
	if err := domain.ValidateAddress(project); err != nil {
		return domain.DonationsTotal{}, fmt.Errorf("project: %w", err)
	}
	return ledger.New(kv).TotalsFor(ctx, project)
}

// DonationsList returns the donation records of project in insertion order.
func DonationsList(ctx context.Context, kv domain.KVStore, project domain.Address) ([]domain.Donation, error) {
	if err := domain.ValidateAddress(project); err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	return ledger.New(kv).DonationsFor(ctx, project)
}

// ValueIncremented returns value + 1.
func ValueIncremented(value uint256.Int) (ValueResp, error) {
	var next uint256.Int
	if _, overflow := next.AddOverflow(&value, uint256.NewInt(1)); overflow {
		return ValueResp{}, fmt.Errorf("%w: incrementing %s", domain.ErrArithmeticOverflow, value.Dec())
	}
	return ValueResp{Value: next.Dec()}, nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
