package handlers

import (
	"net/http"

	"donationledger/internal/domain"
)

type donationRequest struct {
	Funds domain.CoinBag `json:"funds"`
}

type donationView struct {
	Donor     domain.Address `json:"donor"`
	RawAmount domain.CoinBag `json:"raw_amount"`
	NetAmount domain.CoinBag `json:"net_amount"`
	FeeAmount domain.CoinBag `json:"fee_amount"`
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	project, err := addressParam(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req donationRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	resp, err := a.Host.Donate(r.Context(), caller, project, req.Funds)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, resp)
}

func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	project, err := addressParam(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	donations, err := a.Host.Donations(r.Context(), project)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]donationView, 0, len(donations))
	for _, d := range donations {
		items = append(items, donationView{
			Donor:     d.Donor,
			RawAmount: d.RawAmount,
			NetAmount: d.NetAmount(),
			FeeAmount: d.FeeAmount(),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) DonationsTotal(w http.ResponseWriter, r *http.Request) {
	project, err := addressParam(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	total, err := a.Host.DonationsSentToProject(r.Context(), project)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, total)
}
