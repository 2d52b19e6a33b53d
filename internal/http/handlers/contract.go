package handlers

import (
	"net/http"

	"donationledger/internal/contract"
	"donationledger/internal/domain"
)

// executeRequest is an ExecMsg with the funds attached to it.
type executeRequest struct {
	contract.ExecMsg
	Funds domain.CoinBag `json:"funds"`
}

func (a *App) Execute(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	var req executeRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	resp, err := a.Host.Execute(r.Context(), contract.MessageInfo{Sender: caller, Funds: req.Funds}, req.ExecMsg)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, resp)
}

func (a *App) Query(w http.ResponseWriter, r *http.Request) {
	var msg contract.QueryMsg
	if err := decode(r, &msg); err != nil {
		a.fail(w, r, err)
		return
	}
	result, err := a.Host.Query(r.Context(), msg)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, result)
}

func (a *App) Withdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	resp, err := a.Host.Withdraw(r.Context(), caller)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, resp)
}

func (a *App) Balance(w http.ResponseWriter, r *http.Request) {
	addr, err := addressParam(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	balance, err := a.Host.Balance(r.Context(), addr)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"address": addr, "balance": balance})
}
