package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"donationledger/internal/domain"
	"donationledger/internal/host"
	"donationledger/internal/middleware"
)

const maxBodyBytes = 1 << 20

type App struct {
	Host   *host.Host
	Logger zerolog.Logger
}

func NewApp(h *host.Host, logger zerolog.Logger) *App {
	return &App{Host: h, Logger: logger}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: msg}})
}

// fail writes err with the status its kind maps to. Internal errors are
// logged and hidden from the client.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		a.logger(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		msg = "internal error"
	}
	a.error(w, status, code, msg)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoFundsProvided),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrArithmeticOverflow),
		errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAlreadyInitialized):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStorageNotFound):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (a *App) logger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}

// decode reads a JSON body into v. Unknown fields are rejected so a typo in a
// message variant does not silently turn into an empty message.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, domain.ErrInvalidFormat) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	return nil
}

func addressParam(r *http.Request) (domain.Address, error) {
	return domain.ParseAddress(chi.URLParam(r, "address"))
}

func (a *App) caller(w http.ResponseWriter, r *http.Request) (domain.Address, bool) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthenticated", "missing caller")
		return "", false
	}
	return caller, true
}
