package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/etnz/rentroll"
	"github.com/sirupsen/logrus"
)

// AppError is an error as returned to api clients.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrInvalidRequest = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request"}
	ErrNotFound       = &AppError{http.StatusNotFound, "NOT_FOUND", "Resource not found"}
	ErrInternal       = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInvalidAmount  = &AppError{http.StatusUnprocessableEntity, "INVALID_AMOUNT", "Amount must be greater than zero"}
	ErrExceedsBalance = &AppError{http.StatusUnprocessableEntity, "EXCEEDS_BALANCE", "Amount exceeds the charge balance"}
	ErrInvalidAccount = &AppError{http.StatusUnprocessableEntity, "INVALID_ACCOUNT", "Account number is invalid"}
	ErrSubCharge      = &AppError{http.StatusUnprocessableEntity, "SUB_CHARGE", "Payments are made on the monthly charge"}
	ErrCurrency       = &AppError{http.StatusUnprocessableEntity, "CURRENCY_MISMATCH", "Amount is not in the charge currency"}
)

type errorResponse struct {
	Error *AppError `json:"error"`
}

func respondJSON(w http.ResponseWriter, log logrus.FieldLogger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, log logrus.FieldLogger, appErr *AppError) {
	respondJSON(w, log, appErr.Status, errorResponse{appErr})
}

// respondDomainError maps ledger errors to api errors.
func respondDomainError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var appErr *AppError
	switch {
	case errors.Is(err, rentroll.ErrNotFound), errors.Is(err, rentroll.ErrNoLedger):
		appErr = ErrNotFound
	case errors.Is(err, rentroll.ErrInvalidAmount):
		appErr = ErrInvalidAmount
	case errors.Is(err, rentroll.ErrExceedsBalance):
		appErr = ErrExceedsBalance
	case errors.Is(err, rentroll.ErrInvalidAccount):
		appErr = ErrInvalidAccount
	case errors.Is(err, rentroll.ErrSubChargePayment):
		appErr = ErrSubCharge
	case errors.Is(err, rentroll.ErrCurrencyMismatch):
		appErr = ErrCurrency
	default:
		log.WithError(err).Error("unhandled domain error")
		appErr = ErrInternal
	}
	respondError(w, log, appErr)
}
