package rentroll

import "errors"

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrExceedsBalance   = errors.New("amount exceeds remaining balance")
	ErrInvalidAccount   = errors.New("invalid payment account")
	ErrSubChargePayment = errors.New("sub-charges are paid through their parent charge")
	ErrChargeSettled    = errors.New("charge already has payments")
	ErrAlreadyAttached  = errors.New("charge already belongs to another charge")
	ErrInvalidTerm      = errors.New("lease start is after lease end")
	ErrInvalidRent      = errors.New("monthly rent must not be negative")
	ErrNoUnit           = errors.New("lease requires a unit")
	ErrInvalidArea      = errors.New("floor area must be positive")
	ErrDuplicateUnit    = errors.New("unit number already exists in building")
	ErrDuplicateName    = errors.New("name already exists")
	ErrNotFound         = errors.New("not found")
	ErrOccupied         = errors.New("unit is already occupied")
	ErrNoLedger         = errors.New("user has no ledger")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrNotLastPayment   = errors.New("only the last payment can be voided")
)
