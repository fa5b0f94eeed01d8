package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDuration means the requested end is not strictly after the
	// start. Surfaced to the user for correction; blocks order submission.
	ErrInvalidDuration = errors.New("rental end must be after start")

	// ErrInvalidStateTransition means an action was attempted against an
	// order not in the required source state, including lost races between
	// concurrent staff submissions. Recoverable by refreshing the order.
	ErrInvalidStateTransition = errors.New("invalid rental state transition")

	// ErrDetailNotFound is a data-integrity fault: a rental that should have
	// a detail record does not. Not retried automatically.
	ErrDetailNotFound = errors.New("rental order detail not found")

	// ErrNotOwner means the acting renter does not own the rental. Mapped to
	// not-found at the API so order existence is never leaked.
	ErrNotOwner = errors.New("rental does not belong to renter")

	ErrOrderNotFound    = errors.New("rental order not found")
	ErrContractNotFound = errors.New("contract not found for rental")
	ErrFeedbackExists   = errors.New("feedback already submitted for rental")
)

// Gate names used by GateUnsatisfiedError.
const (
	GateContract = "contract"
	GatePayment  = "payment"
)

// GateUnsatisfiedError is an expected workflow state, not a failure: the
// handover screen must offer the matching remediation (sign the contract,
// request the deposit) instead of a generic error.
type GateUnsatisfiedError struct {
	Gate string
}

func (e *GateUnsatisfiedError) Error() string {
	return fmt.Sprintf("%s gate unsatisfied", e.Gate)
}

// ValidationError covers missing or out-of-range checklist, odometer and
// battery input. Corrected by the user before resubmission.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
