package settlement

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned for non-positive deposit amounts. The gateway is not contacted.
	ErrInvalidAmount = errors.New("deposit amount must be positive")

	// ErrGatewayRejected is returned when the provider declined the payment. Nothing was credited.
	ErrGatewayRejected = errors.New("deposit declined by payment gateway")

	// ErrGatewayUnavailable is returned when the provider could not give an answer in time.
	// The deposit stays PENDING and is re-checked later, so the client must not blindly retry.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrPaymentPending is returned when the provider accepted the payment but has not confirmed it yet.
	ErrPaymentPending = errors.New("payment pending confirmation")

	// ErrCreditDeferred is returned when the provider confirmed the payment but the credit could
	// not be written. The deposit stays PENDING and the re-check credits it.
	ErrCreditDeferred = errors.New("payment confirmed, credit deferred")

	// ErrTooManyConflicts is wrapped by ErrCreditDeferred when the account kept changing under every settlement attempt.
	ErrTooManyConflicts = errors.New("too many concurrent account updates")

	// ErrNotConfirmed is returned when a confirmation that is not CONFIRMED is applied.
	ErrNotConfirmed = errors.New("payment is not confirmed")
)

// PendingError reports a deposit that is not credited yet. It unwraps to
// ErrGatewayUnavailable, ErrPaymentPending or ErrCreditDeferred.
type PendingError struct {
	DepositID string
	Cause     error
	Err       error
}

func (e *PendingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deposit %s: %v: %v", e.DepositID, e.Cause, e.Err)
	}
	return fmt.Sprintf("deposit %s: %v", e.DepositID, e.Cause)
}

func (e *PendingError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Cause, e.Err}
	}
	return []error{e.Cause}
}
