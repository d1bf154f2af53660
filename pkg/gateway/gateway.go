// Package gateway defines the payment gateway capability used by the settlement
// service, and the Binance Pay client that implements it.
package gateway

import (
	"context"
	"errors"
	"fmt"
)

// Status is the outcome the gateway reports for a payment.
type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusDeclined  Status = "DECLINED"
	StatusPending   Status = "PENDING"
)

// ErrRejected is returned when the provider definitively declined the payment.
var ErrRejected = errors.New("payment rejected by gateway")

// ErrUnavailable is returned when the outcome of a call is unknown: the provider
// could not be reached, timed out, or answered with something unusable.
var ErrUnavailable = errors.New("payment gateway unavailable")

// RejectedError carries the provider's reason for a declined payment.
type RejectedError struct {
	Code   string
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment rejected by gateway: %s (%s)", e.Reason, e.Code)
	}
	return fmt.Sprintf("payment rejected by gateway: %s", e.Reason)
}

func (e *RejectedError) Unwrap() error { return ErrRejected }

// PaymentRequest asks the provider to collect Amount (minor units) from the payer.
// Reference is our deposit id and is echoed back by the provider.
type PaymentRequest struct {
	Reference string
	Email     string
	PayID     string
	Amount    int64
	Currency  string
}

// Confirmation is the provider's answer for one payment. ID is the provider's
// confirmation id and is only set once the payment is CONFIRMED.
type Confirmation struct {
	ID        string
	Reference string
	Status    Status
	Amount    int64
}

// Gateway is the capability the settlement service needs from a payment provider.
// A declined payment is reported as an error wrapping ErrRejected; a successful call
// returns a Confirmation that is either CONFIRMED or PENDING.
type Gateway interface {
	ConfirmPayment(ctx context.Context, req PaymentRequest) (*Confirmation, error)
	QueryPayment(ctx context.Context, reference string) (*Confirmation, error)
}
