package scheduler

import (
	"context"
	"time"
)

// RecheckMessage is the body of a queued deposit re-check.
type RecheckMessage struct {
	DepositID string `json:"depositId"`
}

// Scheduler defines the interface for a component that schedules a deposit for a later gateway re-check.
type Scheduler interface {
	// ScheduleRecheck enqueues a re-check of the deposit, delivered no earlier than delay from now.
	ScheduleRecheck(ctx context.Context, depositID string, delay time.Duration) error
}
