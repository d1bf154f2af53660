package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/settlement"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRechecker struct {
	results map[string]error
	seen    []string
}

func (f *fakeRechecker) Recheck(_ context.Context, depositID string) (models.DepositStatus, error) {
	f.seen = append(f.seen, depositID)
	if err := f.results[depositID]; err != nil {
		return models.PENDING, err
	}
	return models.COMPLETED, nil
}

func TestHandleRequest(t *testing.T) {
	svc := &fakeRechecker{results: map[string]error{
		"dep-pending": &settlement.PendingError{DepositID: "dep-pending", Cause: settlement.ErrPaymentPending},
		"dep-broken":  errors.New("dynamodb unavailable"),
		"dep-missing": storage.ErrDepositNotFound,
	}}
	h := &recheckHandler{svc: svc, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	resp, err := h.HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
		{MessageId: "m1", Body: `{"depositId":"dep-ok"}`},
		{MessageId: "m2", Body: `{"depositId":"dep-pending"}`},
		{MessageId: "m3", Body: `{"depositId":"dep-broken"}`},
		{MessageId: "m4", Body: `not json`},
		{MessageId: "m5", Body: `{"depositId":"dep-missing"}`},
	}})

	require.NoError(t, err)
	assert.Equal(t, []string{"dep-ok", "dep-pending", "dep-broken", "dep-missing"}, svc.seen)
	require.Len(t, resp.BatchItemFailures, 1)
	assert.Equal(t, "m3", resp.BatchItemFailures[0].ItemIdentifier)
}
