package main

import (
	"context"
	"errors"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/ad-rewards-wallet/pkg/bootstrap"
	"github.com/chris/ad-rewards-wallet/pkg/config"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/scheduler"
	"github.com/chris/ad-rewards-wallet/pkg/settlement"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
)

type rechecker interface {
	Recheck(ctx context.Context, depositID string) (models.DepositStatus, error)
}

type recheckHandler struct {
	svc    rechecker
	logger *slog.Logger
}

// HandleRequest re-checks every deposit named in the batch. Messages that fail
// for a retryable reason are reported back so SQS redelivers only those.
func (h *recheckHandler) HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse

	for _, message := range sqsEvent.Records {
		msg, err := scheduler.ParseRecheck(message.Body)
		if err != nil {
			// Redelivering a malformed message cannot help.
			h.logger.Error("dropping malformed recheck message", "message_id", message.MessageId, "error", err)
			continue
		}

		status, err := h.svc.Recheck(ctx, msg.DepositID)
		var pending *settlement.PendingError
		switch {
		case err == nil:
			h.logger.Info("deposit rechecked", "deposit_id", msg.DepositID, "status", status)
		case errors.As(err, &pending):
			// A fresh recheck has already been scheduled.
			h.logger.Info("deposit still pending", "deposit_id", msg.DepositID, "reason", pending.Cause)
		case errors.Is(err, storage.ErrDepositNotFound):
			h.logger.Error("dropping recheck for unknown deposit", "deposit_id", msg.DepositID)
		default:
			h.logger.Error("failed to recheck deposit", "deposit_id", msg.DepositID, "message_id", message.MessageId, "error", err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
		}
	}

	return resp, nil
}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := bootstrap.Logger(cfg)
	deps, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialise dependencies: %v", err)
	}

	h := &recheckHandler{svc: deps.Settlement, logger: logger}
	lambda.Start(h.HandleRequest)
}
