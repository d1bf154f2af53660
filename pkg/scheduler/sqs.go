package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// maxDelay is the longest DelaySeconds SQS accepts.
const maxDelay = 15 * time.Minute

// SQSAPI is the subset of the SQS client used by the scheduler.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSScheduler implements the Scheduler interface using AWS SQS.
type SQSScheduler struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSScheduler creates a new SQSScheduler.
func NewSQSScheduler(client SQSAPI, queueURL string) *SQSScheduler {
	return &SQSScheduler{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Scheduler = (*SQSScheduler)(nil)

// ScheduleRecheck sends the deposit id to an SQS queue as a delayed message.
func (s *SQSScheduler) ScheduleRecheck(ctx context.Context, depositID string, delay time.Duration) error {
	body, err := json.Marshal(RecheckMessage{DepositID: depositID})
	if err != nil {
		return fmt.Errorf("failed to marshal recheck message for SQS: %w", err)
	}

	if delay < 0 {
		delay = 0
	}
	if delay > maxDelay {
		delay = maxDelay
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(s.QueueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: int32(delay / time.Second),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}

// ParseRecheck decodes a queued re-check message body.
func ParseRecheck(body string) (RecheckMessage, error) {
	var msg RecheckMessage
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		return msg, fmt.Errorf("failed to unmarshal recheck message: %w", err)
	}
	if msg.DepositID == "" {
		return msg, fmt.Errorf("recheck message has no deposit id")
	}
	return msg, nil
}
