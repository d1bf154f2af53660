package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
)

// Item positions inside the ApplyDeposit transaction; cancellation reasons are reported in this order.
const (
	depositAccountItem = iota
	depositLedgerItem
	depositStatusItem
)

// ApplyDeposit performs the atomic settlement of a confirmed deposit.
// The ledger entry is keyed by the confirmation id, so a replayed confirmation
// fails its attribute_not_exists condition and the whole write is cancelled.
func (s *Store) ApplyDeposit(ctx context.Context, account *models.Account, deposit *models.Deposit, confirmationID string) (*models.Account, error) {
	now := time.Now().UTC()

	amountAV, err := attributevalue.Marshal(deposit.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amount for deposit: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for deposit: %w", err)
	}

	entry := models.LedgerEntry{
		EntryID:     storage.DepositEntryID(confirmationID),
		AccountID:   account.Email,
		Kind:        models.KindDeposit,
		Reference:   deposit.Id,
		Credit:      deposit.Amount,
		Description: fmt.Sprintf("Deposit %s confirmed as %s", deposit.Id, confirmationID),
		Timestamp:   now,
	}
	entryAV, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deposit ledger entry: %w", err)
	}

	items := make([]types.TransactWriteItem, 3)
	items[depositAccountItem] = types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(s.AccountsTableName),
			Key:                 map[string]types.AttributeValue{"email": &types.AttributeValueMemberS{Value: account.Email}},
			UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc, updated_at = :now"),
			ConditionExpression: aws.String("version = :version"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":amount":  amountAV,
				":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
				":inc":     &types.AttributeValueMemberN{Value: "1"},
				":now":     nowAV,
			},
		},
	}
	items[depositLedgerItem] = types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.LedgerTableName),
			Item:                entryAV,
			ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
		},
	}
	items[depositStatusItem] = types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(s.DepositsTableName),
			Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: deposit.Id}},
			UpdateExpression:    aws.String("SET #status = :completed_status, confirmation_id = :confirmation, updated_at = :now"),
			ConditionExpression: aws.String("#status = :pending_status"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":completed_status": &types.AttributeValueMemberS{Value: string(models.COMPLETED)},
				":pending_status":   &types.AttributeValueMemberS{Value: string(models.PENDING)},
				":confirmation":     &types.AttributeValueMemberS{Value: confirmationID},
				":now":              nowAV,
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		switch {
		case failedAt(err, depositLedgerItem):
			return nil, storage.ErrConfirmationApplied
		case failedAt(err, depositStatusItem):
			return nil, storage.ErrDepositNotPending
		case failedAt(err, depositAccountItem), conflicted(err):
			return nil, storage.ErrVersionConflict
		}
		return nil, fmt.Errorf("failed to execute deposit settlement: %w", err)
	}

	updated := *account
	updated.Balance += deposit.Amount
	updated.Version++
	updated.UpdatedAt = now
	return &updated, nil
}
