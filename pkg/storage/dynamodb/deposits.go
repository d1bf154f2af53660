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
	"github.com/google/uuid"
)

const stuckDepositGSI = "status-created_at-index"

// CreateDeposit stores a new PENDING deposit record.
func (s *Store) CreateDeposit(ctx context.Context, deposit *models.Deposit) (*models.Deposit, error) {
	now := time.Now().UTC()
	if deposit.Id == "" {
		deposit.Id = uuid.New().String()
	}
	deposit.Status = models.PENDING
	deposit.CreatedAt = now
	deposit.UpdatedAt = now

	depositAV, err := attributevalue.MarshalMap(deposit)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deposit: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.DepositsTableName),
		Item:                depositAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create deposit in DynamoDB: %w", err)
	}

	return deposit, nil
}

// GetDeposit retrieves a deposit from DynamoDB by its ID.
func (s *Store) GetDeposit(ctx context.Context, id string) (*models.Deposit, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deposit ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.DepositsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("deposit %s: %w", id, storage.ErrDepositNotFound)
	}

	var deposit models.Deposit
	if err := attributevalue.UnmarshalMap(result.Item, &deposit); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deposit: %w", err)
	}

	return &deposit, nil
}

// MarkDepositFailed atomically updates the deposit status from PENDING to FAILED.
func (s *Store) MarkDepositFailed(ctx context.Context, id, reason string) error {
	nowAV, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for deposit update: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.DepositsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("SET #status = :failed_status, failure_reason = :reason, updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending_status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":failed_status":  &types.AttributeValueMemberS{Value: string(models.FAILED)},
			":pending_status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":reason":         &types.AttributeValueMemberS{Value: reason},
			":now":            nowAV,
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionFailed(err) {
			return fmt.Errorf("deposit %s: %w", id, storage.ErrDepositNotPending)
		}
		return fmt.Errorf("failed to update deposit status to FAILED: %w", err)
	}

	return nil
}

// MarkDepositChecked bumps updated_at on a PENDING deposit.
func (s *Store) MarkDepositChecked(ctx context.Context, id string) error {
	nowAV, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for deposit update: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.DepositsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("SET updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending_status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending_status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":now":            nowAV,
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return fmt.Errorf("deposit %s: %w", id, storage.ErrDepositNotPending)
		}
		return fmt.Errorf("failed to mark deposit as checked: %w", err)
	}

	return nil
}

// GetStuckDeposits retrieves deposits that are in a 'PENDING' state for longer than the specified duration.
func (s *Store) GetStuckDeposits(ctx context.Context, maxAge time.Duration) ([]models.Deposit, error) {
	cutoffAV, err := attributevalue.Marshal(time.Now().UTC().Add(-maxAge))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.DepositsTableName),
		IndexName:              aws.String(stuckDepositGSI),
		KeyConditionExpression: aws.String("#status = :status AND created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":cutoff": cutoffAV,
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for stuck deposits: %w", err)
	}

	var deposits []models.Deposit
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &deposits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stuck deposits: %w", err)
	}

	return deposits, nil
}
