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

// CreateAd stores a new ad under a generated id.
func (s *Store) CreateAd(ctx context.Context, ad *models.Ad) (*models.Ad, error) {
	now := time.Now().UTC()
	ad.Id = uuid.New().String()
	ad.CreatedAt = now
	ad.UpdatedAt = now

	adAV, err := attributevalue.MarshalMap(ad)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ad: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.AdsTableName),
		Item:                adAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ad in DynamoDB: %w", err)
	}

	return ad, nil
}

// GetAd retrieves an ad by its id.
func (s *Store) GetAd(ctx context.Context, id string) (*models.Ad, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ad ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.AdsTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get ad from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("ad %s: %w", id, storage.ErrAdNotFound)
	}

	var ad models.Ad
	if err := attributevalue.UnmarshalMap(result.Item, &ad); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ad: %w", err)
	}

	return &ad, nil
}

// ListAds scans the whole ads table, following pagination.
func (s *Store) ListAds(ctx context.Context) ([]models.Ad, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.AdsTableName),
	}

	ads := []models.Ad{}
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ads table: %w", err)
		}

		var page []models.Ad
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ads: %w", err)
		}
		ads = append(ads, page...)

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	return ads, nil
}

// UpdateAd overwrites the mutable fields of an existing ad.
func (s *Store) UpdateAd(ctx context.Context, ad *models.Ad) (*models.Ad, error) {
	rewardAV, err := attributevalue.Marshal(ad.Reward)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reward: %w", err)
	}
	nowAV, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for ad update: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.AdsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: ad.Id},
		},
		UpdateExpression:    aws.String("SET title = :title, #url = :url, reward = :reward, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id)"), // Ensure the ad exists before updating.
		ExpressionAttributeNames: map[string]string{
			"#url": "url",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":title":  &types.AttributeValueMemberS{Value: ad.Title},
			":url":    &types.AttributeValueMemberS{Value: ad.URL},
			":reward": rewardAV,
			":now":    nowAV,
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionFailed(err) {
			return nil, fmt.Errorf("ad %s: %w", ad.Id, storage.ErrAdNotFound)
		}
		return nil, fmt.Errorf("failed to update ad in DynamoDB: %w", err)
	}

	var updated models.Ad
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated ad: %w", err)
	}

	return &updated, nil
}

// DeleteAd deletes an ad record from DynamoDB.
func (s *Store) DeleteAd(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"id": id})
	if err != nil {
		return fmt.Errorf("failed to marshal ad ID for deletion: %w", err)
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.AdsTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(id)"), // Ensure the ad exists before deleting.
	})
	if err != nil {
		if isConditionFailed(err) {
			return fmt.Errorf("ad %s: %w", id, storage.ErrAdNotFound)
		}
		return fmt.Errorf("failed to delete ad from DynamoDB: %w", err)
	}

	return nil
}
