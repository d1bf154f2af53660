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

const (
	rewardAccountItem = iota
	rewardLedgerItem
	rewardAdItem
)

// ApplyReward credits an ad reward and bumps the watch counter in one transaction.
func (s *Store) ApplyReward(ctx context.Context, account *models.Account, ad *models.Ad, once bool) (*models.Account, error) {
	now := time.Now().UTC()

	rewardAV, err := attributevalue.Marshal(ad.Reward)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reward: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for reward: %w", err)
	}

	entry := models.LedgerEntry{
		EntryID:     storage.WatchEntryID(account.Email, ad.Id, once),
		AccountID:   account.Email,
		Kind:        models.KindReward,
		Reference:   ad.Id,
		Credit:      ad.Reward,
		Description: fmt.Sprintf("Reward for watching %q", ad.Title),
		Timestamp:   now,
	}
	entryAV, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reward ledger entry: %w", err)
	}

	items := make([]types.TransactWriteItem, 3)
	items[rewardAccountItem] = types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(s.AccountsTableName),
			Key:                 map[string]types.AttributeValue{"email": &types.AttributeValueMemberS{Value: account.Email}},
			UpdateExpression:    aws.String("SET balance = balance + :reward, watched_ads = watched_ads + :inc, version = version + :inc, updated_at = :now"),
			ConditionExpression: aws.String("version = :version"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":reward":  rewardAV,
				":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
				":inc":     &types.AttributeValueMemberN{Value: "1"},
				":now":     nowAV,
			},
		},
	}
	items[rewardLedgerItem] = types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.LedgerTableName),
			Item:                entryAV,
			ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
		},
	}
	items[rewardAdItem] = types.TransactWriteItem{
		// The ad must still exist when the reward lands.
		ConditionCheck: &types.ConditionCheck{
			TableName:           aws.String(s.AdsTableName),
			Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: ad.Id}},
			ConditionExpression: aws.String("attribute_exists(id)"),
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		switch {
		case failedAt(err, rewardLedgerItem):
			return nil, storage.ErrAdAlreadyWatched
		case failedAt(err, rewardAdItem):
			return nil, storage.ErrAdNotFound
		case failedAt(err, rewardAccountItem), conflicted(err):
			return nil, storage.ErrVersionConflict
		}
		return nil, fmt.Errorf("failed to execute reward transaction: %w", err)
	}

	updated := *account
	updated.Balance += ad.Reward
	updated.WatchedAds++
	updated.Version++
	updated.UpdatedAt = now
	return &updated, nil
}
