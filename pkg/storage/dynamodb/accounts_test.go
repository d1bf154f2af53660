package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
	"github.com/chris/ad-rewards-wallet/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestStore(client DynamoDBAPI) *Store {
	return New(client, "accounts", "ads", "deposits", "ledger")
}

func TestCreateAccount(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			return *in.TableName == "accounts" && *in.ConditionExpression == "attribute_not_exists(email)"
		})).Return(&dynamodb.PutItemOutput{}, nil)

		store := newTestStore(mockClient)
		account := &models.Account{Email: "test@example.com", PasswordHash: "hash"}
		created, err := store.CreateAccount(context.Background(), account)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), created.Version)
		assert.Equal(t, int64(0), created.Balance)
		assert.False(t, created.CreatedAt.IsZero())
		mockClient.AssertExpectations(t)
	})

	t.Run("Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		store := newTestStore(mockClient)
		_, err := store.CreateAccount(context.Background(), &models.Account{Email: "test@example.com"})

		assert.ErrorIs(t, err, storage.ErrAccountExists)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		store := newTestStore(mockClient)
		_, err := store.CreateAccount(context.Background(), &models.Account{Email: "test@example.com"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create account in DynamoDB")
		mockClient.AssertExpectations(t)
	})
}

func TestGetAccount(t *testing.T) {
	email := "test@example.com"
	account := &models.Account{Email: email, Balance: 5500, WatchedAds: 1, Version: 3}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			return *in.ConsistentRead
		})).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)

		store := newTestStore(mockClient)
		retrieved, err := store.GetAccount(context.Background(), email)

		assert.NoError(t, err)
		assert.Equal(t, email, retrieved.Email)
		assert.Equal(t, int64(5500), retrieved.Balance)
		assert.Equal(t, int64(1), retrieved.WatchedAds)
		assert.Equal(t, int64(3), retrieved.Version)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		store := newTestStore(mockClient)
		_, err := store.GetAccount(context.Background(), email)

		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		store := newTestStore(mockClient)
		_, err := store.GetAccount(context.Background(), email)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get account from DynamoDB")
		mockClient.AssertExpectations(t)
	})
}
