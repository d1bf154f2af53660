package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListLedgerEntries(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		entryAV, _ := attributevalue.MarshalMap(models.LedgerEntry{EntryID: "deposit#conf-1", AccountID: "test@example.com", Kind: models.KindDeposit, Credit: 5000})
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return *in.IndexName == ledgerAccountGSI && !*in.ScanIndexForward && *in.Limit == 25
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{entryAV}}, nil)

		store := newTestStore(mockClient)
		entries, err := store.ListLedgerEntries(context.Background(), "test@example.com", 25)

		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.Equal(t, models.KindDeposit, entries[0].Kind)
		assert.Equal(t, int64(5000), entries[0].Credit)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

		store := newTestStore(mockClient)
		_, err := store.ListLedgerEntries(context.Background(), "test@example.com", 25)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query for ledger entries")
	})
}
