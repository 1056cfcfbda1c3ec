package s3

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/odorsearch/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDDBClient is an in-memory DynamoDB mock for testing.
type mockDDBClient struct {
	mu    sync.RWMutex
	items map[string]map[string]types.AttributeValue // experiment:version -> item
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{
		items: make(map[string]map[string]types.AttributeValue),
	}
}

func (m *mockDDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	experiment := params.Item["experiment"].(*types.AttributeValueMemberS).Value
	version := params.Item["version"].(*types.AttributeValueMemberN).Value
	key := experiment + ":" + version

	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(version)" {
		if _, exists := m.items[key]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
		}
	}

	m.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	experiment := params.ExpressionAttributeValues[":e"].(*types.AttributeValueMemberS).Value

	var items []map[string]types.AttributeValue
	for _, item := range m.items {
		if item["experiment"].(*types.AttributeValueMemberS).Value == experiment {
			items = append(items, item)
		}
	}

	version := func(item map[string]types.AttributeValue) uint64 {
		v, _ := strconv.ParseUint(item["version"].(*types.AttributeValueMemberN).Value, 10, 64)
		return v
	}
	sort.Slice(items, func(i, j int) bool {
		if params.ScanIndexForward != nil && !*params.ScanIndexForward {
			return version(items[i]) > version(items[j])
		}
		return version(items[i]) < version(items[j])
	})

	if params.Limit != nil && int(*params.Limit) < len(items) {
		items = items[:*params.Limit]
	}

	return &dynamodb.QueryOutput{Items: items}, nil
}

func TestRunIndex_Empty(t *testing.T) {
	index := NewRunIndex(newMockDDBClient(), "runs")

	_, err := index.Latest(context.Background(), "lab-a")
	assert.ErrorIs(t, err, archive.ErrNotFound)
}

func TestRunIndex_Commit(t *testing.T) {
	ctx := context.Background()
	index := NewRunIndex(newMockDDBClient(), "runs")
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	index.now = func() time.Time { return fixed }

	for i := 1; i <= 3; i++ {
		entry, err := index.Commit(ctx, "lab-a", fmt.Sprintf("reports/run-%d.json", i))
		require.NoError(t, err)
		assert.Equal(t, uint64(i), entry.Version)
	}

	latest, err := index.Latest(ctx, "lab-a")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), latest.Version)
	assert.Equal(t, "reports/run-3.json", latest.ReportKey)
	assert.True(t, fixed.Equal(latest.CommittedAt))

	_, err = index.Latest(ctx, "lab-b")
	assert.ErrorIs(t, err, archive.ErrNotFound)
}

func TestRunIndex_ConcurrentModification(t *testing.T) {
	ctx := context.Background()
	client := newMockDDBClient()
	index := NewRunIndex(client, "runs")

	_, err := index.Commit(ctx, "lab-a", "reports/one.json")
	require.NoError(t, err)

	// Another writer takes version 2 between our read and our write.
	racing := &racingDDBClient{mockDDBClient: client}
	index = NewRunIndex(racing, "runs")

	_, err = index.Commit(ctx, "lab-a", "reports/two.json")
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

type racingDDBClient struct {
	*mockDDBClient
	once sync.Once
}

func (r *racingDDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	r.once.Do(func() {
		other := make(map[string]types.AttributeValue, len(params.Item))
		for k, v := range params.Item {
			other[k] = v
		}
		other["report_key"] = &types.AttributeValueMemberS{Value: "reports/other.json"}
		_, _ = r.mockDDBClient.PutItem(ctx, &dynamodb.PutItemInput{Item: other})
	})
	return r.mockDDBClient.PutItem(ctx, params, optFns...)
}
