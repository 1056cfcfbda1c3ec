package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/odorsearch/archive"
)

// ErrConcurrentModification is returned when another writer committed the same version first.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// IndexEntry is one committed report of an experiment.
type IndexEntry struct {
	Experiment  string
	Version     uint64
	ReportKey   string
	CommittedAt time.Time
}

// RunIndex records, per experiment, a versioned list of archived report keys.
// DynamoDB conditional writes give the compare-and-swap S3 lacks, so several
// rigs can archive into the same experiment.
//
// Table schema:
//   - Partition key: experiment (string)
//   - Sort key: version (number) - monotonically increasing version
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name odor-run-index \
//	  --attribute-definitions AttributeName=experiment,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=experiment,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type RunIndex struct {
	client    DDBClient
	tableName string
	now       func() time.Time
}

// NewRunIndex creates a run index on the given table.
func NewRunIndex(client DDBClient, tableName string) *RunIndex {
	return &RunIndex{
		client:    client,
		tableName: tableName,
		now:       time.Now,
	}
}

// Latest returns the most recent entry of an experiment, or archive.ErrNotFound.
func (x *RunIndex) Latest(ctx context.Context, experiment string) (IndexEntry, error) {
	resp, err := x.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(x.tableName),
		KeyConditionExpression: aws.String("experiment = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: experiment},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return IndexEntry{}, fmt.Errorf("failed to query DynamoDB: %w", err)
	}
	if len(resp.Items) == 0 {
		return IndexEntry{}, archive.ErrNotFound
	}

	return decodeIndexEntry(experiment, resp.Items[0])
}

// Commit appends reportKey as the next version of experiment. It returns
// ErrConcurrentModification when another writer took that version.
func (x *RunIndex) Commit(ctx context.Context, experiment, reportKey string) (IndexEntry, error) {
	var current uint64
	latest, err := x.Latest(ctx, experiment)
	switch {
	case err == nil:
		current = latest.Version
	case !errors.Is(err, archive.ErrNotFound):
		return IndexEntry{}, err
	}

	entry := IndexEntry{
		Experiment:  experiment,
		Version:     current + 1,
		ReportKey:   reportKey,
		CommittedAt: x.now().UTC(),
	}

	_, err = x.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(x.tableName),
		Item: map[string]types.AttributeValue{
			"experiment":   &types.AttributeValueMemberS{Value: experiment},
			"version":      &types.AttributeValueMemberN{Value: strconv.FormatUint(entry.Version, 10)},
			"report_key":   &types.AttributeValueMemberS{Value: reportKey},
			"committed_at": &types.AttributeValueMemberS{Value: entry.CommittedAt.Format(time.RFC3339Nano)},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return IndexEntry{}, ErrConcurrentModification
		}
		return IndexEntry{}, fmt.Errorf("failed to commit version to DynamoDB: %w", err)
	}

	return entry, nil
}

func decodeIndexEntry(experiment string, item map[string]types.AttributeValue) (IndexEntry, error) {
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return IndexEntry{}, errors.New("invalid version attribute in DynamoDB")
	}
	keyAttr, ok := item["report_key"].(*types.AttributeValueMemberS)
	if !ok {
		return IndexEntry{}, errors.New("invalid report_key attribute in DynamoDB")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("failed to parse version: %w", err)
	}

	entry := IndexEntry{Experiment: experiment, Version: version, ReportKey: keyAttr.Value}
	if at, ok := item["committed_at"].(*types.AttributeValueMemberS); ok {
		if ts, err := time.Parse(time.RFC3339Nano, at.Value); err == nil {
			entry.CommittedAt = ts
		}
	}
	return entry, nil
}
