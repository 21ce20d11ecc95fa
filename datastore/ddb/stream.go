package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/docsmith/implindex/storagemodels"
)

// Stream performs a streaming query against DynamoDB with configurable options.
// Records arrive on the returned channel page by page until the query is
// exhausted, the context is cancelled, or an unrecoverable error occurs.
func (d *DynamodbDataStore[T]) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)
	go d.streamWorker(ctx, params, options, resultCh)
	return resultCh
}

func (d *DynamodbDataStore[T]) streamWorker(
	ctx context.Context,
	params *storagemodels.QueryParams,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	var itemIndex int64
	var pageNumber int
	var nonFatal []error
	startTime := time.Now()

	reportProgress := func(lastKey map[string]types.AttributeValue) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: itemIndex,
			PagesProcessed: pageNumber,
			LastKey:        lastKey,
			Errors:         nonFatal,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(itemIndex) / elapsed
		}
		options.ProgressHandler(progress)
	}

	input := &dynamodb.QueryInput{
		TableName:                 &params.TableName,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     aws.Int32(options.PageSize),
		ScanIndexForward:          params.ScanIndexForward,
	}

	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		out, err := d.queryWithRetry(ctx, input, options)
		if err != nil {
			if options.ErrorHandler != nil && options.ErrorHandler(err) {
				// Handler elected to continue; the page is retried on the
				// next pass with a fresh retry budget.
				nonFatal = append(nonFatal, err)
				continue
			}
			resultCh <- storagemodels.StreamResult[T]{
				Error: fmt.Errorf("query failed after retries: %w", err),
				Meta: storagemodels.StreamMeta{
					Index:      itemIndex,
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			}
			return
		}

		pageNumber++

		for _, item := range out.Items {
			var record T
			result := storagemodels.StreamResult[T]{
				Raw: item,
				Meta: storagemodels.StreamMeta{
					Index:      itemIndex,
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			}
			if err := attributevalue.UnmarshalMap(item, &record); err != nil {
				result.Error = fmt.Errorf("failed to unmarshal item: %w", err)
				nonFatal = append(nonFatal, result.Error)
			} else {
				result.Item = record
			}

			select {
			case resultCh <- result:
				itemIndex++
			case <-ctx.Done():
				return
			}
		}

		reportProgress(out.LastEvaluatedKey)

		lastEvaluatedKey = out.LastEvaluatedKey
		if lastEvaluatedKey == nil {
			return
		}
	}
}

// queryWithRetry executes a query, retrying transient failures with a fixed
// backoff up to the configured retry budget.
func (d *DynamodbDataStore[T]) queryWithRetry(
	ctx context.Context,
	input *dynamodb.QueryInput,
	options storagemodels.StreamOptions,
) (*dynamodb.QueryOutput, error) {
	var lastErr error
	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(options.RetryBackoff):
			}
		}

		out, err := d.client.Query(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
