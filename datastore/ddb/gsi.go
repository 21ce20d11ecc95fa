package ddb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/docsmith/implindex/registry"
	"github.com/docsmith/implindex/storagemodels"
)

// GSIConfig holds the configuration for GSI key mappings
type GSIConfig struct {
	// IndexName is the actual GSI name in DynamoDB (e.g., "GSI1")
	IndexName string
	// PartitionKeyName is the actual partition key attribute name in the GSI (e.g., "PK1")
	PartitionKeyName string
	// SortKeyName is the actual sort key attribute name in the GSI (e.g., "SK1")
	SortKeyName string
}

// DefaultGSIConfigs holds the default GSI configurations
var DefaultGSIConfigs = map[string]GSIConfig{
	"GSI1": {
		IndexName:        "GSI1",
		PartitionKeyName: "GSI1PK",
		SortKeyName:      "GSI1SK",
	},
}

// GetGSIConfig returns the GSI configuration for a given index name
func GetGSIConfig(indexName string) (GSIConfig, bool) {
	config, ok := DefaultGSIConfigs[indexName]
	return config, ok
}

// GSIQueryBuilder provides a fluent interface for building GSI queries.
// For implementor records the GSI1 partition key carries the docs version,
// and the sort key carries the update timestamp, so the builder doubles as
// the entry point for "what changed since" queries.
type GSIQueryBuilder[T any] struct {
	store      *DynamodbDataStore[T]
	params     *storagemodels.QueryParams
	indexName  string
	pkValue    string
	skValue    string
	skOperator string // "=", "begins_with", ">", "<", ">=", "<=", "BETWEEN"
	filters    []string
	filterVals map[string]types.AttributeValue
}

// QueryGSI creates a new GSI query builder against GSI1.
func (d *DynamodbDataStore[T]) QueryGSI() *GSIQueryBuilder[T] {
	return &GSIQueryBuilder[T]{
		store:      d,
		indexName:  "GSI1",
		filterVals: make(map[string]types.AttributeValue),
		params: &storagemodels.QueryParams{
			TableName:                 d.tableName,
			ExpressionAttributeValues: make(map[string]types.AttributeValue),
		},
	}
}

// WithPartitionKey sets the GSI partition key value
func (q *GSIQueryBuilder[T]) WithPartitionKey(value string) *GSIQueryBuilder[T] {
	q.pkValue = value
	return q
}

// WithSortKey sets the GSI sort key value with equals operator
func (q *GSIQueryBuilder[T]) WithSortKey(value string) *GSIQueryBuilder[T] {
	q.skValue = value
	q.skOperator = "="
	return q
}

// WithSortKeyPrefix sets the GSI sort key to use begins_with operator
func (q *GSIQueryBuilder[T]) WithSortKeyPrefix(prefix string) *GSIQueryBuilder[T] {
	q.skValue = prefix
	q.skOperator = "begins_with"
	return q
}

// WithSortKeyGreaterThan sets the GSI sort key to use > operator
func (q *GSIQueryBuilder[T]) WithSortKeyGreaterThan(value string) *GSIQueryBuilder[T] {
	q.skValue = value
	q.skOperator = ">"
	return q
}

// WithSortKeyLessThan sets the GSI sort key to use < operator
func (q *GSIQueryBuilder[T]) WithSortKeyLessThan(value string) *GSIQueryBuilder[T] {
	q.skValue = value
	q.skOperator = "<"
	return q
}

// WithSortKeyBetween sets the GSI sort key to use BETWEEN operator
func (q *GSIQueryBuilder[T]) WithSortKeyBetween(start, end string) *GSIQueryBuilder[T] {
	q.skValue = start
	q.skOperator = "BETWEEN"
	q.params.ExpressionAttributeValues[":sk2"] = &types.AttributeValueMemberS{Value: end}
	return q
}

// WithFilter adds a filter expression
func (q *GSIQueryBuilder[T]) WithFilter(expression string, values map[string]types.AttributeValue) *GSIQueryBuilder[T] {
	q.filters = append(q.filters, expression)
	for k, v := range values {
		q.filterVals[k] = v
	}
	return q
}

// WithLimit sets the query limit
func (q *GSIQueryBuilder[T]) WithLimit(limit int32) *GSIQueryBuilder[T] {
	q.params.Limit = aws.Int32(limit)
	return q
}

// WithOrder sets the traversal order; false returns newest-first when the
// sort key is a timestamp.
func (q *GSIQueryBuilder[T]) WithOrder(ascending bool) *GSIQueryBuilder[T] {
	q.params.ScanIndexForward = aws.Bool(ascending)
	return q
}

// expandPattern applies a raw value to a key pattern: a prefixed pattern like
// "DOCS#{DocsVersion}" keeps its static prefix, a bare macro passes the value
// through.
func expandPattern(pattern, value string) string {
	if idx := strings.Index(pattern, "#"); idx >= 0 {
		return pattern[:idx] + "#" + value
	}
	return value
}

// Build constructs the final query parameters
func (q *GSIQueryBuilder[T]) Build() (*storagemodels.QueryParams, error) {
	if q.pkValue == "" {
		return nil, fmt.Errorf("GSI partition key value is required")
	}

	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, fmt.Errorf("no index map found for type %T", *new(T))
	}

	cfg, ok := GetGSIConfig(q.indexName)
	if !ok {
		return nil, fmt.Errorf("unknown GSI %q", q.indexName)
	}

	pkPattern, ok := indexMap[cfg.PartitionKeyName]
	if !ok {
		return nil, fmt.Errorf("%s not found in index map", cfg.PartitionKeyName)
	}

	keyConditions := []string{fmt.Sprintf("%s = :pk", cfg.PartitionKeyName)}
	q.params.ExpressionAttributeValues[":pk"] = &types.AttributeValueMemberS{
		Value: expandPattern(pkPattern, q.pkValue),
	}

	if q.skValue != "" {
		skPattern, hasSK := indexMap[cfg.SortKeyName]
		if hasSK {
			expandedSK := q.skValue
			if strings.Contains(skPattern, "#") && !strings.Contains(expandedSK, "#") {
				expandedSK = expandPattern(skPattern, q.skValue)
			}

			skAttr := &types.AttributeValueMemberS{Value: expandedSK}
			switch q.skOperator {
			case "=", ">", "<", ">=", "<=":
				keyConditions = append(keyConditions,
					fmt.Sprintf("%s %s :sk", cfg.SortKeyName, q.skOperator))
				q.params.ExpressionAttributeValues[":sk"] = skAttr
			case "begins_with":
				keyConditions = append(keyConditions,
					fmt.Sprintf("begins_with(%s, :sk)", cfg.SortKeyName))
				q.params.ExpressionAttributeValues[":sk"] = skAttr
			case "BETWEEN":
				keyConditions = append(keyConditions,
					fmt.Sprintf("%s BETWEEN :sk AND :sk2", cfg.SortKeyName))
				q.params.ExpressionAttributeValues[":sk"] = skAttr
				// :sk2 was set in WithSortKeyBetween
			}
		}
	}

	q.params.KeyConditionExpression = strings.Join(keyConditions, " AND ")
	q.params.IndexName = aws.String(q.indexName)

	if len(q.filters) > 0 {
		q.params.FilterExpression = aws.String(strings.Join(q.filters, " AND "))
		for k, v := range q.filterVals {
			q.params.ExpressionAttributeValues[k] = v
		}
	}

	return q.params, nil
}

// Execute runs the query and returns typed results
func (q *GSIQueryBuilder[T]) Execute(ctx context.Context) ([]T, error) {
	params, err := q.Build()
	if err != nil {
		return nil, err
	}

	results, err := q.store.Query(ctx, params)
	if err != nil {
		return nil, err
	}

	typedResults := make([]T, 0, len(results))
	for _, r := range results {
		if typed, ok := r.(T); ok {
			typedResults = append(typedResults, typed)
		} else if typed, ok := r.(*T); ok {
			typedResults = append(typedResults, *typed)
		}
	}
	return typedResults, nil
}

// Stream executes the query as a stream
func (q *GSIQueryBuilder[T]) Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	params, err := q.Build()
	if err != nil {
		ch := make(chan storagemodels.StreamResult[T], 1)
		ch <- storagemodels.StreamResult[T]{
			Error: fmt.Errorf("failed to build query: %w", err),
		}
		close(ch)
		return ch
	}
	return q.store.Stream(ctx, params, opts...)
}

// Regeneration-time queries: implementor tables carry their last update
// timestamp in the GSI sort key, so incremental rebuilds can ask for what
// changed in a window.

// RegeneratedQueryBuilder narrows a GSI query to update-time conditions.
type RegeneratedQueryBuilder[T any] struct {
	*GSIQueryBuilder[T]
}

// QueryRegenerated starts a query over the records of one docs version,
// filtered by regeneration time.
func (d *DynamodbDataStore[T]) QueryRegenerated(docsVersion string) *RegeneratedQueryBuilder[T] {
	return &RegeneratedQueryBuilder[T]{
		GSIQueryBuilder: d.QueryGSI().WithPartitionKey(docsVersion),
	}
}

// Since keeps records regenerated at or after the given time.
func (q *RegeneratedQueryBuilder[T]) Since(t time.Time) *RegeneratedQueryBuilder[T] {
	q.WithSortKeyGreaterThan(t.UTC().Format(time.RFC3339))
	return q
}

// Between keeps records regenerated inside the given window.
func (q *RegeneratedQueryBuilder[T]) Between(start, end time.Time) *RegeneratedQueryBuilder[T] {
	q.WithSortKeyBetween(start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	return q
}

// InLastHours keeps records regenerated in the last N hours.
func (q *RegeneratedQueryBuilder[T]) InLastHours(hours int) *RegeneratedQueryBuilder[T] {
	return q.Since(time.Now().Add(-time.Duration(hours) * time.Hour))
}

// Latest returns results newest-first.
func (q *RegeneratedQueryBuilder[T]) Latest() *RegeneratedQueryBuilder[T] {
	q.WithOrder(false)
	return q
}

// Execute runs the query and returns results
func (q *RegeneratedQueryBuilder[T]) Execute(ctx context.Context) ([]T, error) {
	return q.GSIQueryBuilder.Execute(ctx)
}
