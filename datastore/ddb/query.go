package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/docsmith/implindex/registry"
	"github.com/docsmith/implindex/storagemodels"
)

// Query performs a query against the DynamoDB table using the provided parameters.
// It uses the injected RecordType attribute (added at persist time) to select the
// correct unmarshal function from the record registry so that each item is
// unmarshaled to its proper type.
func (d *DynamodbDataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error) {
	input := &dynamodb.QueryInput{
		TableName:                 &params.TableName,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     params.Limit,
		ScanIndexForward:          params.ScanIndexForward,
	}
	out, err := d.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	var results []interface{}
	for _, item := range out.Items {
		var recordType string
		if attr, ok := item[recordTypeAttr]; ok {
			if err := attributevalue.Unmarshal(attr, &recordType); err != nil {
				return nil, fmt.Errorf("failed to unmarshal %s: %w", recordTypeAttr, err)
			}
		} else {
			return nil, fmt.Errorf("missing %s attribute in item", recordTypeAttr)
		}

		unmarshalFn, err := registry.GetUnmarshalFunc(recordType)
		if err != nil {
			// Fallback: if no function is registered, unmarshal into a generic map.
			var generic map[string]interface{}
			if err := attributevalue.UnmarshalMap(item, &generic); err != nil {
				return nil, fmt.Errorf("failed to unmarshal generic item: %w", err)
			}
			results = append(results, generic)
			continue
		}

		obj, err := unmarshalFn(item)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal item for %s %q: %w", recordTypeAttr, recordType, err)
		}
		results = append(results, obj)
	}

	return results, nil
}
