package ddb

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"

	"github.com/docsmith/implindex/registry"
)

// DynamodbDataStore implements datastore.DataStore[T] using AWS DynamoDB as
// the underlying store. Implementor table records live in a single table,
// keyed through macro patterns registered in the index map registry.
type DynamodbDataStore[T any] struct {
	client    *sdk.Client
	tableName string
}

// recordTypeAttr is injected on every persisted item so polymorphic queries
// can unmarshal each item to its proper type.
const recordTypeAttr = "RecordType"

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg), nil
}

// NewDynamodbDataStore constructs a new DynamodbDataStore for record type T.
func NewDynamodbDataStore[T any](awsAccessKey, awsSecretKey, awsRegion, tableName string) (*DynamodbDataStore[T], error) {
	client, err := NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	log.Debug().Str("table", tableName).Str("region", awsRegion).Msg("dynamodb datastore ready")
	return &DynamodbDataStore[T]{
		client:    client,
		tableName: tableName,
	}, nil
}

// recordTypeName reports the bare type name of T, used as the RecordType attribute.
func recordTypeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// attrToString renders a scalar attribute value as the string form used in
// expanded keys. Non-scalar members render empty; key macros are expected to
// reference scalar fields only.
func attrToString(val types.AttributeValue) string {
	switch tv := val.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value
	case *types.AttributeValueMemberN:
		return tv.Value
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("%v", tv.Value)
	default:
		return ""
	}
}

// expandMacros fills each index-map template from the fields of keysInput,
// e.g. "TRAIT#{TraitPath}" becomes "TRAIT#tower::Service".
func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			key := strings.Trim(macro, "{}")
			val, ok := av[key]
			if !ok {
				return ""
			}
			return attrToString(val)
		})
	}
	return res, nil
}

// expandStringKey replaces every macro in the index-map templates with a
// single provided key. With the trait path as the only key component, each
// template carries at most one macro.
func expandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllString(template, key)
	}
	return expanded
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
// It requires non-empty values for "PK" and "SK".
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]
	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// GetOne retrieves a single record from DynamoDB using a string key, for
// implementor records the trait path. It returns nil without error when no
// item is found.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, errors.New("no index map found for record type")
	}

	keyMap, err := buildKeyFromExpanded(expandStringKey(indexMap, key))
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Put stores the given record, expanding index-map macros to populate the
// partition/sort keys (and any GSI keys) and injecting the RecordType
// attribute for polymorphic reads.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, record T) error {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return errors.New("no index map found for record type")
	}

	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	expanded, err := expandMacros(indexMap, record)
	if err != nil {
		return err
	}
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}

	if name := recordTypeName[T](); name != "" {
		av[recordTypeAttr] = &types.AttributeValueMemberS{Value: name}
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes a record from DynamoDB using a string key.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key string) error {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return errors.New("no index map found for record type")
	}

	keyMap, err := buildKeyFromExpanded(expandStringKey(indexMap, key))
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// buildUpdateExpression transforms a map of field->value into:
//   - an "update expression" (e.g., "SET #f0 = :v0, #f1 = :v1")
//   - a corresponding map of expression attribute names
//   - a corresponding map of expression attribute values
func buildUpdateExpression(updates map[string]interface{}) (string,
	map[string]string,
	map[string]types.AttributeValue,
	error) {

	if len(updates) == 0 {
		return "", nil, nil, errors.New("no updates provided")
	}

	setClauses := make([]string, 0, len(updates))
	exprAttrNames := make(map[string]string)
	exprAttrValues := make(map[string]types.AttributeValue)

	i := 0
	for field, val := range updates {
		placeholderName := fmt.Sprintf("#f%d", i)
		placeholderValue := fmt.Sprintf(":v%d", i)

		setClauses = append(setClauses, fmt.Sprintf("%s = %s", placeholderName, placeholderValue))
		exprAttrNames[placeholderName] = field

		switch typedVal := val.(type) {
		case string:
			exprAttrValues[placeholderValue] = &types.AttributeValueMemberS{Value: typedVal}
		case int, int32, int64, float64:
			exprAttrValues[placeholderValue] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%v", typedVal)}
		case bool:
			exprAttrValues[placeholderValue] = &types.AttributeValueMemberBOOL{Value: typedVal}
		default:
			marshaled, err := attributevalue.Marshal(val)
			if err != nil {
				return "", nil, nil, fmt.Errorf("unhandled update value type for field %q: %w", field, err)
			}
			exprAttrValues[placeholderValue] = marshaled
		}

		i++
	}

	return "SET " + strings.Join(setClauses, ", "), exprAttrNames, exprAttrValues, nil
}

// UpdateWithCondition applies field updates to a record only when the given
// condition expression holds, e.g. to avoid clobbering a newer docs build.
func (d *DynamodbDataStore[T]) UpdateWithCondition(ctx context.Context, keyInput any, updates map[string]interface{}, condition string) error {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return errors.New("no index map found for record type")
	}

	var keyMap map[string]types.AttributeValue
	var err error
	if key, isString := keyInput.(string); isString {
		keyMap, err = buildKeyFromExpanded(expandStringKey(indexMap, key))
	} else {
		var expanded map[string]string
		expanded, err = expandMacros(indexMap, keyInput)
		if err == nil {
			keyMap, err = buildKeyFromExpanded(expanded)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to build key: %w", err)
	}

	updateExpr, exprAttrNames, exprAttrValues, err := buildUpdateExpression(updates)
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	input := &sdk.UpdateItemInput{
		TableName:                 &d.tableName,
		Key:                       keyMap,
		UpdateExpression:          &updateExpr,
		ExpressionAttributeNames:  exprAttrNames,
		ExpressionAttributeValues: exprAttrValues,
		ReturnValues:              types.ReturnValueNone,
	}
	if condition != "" {
		input.ConditionExpression = &condition
	}

	_, err = d.client.UpdateItem(ctx, input)
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("condition failed: %w", err)
		}
		return fmt.Errorf("UpdateWithCondition failed: %w", err)
	}
	return nil
}
