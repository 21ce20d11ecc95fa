package ddb

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/docsmith/implindex/registry"
	"github.com/docsmith/implindex/storagemodels"
)

func init() {
	registry.RegisterRecordType("TableRecord", func(item map[string]types.AttributeValue) (interface{}, error) {
		rec := &storagemodels.TableRecord{}
		if err := attributevalue.UnmarshalMap(item, rec); err != nil {
			return nil, err
		}
		return rec, nil
	})

	registry.RegisterIndexMap[storagemodels.TableRecord](map[string]string{
		"PK":     "TRAIT#{TraitPath}",
		"SK":     "TABLE",
		"GSI1PK": "DOCS#{DocsVersion}",
		"GSI1SK": "{UpdatedAt}",
	})
}

func TestGSIQueryBuilder(t *testing.T) {
	t.Run("BuildBasicGSIQuery", func(t *testing.T) {
		store := &DynamodbDataStore[storagemodels.TableRecord]{
			tableName: "docs-implementors",
		}

		params, err := store.QueryGSI().
			WithPartitionKey("v0.4.13").
			Build()
		if err != nil {
			t.Fatalf("Failed to build query: %v", err)
		}

		if params.IndexName == nil || *params.IndexName != "GSI1" {
			t.Errorf("Expected IndexName to be GSI1")
		}

		expectedKey := "GSI1PK = :pk"
		if params.KeyConditionExpression != expectedKey {
			t.Errorf("Expected key condition %s, got %s", expectedKey, params.KeyConditionExpression)
		}

		pkVal := params.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS).Value
		if pkVal != "DOCS#v0.4.13" {
			t.Errorf("Expected PK value DOCS#v0.4.13, got %s", pkVal)
		}
	})

	t.Run("BuildGSIQueryWithSortKeyRange", func(t *testing.T) {
		store := &DynamodbDataStore[storagemodels.TableRecord]{
			tableName: "docs-implementors",
		}

		since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		params, err := store.QueryRegenerated("v0.4.13").
			Since(since).
			Latest().
			Build()
		if err != nil {
			t.Fatalf("Failed to build query: %v", err)
		}

		expectedKey := "GSI1PK = :pk AND GSI1SK > :sk"
		if params.KeyConditionExpression != expectedKey {
			t.Errorf("Expected key condition %q, got %q", expectedKey, params.KeyConditionExpression)
		}

		skVal := params.ExpressionAttributeValues[":sk"].(*types.AttributeValueMemberS).Value
		if skVal != "2025-06-01T00:00:00Z" {
			t.Errorf("Expected SK value 2025-06-01T00:00:00Z, got %s", skVal)
		}

		if params.ScanIndexForward == nil || *params.ScanIndexForward {
			t.Error("Latest() should traverse the index descending")
		}
	})

	t.Run("BuildBetween", func(t *testing.T) {
		store := &DynamodbDataStore[storagemodels.TableRecord]{
			tableName: "docs-implementors",
		}

		start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
		params, err := store.QueryRegenerated("v0.4.13").
			Between(start, end).
			Build()
		if err != nil {
			t.Fatalf("Failed to build query: %v", err)
		}

		expectedKey := "GSI1PK = :pk AND GSI1SK BETWEEN :sk AND :sk2"
		if params.KeyConditionExpression != expectedKey {
			t.Errorf("Expected key condition %q, got %q", expectedKey, params.KeyConditionExpression)
		}

		sk2 := params.ExpressionAttributeValues[":sk2"].(*types.AttributeValueMemberS).Value
		if sk2 != "2025-06-02T00:00:00Z" {
			t.Errorf("Expected :sk2 2025-06-02T00:00:00Z, got %s", sk2)
		}
	})

	t.Run("MissingPartitionKey", func(t *testing.T) {
		store := &DynamodbDataStore[storagemodels.TableRecord]{
			tableName: "docs-implementors",
		}

		if _, err := store.QueryGSI().Build(); err == nil {
			t.Fatal("Expected error when partition key value is missing")
		}
	})

	t.Run("WithFilter", func(t *testing.T) {
		store := &DynamodbDataStore[storagemodels.TableRecord]{
			tableName: "docs-implementors",
		}

		params, err := store.QueryGSI().
			WithPartitionKey("v0.4.13").
			WithFilter("TraitPath = :trait", map[string]types.AttributeValue{
				":trait": &types.AttributeValueMemberS{Value: "tower::Service"},
			}).
			Build()
		if err != nil {
			t.Fatalf("Failed to build query: %v", err)
		}

		if params.FilterExpression == nil || *params.FilterExpression != "TraitPath = :trait" {
			t.Error("Filter expression not applied")
		}
		if _, ok := params.ExpressionAttributeValues[":trait"]; !ok {
			t.Error("Filter value not merged into expression values")
		}
	})
}

func TestExpandStringKey(t *testing.T) {
	indexMap := map[string]string{
		"PK": "TRAIT#{TraitPath}",
		"SK": "TABLE",
	}
	expanded := expandStringKey(indexMap, "tower::Service")
	if expanded["PK"] != "TRAIT#tower::Service" {
		t.Errorf("Unexpected PK %q", expanded["PK"])
	}
	if expanded["SK"] != "TABLE" {
		t.Errorf("Static SK should pass through, got %q", expanded["SK"])
	}
}

func TestExpandMacros(t *testing.T) {
	rec := storagemodels.TableRecord{
		TraitPath:   "tower::Service",
		DocsVersion: "v0.4.13",
	}

	indexMap, _ := registry.GetIndexMap[storagemodels.TableRecord]()
	expanded, err := expandMacros(indexMap, rec)
	if err != nil {
		t.Fatalf("expandMacros failed: %v", err)
	}

	if expanded["PK"] != "TRAIT#tower::Service" {
		t.Errorf("Unexpected PK %q", expanded["PK"])
	}
	if expanded["GSI1PK"] != "DOCS#v0.4.13" {
		t.Errorf("Unexpected GSI1PK %q", expanded["GSI1PK"])
	}
}

func TestBuildUpdateExpression(t *testing.T) {
	updates := map[string]interface{}{
		"DocsVersion": "v0.4.14",
	}

	expr, names, values, err := buildUpdateExpression(updates)
	if err != nil {
		t.Fatalf("buildUpdateExpression failed: %v", err)
	}

	if expr != "SET #f0 = :v0" {
		t.Errorf("Unexpected expression %q", expr)
	}
	if names["#f0"] != "DocsVersion" {
		t.Errorf("Unexpected attribute name mapping %v", names)
	}
	v := values[":v0"].(*types.AttributeValueMemberS).Value
	if v != "v0.4.14" {
		t.Errorf("Unexpected value %q", v)
	}

	if _, _, _, err := buildUpdateExpression(nil); err == nil {
		t.Error("Expected error for empty updates")
	}
}

func TestRecordTypeName(t *testing.T) {
	if got := recordTypeName[storagemodels.TableRecord](); got != "TableRecord" {
		t.Errorf("Expected TableRecord, got %q", got)
	}
}
