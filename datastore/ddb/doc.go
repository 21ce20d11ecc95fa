/*
Package ddb provides a DynamoDB implementation of the DataStore interface for
implementor table records.

The DynamodbDataStore supports:
  - Single-table design patterns
  - Macro-based key expansion (e.g., "TRAIT#{TraitPath}")
  - Global Secondary Index (GSI) queries
  - Streaming with retry logic
  - Conditional updates for optimistic locking
  - Automatic RecordType injection for polymorphic reads

Key patterns for implementor records put the trait path in the primary key
and the docs version plus update time in GSI1:

	indexMap := map[string]string{
	    "PK":     "TRAIT#{TraitPath}",
	    "SK":     "TABLE",
	    "GSI1PK": "DOCS#{DocsVersion}",
	    "GSI1SK": "{UpdatedAt}",
	}
	registry.RegisterIndexMap[storagemodels.TableRecord](indexMap)

Incremental rebuilds then ask for what changed:

	records, err := store.QueryRegenerated("v0.4.13").
	    InLastHours(24).
	    Latest().
	    Execute(ctx)

Streaming supports configurable options:

	results := store.Stream(ctx, params,
	    storagemodels.WithBufferSize(100),
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	)

Integration tests require AWS credentials in the environment (a .env file is
honored) and are skipped without them.
*/
package ddb
