/*
Package storagemodels defines the data structures used throughout implindex.

Key Types:

Table:
The in-memory implementor table for one trait, mapping a library name to the
ordered descriptors of the implementing types that library contributes:

	t := storagemodels.Table{
	    "tower":       {"<desc for Retry>", "<desc for Timeout>"},
	    "tower_layer": {"<desc for Stack>"},
	}

Descriptors are opaque formatted strings. They may contain embedded markup
destined for the docs renderer; nothing in this module inspects them.

TableRecord:
The persisted form of one trait's table, with per-library descriptor lists in
a stable sorted shape plus generation timestamps:

	rec := storagemodels.NewTableRecord("tower::Service", t)
	rec.GeneratedAt = &now

QueryParams:
Parameters for querying the datastore:

	params := &QueryParams{
	    TableName:              "docs-implementors",
	    KeyConditionExpression: "PK = :pk",
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":pk": &types.AttributeValueMemberS{Value: "TRAIT#tower::Service"},
	    },
	}

StreamResult:
Results from streaming operations with metadata:

	type StreamResult[T any] struct {
	    Item  T                               // The typed record
	    Raw   map[string]types.AttributeValue // Raw DynamoDB attributes
	    Error error                           // Item-specific error, if any
	    Meta  StreamMeta                      // Metadata about this item
	}

These types provide a consistent interface across different storage implementations.
*/
package storagemodels
