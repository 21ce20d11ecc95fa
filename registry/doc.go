/*
Package registry manages the process-wide registration state of implindex.

Three registries live here:

Consumer Registry:
Maps a well-known name to the callback that accepts freshly loaded
implementor tables. The site's search index registers itself once during
initialization; fragment loaders look the name up and fall back to the
mailbox pending slot when nothing is registered yet:

	registry.RegisterConsumer(registry.WellKnownConsumer, index.Add)

Duplicate registration under the same name panics; the registry is the
single rendezvous point and silent replacement would hide a wiring bug.
Dispatch performs the forward-or-queue handoff against the well-known name:

	registry.Dispatch(table) // forwarded, or parked in the default mailbox



Trait Mailbox Registry:
One mailbox per trait path, created on first use:

	registry.MailboxFor("tower::Service").Publish(table)

Index Map Registry:
Associates stored record types with DynamoDB key patterns:

	indexMap := map[string]string{
	    "PK": "TRAIT#{TraitPath}",
	    "SK": "TABLE",
	}
	registry.RegisterIndexMap[storagemodels.TableRecord](indexMap)

Record Type Registry:
Maps the RecordType attribute injected at persist time to an unmarshal
function, so polymorphic query results come back as their proper types.

All registries are thread-safe and should be populated during
initialization, typically in init() functions or through generated code.
*/
package registry
