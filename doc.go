/*
Package implindex manages a documentation site's implementor index: the
per-trait tables, generated by an offline docs compiler, that list which
types implement a trait, grouped by the library defining them.

The module covers the path from generated artifact to consumer:
  - Loading: the fragment package parses generated implementor artifacts
    into tables of opaque descriptor strings.
  - Handoff: the mailbox package either forwards a loaded table to the
    attached consumer or parks it in a pending slot until one attaches.
  - Consumption: the searchindex package accumulates tables and answers
    trait/library lookups.
  - Persistence: the datastore packages store table records in DynamoDB for
    incremental site rebuilds.

Basic Usage:

	// Load every fragment artifact under a docs output root
	tables, err := fragment.LoadDir("docs")

	// Publish each table; consumers may not be up yet, the mailbox holds them
	for trait, table := range tables {
	    registry.MailboxFor(trait).Publish(table)
	}

	// The search index attaches later and drains what was pending
	ix := searchindex.New()
	ix.AttachTraits()

	// Persist table records for the next incremental rebuild
	store, _ := ddb.NewDynamodbDataStore[storagemodels.TableRecord](key, secret, region, table)
	err = implindex.SyncTables(ctx, store, "v0.4.13", tables)

Descriptor strings may embed markup destined for the docs renderer; every
layer of this module treats them as uninterpreted payload.
*/
package implindex
