package implindex

import (
	"context"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/rs/zerolog/log"

	"github.com/docsmith/implindex/datastore"
	"github.com/docsmith/implindex/storagemodels"
)

// SyncTables persists one table record per trait, stamping each with the
// docs version and the current time. Records overwrite whatever the previous
// build stored; regeneration replaces the whole table for a trait.
func SyncTables(
	ctx context.Context,
	store datastore.DataStore[storagemodels.TableRecord],
	docsVersion string,
	tables map[string]storagemodels.Table,
) error {
	now := strfmt.DateTime(time.Now().UTC())

	for trait, table := range tables {
		rec := storagemodels.NewTableRecord(trait, table)
		rec.DocsVersion = docsVersion
		rec.GeneratedAt = &now
		rec.UpdatedAt = &now

		if err := store.Put(ctx, *rec); err != nil {
			return fmt.Errorf("failed to sync table for trait %q: %w", trait, err)
		}
		log.Debug().
			Str("trait", trait).
			Int("descriptors", table.Len()).
			Msg("synced implementor table")
	}
	return nil
}

// LoadStoredTables reads back every stored record the query returns and
// rebuilds the trait → table mapping, for consumers that warm up from the
// datastore instead of fragment artifacts.
func LoadStoredTables(
	ctx context.Context,
	store datastore.DataStore[storagemodels.TableRecord],
	params *storagemodels.QueryParams,
) (map[string]storagemodels.Table, error) {
	results, err := store.Query(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query stored tables: %w", err)
	}

	tables := make(map[string]storagemodels.Table, len(results))
	for _, r := range results {
		rec, ok := r.(*storagemodels.TableRecord)
		if !ok {
			continue
		}
		tables[rec.TraitPath] = rec.Table()
	}
	return tables, nil
}
