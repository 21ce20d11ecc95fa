package searchindex

import (
	"sort"
	"sync"

	"github.com/docsmith/implindex/mailbox"
	"github.com/docsmith/implindex/registry"
	"github.com/docsmith/implindex/storagemodels"
)

// Index is the consumer side of the implementor handoff: it accumulates the
// per-trait implementor tables published by fragment loads and answers
// lookups for the site's navigation data.
type Index struct {
	mu     sync.RWMutex
	tables map[string]storagemodels.Table
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		tables: make(map[string]storagemodels.Table),
	}
}

// Set records the implementor table for a trait, replacing any previous
// table for that trait. Fragment loads carry the whole table, so replacement
// is the correct semantics for a regenerated artifact.
func (ix *Index) Set(traitPath string, t storagemodels.Table) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.tables[traitPath] = t
}

// Consumer returns a mailbox consumer bound to one trait. Attaching it to
// that trait's mailbox drains any pending table into the index.
func (ix *Index) Consumer(traitPath string) mailbox.ConsumerFunc {
	return func(t storagemodels.Table) {
		ix.Set(traitPath, t)
	}
}

// AttachTraits attaches the index to every trait mailbox currently
// registered, draining pending tables as it goes. Mailboxes created after
// this call are not covered; call again after new traits appear.
func (ix *Index) AttachTraits() {
	for _, trait := range registry.Traits() {
		registry.MailboxFor(trait).Attach(ix.Consumer(trait))
	}
}

// Lookup returns the implementor table for a trait.
func (ix *Index) Lookup(traitPath string) (storagemodels.Table, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	t, ok := ix.tables[traitPath]
	return t, ok
}

// Traits returns the trait paths with an indexed table, sorted.
func (ix *Index) Traits() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	traits := make([]string, 0, len(ix.tables))
	for trait := range ix.tables {
		traits = append(traits, trait)
	}
	sort.Strings(traits)
	return traits
}

// TraitsImplementedIn returns the traits for which the given library
// contributes at least one implementor, sorted.
func (ix *Index) TraitsImplementedIn(library string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var traits []string
	for trait, table := range ix.tables {
		if len(table[library]) > 0 {
			traits = append(traits, trait)
		}
	}
	sort.Strings(traits)
	return traits
}

// Descriptors returns the flattened descriptor list for a trait, libraries
// in sorted order, descriptors in generation order within each library.
func (ix *Index) Descriptors(traitPath string) []storagemodels.Descriptor {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	table, ok := ix.tables[traitPath]
	if !ok {
		return nil
	}
	var out []storagemodels.Descriptor
	for _, lib := range table.Libraries() {
		out = append(out, table[lib]...)
	}
	return out
}

// Len reports the number of indexed traits.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.tables)
}
