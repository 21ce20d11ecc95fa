package searchindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsmith/implindex/registry"
	"github.com/docsmith/implindex/storagemodels"
)

func TestIndexSetAndLookup(t *testing.T) {
	ix := New()

	tbl := storagemodels.Table{"tower": {"descA"}}
	ix.Set("tower::Service", tbl)

	got, ok := ix.Lookup("tower::Service")
	require.True(t, ok)
	assert.True(t, got.Equal(tbl))

	_, ok = ix.Lookup("tower::Layer")
	assert.False(t, ok)
}

func TestIndexReplacesOnRegeneration(t *testing.T) {
	ix := New()

	ix.Set("tower::Service", storagemodels.Table{"tower": {"old"}})
	ix.Set("tower::Service", storagemodels.Table{"tower": {"new"}})

	got, _ := ix.Lookup("tower::Service")
	assert.Equal(t, []storagemodels.Descriptor{"new"}, got["tower"])
	assert.Equal(t, 1, ix.Len())
}

func TestIndexDrainsPendingOnAttach(t *testing.T) {
	t.Cleanup(registry.ResetMailboxes)

	// Publish before the consumer exists; the table parks in the slot.
	tbl := storagemodels.Table{"tower": {"descA", "descB"}}
	registry.MailboxFor("tower::Service").Publish(tbl)

	ix := New()
	ix.AttachTraits()

	got, ok := ix.Lookup("tower::Service")
	require.True(t, ok, "attach should drain the pending table into the index")
	assert.True(t, got.Equal(tbl))

	_, pending := registry.MailboxFor("tower::Service").Pending()
	assert.False(t, pending)

	// Later publishes flow straight through.
	next := storagemodels.Table{"tower": {"descC"}}
	registry.MailboxFor("tower::Service").Publish(next)
	got, _ = ix.Lookup("tower::Service")
	assert.True(t, got.Equal(next))
}

func TestTraitsImplementedIn(t *testing.T) {
	ix := New()
	ix.Set("tower::Service", storagemodels.Table{
		"tower":       {"descA"},
		"tower_layer": {"descB"},
	})
	ix.Set("tower::Layer", storagemodels.Table{
		"tower_layer": {"descC"},
	})
	ix.Set("tower::load::Load", storagemodels.Table{
		"tower": {"descD"},
	})

	assert.Equal(t, []string{"tower::Layer", "tower::Service"}, ix.TraitsImplementedIn("tower_layer"))
	assert.Equal(t, []string{"tower::Service", "tower::load::Load"}, ix.TraitsImplementedIn("tower"))
	assert.Empty(t, ix.TraitsImplementedIn("nothing"))
}

func TestDescriptorsFlattened(t *testing.T) {
	ix := New()
	ix.Set("tower::Service", storagemodels.Table{
		"tower_util": {"u1", "u2"},
		"tower":      {"t1"},
	})

	// Libraries sorted, generation order kept within each.
	assert.Equal(t,
		[]storagemodels.Descriptor{"t1", "u1", "u2"},
		ix.Descriptors("tower::Service"))

	assert.Nil(t, ix.Descriptors("tower::Missing"))
}
