package storagemodels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableCloneIsDeep(t *testing.T) {
	orig := Table{
		"tower": {"descA", "descB"},
	}

	cp := orig.Clone()
	require.True(t, orig.Equal(cp))

	cp["tower"][0] = "mutated"
	assert.Equal(t, Descriptor("descA"), orig["tower"][0], "clone must not share descriptor slices")

	assert.Nil(t, Table(nil).Clone())
}

func TestTableEqual(t *testing.T) {
	a := Table{"tower": {"descA", "descB"}, "tower_layer": {"descC"}}

	t.Run("SameContents", func(t *testing.T) {
		b := Table{"tower_layer": {"descC"}, "tower": {"descA", "descB"}}
		assert.True(t, a.Equal(b))
	})

	t.Run("OrderWithinLibraryMatters", func(t *testing.T) {
		b := Table{"tower": {"descB", "descA"}, "tower_layer": {"descC"}}
		assert.False(t, a.Equal(b))
	})

	t.Run("MissingLibrary", func(t *testing.T) {
		b := Table{"tower": {"descA", "descB"}}
		assert.False(t, a.Equal(b))
	})
}

func TestTableLibrariesSorted(t *testing.T) {
	tbl := Table{
		"tower_util":  {"d1"},
		"tower":       {"d2"},
		"tower_layer": {"d3"},
	}
	assert.Equal(t, []string{"tower", "tower_layer", "tower_util"}, tbl.Libraries())
	assert.Equal(t, 3, tbl.Len())
}

func TestTableMerge(t *testing.T) {
	a := Table{"tower": {"descA"}}
	b := Table{"tower": {"descB"}, "tower_layer": {"descC"}}

	merged := a.Merge(b)
	assert.Equal(t, []Descriptor{"descA", "descB"}, merged["tower"])
	assert.Equal(t, []Descriptor{"descC"}, merged["tower_layer"])

	// Inputs stay untouched.
	assert.Equal(t, []Descriptor{"descA"}, a["tower"])

	fromNil := Table(nil).Merge(b)
	assert.True(t, fromNil.Equal(b))
}

func TestTableRecordRoundTrip(t *testing.T) {
	tbl := Table{
		"tower":       {"descA", "descB"},
		"tower_layer": {"descC"},
	}

	rec := NewTableRecord("tower::Service", tbl)
	require.Equal(t, "tower::Service", rec.TraitPath)
	require.Len(t, rec.Implementors, 2)

	// Sorted library order in the stored shape.
	assert.Equal(t, "tower", rec.Implementors[0].Library)
	assert.Equal(t, "tower_layer", rec.Implementors[1].Library)

	assert.True(t, rec.Table().Equal(tbl))
}
