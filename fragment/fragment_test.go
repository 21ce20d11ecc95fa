package fragment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsmith/implindex/errors"
	"github.com/docsmith/implindex/storagemodels"
)

const wrappedArtifact = `(function() {var implementors = {
"tower":["<code>Retry&lt;P, S&gt;</code>","<code>Timeout&lt;S&gt;</code>"],
"tower_layer":["<code>Stack&lt;Inner, Outer&gt;</code>"]
};if (window.register_implementors) {window.register_implementors(implementors);} else {window.pending_implementors = implementors;}})()`

func TestParseWrappedArtifact(t *testing.T) {
	table, err := Parse([]byte(wrappedArtifact))
	require.NoError(t, err)

	want := storagemodels.Table{
		"tower":       {"<code>Retry&lt;P, S&gt;</code>", "<code>Timeout&lt;S&gt;</code>"},
		"tower_layer": {"<code>Stack&lt;Inner, Outer&gt;</code>"},
	}
	assert.True(t, table.Equal(want))
}

func TestParseBareTable(t *testing.T) {
	data := `{"tower":["descA","descB"]}`
	table, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []storagemodels.Descriptor{"descA", "descB"}, table["tower"])
}

func TestParseDescriptorsWithBraces(t *testing.T) {
	// Descriptor markup may embed braces; the literal scan must not stop early.
	data := `(function() {var implementors = {"tower":["<span class=\"where\">where T: {Clone}</span>"]};})()`
	table, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t,
		[]storagemodels.Descriptor{`<span class="where">where T: {Clone}</span>`},
		table["tower"])
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Empty", ""},
		{"NoAssignment", "(function() {var other = 1;})()"},
		{"Unterminated", `(function() {var implementors = {"tower":["a"]`},
		{"BadJSON", `(function() {var implementors = {"tower":[1,2]};})()`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidFragment(err), "expected a fragment error, got %v", err)
		})
	}
}

func TestTraitPath(t *testing.T) {
	tests := []struct {
		rel  string
		want string
		ok   bool
	}{
		{"tower/trait.Service.js", "tower::Service", true},
		{"tower/util/trait.ServiceExt.js", "tower::util::ServiceExt", true},
		{"trait.Layer.js", "Layer", true},
		{"tower/struct.Retry.js", "", false},
		{"tower/trait.Service.html", "", false},
		{"tower/trait..js", "", false},
	}
	for _, tt := range tests {
		got, ok := TraitPath(tt.rel)
		assert.Equal(t, tt.ok, ok, tt.rel)
		assert.Equal(t, tt.want, got, tt.rel)
	}
}

func TestLoadDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, DirName, "tower")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "trait.Service.js"), []byte(wrappedArtifact), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "trait.Layer.js"), []byte(`{"tower_layer":["descC"]}`), 0o644))
	// Non-fragment files are skipped.
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "sidebar-items.js"), []byte("window.SIDEBAR_ITEMS = {};"), 0o644))

	tables, err := LoadDir(root)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	assert.Contains(t, tables, "tower::Service")
	assert.Contains(t, tables, "tower::Layer")
	assert.Equal(t,
		[]storagemodels.Descriptor{"descC"},
		tables["tower::Layer"]["tower_layer"])
}

func TestLoadDirMissingIsEmpty(t *testing.T) {
	tables, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestParseFileAnnotatesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trait.Broken.js")
	require.NoError(t, os.WriteFile(path, []byte("nonsense"), 0o644))

	_, err := ParseFile(path)
	require.Error(t, err)

	var fe *errors.FragmentError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, path, fe.Path)
}
