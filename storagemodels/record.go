package storagemodels

import "github.com/go-openapi/strfmt"

// LibraryImplementors is the stored form of one library's contribution to a
// trait's implementor table.
type LibraryImplementors struct {
	// Library is the name of the library that defines the implementing types.
	Library string `json:"Library"`

	// Descriptors are the formatted implementor entries, in generation order.
	Descriptors []Descriptor `json:"Descriptors"`
}

// TableRecord is the persisted form of one trait's implementor table, as
// written by a docs sync run and read back for incremental rebuilds.
type TableRecord struct {
	// TraitPath uniquely identifies the trait, e.g. "tower::Service".
	TraitPath string `json:"TraitPath"`

	// DocsVersion is the version of the documentation build that produced
	// this table.
	DocsVersion string `json:"DocsVersion,omitempty"`

	// Implementors holds the per-library descriptor lists. Stored as a slice
	// rather than a map so the persisted item keeps a stable shape.
	Implementors []LibraryImplementors `json:"Implementors"`

	// GeneratedAt is when the docs compiler produced the source fragment.
	// Format: date-time
	GeneratedAt *strfmt.DateTime `json:"GeneratedAt,omitempty"`

	// UpdatedAt is when this record was last written.
	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"UpdatedAt,omitempty"`
}

// Table converts the record back into the in-memory table shape.
func (r *TableRecord) Table() Table {
	t := make(Table, len(r.Implementors))
	for _, li := range r.Implementors {
		descs := make([]Descriptor, len(li.Descriptors))
		copy(descs, li.Descriptors)
		t[li.Library] = descs
	}
	return t
}

// NewTableRecord builds a record from an in-memory table. Libraries are
// emitted in sorted order so repeated conversions produce identical records.
func NewTableRecord(traitPath string, t Table) *TableRecord {
	rec := &TableRecord{
		TraitPath:    traitPath,
		Implementors: make([]LibraryImplementors, 0, len(t)),
	}
	for _, lib := range t.Libraries() {
		descs := make([]Descriptor, len(t[lib]))
		copy(descs, t[lib])
		rec.Implementors = append(rec.Implementors, LibraryImplementors{
			Library:     lib,
			Descriptors: descs,
		})
	}
	return rec
}
