package storagemodels

import "sort"

// Descriptor is one formatted implementor entry: a concrete type plus the
// generic bounds under which it implements the trait. The string may contain
// embedded markup; it is stored and forwarded, never parsed.
type Descriptor string

// Table maps a library name to the ordered descriptors of the types that
// library contributes as implementors of one trait. Order within a slice
// matches generation order and is preserved; key order carries no meaning.
type Table map[string][]Descriptor

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for lib, descs := range t {
		cp := make([]Descriptor, len(descs))
		copy(cp, descs)
		out[lib] = cp
	}
	return out
}

// Equal reports whether two tables hold the same libraries with the same
// descriptors in the same order.
func (t Table) Equal(other Table) bool {
	if len(t) != len(other) {
		return false
	}
	for lib, descs := range t {
		theirs, ok := other[lib]
		if !ok || len(theirs) != len(descs) {
			return false
		}
		for i, d := range descs {
			if theirs[i] != d {
				return false
			}
		}
	}
	return true
}

// Libraries returns the library names in the table, sorted for stable output.
func (t Table) Libraries() []string {
	libs := make([]string, 0, len(t))
	for lib := range t {
		libs = append(libs, lib)
	}
	sort.Strings(libs)
	return libs
}

// Len returns the total number of descriptors across all libraries.
func (t Table) Len() int {
	n := 0
	for _, descs := range t {
		n += len(descs)
	}
	return n
}

// Merge returns a new table combining t with other. Descriptors from other
// are appended after t's for libraries present in both. The handoff mailbox
// never merges on its own; this exists for consumers that accumulate tables
// across loads.
func (t Table) Merge(other Table) Table {
	out := t.Clone()
	if out == nil {
		out = make(Table, len(other))
	}
	for lib, descs := range other {
		out[lib] = append(out[lib], descs...)
	}
	return out
}
