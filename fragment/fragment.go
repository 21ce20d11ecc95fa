package fragment

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/docsmith/implindex/errors"
	"github.com/docsmith/implindex/storagemodels"
)

// DirName is the directory, under a docs output root, that holds the
// generated implementor fragment artifacts.
const DirName = "implementors"

// fragment files end in this suffix; the base name carries the trait name as
// "trait.<Name>.js".
const (
	fileSuffix  = ".js"
	traitPrefix = "trait."
)

// Parse extracts the implementor table from a generated fragment artifact.
//
// Two shapes are accepted: the bare JSON table itself, and the registration
// wrapper the docs compiler emits around it, i.e. a script that assigns the
// table literal and then forwards it or parks it for a late consumer. In the
// wrapped shape the table is the first object literal following the
// "implementors" assignment.
func Parse(data []byte) (storagemodels.Table, error) {
	body := strings.TrimSpace(string(data))
	if body == "" {
		return nil, errors.NewFragmentError("", "empty artifact")
	}

	literal := body
	if !strings.HasPrefix(body, "{") {
		idx := strings.Index(body, "implementors")
		if idx < 0 {
			return nil, errors.NewFragmentError("", "no implementors assignment found")
		}
		rest := body[idx:]
		open := strings.Index(rest, "{")
		if open < 0 {
			return nil, errors.NewFragmentError("", "no table literal found")
		}
		end, ok := matchBrace(rest, open)
		if !ok {
			return nil, errors.NewFragmentError("", "unterminated table literal")
		}
		literal = rest[open : end+1]
	}

	var raw map[string][]string
	if err := json.Unmarshal([]byte(literal), &raw); err != nil {
		return nil, errors.NewFragmentError("", "table literal is not valid JSON: "+err.Error())
	}

	table := make(storagemodels.Table, len(raw))
	for lib, descs := range raw {
		entries := make([]storagemodels.Descriptor, len(descs))
		for i, d := range descs {
			entries[i] = storagemodels.Descriptor(d)
		}
		table[lib] = entries
	}
	return table, nil
}

// matchBrace returns the index of the brace closing the one at open,
// skipping braces inside string literals. Descriptor strings embed markup
// with braces, so a plain bracket count would misparse them.
func matchBrace(s string, open int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// ParseFile parses the fragment artifact at path.
func ParseFile(path string) (storagemodels.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	table, err := Parse(data)
	if err != nil {
		var fe *errors.FragmentError
		if stderrors.As(err, &fe) {
			fe.Path = path
			return nil, fe
		}
		return nil, err
	}
	return table, nil
}

// TraitPath derives the trait path from a fragment file's location relative
// to the implementors directory: path segments name the defining module and
// the file name carries the trait, so "tower/trait.Service.js" becomes
// "tower::Service". Returns false for files that do not follow the layout.
func TraitPath(rel string) (string, bool) {
	base := filepath.Base(rel)
	if !strings.HasPrefix(base, traitPrefix) || !strings.HasSuffix(base, fileSuffix) {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(base, traitPrefix), fileSuffix)
	if name == "" {
		return "", false
	}

	dir := filepath.Dir(rel)
	if dir == "." {
		return name, true
	}
	segments := strings.Split(filepath.ToSlash(dir), "/")
	return strings.Join(append(segments, name), "::"), true
}

// LoadDir walks the implementors directory under a docs output root and
// parses every fragment artifact found, keyed by trait path. A root with no
// implementors directory yields an empty result.
func LoadDir(root string) (map[string]storagemodels.Table, error) {
	dir := filepath.Join(root, DirName)
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return map[string]storagemodels.Table{}, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.NewFragmentError(dir, "not a directory")
	}

	tables := make(map[string]storagemodels.Table)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		trait, ok := TraitPath(rel)
		if !ok {
			return nil
		}
		table, err := ParseFile(path)
		if err != nil {
			return err
		}
		tables[trait] = table
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}
