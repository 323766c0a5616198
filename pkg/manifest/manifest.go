// Package manifest loads dependency declarations from manifest documents.
//
// A manifest is a flat list of unit records, each naming the unit and its
// direct prerequisites:
//
//	{
//	  "files": [
//	    {"name": "a.txt"},
//	    {"name": "b.txt", "depends_on": ["a.txt"]}
//	  ]
//	}
//
// The same schema is accepted as TOML:
//
//	[[files]]
//	name = "a.txt"
//
//	[[files]]
//	name = "b.txt"
//	depends_on = ["a.txt"]
//
// The format is detected from the file extension and can be forced via
// [Options.Format]. Loading produces a [depgraph.Map]; the graph engine
// itself never sees the document.
//
// Manifests may name units with a different suffix than the files on disk
// (e.g. ".sql" sources executed as exported ".txt" scripts). A
// [Rewrite] normalizes such names on both unit names and prerequisite
// references, so the identifier space stays consistent.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/runstack/runstack/pkg/depgraph"
)

var (
	// ErrUnknownFormat is returned when the manifest format can neither be
	// detected from the file extension nor was set explicitly.
	ErrUnknownFormat = errors.New("unknown manifest format")

	// ErrDuplicateUnit is returned when two records declare the same unit
	// name (after suffix rewriting).
	ErrDuplicateUnit = errors.New("duplicate unit name")

	// ErrEmptyName is returned when a record has no unit name.
	ErrEmptyName = errors.New("unit name must not be empty")
)

// Format identifies a manifest encoding.
type Format string

// Supported manifest encodings. FormatAuto selects by file extension.
const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Rewrite normalizes unit names carrying a foreign suffix. The zero value
// is a no-op.
type Rewrite struct {
	From string // suffix to replace, e.g. ".sql"
	To   string // replacement suffix, e.g. ".txt"
}

func (r Rewrite) apply(name string) string {
	if r.From == "" || !strings.HasSuffix(name, r.From) {
		return name
	}
	return strings.TrimSuffix(name, r.From) + r.To
}

// Options configures manifest loading.
type Options struct {
	// Format forces a specific encoding. FormatAuto detects from the
	// file extension (Parse requires an explicit format).
	Format Format

	// Rewrite is applied to every unit name and prerequisite reference.
	Rewrite Rewrite
}

// document is the on-disk schema shared by both encodings.
type document struct {
	Files []record `json:"files" toml:"files"`
}

type record struct {
	Name      string   `json:"name" toml:"name"`
	DependsOn []string `json:"depends_on" toml:"depends_on"`
}

// Detect returns the manifest format for path based on its extension.
// Returns ErrUnknownFormat for anything but .json and .toml.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %s (supported: .json, .toml)", ErrUnknownFormat, filepath.Base(path))
	}
}

// Load reads the manifest at path and returns the declared dependency map.
// With Options.Format unset the encoding is detected from the extension.
func Load(path string, opts Options) (depgraph.Map, error) {
	format := opts.Format
	if format == FormatAuto {
		var err error
		if format, err = Detect(path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	m, err := Parse(f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest from r in the given format. The format must be
// explicit; use [Load] for extension-based detection.
func Parse(r io.Reader, format Format, opts Options) (depgraph.Map, error) {
	var doc document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}
	return doc.toMap(opts.Rewrite)
}

func (d document) toMap(rw Rewrite) (depgraph.Map, error) {
	m := make(depgraph.Map, len(d.Files))
	for _, rec := range d.Files {
		name := rw.apply(rec.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		if _, exists := m[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUnit, name)
		}
		deps := make([]string, len(rec.DependsOn))
		for i, dep := range rec.DependsOn {
			deps[i] = rw.apply(dep)
		}
		m[name] = deps
	}
	return m, nil
}
