// Package catalog holds the polyhedra shipped with polyview and the
// conventions for locating their data files.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/soypat/polyview"
)

//go:embed data/vertices/*.txt data/indices/*.txt
var embedded embed.FS

// Entry names a shape and the location of its data files relative to a data root.
type Entry struct {
	Name         string
	VerticesPath string
	IndicesPath  string
}

// NewEntry returns the entry for name following the vertices/<name>.txt and
// indices/<name>.txt layout.
func NewEntry(name string) Entry {
	return Entry{
		Name:         name,
		VerticesPath: path.Join("vertices", name+".txt"),
		IndicesPath:  path.Join("indices", name+".txt"),
	}
}

var builtin = []Entry{
	NewEntry("octagon"),
	NewEntry("cube"),
	NewEntry("pyramid"),
	NewEntry("octahedron"),
	NewEntry("icosahedron"),
	NewEntry("dodecahedron"),
}

// Default returns the built-in shapes in display order.
func Default() []Entry {
	return append([]Entry(nil), builtin...)
}

// Lookup finds a built-in entry by case insensitive name.
func Lookup(name string) (Entry, bool) {
	for _, e := range builtin {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// FS returns the embedded data root.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // embed pattern guarantees the directory exists.
	}
	return sub
}

// Open returns the data root at dir, or the embedded data when dir is empty.
func Open(dir string) fs.FS {
	if dir == "" {
		return FS()
	}
	return os.DirFS(dir)
}

// Load reads and validates a single entry.
func Load(fsys fs.FS, e Entry) (polyview.Mesh, error) {
	m, err := polyview.LoadMeshFS(fsys, e.VerticesPath, e.IndicesPath)
	if err != nil {
		return m, fmt.Errorf("shape %q: %w", e.Name, err)
	}
	return m, nil
}

// LoadAll reads every entry in order. It stops at the first failure.
func LoadAll(fsys fs.FS, entries []Entry) ([]polyview.Mesh, error) {
	meshes := make([]polyview.Mesh, 0, len(entries))
	for _, e := range entries {
		m, err := Load(fsys, e)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// Extract writes the embedded data files under dir so they can be edited
// and served back with Open(dir). Existing files are overwritten.
func Extract(dir string) error {
	src := FS()
	return fs.WalkDir(src, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dst := filepath.Join(dir, filepath.FromSlash(name))
		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		b, err := fs.ReadFile(src, name)
		if err != nil {
			return err
		}
		return os.WriteFile(dst, b, 0o644)
	})
}
