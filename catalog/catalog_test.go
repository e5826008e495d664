package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/soypat/polyview"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestDefaultOrder(t *testing.T) {
	want := []string{"octagon", "cube", "pyramid", "octahedron", "icosahedron", "dodecahedron"}
	got := Default()
	if len(got) != len(want) {
		t.Fatalf("got %d entries. want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("entry %d: got %s. want %s", i, got[i].Name, want[i])
		}
	}
	got[0].Name = "mutated"
	if Default()[0].Name != "octagon" {
		t.Error("Default must return a copy")
	}
	e, ok := Lookup("IcoSahedron")
	if !ok || e.VerticesPath != "vertices/icosahedron.txt" || e.IndicesPath != "indices/icosahedron.txt" {
		t.Errorf("bad lookup result %+v %v", e, ok)
	}
	if _, ok = Lookup("tesseract"); ok {
		t.Error("unexpected lookup hit")
	}
}

func TestEmbeddedShapes(t *testing.T) {
	wantTriangles := map[string]int{
		"octagon":      16, // Both sides of a flat disc.
		"cube":         12,
		"pyramid":      6,
		"octahedron":   8,
		"icosahedron":  20,
		"dodecahedron": 36,
	}
	meshes, err := LoadAll(FS(), Default())
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range Default() {
		m := meshes[i]
		if got := m.TriangleCount(); got != wantTriangles[e.Name] {
			t.Errorf("%s: got %d triangles. want %d", e.Name, got, wantTriangles[e.Name])
		}
		// Default camera and scale must frame every shape.
		const maxRadius = 1.2
		for j := 0; j < m.VertexCount(); j++ {
			if r := r3.Norm(m.Position(j)); r > maxRadius {
				t.Errorf("%s: vertex %d at radius %g exceeds %g", e.Name, j, r, maxRadius)
			}
		}
		if e.Name == "octagon" {
			continue
		}
		// Solids must wind counter clockwise seen from outside so face
		// culling removes only hidden faces.
		center := centroid(m)
		for j, tri := range m.Triangles() {
			mid := r3.Scale(1./3, r3.Add(tri[0], r3.Add(tri[1], tri[2])))
			if r3.Dot(polyview.Normal(tri), r3.Sub(mid, center)) <= 0 {
				t.Errorf("%s: triangle %d faces inward", e.Name, j)
			}
		}
	}
}

func TestLoadAllNamesBadEntry(t *testing.T) {
	entries := append(Default(), NewEntry("missing"))
	_, err := LoadAll(FS(), entries)
	if err == nil {
		t.Fatal("expected error for missing shape")
	}
	const want = `shape "missing": could not open file vertices/missing.txt`
	if got := err.Error(); len(got) < len(want) || got[:len(want)] != want {
		t.Errorf("got error %q. want prefix %q", got, want)
	}
}

func TestExtractAndOpen(t *testing.T) {
	dir := t.TempDir()
	if err := Extract(dir); err != nil {
		t.Fatal(err)
	}
	fromDisk, err := LoadAll(Open(dir), Default())
	if err != nil {
		t.Fatal(err)
	}
	embeddedMeshes, err := LoadAll(Open(""), Default())
	if err != nil {
		t.Fatal(err)
	}
	for i := range fromDisk {
		if fromDisk[i].VerticesSize() != embeddedMeshes[i].VerticesSize() {
			t.Errorf("entry %d differs after extraction", i)
		}
	}
}

func TestWatcherReportsChangedEntry(t *testing.T) {
	dir := t.TempDir()
	if err := Extract(dir); err != nil {
		t.Fatal(err)
	}
	entries := Default()
	w, err := NewWatcher(dir, entries)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if got := w.Drain(); got != nil {
		t.Fatalf("expected no pending changes, got %v", got)
	}

	const cubeIdx = 1
	cube := filepath.Join(dir, filepath.FromSlash(entries[cubeIdx].IndicesPath))
	b, err := os.ReadFile(cube)
	if err != nil {
		t.Fatal(err)
	}
	// Unrelated files are ignored.
	if err = os.WriteFile(filepath.Join(dir, "indices", "notes.md"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err = os.WriteFile(cube, b, 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		changed := w.Drain()
		if len(changed) == 0 {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if len(changed) != 1 || changed[0] != cubeIdx {
			t.Fatalf("got changed entries %v. want [%d]", changed, cubeIdx)
		}
		if err = w.Err(); err != nil {
			t.Fatal(err)
		}
		return
	}
	t.Fatal("timed out waiting for watcher event")
}

func TestWatcherNeedsDirectory(t *testing.T) {
	if _, err := NewWatcher("", Default()); err == nil {
		t.Error("expected error watching embedded catalog")
	}
}

func centroid(m polyview.Mesh) r3.Vec {
	var sum r3.Vec
	n := m.VertexCount()
	for i := 0; i < n; i++ {
		sum = r3.Add(sum, m.Position(i))
	}
	return r3.Scale(1/float64(n), sum)
}
