package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/polyview"
	"github.com/soypat/polyview/catalog"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSTLWriteReadback(t *testing.T) {
	const tol = 1e-6
	meshes, err := catalog.LoadAll(catalog.FS(), catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	for i, m := range meshes {
		input := m.Triangles()
		var b bytes.Buffer
		err = WriteSTL(&b, input)
		if err != nil {
			t.Fatal(err)
		}
		if b.Len() != stlHeaderSize+stlTriangleSize*len(input) {
			t.Fatalf("shape %d: got %d STL bytes for %d triangles", i, b.Len(), len(input))
		}
		output, err := ReadSTL(&b)
		if err != nil {
			t.Fatalf("shape %d: %s", i, err)
		}
		if len(output) != len(input) {
			t.Fatal("length of triangles written/read not equal")
		}
		for iface, expect := range input {
			got := output[iface]
			for j := range expect {
				if r3.Norm(r3.Sub(got[j], expect[j])) > tol {
					t.Errorf("shape %d triangle %d vertex %d: got %v, want %v", i, iface, j, got[j], expect[j])
				}
			}
		}
	}
}

func TestSTLNormalMismatch(t *testing.T) {
	tri := r3.Triangle{{X: 0}, {X: 1}, {Y: 1}}
	var b bytes.Buffer
	if err := WriteSTL(&b, []r3.Triangle{tri}); err != nil {
		t.Fatal(err)
	}
	raw := b.Bytes()
	// Flip the stored Z normal component.
	put3F32(raw[stlHeaderSize:], [3]float32{0, 0, -1})
	got, err := ReadSTL(bytes.NewReader(raw))
	if !errors.Is(err, ErrNormalMismatch) {
		t.Fatalf("expected normal mismatch, got %v", err)
	}
	if len(got) != 1 {
		t.Error("triangles should still be returned on normal mismatch")
	}

	if _, err = ReadSTL(bytes.NewReader(raw[:stlHeaderSize+10])); err == nil {
		t.Error("expected error on truncated STL")
	}
	if err = WriteSTL(&b, nil); err == nil {
		t.Error("expected error writing empty model")
	}
}

func TestSTLHeaderCountExceedsData(t *testing.T) {
	var b bytes.Buffer
	header := stlHeader{Count: math.MaxUint32}
	if err := binary.Write(&b, binary.LittleEndian, &header); err != nil {
		t.Fatal(err)
	}
	tri := stlTriangle{Vertex2: [3]float32{1, 0, 0}, Vertex3: [3]float32{0, 1, 0}, Normal: [3]float32{0, 0, 1}}
	var raw [stlTriangleSize]byte
	tri.put(raw[:])
	b.Write(raw[:])

	got, err := ReadSTL(&b)
	if err == nil {
		t.Fatal("expected error for truncated triangle data")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF error, got %v", err)
	}
	if got != nil {
		t.Errorf("got %d triangles from truncated file", len(got))
	}
}

func TestCreateSTL(t *testing.T) {
	e, _ := catalog.Lookup("pyramid")
	m, err := catalog.Load(catalog.FS(), e)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "pyramid.stl")
	if err = CreateSTL(path, m); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	tris, err := ReadSTL(fp)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != m.TriangleCount() {
		t.Errorf("got %d triangles. want %d", len(tris), m.TriangleCount())
	}
	if err = CreateSTL(path, polyview.Mesh{}); err == nil {
		t.Error("expected error exporting empty mesh")
	}
}
