package polyview

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex buffer layout. Every vertex is a position followed by an RGB color,
// both stored as 32 bit floats and interleaved in a single buffer.
const (
	PositionComponents = 3
	ColorComponents    = 3
	FloatsPerVertex    = PositionComponents + ColorComponents
	SizeOfFloat        = 4
	SizeOfIndex        = 4
	// VertexStride is the distance in bytes between consecutive vertices.
	VertexStride = FloatsPerVertex * SizeOfFloat
	// ColorOffset is the byte offset of the color attribute within a vertex.
	ColorOffset = PositionComponents * SizeOfFloat
	// IndicesPerTriangle is 3 since meshes are drawn as GL_TRIANGLES.
	IndicesPerTriangle = 3
)

var (
	ErrEmptyMesh       = errors.New("mesh has no vertices or no indices")
	ErrBadVertexLength = fmt.Errorf("vertex data length not a multiple of %d", FloatsPerVertex)
	ErrBadIndexLength  = fmt.Errorf("index data length not a multiple of %d", IndicesPerTriangle)
)

// Mesh is the CPU side of a shape: interleaved vertex data and the
// triangle list indexing into it.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// VerticesSize returns the number of floats in the vertex data.
func (m Mesh) VerticesSize() int { return len(m.Vertices) }

// IndicesSize returns the number of indices.
func (m Mesh) IndicesSize() int { return len(m.Indices) }

// VerticesSizeInBytes returns the size of the vertex buffer as uploaded to the GPU.
func (m Mesh) VerticesSizeInBytes() int { return len(m.Vertices) * SizeOfFloat }

// IndicesSizeInBytes returns the size of the element buffer as uploaded to the GPU.
func (m Mesh) IndicesSizeInBytes() int { return len(m.Indices) * SizeOfIndex }

// VertexCount returns the number of whole vertices in the mesh.
func (m Mesh) VertexCount() int { return len(m.Vertices) / FloatsPerVertex }

// TriangleCount returns the number of whole triangles in the mesh.
func (m Mesh) TriangleCount() int { return len(m.Indices) / IndicesPerTriangle }

// Validate checks the mesh can be uploaded and drawn without reading
// out of bounds.
func (m Mesh) Validate() error {
	switch {
	case len(m.Vertices) == 0 || len(m.Indices) == 0:
		return ErrEmptyMesh
	case len(m.Vertices)%FloatsPerVertex != 0:
		return fmt.Errorf("%w: got %d floats", ErrBadVertexLength, len(m.Vertices))
	case len(m.Indices)%IndicesPerTriangle != 0:
		return fmt.Errorf("%w: got %d indices", ErrBadIndexLength, len(m.Indices))
	}
	for i, f := range m.Vertices {
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return fmt.Errorf("vertex float %d is not finite: %v", i, f)
		}
	}
	nv := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= nv {
			return fmt.Errorf("index %d out of range: %d >= vertex count %d", i, idx, nv)
		}
	}
	return nil
}

// Position returns the position of the ith vertex.
func (m Mesh) Position(i int) r3.Vec {
	v := m.Vertices[i*FloatsPerVertex:]
	return r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

// Color returns the RGB color of the ith vertex.
func (m Mesh) Color(i int) [3]float32 {
	v := m.Vertices[i*FloatsPerVertex+PositionComponents:]
	return [3]float32{v[0], v[1], v[2]}
}

// Triangles expands the indexed mesh into a triangle list. The mesh
// should be valid.
func (m Mesh) Triangles() []r3.Triangle {
	tris := make([]r3.Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += IndicesPerTriangle {
		tris = append(tris, r3.Triangle{
			m.Position(int(m.Indices[i])),
			m.Position(int(m.Indices[i+1])),
			m.Position(int(m.Indices[i+2])),
		})
	}
	return tris
}

// Bounds returns the axis aligned bounding box of all vertex positions.
func (m Mesh) Bounds() r3.Box {
	n := m.VertexCount()
	if n == 0 {
		return r3.Box{}
	}
	bb := r3.Box{Min: m.Position(0), Max: m.Position(0)}
	for i := 1; i < n; i++ {
		p := m.Position(i)
		bb.Min = r3.Vec{X: min(bb.Min.X, p.X), Y: min(bb.Min.Y, p.Y), Z: min(bb.Min.Z, p.Z)}
		bb.Max = r3.Vec{X: max(bb.Max.X, p.X), Y: max(bb.Max.Y, p.Y), Z: max(bb.Max.Z, p.Z)}
	}
	return bb
}

// Clone returns a deep copy of the mesh.
func (m Mesh) Clone() Mesh {
	return Mesh{
		Vertices: append([]float32(nil), m.Vertices...),
		Indices:  append([]uint32(nil), m.Indices...),
	}
}

// Normal returns the unit normal of triangle t following the right hand rule
// on its vertex order. Degenerate triangles yield a zero vector.
func Normal(t r3.Triangle) r3.Vec {
	n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}
