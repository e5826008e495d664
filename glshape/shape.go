// Package glshape uploads polyview meshes to the GPU and draws them.
// All functions must be called from the goroutine holding the current
// OpenGL context, which is usually the locked main thread.
package glshape

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/polyview"
)

// Vertex attribute locations as declared in the vertex shader.
const (
	PositionLocation = 0
	ColorLocation    = 1
)

// Shape is a mesh resident on the GPU: a vertex array object referencing an
// interleaved vertex buffer and an element buffer.
type Shape struct {
	vao, vbo, ebo uint32
	indexCount    int32
	mesh          polyview.Mesh
}

// Load reads a mesh from the vertex and index files and uploads it.
func Load(verticesPath, indicesPath string) (*Shape, error) {
	m, err := polyview.LoadMesh(verticesPath, indicesPath)
	if err != nil {
		return nil, err
	}
	return NewShape(m)
}

// NewShape uploads m to newly generated GPU buffers. The shape keeps m for
// size queries; m should not be modified afterwards.
func NewShape(m polyview.Mesh) (*Shape, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	s := &Shape{mesh: m, indexCount: int32(m.IndicesSize())}
	gl.GenVertexArrays(1, &s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.GenBuffers(1, &s.ebo)

	gl.BindVertexArray(s.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, m.VerticesSizeInBytes(), gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, m.IndicesSizeInBytes(), gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(PositionLocation, polyview.PositionComponents, gl.FLOAT, false, polyview.VertexStride, gl.PtrOffset(0))
	gl.VertexAttribPointer(ColorLocation, polyview.ColorComponents, gl.FLOAT, false, polyview.VertexStride, gl.PtrOffset(polyview.ColorOffset))
	gl.EnableVertexAttribArray(PositionLocation)
	gl.EnableVertexAttribArray(ColorLocation)

	// The VAO must be unbound before the element buffer or it would record
	// the unbinding.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	if err := glgl.Err(); err != nil {
		s.Delete()
		return nil, fmt.Errorf("uploading mesh: %w", err)
	}
	return s, nil
}

// Draw issues an indexed triangle draw call with whatever program is bound.
// Drawing a deleted shape does nothing.
func (s *Shape) Draw() {
	if s.vao == 0 {
		return
	}
	gl.BindVertexArray(s.vao)
	gl.DrawElements(gl.TRIANGLES, s.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

// Delete frees the GPU buffers. Calling Delete more than once is safe.
func (s *Shape) Delete() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
	}
	if s.ebo != 0 {
		gl.DeleteBuffers(1, &s.ebo)
	}
	s.vao, s.vbo, s.ebo = 0, 0, 0
}

// Deleted reports whether the GPU resources have been freed.
func (s *Shape) Deleted() bool { return s.vao == 0 }

// Mesh returns the CPU copy of the uploaded data.
func (s *Shape) Mesh() polyview.Mesh { return s.mesh }

// IndexCount is the element count passed to the draw call.
func (s *Shape) IndexCount() int { return int(s.indexCount) }

func (s *Shape) VerticesSize() int        { return s.mesh.VerticesSize() }
func (s *Shape) IndicesSize() int         { return s.mesh.IndicesSize() }
func (s *Shape) VerticesSizeInBytes() int { return s.mesh.VerticesSizeInBytes() }
func (s *Shape) IndicesSizeInBytes() int  { return s.mesh.IndicesSizeInBytes() }
