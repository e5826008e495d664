package glshape

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

var (
	//go:embed shaders/default.vert
	vertexSource string
	//go:embed shaders/default.frag
	fragmentSource string
)

// Program is the shader program shapes are drawn with. It colors each
// vertex with its color attribute and transforms positions by the model,
// view and projection uniforms.
type Program struct {
	prog                    glgl.Program
	id                      uint32
	model, view, projection int32
	deleted                 bool
}

// NewProgram compiles the default shaders and looks up the matrix uniforms.
func NewProgram() (*Program, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   vertexSource + "\x00",
		Fragment: fragmentSource + "\x00",
	})
	if err != nil {
		return nil, fmt.Errorf("compiling default shaders: %w", err)
	}
	// glgl.Program keeps its object name private. Binding it is the only
	// way to learn the name needed for uniform lookups.
	prog.Bind()
	var id int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &id)
	p := &Program{prog: prog, id: uint32(id)}
	for _, u := range []struct {
		name string
		dst  *int32
	}{
		{name: "modelMatrix", dst: &p.model},
		{name: "viewMatrix", dst: &p.view},
		{name: "projectionMatrix", dst: &p.projection},
	} {
		*u.dst = gl.GetUniformLocation(p.id, gl.Str(u.name+"\x00"))
		if *u.dst < 0 {
			p.Delete()
			return nil, fmt.Errorf("uniform %s not found in default shaders", u.name)
		}
	}
	if err = glgl.Err(); err != nil {
		p.Delete()
		return nil, err
	}
	return p, nil
}

// Use binds the program for subsequent draw calls.
func (p *Program) Use() { p.prog.Bind() }

// SetMatrices binds the program and uploads the three transformation matrices.
func (p *Program) SetMatrices(model, view, projection mgl32.Mat4) {
	p.prog.Bind()
	gl.UniformMatrix4fv(p.model, 1, false, &model[0])
	gl.UniformMatrix4fv(p.view, 1, false, &view[0])
	gl.UniformMatrix4fv(p.projection, 1, false, &projection[0])
}

// Delete unbinds and frees the program. Calling Delete more than once is a no-op.
func (p *Program) Delete() {
	if p.deleted {
		return
	}
	p.prog.Delete()
	p.deleted = true
}

// Deleted reports whether Delete was called.
func (p *Program) Deleted() bool { return p.deleted }
