package glshape

import (
	"log"
	"os"
	"runtime"
	"testing"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/polyview"
	"github.com/soypat/polyview/catalog"
	"github.com/soypat/polyview/internal/glctx"
	"github.com/soypat/polyview/scene"
)

func init() {
	runtime.LockOSThread() // For GL.
}

func TestMain(m *testing.M) {
	_, terminate, err := glctx.Start(glctx.Config{
		Title:   "glshape test",
		Width:   64,
		Height:  64,
		Version: [2]int{3, 3},
		Samples: 4,
		Hidden:  true,
	})
	if err != nil {
		log.Println("skipping GL tests, no context available:", err)
		os.Exit(0)
	}
	code := m.Run()
	terminate()
	os.Exit(code)
}

func triangleMesh() polyview.Mesh {
	return polyview.Mesh{
		Vertices: []float32{
			-0.5, -0.5, 0, 1, 0, 0,
			0.5, -0.5, 0, 0, 1, 0,
			0, 0.5, 0, 0, 0, 1,
		},
		Indices: []uint32{0, 1, 2},
	}
}

func TestShapeLifetime(t *testing.T) {
	s, err := NewShape(triangleMesh())
	if err != nil {
		t.Fatal(err)
	}
	if s.Deleted() {
		t.Fatal("new shape reports deleted")
	}
	if s.IndexCount() != 3 || s.VerticesSize() != 18 || s.IndicesSizeInBytes() != 12 {
		t.Errorf("unexpected sizes: %d indices, %d floats", s.IndexCount(), s.VerticesSize())
	}
	if !gl.IsVertexArray(s.vao) || !gl.IsBuffer(s.vbo) || !gl.IsBuffer(s.ebo) {
		t.Error("expected live GL objects")
	}
	s.Draw()
	if err = glgl.Err(); err != nil {
		t.Fatal(err)
	}
	vao := s.vao
	s.Delete()
	s.Delete()
	if !s.Deleted() || gl.IsVertexArray(vao) {
		t.Error("vertex array survived Delete")
	}
	s.Draw() // no-op.
	if err = glgl.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestNewShapeRejectsInvalidMesh(t *testing.T) {
	m := triangleMesh()
	m.Indices[1] = 9
	if _, err := NewShape(m); err == nil {
		t.Fatal("expected out of range index to be rejected")
	}
}

func TestSetReplace(t *testing.T) {
	meshes, err := catalog.LoadAll(catalog.FS(), catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	set, err := NewSet(meshes)
	if err != nil {
		t.Fatal(err)
	}
	defer set.Delete()
	if set.Len() != len(meshes) {
		t.Fatalf("got %d shapes. want %d", set.Len(), len(meshes))
	}
	old := set.At(1)
	if err = set.Replace(1, triangleMesh()); err != nil {
		t.Fatal(err)
	}
	if !old.Deleted() || set.At(1).IndexCount() != 3 {
		t.Error("replace should free the previous shape and install the new one")
	}
	bad := triangleMesh()
	bad.Vertices = bad.Vertices[:5]
	if err = set.Replace(2, bad); err == nil {
		t.Error("expected error replacing with invalid mesh")
	}
	if set.At(2).Deleted() {
		t.Error("failed replace must keep the previous shape")
	}
	if err = set.Replace(len(meshes), triangleMesh()); err == nil {
		t.Error("expected out of range error")
	}
}

func TestProgramAndState(t *testing.T) {
	prog, err := NewProgram()
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewShape(triangleMesh())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Delete()

	toggles := scene.DefaultToggles()
	ApplyToggles(toggles)
	if !Enabled(gl.CULL_FACE) || !Enabled(gl.MULTISAMPLE) {
		t.Error("default toggles should enable culling and multisampling")
	}
	toggles.FaceCulling = false
	toggles.Wireframe = true
	ApplyToggles(toggles)
	if Enabled(gl.CULL_FACE) {
		t.Error("culling still enabled")
	}

	Viewport(64, 64)
	BeginFrame()
	if !Enabled(gl.DEPTH_TEST) {
		t.Error("depth test should be enabled for every frame")
	}
	p := scene.DefaultParams()
	prog.SetMatrices(p.Model(0), p.View(), p.Projection(1))
	s.Draw()
	if err = glgl.Err(); err != nil {
		t.Fatal(err)
	}

	var current int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &current)
	if current == 0 {
		t.Fatal("program not bound after SetMatrices")
	}
	var got mgl32.Mat4
	gl.GetUniformfv(uint32(current), prog.view, &got[0])
	if got != p.View() {
		t.Errorf("view uniform not uploaded: got %v", got)
	}
	if prog.id != uint32(current) {
		t.Errorf("got program id %d. want %d", prog.id, current)
	}
	if prog.model < 0 || prog.model == prog.view || prog.view == prog.projection {
		t.Errorf("bad uniform locations %d %d %d", prog.model, prog.view, prog.projection)
	}
	prog.Delete()
	prog.Delete() // must not reach glgl a second time.
	if !prog.Deleted() || gl.IsProgram(uint32(current)) {
		t.Error("program survived Delete")
	}
}

func TestGLErrorsSurface(t *testing.T) {
	glgl.ClearErrors()
	gl.Enable(0xFFFF) // not a capability.
	if err := glgl.Err(); err == nil {
		t.Fatal("expected invalid enum error")
	}
	if err := glgl.Err(); err != nil {
		t.Errorf("error queue should be drained, got %v", err)
	}
}
