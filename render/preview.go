package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/nfnt/resize"
	"github.com/soypat/polyview"
	"github.com/soypat/polyview/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// PreviewConfig controls offscreen rendering.
type PreviewConfig struct {
	Width, Height int
	// Supersample is the render scale used when antialiasing is enabled.
	// The image is rendered this many times larger and downsampled.
	Supersample int
	// Time in seconds, used for auto rotation.
	Time float64
	// Background defaults to the viewer clear color.
	Background *fauxgl.Color
}

// DefaultBackground matches the color the GPU viewer clears to.
var DefaultBackground = fauxgl.Color{R: 0.2, G: 0.3, B: 0.3, A: 1}

// Preview rasterizes a mesh on the CPU with the model, view and projection
// matrices and per-vertex colors the viewer uses.
func Preview(m polyview.Mesh, p scene.Params, t scene.Toggles, cfg PreviewConfig) (image.Image, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("preview size must be positive")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	scale := 1
	if t.Antialiasing && cfg.Supersample > 1 {
		scale = cfg.Supersample
	}
	bg := DefaultBackground
	if cfg.Background != nil {
		bg = *cfg.Background
	}

	context := fauxgl.NewContext(cfg.Width*scale, cfg.Height*scale)
	context.ClearColorBufferWith(bg)
	context.Wireframe = t.Wireframe
	if t.FaceCulling {
		context.Cull = fauxgl.CullBack
	} else {
		context.Cull = fauxgl.CullNone
	}
	aspect := scene.Aspect(cfg.Width, cfg.Height)
	mvp := p.Projection(aspect).Mul4(p.View()).Mul4(p.Model(cfg.Time))
	context.Shader = &vertexColorShader{mvp: mvp}
	context.DrawMesh(fauxMesh(m))

	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(cfg.Width), uint(cfg.Height), img, resize.Bilinear)
	}
	return img, nil
}

// Fit returns p with a uniform scale chosen so the half diagonal of the
// mesh bounds spans radius world units. The scale is clamped to its slider
// range. Empty or point sized meshes leave p unchanged.
func Fit(m polyview.Mesh, p scene.Params, radius float32) scene.Params {
	halfDiag := r3.Norm(m.Bounds().Size()) / 2
	if halfDiag == 0 || radius <= 0 {
		return p
	}
	s := radius / float32(halfDiag)
	p.Scale = mgl32.Vec3{s, s, s}
	p.Clamp()
	return p
}

// SavePNG writes an image to path in PNG format.
func SavePNG(path string, img image.Image) error {
	return fauxgl.SavePNG(path, img)
}

func fauxMesh(m polyview.Mesh) *fauxgl.Mesh {
	tris := make([]*fauxgl.Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += polyview.IndicesPerTriangle {
		tris = append(tris, &fauxgl.Triangle{
			V1: fauxVertex(m, int(m.Indices[i])),
			V2: fauxVertex(m, int(m.Indices[i+1])),
			V3: fauxVertex(m, int(m.Indices[i+2])),
		})
	}
	return fauxgl.NewTriangleMesh(tris)
}

func fauxVertex(m polyview.Mesh, i int) fauxgl.Vertex {
	p := m.Position(i)
	c := m.Color(i)
	return fauxgl.Vertex{
		Position: fauxgl.Vector{X: p.X, Y: p.Y, Z: p.Z},
		Color:    fauxgl.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: 1},
	}
}

// vertexColorShader mirrors the viewer's GLSL program: positions are
// transformed by the combined matrix and fragments take the interpolated
// vertex color.
type vertexColorShader struct {
	mvp mgl32.Mat4
}

func (s *vertexColorShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	pos := mgl32.Vec4{float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z), 1}
	clip := s.mvp.Mul4x1(pos)
	v.Output = fauxgl.VectorW{X: float64(clip[0]), Y: float64(clip[1]), Z: float64(clip[2]), W: float64(clip[3])}
	return v
}

func (s *vertexColorShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	return v.Color
}
