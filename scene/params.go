// Package scene holds the user adjustable state of the viewer and turns it
// into model, view and projection matrices.
package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Slider ranges.
const (
	TranslationMin, TranslationMax = -1, 1
	ScaleMin, ScaleMax             = 0, 10
	RotationMin, RotationMax       = 0, 360
	CameraMin, CameraMax           = -10, 10
	// FOV is kept away from 0 and 180 degrees where the perspective
	// projection degenerates.
	FOVMin, FOVMax = 1, 179
)

// Projection planes and fallback window size.
const (
	Near          = 0.1
	Far           = 100
	DefaultWidth  = 1200
	DefaultHeight = 700
)

// Params are the model, view and projection parameters exposed to the user.
// Angles are in degrees.
type Params struct {
	RotateX     float32
	RotateY     float32
	RotateZ     float32
	FOV         float32
	Translation mgl32.Vec3
	Scale       mgl32.Vec3
	Camera      mgl32.Vec3
	AutoRotate  bool
	// RotationSpeed multiplies the 50 degrees per second auto rotation.
	RotationSpeed float32
}

// DefaultParams returns the parameters the viewer starts with.
func DefaultParams() Params {
	return Params{
		FOV:           45,
		Scale:         mgl32.Vec3{0.6, 0.6, 0.6},
		Camera:        mgl32.Vec3{0, 0, -2.2},
		RotationSpeed: 1.5,
	}
}

// Reset restores the default parameters.
func (p *Params) Reset() { *p = DefaultParams() }

// Clamp limits every parameter to its slider range.
func (p *Params) Clamp() {
	p.RotateX = clamp(p.RotateX, RotationMin, RotationMax)
	p.RotateY = clamp(p.RotateY, RotationMin, RotationMax)
	p.RotateZ = clamp(p.RotateZ, RotationMin, RotationMax)
	p.FOV = clamp(p.FOV, FOVMin, FOVMax)
	p.Translation = clampVec(p.Translation, TranslationMin, TranslationMax)
	p.Scale = clampVec(p.Scale, ScaleMin, ScaleMax)
	p.Camera = clampVec(p.Camera, CameraMin, CameraMax)
}

// Model returns scale·translate·rotate. t is the time in seconds and only
// matters when AutoRotate is set.
func (p *Params) Model(t float64) mgl32.Mat4 {
	m := mgl32.Ident4().
		Mul4(mgl32.Scale3D(p.Scale[0], p.Scale[1], p.Scale[2])).
		Mul4(mgl32.Translate3D(p.Translation[0], p.Translation[1], p.Translation[2]))
	if p.AutoRotate {
		return m.Mul4(mgl32.HomogRotate3D(p.AutoAngle(t), AutoRotateAxis()))
	}
	return m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(p.RotateX))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(p.RotateY))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(p.RotateZ)))
}

// AutoAngle is the auto rotation angle in radians at time t.
func (p *Params) AutoAngle(t float64) float32 {
	return float32(t) * mgl32.DegToRad(50) * p.RotationSpeed
}

// AutoRotateAxis is the unit axis auto rotation spins about.
func AutoRotateAxis() mgl32.Vec3 { return mgl32.Vec3{0.5, 1, 0}.Normalize() }

// View moves the world by the camera position.
func (p *Params) View() mgl32.Mat4 {
	return mgl32.Translate3D(p.Camera[0], p.Camera[1], p.Camera[2])
}

// Projection returns the perspective projection for the given aspect ratio.
// A non positive or non finite aspect falls back to the default window shape.
func (p *Params) Projection(aspect float32) mgl32.Mat4 {
	if !(aspect > 0) || math32.IsInf(aspect, 0) {
		aspect = float32(DefaultWidth) / DefaultHeight
	}
	fov := clamp(p.FOV, FOVMin, FOVMax)
	return mgl32.Perspective(mgl32.DegToRad(fov), aspect, Near, Far)
}

// Aspect returns width/height of a framebuffer, or 0 for an empty one.
func Aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return float32(width) / float32(height)
}

// Toggles are the render state switches. Reset does not modify them.
type Toggles struct {
	Wireframe    bool
	FaceCulling  bool
	Antialiasing bool
}

// DefaultToggles returns filled polygons with back face culling and multisampling.
func DefaultToggles() Toggles {
	return Toggles{FaceCulling: true, Antialiasing: true}
}

// wrapDegrees maps an angle into [0, 360).
func wrapDegrees(a float32) float32 {
	a = math32.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

func clampVec(v mgl32.Vec3, lo, hi float32) mgl32.Vec3 {
	return mgl32.Vec3{clamp(v[0], lo, hi), clamp(v[1], lo, hi), clamp(v[2], lo, hi)}
}
