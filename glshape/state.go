package glshape

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/polyview/scene"
)

// ClearColor is the background the viewer clears to every frame.
var ClearColor = [4]float32{0.2, 0.3, 0.3, 1}

// ApplyToggles sets polygon mode, face culling and multisampling.
func ApplyToggles(t scene.Toggles) {
	if t.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	setCapability(gl.CULL_FACE, t.FaceCulling)
	setCapability(gl.MULTISAMPLE, t.Antialiasing)
}

// BeginFrame enables depth testing and clears color and depth.
func BeginFrame() {
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Enable(gl.DEPTH_TEST)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Viewport resizes the GL viewport to a framebuffer of the given size.
func Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func setCapability(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// Enabled reports whether a GL capability is on.
func Enabled(capability uint32) bool { return gl.IsEnabled(capability) }
