package scene

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key the viewer reacts to, independent of the
// windowing library.
type Key int

const (
	KeyUnknown Key = iota
	KeyR
	KeyA
	KeySpace
	KeyW
	KeyF
	KeyC
	KeyM
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// HeldKeys are polled every frame and act for as long as they are pressed.
var HeldKeys = [...]Key{KeyUp, KeyDown, KeyLeft, KeyRight}

// rotationStep is the rotation in degrees applied per frame while an arrow key is held.
const rotationStep = 1

// Controller owns the viewer state and maps key input onto it.
type Controller struct {
	Params  Params
	Toggles Toggles

	home  Params
	names []string
	shape int
	quit  bool
}

// NewController returns a controller with default state cycling through shapes
// with the given names. There must be at least one shape.
func NewController(shapeNames []string) (*Controller, error) {
	if len(shapeNames) == 0 {
		return nil, fmt.Errorf("controller needs at least one shape")
	}
	return &Controller{
		Params:  DefaultParams(),
		Toggles: DefaultToggles(),
		home:    DefaultParams(),
		names:   append([]string(nil), shapeNames...),
	}, nil
}

// SetHome replaces the current parameters with p and makes p the state
// the reset key returns to.
func (c *Controller) SetHome(p Params) {
	c.home = p
	c.Params = p
}

// SelectShape displays the shape with the given name, ignoring case.
// It reports whether such a shape exists.
func (c *Controller) SelectShape(name string) bool {
	for i, n := range c.names {
		if strings.EqualFold(n, name) {
			c.shape = i
			return true
		}
	}
	return false
}

// Shape returns the index of the shape being displayed.
func (c *Controller) Shape() int { return c.shape }

// ShapeName returns the name of the shape being displayed.
func (c *Controller) ShapeName() string { return c.names[c.shape] }

// NextShape cycles to the next shape, wrapping around after the last one.
func (c *Controller) NextShape() { c.shape = (c.shape + 1) % len(c.names) }

// ShouldQuit reports whether a quit was requested.
func (c *Controller) ShouldQuit() bool { return c.quit }

// Press handles a single key press event.
func (c *Controller) Press(k Key) {
	switch k {
	case KeyR:
		c.Params = c.home
	case KeyA:
		c.Params.AutoRotate = true
	case KeySpace:
		c.NextShape()
	case KeyW:
		c.Toggles.Wireframe = true
	case KeyF:
		c.Toggles.Wireframe = false
	case KeyC:
		c.Toggles.FaceCulling = !c.Toggles.FaceCulling
	case KeyM:
		c.Toggles.Antialiasing = !c.Toggles.Antialiasing
	case KeyEscape:
		c.quit = true
	}
}

// Hold handles a key that is down during the current frame. Any rotation
// key takes over from auto rotation.
func (c *Controller) Hold(k Key) {
	p := &c.Params
	switch k {
	case KeyUp:
		p.RotateX = wrapDegrees(p.RotateX + rotationStep)
	case KeyDown:
		p.RotateX = wrapDegrees(p.RotateX - rotationStep)
	case KeyRight:
		p.RotateY = wrapDegrees(p.RotateY + rotationStep)
	case KeyLeft:
		p.RotateY = wrapDegrees(p.RotateY - rotationStep)
	default:
		return
	}
	p.AutoRotate = false
}

// Status renders the control panel as a single line.
func (c *Controller) Status() string {
	p := &c.Params
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%d/%d]", c.ShapeName(), c.shape+1, len(c.names))
	if p.AutoRotate {
		fmt.Fprintf(&sb, " | auto-rotate x%.1f", p.RotationSpeed)
	} else {
		fmt.Fprintf(&sb, " | rot %.0f,%.0f,%.0f", p.RotateX, p.RotateY, p.RotateZ)
	}
	fmt.Fprintf(&sb, " | pos %.2f,%.2f,%.2f", p.Translation[0], p.Translation[1], p.Translation[2])
	fmt.Fprintf(&sb, " | scale %.2f,%.2f,%.2f", p.Scale[0], p.Scale[1], p.Scale[2])
	fmt.Fprintf(&sb, " | fov %.0f | cam %.1f,%.1f,%.1f", p.FOV, p.Camera[0], p.Camera[1], p.Camera[2])
	fmt.Fprintf(&sb, " | wire %s cull %s aa %s", onOff(c.Toggles.Wireframe), onOff(c.Toggles.FaceCulling), onOff(c.Toggles.Antialiasing))
	return sb.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
