// Package glctx creates a GLFW window with a current OpenGL core context.
package glctx

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Config struct {
	Title   string
	Width   int
	Height  int
	Version [2]int
	// Samples is the number of multisample antialiasing samples. Zero disables MSAA.
	Samples int
	// Hidden creates an invisible window, useful for tests.
	Hidden bool
}

func (cfg Config) validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Version[0] < 3 || (cfg.Version[0] == 3 && cfg.Version[1] < 3) {
		return errors.New("need at least OpenGL 3.3 core profile")
	}
	if cfg.Samples < 0 {
		return errors.New("negative multisample count")
	}
	return nil
}

// Start initializes GLFW, opens a window and makes its context current on
// the calling thread. The caller must have locked its OS thread and must
// call terminate once done with the window.
func Start(cfg Config) (window *glfw.Window, terminate func(), err error) {
	if err = cfg.validate(); err != nil {
		return nil, nil, err
	}
	if err = glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.Version[0])
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.Version[1])
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, cfg.Samples)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err = glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	if err = gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return window, glfw.Terminate, nil
}
