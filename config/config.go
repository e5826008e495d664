// Package config loads viewer settings from TOML.
//
// A complete file looks like:
//
//	[window]
//	title = "OpenGL"
//	width = 1200
//	height = 700
//	samples = 4
//	gl_version = [4, 4]
//
//	[data]
//	dir = ""      # empty serves the shapes embedded in the binary.
//	watch = false # reload shapes when their files change.
//
//	[scene]
//	fov = 45
//	scale = [0.6, 0.6, 0.6]
//	camera = [0.0, 0.0, -2.2]
//	translation = [0.0, 0.0, 0.0]
//	rotation = [0.0, 0.0, 0.0]
//	auto_rotate = false
//	rotation_speed = 1.5
//	shape = "octagon"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"github.com/soypat/polyview/catalog"
	"github.com/soypat/polyview/scene"
)

type Config struct {
	Window Window `toml:"window"`
	Data   Data   `toml:"data"`
	Scene  Scene  `toml:"scene"`
}

type Window struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Samples   int    `toml:"samples"`
	GLVersion [2]int `toml:"gl_version"`
}

type Data struct {
	Dir   string `toml:"dir"`
	Watch bool   `toml:"watch"`
}

// Scene holds the initial scene parameters. They are also what the reset
// action returns to.
type Scene struct {
	FOV           float32    `toml:"fov"`
	Scale         [3]float32 `toml:"scale"`
	Camera        [3]float32 `toml:"camera"`
	Translation   [3]float32 `toml:"translation"`
	Rotation      [3]float32 `toml:"rotation"`
	AutoRotate    bool       `toml:"auto_rotate"`
	RotationSpeed float32    `toml:"rotation_speed"`
	Shape         string     `toml:"shape"`
}

// Default returns the settings the viewer uses without a config file.
func Default() Config {
	p := scene.DefaultParams()
	return Config{
		Window: Window{
			Title:     "OpenGL",
			Width:     scene.DefaultWidth,
			Height:    scene.DefaultHeight,
			Samples:   4,
			GLVersion: [2]int{4, 4},
		},
		Scene: Scene{
			FOV:           p.FOV,
			Scale:         p.Scale,
			Camera:        p.Camera,
			Translation:   p.Translation,
			Rotation:      [3]float32{p.RotateX, p.RotateY, p.RotateZ},
			AutoRotate:    p.AutoRotate,
			RotationSpeed: p.RotationSpeed,
			Shape:         catalog.Default()[0].Name,
		},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(b)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults. Keys not defined by Config are an error.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, errors.New(strict.String())
		}
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks values that would prevent the viewer from starting.
func (cfg Config) Validate() error {
	w := cfg.Window
	switch {
	case w.Width <= 0 || w.Height <= 0:
		return fmt.Errorf("invalid window size %dx%d", w.Width, w.Height)
	case w.Samples < 0:
		return errors.New("window samples must not be negative")
	case w.GLVersion[0] < 3 || (w.GLVersion[0] == 3 && w.GLVersion[1] < 3):
		return fmt.Errorf("need OpenGL 3.3 or newer, got %d.%d", w.GLVersion[0], w.GLVersion[1])
	}
	if cfg.Scene.Shape != "" && cfg.Data.Dir == "" {
		if _, ok := catalog.Lookup(cfg.Scene.Shape); !ok {
			return fmt.Errorf("unknown shape %q", cfg.Scene.Shape)
		}
	}
	if cfg.Data.Watch && cfg.Data.Dir == "" {
		return errors.New("watching requires a data directory")
	}
	return nil
}

// Params returns the scene parameters, clamped to their slider ranges.
func (s Scene) Params() scene.Params {
	p := scene.Params{
		RotateX:       s.Rotation[0],
		RotateY:       s.Rotation[1],
		RotateZ:       s.Rotation[2],
		FOV:           s.FOV,
		Translation:   mgl32.Vec3(s.Translation),
		Scale:         mgl32.Vec3(s.Scale),
		Camera:        mgl32.Vec3(s.Camera),
		AutoRotate:    s.AutoRotate,
		RotationSpeed: s.RotationSpeed,
	}
	p.Clamp()
	return p
}
