package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/shapeview/internal/camera"
	"github.com/san-kum/shapeview/internal/clock"
	"github.com/san-kum/shapeview/internal/frame"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTickRate      = 100
	DefaultTimeScale     = 1.0
	DefaultBackground    = "#000000"
	DefaultZoom          = 0.25
	DefaultMaxFrameDelta = clock.DefaultMaxFrameDelta
)

var (
	ErrOutOfRange   = errors.New("config: value out of range")
	ErrInvalidColor = errors.New("config: invalid color")
	ErrUnknownShape = errors.New("config: unknown shape kind")
)

// FieldError names the offending setting.
type FieldError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v (%v)", e.Wrapped, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Wrapped
}

type Config struct {
	TickRate      int           `yaml:"tick_rate"`
	TimeScale     float32       `yaml:"time_scale"`
	Background    string        `yaml:"background"`
	MaxFrameDelta time.Duration `yaml:"max_frame_delta"`
	InfoOpen      bool          `yaml:"info_open"`
	Camera        CameraConfig  `yaml:"camera"`
	Scene         []ShapeConfig `yaml:"scene"`
}

type CameraConfig struct {
	X       float32 `yaml:"x"`
	Y       float32 `yaml:"y"`
	Zoom    float32 `yaml:"zoom"`
	MinZoom float32 `yaml:"min_zoom"`
	MaxZoom float32 `yaml:"max_zoom"`
}

type ShapeConfig struct {
	Kind   string  `yaml:"kind"`
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Radius float32 `yaml:"radius,omitempty"`
	Width  float32 `yaml:"width,omitempty"`
	Height float32 `yaml:"height,omitempty"`
	Color  string  `yaml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		TickRate:      DefaultTickRate,
		TimeScale:     DefaultTimeScale,
		Background:    DefaultBackground,
		MaxFrameDelta: DefaultMaxFrameDelta,
		InfoOpen:      true,
		Camera: CameraConfig{
			Zoom:    DefaultZoom,
			MinZoom: camera.DefaultMinZoom,
			MaxZoom: camera.DefaultMaxZoom,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so fields missing from the file keep
// the base values. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field against the ranges the settings surface
// accepts. It reports the first failure.
func (c *Config) Validate() error {
	if c.TickRate < clock.MinTickRate || c.TickRate > clock.MaxTickRate {
		return &FieldError{Field: "tick_rate", Value: c.TickRate, Wrapped: ErrOutOfRange}
	}
	if c.TimeScale < clock.MinTimeScale || c.TimeScale > clock.MaxTimeScale {
		return &FieldError{Field: "time_scale", Value: c.TimeScale, Wrapped: ErrOutOfRange}
	}
	if c.MaxFrameDelta < 0 {
		return &FieldError{Field: "max_frame_delta", Value: c.MaxFrameDelta, Wrapped: ErrOutOfRange}
	}
	if _, err := ParseColor(c.Background); err != nil {
		return &FieldError{Field: "background", Value: c.Background, Wrapped: err}
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MaxZoom < c.Camera.MinZoom {
		return &FieldError{Field: "camera.min_zoom", Value: c.Camera.MinZoom, Wrapped: ErrOutOfRange}
	}
	if c.Camera.Zoom < c.Camera.MinZoom || c.Camera.Zoom > c.Camera.MaxZoom {
		return &FieldError{Field: "camera.zoom", Value: c.Camera.Zoom, Wrapped: ErrOutOfRange}
	}
	for i, s := range c.Scene {
		if _, err := s.Shape(); err != nil {
			return &FieldError{Field: fmt.Sprintf("scene[%d]", i), Value: s.Kind, Wrapped: err}
		}
	}
	return nil
}

// BackgroundColor returns the parsed background, falling back to black.
func (c *Config) BackgroundColor() colorful.Color {
	col, err := ParseColor(c.Background)
	if err != nil {
		return colorful.Color{}
	}
	return col
}

// NewCamera builds the camera described by the config.
func (c *Config) NewCamera() *camera.Camera {
	cam := camera.New(mgl32.Vec2{c.Camera.X, c.Camera.Y}, c.Camera.Zoom)
	cam.SetZoomLimits(c.Camera.MinZoom, c.Camera.MaxZoom)
	return cam
}

// NewClock builds the clock described by the config.
func (c *Config) NewClock() *clock.Clock {
	clk := clock.New(c.TickRate, c.TimeScale)
	clk.SetMaxFrameDelta(c.MaxFrameDelta)
	return clk
}

// BuildScene returns the configured scene, or the placeholder when the
// config lists no shapes.
func (c *Config) BuildScene() (frame.Scene, error) {
	if len(c.Scene) == 0 {
		return frame.Placeholder(), nil
	}
	shapes := make([]frame.Shape, 0, len(c.Scene))
	for i, s := range c.Scene {
		shape, err := s.Shape()
		if err != nil {
			return nil, fmt.Errorf("scene[%d]: %w", i, err)
		}
		shapes = append(shapes, shape)
	}
	return frame.NewStaticScene(shapes), nil
}

func (s ShapeConfig) Shape() (frame.Shape, error) {
	col, err := ParseColor(s.Color)
	if err != nil {
		return frame.Shape{}, err
	}
	pos := mgl32.Vec2{s.X, s.Y}
	switch s.Kind {
	case "circle":
		if s.Radius <= 0 {
			return frame.Shape{}, ErrOutOfRange
		}
		return frame.Circle(pos, s.Radius, col), nil
	case "rect", "rectangle":
		if s.Width <= 0 || s.Height <= 0 {
			return frame.Shape{}, ErrOutOfRange
		}
		return frame.Rect(pos, mgl32.Vec2{s.Width / 2, s.Height / 2}, col), nil
	}
	return frame.Shape{}, ErrUnknownShape
}

// ParseColor accepts "#rrggbb" or "#rgb". An empty string is black.
func ParseColor(s string) (colorful.Color, error) {
	if s == "" {
		return colorful.Color{}, nil
	}
	col, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return col, nil
}
