package sceneedit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the editor tuning constants. Pixel values are screen pixels.
type Config struct {
	// Handle hit testing
	HandlePixelTolerance float32 `yaml:"handle_pixel_tolerance"`
	PlaneQuadFraction    float32 `yaml:"plane_quad_fraction"`
	HandleScreenSize     float32 `yaml:"handle_screen_size"`
	RingSegments         int     `yaml:"ring_segments"`
	RingFacingCutoff     float32 `yaml:"ring_facing_cutoff"`

	// Drag speeds
	TranslateSpeed float32 `yaml:"translate_speed"`
	RotateSpeed    float32 `yaml:"rotate_speed"` // degrees per pixel
	ScaleSpeed     float32 `yaml:"scale_speed"`
	MinScaleFactor float32 `yaml:"min_scale_factor"`
	MaxDistance    float32 `yaml:"max_distance"`

	// Marquee
	DragDeadzone float32 `yaml:"drag_deadzone"`

	HistoryMaxDepth int `yaml:"history_max_depth"`

	// Fly camera
	FlySpeed       float32 `yaml:"fly_speed"`       // world units per second
	FlySensitivity float32 `yaml:"fly_sensitivity"` // degrees per pixel

	Keys KeyBindings `yaml:"keys"`

	Debug bool `yaml:"debug"`
}

// KeyBindings maps editor actions to Input key codes.
type KeyBindings struct {
	ToggleMode    int `yaml:"toggle_mode"`
	ToolTranslate int `yaml:"tool_translate"`
	ToolRotate    int `yaml:"tool_rotate"`
	ToolScale     int `yaml:"tool_scale"`
	Undo          int `yaml:"undo"`
	Redo          int `yaml:"redo"`
	Delete        int `yaml:"delete"`
	SelectAll     int `yaml:"select_all"`
	DeselectAll   int `yaml:"deselect_all"`
	Cancel        int `yaml:"cancel"`
}

func DefaultConfig() Config {
	return Config{
		HandlePixelTolerance: 8,
		PlaneQuadFraction:    0.3,
		HandleScreenSize:     0.15,
		RingSegments:         32,
		RingFacingCutoff:     0.5,

		TranslateSpeed: 0.002,
		RotateSpeed:    0.5,
		ScaleSpeed:     0.01,
		MinScaleFactor: 0.01,
		MaxDistance:    10000,

		DragDeadzone: 5,

		HistoryMaxDepth: 256,

		FlySpeed:       5.0,
		FlySensitivity: 0.1,

		Keys: KeyBindings{
			ToggleMode:    KeyTab,
			ToolTranslate: KeyW,
			ToolRotate:    KeyE,
			ToolScale:     KeyR,
			Undo:          KeyZ,
			Redo:          KeyY,
			Delete:        KeyDelete,
			SelectAll:     KeyA,
			DeselectAll:   KeyD,
			Cancel:        KeyEscape,
		},
	}
}

// LoadConfig reads a YAML config on top of DefaultConfig. A missing file
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read editor config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse editor config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("editor config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.HandlePixelTolerance <= 0:
		return errors.New("handle_pixel_tolerance must be positive")
	case c.RingSegments < 16 || c.RingSegments > 48:
		return fmt.Errorf("ring_segments must be within [16, 48], got %d", c.RingSegments)
	case c.MaxDistance <= 0:
		return errors.New("max_distance must be positive")
	case c.MinScaleFactor <= 0:
		return errors.New("min_scale_factor must be positive")
	case c.DragDeadzone < 0:
		return errors.New("drag_deadzone must not be negative")
	case c.FlySpeed < 0:
		return errors.New("fly_speed must not be negative")
	}
	return c.Keys.validate()
}

func (k KeyBindings) validate() error {
	keys := []struct {
		name string
		code int
	}{
		{"toggle_mode", k.ToggleMode},
		{"tool_translate", k.ToolTranslate},
		{"tool_rotate", k.ToolRotate},
		{"tool_scale", k.ToolScale},
		{"undo", k.Undo},
		{"redo", k.Redo},
		{"delete", k.Delete},
		{"select_all", k.SelectAll},
		{"deselect_all", k.DeselectAll},
		{"cancel", k.Cancel},
	}
	for _, key := range keys {
		if key.code < 0 || key.code >= KeyCount {
			return fmt.Errorf("keys.%s must be within [0, %d), got %d", key.name, KeyCount, key.code)
		}
	}
	return nil
}
