// Package config loads the caret configuration.
//
// Configuration is read from a TOML or YAML file, chosen by extension, and
// then overridden from CARET_* environment variables. A missing file is not
// an error: the defaults are used. Watch reloads the file when it changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/caret/internal/caret"
	"github.com/dshills/caret/internal/geometry"
	"github.com/dshills/caret/internal/input/key"
	"github.com/dshills/caret/internal/input/mouse"
	"github.com/dshills/caret/internal/layout"
	"github.com/dshills/caret/internal/logging"
	"github.com/dshills/caret/internal/selection"
)

// Config is the complete configuration.
type Config struct {
	Caret   Caret   `toml:"caret" yaml:"caret"`
	Mouse   Mouse   `toml:"mouse" yaml:"mouse"`
	Layout  Layout  `toml:"layout" yaml:"layout"`
	Logging Logging `toml:"logging" yaml:"logging"`

	// Keymap maps chords such as "meta+shift+left" to command names such
	// as "home". It is merged over the default bindings.
	Keymap map[string]string `toml:"keymap" yaml:"keymap"`
}

// Caret configures the caret appearance and blink cycle.
type Caret struct {
	Width            float64  `toml:"width" yaml:"width"`
	BlinkEnabled     bool     `toml:"blink" yaml:"blink"`
	StartDelay       Duration `toml:"start_delay" yaml:"start_delay"`
	VisibleHold      Duration `toml:"visible_hold" yaml:"visible_hold"`
	HiddenHold       Duration `toml:"hidden_hold" yaml:"hidden_hold"`
	FadeDuration     Duration `toml:"fade" yaml:"fade"`
	Color            string   `toml:"color" yaml:"color"`
	HighlightColor   string   `toml:"highlight_color" yaml:"highlight_color"`
	HighlightOpacity float64  `toml:"highlight_opacity" yaml:"highlight_opacity"`
}

// Mouse configures click counting.
type Mouse struct {
	DoubleClickTime     Duration `toml:"double_click_time" yaml:"double_click_time"`
	DoubleClickDistance float64  `toml:"double_click_distance" yaml:"double_click_distance"`
}

// Layout configures the reference layout metrics.
type Layout struct {
	CharWidth      float64 `toml:"char_width" yaml:"char_width"`
	FontSize       float64 `toml:"font_size" yaml:"font_size"`
	LineHeight     float64 `toml:"line_height" yaml:"line_height"`
	ViewportWidth  float64 `toml:"viewport_width" yaml:"viewport_width"`
	ViewportHeight float64 `toml:"viewport_height" yaml:"viewport_height"`
}

// Logging configures the logger.
type Logging struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cc := caret.DefaultConfig()
	mc := mouse.DefaultConfig()
	lc := layout.DefaultConfig()
	return &Config{
		Caret: Caret{
			Width:            cc.Width,
			BlinkEnabled:     cc.BlinkEnabled,
			StartDelay:       Duration(cc.StartDelay),
			VisibleHold:      Duration(cc.VisibleHold),
			HiddenHold:       Duration(cc.HiddenHold),
			FadeDuration:     Duration(cc.FadeDuration),
			Color:            cc.Color,
			HighlightColor:   cc.HighlightColor,
			HighlightOpacity: cc.HighlightOpacity,
		},
		Mouse: Mouse{
			DoubleClickTime:     Duration(mc.DoubleClickTime),
			DoubleClickDistance: mc.DoubleClickDistance,
		},
		Layout: Layout{
			CharWidth:      lc.CharWidth,
			FontSize:       lc.FontSize,
			LineHeight:     lc.LineHeight,
			ViewportWidth:  lc.Viewport.Width,
			ViewportHeight: lc.Viewport.Height,
		},
		Logging: Logging{Level: "info"},
		Keymap:  map[string]string{},
	}
}

// Load reads path over the defaults, applies the CARET_* environment and
// validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(EnvPrefix); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return c.Decode(path, data)
}

// Decode parses data over c. The format is chosen from the extension of
// path: .toml, .yaml or .yml.
func (c *Config) Decode(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			return newTOMLError(path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if c.Keymap == nil {
		c.Keymap = map[string]string{}
	}
	return nil
}

// Validate checks value ranges and the keymap.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, name, v))
		}
	}
	positive("caret.width", c.Caret.Width)
	positive("layout.char_width", c.Layout.CharWidth)
	positive("layout.font_size", c.Layout.FontSize)
	positive("layout.line_height", c.Layout.LineHeight)
	positive("layout.viewport_width", c.Layout.ViewportWidth)
	positive("layout.viewport_height", c.Layout.ViewportHeight)

	for name, d := range map[string]Duration{
		"caret.start_delay":       c.Caret.StartDelay,
		"caret.visible_hold":      c.Caret.VisibleHold,
		"caret.hidden_hold":       c.Caret.HiddenHold,
		"caret.fade":              c.Caret.FadeDuration,
		"mouse.double_click_time": c.Mouse.DoubleClickTime,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, name))
		}
	}
	if c.Mouse.DoubleClickDistance < 0 {
		errs = append(errs, fmt.Errorf("%w: mouse.double_click_distance must not be negative", ErrInvalidConfig))
	}
	if o := c.Caret.HighlightOpacity; o < 0 || o > 1 {
		errs = append(errs, fmt.Errorf("%w: caret.highlight_opacity must be within [0, 1], got %v", ErrInvalidConfig, o))
	}
	for _, name := range []string{c.Caret.Color, c.Caret.HighlightColor} {
		if _, err := caret.ParseColor(name); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
		}
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	for chord, cmd := range c.Keymap {
		if _, err := key.ParseChord(chord); err != nil {
			errs = append(errs, fmt.Errorf("%w: keymap: %w", ErrInvalidConfig, err))
		}
		if _, err := selection.ParseCommand(cmd); err != nil {
			errs = append(errs, fmt.Errorf("%w: keymap %q: %w", ErrInvalidConfig, chord, err))
		}
	}
	return errors.Join(errs...)
}

// CaretConfig returns the caret settings.
func (c *Config) CaretConfig() caret.Config {
	return caret.Config{
		Width:            c.Caret.Width,
		BlinkEnabled:     c.Caret.BlinkEnabled,
		StartDelay:       time.Duration(c.Caret.StartDelay),
		VisibleHold:      time.Duration(c.Caret.VisibleHold),
		HiddenHold:       time.Duration(c.Caret.HiddenHold),
		FadeDuration:     time.Duration(c.Caret.FadeDuration),
		Color:            c.Caret.Color,
		HighlightColor:   c.Caret.HighlightColor,
		HighlightOpacity: c.Caret.HighlightOpacity,
	}
}

// MouseConfig returns the gesture thresholds.
func (c *Config) MouseConfig() mouse.Config {
	return mouse.Config{
		DoubleClickTime:     time.Duration(c.Mouse.DoubleClickTime),
		DoubleClickDistance: c.Mouse.DoubleClickDistance,
	}
}

// LayoutConfig returns the layout metrics.
func (c *Config) LayoutConfig() layout.Config {
	return layout.Config{
		CharWidth:  c.Layout.CharWidth,
		FontSize:   c.Layout.FontSize,
		LineHeight: c.Layout.LineHeight,
		Viewport:   geometry.Size{Width: c.Layout.ViewportWidth, Height: c.Layout.ViewportHeight},
	}
}

// KeymapBindings returns the default bindings with the configured ones merged
// over them.
func (c *Config) KeymapBindings() (*selection.Keymap, error) {
	km := selection.DefaultKeymap()
	if err := km.Merge(c.Keymap); err != nil {
		return nil, err
	}
	return km, nil
}
