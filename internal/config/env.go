package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CARET_"

// envSetters maps variable names, without prefix, to the field they set.
var envSetters = map[string]func(c *Config, v string) error{
	"LOG_LEVEL": func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	},
	"LOG_FILE": func(c *Config, v string) error {
		c.Logging.File = v
		return nil
	},
	"BLINK": func(c *Config, v string) error {
		return parseBool(v, &c.Caret.BlinkEnabled)
	},
	"CARET_COLOR": func(c *Config, v string) error {
		c.Caret.Color = v
		return nil
	},
	"CARET_WIDTH": func(c *Config, v string) error {
		return parseFloat(v, &c.Caret.Width)
	},
	"CHAR_WIDTH": func(c *Config, v string) error {
		return parseFloat(v, &c.Layout.CharWidth)
	},
	"FONT_SIZE": func(c *Config, v string) error {
		return parseFloat(v, &c.Layout.FontSize)
	},
	"VIEWPORT_WIDTH": func(c *Config, v string) error {
		return parseFloat(v, &c.Layout.ViewportWidth)
	},
	"VIEWPORT_HEIGHT": func(c *Config, v string) error {
		return parseFloat(v, &c.Layout.ViewportHeight)
	},
	"DOUBLE_CLICK_TIME": func(c *Config, v string) error {
		return c.Mouse.DoubleClickTime.UnmarshalText([]byte(v))
	},
}

// ApplyEnv overrides c from environment variables named prefix plus
// LOG_LEVEL, LOG_FILE, BLINK, CARET_COLOR, CARET_WIDTH, CHAR_WIDTH,
// FONT_SIZE, VIEWPORT_WIDTH, VIEWPORT_HEIGHT or DOUBLE_CLICK_TIME.
// Empty values are treated as set.
func (c *Config) ApplyEnv(prefix string) error {
	for name, set := range envSetters {
		v, ok := os.LookupEnv(prefix + name)
		if !ok {
			continue
		}
		if err := set(c, v); err != nil {
			return fmt.Errorf("%s%s: %w", prefix, name, err)
		}
	}
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not a boolean", ErrInvalidConfig, v)
	}
	*dst = b
	return nil
}

func parseFloat(v string, dst *float64) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", ErrInvalidConfig, v)
	}
	*dst = f
	return nil
}
