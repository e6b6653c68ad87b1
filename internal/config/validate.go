package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return fmt.Errorf("%w: paths.data_dir must be set", ErrInvalid)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return fmt.Errorf("%w: paths.log_dir must be set", ErrInvalid)
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendJSON:
		return nil
	default:
		return fmt.Errorf("%w: storage.backend must be %q or %q, got %q", ErrInvalid, BackendSQLite, BackendJSON, c.Storage.Backend)
	}
}

func (c *Config) validateInput() error {
	if !slices.Contains(SupportedEncodings, c.Input.Encoding) {
		return fmt.Errorf("%w: input.encoding %q is not supported (want one of %s)", ErrInvalid, c.Input.Encoding, strings.Join(SupportedEncodings, ", "))
	}
	return nil
}

func (c *Config) validateDisplay() error {
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("%w: display.color must be auto, always or never, got %q", ErrInvalid, c.Display.Color)
	}
}

func (c *Config) validateLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return fmt.Errorf("%w: logging.level %q: %v", ErrInvalid, c.Logging.Level, err)
	}
	return nil
}
