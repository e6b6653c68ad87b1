package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStorage()
	c.normalizeInput()
	c.normalizeDisplay()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" || c.Paths.DataDir == defaultDataDir {
		if value, ok := os.LookupEnv(dataDirEnvVariable); ok && strings.TrimSpace(value) != "" {
			c.Paths.DataDir = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStorage() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultBackend
	}
}

var encodingAliases = map[string]string{
	"utf8":        "utf-8",
	"unicode":     "utf-16",
	"utf16":       "utf-16",
	"ansi":        "windows-1252",
	"cp1252":      "windows-1252",
	"latin1":      "iso-8859-1",
	"latin-1":     "iso-8859-1",
	"iso8859-1":   "iso-8859-1",
	"ibmpc":       "ibm437",
	"cp437":       "ibm437",
	"codepage437": "ibm437",
}

func (c *Config) normalizeInput() {
	enc := strings.ToLower(strings.TrimSpace(c.Input.Encoding))
	if canonical, ok := encodingAliases[enc]; ok {
		enc = canonical
	}
	if enc == "" {
		enc = defaultEncoding
	}
	c.Input.Encoding = enc
}

func (c *Config) normalizeDisplay() {
	c.Display.Color = strings.ToLower(strings.TrimSpace(c.Display.Color))
	if c.Display.Color == "" {
		c.Display.Color = defaultColorMode
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
