package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gedcompare/internal/config"
	"gedcompare/internal/gedcom"
	"gedcompare/internal/gedfile"
	"gedcompare/internal/logging"
	"gedcompare/internal/session"
	"gedcompare/internal/sessiondb"
	"gedcompare/internal/sessionfile"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerFor returns the shared logger tagged with component. Logger setup
// failures fall back to a no-op logger so output problems never block a
// comparison.
func (c *commandContext) loggerFor(component string) *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		verbose := c.verboseFlag != nil && *c.verboseFlag
		logger, err := logging.NewFromConfig(cfg, verbose)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return logging.NewComponentLogger(c.logger, component)
}

// withStore opens the configured session store for the duration of fn.
func (c *commandContext) withStore(fn func(session.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg, c.loggerFor("store"))
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func openStore(cfg *config.Config, logger *slog.Logger) (session.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendJSON:
		store, err := sessionfile.Open(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("open session file: %w", err)
		}
		return store, nil
	default:
		store, err := sessiondb.Open(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("open session database: %w", err)
		}
		return store, nil
	}
}

// readTree loads one GEDCOM file using the configured input encoding. side
// tags log output and may be empty.
func (c *commandContext) readTree(path, side string) (gedcom.RecordSet, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return gedcom.RecordSet{}, err
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return gedcom.RecordSet{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	logger := c.loggerFor("gedfile")
	if side != "" {
		logger = logger.With(logging.String(logging.FieldSide, side))
	}
	return gedfile.Read(expanded, gedfile.Options{
		Encoding: cfg.Input.Encoding,
		Logger:   logger,
	})
}

// colorize reports whether output to w should carry ANSI colour.
func (c *commandContext) colorize(w io.Writer) bool {
	mode := config.ColorAuto
	if cfg, err := c.ensureConfig(); err == nil {
		mode = cfg.Display.Color
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(w)
	}
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
