package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gedcompare/internal/config"
)

// skipConfig marks commands that read or write the config file themselves.
var skipConfig = map[string]string{"skipConfigLoad": "true"}

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the gedcompare config file",
	}
	configCmd.AddCommand(newConfigValidateCommand(ctx), newConfigInitCommand())
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var pathFlag string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample config",
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(pathFlag)
			if err != nil {
				return err
			}
			if !overwrite {
				if err := refuseExisting(target); err != nil {
					return err
				}
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("write sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "All keys are optional. Switch storage.backend to \"json\" for a single sessions.json file.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&pathFlag, "path", "p", "", "Where to write the config (default ~/.config/gedcompare/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace a config that is already there")
	return cmd
}

// initTarget expands a --path value, falling back to the default location.
func initTarget(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		target, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("locate default config: %w", err)
		}
		return target, nil
	}
	target, err := config.ExpandPath(raw)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", raw, err)
	}
	return target, nil
}

func refuseExisting(target string) error {
	_, err := os.Stat(target)
	switch {
	case err == nil:
		return fmt.Errorf("%s already exists; pass --overwrite to replace it", target)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("inspect %s: %w", target, err)
	}
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the config and report the settings in effect",
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			var requested string
			if ctx.configFlag != nil {
				requested = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, path, exists, err := config.Load(requested)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("prepare directories: %w", err)
			}

			source := path
			if !exists {
				source += " (not found, using defaults)"
			}
			out := cmd.OutOrStdout()
			for _, line := range [][2]string{
				{"Config path", source},
				{"Data directory", cfg.Paths.DataDir},
				{"Log directory", cfg.Paths.LogDir},
				{"Session store", cfg.Storage.Backend},
				{"Input encoding", cfg.Input.Encoding},
			} {
				fmt.Fprintf(out, "%s: %s\n", line[0], line[1])
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
