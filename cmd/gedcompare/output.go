package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseOutputFormat(value string, allowed ...outputFormat) (outputFormat, error) {
	if len(allowed) == 0 {
		allowed = []outputFormat{formatTable, formatJSON, formatYAML}
	}
	f := outputFormat(strings.ToLower(strings.TrimSpace(value)))
	if f == "" {
		return allowed[0], nil
	}
	if !slices.Contains(allowed, f) {
		names := make([]string, 0, len(allowed))
		for _, a := range allowed {
			names = append(names, string(a))
		}
		return "", fmt.Errorf("unsupported format %q (want %s)", value, strings.Join(names, ", "))
	}
	return f, nil
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(cmd *cobra.Command, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// writeStructured writes v in a machine-readable format and reports whether
// it did so. Table output is left to the caller.
func writeStructured(cmd *cobra.Command, format outputFormat, v any) (bool, error) {
	switch format {
	case formatJSON:
		return true, writeJSON(cmd, v)
	case formatYAML:
		return true, writeYAML(cmd, v)
	default:
		return false, nil
	}
}
