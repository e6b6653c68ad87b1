package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gedcompare/internal/config"
	"gedcompare/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	leftPath   string
	rightPath  string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	trees := filepath.Join(base, "trees")
	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		leftPath:   testsupport.WriteGEDCOM(t, trees, "left.ged", testsupport.LeftTree, false),
		rightPath:  testsupport.WriteGEDCOM(t, trees, "right.ged", testsupport.RightTree, true),
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	return runCLIWithInput(t, args, configPath, nil)
}

func runCLIWithInput(t *testing.T, args []string, configPath string, stdin io.Reader) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// saveComparison runs compare --save and returns the new session id.
func (env *cliTestEnv) saveComparison(t *testing.T) string {
	t.Helper()
	out, _, err := runCLI(t, []string{"compare", env.leftPath, env.rightPath, "--save", "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("compare --save: %v", err)
	}
	var view sessionView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode compare output: %v\n%s", err, out)
	}
	if view.ID == "" {
		t.Fatalf("compare --save returned no id: %s", out)
	}
	return view.ID
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\n\n[storage]\nbackend = %q\n\n[input]\nencoding = %q\n\n[display]\ncolor = %q\n",
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Storage.Backend,
		cfg.Input.Encoding,
		cfg.Display.Color,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
