package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func writeTestConfig(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfgDir := filepath.Join(dir, "vocabtui")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestMergeCatalogConfigFillsUnsetFlag(t *testing.T) {
	writeTestConfig(t, "[study]\ncatalog = \"Animals\"\n")
	for _, newCmd := range []func() *cobra.Command{newStatsCmd, newExportCmd, newImportProgressCmd} {
		cmd := newCmd()
		target := ""
		if err := mergeCatalogConfig(cmd, &target); err != nil {
			t.Fatalf("%s: merge config: %v", cmd.Use, err)
		}
		if target != "Animals" {
			t.Fatalf("%s: expected configured catalog, got %q", cmd.Use, target)
		}
	}
}

func TestMergeCatalogConfigKeepsExplicitFlag(t *testing.T) {
	writeTestConfig(t, "[study]\ncatalog = \"Animals\"\n")
	cmd := newStatsCmd()
	if err := cmd.Flags().Set("catalog", "Verbs"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	target := "Verbs"
	if err := mergeCatalogConfig(cmd, &target); err != nil {
		t.Fatalf("merge config: %v", err)
	}
	if target != "Verbs" {
		t.Fatalf("expected the flag value to win, got %q", target)
	}
}
