package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docker/go-units"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}

	if cfg.Common.Path != "large_data.csv" {
		t.Errorf("default path is %q", cfg.Common.Path)
	}
	if cfg.Common.SizeBytes != 10*units.GiB {
		t.Errorf("default size is %d bytes, want %d", cfg.Common.SizeBytes, 10*units.GiB)
	}
	if cfg.Common.BatchRows != 10000 {
		t.Errorf("default batch_rows is %d", cfg.Common.BatchRows)
	}
	if cfg.Common.ProgressRows != 100000 {
		t.Errorf("default progress_rows is %d", cfg.Common.ProgressRows)
	}
	if cfg.Common.FileFormat != "csv" {
		t.Errorf("default format is %q", cfg.Common.FileFormat)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
[common]
path = "out/data.csv"
size = "2GiB"
batch_rows = 500
seed = 7

[names]
list = ["Ann", "Bob"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Common.Path != "out/data.csv" {
		t.Errorf("path is %q", cfg.Common.Path)
	}
	if cfg.Common.SizeBytes != 2*units.GiB {
		t.Errorf("size is %d bytes, want %d", cfg.Common.SizeBytes, 2*units.GiB)
	}
	if cfg.Common.BatchRows != 500 {
		t.Errorf("batch_rows is %d", cfg.Common.BatchRows)
	}
	if cfg.Common.Seed != 7 {
		t.Errorf("seed is %d", cfg.Common.Seed)
	}

	names, err := cfg.ResolveNames()
	if err != nil {
		t.Fatalf("resolve names: %v", err)
	}
	if len(names) != 2 || names[0] != "Ann" || names[1] != "Bob" {
		t.Errorf("names are %v", names)
	}
}

func TestLoadRejectsInvalidSize(t *testing.T) {
	path := writeConfigFile(t, `
[common]
path = "data.csv"
size = "ten gigabytes"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unparsable size")
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Common.Path = ""
	cfg.Common.FileFormat = "xml"
	cfg.CSV.Separator = "||"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"common.path", "common.format", "csv.separator"} {
		if !strings.Contains(msg, want) {
			t.Errorf("validation error does not mention %s: %s", want, msg)
		}
	}
}

func TestResolveNamesDefaultsWhenAbsent(t *testing.T) {
	cfg := Default()
	names, err := cfg.ResolveNames()
	if err != nil {
		t.Fatalf("resolve names: %v", err)
	}
	if len(names) != len(DefaultNames) {
		t.Errorf("got %d names, want %d", len(names), len(DefaultNames))
	}
}

func TestResolveNamesHonorsExplicitEmptyList(t *testing.T) {
	cfg := Default()
	cfg.Names.List = []string{}
	names, err := cfg.ResolveNames()
	if err != nil {
		t.Fatalf("resolve names: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected empty table, got %v", names)
	}
}

func TestResolveNamesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	if err := os.WriteFile(path, []byte("Ann\n\nBob \n"), 0644); err != nil {
		t.Fatalf("write names file: %v", err)
	}

	cfg := Default()
	cfg.Names.File = path
	names, err := cfg.ResolveNames()
	if err != nil {
		t.Fatalf("resolve names: %v", err)
	}
	if len(names) != 2 || names[0] != "Ann" || names[1] != "Bob" {
		t.Errorf("names are %v", names)
	}
}
