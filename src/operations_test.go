package main

import (
	"os"
	"path/filepath"
	"testing"

	"csvgen/src/config"
)

func fixtureDirConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"a.csv", "b.csv", "keep.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("id,name,age\n"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	cfg := config.Default()
	cfg.Common.Path = filepath.Join(dir, "a.csv")
	if err := config.Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return cfg
}

func TestFixtureFilesMatchesExtension(t *testing.T) {
	cfg := fixtureDirConfig(t)

	files, err := fixtureFiles(cfg)
	if err != nil {
		t.Fatalf("fixture files: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 csv files, got %v", files)
	}
	for _, path := range files {
		if filepath.Ext(path) != ".csv" {
			t.Errorf("unexpected file %s", path)
		}
	}
}

func TestDeleteFilesRemovesOnlyFixtures(t *testing.T) {
	cfg := fixtureDirConfig(t)
	dir := filepath.Dir(cfg.Common.Path)

	if err := DeleteFiles(cfg); err != nil {
		t.Fatalf("delete files: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "keep.txt" {
		t.Fatalf("unexpected remaining entries: %v", entries)
	}
}

func TestShowFiles(t *testing.T) {
	cfg := fixtureDirConfig(t)
	if err := ShowFiles(cfg); err != nil {
		t.Fatalf("show files: %v", err)
	}
}
