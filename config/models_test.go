package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadModels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	content := "models:\n  - Pixel 9 Pro XL\n  - iPhone 14 Pro Max\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	models, err := LoadModels(path)
	if err != nil {
		t.Fatalf("LoadModels error: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("got %d models; want 2", len(models))
	}
	if models[0] != "Pixel 9 Pro XL" || models[1] != "iPhone 14 Pro Max" {
		t.Errorf("models = %v", models)
	}
}

func TestLoadModelsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	if err := os.WriteFile(path, []byte("models: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadModels(path); err == nil {
		t.Error("expected error for empty model list")
	}
}

func TestLoadModelsMissingFile(t *testing.T) {
	if _, err := LoadModels(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadModelsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	if err := os.WriteFile(path, []byte("models: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadModels(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
