package phones

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("Title\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindCSVForModelExclusivity(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"pixel_9_sold.csv",
		"pixel_9a_sold.csv",
		"pixel_9_xl_sold.csv",
		"pixel_9_pro_sold.csv",
		"pixel_9_pro_xl_sold.csv",
		"iphone_14_sold.csv",
		"iphone-14-pro-sold.csv",
		"iphone_14_pro_max_sold.csv",
	)

	tests := []struct {
		model string
		want  string
	}{
		{"Pixel 9", "pixel_9_sold.csv"},
		{"Pixel 9a", "pixel_9a_sold.csv"},
		{"Pixel 9 XL", "pixel_9_xl_sold.csv"},
		{"Pixel 9 Pro", "pixel_9_pro_sold.csv"},
		{"Pixel 9 Pro XL", "pixel_9_pro_xl_sold.csv"},
		{"iPhone 14", "iphone_14_sold.csv"},
		{"iPhone 14 Pro", "iphone-14-pro-sold.csv"},
		{"iPhone 14 Pro Max", "iphone_14_pro_max_sold.csv"},
	}

	for _, tt := range tests {
		got, err := FindCSVForModel(dir, tt.model)
		if err != nil {
			t.Errorf("FindCSVForModel(%q) error: %v", tt.model, err)
			continue
		}
		if filepath.Base(got) != tt.want {
			t.Errorf("FindCSVForModel(%q) = %q; want %q", tt.model, filepath.Base(got), tt.want)
		}
	}
}

func TestFindCSVForModelBaseNeverMatchesVariantFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "pixel_9_pro_sold.csv", "pixel_9_pro_xl_sold.csv", "iphone-14-pro-max-sold.csv")

	for _, model := range []string{"Pixel 9", "iPhone 14", "iPhone 14 Pro"} {
		if got, err := FindCSVForModel(dir, model); !errors.Is(err, ErrNoSourceFile) {
			t.Errorf("FindCSVForModel(%q) = %q, %v; want ErrNoSourceFile", model, got, err)
		}
	}
}

func TestFindCSVForModelSpaceSeparatedNames(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Pixel 9 Pro XL sold listings.csv", "Pixel 9 Pro sold listings.csv")

	got, err := FindCSVForModel(dir, "Pixel 9 Pro")
	if err != nil {
		t.Fatalf("FindCSVForModel error: %v", err)
	}
	if filepath.Base(got) != "Pixel 9 Pro sold listings.csv" {
		t.Errorf("got %q; want %q", filepath.Base(got), "Pixel 9 Pro sold listings.csv")
	}
}

func TestFindCSVForModelDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "pixel_9_pro_xl_b.csv", "pixel_9_pro_xl_a.csv")

	first, err := FindCSVForModel(dir, "Pixel 9 Pro XL")
	if err != nil {
		t.Fatalf("FindCSVForModel error: %v", err)
	}
	if filepath.Base(first) != "pixel_9_pro_xl_a.csv" {
		t.Errorf("got %q; want lexicographically first candidate", filepath.Base(first))
	}
	for i := 0; i < 5; i++ {
		again, err := FindCSVForModel(dir, "Pixel 9 Pro XL")
		if err != nil || again != first {
			t.Fatalf("run %d: got %q, %v; want %q every run", i, again, err, first)
		}
	}
}

func TestFindCSVForModelIgnoresNonCSVAndSubdirs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "pixel_6_sold.txt", "pixel_6_sold.html")
	if err := os.MkdirAll(filepath.Join(dir, "archive"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, filepath.Join(dir, "archive"), "pixel_6_sold.csv")

	if got, err := FindCSVForModel(dir, "Pixel 6"); !errors.Is(err, ErrNoSourceFile) {
		t.Errorf("FindCSVForModel = %q, %v; want ErrNoSourceFile", got, err)
	}
}

func TestFindCSVForModelUnrecognizedName(t *testing.T) {
	dir := t.TempDir()
	if _, err := FindCSVForModel(dir, "Galaxy S24 Ultra"); !errors.Is(err, ErrModelNotRecognized) {
		t.Errorf("error = %v; want ErrModelNotRecognized", err)
	}
}
