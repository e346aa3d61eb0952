package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ebay-scraper/models"
)

func TestReadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	content := "Title,Price,Sold Date\nPixel 9 Pro XL,$612.00,\"Sold Oct 21, 2025\"\nPixel 9 Pro\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ds, err := ReadDataset(path)
	if err != nil {
		t.Fatalf("ReadDataset error: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len = %d; want 2", ds.Len())
	}
	if idx := ds.ColumnIndex("Sold Date"); idx != 2 {
		t.Errorf("ColumnIndex(Sold Date) = %d; want 2", idx)
	}
	if idx := ds.ColumnIndex("Missing"); idx != -1 {
		t.Errorf("ColumnIndex(Missing) = %d; want -1", idx)
	}
	if got := ds.Cell(ds.Rows[0], 2); got != "Sold Oct 21, 2025" {
		t.Errorf("Cell = %q; want quoted sold date", got)
	}
	// Ragged second row: missing cells read as empty.
	if got := ds.Cell(ds.Rows[1], 2); got != "" {
		t.Errorf("ragged Cell = %q; want empty", got)
	}
	if got := ds.Cell(ds.Rows[0], -1); got != "" {
		t.Errorf("Cell(-1) = %q; want empty", got)
	}
}

func TestDatasetWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ds := &Dataset{
		Header: []string{"Title", "Price", "Model"},
		Rows: [][]string{
			{"Pixel 9 Pro XL 256GB", "$612.00", "Pixel 9 Pro XL"},
			{"short row"},
		},
	}

	path := filepath.Join(dir, "out.csv")
	if err := ds.Write(path); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	back, err := ReadDataset(path)
	if err != nil {
		t.Fatalf("ReadDataset error: %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("round trip Len = %d; want 2", back.Len())
	}
	if got := back.Cell(back.Rows[0], 1); got != "$612.00" {
		t.Errorf("round trip cell = %q; want $612.00", got)
	}
	// Short rows are padded to header width on write.
	if len(back.Rows[1]) != 3 {
		t.Errorf("padded row width = %d; want 3", len(back.Rows[1]))
	}
}

func TestReadDatasetMissingFile(t *testing.T) {
	if _, err := ReadDataset(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCSVWriterRawRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "pixel_9_pro_xl_sold.csv")

	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter error: %v", err)
	}

	listings := []*models.RawListing{
		{
			Title:     "Google Pixel 9 Pro XL 256GB Excellent",
			Price:     "$612.00",
			SoldDate:  "Sold Oct 21, 2025",
			Link:      "https://www.ebay.com/itm/1",
			ImageLink: "https://i.ebayimg.com/1.jpg",
			Page:      1,
			ScrapedAt: time.Now(),
		},
	}
	if err := w.WriteRaw(listings); err != nil {
		t.Fatalf("WriteRaw error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	ds, err := ReadDataset(path)
	if err != nil {
		t.Fatalf("ReadDataset error: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("Len = %d; want 1", ds.Len())
	}
	// The exporter reads these columns back by name.
	for _, col := range []string{"Title", "Price", "Sold Date", "Link"} {
		if ds.ColumnIndex(col) < 0 {
			t.Errorf("raw CSV missing column %q", col)
		}
	}
	if got := ds.Cell(ds.Rows[0], ds.ColumnIndex("Sold Date")); got != "Sold Oct 21, 2025" {
		t.Errorf("Sold Date = %q; want raw sold date text", got)
	}
}
