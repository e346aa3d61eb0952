package services

import (
	"testing"

	"ebay-scraper/storage"
)

func sampleSubset() *storage.Dataset {
	return &storage.Dataset{
		Header: []string{"Title", "Price", "Sold Date", "Storage", "Condition", "PartsOnly", "Model"},
		Rows: [][]string{
			{"A", "$500.00", "2025-10-21", "256 GB", "Excellent", "false", "Pixel 9 Pro XL"},
			{"B", "$450.50", "2025-10-19", "128 GB", "Good", "false", "Pixel 9 Pro XL"},
			{"C", "N/A", "", "Unknown", "Unknown", "true", "Pixel 9 Pro XL"},
			{"D", "$1,049.99", "2025-10-15", "256 GB", "Excellent", "false", "Pixel 9 Pro XL"},
		},
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate("Pixel 9 Pro XL", sampleSubset())

	if r.Rows != 4 {
		t.Errorf("Rows: got %d, want 4", r.Rows)
	}
	if r.PricedRows != 3 {
		t.Errorf("PricedRows: got %d, want 3", r.PricedRows)
	}
	if r.PartsOnly != 1 {
		t.Errorf("PartsOnly: got %d, want 1", r.PartsOnly)
	}
}

func TestInsightPrices(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate("Pixel 9 Pro XL", sampleSubset())

	if r.MinPrice != 450.50 {
		t.Errorf("MinPrice: got %.2f, want 450.50", r.MinPrice)
	}
	if r.MaxPrice != 1049.99 {
		t.Errorf("MaxPrice: got %.2f, want 1049.99", r.MaxPrice)
	}
	wantAvg := 666.83 // (500 + 450.50 + 1049.99) / 3, rounded
	if r.AveragePrice != wantAvg {
		t.Errorf("AveragePrice: got %.2f, want %.2f", r.AveragePrice, wantAvg)
	}
}

func TestInsightBreakdowns(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate("Pixel 9 Pro XL", sampleSubset())

	if r.ByCondition["Excellent"] != 2 {
		t.Errorf("ByCondition[Excellent]: got %d, want 2", r.ByCondition["Excellent"])
	}
	if r.ByCondition["Good"] != 1 {
		t.Errorf("ByCondition[Good]: got %d, want 1", r.ByCondition["Good"])
	}
	if r.ByStorage["256 GB"] != 2 {
		t.Errorf("ByStorage[256 GB]: got %d, want 2", r.ByStorage["256 GB"])
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger())

	r := svc.Generate("Pixel 9 Pro XL", &storage.Dataset{Header: []string{"Title"}})
	if r.Rows != 0 || r.PricedRows != 0 {
		t.Errorf("expected zero counts for empty dataset, got %+v", r)
	}

	r = svc.Generate("Pixel 9 Pro XL", nil)
	if r.Rows != 0 {
		t.Errorf("expected zero counts for nil dataset, got %+v", r)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"$612.00", 612, true},
		{"$1,049.99", 1049.99, true},
		{"612", 612, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"Free", 0, false},
	}

	for _, tt := range tests {
		got, ok := parsePrice(tt.raw)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parsePrice(%q) = %.2f, %v; want %.2f, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}
