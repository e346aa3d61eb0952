package models

import "time"

// RawListing holds one sold-listing row exactly as scraped from the search
// results page. This is written to CSV before any classification.
type RawListing struct {
	Title     string
	Price     string // unparsed currency text, e.g. "$412.50"
	SoldDate  string // free text, e.g. "Sold Oct 21, 2025"
	Link      string
	ImageLink string
	Page      int
	ScrapedAt time.Time
}

// DerivedFields are the attributes computed from a listing title.
type DerivedFields struct {
	Storage   string // "128 GB" or "Unknown"
	Condition string // Excellent, Very Good, Good or Unknown
	PartsOnly bool
	Model     string // canonical model; empty when zero or several models were detected
}

// PriceReport holds the computed resale-price analytics for one exported
// model subset.
type PriceReport struct {
	Model        string
	Rows         int
	PartsOnly    int
	PricedRows   int
	AveragePrice float64
	MinPrice     float64
	MaxPrice     float64
	ByCondition  map[string]int
	ByStorage    map[string]int
}
