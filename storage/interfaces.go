package storage

import "ebay-scraper/models"

// RawListingWriter is the interface for persisting unclassified scraped rows.
type RawListingWriter interface {
	WriteRaw(listings []*models.RawListing) error
	Close() error
}

var _ RawListingWriter = (*CSVWriter)(nil)
