package storage

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Dataset is an in-memory CSV table addressed by column name. It preserves
// every original column and their order; appended columns go last.
type Dataset struct {
	Header []string
	Rows   [][]string
}

// ReadDataset loads a CSV file with a header row. Rows may have ragged
// lengths; missing cells read back as empty strings via Cell.
func ReadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %q has no header row", path)
	}

	return &Dataset{Header: records[0], Rows: records[1:]}, nil
}

// ColumnIndex returns the position of the named column, or -1 when absent.
func (d *Dataset) ColumnIndex(name string) int {
	for i, h := range d.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns row[idx], tolerating ragged rows and idx == -1.
func (d *Dataset) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Write serializes the dataset to path, header first. Short rows are padded
// to the header width so every record round-trips cleanly.
func (d *Dataset) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(d.Header); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, row := range d.Rows {
		if len(row) < len(d.Header) {
			padded := make([]string, len(d.Header))
			copy(padded, row)
			row = padded
		}
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: flush %q: %w", path, err)
	}
	return f.Close()
}
