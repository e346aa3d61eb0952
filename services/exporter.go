package services

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"ebay-scraper/phones"
	"ebay-scraper/storage"
	"ebay-scraper/utils"
)

// Exporter filters a scraped sold-listings dataset down to exactly one phone
// model and writes the subset next to its source file.
type Exporter struct {
	logger          *utils.Logger
	caseInsensitive bool
}

// ExportResult describes one successfully exported subset.
type ExportResult struct {
	Model string
	Path  string
	Rows  int
}

// NewExporter creates an Exporter. caseInsensitive selects case-folded model
// equality when filtering rows; the default elsewhere is strict equality.
func NewExporter(logger *utils.Logger, caseInsensitive bool) *Exporter {
	return &Exporter{logger: logger, caseInsensitive: caseInsensitive}
}

// ExportAll runs the subset export for every requested model. Each model is
// processed independently: an unrecognized name or a missing source file is
// logged and the batch moves on.
func (e *Exporter) ExportAll(dir string, modelNames []string) []ExportResult {
	results := make([]ExportResult, 0, len(modelNames))
	for _, model := range modelNames {
		res, err := e.ExportModelSubset(dir, model)
		if err != nil {
			e.logger.Warn("[export] %s skipped: %v", model, err)
			continue
		}
		e.logger.Info("[export] %s: %d rows -> %s", model, res.Rows, filepath.Base(res.Path))
		results = append(results, res)
	}
	return results
}

// ExportModelSubset locates the source CSV for the model, classifies every
// row's title, keeps only rows that unambiguously name the target model and
// writes them to "<model-slug>_only.csv" in dir.
func (e *Exporter) ExportModelSubset(dir, model string) (ExportResult, error) {
	src, err := phones.FindCSVForModel(dir, model)
	if err != nil {
		return ExportResult{}, err
	}
	e.logger.Info("[export] %s: using file %s", model, filepath.Base(src))

	ds, err := storage.ReadDataset(src)
	if err != nil {
		return ExportResult{}, err
	}

	subset, err := e.filter(ds, model)
	if err != nil {
		return ExportResult{}, fmt.Errorf("export %s: %w", model, err)
	}

	out := filepath.Join(dir, phones.ModelSlug(model)+"_only.csv")
	if err := subset.Write(out); err != nil {
		return ExportResult{}, fmt.Errorf("export %s: %w", model, err)
	}
	return ExportResult{Model: model, Path: out, Rows: subset.Len()}, nil
}

// filter computes the derived columns for every row, drops rows whose title
// is model-ambiguous, keeps rows matching the target and appends the derived
// columns plus a per-model flag column. The Sold Date column, when present,
// is normalized in place to 2006-01-02 form; unparseable dates become empty
// cells rather than errors.
func (e *Exporter) filter(ds *storage.Dataset, target string) (*storage.Dataset, error) {
	titleIdx := ds.ColumnIndex("Title")
	if titleIdx < 0 {
		return nil, fmt.Errorf("source has no Title column")
	}
	soldIdx := ds.ColumnIndex("Sold Date")

	flagCol := strings.ReplaceAll(target, " ", "_")
	out := &storage.Dataset{
		Header: append(append([]string{}, ds.Header...),
			"Storage", "Condition", "PartsOnly", "Model", flagCol),
	}

	dropped := 0
	for _, row := range ds.Rows {
		title := ds.Cell(row, titleIdx)
		derived := phones.Derive(title)
		if derived.Model == "" {
			dropped++
			continue
		}
		if !e.modelMatches(derived.Model, target) {
			continue
		}

		newRow := make([]string, len(ds.Header), len(out.Header))
		copy(newRow, row)
		if soldIdx >= 0 {
			if t, ok := phones.ParseSoldDate(ds.Cell(row, soldIdx)); ok {
				newRow[soldIdx] = t.Format("2006-01-02")
			} else {
				newRow[soldIdx] = ""
			}
		}

		newRow = append(newRow,
			derived.Storage,
			derived.Condition,
			strconv.FormatBool(derived.PartsOnly),
			derived.Model,
			strconv.FormatBool(true),
		)
		out.Rows = append(out.Rows, newRow)
	}

	e.logger.Debug("[export] %s: %d/%d rows ambiguous or model-free",
		target, dropped, ds.Len())
	return out, nil
}

func (e *Exporter) modelMatches(model, target string) bool {
	if e.caseInsensitive {
		return strings.EqualFold(model, target)
	}
	return model == target
}
