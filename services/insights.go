package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"ebay-scraper/models"
	"ebay-scraper/storage"
	"ebay-scraper/utils"
)

// priceRegexp captures numeric price values out of "$1,234.56"-style text.
var priceRegexp = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// InsightService computes resale-price analytics over an exported model
// subset.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes the price report for one exported subset dataset.
func (s *InsightService) Generate(model string, ds *storage.Dataset) *models.PriceReport {
	report := &models.PriceReport{
		Model:       model,
		ByCondition: make(map[string]int),
		ByStorage:   make(map[string]int),
	}
	if ds == nil || ds.Len() == 0 {
		return report
	}

	priceIdx := ds.ColumnIndex("Price")
	condIdx := ds.ColumnIndex("Condition")
	storIdx := ds.ColumnIndex("Storage")
	partsIdx := ds.ColumnIndex("PartsOnly")

	report.Rows = ds.Len()

	var total float64
	for _, row := range ds.Rows {
		if cond := ds.Cell(row, condIdx); cond != "" {
			report.ByCondition[cond]++
		}
		if stor := ds.Cell(row, storIdx); stor != "" {
			report.ByStorage[stor]++
		}
		if ds.Cell(row, partsIdx) == "true" {
			report.PartsOnly++
		}

		price, ok := parsePrice(ds.Cell(row, priceIdx))
		if !ok {
			continue
		}
		if report.PricedRows == 0 || price < report.MinPrice {
			report.MinPrice = price
		}
		if price > report.MaxPrice {
			report.MaxPrice = price
		}
		total += price
		report.PricedRows++
	}

	if report.PricedRows > 0 {
		report.AveragePrice = round2(total / float64(report.PricedRows))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}
	return report
}

// parsePrice extracts the first numeric value from unparsed currency text.
func parsePrice(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	match := priceRegexp.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil || val <= 0 {
		return 0, false
	}
	return val, true
}

// Print renders the report to the terminal.
func (s *InsightService) Print(r *models.PriceReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  RESALE PRICE REPORT — %s\033[0m\n", r.Model)
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Exported rows   : \033[1m%d\033[0m\n", r.Rows)
	fmt.Printf("  Parts-only rows : \033[1m%d\033[0m\n", r.PartsOnly)
	fmt.Println()

	fmt.Printf("\033[1;33m  Sold Price Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.PricedRows > 0 {
		fmt.Printf("  Priced rows   : \033[1m%d\033[0m\n", r.PricedRows)
		fmt.Printf("  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m$%.2f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m$%.2f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	printBreakdown("Rows by Condition", thin, r.ByCondition)
	printBreakdown("Rows by Storage", thin, r.ByStorage)

	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

func printBreakdown(heading, thin string, counts map[string]int) {
	fmt.Printf("\033[1;33m  %s\033[0m\n", heading)
	fmt.Printf("  %s\n", thin)
	if len(counts) == 0 {
		fmt.Printf("  No data\n\n")
		return
	}

	type kc struct {
		key   string
		count int
	}
	sorted := make([]kc, 0, len(counts))
	for k, c := range counts {
		sorted = append(sorted, kc{k, c})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].key < sorted[j].key
	})

	for _, e := range sorted {
		bar := strings.Repeat("█", e.count)
		fmt.Printf("  %-16s %s (%d)\n", e.key, bar, e.count)
	}
	fmt.Println()
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
