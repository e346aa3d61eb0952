package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ebay-scraper/config"
	"ebay-scraper/models"
	"ebay-scraper/phones"
	"ebay-scraper/scraper/ebay"
	"ebay-scraper/services"
	"ebay-scraper/storage"
	"ebay-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== eBay Sold Listings Scraper starting ===")
	logger.Info("Config — data dir: %s | pages: %d | items/page: %d | concurrency: %d | rate: %dms",
		cfg.DataDir, cfg.PagesToScrape, cfg.ItemsPerPage, cfg.MaxConcurrency, cfg.RateLimitMs)

	targetModels, err := config.LoadModels(cfg.ModelsFile)
	if err != nil {
		logger.Error("Failed to load model list: %v", err)
		os.Exit(1)
	}
	logger.Info("Target models: %d (%s ...)", len(targetModels), targetModels[0])

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		logger.Error("Failed to create data dir %s: %v", cfg.DataDir, err)
		os.Exit(1)
	}

	if cfg.SavedHTML != "" {
		importSavedHTML(cfg, logger, targetModels[0])
	} else {
		scrapeLive(cfg, logger, targetModels)
	}

	exporter := services.NewExporter(logger, cfg.ModelMatchCaseInsensitive)
	results := exporter.ExportAll(cfg.DataDir, targetModels)
	if len(results) == 0 {
		logger.Error("No model subset could be exported. Exiting.")
		os.Exit(1)
	}

	insightSvc := services.NewInsightService(logger)
	for _, res := range results {
		ds, err := storage.ReadDataset(res.Path)
		if err != nil {
			logger.Warn("Could not read exported subset %s: %v", res.Path, err)
			continue
		}
		insightSvc.Print(insightSvc.Generate(res.Model, ds))
	}

	fmt.Printf("  Done. %d model subsets exported to %s\n\n", len(results), cfg.DataDir)
}

// importSavedHTML parses one saved results page into the raw CSV for the
// first configured model. A saved page corresponds to a single search query,
// so batch runs over saved files should configure one model at a time.
func importSavedHTML(cfg *config.Config, logger *utils.Logger, model string) {
	logger.Info("Offline mode — parsing saved HTML: %s", cfg.SavedHTML)

	listings, err := ebay.ParseSavedFile(cfg.SavedHTML)
	if err != nil {
		logger.Error("Saved HTML parse failed: %v", err)
		os.Exit(1)
	}
	if len(listings) == 0 {
		logger.Error("Saved HTML contained no listings. Exiting.")
		os.Exit(1)
	}

	writeRawCSV(cfg, logger, model, listings)
}

// scrapeLive runs the headless-browser scrape for every target model and
// writes one raw CSV per model.
func scrapeLive(cfg *config.Config, logger *utils.Logger, targetModels []string) {
	scraper := ebay.New(cfg, logger)
	byModel, err := scraper.ScrapeAll(targetModels)
	if err != nil {
		logger.Error("Scrape failed: %v", err)
	}

	wrote := 0
	for model, listings := range byModel {
		if len(listings) == 0 {
			logger.Warn("%s: no listings scraped — keeping any existing CSV", model)
			continue
		}
		writeRawCSV(cfg, logger, model, listings)
		wrote++
	}
	if wrote == 0 {
		logger.Warn("No new listings scraped — exporting from existing CSVs in %s", cfg.DataDir)
	}
}

// writeRawCSV persists one model's scraped rows as "<model-slug>_sold.csv",
// the filename shape the source-file resolver expects.
func writeRawCSV(cfg *config.Config, logger *utils.Logger, model string, listings []*models.RawListing) {
	path := filepath.Join(cfg.DataDir, phones.ModelSlug(model)+"_sold.csv")

	writer, err := storage.NewCSVWriter(path)
	if err != nil {
		logger.Error("%s: failed to create raw CSV: %v", model, err)
		return
	}
	defer writer.Close()

	if err := writer.WriteRaw(listings); err != nil {
		logger.Error("%s: raw CSV write failed: %v", model, err)
		return
	}
	logger.Info("%s: %d raw listings saved to %s", model, len(listings), filepath.Base(path))
}
