package ebay

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"ebay-scraper/config"
	"ebay-scraper/models"
	"ebay-scraper/phones"
	"ebay-scraper/utils"
)

const searchURL = "https://www.ebay.com/sch/i.html"

// usedConditions filters results to Excellent/Very Good/Good refurbished
// grades; cellPhoneCategory pins the search to the phones category.
const (
	usedConditions    = "2010|2020|2030"
	cellPhoneCategory = "9355"
)

// Scraper drives a headless browser over eBay sold/completed listing
// searches, one query per target model.
type Scraper struct {
	cfg        *config.Config
	logger     *utils.Logger
	pool       *utils.WorkerPool
	visitedURL *utils.URLSet
	retry      *utils.RetryConfig
}

// New creates a ready-to-use eBay Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:        cfg,
		logger:     logger,
		pool:       utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visitedURL: utils.NewURLSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// ScrapeAll runs a sold-listings search for every model through the worker
// pool and returns the scraped rows grouped by model. One model's failure
// does not abort the others.
func (s *Scraper) ScrapeAll(modelNames []string) (map[string][]*models.RawListing, error) {
	chromeBin := s.findChromeBinary()
	s.logger.Info("[ebay] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()
	allocCtx = silentCtx

	var mu sync.Mutex
	byModel := make(map[string][]*models.RawListing)

	for _, model := range modelNames {
		m := model
		s.pool.Submit(func() {
			listings, err := s.scrapeModel(allocCtx, m)
			if err != nil {
				s.logger.Error("[ebay] %s failed: %v", m, err)
				return
			}
			mu.Lock()
			byModel[m] = listings
			mu.Unlock()
		})
	}
	s.pool.Wait()

	total := 0
	for _, l := range byModel {
		total += len(l)
	}
	s.logger.Info("[ebay] Scrape complete — %d models, %d raw listings", len(byModel), total)
	return byModel, nil
}

// scrapeModel pages through one model's sold-listings search.
func (s *Scraper) scrapeModel(allocCtx context.Context, model string) ([]*models.RawListing, error) {
	s.logger.Info("[ebay] %s: starting — up to %d pages, %d items/page",
		model, s.cfg.PagesToScrape, s.cfg.ItemsPerPage)

	var all []*models.RawListing
	for page := 1; page <= s.cfg.PagesToScrape; page++ {
		pageListings, hasNext, err := s.scrapePage(allocCtx, model, page)
		if err != nil {
			s.logger.Error("[ebay] %s page %d failed: %v", model, page, err)
			break
		}

		kept := 0
		for _, l := range pageListings {
			if !s.visitedURL.Add(l.Link) {
				s.logger.Debug("[ebay] Skipping duplicate: %s", l.Link)
				continue
			}
			all = append(all, l)
			kept++
		}
		s.logger.Info("[ebay] %s page %d — %d items (%d new)", model, page, len(pageListings), kept)

		if !hasNext {
			s.logger.Info("[ebay] %s: reached last page", model)
			break
		}
		time.Sleep(time.Duration(s.cfg.RateLimitMs) * time.Millisecond)
	}

	return all, nil
}

// scrapePage navigates one search results page and parses its rendered HTML.
func (s *Scraper) scrapePage(allocCtx context.Context, model string, pageNum int) ([]*models.RawListing, bool, error) {
	var listings []*models.RawListing
	var hasNext bool

	pageURL := s.buildSearchURL(model, pageNum)

	err := s.retry.Do(fmt.Sprintf("scrape-%s-page-%d", phones.ModelSlug(model), pageNum), func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		var html string
		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(4*time.Second),
			chromedp.WaitReady("body"),
			chromedp.OuterHTML("html", &html),
		)
		if err != nil {
			return fmt.Errorf("chromedp page load: %w", err)
		}

		if IsChallengePage(html) {
			return fmt.Errorf("challenge page served for %s", pageURL)
		}

		parsed, next, err := ParseResultsPage(html, pageNum)
		if err != nil {
			s.dumpDebugPage(model, pageNum, html)
			return err
		}
		if len(parsed) == 0 {
			s.dumpDebugPage(model, pageNum, html)
		}

		listings = parsed
		hasNext = next
		return nil
	})

	return listings, hasNext, err
}

// buildSearchURL assembles the sold/completed search for one model query.
func (s *Scraper) buildSearchURL(model string, pageNum int) string {
	q := url.Values{}
	q.Set("_nkw", model)
	q.Set("_sacat", "0")
	q.Set("_from", "R40")
	q.Set("LH_Sold", "1")
	q.Set("LH_Complete", "1")
	q.Set("rt", "nc")
	q.Set("LH_ItemCondition", usedConditions)
	q.Set("Network", "Unlocked")
	q.Set("_dcat", cellPhoneCategory)
	q.Set("_ipg", strconv.Itoa(s.cfg.ItemsPerPage))
	q.Set("_pgn", strconv.Itoa(pageNum))
	return searchURL + "?" + q.Encode()
}

// dumpDebugPage saves the rendered HTML of an empty or unparseable page for
// offline inspection.
func (s *Scraper) dumpDebugPage(model string, pageNum int, html string) {
	name := fmt.Sprintf("debug_%s_page_%d.html", phones.ModelSlug(model), pageNum)
	path := filepath.Join(s.cfg.DataDir, name)
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		s.logger.Warn("[ebay] Could not write debug page %s: %v", path, err)
		return
	}
	s.logger.Warn("[ebay] %s page %d yielded nothing — dumped %s", model, pageNum, path)
}

// findChromeBinary locates a Chrome/Chromium binary.
func (s *Scraper) findChromeBinary() string {
	if s.cfg.ChromeBin != "" {
		return s.cfg.ChromeBin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
