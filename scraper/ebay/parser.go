package ebay

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ebay-scraper/models"
)

// linkSuffix is appended by eBay to every listing title for screen readers.
const linkSuffix = "Opens in a new window or tab"

var challengeNeedles = []string{
	"checking your browser before you access",
	"attention required",
	"enable javascript and cookies",
	"verify you are a human",
}

// ErrNoResults is returned when a page contains no srp-results list, which
// usually means eBay served something other than search results.
var ErrNoResults = errors.New("no results list in page")

// IsChallengePage reports whether the HTML is a bot-check interstitial
// rather than a search results page.
func IsChallengePage(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	text := strings.ToLower(doc.Text())
	for _, needle := range challengeNeedles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

// ParseResultsPage extracts sold listings from a rendered eBay search
// results page. It also reports whether a further page exists, judged from
// the pagination next-link.
func ParseResultsPage(html string, pageNum int) ([]*models.RawListing, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false, fmt.Errorf("ebay: parse html: %w", err)
	}

	list := doc.Find("ul.srp-results").First()
	if list.Length() == 0 {
		return nil, false, ErrNoResults
	}

	now := time.Now()
	var listings []*models.RawListing

	list.Find("li").Each(func(_ int, item *goquery.Selection) {
		heading := item.Find(`div[role="heading"]`).First()
		if heading.Length() == 0 {
			return
		}
		title := strings.TrimSpace(strings.ReplaceAll(heading.Text(), linkSuffix, ""))
		if len(title) < 10 {
			// Separator tiles and "Results matching fewer words" stubs.
			return
		}

		link := itemLink(item)
		if link == "" {
			return
		}

		price := strings.TrimSpace(item.Find("span.s-card__price").First().Text())
		if price == "" {
			price = strings.TrimSpace(item.Find("span.s-item__price").First().Text())
		}
		if price == "" {
			price = "N/A"
		}

		image, _ := item.Find("img").First().Attr("src")

		listings = append(listings, &models.RawListing{
			Title:     title,
			Price:     price,
			SoldDate:  soldDate(item),
			Link:      link,
			ImageLink: image,
			Page:      pageNum,
			ScrapedAt: now,
		})
	})

	next := doc.Find("a.pagination__next").First()
	hasNext := next.Length() > 0 && !next.HasClass("pagination__next--disabled")

	return listings, hasNext, nil
}

// itemLink finds the first listing anchor and strips its tracking query.
func itemLink(item *goquery.Selection) string {
	var link string
	item.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || !strings.Contains(href, "/itm/") {
			return true
		}
		link = strings.SplitN(href, "?", 2)[0]
		return false
	})
	return link
}

// soldDate pulls the "Sold <Month> <Day>, <Year>" caption off a result card.
func soldDate(item *goquery.Selection) string {
	date := strings.TrimSpace(item.Find("span.POSITIVE").First().Text())
	if strings.HasPrefix(date, "Sold") {
		return date
	}

	date = ""
	item.Find("span").EachWithBreak(func(_ int, sp *goquery.Selection) bool {
		txt := strings.TrimSpace(sp.Text())
		if strings.HasPrefix(txt, "Sold ") {
			date = txt
			return false
		}
		return true
	})
	if date == "" {
		return "N/A"
	}
	return date
}

// ParseSavedFile parses a results page saved to disk, e.g. one captured by a
// browser session or a previous debug dump. A saved bot-wall is reported as
// an error instead of yielding zero rows silently.
func ParseSavedFile(path string) ([]*models.RawListing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ebay: read saved html %q: %w", path, err)
	}
	html := string(data)

	if IsChallengePage(html) {
		return nil, fmt.Errorf("ebay: %q is a challenge page, not search results", path)
	}

	listings, _, err := ParseResultsPage(html, 1)
	if err != nil {
		return nil, fmt.Errorf("ebay: parse saved html %q: %w", path, err)
	}
	return listings, nil
}
