package phones

import (
	"regexp"
	"strings"
	"time"
)

var (
	// storageRe captures a 2-4 digit capacity followed by GB.
	storageRe = regexp.MustCompile(`(?i)(\d{2,4})\s?GB\b`)
	// soldPrefixRe strips the "Sold " prefix off a sold-date cell.
	soldPrefixRe = regexp.MustCompile(`^\s*Sold\s+`)
)

var soldDateLayouts = []string{"Jan 2, 2006", "January 2, 2006"}

// ExtractStorage returns the storage capacity mentioned in the title as
// "<digits> GB", or "Unknown" when no digit+GB pattern is present. The digit
// count is not validated against plausible capacities.
func ExtractStorage(title string) string {
	m := storageRe.FindStringSubmatch(title)
	if m == nil {
		return "Unknown"
	}
	return m[1] + " GB"
}

// ExtractCondition classifies the listing condition by literal substring
// checks in fixed priority order. The checks are deliberately case-sensitive:
// eBay condition labels are title-cased in sold-listing titles.
func ExtractCondition(title string) string {
	switch {
	case strings.Contains(title, "Excellent"):
		return "Excellent"
	case strings.Contains(title, "Very"):
		return "Very Good"
	case strings.Contains(title, "Good"):
		return "Good"
	}
	return "Unknown"
}

// IsPartsOnly reports whether the title marks the item as sold for parts.
func IsPartsOnly(title string) bool {
	return strings.Contains(strings.ToLower(title), "parts only")
}

// ParseSoldDate parses a sold-date cell like "Sold Oct 21, 2025" into a
// calendar date. The leading "Sold" marker and repeated whitespace are
// tolerated; unparseable text returns false rather than an error.
func ParseSoldDate(raw string) (time.Time, bool) {
	s := soldPrefixRe.ReplaceAllString(raw, "")
	s = strings.Join(strings.Fields(s), " ")
	for _, layout := range soldDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
