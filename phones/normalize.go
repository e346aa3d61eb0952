package phones

import "ebay-scraper/models"

// ExtractModel scans a listing title for phone-model mentions across all
// known families and returns the canonical model string when the title names
// exactly one distinct model. Titles naming zero or two-or-more distinct
// models (cases, bundles, cross-listings) return false and are excluded
// rather than guessed.
func ExtractModel(title string) (string, bool) {
	var found []string
	seen := make(map[string]struct{})

	for _, f := range families {
		for _, m := range f.titleRe.FindAllStringSubmatch(title, -1) {
			canon, ok := f.normalizeToken(m[1])
			if !ok {
				continue
			}
			if _, dup := seen[canon]; dup {
				continue
			}
			seen[canon] = struct{}{}
			found = append(found, canon)
		}
	}

	if len(found) != 1 {
		return "", false
	}
	return found[0], true
}

// Derive computes all title-derived attributes for one listing title.
func Derive(title string) models.DerivedFields {
	d := models.DerivedFields{
		Storage:   ExtractStorage(title),
		Condition: ExtractCondition(title),
		PartsOnly: IsPartsOnly(title),
	}
	if model, ok := ExtractModel(title); ok {
		d.Model = model
	}
	return d
}
