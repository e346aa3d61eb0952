package phones

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrModelNotRecognized is returned when a requested model name does not
// parse against any family grammar.
var ErrModelNotRecognized = errors.New("model name not recognized")

// Variant is one suffix form of a phone family. Tokens are the lowercase
// words of the suffix as they appear in titles and filenames; an empty
// Tokens slice is the base model. Suffix is appended to "<Keyword> <number>"
// when rendering the canonical string, so " Pro XL" carries its own leading
// space and the Pixel "a" suffix attaches directly ("Pixel 9a").
type Variant struct {
	Tokens []string
	Suffix string
}

// Family describes one phone family's grammar: how model mentions appear in
// free-text listing titles, how a requested model name parses, and how a
// number+variant pair renders canonically. Both the title normalizer and the
// source-file resolver are driven off the same table.
type Family struct {
	Keyword     string // "Pixel", "iPhone"
	BrandPrefix string // optional brand prefix in titles: "Google", "Apple"
	Trailing    string // token discarded after a title match, e.g. "5G"
	Variants    []Variant

	titleRe *regexp.Regexp
	tokenRe *regexp.Regexp
	nameRe  *regexp.Regexp
}

var families = []*Family{
	// Variant order matters: longest token sequence first, so "Pro XL" is
	// never truncated to "Pro".
	newFamily("Pixel", "Google", "5G", []Variant{
		{Tokens: []string{"pro", "xl"}, Suffix: " Pro XL"},
		{Tokens: []string{"pro"}, Suffix: " Pro"},
		{Tokens: []string{"xl"}, Suffix: " XL"},
		{Tokens: []string{"a"}, Suffix: "a"},
		{},
	}),
	newFamily("iPhone", "Apple", "", []Variant{
		{Tokens: []string{"pro", "max"}, Suffix: " Pro Max"},
		{Tokens: []string{"pro"}, Suffix: " Pro"},
		{Tokens: []string{"plus"}, Suffix: " Plus"},
		{Tokens: []string{"mini"}, Suffix: " Mini"},
		{Tokens: []string{"max"}, Suffix: " Max"},
		{},
	}),
}

func newFamily(keyword, brandPrefix, trailing string, variants []Variant) *Family {
	f := &Family{
		Keyword:     keyword,
		BrandPrefix: brandPrefix,
		Trailing:    trailing,
		Variants:    variants,
	}

	alt := f.suffixAlternation()

	trail := ""
	if trailing != "" {
		trail = `(?:\s*` + regexp.QuoteMeta(trailing) + `)?`
	}

	// Model numbers are 1-2 digits starting 1-9, which rejects accidental
	// matches on years and prices.
	f.titleRe = regexp.MustCompile(fmt.Sprintf(
		`(?i)(?:%s\s+)?%s\s+((?:[1-9][0-9]?)(?:\s*(?:%s))?)\b%s`,
		regexp.QuoteMeta(brandPrefix), regexp.QuoteMeta(keyword), alt, trail))
	f.tokenRe = regexp.MustCompile(fmt.Sprintf(
		`(?i)^([1-9][0-9]?)(?:\s*(%s))?$`, alt))
	f.nameRe = regexp.MustCompile(fmt.Sprintf(
		`(?i)^%s\s+([1-9][0-9]?)(?:\s*(%s))?$`, regexp.QuoteMeta(keyword), alt))

	return f
}

// suffixAlternation joins the non-base variant patterns in table order, so
// longer suffixes are tried first.
func (f *Family) suffixAlternation() string {
	parts := make([]string, 0, len(f.Variants))
	for _, v := range f.Variants {
		if len(v.Tokens) == 0 {
			continue
		}
		toks := make([]string, len(v.Tokens))
		for i, t := range v.Tokens {
			toks[i] = regexp.QuoteMeta(t)
		}
		parts = append(parts, strings.Join(toks, `\s+`))
	}
	return strings.Join(parts, "|")
}

// variantForSuffix maps a matched suffix (any casing or spacing) to its
// table entry. An empty suffix is the base variant.
func (f *Family) variantForSuffix(suffix string) (*Variant, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(suffix), " "))
	for i := range f.Variants {
		if strings.Join(f.Variants[i].Tokens, " ") == key {
			return &f.Variants[i], true
		}
	}
	return nil, false
}

// render produces the one canonical display string for a number+variant pair.
func (f *Family) render(num string, v *Variant) string {
	return f.Keyword + " " + num + v.Suffix
}

// normalizeToken canonicalizes a captured title token like "9 pro xl" into
// "Pixel 9 Pro XL". It is a pure function: the same token always yields the
// same canonical string.
func (f *Family) normalizeToken(token string) (string, bool) {
	t := strings.Join(strings.Fields(token), " ")
	m := f.tokenRe.FindStringSubmatch(t)
	if m == nil {
		return "", false
	}
	v, ok := f.variantForSuffix(m[2])
	if !ok {
		return "", false
	}
	return f.render(m[1], v), true
}

// parseModelName resolves a requested model name like "iPhone 14 Pro Max"
// into its family, number and variant.
func parseModelName(name string) (*Family, string, *Variant, error) {
	trimmed := strings.Join(strings.Fields(name), " ")
	for _, f := range families {
		m := f.nameRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		if v, ok := f.variantForSuffix(m[2]); ok {
			return f, m[1], v, nil
		}
	}
	return nil, "", nil, fmt.Errorf("%w: %q", ErrModelNotRecognized, name)
}

// CanonicalModelName normalizes a requested model name ("pixel 9 pro xl")
// into its canonical rendering ("Pixel 9 Pro XL").
func CanonicalModelName(name string) (string, error) {
	f, num, v, err := parseModelName(name)
	if err != nil {
		return "", err
	}
	return f.render(num, v), nil
}

// ModelSlug renders a model name as a filename stem: lowercased, spaces
// replaced by underscores.
func ModelSlug(model string) string {
	return strings.ReplaceAll(strings.ToLower(model), " ", "_")
}
