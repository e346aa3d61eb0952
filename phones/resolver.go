package phones

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ErrNoSourceFile is returned when no CSV in the directory encodes the
// requested model.
var ErrNoSourceFile = errors.New("no source csv found for model")

// Filename tokens may be separated by spaces, underscores or hyphens
// ("pixel_9_pro", "Pixel 9 Pro", "pixel-9-pro"). Plain \b word boundaries
// are useless here because _ counts as a word character, so boundaries are
// spelled out as "not a letter or digit".
const (
	fileSep    = `[\s_-]*`
	leftBound  = `(?:^|[^a-z0-9])`
	rightBound = `(?:[^a-z0-9]|$)`
)

// fileMatcher pairs the filename pattern for the requested variant with the
// patterns of every longer variant it must not be confused with. RE2 has no
// negative lookahead, so "Pixel 9 must not match pixel_9_pro" is expressed
// as a second, rejecting regexp instead.
type fileMatcher struct {
	include  *regexp.Regexp
	excludes []*regexp.Regexp
}

func (m *fileMatcher) matches(name string) bool {
	if !m.include.MatchString(name) {
		return false
	}
	for _, ex := range m.excludes {
		if ex.MatchString(name) {
			return false
		}
	}
	return true
}

// stemPattern builds the filename pattern for one number+variant pair:
// the family keyword, the number and the variant tokens in order, each
// separated by any run of space/underscore/hyphen.
func (f *Family) stemPattern(num string, v *Variant) string {
	var b strings.Builder
	b.WriteString(leftBound)
	b.WriteString(regexp.QuoteMeta(strings.ToLower(f.Keyword)))
	b.WriteString(fileSep)
	b.WriteString(num)
	for _, tok := range v.Tokens {
		b.WriteString(fileSep)
		b.WriteString(regexp.QuoteMeta(tok))
	}
	b.WriteString(rightBound)
	return b.String()
}

// fileMatcherFor derives the matcher for a requested number+variant from the
// variant table. Variants whose token sequence extends the requested one
// (base -> Pro, Pro -> Pro Max) are excluded by their full stem pattern;
// variants that merely contain the requested tokens out of order (XL inside
// Pro XL) are excluded by the extra tokens appearing anywhere in the name.
func (f *Family) fileMatcherFor(num string, v *Variant) *fileMatcher {
	m := &fileMatcher{
		include: regexp.MustCompile(`(?i)` + f.stemPattern(num, v)),
	}

	for i := range f.Variants {
		w := &f.Variants[i]
		if len(w.Tokens) <= len(v.Tokens) {
			continue
		}
		switch {
		case tokensArePrefix(v.Tokens, w.Tokens):
			m.excludes = append(m.excludes,
				regexp.MustCompile(`(?i)`+f.stemPattern(num, w)))
		case tokensAreSubset(v.Tokens, w.Tokens):
			for _, tok := range tokenDifference(w.Tokens, v.Tokens) {
				m.excludes = append(m.excludes, regexp.MustCompile(
					`(?i)`+leftBound+regexp.QuoteMeta(tok)+rightBound))
			}
		}
	}
	return m
}

func tokensArePrefix(short, long []string) bool {
	if len(short) > len(long) {
		return false
	}
	for i, t := range short {
		if long[i] != t {
			return false
		}
	}
	return true
}

func tokensAreSubset(short, long []string) bool {
	set := make(map[string]struct{}, len(long))
	for _, t := range long {
		set[t] = struct{}{}
	}
	for _, t := range short {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

func tokenDifference(long, short []string) []string {
	set := make(map[string]struct{}, len(short))
	for _, t := range short {
		set[t] = struct{}{}
	}
	var diff []string
	for _, t := range long {
		if _, ok := set[t]; !ok {
			diff = append(diff, t)
		}
	}
	return diff
}

// FindCSVForModel locates the one CSV file in dir (non-recursive) whose
// filename encodes the requested model. Candidates are sorted
// lexicographically before picking the first, so an identical directory
// listing always yields the same file regardless of platform iteration
// order. Returns ErrModelNotRecognized for an unparseable model name and
// ErrNoSourceFile when nothing matches.
func FindCSVForModel(dir, modelName string) (string, error) {
	f, num, variant, err := parseModelName(modelName)
	if err != nil {
		return "", err
	}
	matcher := f.fileMatcherFor(num, variant)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("resolver: read dir %q: %w", dir, err)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), ".csv") {
			continue
		}
		if matcher.matches(name) {
			candidates = append(candidates, name)
		}
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %q in %s", ErrNoSourceFile, modelName, dir)
	}
	sort.Strings(candidates)
	return filepath.Join(dir, candidates[0]), nil
}
