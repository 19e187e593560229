// Package catalog holds the static reference data offered by the generator
// form: the named TLD groups and the domain style tags.
package catalog

import "strings"

// Category names one of the TLD groups shown as tabs on the form.
type Category string

const (
	Popular   Category = "popular"
	Creative  Category = "creative"
	Country   Category = "country"
	Specialty Category = "specialty"
)

// DefaultCategory is the group shown before the visitor picks one.
const DefaultCategory = Popular

// Style is the naming style requested from the generator.
type Style string

const (
	Short        Style = "short"
	Brandable    Style = "brandable"
	Balanced     Style = "balanced"
	CreativeName Style = "creative"
	Funny        Style = "funny"
	Professional Style = "professional"
)

// DefaultStyle is the style preselected on a fresh form.
const DefaultStyle = Balanced

// StyleOption pairs a style id with its display label.
type StyleOption struct {
	ID    Style
	Label string
}

// CategoryOption pairs a category with its tab label.
type CategoryOption struct {
	ID    Category
	Label string
}

var styles = []StyleOption{
	{ID: Short, Label: "Short & Simple"},
	{ID: Brandable, Label: "Brandable"},
	{ID: Balanced, Label: "Balanced"},
	{ID: CreativeName, Label: "Creative"},
	{ID: Funny, Label: "Funny"},
	{ID: Professional, Label: "Professional"},
}

var categories = []CategoryOption{
	{ID: Popular, Label: "Popular"},
	{ID: Creative, Label: "Creative"},
	{ID: Country, Label: "Country"},
	{ID: Specialty, Label: "Specialty"},
}

var groups = map[Category][]string{
	Popular:   {"com", "net", "org", "io", "co", "app", "dev"},
	Creative:  {"ai", "io", "co", "me", "app", "xyz", "tech", "design"},
	Country:   {"us", "uk", "ca", "eu", "de", "fr", "jp", "au"},
	Specialty: {"store", "shop", "blog", "online", "site", "web", "digital", "cloud"},
}

var known = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, tlds := range groups {
		for _, tld := range tlds {
			m[tld] = struct{}{}
		}
	}
	return m
}()

// Styles returns the style options in display order.
func Styles() []StyleOption {
	out := make([]StyleOption, len(styles))
	copy(out, styles)
	return out
}

// Categories returns the TLD group tabs in display order.
func Categories() []CategoryOption {
	out := make([]CategoryOption, len(categories))
	copy(out, categories)
	return out
}

// TLDs returns a copy of the TLDs in the given group, or nil for an
// unknown group.
func TLDs(c Category) []string {
	tlds, ok := groups[c]
	if !ok {
		return nil
	}
	out := make([]string, len(tlds))
	copy(out, tlds)
	return out
}

// ParseStyle reports whether s names a known style.
func ParseStyle(s string) (Style, bool) {
	for _, opt := range styles {
		if string(opt.ID) == s {
			return opt.ID, true
		}
	}
	return "", false
}

// ParseCategory reports whether s names a known TLD group.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	_, ok := groups[c]
	return c, ok
}

// StyleLabel returns the display label of a style, or the raw id when unknown.
func StyleLabel(s Style) string {
	for _, opt := range styles {
		if opt.ID == s {
			return opt.Label
		}
	}
	return string(s)
}

// NormalizeTLD trims, lowercases and strips a leading dot.
func NormalizeTLD(tld string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(tld)), ".")
}

// IsKnownTLD reports whether tld belongs to any group. tld must be normalized.
func IsKnownTLD(tld string) bool {
	_, ok := known[tld]
	return ok
}

// RecommendedTLDs returns the group suggested for a style: the creative group
// for playful styles, the popular group otherwise.
func RecommendedTLDs(s Style) []string {
	if s == CreativeName || s == Funny {
		return TLDs(Creative)
	}
	return TLDs(Popular)
}
