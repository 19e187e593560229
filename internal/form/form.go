// Package form implements the generator form state: keywords, description,
// desired length and style, selected TLDs and the currently viewed TLD group.
//
// A Form is not safe for concurrent use; callers serialize access to it.
package form

import (
	"errors"

	"github.com/dodomains/dodomains/internal/catalog"
	"github.com/dodomains/dodomains/internal/models"
)

const (
	MinLength     = 3
	MaxLength     = 20
	DefaultLength = 10
)

var (
	ErrUnknownStyle    = errors.New("unknown domain style")
	ErrUnknownTLD      = errors.New("unknown tld")
	ErrUnknownCategory = errors.New("unknown tld category")
)

type Form struct {
	keywords     KeywordSet
	keywordInput string
	description  string
	length       int
	style        catalog.Style
	tlds         []string
	category     catalog.Category
}

// New returns a form holding the defaults shown on first visit.
func New() *Form {
	return &Form{
		length:   DefaultLength,
		style:    catalog.DefaultStyle,
		category: catalog.DefaultCategory,
	}
}

// SetKeywordInput replaces the pending keyword buffer.
func (f *Form) SetKeywordInput(s string) {
	f.keywordInput = s
}

// AddKeyword moves the pending buffer into the keyword list. The buffer is
// cleared only when the keyword was accepted.
func (f *Form) AddKeyword() bool {
	if !f.keywords.Add(f.keywordInput) {
		return false
	}
	f.keywordInput = ""
	return true
}

// AddKeywordText sets the buffer to s and adds it.
func (f *Form) AddKeywordText(s string) bool {
	f.SetKeywordInput(s)
	return f.AddKeyword()
}

func (f *Form) RemoveKeyword(keyword string) {
	f.keywords.Remove(keyword)
}

func (f *Form) SetDescription(s string) {
	f.description = s
}

// SetDomainLength clamps n into [MinLength, MaxLength].
func (f *Form) SetDomainLength(n int) {
	f.length = clamp(n)
}

// SetDomainLengthRange applies the first element of a slider range. An empty
// range leaves the length unchanged.
func (f *Form) SetDomainLengthRange(values []int) {
	if len(values) == 0 {
		return
	}
	f.SetDomainLength(values[0])
}

func (f *Form) SetDomainStyle(id string) error {
	s, ok := catalog.ParseStyle(id)
	if !ok {
		return ErrUnknownStyle
	}
	f.style = s
	return nil
}

// ToggleTLD adds tld to the selection when absent and removes it when present.
func (f *Form) ToggleTLD(tld string) error {
	tld = catalog.NormalizeTLD(tld)
	if !catalog.IsKnownTLD(tld) {
		return ErrUnknownTLD
	}

	for i, selected := range f.tlds {
		if selected == tld {
			f.tlds = append(f.tlds[:i], f.tlds[i+1:]...)
			return nil
		}
	}
	f.tlds = append(f.tlds, tld)
	return nil
}

// SetTLDCategory changes the viewed group only; the selection is untouched.
func (f *Form) SetTLDCategory(c string) error {
	category, ok := catalog.ParseCategory(c)
	if !ok {
		return ErrUnknownCategory
	}
	f.category = category
	return nil
}

func (f *Form) Keywords() []string {
	return f.keywords.Values()
}

func (f *Form) KeywordCount() int {
	return f.keywords.Len()
}

func (f *Form) KeywordInput() string {
	return f.keywordInput
}

func (f *Form) Description() string {
	return f.description
}

func (f *Form) DomainLength() int {
	return f.length
}

func (f *Form) DomainStyle() catalog.Style {
	return f.style
}

func (f *Form) Category() catalog.Category {
	return f.category
}

// SelectedTLDs returns a copy of the selection in toggle order.
func (f *Form) SelectedTLDs() []string {
	out := make([]string, len(f.tlds))
	copy(out, f.tlds)
	return out
}

func (f *Form) IsSelected(tld string) bool {
	for _, selected := range f.tlds {
		if selected == tld {
			return true
		}
	}
	return false
}

// RecommendedTLDs returns the suggestions shown while nothing is selected.
func (f *Form) RecommendedTLDs() []string {
	if len(f.tlds) > 0 {
		return []string{}
	}
	return catalog.RecommendedTLDs(f.style)
}

// Snapshot copies the current values into a request body.
func (f *Form) Snapshot() models.GenerationRequest {
	return models.GenerationRequest{
		Keywords:     f.keywords.Values(),
		Description:  f.description,
		DomainLength: f.length,
		DomainStyle:  string(f.style),
		TLDs:         f.SelectedTLDs(),
	}
}

func clamp(n int) int {
	if n < MinLength {
		return MinLength
	}
	if n > MaxLength {
		return MaxLength
	}
	return n
}
