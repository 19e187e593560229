// Package models defines the data structures exchanged with the domain
// generation endpoint and with clients of the form API.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// GenerationRequest is the immutable snapshot of the form that is sent to
// the generation endpoint.
type GenerationRequest struct {
	Keywords    []string `json:"keywords"`
	Description string   `json:"description"`
	// DomainLength is always sent as a scalar.
	DomainLength int      `json:"domainLength"`
	DomainStyle  string   `json:"domainStyle"`
	TLDs         []string `json:"tlds"`
}

// GenerateResponse is the body returned by the generation endpoint.
type GenerateResponse struct {
	Results []SuggestionRecord `json:"results"`
}

// SuggestionRecord is one generated domain name.
type SuggestionRecord struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	// AffiliateLinks may be absent even for available names.
	AffiliateLinks *AffiliateLinks `json:"affiliateLinks,omitempty"`
}

// AffiliateLinks holds the registrar purchase URLs for a name.
type AffiliateLinks struct {
	Godaddy   string `json:"godaddy"`
	Namecheap string `json:"namecheap"`
}

// KeywordRequest adds or removes a keyword.
type KeywordRequest struct {
	Keyword string `json:"keyword"`
}

// DescriptionRequest replaces the project description.
type DescriptionRequest struct {
	Description string `json:"description"`
}

// LengthRequest changes the desired domain length.
type LengthRequest struct {
	DomainLength SliderValue `json:"domainLength"`
}

// StyleRequest selects a naming style.
type StyleRequest struct {
	Style string `json:"style"`
}

// TLDRequest toggles a TLD.
type TLDRequest struct {
	TLD string `json:"tld"`
}

// CategoryRequest switches the viewed TLD group.
type CategoryRequest struct {
	Category string `json:"category"`
}

// SliderValue accepts either a number or the slider's range form, an array
// whose first element is the value. An empty array or null leaves Set false.
type SliderValue struct {
	Value int
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *SliderValue) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}

	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		v.Value, v.Set = n, true
		return nil
	}

	var values []int
	if err := json.Unmarshal(b, &values); err != nil {
		return fmt.Errorf("slider value: %w", err)
	}
	if len(values) > 0 {
		v.Value, v.Set = values[0], true
	}
	return nil
}

// SessionView is the JSON representation of a visitor's form and results.
type SessionView struct {
	Keywords        []string           `json:"keywords"`
	KeywordInput    string             `json:"keywordInput"`
	Description     string             `json:"description"`
	DomainLength    int                `json:"domainLength"`
	DomainStyle     string             `json:"domainStyle"`
	SelectedTLDs    []string           `json:"selectedTlds"`
	TLDCategory     string             `json:"tldCategory"`
	CategoryTLDs    []string           `json:"categoryTlds"`
	RecommendedTLDs []string           `json:"recommendedTlds"`
	RequestState    string             `json:"requestState"`
	Loading         bool               `json:"loading"`
	CanSubmit       bool               `json:"canSubmit"`
	Results         []SuggestionRecord `json:"results"`
	Available       []SuggestionRecord `json:"available"`
}
