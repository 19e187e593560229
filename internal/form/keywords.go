package form

import "strings"

// KeywordSet is an ordered list of unique, non-blank keywords.
type KeywordSet struct {
	items []string
}

// Add appends the trimmed keyword. It reports false when the keyword is blank
// or already present.
func (k *KeywordSet) Add(keyword string) bool {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || k.Contains(keyword) {
		return false
	}
	k.items = append(k.items, keyword)
	return true
}

// Remove drops every element equal to keyword.
func (k *KeywordSet) Remove(keyword string) {
	kept := k.items[:0]
	for _, item := range k.items {
		if item != keyword {
			kept = append(kept, item)
		}
	}
	k.items = kept
}

func (k *KeywordSet) Contains(keyword string) bool {
	for _, item := range k.items {
		if item == keyword {
			return true
		}
	}
	return false
}

func (k *KeywordSet) Len() int {
	return len(k.items)
}

// Values returns a copy in insertion order. It is never nil.
func (k *KeywordSet) Values() []string {
	out := make([]string, len(k.items))
	copy(out, k.items)
	return out
}
