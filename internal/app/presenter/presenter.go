// Package presenter turns the suggestion list into the rows shown on the
// results card.
package presenter

import (
	"github.com/a-h/templ"

	"github.com/dodomains/dodomains/internal/catalog"
	"github.com/dodomains/dodomains/internal/models"
	"github.com/dodomains/dodomains/internal/session"
)

// View selects one of the result tabs.
type View string

const (
	ViewAll       View = "all"
	ViewAvailable View = "available"
)

// ParseView falls back to ViewAll for anything it does not recognize.
func ParseView(s string) View {
	if View(s) == ViewAvailable {
		return ViewAvailable
	}
	return ViewAll
}

// Link is an outbound registrar link.
type Link struct {
	Registrar string
	URL       templ.SafeURL
}

type Row struct {
	Name      string
	Available bool
	Status    string
	Links     []Link
}

type Views struct {
	All       []Row
	Available []Row
}

// Rows returns the rows of the requested tab.
func (v Views) Rows(view View) []Row {
	if view == ViewAvailable {
		return v.Available
	}
	return v.All
}

// Present builds both tabs in backend order. The input is not modified.
func Present(results []models.SuggestionRecord) Views {
	v := Views{
		All:       make([]Row, 0, len(results)),
		Available: make([]Row, 0, len(results)),
	}

	for _, r := range results {
		row := Row{
			Name:      r.Name,
			Available: r.Available,
			Status:    StatusLabel(r.Available),
			Links:     Links(r),
		}
		v.All = append(v.All, row)
		if r.Available {
			v.Available = append(v.Available, row)
		}
	}

	return v
}

// AvailableOnly filters records, keeping order.
func AvailableOnly(results []models.SuggestionRecord) []models.SuggestionRecord {
	out := make([]models.SuggestionRecord, 0, len(results))
	for _, r := range results {
		if r.Available {
			out = append(out, r)
		}
	}
	return out
}

func StatusLabel(available bool) string {
	if available {
		return "Available"
	}
	return "Taken"
}

// Links returns the registrar links of an available record, GoDaddy first.
// Taken names, records without affiliate links and empty URLs get none.
func Links(r models.SuggestionRecord) []Link {
	if !r.Available || r.AffiliateLinks == nil {
		return nil
	}

	var links []Link
	if r.AffiliateLinks.Godaddy != "" {
		links = append(links, Link{Registrar: "GoDaddy", URL: templ.URL(r.AffiliateLinks.Godaddy)})
	}
	if r.AffiliateLinks.Namecheap != "" {
		links = append(links, Link{Registrar: "Namecheap", URL: templ.URL(r.AffiliateLinks.Namecheap)})
	}
	return links
}

// SessionView builds the JSON representation of a session snapshot.
func SessionView(st session.State) models.SessionView {
	results := st.Results
	if results == nil {
		results = []models.SuggestionRecord{}
	}

	categoryTLDs := catalog.TLDs(catalog.Category(st.Category))
	if categoryTLDs == nil {
		categoryTLDs = []string{}
	}

	return models.SessionView{
		Keywords:        st.Keywords,
		KeywordInput:    st.KeywordInput,
		Description:     st.Description,
		DomainLength:    st.DomainLength,
		DomainStyle:     st.DomainStyle,
		SelectedTLDs:    st.SelectedTLDs,
		TLDCategory:     st.Category,
		CategoryTLDs:    categoryTLDs,
		RecommendedTLDs: st.RecommendedTLDs,
		RequestState:    st.RequestState.String(),
		Loading:         st.Loading(),
		CanSubmit:       st.CanSubmit(),
		Results:         results,
		Available:       AvailableOnly(results),
	}
}
