package presenter_test

import (
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dodomains/dodomains/internal/app/presenter"
	"github.com/dodomains/dodomains/internal/models"
	"github.com/dodomains/dodomains/internal/session"
)

func sample() []models.SuggestionRecord {
	return []models.SuggestionRecord{
		{Name: "foo.dev", Available: true, AffiliateLinks: &models.AffiliateLinks{Godaddy: "g", Namecheap: "n"}},
		{Name: "bar.dev", Available: false},
	}
}

func TestPresent(t *testing.T) {
	results := sample()
	v := presenter.Present(results)

	require.Len(t, v.All, 2)
	assert.Equal(t, "foo.dev", v.All[0].Name)
	assert.Equal(t, "Available", v.All[0].Status)
	assert.Equal(t, "bar.dev", v.All[1].Name)
	assert.Equal(t, "Taken", v.All[1].Status)
	assert.Empty(t, v.All[1].Links)

	require.Len(t, v.Available, 1)
	assert.Equal(t, "foo.dev", v.Available[0].Name)
	assert.Equal(t, []presenter.Link{
		{Registrar: "GoDaddy", URL: templ.SafeURL("g")},
		{Registrar: "Namecheap", URL: templ.SafeURL("n")},
	}, v.Available[0].Links)

	assert.Equal(t, sample(), results, "source must not be mutated")
}

func TestPresent_Empty(t *testing.T) {
	v := presenter.Present(nil)
	assert.Empty(t, v.All)
	assert.Empty(t, v.Available)
}

func TestRows(t *testing.T) {
	v := presenter.Present(sample())

	assert.Len(t, v.Rows(presenter.ViewAll), 2)
	assert.Len(t, v.Rows(presenter.ViewAvailable), 1)
	assert.Equal(t, presenter.ViewAvailable, presenter.ParseView("available"))
	assert.Equal(t, presenter.ViewAll, presenter.ParseView(""))
	assert.Equal(t, presenter.ViewAll, presenter.ParseView("bogus"))
}

func TestLinks(t *testing.T) {
	tests := []struct {
		name   string
		record models.SuggestionRecord
		want   []string
	}{
		{
			name:   "available without affiliate links",
			record: models.SuggestionRecord{Name: "a.io", Available: true},
			want:   nil,
		},
		{
			name: "taken with affiliate links",
			record: models.SuggestionRecord{Name: "b.io", Available: false,
				AffiliateLinks: &models.AffiliateLinks{Godaddy: "g", Namecheap: "n"}},
			want: nil,
		},
		{
			name: "one empty url",
			record: models.SuggestionRecord{Name: "c.io", Available: true,
				AffiliateLinks: &models.AffiliateLinks{Namecheap: "https://namecheap.example/c.io"}},
			want: []string{"Namecheap"},
		},
		{
			name: "unsafe scheme is neutralized",
			record: models.SuggestionRecord{Name: "d.io", Available: true,
				AffiliateLinks: &models.AffiliateLinks{Godaddy: "javascript:alert(1)", Namecheap: "n"}},
			want: []string{"GoDaddy", "Namecheap"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := presenter.Links(tt.record)
			var got []string
			for _, l := range links {
				got = append(got, l.Registrar)
				assert.NotContains(t, string(l.URL), "javascript:")
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailableOnly(t *testing.T) {
	results := sample()
	got := presenter.AvailableOnly(results)

	require.Len(t, got, 1)
	assert.Equal(t, "foo.dev", got[0].Name)
	assert.Len(t, results, 2)
}

func TestSessionView(t *testing.T) {
	st := session.State{
		Keywords:        []string{"shop"},
		DomainLength:    8,
		DomainStyle:     "creative",
		SelectedTLDs:    []string{},
		Category:        "country",
		RecommendedTLDs: []string{"ai"},
		RequestState:    session.Succeeded,
		Results:         sample(),
	}

	v := presenter.SessionView(st)

	assert.Equal(t, []string{"shop"}, v.Keywords)
	assert.Equal(t, "country", v.TLDCategory)
	assert.Equal(t, []string{"us", "uk", "ca", "eu", "de", "fr", "jp", "au"}, v.CategoryTLDs)
	assert.Equal(t, "succeeded", v.RequestState)
	assert.False(t, v.Loading)
	assert.True(t, v.CanSubmit)
	assert.Len(t, v.Results, 2)
	require.Len(t, v.Available, 1)
	assert.Equal(t, "foo.dev", v.Available[0].Name)
}

func TestSessionView_InFlight(t *testing.T) {
	v := presenter.SessionView(session.State{
		Keywords:     []string{"shop"},
		Category:     "popular",
		RequestState: session.InFlight,
	})

	assert.True(t, v.Loading)
	assert.False(t, v.CanSubmit)
	assert.NotNil(t, v.Results)
	assert.Empty(t, v.Results)
}
