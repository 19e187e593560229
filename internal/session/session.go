// Package session ties one visitor's form to the state of their generation
// request and the last list of suggestions.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/dodomains/dodomains/internal/form"
	"github.com/dodomains/dodomains/internal/models"
)

// RequestState tracks the lifecycle of a submission.
type RequestState int

const (
	Idle RequestState = iota
	InFlight
	Failed
	Succeeded
)

func (s RequestState) String() string {
	switch s {
	case InFlight:
		return "in_flight"
	case Failed:
		return "failed"
	case Succeeded:
		return "succeeded"
	default:
		return "idle"
	}
}

// ErrSubmitBlocked is returned when a submission is attempted while one is in
// flight or no keyword has been entered.
var ErrSubmitBlocked = errors.New("submission blocked")

// CanSubmit is the enablement rule of the generate action.
func CanSubmit(state RequestState, keywordCount int) bool {
	return state != InFlight && keywordCount > 0
}

type Session struct {
	ID string

	mu       sync.Mutex
	form     *form.Form
	state    RequestState
	results  []models.SuggestionRecord
	lastSeen time.Time
}

func New(id string) *Session {
	return &Session{
		ID:       id,
		form:     form.New(),
		results:  []models.SuggestionRecord{},
		lastSeen: time.Now(),
	}
}

// Update runs fn against the form while holding the session lock.
func (s *Session) Update(fn func(f *form.Form) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()
	return fn(s.form)
}

// BeginSubmit moves the session to InFlight and returns the request to send.
func (s *Session) BeginSubmit() (models.GenerationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()
	if !CanSubmit(s.state, s.form.KeywordCount()) {
		return models.GenerationRequest{}, ErrSubmitBlocked
	}
	s.state = InFlight
	return s.form.Snapshot(), nil
}

// CompleteSubmit leaves the InFlight state. On success the result list is
// replaced wholesale; on failure the previous results are kept.
func (s *Session) CompleteSubmit(results []models.SuggestionRecord, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()
	if err != nil {
		s.state = Failed
		return
	}
	if results == nil {
		results = []models.SuggestionRecord{}
	}
	s.results = results
	s.state = Succeeded
}

// State is a consistent copy of everything a page render needs.
type State struct {
	Keywords        []string
	KeywordInput    string
	Description     string
	DomainLength    int
	DomainStyle     string
	SelectedTLDs    []string
	Category        string
	RecommendedTLDs []string
	RequestState    RequestState
	Results         []models.SuggestionRecord
}

func (st State) Loading() bool {
	return st.RequestState == InFlight
}

func (st State) CanSubmit() bool {
	return CanSubmit(st.RequestState, len(st.Keywords))
}

func (st State) IsSelected(tld string) bool {
	for _, selected := range st.SelectedTLDs {
		if selected == tld {
			return true
		}
	}
	return false
}

// Snapshot returns a State copy taken under the lock.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()
	results := make([]models.SuggestionRecord, len(s.results))
	copy(results, s.results)

	return State{
		Keywords:        s.form.Keywords(),
		KeywordInput:    s.form.KeywordInput(),
		Description:     s.form.Description(),
		DomainLength:    s.form.DomainLength(),
		DomainStyle:     string(s.form.DomainStyle()),
		SelectedTLDs:    s.form.SelectedTLDs(),
		Category:        string(s.form.Category()),
		RecommendedTLDs: s.form.RecommendedTLDs(),
		RequestState:    s.state,
		Results:         results,
	}
}

// IdleSince reports whether the session has been untouched since t and has
// no request in flight.
func (s *Session) IdleSince(t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state != InFlight && s.lastSeen.Before(t)
}
