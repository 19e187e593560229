package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/dodomains/dodomains/internal/app/presenter"
	"github.com/dodomains/dodomains/internal/app/service"
	"github.com/dodomains/dodomains/internal/form"
	"github.com/dodomains/dodomains/internal/middleware"
	"github.com/dodomains/dodomains/internal/models"
	"github.com/dodomains/dodomains/internal/session"
)

// PostHandler serves the form actions. Form posts are answered with a 303
// back to the page, JSON callers get the updated session view.
type PostHandler struct {
	service service.GeneratorServiceIface
	logger  *zap.Logger
}

func NewPost(s service.GeneratorServiceIface, l *zap.Logger) *PostHandler {
	return &PostHandler{
		service: s,
		logger:  l,
	}
}

func (h *PostHandler) AddKeyword(res http.ResponseWriter, req *http.Request) {
	var body models.KeywordRequest
	ok := decodeBody(res, req, h.logger, &body, func(v url.Values) error {
		body.Keyword = v.Get("keyword")
		return nil
	})
	if !ok {
		return
	}

	h.apply(res, req, func(f *form.Form) error {
		f.AddKeywordText(body.Keyword)
		return nil
	})
}

func (h *PostHandler) RemoveKeyword(res http.ResponseWriter, req *http.Request) {
	var body models.KeywordRequest
	ok := decodeBody(res, req, h.logger, &body, func(v url.Values) error {
		body.Keyword = v.Get("keyword")
		return nil
	})
	if !ok {
		return
	}

	h.apply(res, req, func(f *form.Form) error {
		f.RemoveKeyword(body.Keyword)
		return nil
	})
}

func (h *PostHandler) SetDescription(res http.ResponseWriter, req *http.Request) {
	var body models.DescriptionRequest
	ok := decodeBody(res, req, h.logger, &body, func(v url.Values) error {
		body.Description = v.Get("description")
		return nil
	})
	if !ok {
		return
	}

	h.apply(res, req, func(f *form.Form) error {
		f.SetDescription(body.Description)
		return nil
	})
}

// SetLength accepts the length as a form field or as JSON domainLength,
// either a number or the slider's [n] form.
func (h *PostHandler) SetLength(res http.ResponseWriter, req *http.Request) {
	var body models.LengthRequest
	ok := decodeBody(res, req, h.logger, &body, func(v url.Values) error {
		raw := v.Get("length")
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("length must be a number, got %q", raw)
		}
		body.DomainLength = models.SliderValue{Value: n, Set: true}
		return nil
	})
	if !ok {
		return
	}

	h.apply(res, req, func(f *form.Form) error {
		if body.DomainLength.Set {
			f.SetDomainLength(body.DomainLength.Value)
		}
		return nil
	})
}

func (h *PostHandler) SetStyle(res http.ResponseWriter, req *http.Request) {
	var body models.StyleRequest
	ok := decodeBody(res, req, h.logger, &body, func(v url.Values) error {
		body.Style = v.Get("style")
		return nil
	})
	if !ok {
		return
	}

	h.apply(res, req, func(f *form.Form) error {
		return f.SetDomainStyle(body.Style)
	})
}

func (h *PostHandler) ToggleTLD(res http.ResponseWriter, req *http.Request) {
	var body models.TLDRequest
	ok := decodeBody(res, req, h.logger, &body, func(v url.Values) error {
		body.TLD = v.Get("tld")
		return nil
	})
	if !ok {
		return
	}

	h.apply(res, req, func(f *form.Form) error {
		return f.ToggleTLD(body.TLD)
	})
}

func (h *PostHandler) SetCategory(res http.ResponseWriter, req *http.Request) {
	var body models.CategoryRequest
	ok := decodeBody(res, req, h.logger, &body, func(v url.Values) error {
		body.Category = v.Get("category")
		return nil
	})
	if !ok {
		return
	}

	h.apply(res, req, func(f *form.Form) error {
		return f.SetTLDCategory(body.Category)
	})
}

// Generate submits the form to the generation backend. It blocks until the
// backend answers; a failed call still answers like a successful one and
// leaves the previous results in place.
func (h *PostHandler) Generate(res http.ResponseWriter, req *http.Request) {
	sessionID := middleware.SessionIDFromContext(req.Context())

	if err := h.service.Generate(req.Context(), sessionID); err != nil {
		h.writeError(res, err)
		return
	}

	h.respond(res, req, sessionID)
}

func (h *PostHandler) apply(res http.ResponseWriter, req *http.Request, fn func(*form.Form) error) {
	sessionID := middleware.SessionIDFromContext(req.Context())

	if err := h.service.Update(req.Context(), sessionID, fn); err != nil {
		h.writeError(res, err)
		return
	}

	h.respond(res, req, sessionID)
}

func (h *PostHandler) respond(res http.ResponseWriter, req *http.Request, sessionID string) {
	if !wantsJSON(req) {
		http.Redirect(res, req, "/", http.StatusSeeOther)
		return
	}

	st, err := h.service.State(req.Context(), sessionID)
	if err != nil {
		h.writeError(res, err)
		return
	}

	if err := writeJSON(res, http.StatusOK, presenter.SessionView(st)); err != nil {
		h.logger.Error("Cannot write response", zap.Error(err))
	}
}

func (h *PostHandler) writeError(res http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, form.ErrUnknownStyle),
		errors.Is(err, form.ErrUnknownTLD),
		errors.Is(err, form.ErrUnknownCategory):
		http.Error(res, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrSubmitBlocked):
		http.Error(res, "Add at least one keyword and wait for the running request", http.StatusConflict)
	default:
		h.logger.Error("Cannot handle request", zap.Error(err))
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
