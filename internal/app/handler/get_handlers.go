package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dodomains/dodomains/internal/app/presenter"
	"github.com/dodomains/dodomains/internal/app/service"
	"github.com/dodomains/dodomains/internal/components"
	"github.com/dodomains/dodomains/internal/middleware"
)

type GetHandler struct {
	service service.GeneratorServiceIface
	logger  *zap.Logger
}

func NewGet(s service.GeneratorServiceIface, l *zap.Logger) *GetHandler {
	return &GetHandler{
		service: s,
		logger:  l,
	}
}

// Index renders the generator page. The view query parameter selects the
// results tab: all (default) or available.
func (h *GetHandler) Index(res http.ResponseWriter, req *http.Request) *ComponentResponse {
	st, err := h.service.State(req.Context(), middleware.SessionIDFromContext(req.Context()))
	if err != nil {
		return &ComponentResponse{
			Error:   err,
			Message: "Cannot load session",
			Code:    http.StatusInternalServerError,
		}
	}

	view := presenter.ParseView(req.URL.Query().Get("view"))
	return &ComponentResponse{
		ContentType: "text/html; charset=utf-8",
		Component:   components.Index(components.NewPageData(st, view)),
	}
}

// Session answers with the JSON view of the visitor's form and results.
func (h *GetHandler) Session(res http.ResponseWriter, req *http.Request) {
	st, err := h.service.State(req.Context(), middleware.SessionIDFromContext(req.Context()))
	if err != nil {
		h.logger.Error("Cannot load session", zap.Error(err))
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := writeJSON(res, http.StatusOK, presenter.SessionView(st)); err != nil {
		h.logger.Error("Cannot write response", zap.Error(err))
	}
}

func (h *GetHandler) Ping(res http.ResponseWriter, req *http.Request) {
	res.WriteHeader(http.StatusOK)
}
