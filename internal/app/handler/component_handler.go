package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"
)

type component interface {
	Render(ctx context.Context, w io.Writer) error
}

// ComponentResponse is what a page handler returns: either a component to
// render or an error with the status to answer with.
type ComponentResponse struct {
	Error       error
	Message     string
	Code        int
	ContentType string
	Component   component
}

// ComponentHandler adapts a page handler to http.Handler.
type ComponentHandler func(http.ResponseWriter, *http.Request) *ComponentResponse

func (ch ComponentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := ch(w, r)

	if resp.Error != nil {
		zap.L().Error("Page handler failed", zap.String("url", r.URL.String()), zap.Error(resp.Error))
		http.Error(w, resp.Message, resp.Code)
		return
	}

	// render first so a template failure can still become a 500
	var buf bytes.Buffer
	if err := resp.Component.Render(r.Context(), &buf); err != nil {
		zap.L().Error("Cannot render component", zap.String("url", r.URL.String()), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	if resp.Code != 0 {
		w.WriteHeader(resp.Code)
	}
	_, _ = buf.WriteTo(w)
}
