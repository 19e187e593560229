package service

import (
	"context"

	"github.com/dodomains/dodomains/internal/form"
	"github.com/dodomains/dodomains/internal/models"
	"github.com/dodomains/dodomains/internal/session"
)

//go:generate mockgen -destination=../../mocks/mock_service.go -package=mocks github.com/dodomains/dodomains/internal/app/service Gateway,GeneratorServiceIface,AuthIface

// Store is the part of the session storage used by the services.
type Store interface {
	GetOrCreate(context.Context, string) (*session.Session, error)
	Exists(context.Context, string) bool
}

// Gateway sends one generation request to the backend.
type Gateway interface {
	Generate(context.Context, models.GenerationRequest) ([]models.SuggestionRecord, error)
}

// GeneratorServiceIface is what the HTTP handlers need from the service.
type GeneratorServiceIface interface {
	State(ctx context.Context, sessionID string) (session.State, error)
	Update(ctx context.Context, sessionID string, fn func(*form.Form) error) error
	Generate(ctx context.Context, sessionID string) error
}
