// Package service contains the domain generation use cases: form updates,
// single-flight submission through the gateway and session identity.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dodomains/dodomains/internal/form"
	"github.com/dodomains/dodomains/internal/session"
)

type GeneratorService struct {
	store   Store
	gateway Gateway
	logger  *zap.Logger
}

func NewGenerator(s Store, g Gateway, l *zap.Logger) *GeneratorService {
	return &GeneratorService{
		store:   s,
		gateway: g,
		logger:  l,
	}
}

func (s *GeneratorService) session(ctx context.Context, id string) (*session.Session, error) {
	sess, err := s.store.GetOrCreate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return sess, nil
}

// State returns a consistent copy of the session's form and results.
func (s *GeneratorService) State(ctx context.Context, id string) (session.State, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return session.State{}, err
	}
	return sess.Snapshot(), nil
}

// Update applies fn to the session's form under the session lock.
func (s *GeneratorService) Update(ctx context.Context, id string, fn func(*form.Form) error) error {
	sess, err := s.session(ctx, id)
	if err != nil {
		return err
	}
	return sess.Update(fn)
}

// Generate submits the session's form. It returns session.ErrSubmitBlocked
// when nothing was sent. Gateway failures are logged and swallowed: the
// previous results stay in place and the session leaves the in-flight state.
func (s *GeneratorService) Generate(ctx context.Context, id string) error {
	sess, err := s.session(ctx, id)
	if err != nil {
		return err
	}

	req, err := sess.BeginSubmit()
	if err != nil {
		return err
	}

	results, err := s.gateway.Generate(ctx, req)
	if err != nil {
		s.logger.Error("Error generating domains",
			zap.String("session", id),
			zap.Strings("keywords", req.Keywords),
			zap.Error(err),
		)
		sess.CompleteSubmit(nil, err)
		return nil
	}

	s.logger.Info("Domains generated", zap.String("session", id), zap.Int("count", len(results)))
	sess.CompleteSubmit(results, nil)
	return nil
}
