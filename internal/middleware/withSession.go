package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dodomains/dodomains/internal/app/service"
)

// ContextKey is the type of the keys this package stores in request contexts.
type ContextKey string

// SessionIDKey holds the visitor's session id.
const SessionIDKey ContextKey = "sessionID"

// InjectSessionID returns a copy of req carrying the session id.
func InjectSessionID(req *http.Request, sessionID string) *http.Request {
	ctx := context.WithValue(req.Context(), SessionIDKey, sessionID)
	return req.WithContext(ctx)
}

// SessionIDFromContext returns the id set by WithSession, or "".
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}

// WithSession resolves the session id from the signed "token" cookie. A
// missing or invalid token starts a new session and sets a fresh cookie.
func WithSession(auth service.AuthIface, log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""

			if cookie, err := r.Cookie(service.CookieName); err == nil {
				claims, err := auth.ParseClaims(cookie)
				if err != nil {
					log.Debug("Discarding session token", zap.Error(err))
				} else {
					sessionID = claims.SessionID
				}
			}

			if sessionID == "" {
				tokenString, generatedID, err := auth.BuildJWTString()
				if err != nil {
					log.Error("Cannot issue session token", zap.Error(err))
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				http.SetCookie(w, &http.Cookie{
					Name:     service.CookieName,
					Value:    tokenString,
					Expires:  time.Now().Add(service.TokenExp),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Path:     "/",
				})
				sessionID = generatedID
			}

			next.ServeHTTP(w, InjectSessionID(r, sessionID))
		})
	}
}
