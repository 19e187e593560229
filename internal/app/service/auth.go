package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// AuthIface defines the session token operations used in middleware.
type AuthIface interface {
	BuildJWTString() (string, string, error)
	ParseClaims(c *http.Cookie) (*Claims, error)
	ParseRawJWT(tokenString string) (*Claims, error)
}

// Claims are the JWT claims of a session cookie.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"session_id"`
}

// TokenExp is the lifetime of the session cookie. Server side state may be
// evicted earlier, in which case the id maps to a fresh empty form.
const TokenExp = time.Hour * 24 * 30

// CookieName is the cookie carrying the signed session token.
const CookieName = "token"

var ErrInvalidToken = errors.New("invalid token or claims")

// Auth issues and verifies signed session tokens.
type Auth struct {
	s      Store
	secret []byte
}

func NewAuth(s Store, secret string) *Auth {
	return &Auth{
		s:      s,
		secret: []byte(secret),
	}
}

// BuildJWTString generates a session id not yet known to the store and
// returns a signed token carrying it.
func (a *Auth) BuildJWTString() (string, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var sessionID string
	for {
		tempID := uuid.New().String()
		if a.s == nil || !a.s.Exists(ctx, tempID) {
			sessionID = tempID
			break
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExp)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		SessionID: sessionID,
	})

	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", "", err
	}

	return tokenString, sessionID, nil
}

// ParseClaims verifies the token stored in the cookie.
func (a *Auth) ParseClaims(c *http.Cookie) (*Claims, error) {
	return a.ParseRawJWT(c.Value)
}

func (a *Auth) ParseRawJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
