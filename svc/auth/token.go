package auth

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/dmitrymomot/progenglish/pkg/jwt"
)

const (
	// TokenTypeAccess marks claims issued by Login.
	TokenTypeAccess = "access"
	// TokenTypeBearer is the OAuth2 token_type reported to clients.
	TokenTypeBearer = "bearer"
	// DefaultAccessTTL applies when no TTL is configured.
	DefaultAccessTTL = 30 * time.Minute
)

// Claims is the payload of an access token.
type Claims struct {
	gojwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Type   string `json:"type"`
}

// Username returns the subject of the token.
func (c *Claims) Username() string { return c.Subject }

// Token is returned to clients after a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenIssuer signs and validates access tokens.
type TokenIssuer struct {
	jwt *jwt.Service
	ttl time.Duration
}

// NewTokenIssuer creates an issuer. A non-positive ttl means DefaultAccessTTL.
func NewTokenIssuer(svc *jwt.Service, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	return &TokenIssuer{jwt: svc, ttl: ttl}
}

// TTL returns the access token lifetime.
func (i *TokenIssuer) TTL() time.Duration { return i.ttl }

// Issue signs an access token for the user.
func (i *TokenIssuer) Issue(userID int64, username string) (string, error) {
	now := i.jwt.Now().UTC()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID: userID,
		Type:   TokenTypeAccess,
	}

	token, err := i.jwt.Generate(claims)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}
	return token, nil
}

// Validate returns the claims of a well-formed, correctly signed, unexpired
// access token. Any failure yields nil, false.
func (i *TokenIssuer) Validate(token string) (*Claims, bool) {
	claims := &Claims{}
	if err := i.jwt.Parse(token, claims); err != nil {
		return nil, false
	}
	if claims.Type != TokenTypeAccess || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, false
	}
	return claims, true
}
