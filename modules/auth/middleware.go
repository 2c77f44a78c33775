package auth

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/progenglish/handler"
	"github.com/dmitrymomot/progenglish/pkg/jwt"
	"github.com/dmitrymomot/progenglish/svc/auth"
)

// RequireToken rejects requests without a valid bearer access token with a
// 401 envelope. The *auth.Claims are stored in the request context.
func RequireToken(authn *auth.Authenticator, t *handler.ErrorTranslator) func(http.Handler) http.Handler {
	return jwt.MiddlewareWithConfig(jwt.MiddlewareConfig{
		Parse: func(token string) (any, error) {
			claims, err := authn.Authenticate(token)
			if err != nil {
				return nil, err
			}
			return claims, nil
		},
		ErrorHandler: t.ErrorFunc(func(error) error {
			return auth.ErrUnauthenticated
		}),
	})
}

// ClaimsFromContext returns the claims stored by RequireToken.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	return jwt.GetClaims[*auth.Claims](ctx)
}
