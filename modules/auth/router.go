package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/progenglish/handler"
	"github.com/dmitrymomot/progenglish/pkg/apperr"
	"github.com/dmitrymomot/progenglish/pkg/binder"
	"github.com/dmitrymomot/progenglish/pkg/clientip"
	"github.com/dmitrymomot/progenglish/pkg/jwt"
	"github.com/dmitrymomot/progenglish/pkg/ratelimiter"
	"github.com/dmitrymomot/progenglish/svc/auth"
	"github.com/dmitrymomot/progenglish/svc/user"
)

// MessageTooManyAttempts is returned when the login throttle trips.
const MessageTooManyAttempts = "too many login attempts, try again later"

// Module serves /auth.
type Module struct {
	authn      *auth.Authenticator
	users      user.Service
	limiter    *ratelimiter.Bucket
	translator *handler.ErrorTranslator
}

// NewModule creates the auth module. A nil limiter disables login throttling.
func NewModule(authn *auth.Authenticator, users user.Service, limiter *ratelimiter.Bucket, t *handler.ErrorTranslator) *Module {
	return &Module{authn: authn, users: users, limiter: limiter, translator: t}
}

// Handle returns the router mounted at /auth.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	login := r.With()
	if m.limiter != nil {
		login = r.With(ratelimiter.MiddlewareWithConfig(ratelimiter.MiddlewareConfig{
			Bucket:       m.limiter,
			KeyFunc:      ratelimiter.Prefixed("login", clientip.GetIP),
			ErrorHandler: m.translator.ErrorFunc(limitError),
		}))
	}
	login.Post("/login", handler.Wrap(m.login,
		handler.WithBinders[handler.Context, loginRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, loginRequest](m.translator.Handle),
	))

	r.Post("/logout", handler.Wrap(m.logout,
		handler.WithErrorHandler[handler.Context, struct{}](m.translator.Handle),
	))

	r.With(RequireToken(m.authn, m.translator)).Get("/me", handler.Wrap(m.me,
		handler.WithErrorHandler[handler.Context, struct{}](m.translator.Handle),
	))

	return r
}

func (m *Module) login(ctx handler.Context, req loginRequest) handler.Response {
	token, err := m.authn.Login(ctx, *req.Username, *req.Password)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Success(token, handler.WithMessage("login successful"))
}

func (m *Module) logout(ctx handler.Context, _ struct{}) handler.Response {
	if raw, err := jwt.BearerTokenExtractor(ctx.Request()); err == nil {
		if claims, err := m.authn.Authenticate(raw); err == nil {
			m.authn.Logout(ctx, claims)
		}
	}
	return handler.Success(nil, handler.WithMessage("logout successful"))
}

func (m *Module) me(ctx handler.Context, _ struct{}) handler.Response {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return handler.Fail(auth.ErrUnauthenticated)
	}

	u, err := m.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, user.ErrNotFound) {
		return handler.Fail(auth.ErrUnauthenticated)
	}
	if err != nil {
		return handler.Fail(err)
	}
	if !u.IsActive {
		return handler.Fail(auth.ErrAccountDisabled)
	}

	return handler.Success(u.Profile())
}

func limitError(err error) error {
	if errors.Is(err, ratelimiter.ErrLimitExceeded) {
		return apperr.TooManyRequests(MessageTooManyAttempts)
	}
	return err
}
