package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/progenglish/pkg/audit"
	"github.com/dmitrymomot/progenglish/pkg/logger"
	"github.com/dmitrymomot/progenglish/pkg/password"
	"github.com/dmitrymomot/progenglish/svc/user"
)

// Audit actions.
const (
	ActionLogin  = "auth.login"
	ActionLogout = "auth.logout"
)

// Reasons recorded for rejected logins. Never sent to clients.
const (
	reasonMissingInput  = "missing_input"
	reasonUnknownUser   = "unknown_user"
	reasonWrongPassword = "wrong_password"
	reasonDisabled      = "account_disabled"
)

// dummyHash is verified against when the identifier is unknown, so both
// rejection paths do the same work.
const dummyHash = "0000000000000000000000000000000000000000000000000000000000000000"

// UserLookup resolves accounts by exact username or email.
// Both return user.ErrNotFound when nothing matches.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Authenticator implements password login and token checks.
type Authenticator struct {
	users  UserLookup
	tokens *TokenIssuer
	logger *slog.Logger
	audit  audit.Logger
}

// Option configures the Authenticator.
type Option func(*Authenticator)

// WithLogger sets the authenticator logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Authenticator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithAudit records login and logout events.
func WithAudit(l audit.Logger) Option {
	return func(a *Authenticator) {
		if l != nil {
			a.audit = l
		}
	}
}

// NewAuthenticator creates an Authenticator. Logging and auditing are off
// unless configured with options.
func NewAuthenticator(users UserLookup, tokens *TokenIssuer, opts ...Option) *Authenticator {
	a := &Authenticator{
		users:  users,
		tokens: tokens,
		logger: logger.Discard(),
		audit:  audit.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Login checks the credentials and issues an access token. The identifier is
// tried as a username first, then as an email. Unknown identifiers and wrong
// passwords fail identically; a disabled account is reported only after its
// password matched.
func (a *Authenticator) Login(ctx context.Context, identifier, secret string) (*Token, error) {
	if identifier == "" || secret == "" {
		a.rejected(ctx, identifier, nil, reasonMissingInput, ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	u, err := a.resolve(ctx, identifier)
	if errors.Is(err, user.ErrNotFound) {
		password.Verify(secret, dummyHash)
		a.rejected(ctx, identifier, nil, reasonUnknownUser, ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if !password.Verify(secret, u.HashedPassword) {
		a.rejected(ctx, identifier, u, reasonWrongPassword, ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	if !u.IsActive {
		a.rejected(ctx, identifier, u, reasonDisabled, ErrAccountDisabled)
		return nil, ErrAccountDisabled
	}

	token, err := a.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "user logged in",
		logger.UserID(u.ID),
		logger.Event(ActionLogin),
		logger.Component("auth"),
	)
	a.record(ctx, a.audit.Log(ctx, ActionLogin, audit.WithUserID(strconv.FormatInt(u.ID, 10))))

	return &Token{AccessToken: token, TokenType: TokenTypeBearer}, nil
}

// Logout records the event. Tokens stay valid until they expire.
// claims may be nil when the caller sent no valid token.
func (a *Authenticator) Logout(ctx context.Context, claims *Claims) {
	if claims == nil {
		return
	}

	a.logger.InfoContext(ctx, "user logged out",
		logger.UserID(claims.UserID),
		logger.Event(ActionLogout),
		logger.Component("auth"),
	)
	a.record(ctx, a.audit.Log(ctx, ActionLogout, audit.WithUserID(strconv.FormatInt(claims.UserID, 10))))
}

// Authenticate validates a bearer token.
func (a *Authenticator) Authenticate(token string) (*Claims, error) {
	claims, ok := a.tokens.Validate(token)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// resolve looks the identifier up as a username, then as an email.
func (a *Authenticator) resolve(ctx context.Context, identifier string) (*user.User, error) {
	u, err := a.users.GetByUsername(ctx, identifier)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}
	return a.users.GetByEmail(ctx, identifier)
}

func (a *Authenticator) rejected(ctx context.Context, identifier string, u *user.User, reason string, cause error) {
	attrs := []any{
		slog.String("identifier", identifier),
		slog.String("reason", reason),
		logger.Event(ActionLogin),
		logger.Component("auth"),
	}
	opts := []audit.EventOption{
		audit.WithResult(audit.ResultFailure),
		audit.WithMetadata("identifier", identifier),
		audit.WithMetadata("reason", reason),
	}
	if u != nil {
		attrs = append(attrs, logger.UserID(u.ID))
		opts = append(opts, audit.WithUserID(strconv.FormatInt(u.ID, 10)))
	}

	a.logger.WarnContext(ctx, "login rejected", attrs...)
	a.record(ctx, a.audit.LogError(ctx, ActionLogin, cause, opts...))
}

// record logs audit failures without failing the request.
func (a *Authenticator) record(ctx context.Context, err error) {
	if err != nil {
		a.logger.ErrorContext(ctx, "failed to record audit event", logger.Error(err), logger.Component("auth"))
	}
}
