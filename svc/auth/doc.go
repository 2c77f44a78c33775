// Package auth implements password login with signed access tokens.
//
// Authenticator.Login resolves the identifier as a username and then as an
// email, verifies the password and issues a short lived bearer token through
// TokenIssuer. Tokens carry {sub, user_id, type, iat, exp} and are stateless:
// Logout only records an audit event.
//
//	issuer := auth.NewTokenIssuer(jwtService, 30*time.Minute)
//	authn := auth.NewAuthenticator(users, issuer, auth.WithAudit(auditLog))
//
//	token, err := authn.Login(ctx, "alice", "secret123")
package auth
