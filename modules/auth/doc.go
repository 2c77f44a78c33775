// Package auth mounts the login, logout and current-user endpoints and
// provides RequireToken for routes that need a bearer token.
package auth
