// Package jwt signs and verifies HMAC JSON Web Tokens on top of
// github.com/golang-jwt/jwt/v5.
//
// A Service is bound to one signing key and one algorithm (HS256 by default,
// HS384 and HS512 supported). Tokens signed with any other algorithm are
// rejected. Expiry is checked against the service clock with second
// resolution: a token is expired once the current Unix time is strictly
// greater than its exp claim.
//
//	svc, err := jwt.New([]byte(secret), jwt.WithAlgorithm("HS256"))
//	token, err := svc.Generate(claims)
//	err = svc.Parse(token, &claims)
//
// Middleware extracts a bearer token, validates it and stores the token and
// the parsed claims in the request context.
package jwt
