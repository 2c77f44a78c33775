package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = "HS256"

var supportedMethods = map[string]gojwt.SigningMethod{
	"HS256": gojwt.SigningMethodHS256,
	"HS384": gojwt.SigningMethodHS384,
	"HS512": gojwt.SigningMethodHS512,
}

// Config holds the signing settings read from the environment.
type Config struct {
	SigningKey string `env:"JWT_SECRET,required"`
	Algorithm  string `env:"JWT_ALGORITHM" envDefault:"HS256"`
}

// Service signs and verifies tokens.
type Service struct {
	signingKey []byte
	method     gojwt.SigningMethod
	now        func() time.Time
	err        error
}

// Option configures a Service.
type Option func(*Service)

// WithAlgorithm selects the HMAC algorithm by its JOSE name.
func WithAlgorithm(alg string) Option {
	return func(s *Service) {
		if alg == "" {
			return
		}
		m, ok := supportedMethods[alg]
		if !ok {
			s.err = fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
			return
		}
		s.method = m
	}
}

// WithClock replaces time.Now for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a service with the provided signing key.
func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	s := &Service{
		signingKey: signingKey,
		method:     gojwt.SigningMethodHS256,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s, nil
}

// NewFromConfig creates a service from Config.
func NewFromConfig(cfg Config, opts ...Option) (*Service, error) {
	return New([]byte(cfg.SigningKey), append([]Option{WithAlgorithm(cfg.Algorithm)}, opts...)...)
}

// Now returns the current time according to the service clock.
func (s *Service) Now() time.Time { return s.now() }

// Algorithm returns the configured algorithm name.
func (s *Service) Algorithm() string { return s.method.Alg() }

// Generate signs claims.
func (s *Service) Generate(claims gojwt.Claims) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}
	token, err := gojwt.NewWithClaims(s.method, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Parse verifies tokenString and decodes it into claims.
func (s *Service) Parse(tokenString string, claims gojwt.Claims) error {
	if claims == nil {
		return ErrMissingClaims
	}
	if tokenString == "" {
		return ErrInvalidToken
	}

	_, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, gojwt.WithoutClaimsValidation())
	if err != nil {
		switch {
		case errors.Is(err, ErrUnexpectedSigningMethod):
			return ErrUnexpectedSigningMethod
		case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
			return ErrInvalidSignature
		default:
			return errors.Join(ErrInvalidToken, err)
		}
	}

	return s.validateTime(claims)
}

func (s *Service) keyFunc(t *gojwt.Token) (any, error) {
	if t.Method == nil || t.Method.Alg() != s.method.Alg() {
		return nil, ErrUnexpectedSigningMethod
	}
	return s.signingKey, nil
}

func (s *Service) validateTime(claims gojwt.Claims) error {
	now := s.now().Unix()

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return errors.Join(ErrInvalidToken, err)
	}
	if exp != nil && now > exp.Unix() {
		return ErrExpiredToken
	}

	nbf, err := claims.GetNotBefore()
	if err != nil {
		return errors.Join(ErrInvalidToken, err)
	}
	if nbf != nil && now < nbf.Unix() {
		return ErrInvalidToken
	}

	return nil
}
