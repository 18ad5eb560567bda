package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"

	"github.com/JaimeStill/pendakwaan/internal/config"
)

// Claims are the identity attributes read from a verified token.
type Claims struct {
	Subject    string `json:"sub"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
}

// Verifier validates a raw bearer token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, raw string) (Claims, error)
}

// NewVerifier builds the verifier selected by cfg.Mode. In oidc mode this
// fetches the issuer's discovery document.
func NewVerifier(ctx context.Context, cfg *config.AuthConfig) (Verifier, error) {
	switch cfg.Mode {
	case config.AuthModeOIDC:
		return newOIDCVerifier(ctx, cfg)
	case config.AuthModeHS256:
		return NewHS256Verifier([]byte(cfg.Secret), cfg.Issuer, cfg.Audience), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}

type oidcVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func newOIDCVerifier(ctx context.Context, cfg *config.AuthConfig) (*oidcVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	return &oidcVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.Audience}),
	}, nil
}

func (v *oidcVerifier) Verify(ctx context.Context, raw string) (Claims, error) {
	token, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	var c Claims
	if err := token.Claims(&c); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	c.Subject = token.Subject
	return c, validClaims(c)
}

type hs256Claims struct {
	jwt.RegisteredClaims
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
}

type hs256Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewHS256Verifier verifies tokens signed with a shared secret. Issuer and
// audience are enforced only when non-empty. Expiry is always required.
func NewHS256Verifier(secret []byte, issuer, audience string) Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &hs256Verifier{secret: secret, parser: jwt.NewParser(opts...)}
}

func (v *hs256Verifier) Verify(_ context.Context, raw string) (Claims, error) {
	var hc hs256Claims
	_, err := v.parser.ParseWithClaims(raw, &hc, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	c := Claims{
		Subject:    hc.Subject,
		Email:      hc.Email,
		Name:       hc.Name,
		Department: hc.Department,
	}
	return c, validClaims(c)
}

func validClaims(c Claims) error {
	if c.Subject == "" {
		return fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}
	return nil
}
