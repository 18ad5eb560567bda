package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	EnvAuthMode        = "PENDAKWAAN_AUTH_MODE"
	EnvAuthIssuer      = "PENDAKWAAN_AUTH_ISSUER"
	EnvAuthAudience    = "PENDAKWAAN_AUTH_AUDIENCE"
	EnvAuthSecret      = "PENDAKWAAN_AUTH_SECRET"
	EnvAuthAdminEmails = "PENDAKWAAN_AUTH_ADMIN_EMAILS"
)

// Token verification modes.
const (
	AuthModeOIDC  = "oidc"
	AuthModeHS256 = "hs256"
)

// AuthConfig configures bearer token verification against the external
// identity provider.
//
// In oidc mode the issuer's discovery document supplies the signing keys and
// Audience is the registered client id. In hs256 mode tokens are verified
// with the shared Secret; Issuer and Audience are checked when set.
//
// AdminEmails lists addresses whose profile is created with the admin role on
// first sign-in. Everyone else starts as viewer.
type AuthConfig struct {
	Mode        string   `toml:"mode"`
	Issuer      string   `toml:"issuer"`
	Audience    string   `toml:"audience"`
	Secret      string   `toml:"secret"`
	AdminEmails []string `toml:"admin_emails"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize() error {
	defaultString(&c.Mode, AuthModeOIDC)

	envString(EnvAuthMode, &c.Mode)
	envString(EnvAuthIssuer, &c.Issuer)
	envString(EnvAuthAudience, &c.Audience)
	envString(EnvAuthSecret, &c.Secret)
	if v := os.Getenv(EnvAuthAdminEmails); v != "" {
		c.AdminEmails = nil
		for _, e := range strings.Split(v, ",") {
			if e = strings.TrimSpace(e); e != "" {
				c.AdminEmails = append(c.AdminEmails, e)
			}
		}
	}

	c.Mode = strings.ToLower(c.Mode)
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	mergeString(&c.Mode, overlay.Mode)
	mergeString(&c.Issuer, overlay.Issuer)
	mergeString(&c.Audience, overlay.Audience)
	mergeString(&c.Secret, overlay.Secret)
	if overlay.AdminEmails != nil {
		c.AdminEmails = overlay.AdminEmails
	}
}

func (c *AuthConfig) validate() error {
	switch c.Mode {
	case AuthModeOIDC:
		if c.Issuer == "" {
			return fmt.Errorf("issuer required for oidc mode")
		}
		if c.Audience == "" {
			return fmt.Errorf("audience required for oidc mode")
		}
	case AuthModeHS256:
		if len(c.Secret) < 32 {
			return fmt.Errorf("secret must be at least 32 bytes for hs256 mode")
		}
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	return nil
}
