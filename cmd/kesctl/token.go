package main

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/pendakwaan/internal/config"
)

type tokenFlags struct {
	secret     string
	subject    string
	email      string
	name       string
	department string
	issuer     string
	audience   string
	ttl        time.Duration
}

func newTokenCommand() *cobra.Command {
	var f tokenFlags

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an hs256 bearer token for development",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.secret == "" {
				f.secret = os.Getenv(config.EnvAuthSecret)
			}
			if len(f.secret) < 32 {
				return errors.New("secret must be at least 32 bytes (--secret or " + config.EnvAuthSecret + ")")
			}

			token, err := signToken(f, time.Now())
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", token)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.secret, "secret", "", "Shared signing secret")
	fl.StringVar(&f.subject, "sub", "", "Subject claim")
	fl.StringVar(&f.email, "email", "", "Email claim")
	fl.StringVar(&f.name, "name", "", "Display name claim")
	fl.StringVar(&f.department, "department", "", "Department claim")
	fl.StringVar(&f.issuer, "iss", "", "Issuer claim")
	fl.StringVar(&f.audience, "aud", "", "Audience claim")
	fl.DurationVar(&f.ttl, "ttl", time.Hour, "Token lifetime")
	cmd.MarkFlagRequired("sub")
	cmd.MarkFlagRequired("email")
	return cmd
}

func signToken(f tokenFlags, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   f.subject,
		"email": f.email,
		"iat":   now.Unix(),
		"exp":   now.Add(f.ttl).Unix(),
	}
	if f.name != "" {
		claims["name"] = f.name
	}
	if f.department != "" {
		claims["department"] = f.department
	}
	if f.issuer != "" {
		claims["iss"] = f.issuer
	}
	if f.audience != "" {
		claims["aud"] = f.audience
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(f.secret))
}
