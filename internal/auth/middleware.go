package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/pendakwaan/pkg/handlers"
)

// Resolver maps verified claims to a Principal, typically by loading or
// creating the caller's profile.
type Resolver interface {
	Resolve(ctx context.Context, c Claims) (Principal, error)
}

// Middleware returns HTTP middleware that requires a valid bearer token,
// resolves the principal, and stores it on the request context.
func Middleware(v Verifier, r Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("middleware", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			raw, ok := bearerToken(req)
			if !ok {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthenticated)
				return
			}

			claims, err := v.Verify(req.Context(), raw)
			if err != nil {
				logger.Debug("token rejected", "error", err)
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthenticated)
				return
			}

			p, err := r.Resolve(req.Context(), claims)
			if err != nil {
				handlers.RespondError(w, logger, http.StatusInternalServerError, err)
				return
			}

			next.ServeHTTP(w, req.WithContext(WithPrincipal(req.Context(), p)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
