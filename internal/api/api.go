// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/internal/config"
	"github.com/JaimeStill/pendakwaan/internal/infrastructure"
	"github.com/JaimeStill/pendakwaan/pkg/middleware"
	"github.com/JaimeStill/pendakwaan/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Every route requires a verified bearer token.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	metrics := middleware.NewMetrics(runtime.Registry)

	m := module.New(cfg.API.BasePath, metrics.Instrument(mux))
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(auth.Middleware(runtime.Verifier, domain.Profiles, runtime.Logger))

	return m, nil
}
