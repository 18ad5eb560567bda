package api

import (
	"github.com/JaimeStill/pendakwaan/internal/config"
	"github.com/JaimeStill/pendakwaan/internal/infrastructure"
	"github.com/JaimeStill/pendakwaan/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination  pagination.Config
	AdminEmails []string
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Verifier:  infra.Verifier,
			Registry:  infra.Registry,
		},
		Pagination:  cfg.API.Pagination,
		AdminEmails: cfg.Auth.AdminEmails,
	}
}
