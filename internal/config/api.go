package config

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/pendakwaan/pkg/middleware"
	"github.com/JaimeStill/pendakwaan/pkg/openapi"
	"github.com/JaimeStill/pendakwaan/pkg/pagination"
)

const EnvAPIBasePath = "PENDAKWAAN_API_BASE_PATH"

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PENDAKWAAN_CORS_ENABLED",
	Origins:          "PENDAKWAAN_CORS_ORIGINS",
	AllowedMethods:   "PENDAKWAAN_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PENDAKWAAN_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PENDAKWAAN_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PENDAKWAAN_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "PENDAKWAAN_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "PENDAKWAAN_PAGINATION_MAX_PAGE_SIZE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "PENDAKWAAN_OPENAPI_TITLE",
	Description: "PENDAKWAAN_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
	OpenAPI    openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	defaultString(&c.BasePath, "/api")
	envString(EnvAPIBasePath, &c.BasePath)

	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 {
		return fmt.Errorf("base_path must be a single-level path such as /api: %q", c.BasePath)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	mergeString(&c.BasePath, overlay.BasePath)
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

