package api

import (
	"net/http"

	"github.com/JaimeStill/pendakwaan/internal/laws"
	"github.com/JaimeStill/pendakwaan/internal/workflow"
	"github.com/JaimeStill/pendakwaan/pkg/routes"
)

// Groups returns the route groups served by the API module, relative to
// its base path.
func Groups(domain *Domain, runtime *Runtime) []routes.Group {
	return []routes.Group{
		laws.NewHandler(runtime.Logger).Routes(),
		workflow.NewHandler(runtime.Logger).Routes(),
		domain.Cases.Handler().Routes(),
		domain.Persons.Handler().Routes(),
		domain.Employers.Handler().Routes(),
		domain.Profiles.Handler().Routes(),
		domain.Audit.Handler().Routes(),
	}
}

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) {
	routes.Register(mux, Groups(domain, runtime)...)
}
