package workflow

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/pendakwaan/pkg/handlers"
	"github.com/JaimeStill/pendakwaan/pkg/routes"
)

// StatusInfo describes one status for clients.
type StatusInfo struct {
	Status   Status `json:"status"`
	Label    string `json:"label"`
	Terminal bool   `json:"terminal"`
}

// Handler exposes the workflow definition over HTTP.
type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger.With("handler", "workflow")}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/workflow",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/statuses", Handler: h.Statuses},
			{Method: "GET", Pattern: "/transitions", Handler: h.Transitions},
		},
	}
}

func (h *Handler) Statuses(w http.ResponseWriter, r *http.Request) {
	out := make([]StatusInfo, len(statuses))
	for i, s := range statuses {
		out[i] = StatusInfo{Status: s, Label: s.Label(), Terminal: s.Terminal()}
	}
	handlers.RespondJSON(w, http.StatusOK, out)
}

// Transitions returns the full table, or only edges out of ?from= when set.
func (h *Handler) Transitions(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("from")
	if raw == "" {
		handlers.RespondJSON(w, http.StatusOK, Transitions())
		return
	}

	from, err := ParseStatus(raw)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	out := make([]Transition, 0)
	for _, t := range Transitions() {
		if t.From == from {
			out = append(out, t)
		}
	}
	handlers.RespondJSON(w, http.StatusOK, out)
}
