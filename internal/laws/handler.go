package laws

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/pendakwaan/pkg/handlers"
	"github.com/JaimeStill/pendakwaan/pkg/routes"
)

// Handler exposes the law table over HTTP.
type Handler struct {
	logger *slog.Logger
}

// Entry is the lookup response for one offense.
type Entry struct {
	Act     Act    `json:"act"`
	Offense string `json:"offense"`
	Sections
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger.With("handler", "laws")}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/laws",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Acts},
			{Method: "GET", Pattern: "/{act}/offenses", Handler: h.Offenses},
			{Method: "GET", Pattern: "/{act}/offenses/{offense}", Handler: h.Lookup},
		},
	}
}

func (h *Handler) Acts(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Acts())
}

func (h *Handler) Offenses(w http.ResponseWriter, r *http.Request) {
	act, err := ParseAct(r.PathValue("act"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, Offenses(act))
}

func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	act, err := ParseAct(r.PathValue("act"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	key := r.PathValue("offense")
	sections, ok := Lookup(act, key)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Entry{Act: act, Offense: key, Sections: sections})
}
