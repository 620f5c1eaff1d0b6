package handlers

import (
	"net/http"

	"devhub/internal/api"
	"devhub/internal/dashboard"

	"github.com/rs/zerolog"
)

type DashboardHandler struct {
	base
}

func NewDashboardHandler(client *api.Client, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{base: base{client: client, logger: logger}}
}

func (h *DashboardHandler) loader(r *http.Request) *dashboard.Loader {
	return dashboard.NewLoader(h.backend(r), h.logger)
}

// refreshHeader tells the page how often to poll the view.
const refreshHeader = "X-Refresh-Interval"

func (h *DashboardHandler) Client(w http.ResponseWriter, r *http.Request) {
	view, err := h.loader(r).Client(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set(refreshHeader, dashboard.ClientRefreshInterval.String())
	h.respondWithJSON(w, http.StatusOK, view)
}

func (h *DashboardHandler) Developer(w http.ResponseWriter, r *http.Request) {
	view, err := h.loader(r).Developer(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set(refreshHeader, dashboard.DeveloperRefreshInterval.String())
	h.respondWithJSON(w, http.StatusOK, view)
}

func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	view, err := h.loader(r).Admin(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set(refreshHeader, dashboard.AdminRefreshInterval.String())
	h.respondWithJSON(w, http.StatusOK, view)
}
