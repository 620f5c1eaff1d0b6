package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"devhub/internal/api"
	"devhub/internal/dashboard"
	"devhub/internal/middleware"
	"devhub/internal/signup"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// base carries what every gateway handler needs: the backend client template
// and a logger.
type base struct {
	client *api.Client
	logger zerolog.Logger
}

// backend binds the backend client to the calling browser's session.
func (b *base) backend(r *http.Request) *api.API {
	return api.New(b.client.WithSession(middleware.SessionFrom(r)))
}

func (b *base) respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	middleware.RespondWithError(w, code, errorCode, message)
}

func (b *base) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// fail maps an error from the lower layers onto the JSON error envelope.
func (b *base) fail(w http.ResponseWriter, err error) {
	var validation *signup.ValidationError
	var apiErr *api.Error

	switch {
	case errors.As(err, &validation):
		b.respondWithError(w, http.StatusBadRequest, "validation_failed", validation.Message)
	case errors.Is(err, signup.ErrSubmitInProgress), errors.Is(err, errInFlight):
		b.respondWithError(w, http.StatusConflict, "submission_in_progress", "Please wait for the current request to finish")
	case errors.Is(err, signup.ErrInvalidTransition):
		b.respondWithError(w, http.StatusConflict, "invalid_step", err.Error())
	case errors.Is(err, dashboard.ErrNotSignedIn):
		b.respondWithError(w, http.StatusUnauthorized, "unauthorized", "Please log in first")
	case errors.Is(err, dashboard.ErrClientOnly), errors.Is(err, dashboard.ErrDeveloperOnly), errors.Is(err, dashboard.ErrAdminOnly):
		b.respondWithError(w, http.StatusForbidden, "access_denied", err.Error())
	case errors.As(err, &apiErr):
		if apiErr.Status == 0 {
			b.logger.Error().Err(apiErr.Err).Msg("Backend unreachable")
			b.respondWithError(w, http.StatusBadGateway, "backend_unavailable", apiErr.Message)
			return
		}
		b.respondWithError(w, apiErr.Status, "request_failed", apiErr.Message)
	default:
		b.logger.Error().Err(err).Msg("Request failed")
		b.respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
	}
}

func (b *base) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		b.respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return false
	}
	return true
}

func (b *base) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		b.respondWithError(w, http.StatusBadRequest, "invalid_id", "Invalid ID")
		return 0, false
	}
	return id, true
}

var errInFlight = errors.New("request already in flight")

// inFlight lets one submission per browser and form through at a time.
type inFlight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInFlight() *inFlight {
	return &inFlight{keys: make(map[string]struct{})}
}

func (g *inFlight) begin(browserID, form string) (func(), error) {
	key := browserID + "/" + form
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.keys[key]; busy {
		return nil, errInFlight
	}
	g.keys[key] = struct{}{}
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.keys, key)
	}, nil
}
