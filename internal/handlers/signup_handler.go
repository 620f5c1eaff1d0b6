package handlers

import (
	"net/http"
	"strconv"
	"time"

	"devhub/internal/api"
	"devhub/internal/middleware"
	"devhub/internal/signup"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type SignupHandler struct {
	base
	wizards *signup.Registry
	now     func() time.Time
}

func NewSignupHandler(client *api.Client, wizards *signup.Registry, logger zerolog.Logger) *SignupHandler {
	return &SignupHandler{
		base:    base{client: client, logger: logger},
		wizards: wizards,
		now:     time.Now,
	}
}

type stepRequest struct {
	Step   signup.Step       `json:"step"`
	Values map[string]string `json:"values"`
}

func (h *SignupHandler) wizard(r *http.Request) *signup.Wizard {
	return h.wizards.Get(middleware.BrowserID(r))
}

func (h *SignupHandler) State(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, h.wizard(r).State())
}

func (h *SignupHandler) Next(w http.ResponseWriter, r *http.Request) {
	var req stepRequest
	if !h.decode(w, r, &req) {
		return
	}

	wiz := h.wizard(r)
	if err := wiz.Advance(req.Step, req.Values); err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, wiz.State())
}

func (h *SignupHandler) Back(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(mux.Vars(r)["step"])
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid_step", "Invalid step")
		return
	}

	wiz := h.wizard(r)
	if err := wiz.Retreat(signup.Step(step)); err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, wiz.State())
}

func (h *SignupHandler) Close(w http.ResponseWriter, r *http.Request) {
	wiz := h.wizard(r)
	wiz.Close()
	h.respondWithJSON(w, http.StatusOK, wiz.State())
}

func (h *SignupHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req stepRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.wizard(r).Submit(r.Context(), req.Values, h.backend(r).Auth)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Registration failed")
		h.fail(w, err)
		return
	}
	h.wizards.Remove(middleware.BrowserID(r))

	h.logger.Info().Str("browser_id", middleware.BrowserID(r)).Msg("Signup completed")
	h.respondWithJSON(w, http.StatusCreated, newAuthResult("Registration successful! Redirecting...", resp.User))
}

func (h *SignupHandler) Demo(w http.ResponseWriter, r *http.Request) {
	values, err := signup.DemoAccount(r.URL.Query().Get("userType"), h.now())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]any{"values": values})
}
