package handlers

import (
	"net/http"

	"devhub/internal/api"
	"devhub/internal/middleware"
	"devhub/internal/models"
	"devhub/internal/session"
	"devhub/internal/signup"

	"github.com/rs/zerolog"
)

type AuthHandler struct {
	base
	inflight *inFlight
}

func NewAuthHandler(client *api.Client, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		base:     base{client: client, logger: logger},
		inflight: newInFlight(),
	}
}

// AuthResult tells the page where to go once the banner has shown.
type AuthResult struct {
	Message         string       `json:"message"`
	User            *models.User `json:"user,omitempty"`
	Dashboard       string       `json:"dashboard,omitempty"`
	RedirectAfterMs int64        `json:"redirectAfterMs"`
}

func newAuthResult(message string, user *models.User) AuthResult {
	return AuthResult{
		Message:         message,
		User:            user,
		Dashboard:       session.DashboardPage(user),
		RedirectAfterMs: signup.RedirectDelay.Milliseconds(),
	}
}

type SessionInfo struct {
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
	Dashboard     string       `json:"dashboard,omitempty"`
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r)
	user, err := sess.CurrentUser(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, SessionInfo{
		Authenticated: sess.IsAuthenticated(r.Context()),
		User:          user,
		Dashboard:     session.DashboardPage(user),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	done, err := h.inflight.begin(middleware.BrowserID(r), "login")
	if err != nil {
		h.fail(w, err)
		return
	}
	defer done()

	resp, err := h.backend(r).Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn().Str("email", req.Email).Err(err).Msg("Login failed")
		h.fail(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, newAuthResult("Login successful! Redirecting...", resp.User))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.backend(r).Auth.Logout(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"redirect": session.PageIndex})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.backend(r).Auth.Me(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]any{"user": user})
}
