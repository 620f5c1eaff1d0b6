package handlers

import (
	"net/http"
	"strings"
	"time"

	"devhub/internal/api"
	"devhub/internal/middleware"
	"devhub/internal/models"

	"github.com/rs/zerolog"
)

const (
	defaultReviewRating = 5
	hireDeadline        = 30 * 24 * time.Hour
)

// MarketHandler serves the developer directory and the hire, review and
// contact actions on a developer profile.
type MarketHandler struct {
	base
	inflight *inFlight
	now      func() time.Time
}

func NewMarketHandler(client *api.Client, logger zerolog.Logger) *MarketHandler {
	return &MarketHandler{
		base:     base{client: client, logger: logger},
		inflight: newInFlight(),
		now:      time.Now,
	}
}

var directoryFilters = []string{"search", "skill", "location", "rating", "limit"}

func (h *MarketHandler) ListDevelopers(w http.ResponseWriter, r *http.Request) {
	filters := api.Filters{}
	q := r.URL.Query()
	for _, key := range directoryFilters {
		filters[key] = strings.TrimSpace(q.Get(key))
	}

	devs, err := h.backend(r).Developers.List(r.Context(), filters)
	if err != nil {
		h.fail(w, err)
		return
	}
	if devs == nil {
		devs = []models.Developer{}
	}
	h.respondWithJSON(w, http.StatusOK, map[string]any{"developers": devs})
}

func (h *MarketHandler) GetDeveloper(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	dev, err := h.backend(r).Developers.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]any{"developer": dev})
}

func (h *MarketHandler) DeveloperReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	reviews, err := h.backend(r).Reviews.ForDeveloper(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	h.respondWithJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (h *MarketHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.DeveloperID == 0 || strings.TrimSpace(req.Message) == "" {
		h.respondWithError(w, http.StatusBadRequest, "validation_failed", "Please write a review")
		return
	}
	if req.Rating == 0 {
		req.Rating = defaultReviewRating
	}

	done, ok := h.guard(w, r, "review")
	if !ok {
		return
	}
	defer done()

	if err := h.backend(r).Reviews.Add(r.Context(), req); err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, map[string]string{"message": "Review submitted successfully!"})
}

type hireRequest struct {
	DeveloperID int64   `json:"developerId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
}

// Hire creates a project assigned to a developer, due 30 days from now.
func (h *MarketHandler) Hire(w http.ResponseWriter, r *http.Request) {
	var req hireRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.DeveloperID == 0 || strings.TrimSpace(req.Title) == "" || req.Budget <= 0 {
		h.respondWithError(w, http.StatusBadRequest, "validation_failed", "Please fill in all project details")
		return
	}

	done, ok := h.guard(w, r, "hire")
	if !ok {
		return
	}
	defer done()

	project, err := h.backend(r).Projects.Create(r.Context(), models.ProjectRequest{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		DeveloperID: req.DeveloperID,
		Deadline:    h.now().Add(hireDeadline).Format("2006-01-02"),
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, map[string]any{"message": "Project created successfully!", "project": project})
}

func (h *MarketHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.SendMessageRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.ReceiverID == 0 || strings.TrimSpace(req.Message) == "" {
		h.respondWithError(w, http.StatusBadRequest, "validation_failed", "Please enter a message")
		return
	}

	done, ok := h.guard(w, r, "message")
	if !ok {
		return
	}
	defer done()

	if err := h.backend(r).Messages.Send(r.Context(), req.ReceiverID, req.Message); err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, map[string]string{"message": "Message sent successfully!"})
}

// guard admits one submission of form per browser at a time.
func (h *MarketHandler) guard(w http.ResponseWriter, r *http.Request, form string) (func(), bool) {
	done, err := h.inflight.begin(middleware.BrowserID(r), form)
	if err != nil {
		h.fail(w, err)
		return nil, false
	}
	return done, true
}
