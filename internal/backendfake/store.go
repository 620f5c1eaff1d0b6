package backendfake

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"devhub/internal/models"
)

type account struct {
	user         models.User
	passwordHash []byte
	suspended    bool
	createdAt    time.Time
	extra        map[string]string
}

// store is the whole fake database. Every exported handler takes the lock
// through the store's methods; records are copied on the way out.
type store struct {
	mu sync.RWMutex

	nextID     int64
	accounts   map[int64]*account
	developers map[int64]*models.Developer
	projects   map[int64]*models.Project
	reviews    map[int64]*models.Review
	messages   map[int64]*models.Message
	jobs       map[int64]*models.Job
	applicants map[int64][]int64
	settings   models.PlatformSettings
}

func newStore() *store {
	return &store{
		accounts:   make(map[int64]*account),
		developers: make(map[int64]*models.Developer),
		projects:   make(map[int64]*models.Project),
		reviews:    make(map[int64]*models.Review),
		messages:   make(map[int64]*models.Message),
		jobs:       make(map[int64]*models.Job),
		applicants: make(map[int64][]int64),
		settings: models.PlatformSettings{
			PlatformFee:      10,
			MinProjectBudget: 50,
			MaxProjectBudget: 100000,
		},
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) accountByEmail(email string) *account {
	for _, a := range s.accounts {
		if strings.EqualFold(a.user.Email, email) {
			return a
		}
	}
	return nil
}

func (s *store) developerByUser(userID int64) *models.Developer {
	for _, d := range s.developers {
		if d.UserID == userID {
			return d
		}
	}
	return nil
}

func (s *store) userName(id int64) string {
	if a, ok := s.accounts[id]; ok {
		return a.user.FullName
	}
	return ""
}

func (s *store) refreshRating(developerID int64) {
	dev, ok := s.developers[developerID]
	if !ok {
		return
	}
	var sum, n int
	for _, r := range s.reviews {
		if r.DeveloperID == developerID {
			sum += r.Rating
			n++
		}
	}
	dev.TotalReviews = n
	dev.Rating = 0
	if n > 0 {
		dev.Rating = models.Number(float64(sum) / float64(n))
	}
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}

func parseNumber(s string) models.Number {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return models.Number(f)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
