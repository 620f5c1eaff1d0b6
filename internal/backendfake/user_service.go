package backendfake

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"devhub/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	errMissingFields    = errors.New("Full name, email, password and user type are required")
	errUserExists       = errors.New("User already exists")
	errBadCredentials   = errors.New("Invalid credentials")
	errAccountSuspended = errors.New("Account suspended")
	errUserNotFound     = errors.New("User not found")
)

type UserService struct {
	store  *store
	logger zerolog.Logger
}

func NewUserService(st *store, logger zerolog.Logger) *UserService {
	return &UserService{store: st, logger: logger}
}

// Register creates an account from a flattened signup payload. Developers
// also get a public developer record.
func (s *UserService) Register(payload map[string]string) (*account, error) {
	fullName := strings.TrimSpace(payload["fullName"])
	email := strings.TrimSpace(payload["email"])
	password := payload["password"]
	userType := payload["userType"]
	if fullName == "" || email == "" || password == "" {
		return nil, errMissingFields
	}
	if userType != models.UserTypeDeveloper && userType != models.UserTypeClient {
		return nil, errMissingFields
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.accountByEmail(email) != nil {
		return nil, errUserExists
	}

	a := &account{
		user: models.User{
			ID:       s.store.id(),
			FullName: fullName,
			Email:    email,
			UserType: userType,
			Role:     models.RoleUser,
			Username: payload["username"],
		},
		passwordHash: hashedPassword,
		createdAt:    time.Now(),
		extra:        make(map[string]string),
	}
	for k, v := range payload {
		switch k {
		case "fullName", "email", "password", "userType":
		default:
			a.extra[k] = v
		}
	}
	s.store.accounts[a.user.ID] = a

	if userType == models.UserTypeDeveloper {
		dev := &models.Developer{
			ID:              s.store.id(),
			UserID:          a.user.ID,
			FullName:        fullName,
			Username:        payload["username"],
			Email:           email,
			Bio:             payload["bio"],
			Skills:          payload["skills"],
			ExperienceLevel: payload["experienceLevel"],
			YearsExperience: parseNumber(payload["yearsExperience"]),
			HourlyRate:      parseNumber(payload["hourlyRate"]),
			Location:        payload["location"],
			PortfolioURL:    payload["portfolioUrl"],
		}
		s.store.developers[dev.ID] = dev
	}

	s.logger.Info().Int64("user_id", a.user.ID).Str("email", email).Msg("User registered successfully")
	created := *a
	return &created, nil
}

// SeedAdmin creates an administrator account unless the email is taken.
func (s *UserService) SeedAdmin(email, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.accountByEmail(email) != nil {
		return nil
	}
	a := &account{
		user: models.User{
			ID:       s.store.id(),
			FullName: "Platform Admin",
			Email:    email,
			UserType: models.UserTypeClient,
			Role:     models.RoleAdmin,
		},
		passwordHash: hashedPassword,
		createdAt:    time.Now(),
		extra:        make(map[string]string),
	}
	s.store.accounts[a.user.ID] = a
	s.logger.Info().Str("email", email).Msg("Admin account seeded")
	return nil
}

func (s *UserService) Authenticate(req *models.LoginRequest) (*account, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errBadCredentials
	}

	s.store.mu.RLock()
	var found account
	a := s.store.accountByEmail(req.Email)
	if a != nil {
		found = *a
	}
	s.store.mu.RUnlock()
	if a == nil {
		return nil, errBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword(found.passwordHash, []byte(req.Password)); err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Failed authentication attempt")
		return nil, errBadCredentials
	}
	if found.suspended {
		return nil, errAccountSuspended
	}

	s.logger.Info().Int64("user_id", found.user.ID).Str("email", found.user.Email).Msg("User authenticated successfully")
	return &found, nil
}

func (s *UserService) GetUserByID(userID int64) (*models.User, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	a, ok := s.store.accounts[userID]
	if !ok {
		return nil, errUserNotFound
	}
	user := a.user
	return &user, nil
}

func (s *UserService) ChangePassword(userID int64, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	a, ok := s.store.accounts[userID]
	if !ok {
		return errUserNotFound
	}
	a.passwordHash = hashedPassword
	return nil
}
