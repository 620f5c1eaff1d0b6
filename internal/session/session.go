package session

import (
	"context"
	"encoding/json"
	"fmt"

	"devhub/internal/models"
)

// Keys the token and cached user record are persisted under.
const (
	TokenKey = "devhub_token"
	UserKey  = "devhub_user"
)

// Session is the token plus cached user identity of one client. It holds no
// state of its own; everything lives in the Storage so it survives restarts.
type Session struct {
	storage Storage
}

func New(storage Storage) *Session {
	return &Session{storage: storage}
}

// Init stores the credentials returned by a successful login or registration.
// The user is written before the token, so a failed Init never leaves a
// token without the user it belongs to.
func (s *Session) Init(ctx context.Context, token string, user *models.User) error {
	var err error
	if user == nil {
		err = s.RemoveCurrentUser(ctx)
	} else {
		err = s.SetCurrentUser(ctx, user)
	}
	if err != nil {
		s.RemoveToken(ctx)
		return err
	}

	if err := s.SetToken(ctx, token); err != nil {
		s.RemoveCurrentUser(ctx)
		return err
	}
	return nil
}

// Clear forgets both the token and the cached user.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.RemoveToken(ctx); err != nil {
		return err
	}
	return s.RemoveCurrentUser(ctx)
}

func (s *Session) Token(ctx context.Context) (string, error) {
	if s == nil || s.storage == nil {
		return "", nil
	}
	token, _, err := s.storage.GetItem(ctx, TokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}

func (s *Session) SetToken(ctx context.Context, token string) error {
	if s.storage == nil {
		return ErrNoStorage
	}
	if err := s.storage.SetItem(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (s *Session) RemoveToken(ctx context.Context) error {
	if s.storage == nil {
		return ErrNoStorage
	}
	if err := s.storage.RemoveItem(ctx, TokenKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// CurrentUser returns the cached user, or nil when none is stored.
func (s *Session) CurrentUser(ctx context.Context) (*models.User, error) {
	if s == nil || s.storage == nil {
		return nil, nil
	}
	raw, ok, err := s.storage.GetItem(ctx, UserKey)
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("parse cached user: %w", err)
	}
	return &user, nil
}

func (s *Session) SetCurrentUser(ctx context.Context, user *models.User) error {
	if s.storage == nil {
		return ErrNoStorage
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.storage.SetItem(ctx, UserKey, string(data)); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

func (s *Session) RemoveCurrentUser(ctx context.Context) error {
	if s.storage == nil {
		return ErrNoStorage
	}
	if err := s.storage.RemoveItem(ctx, UserKey); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}

// IsAuthenticated only checks that a token is present. The token is never
// validated here; the backend decides whether it is still good.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	token, err := s.Token(ctx)
	return err == nil && token != ""
}

func (s *Session) UserType(ctx context.Context) string {
	user, err := s.CurrentUser(ctx)
	if err != nil || user == nil {
		return ""
	}
	return user.UserType
}
