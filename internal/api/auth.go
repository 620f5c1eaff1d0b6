package api

import (
	"context"
	"net/http"

	"devhub/internal/models"
)

type AuthService struct {
	c *Client
}

// Register creates an account. When the backend answers with a token the
// session is initialised with it.
func (s *AuthService) Register(ctx context.Context, payload map[string]string) (*models.AuthResponse, error) {
	return s.authenticate(ctx, "/auth/register", payload)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return s.authenticate(ctx, "/auth/login", models.LoginRequest{Email: email, Password: password})
}

func (s *AuthService) authenticate(ctx context.Context, path string, body any) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := s.c.Do(ctx, path, RequestOptions{Method: http.MethodPost, Body: body}, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := s.c.session.Init(ctx, resp.Token, resp.User); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

// Me fetches the signed in user from the backend.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	return one[models.User](ctx, s.c, "/auth/me", RequestOptions{}, "user")
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.c.session.Clear(ctx)
}

func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	return s.c.session.IsAuthenticated(ctx)
}

func (s *AuthService) UserType(ctx context.Context) string {
	return s.c.session.UserType(ctx)
}

func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.c.session.CurrentUser(ctx)
}
