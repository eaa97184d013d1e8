// Package auth handles login against the school API and persistence of
// the resulting bearer token.
package auth

import (
	"context"
	"strings"

	"github.com/simp-lee/schoolkit/internal/client"
	"github.com/simp-lee/schoolkit/internal/pkg"
	"github.com/simp-lee/schoolkit/internal/session"
)

// Credentials is the login input.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// TokenResponse is the login response payload.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Service performs login/logout and keeps the session store current.
type Service struct {
	c        *client.Client
	sessions *session.Store
}

// NewService creates an auth Service.
// Panics if c or sessions is nil.
func NewService(c *client.Client, sessions *session.Store) *Service {
	if c == nil {
		panic("auth.NewService: client must not be nil")
	}
	if sessions == nil {
		panic("auth.NewService: session store must not be nil")
	}
	return &Service{c: c, sessions: sessions}
}

// Login authenticates against the API and persists the returned token.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	creds := Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := pkg.Validate(creds); err != nil {
		return nil, err
	}

	var resp TokenResponse
	if err := s.c.PostJSON(ctx, "/auth/login", creds, &resp, "Login failed"); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, creds.Email, resp.Token); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout drops the persisted session. The server keeps no session state;
// discarding the token is sufficient.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}
