// Package session persists the bearer token obtained at login in the
// local state database, and serves it to the HTTP client on every
// request.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/simp-lee/schoolkit/internal/domain"
	"github.com/simp-lee/schoolkit/internal/pkg"
)

// Session is the single persisted login session. At most one row exists.
type Session struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"size:255;not null"`
	Token     string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store reads and writes the persisted session.
// It implements client.TokenSource.
type Store struct {
	db *gorm.DB
}

// NewStore creates a session store and migrates its schema.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("session store: db is nil")
	}
	if err := db.AutoMigrate(&Session{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Save replaces the persisted session with a fresh one.
func (s *Store) Save(ctx context.Context, email, token string) error {
	return pkg.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Session{}).Error; err != nil {
			return err
		}
		return tx.Create(&Session{Email: email, Token: token}).Error
	})
}

// Clear removes the persisted session (logout).
func (s *Store) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&Session{}).Error
}

// Current returns the persisted session, or a not-found error when no
// login has been stored.
func (s *Store) Current(ctx context.Context) (*Session, error) {
	var session Session
	err := s.db.WithContext(ctx).Order("id desc").First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewAppError(domain.CodeNotFound, "not logged in", nil)
		}
		return nil, err
	}
	return &session, nil
}

// Token returns the stored bearer token, or "" when no session exists or
// the token has expired. Absence of a token is not an error here; the
// request simply goes out unauthenticated and the server decides.
func (s *Store) Token(ctx context.Context) (string, error) {
	session, err := s.Current(ctx)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	if tokenExpired(session.Token) {
		return "", nil
	}
	return session.Token, nil
}

// tokenExpired inspects the JWT exp claim without verifying the
// signature. The client never holds the signing secret; verification is
// the server's job. Malformed tokens are treated as expired.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	return exp != nil && exp.Before(time.Now())
}
