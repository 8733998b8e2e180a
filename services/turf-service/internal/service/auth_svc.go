package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

const minPasswordLen = 6

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	ByID(ctx context.Context, id uint) (*domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type AuthSvc struct {
	repo   UserStore
	hasher PasswordHasher
	// decoy is compared against when the email is unknown so both failure
	// paths do the same bcrypt work.
	decoy string
}

func NewAuthSvc(r UserStore, h PasswordHasher) (*AuthSvc, error) {
	decoy, err := h.Hash("decoy-password")
	if err != nil {
		return nil, fmt.Errorf("hash decoy: %w", err)
	}
	return &AuthSvc{repo: r, hasher: h, decoy: decoy}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthSvc) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return s.create(ctx, email, password, false)
}

// CreateAdmin is used by seeding; there is no HTTP route for it.
func (s *AuthSvc) CreateAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	return s.create(ctx, email, password, true)
}

func (s *AuthSvc) create(ctx context.Context, email, password string, admin bool) (*domain.User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email", domain.ErrInvalid)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalid, minPasswordLen)
	}

	_, err := s.repo.ByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{Email: email, PasswordHash: hash, IsAdmin: admin}
	// the unique index still catches a concurrent registration
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": u.ID, "admin": admin}).Info("user registered")
	return u, nil
}

// Login never reveals whether the email exists.
func (s *AuthSvc) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.repo.ByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if u == nil {
		s.hasher.Compare(s.decoy, password)
		return nil, domain.ErrInvalidCredentials
	}
	if !s.hasher.Compare(u.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

func (s *AuthSvc) User(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.ByID(ctx, id)
}
