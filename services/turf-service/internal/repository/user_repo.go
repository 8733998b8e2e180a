package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts u. A clash on the email unique index is ErrEmailTaken.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return domain.Unavailable("create user", err)
	}
	return nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound, "user by email")
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound, "user by id")
	}
	return &u, nil
}

func notFound(err, missing error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return missing
	}
	return domain.Unavailable(op, err)
}
