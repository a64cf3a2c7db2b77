package repositoryImp

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/auth/repository"
)

type userRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.UserRepository { return &userRepo{db} }

func (r *userRepo) Create(ctx context.Context, u *entities.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return repository.ErrEmailTaken
	}
	return err
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.first(ctx, "user_id = ?", id)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepo) first(ctx context.Context, where string, arg any) (*entities.User, error) {
	var u entities.User
	err := r.db.WithContext(ctx).Where(where, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
