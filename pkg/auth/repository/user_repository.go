package repository

import (
	"context"

	"kisan/entities"
	"kisan/pkg/apperr"
)

var ErrEmailTaken = apperr.Conflict("email already registered")

type UserRepository interface {
	Create(ctx context.Context, u *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
