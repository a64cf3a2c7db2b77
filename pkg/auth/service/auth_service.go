package service

import (
	"context"
	"time"

	"kisan/entities"
)

type SignupInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	FarmSize        string `json:"farm_size"`
	Language        string `json:"language"`
}

type Session struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *entities.User `json:"user"`
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Profile(ctx context.Context, userID string) (*entities.User, error)
	// Authenticate resolves a session token to its user id.
	Authenticate(token string) (string, error)
}
