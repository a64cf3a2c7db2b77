package serviceImp

import (
	"context"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/auth/repository"
	"kisan/pkg/auth/service"
	"kisan/pkg/auth/token"
)

const (
	minPasswordLen = 6
	// bcrypt ignores everything past 72 bytes
	maxPasswordLen = 72
)

var errBadCredentials = apperr.Unauthenticated("invalid email or password")

type authSvc struct {
	users    repository.UserRepository
	tokens   *token.Issuer
	hashCost int
	log      *zap.Logger
}

func New(users repository.UserRepository, tokens *token.Issuer, hashCost int, log *zap.Logger) service.AuthService {
	return &authSvc{users: users, tokens: tokens, hashCost: hashCost, log: log}
}

func (s *authSvc) Signup(ctx context.Context, in service.SignupInput) (*service.Session, error) {
	in = normalize(in)
	if err := validateSignup(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entities.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Location:     in.Location,
		FarmSize:     in.FarmSize,
		Language:     in.Language,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user signed up", zap.String("uid", u.UserID))
	return s.session(u)
}

func (s *authSvc) Login(ctx context.Context, email, password string) (*service.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}
	u, err := s.users.FindByEmail(ctx, email)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, errBadCredentials
	}
	return s.session(u)
}

func (s *authSvc) Profile(ctx context.Context, userID string) (*entities.User, error) {
	if userID == "" {
		return nil, apperr.Unauthenticated("sign in required")
	}
	return s.users.FindByID(ctx, userID)
}

func (s *authSvc) Authenticate(tok string) (string, error) { return s.tokens.Verify(tok) }

func (s *authSvc) session(u *entities.User) (*service.Session, error) {
	tok, exp, err := s.tokens.Issue(u.UserID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &service.Session{Token: tok, ExpiresAt: exp, User: u}, nil
}

func normalize(in service.SignupInput) service.SignupInput {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Location = strings.TrimSpace(in.Location)
	in.FarmSize = strings.ToLower(strings.TrimSpace(in.FarmSize))
	in.Language = strings.ToLower(strings.TrimSpace(in.Language))
	if in.Language == "" {
		in.Language = entities.DefaultLanguage
	}
	return in
}

// validateSignup runs every check that needs no store access.
func validateSignup(in service.SignupInput) error {
	if in.Password != in.ConfirmPassword {
		return apperr.Validation("passwords don't match")
	}
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return apperr.Validation("please fill in required fields")
	}
	// bare addresses only; "Name <addr>" would be stored verbatim and never match a login
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return apperr.Validation("invalid email address")
	}
	if len(in.Password) < minPasswordLen {
		return apperr.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if len(in.Password) > maxPasswordLen {
		return apperr.Validation(fmt.Sprintf("password must be at most %d bytes", maxPasswordLen))
	}
	if in.FarmSize != "" && !slices.Contains(entities.FarmSizes, in.FarmSize) {
		return apperr.Validation("farm size must be small, medium or large")
	}
	if !entities.IsLanguage(in.Language) {
		return apperr.Validation("unsupported language")
	}
	return nil
}
