package serviceImp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"kisan/database"
	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/auth/repository"
	"kisan/pkg/auth/repositoryImp"
	"kisan/pkg/auth/service"
	"kisan/pkg/auth/token"
)

// countingRepo fails the test's expectations if validation lets a bad
// signup reach the store.
type countingRepo struct {
	repository.UserRepository
	calls int
}

func (r *countingRepo) Create(ctx context.Context, u *entities.User) error {
	r.calls++
	return r.UserRepository.Create(ctx, u)
}

func (r *countingRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.calls++
	return r.UserRepository.FindByEmail(ctx, email)
}

func newSvc(t *testing.T) (service.AuthService, *countingRepo) {
	t.Helper()
	db, err := database.OpenMigrated(":memory:")
	require.NoError(t, err)
	repo := &countingRepo{UserRepository: repositoryImp.New(db)}
	return New(repo, token.NewIssuer("test-secret", time.Hour), bcrypt.MinCost, zap.NewNop()), repo
}

func validInput() service.SignupInput {
	return service.SignupInput{
		Email:           "  Ravi@Example.in ",
		Password:        "ragi-2024",
		ConfirmPassword: "ragi-2024",
		Name:            "Ravi Kumar",
		Phone:           "+91 9876543210",
		Location:        "Mandya, Karnataka",
		FarmSize:        "Small",
	}
}

func TestSignup_RejectsBeforeStore(t *testing.T) {
	svc, repo := newSvc(t)
	ctx := context.Background()

	mismatch := validInput()
	mismatch.ConfirmPassword = "something-else"
	_, err := svc.Signup(ctx, mismatch)
	require.Error(t, err)
	assert.Equal(t, "passwords don't match", apperr.Message(err))

	for _, blank := range []func(*service.SignupInput){
		func(in *service.SignupInput) { in.Email = "" },
		func(in *service.SignupInput) { in.Name = "   " },
		func(in *service.SignupInput) { in.Password, in.ConfirmPassword = "", "" },
	} {
		in := validInput()
		blank(&in)
		_, err := svc.Signup(ctx, in)
		require.Error(t, err)
		assert.Equal(t, "please fill in required fields", apperr.Message(err))
	}

	for _, email := range []string{"not-an-email", "Ravi <ravi@example.com>"} {
		in := validInput()
		in.Email = email
		_, err := svc.Signup(ctx, in)
		require.Error(t, err)
		assert.Equal(t, "invalid email address", apperr.Message(err), email)
	}

	bad := validInput()
	bad.FarmSize = "huge"
	_, err = svc.Signup(ctx, bad)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	bad = validInput()
	bad.Language = "latin"
	_, err = svc.Signup(ctx, bad)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	assert.Zero(t, repo.calls)
}

func TestSignup_CreatesProfileAndSession(t *testing.T) {
	svc, _ := newSvc(t)
	ctx := context.Background()

	sess, err := svc.Signup(ctx, validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "ravi@example.in", sess.User.Email)
	assert.Equal(t, "small", sess.User.FarmSize)
	assert.Equal(t, "kannada", sess.User.Language)
	assert.NotEqual(t, "ragi-2024", sess.User.PasswordHash)

	uid, err := svc.Authenticate(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.UserID, uid)

	_, err = svc.Signup(ctx, validInput())
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestLogin(t *testing.T) {
	svc, _ := newSvc(t)
	ctx := context.Background()
	created, err := svc.Signup(ctx, validInput())
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "RAVI@example.in", "ragi-2024")
	require.NoError(t, err)
	assert.Equal(t, created.User.UserID, sess.User.UserID)

	_, err = svc.Login(ctx, "ravi@example.in", "wrong-pass")
	assert.Equal(t, "invalid email or password", apperr.Message(err))

	_, err = svc.Login(ctx, "nobody@example.in", "ragi-2024")
	assert.Equal(t, "invalid email or password", apperr.Message(err))

	_, err = svc.Login(ctx, "", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestProfile(t *testing.T) {
	svc, _ := newSvc(t)
	ctx := context.Background()
	created, err := svc.Signup(ctx, validInput())
	require.NoError(t, err)

	u, err := svc.Profile(ctx, created.User.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Mandya, Karnataka", u.Location)

	_, err = svc.Profile(ctx, "")
	assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))
}
