package service

import (
	"context"
	"testing"

	dom "github.com/erprakash26/karyamate/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo keeps users in a map keyed by email, mimicking the unique
// constraint with a pgconn 23505 error.
type fakeUserRepo struct {
	users  map[string]dom.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]dom.User{}, nextID: 1}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	u, ok := r.users[email]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, email, passwordHash string) (dom.User, error) {
	if _, ok := r.users[email]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505"}
	}
	u := dom.User{ID: r.nextID, Email: email, PasswordHash: passwordHash}
	r.nextID++
	r.users[email] = u
	return u, nil
}

func TestUserService_RegisterThenLogin(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, "user@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", u.Email)
	assert.NotEqual(t, "hunter2", u.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2")))

	got, err := svc.ValidateCredentials(ctx, "user@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestUserService_RegisterTrimsEmail(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newFakeUserRepo())

	u, err := svc.Register(context.Background(), "  user@example.com  ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", u.Email)
}

func TestUserService_RegisterMissingFields(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	for _, tt := range []struct{ email, password string }{
		{"", "pw"},
		{"user@example.com", ""},
		{"   ", "pw"},
		{"", ""},
	} {
		_, err := svc.Register(ctx, tt.email, tt.password)
		assert.ErrorIs(t, err, ErrMissingCredentials, "email=%q password=%q", tt.email, tt.password)
	}
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "user@example.com", "pw1")
	require.NoError(t, err)

	// Conflict regardless of password.
	_, err = svc.Register(ctx, "user@example.com", "completely-different")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_LoginFailuresAreUniform(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "user@example.com", "right")
	require.NoError(t, err)

	// Wrong password and unknown email must be the same error, so the caller
	// cannot learn whether the email exists.
	_, errWrongPw := svc.ValidateCredentials(ctx, "user@example.com", "wrong")
	_, errNoUser := svc.ValidateCredentials(ctx, "ghost@example.com", "right")
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
}
