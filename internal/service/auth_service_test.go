package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-gin-portfolio/internal/core/auth"
	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/internal/repo"
	"go-gin-portfolio/internal/testutil"
)

func newAuthService(t *testing.T, allowRegistration bool) (*AuthService, *auth.JWTer) {
	t.Helper()
	j := &auth.JWTer{Secret: []byte("test"), Issuer: "test", TTL: time.Hour}
	svc := NewAuthService(repo.NewUserRepo(testutil.NewDB(t)), j, zap.NewNop(), AuthOptions{
		BcryptCost:        bcrypt.MinCost,
		AllowRegistration: allowRegistration,
	})
	return svc, j
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, j := newAuthService(t, true)

	sess, err := svc.Register(ctx, RegisterInput{Username: "  alice ", Email: "Alice@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.User.Username)
	assert.Equal(t, "alice@example.com", sess.User.Email)
	assert.Equal(t, domain.RoleUser, sess.User.Role)
	assert.NotEqual(t, "secret1", sess.User.PasswordHash)

	p, err := j.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, p.UserID)

	for _, id := range []string{"alice", "alice@example.com"} {
		login, err := svc.Login(ctx, id, "secret1")
		require.NoError(t, err, id)
		require.NotNil(t, login.User.LastLogin)
	}
}

func TestRegisterRejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t, true)
	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Email: "x@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, domain.ErrDuplicateUsername))

	_, err = svc.Register(ctx, RegisterInput{Username: "bob", Email: "ALICE@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, domain.ErrDuplicateEmail))

	_, err = svc.Register(ctx, RegisterInput{Username: "al", Email: "not-an-email", Password: "123"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Details, "username")
	assert.Contains(t, ve.Details, "email")
	assert.Contains(t, ve.Details, "password")
}

func TestRegisterClosed(t *testing.T) {
	svc, _ := newAuthService(t, false)
	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, domain.ErrRegistrationClosed))
}

func TestAuthenticateFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t, true)
	sess, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)

	for _, pw := range []string{"wrong-password", "secret2", "Secret1", "secret", "secret11", "secre1", " secret1"} {
		_, err = svc.Authenticate(ctx, "alice", pw)
		assert.True(t, errors.Is(err, domain.ErrInvalidCredentials), pw)
	}

	_, err = svc.Authenticate(ctx, "nobody", "secret1")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))

	_, err = svc.Authenticate(ctx, "", "")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	u := sess.User
	u.IsActive = false
	require.NoError(t, svc.users.Update(ctx, u))
	_, err = svc.Authenticate(ctx, "alice", "secret1")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))

	_, err = svc.LoadPrincipal(ctx, auth.Principal{UserID: u.ID, Role: "admin"})
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))
}

func TestLoadPrincipalUsesStoredRole(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t, true)
	sess, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	p, err := svc.LoadPrincipal(ctx, auth.Principal{UserID: sess.User.ID, Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "user", p.Role)

	_, err = svc.LoadPrincipal(ctx, auth.Principal{UserID: "ghost"})
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t, true)
	sess, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	id := sess.User.ID

	assert.True(t, errors.Is(svc.ChangePassword(ctx, id, "wrong", "newpass1"), domain.ErrInvalidCredentials))
	assert.True(t, errors.Is(svc.ChangePassword(ctx, id, "secret1", "abc"), domain.ErrWeakPassword))
	assert.True(t, errors.Is(svc.ChangePassword(ctx, id, "secret1", "secret1"), domain.ErrWeakPassword))

	require.NoError(t, svc.ChangePassword(ctx, id, "secret1", "newpass1"))
	_, err = svc.Login(ctx, "alice", "secret1")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	_, err = svc.Login(ctx, "alice", "newpass1")
	assert.NoError(t, err)
}

func TestEnsureAdminAndResetPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t, false)

	u, created, err := svc.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, u.IsAdmin())

	_, created, err = svc.EnsureAdmin(ctx, "admin", "admin@example.com", "ignored1")
	require.NoError(t, err)
	assert.False(t, created)
	_, err = svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err, "existing password is kept")

	_, err = svc.ResetPassword(ctx, "admin@example.com", "reset123")
	require.NoError(t, err)
	_, err = svc.Login(ctx, "admin", "reset123")
	assert.NoError(t, err)

	_, err = svc.ResetPassword(ctx, "nobody", "reset123")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEnsureAdminPromotesExistingUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t, true)
	sess, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	u, created, err := svc.EnsureAdmin(ctx, "alice", "a@example.com", "whatever1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, sess.User.ID, u.ID)

	me, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, me.Role)
}
