package service

import (
	"context"
	"testing"
	"time"

	"parking_billing/internal/domain"
	"parking_billing/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	store := memory.NewStore()
	return NewAuthService(store.Users(), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestAuthService(t)

	user, err := s.Register(context.Background(), domain.RegisterUserDTO{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "client", user.Role)
	assert.Empty(t, user.Password)

	resp, err := s.Login(context.Background(), domain.LoginUserDTO{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.UserID)
	assert.NotEmpty(t, resp.Token)

	_, claims, err := s.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims["sub"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "client", claims["role"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := newTestAuthService(t)

	_, err := s.Register(context.Background(), domain.RegisterUserDTO{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	_, err = s.Register(context.Background(), domain.RegisterUserDTO{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestAuthService(t)

	_, err := s.Register(context.Background(), domain.RegisterUserDTO{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	_, err = s.Login(context.Background(), domain.LoginUserDTO{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(context.Background(), domain.LoginUserDTO{Username: "nobody", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s := newTestAuthService(t)

	_, _, err := s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	issuer := newTestAuthService(t)
	_, err := issuer.Register(context.Background(), domain.RegisterUserDTO{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	resp, err := issuer.Login(context.Background(), domain.LoginUserDTO{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	store := memory.NewStore()
	verifier := NewAuthService(store.Users(), "different-secret", time.Hour)
	_, _, err = verifier.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
