package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumigen/lumigen/application/port/inbound"
	"github.com/lumigen/lumigen/application/port/outbound"
)

func newAuthFixture() (*mockUserRepository, inbound.AuthUseCase) {
	userRepo := newMockUserRepository()
	uc := NewAuthUseCase(userRepo, stubTokenService{}, stubPasswordService{}, testLogger(), time.Hour)
	return userRepo, uc
}

func TestAuthUseCase_SignupAndLogin(t *testing.T) {
	_, uc := newAuthFixture()

	res, err := uc.Signup(context.Background(), inbound.SignupRequest{Email: "fox@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.UserID)

	login, err := uc.Login(context.Background(), inbound.LoginRequest{Email: "fox@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "token-"+res.UserID, login.AccessToken)
	assert.Equal(t, 3600, login.ExpiresIn)
}

func TestAuthUseCase_SignupDuplicateEmail(t *testing.T) {
	_, uc := newAuthFixture()

	_, err := uc.Signup(context.Background(), inbound.SignupRequest{Email: "fox@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = uc.Signup(context.Background(), inbound.SignupRequest{Email: "fox@example.com", Password: "other"})
	assert.ErrorIs(t, err, outbound.ErrUserAlreadyExists)
}

func TestAuthUseCase_LoginInvalidCredentials(t *testing.T) {
	_, uc := newAuthFixture()

	_, err := uc.Signup(context.Background(), inbound.SignupRequest{Email: "fox@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), inbound.LoginRequest{Email: "fox@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, inbound.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), inbound.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, inbound.ErrInvalidCredentials)
}
