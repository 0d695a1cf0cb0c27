package inbound

import (
	"context"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type SignupRequest struct {
	Email    string
	Password string
}

type SignupResponse struct {
	UserID string
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResponse struct {
	AccessToken string
	ExpiresIn   int
}

type AuthUseCase interface {
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}
