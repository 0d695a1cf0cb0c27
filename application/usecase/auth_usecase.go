package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lumigen/lumigen/application/port/inbound"
	"github.com/lumigen/lumigen/application/port/outbound"
	"github.com/lumigen/lumigen/domain/entity"
)

type AuthUseCase struct {
	userRepository  outbound.UserRepository
	tokenService    outbound.TokenService
	passwordService outbound.PasswordService
	logger          outbound.Logger
	accessTokenTTL  time.Duration
}

func NewAuthUseCase(
	userRepo outbound.UserRepository,
	tokenService outbound.TokenService,
	passwordService outbound.PasswordService,
	log outbound.Logger,
	accessTokenTTL time.Duration,
) inbound.AuthUseCase {
	return &AuthUseCase{
		userRepository:  userRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
		logger:          log,
		accessTokenTTL:  accessTokenTTL,
	}
}

func (uc *AuthUseCase) Signup(ctx context.Context, req inbound.SignupRequest) (*inbound.SignupResponse, error) {
	existing, err := uc.userRepository.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, outbound.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, outbound.ErrUserAlreadyExists
	}

	hashed, err := uc.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(uuid.NewString(), req.Email, hashed)
	if err := uc.userRepository.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.Info(ctx, "user registered", map[string]interface{}{
		"user_id": user.ID,
	})
	return &inbound.SignupResponse{UserID: user.ID}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	user, err := uc.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return nil, inbound.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	valid, err := uc.passwordService.VerifyPassword(req.Password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("password verification failed: %w", err)
	}
	if !valid {
		uc.logger.Warn(ctx, "login failed, invalid password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, inbound.ErrInvalidCredentials
	}

	token, err := uc.tokenService.GenerateAccessToken(outbound.TokenClaims{UserID: user.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &inbound.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(uc.accessTokenTTL.Seconds()),
	}, nil
}
