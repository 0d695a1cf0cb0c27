package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lumigen/lumigen/application/port/outbound"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type JWTService struct {
	hmacSecret     []byte
	accessTokenTTL time.Duration
}

func NewJWTService(secret string, accessTokenTTL time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	return &JWTService{
		hmacSecret:     []byte(secret),
		accessTokenTTL: accessTokenTTL,
	}, nil
}

func (s *JWTService) GenerateAccessToken(claims outbound.TokenClaims) (string, error) {
	tokenClaims := jwt.MapClaims{
		"user_id": claims.UserID,
		"exp":     time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":     time.Now().Unix(),
		"type":    "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	tokenString, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*outbound.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.hmacSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "access" {
		return nil, ErrInvalidToken
	}

	return &outbound.TokenClaims{UserID: userID}, nil
}
