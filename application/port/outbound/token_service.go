package outbound

type TokenClaims struct {
	UserID string
}

type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}
