package auth

type Claims struct {
	UserID int64
	Email  string
	Name   string
}

// TokenService resolves a bearer token to the caller's identity. Tokens are
// minted by the identity service; this one only verifies them.
type TokenService interface {
	ParseToken(token string) (*Claims, error)
}
