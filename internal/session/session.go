package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joshwmy/record-management/internal/authz"
)

// Session is a bounded-lifetime proof of a successful login. The token is a
// signed JWT that is also persisted, so logout can revoke it before expiry.
type Session struct {
	ID        int64      `json:"-"`
	Username  string     `json:"username"`
	Role      authz.Role `json:"role"`
	Token     string     `json:"token"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

var (
	ErrSessionExpired = errors.New("session expired")
	ErrSessionInvalid = errors.New("session invalid")
)

type Repository interface {
	Create(s *Session) error
	// GetByToken returns ErrSessionInvalid when the token is unknown.
	GetByToken(token string) (*Session, error)
	// DeleteByToken is a no-op when the token is unknown.
	DeleteByToken(token string) error
	DeleteExpired(now time.Time) (int64, error)
}

type TokenGenerator interface {
	Generate(username string, role authz.Role, issuedAt, expiresAt time.Time) (string, error)
	Parse(token string) (*Claims, error)
}

// Claims are the JWT claims embedded in a session token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	Secret []byte
}

func NewJWTTokenGenerator(secret string) *JWTTokenGenerator {
	return &JWTTokenGenerator{Secret: []byte(secret)}
}

func (g *JWTTokenGenerator) Generate(username string, role authz.Role, issuedAt, expiresAt time.Time) (string, error) {
	claims := &Claims{
		Username: username,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.Secret)
}

func (g *JWTTokenGenerator) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrSessionInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrSessionInvalid
}
