package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
	"github.com/ldrlegend/backend-pro/internal/users"
)

// UserSource is the slice of the user store credential checks need.
type UserSource interface {
	GetByEmail(ctx context.Context, email string) (users.User, error)
}

type Service struct {
	source UserSource
	secret []byte
	ttl    time.Duration
}

func NewService(source UserSource, secret string, ttl time.Duration) *Service {
	return &Service{source: source, secret: []byte(secret), ttl: ttl}
}

// Authenticate validates email/password credentials. Unknown account and
// wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (users.User, error) {
	user, err := s.source.GetByEmail(ctx, email)
	if err != nil {
		return users.User{}, fmt.Errorf("%w: invalid credentials", httpx.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return users.User{}, fmt.Errorf("%w: invalid credentials", httpx.ErrUnauthorized)
	}
	return user, nil
}

// IssueToken signs an HS256 access token for the account.
func (s *Service) IssueToken(user users.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string, distinguishing an expired
// token from any other failure.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token has expired", httpx.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: invalid token", httpx.ErrUnauthorized)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", httpx.ErrUnauthorized)
	}
	return claims, nil
}
