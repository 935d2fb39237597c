package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ginsengcms/internal/domain/user"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const kindRefresh = "refresh"

// Claims is the payload carried by every issued token. Kind is empty
// for access tokens and "refresh" for refresh tokens; the two are never
// interchangeable.
type Claims struct {
	UserID uuid.UUID `json:"uid"`
	Role   user.Role `json:"role"`
	Kind   string    `json:"knd,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-SHA256 tokens.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
	refreshTTL time.Duration
	timeFunc   func() time.Time
}

// NewTokenService builds a token service. The secret length is checked
// at config load time.
func NewTokenService(secret string, ttl, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		signingKey: []byte(secret),
		ttl:        ttl,
		refreshTTL: refreshTTL,
		timeFunc:   time.Now,
	}
}

// Generate signs a short-lived access token for the given user.
func (s *TokenService) Generate(u *user.User) (string, error) {
	return s.sign(u, "", s.ttl)
}

// GenerateRefresh signs a long-lived refresh token for the given user.
func (s *TokenService) GenerateRefresh(u *user.User) (string, error) {
	return s.sign(u, kindRefresh, s.refreshTTL)
}

func (s *TokenService) sign(u *user.User, kind string, ttl time.Duration) (string, error) {
	now := s.timeFunc()
	claims := Claims{
		UserID: u.ID,
		Role:   u.Role,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies an access token and returns its claims.
// Refresh tokens are rejected here; they are only good for Refresh.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Kind != "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateRefresh parses and verifies a refresh token.
func (s *TokenService) ValidateRefresh(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Kind != kindRefresh {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return s.timeFunc() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
