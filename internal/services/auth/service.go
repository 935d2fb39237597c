package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/domain/user"
	"ginsengcms/internal/store/repositories"
)

// Service handles login and session resolution.
type Service struct {
	users      repositories.UserRepository
	tokens     *TokenService
	bcryptCost int
}

func NewService(users repositories.UserRepository, tokens *TokenService, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// TokenPair is what a successful login or refresh hands the client.
type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func (s *Service) pairFor(u *user.User) (TokenPair, error) {
	access, err := s.tokens.Generate(u)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tokens.GenerateRefresh(u)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Login verifies credentials and issues a token pair. Wrong email, wrong
// password and inactive account all collapse to the same error so the
// response stays opaque.
func (s *Service) Login(ctx context.Context, email, password string) (TokenPair, *user.User, error) {
	u, err := s.users.FindByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return TokenPair{}, nil, apperr.ErrInvalidCredentials
		}
		return TokenPair{}, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return TokenPair{}, nil, apperr.ErrInvalidCredentials
	}
	if !u.IsActive() {
		return TokenPair{}, nil, apperr.ErrInactiveAccount
	}

	pair, err := s.pairFor(u)
	if err != nil {
		return TokenPair{}, nil, err
	}
	if err := s.users.TouchLogin(ctx, u.ID); err != nil {
		return TokenPair{}, nil, err
	}
	return pair, u, nil
}

// Refresh exchanges a valid refresh token for a fresh pair, re-checking
// that the account still exists and is active.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, *user.User, error) {
	claims, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, nil, err
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, nil, err
	}
	if !u.IsActive() {
		return TokenPair{}, nil, apperr.ErrInactiveAccount
	}
	pair, err := s.pairFor(u)
	if err != nil {
		return TokenPair{}, nil, err
	}
	return pair, u, nil
}

// ResolveToken validates a token and loads its subject, rejecting
// accounts that are no longer active.
func (s *Service) ResolveToken(ctx context.Context, tokenString string) (*user.User, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive() {
		return nil, apperr.ErrInactiveAccount
	}
	return u, nil
}

// HashPassword hashes a plaintext password for storage.
func (s *Service) HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", apperr.Validation("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ChangePassword re-hashes and stores a new password for the user.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(current)); err != nil {
		return apperr.ErrInvalidCredentials
	}
	hash, err := s.HashPassword(next)
	if err != nil {
		return err
	}
	u.HashedPassword = hash
	return s.users.Save(ctx, u)
}
