package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/user"
	"ginsengcms/internal/store/repositories"
)

// PasswordHasher lets the user service hash passwords without owning
// the policy; the auth service provides the implementation.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Service manages back-office accounts.
type Service struct {
	repo   repositories.UserRepository
	hasher PasswordHasher
}

func NewService(repo repositories.UserRepository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// CreateInput is the typed payload for account creation.
type CreateInput struct {
	Email    string    `json:"email" validate:"required,email"`
	Name     string    `json:"name" validate:"required,min=2,max=100"`
	Password string    `json:"password" validate:"required,min=8,max=72"`
	Role     user.Role `json:"role" validate:"required,oneof=admin editor viewer"`
}

// UpdateInput carries optional field updates; nil means unchanged.
type UpdateInput struct {
	Name   *string      `json:"name" validate:"omitempty,min=2,max=100"`
	Role   *user.Role   `json:"role" validate:"omitempty,oneof=admin editor viewer"`
	Status *user.Status `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*user.User, error) {
	u, err := user.New(in.Email, in.Name, in.Role)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	hash, err := s.hasher.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u.HashedPassword = hash
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f repositories.UserFilter, page paging.Request) ([]*user.User, paging.Result, error) {
	page.Normalize()
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return nil, paging.Result{}, err
	}
	return items, paging.NewResult(page, total), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, apperr.Validation("unknown role: %q", *in.Role)
		}
		u.Role = *in.Role
	}
	if in.Status != nil {
		u.Status = *in.Status
	}
	u.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Stats returns account counts grouped by role.
func (s *Service) Stats(ctx context.Context) (map[user.Role]int, error) {
	return s.repo.CountByRole(ctx)
}
