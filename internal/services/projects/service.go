package projects

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/core/slug"
	"ginsengcms/internal/domain/project"
	"ginsengcms/internal/store/repositories"
)

// Service manages reference projects.
type Service struct {
	repo repositories.ProjectRepository
}

func NewService(repo repositories.ProjectRepository) *Service {
	return &Service{repo: repo}
}

// CreateInput is the typed payload for project creation. Slug is
// derived from the title when empty.
type CreateInput struct {
	Title      string         `json:"title" validate:"required,min=2,max=200"`
	Slug       string         `json:"slug" validate:"omitempty,max=200"`
	Summary    string         `json:"summary" validate:"max=500"`
	Body       string         `json:"body"`
	Category   string         `json:"category" validate:"max=100"`
	Status     project.Status `json:"status" validate:"omitempty,oneof=planned ongoing completed"`
	CoverImage string         `json:"coverImage" validate:"omitempty,url"`
	SortOrder  int            `json:"sortOrder"`
}

// UpdateInput carries optional field updates; nil means unchanged.
type UpdateInput struct {
	Title      *string         `json:"title" validate:"omitempty,min=2,max=200"`
	Slug       *string         `json:"slug" validate:"omitempty,max=200"`
	Summary    *string         `json:"summary" validate:"omitempty,max=500"`
	Body       *string         `json:"body"`
	Category   *string         `json:"category" validate:"omitempty,max=100"`
	Status     *project.Status `json:"status" validate:"omitempty,oneof=planned ongoing completed"`
	CoverImage *string         `json:"coverImage" validate:"omitempty,url"`
	SortOrder  *int            `json:"sortOrder"`
	IsActive   *bool           `json:"isActive"`
}

func (s *Service) Create(ctx context.Context, in CreateInput, actor uuid.UUID) (*project.Project, error) {
	p, err := project.New(in.Title, in.Slug, in.Summary, in.Body, in.Category, in.Status, actor)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	p.CoverImage = in.CoverImage
	p.SortOrder = in.SortOrder
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slg string) (*project.Project, error) {
	return s.repo.FindBySlug(ctx, slg)
}

func (s *Service) List(ctx context.Context, f repositories.ProjectFilter, page paging.Request) ([]*project.Project, paging.Result, error) {
	page.Normalize()
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return nil, paging.Result{}, err
	}
	return items, paging.NewResult(page, total), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput, actor uuid.UUID) (*project.Project, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Slug != nil && *in.Slug != "" {
		p.Slug = slug.Make(*in.Slug)
	}
	if in.Summary != nil {
		p.Summary = *in.Summary
	}
	if in.Body != nil {
		p.Body = *in.Body
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperr.Validation("unknown project status: %q", *in.Status)
		}
		p.Status = *in.Status
	}
	if in.CoverImage != nil {
		p.CoverImage = *in.CoverImage
	}
	if in.SortOrder != nil {
		p.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.UpdatedBy = actor
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
