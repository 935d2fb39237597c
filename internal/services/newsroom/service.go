package newsroom

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/core/slug"
	"ginsengcms/internal/domain/news"
	"ginsengcms/internal/domain/user"
	"ginsengcms/internal/store/repositories"
)

// Service manages news articles.
type Service struct {
	repo repositories.NewsRepository
}

func NewService(repo repositories.NewsRepository) *Service {
	return &Service{repo: repo}
}

// CreateInput is the typed payload for article creation.
type CreateInput struct {
	Title      string        `json:"title" validate:"required,min=2,max=200"`
	Slug       string        `json:"slug" validate:"omitempty,max=200"`
	Excerpt    string        `json:"excerpt" validate:"max=500"`
	Body       string        `json:"body" validate:"required"`
	Category   news.Category `json:"category" validate:"omitempty,oneof=news notice press event"`
	CoverImage string        `json:"coverImage" validate:"omitempty,url"`
	Publish    bool          `json:"publish"`
}

// UpdateInput carries optional field updates; nil means unchanged.
type UpdateInput struct {
	Title      *string        `json:"title" validate:"omitempty,min=2,max=200"`
	Slug       *string        `json:"slug" validate:"omitempty,max=200"`
	Excerpt    *string        `json:"excerpt" validate:"omitempty,max=500"`
	Body       *string        `json:"body"`
	Category   *news.Category `json:"category" validate:"omitempty,oneof=news notice press event"`
	CoverImage *string        `json:"coverImage" validate:"omitempty,url"`
	Publish    *bool          `json:"publish"`
}

// Create stores a new article. The author's name is snapshotted onto
// the article so listings render without a user join.
func (s *Service) Create(ctx context.Context, in CreateInput, author *user.User) (*news.Article, error) {
	a, err := news.New(in.Title, in.Slug, in.Excerpt, in.Body, in.Category, author.ID, author.Name)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	a.CoverImage = in.CoverImage
	if in.Publish {
		a.Publish()
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*news.Article, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBySlug fetches a published article for the public site and bumps
// its view counter.
func (s *Service) GetBySlug(ctx context.Context, slg string) (*news.Article, error) {
	a, err := s.repo.FindBySlug(ctx, slg)
	if err != nil {
		return nil, err
	}
	if !a.IsPublished {
		return nil, apperr.ErrNotFound
	}
	if err := s.repo.IncrementViews(ctx, a.ID); err != nil {
		return nil, err
	}
	a.ViewCount++
	return a, nil
}

func (s *Service) List(ctx context.Context, f repositories.NewsFilter, page paging.Request) ([]*news.Article, paging.Result, error) {
	page.Normalize()
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return nil, paging.Result{}, err
	}
	return items, paging.NewResult(page, total), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*news.Article, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		a.Title = strings.TrimSpace(*in.Title)
	}
	if in.Slug != nil && *in.Slug != "" {
		a.Slug = slug.Make(*in.Slug)
	}
	if in.Excerpt != nil {
		a.Excerpt = *in.Excerpt
	}
	if in.Body != nil {
		a.Body = *in.Body
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return nil, apperr.Validation("unknown news category: %q", *in.Category)
		}
		a.Category = *in.Category
	}
	if in.CoverImage != nil {
		a.CoverImage = *in.CoverImage
	}
	if in.Publish != nil {
		if *in.Publish {
			a.Publish()
		} else {
			a.IsPublished = false
		}
	}
	a.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
