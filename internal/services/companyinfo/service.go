package companyinfo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ginsengcms/internal/domain/company"
	"ginsengcms/internal/store/repositories"
)

// Service reads and updates the single company profile row.
type Service struct {
	repo repositories.CompanyRepository
}

func NewService(repo repositories.CompanyRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*company.Info, error) {
	return s.repo.Get(ctx)
}

// UpdateInput carries only the fields the caller wants to change.
type UpdateInput struct {
	Name        *string           `json:"name" validate:"omitempty,min=1,max=200"`
	Tagline     *string           `json:"tagline" validate:"omitempty,max=300"`
	About       *string           `json:"about"`
	Address     *string           `json:"address" validate:"omitempty,max=500"`
	Phone       *string           `json:"phone" validate:"omitempty,max=30"`
	Email       *string           `json:"email" validate:"omitempty,email"`
	FoundedYear *int              `json:"foundedYear" validate:"omitempty,min=1800,max=2100"`
	SocialLinks map[string]string `json:"socialLinks"`
}

func (s *Service) Update(ctx context.Context, in UpdateInput, actor uuid.UUID) (*company.Info, error) {
	info, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		info.Name = *in.Name
	}
	if in.Tagline != nil {
		info.Tagline = *in.Tagline
	}
	if in.About != nil {
		info.About = *in.About
	}
	if in.Address != nil {
		info.Address = *in.Address
	}
	if in.Phone != nil {
		info.Phone = *in.Phone
	}
	if in.Email != nil {
		info.Email = *in.Email
	}
	if in.FoundedYear != nil {
		info.FoundedYear = *in.FoundedYear
	}
	if in.SocialLinks != nil {
		info.SocialLinks = in.SocialLinks
	}
	info.UpdatedBy = actor
	info.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}
