package careers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/core/slug"
	"ginsengcms/internal/domain/career"
	"ginsengcms/internal/store/repositories"
)

// Service manages job positions and applications.
type Service struct {
	positions    repositories.PositionRepository
	applications repositories.ApplicationRepository
}

func NewService(positions repositories.PositionRepository, applications repositories.ApplicationRepository) *Service {
	return &Service{positions: positions, applications: applications}
}

// PositionInput is the typed payload for creating or replacing a
// position's editable fields.
type PositionInput struct {
	Title          string     `json:"title" validate:"required,min=2,max=200"`
	Slug           string     `json:"slug" validate:"omitempty,max=200"`
	Department     string     `json:"department" validate:"required,max=100"`
	Location       string     `json:"location" validate:"max=100"`
	EmploymentType string     `json:"employmentType" validate:"omitempty,oneof=full-time part-time contract internship"`
	Description    string     `json:"description"`
	Requirements   string     `json:"requirements"`
	SortOrder      int        `json:"sortOrder"`
	ClosesAt       *time.Time `json:"closesAt"`
}

func (s *Service) CreatePosition(ctx context.Context, in PositionInput, actor uuid.UUID) (*career.Position, error) {
	p, err := career.NewPosition(in.Title, in.Slug, in.Department, in.Location, in.EmploymentType, in.Description, actor)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	p.Requirements = in.Requirements
	p.SortOrder = in.SortOrder
	p.ClosesAt = in.ClosesAt
	if err := s.positions.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetPosition(ctx context.Context, id uuid.UUID) (*career.Position, error) {
	return s.positions.FindByID(ctx, id)
}

func (s *Service) GetPositionBySlug(ctx context.Context, slg string) (*career.Position, error) {
	return s.positions.FindBySlug(ctx, slg)
}

func (s *Service) ListPositions(ctx context.Context, f repositories.PositionFilter, page paging.Request) ([]*career.Position, paging.Result, error) {
	page.Normalize()
	items, total, err := s.positions.List(ctx, f, page)
	if err != nil {
		return nil, paging.Result{}, err
	}
	return items, paging.NewResult(page, total), nil
}

func (s *Service) UpdatePosition(ctx context.Context, id uuid.UUID, in PositionInput, actor uuid.UUID) (*career.Position, error) {
	p, err := s.positions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Title = strings.TrimSpace(in.Title)
	if in.Slug != "" {
		p.Slug = slug.Make(in.Slug)
	}
	p.Department = in.Department
	p.Location = in.Location
	p.EmploymentType = in.EmploymentType
	p.Description = in.Description
	p.Requirements = in.Requirements
	p.SortOrder = in.SortOrder
	p.ClosesAt = in.ClosesAt
	p.UpdatedBy = actor
	p.UpdatedAt = time.Now().UTC()
	if err := s.positions.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ClosePosition hides a listing from the public site without touching
// its applications.
func (s *Service) ClosePosition(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	p, err := s.positions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p.IsActive = false
	p.UpdatedBy = actor
	p.UpdatedAt = time.Now().UTC()
	return s.positions.Save(ctx, p)
}

func (s *Service) DeletePosition(ctx context.Context, id uuid.UUID) error {
	return s.positions.Delete(ctx, id)
}

// ApplyInput is the public application payload.
type ApplyInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"max=30"`
	CoverLetter string `json:"coverLetter" validate:"max=5000"`
	ResumeURL   string `json:"resumeUrl" validate:"omitempty,url"`
}

// Apply submits an application against an open position.
func (s *Service) Apply(ctx context.Context, positionID uuid.UUID, in ApplyInput) (*career.Application, error) {
	p, err := s.positions.FindByID(ctx, positionID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, apperr.Validation("position is no longer open")
	}
	a, err := career.NewApplication(positionID, in.Name, in.Email, in.Phone, in.CoverLetter, in.ResumeURL)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	if err := s.applications.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetApplication(ctx context.Context, id uuid.UUID) (*career.Application, error) {
	return s.applications.FindByID(ctx, id)
}

func (s *Service) ListApplications(ctx context.Context, f repositories.ApplicationFilter, page paging.Request) ([]*career.Application, paging.Result, error) {
	page.Normalize()
	items, total, err := s.applications.List(ctx, f, page)
	if err != nil {
		return nil, paging.Result{}, err
	}
	return items, paging.NewResult(page, total), nil
}

// UpdateApplicationStatus moves an application through the review
// pipeline; the transition table rejects illegal moves.
func (s *Service) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, next career.ApplicationStatus) (*career.Application, error) {
	a, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.TransitionTo(next); err != nil {
		return nil, err
	}
	if err := s.applications.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	return s.applications.Delete(ctx, id)
}
