package inbox

import (
	"context"

	"github.com/google/uuid"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/contact"
	"ginsengcms/internal/store/repositories"
)

// Service manages inbound contact messages.
type Service struct {
	repo repositories.ContactRepository
}

func NewService(repo repositories.ContactRepository) *Service {
	return &Service{repo: repo}
}

// SubmitInput is the public contact-form payload.
type SubmitInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=30"`
	Subject string `json:"subject" validate:"max=200"`
	Body    string `json:"body" validate:"required,max=5000"`
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*contact.Message, error) {
	m, err := contact.NewMessage(in.Name, in.Email, in.Phone, in.Subject, in.Body)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*contact.Message, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f repositories.ContactFilter, page paging.Request) ([]*contact.Message, paging.Result, error) {
	page.Normalize()
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return nil, paging.Result{}, err
	}
	return items, paging.NewResult(page, total), nil
}

// UpdateStatus moves a message through triage; the transition table
// rejects illegal moves.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, next contact.Status) (*contact.Message, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.TransitionTo(next); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
