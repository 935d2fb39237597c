package newsletters

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/newsletter"
	"ginsengcms/internal/store/repositories"
)

// Service manages subscriptions and campaigns. Actual delivery is
// handled by the Dispatcher draining the queue EnqueueDeliveries fills.
type Service struct {
	repo repositories.NewsletterRepository
}

func NewService(repo repositories.NewsletterRepository) *Service {
	return &Service{repo: repo}
}

// Subscribe adds an email to the list. Re-subscribing a previously
// unsubscribed address re-activates the existing row.
func (s *Service) Subscribe(ctx context.Context, email string) (*newsletter.Subscriber, error) {
	sub, err := newsletter.NewSubscriber(email)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	existing, err := s.repo.FindSubscriberByEmail(ctx, sub.Email)
	switch {
	case err == nil:
		if existing.IsActive {
			return nil, apperr.Validation("email is already subscribed")
		}
		existing.IsActive = true
		existing.UnsubscribedAt = nil
		if err := s.repo.SaveSubscriber(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, apperr.ErrNotFound):
		if err := s.repo.SaveSubscriber(ctx, sub); err != nil {
			return nil, err
		}
		return sub, nil
	default:
		return nil, err
	}
}

// Unsubscribe deactivates a subscription; unsubscribing an address that
// is already inactive is a no-op.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	sub, err := s.repo.FindSubscriberByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if !sub.IsActive {
		return nil
	}
	now := time.Now().UTC()
	sub.IsActive = false
	sub.UnsubscribedAt = &now
	return s.repo.SaveSubscriber(ctx, sub)
}

func (s *Service) ListSubscribers(ctx context.Context, f repositories.SubscriberFilter, page paging.Request) ([]*newsletter.Subscriber, paging.Result, error) {
	page.Normalize()
	items, total, err := s.repo.ListSubscribers(ctx, f, page)
	if err != nil {
		return nil, paging.Result{}, err
	}
	return items, paging.NewResult(page, total), nil
}

// CampaignInput is the admin payload for creating a campaign.
type CampaignInput struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Body    string `json:"body" validate:"required"`
}

func (s *Service) CreateCampaign(ctx context.Context, in CampaignInput, actor uuid.UUID) (*newsletter.Campaign, error) {
	c, err := newsletter.NewCampaign(in.Subject, in.Body, actor)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	if err := s.repo.SaveCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetCampaign(ctx context.Context, id uuid.UUID) (*newsletter.Campaign, error) {
	return s.repo.FindCampaignByID(ctx, id)
}

func (s *Service) ListCampaigns(ctx context.Context, page paging.Request) ([]*newsletter.Campaign, paging.Result, error) {
	page.Normalize()
	items, total, err := s.repo.ListCampaigns(ctx, page)
	if err != nil {
		return nil, paging.Result{}, err
	}
	return items, paging.NewResult(page, total), nil
}

// SendCampaign queues one delivery per active subscriber and returns the
// queued count. Only draft campaigns can be sent; a campaign with no
// recipients is marked sent right away.
func (s *Service) SendCampaign(ctx context.Context, id uuid.UUID) (int, error) {
	c, err := s.repo.FindCampaignByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if c.Status != newsletter.CampaignDraft {
		return 0, &apperr.TransitionError{Entity: "campaign", From: string(c.Status), To: string(newsletter.CampaignSending)}
	}
	return s.repo.EnqueueDeliveries(ctx, id)
}
