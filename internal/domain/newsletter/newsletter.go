package newsletter

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Subscriber is an email address on the mailing list. Unsubscribing
// flips IsActive rather than deleting the row so a later re-subscribe
// keeps history.
type Subscriber struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	IsActive       bool       `json:"isActive"`
	SubscribedAt   time.Time  `json:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty"`
}

// NewSubscriber creates an active subscription.
func NewSubscriber(email string) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email: %q", email)
	}
	return &Subscriber{
		ID:           uuid.New(),
		Email:        email,
		IsActive:     true,
		SubscribedAt: time.Now().UTC(),
	}, nil
}

// CampaignStatus is the dispatch state of a campaign.
type CampaignStatus string

const (
	CampaignDraft   CampaignStatus = "draft"
	CampaignSending CampaignStatus = "sending"
	CampaignSent    CampaignStatus = "sent"
)

// Campaign is a newsletter issue sent to all active subscribers.
type Campaign struct {
	ID        uuid.UUID      `json:"id"`
	Subject   string         `json:"subject"`
	Body      string         `json:"body"`
	Status    CampaignStatus `json:"status"`
	SentAt    *time.Time     `json:"sentAt,omitempty"`
	CreatedBy uuid.UUID      `json:"createdBy"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NewCampaign creates a draft campaign.
func NewCampaign(subject, body string, actor uuid.UUID) (*Campaign, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("body is required")
	}
	now := time.Now().UTC()
	return &Campaign{
		ID:        uuid.New(),
		Subject:   strings.TrimSpace(subject),
		Body:      body,
		Status:    CampaignDraft,
		CreatedBy: actor,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DeliveryStatus is the per-recipient send state.
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "pending"
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
)

// Delivery is one queued send of a campaign to one subscriber. The
// dispatcher worker drains pending rows in batches.
type Delivery struct {
	ID           uuid.UUID      `json:"id"`
	CampaignID   uuid.UUID      `json:"campaignId"`
	SubscriberID uuid.UUID      `json:"subscriberId"`
	Email        string         `json:"email"`
	Status       DeliveryStatus `json:"status"`
	Attempts     int            `json:"attempts"`
	LastError    string         `json:"lastError,omitempty"`
	SentAt       *time.Time     `json:"sentAt,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
