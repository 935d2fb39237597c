package contact

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ginsengcms/internal/core/apperr"
)

// Status is the triage state of an inbound message.
type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusArchived Status = "archived"
)

// Messages move forward only; archived is terminal.
var allowedTransitions = map[Status][]Status{
	StatusNew:      {StatusRead, StatusArchived},
	StatusRead:     {StatusReplied, StatusArchived},
	StatusReplied:  {StatusArchived},
	StatusArchived: {},
}

// CanTransitionTo reports whether the table allows moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Message is an inbound contact-form submission.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewMessage creates a message in the "new" state.
func NewMessage(name, email, phone, subject, body string) (*Message, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email: %q", email)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("message body is required")
	}
	now := time.Now().UTC()
	return &Message{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Phone:     phone,
		Subject:   strings.TrimSpace(subject),
		Body:      body,
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// TransitionTo moves the message to next, enforcing the transition table.
func (m *Message) TransitionTo(next Status) error {
	if !next.Valid() {
		return apperr.Validation("unknown message status: %q", next)
	}
	if !m.Status.CanTransitionTo(next) {
		return &apperr.TransitionError{Entity: "contact message", From: string(m.Status), To: string(next)}
	}
	m.Status = next
	m.UpdatedAt = time.Now().UTC()
	return nil
}
