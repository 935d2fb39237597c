package career

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/slug"
)

// Position is an open job listing.
type Position struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Department     string     `json:"department"`
	Location       string     `json:"location"`
	EmploymentType string     `json:"employmentType"`
	Description    string     `json:"description"`
	Requirements   string     `json:"requirements,omitempty"`
	IsActive       bool       `json:"isActive"`
	SortOrder      int        `json:"sortOrder"`
	ClosesAt       *time.Time `json:"closesAt,omitempty"`
	CreatedBy      uuid.UUID  `json:"createdBy"`
	UpdatedBy      uuid.UUID  `json:"updatedBy"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// NewPosition creates an active job listing.
func NewPosition(title, slugIn, department, location, employmentType, description string, actor uuid.UUID) (*Position, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if strings.TrimSpace(department) == "" {
		return nil, fmt.Errorf("department is required")
	}
	s := strings.TrimSpace(slugIn)
	if s == "" {
		s = slug.Make(title)
	}
	now := time.Now().UTC()
	return &Position{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(title),
		Slug:           s,
		Department:     department,
		Location:       location,
		EmploymentType: employmentType,
		Description:    description,
		IsActive:       true,
		CreatedBy:      actor,
		UpdatedBy:      actor,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// ApplicationStatus is the review pipeline state of an application.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewing   ApplicationStatus = "reviewing"
	StatusInterviewed ApplicationStatus = "interviewed"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusWithdrawn   ApplicationStatus = "withdrawn"
)

// allowedTransitions is the reviewed transition table. Accepted, rejected
// and withdrawn are terminal; withdrawn is reachable from every
// non-terminal state.
var allowedTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:     {StatusReviewing, StatusRejected, StatusWithdrawn},
	StatusReviewing:   {StatusInterviewed, StatusRejected, StatusWithdrawn},
	StatusInterviewed: {StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusAccepted:    {},
	StatusRejected:    {},
	StatusWithdrawn:   {},
}

// CanTransitionTo reports whether the table allows moving to next.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions exist from s.
func (s ApplicationStatus) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

func (s ApplicationStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Application is a candidate's submission against a position.
type Application struct {
	ID          uuid.UUID         `json:"id"`
	PositionID  uuid.UUID         `json:"positionId"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone,omitempty"`
	CoverLetter string            `json:"coverLetter,omitempty"`
	ResumeURL   string            `json:"resumeUrl,omitempty"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	// Populated reference, nil unless the query joined it.
	Position *Position `json:"position,omitempty"`
}

// NewApplication creates a pending application.
func NewApplication(positionID uuid.UUID, name, email, phone, coverLetter, resumeURL string) (*Application, error) {
	if positionID == uuid.Nil {
		return nil, fmt.Errorf("position id is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email: %q", email)
	}
	now := time.Now().UTC()
	return &Application{
		ID:          uuid.New(),
		PositionID:  positionID,
		Name:        strings.TrimSpace(name),
		Email:       email,
		Phone:       phone,
		CoverLetter: coverLetter,
		ResumeURL:   resumeURL,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// TransitionTo moves the application to next, enforcing the transition
// table. Illegal moves return a TransitionError.
func (a *Application) TransitionTo(next ApplicationStatus) error {
	if !next.Valid() {
		return apperr.Validation("unknown application status: %q", next)
	}
	if !a.Status.CanTransitionTo(next) {
		return &apperr.TransitionError{Entity: "application", From: string(a.Status), To: string(next)}
	}
	a.Status = next
	a.UpdatedAt = time.Now().UTC()
	return nil
}
