package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ginsengcms/internal/core/slug"
)

// Status tracks a project's lifecycle for public display grouping.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// Project is a corporate reference project shown on the public site.
type Project struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Summary    string    `json:"summary"`
	Body       string    `json:"body"`
	Category   string    `json:"category"`
	Status     Status    `json:"status"`
	CoverImage string    `json:"coverImage,omitempty"`
	Gallery    []string  `json:"gallery,omitempty"`
	IsActive   bool      `json:"isActive"`
	SortOrder  int       `json:"sortOrder"`
	CreatedBy  uuid.UUID `json:"createdBy"`
	UpdatedBy  uuid.UUID `json:"updatedBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// New creates an active project. The slug derives from the title when
// the caller does not supply one.
func New(title, slugIn, summary, body, category string, status Status, actor uuid.UUID) (*Project, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if status == "" {
		status = StatusPlanned
	}
	if !status.Valid() {
		return nil, fmt.Errorf("unknown project status: %q", status)
	}
	s := strings.TrimSpace(slugIn)
	if s == "" {
		s = slug.Make(title)
	}
	now := time.Now().UTC()
	return &Project{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		Slug:      s,
		Summary:   summary,
		Body:      body,
		Category:  category,
		Status:    status,
		IsActive:  true,
		CreatedBy: actor,
		UpdatedBy: actor,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}
