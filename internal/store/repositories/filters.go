package repositories

import (
	"github.com/google/uuid"

	"ginsengcms/internal/domain/career"
	"ginsengcms/internal/domain/contact"
	"ginsengcms/internal/domain/news"
	"ginsengcms/internal/domain/product"
	"ginsengcms/internal/domain/user"
)

// Filter structs translate caller criteria into repository predicates.
// Zero values (empty string, nil pointer) impose no constraint; handlers
// normalize legacy sentinel values before a filter is built, so nothing
// below ever sees "all". Conflicting ranges (min > max) pass through
// unvalidated and simply match nothing.

// ProductFilter narrows product listings.
type ProductFilter struct {
	Search     string // ILIKE across name and description
	Grade      product.Grade
	CategoryID *uuid.UUID
	OriginID   *uuid.UUID
	PriceMin   *int64
	PriceMax   *int64
	WeightMin  *int
	WeightMax  *int
	Featured   *bool
	// ActiveOnly is the base predicate for public listings; admin
	// listings leave it false to see everything.
	ActiveOnly bool
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Search     string // ILIKE across title and summary
	Category   string
	Status     string
	ActiveOnly bool
}

// NewsFilter narrows article listings.
type NewsFilter struct {
	Search        string // ILIKE across title and excerpt
	Category      news.Category
	AuthorID      *uuid.UUID
	PublishedOnly bool
}

// PositionFilter narrows job position listings.
type PositionFilter struct {
	Search     string
	Department string
	Location   string
	ActiveOnly bool
}

// ApplicationFilter narrows job application listings.
type ApplicationFilter struct {
	PositionID *uuid.UUID
	Status     career.ApplicationStatus
	Search     string // ILIKE across name and email
}

// ContactFilter narrows contact message listings.
type ContactFilter struct {
	Status contact.Status
	Search string // ILIKE across name, email and subject
}

// SubscriberFilter narrows newsletter subscriber listings.
type SubscriberFilter struct {
	Search     string // ILIKE on email
	ActiveOnly bool
}

// UserFilter narrows user listings.
type UserFilter struct {
	Search string // ILIKE across email and name
	Role   user.Role
	Status user.Status
}
