package product

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ginsengcms/internal/core/slug"
)

// Grade classifies ginseng quality tiers.
type Grade string

const (
	GradeHeaven Grade = "heaven"
	GradeEarth  Grade = "earth"
	GradeGood   Grade = "good"
)

// Money is a price in the smallest currency unit.
type Money int64

// Product is a sellable ginseng good. Category and Origin are stored as
// foreign keys and populated by join at read time.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Grade       Grade     `json:"grade,omitempty"`
	CategoryID  uuid.UUID `json:"categoryId,omitempty"`
	OriginID    uuid.UUID `json:"originId,omitempty"`
	Price       Money     `json:"price"`
	WeightGrams int       `json:"weightGrams"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images,omitempty"`
	IsActive    bool      `json:"isActive"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	UpdatedBy   uuid.UUID `json:"updatedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Populated references, nil unless the query joined them.
	Category *Category `json:"category,omitempty"`
	Origin   *Origin   `json:"origin,omitempty"`
}

// Category groups products for navigation and filtering.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Origin identifies the growing region a product line comes from.
type Origin struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Region    string    `json:"region,omitempty"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New creates an active product with a derived slug when none is given.
func New(name, slugIn, description string, grade Grade, price Money, weightGrams int, actor uuid.UUID) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %d", price)
	}
	if weightGrams < 0 {
		return nil, fmt.Errorf("weight cannot be negative: %d", weightGrams)
	}
	if grade != "" && !grade.Valid() {
		return nil, fmt.Errorf("unknown grade: %q", grade)
	}
	s := strings.TrimSpace(slugIn)
	if s == "" {
		s = slug.Make(name)
	}
	now := time.Now().UTC()
	return &Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Slug:        s,
		Description: description,
		Grade:       grade,
		Price:       price,
		WeightGrams: weightGrams,
		IsActive:    true,
		CreatedBy:   actor,
		UpdatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NewCategory creates a category with a derived slug when none is given.
func NewCategory(name, slugIn, description string, sortOrder int) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	s := strings.TrimSpace(slugIn)
	if s == "" {
		s = slug.Make(name)
	}
	now := time.Now().UTC()
	return &Category{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Slug:        s,
		Description: description,
		SortOrder:   sortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NewOrigin creates an origin with a derived slug when none is given.
func NewOrigin(name, slugIn, region, country string) (*Origin, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(country) == "" {
		return nil, fmt.Errorf("country is required")
	}
	s := strings.TrimSpace(slugIn)
	if s == "" {
		s = slug.Make(name)
	}
	now := time.Now().UTC()
	return &Origin{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Slug:      s,
		Region:    region,
		Country:   strings.TrimSpace(country),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (g Grade) Valid() bool {
	switch g {
	case GradeHeaven, GradeEarth, GradeGood:
		return true
	}
	return false
}
