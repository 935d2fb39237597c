package news

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ginsengcms/internal/core/slug"
)

// Category buckets articles on the public news page.
type Category string

const (
	CategoryNews   Category = "news"
	CategoryNotice Category = "notice"
	CategoryPress  Category = "press"
	CategoryEvent  Category = "event"
)

// Article is a news post. AuthorName is a denormalized snapshot taken at
// publish time so listings render without joining users.
type Article struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body"`
	Category    Category   `json:"category"`
	CoverImage  string     `json:"coverImage,omitempty"`
	AuthorID    uuid.UUID  `json:"authorId"`
	AuthorName  string     `json:"authorName"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ViewCount   int        `json:"viewCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// New creates an unpublished article authored by the given user.
func New(title, slugIn, excerpt, body string, category Category, authorID uuid.UUID, authorName string) (*Article, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if category == "" {
		category = CategoryNews
	}
	if !category.Valid() {
		return nil, fmt.Errorf("unknown news category: %q", category)
	}
	s := strings.TrimSpace(slugIn)
	if s == "" {
		s = slug.Make(title)
	}
	now := time.Now().UTC()
	return &Article{
		ID:         uuid.New(),
		Title:      strings.TrimSpace(title),
		Slug:       s,
		Excerpt:    excerpt,
		Body:       body,
		Category:   category,
		AuthorID:   authorID,
		AuthorName: authorName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Publish marks the article visible and stamps the publication time once.
func (a *Article) Publish() {
	if a.IsPublished {
		return
	}
	now := time.Now().UTC()
	a.IsPublished = true
	a.PublishedAt = &now
	a.UpdatedAt = now
}

func (c Category) Valid() bool {
	switch c {
	case CategoryNews, CategoryNotice, CategoryPress, CategoryEvent:
		return true
	}
	return false
}
