package company

import (
	"time"

	"github.com/google/uuid"
)

// Info is the single company profile row edited through the admin UI.
type Info struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Tagline     string            `json:"tagline,omitempty"`
	About       string            `json:"about,omitempty"`
	Address     string            `json:"address,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Email       string            `json:"email,omitempty"`
	FoundedYear int               `json:"foundedYear,omitempty"`
	SocialLinks map[string]string `json:"socialLinks,omitempty"`
	UpdatedBy   uuid.UUID         `json:"updatedBy"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
