package repositories

import (
	"context"

	"github.com/google/uuid"

	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/career"
	"ginsengcms/internal/domain/company"
	"ginsengcms/internal/domain/contact"
	"ginsengcms/internal/domain/news"
	"ginsengcms/internal/domain/newsletter"
	"ginsengcms/internal/domain/product"
	"ginsengcms/internal/domain/project"
	"ginsengcms/internal/domain/user"
)

// List methods return the page slice plus the unpaginated match count.
// The count and page queries run separately and are not snapshot
// consistent with each other; under concurrent writes they may disagree
// by a small margin, which is acceptable for admin listings.

// UserRepository defines the contract for user data access.
type UserRepository interface {
	Save(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	List(ctx context.Context, f UserFilter, page paging.Request) ([]*user.User, int, error)
	TouchLogin(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context) (map[user.Role]int, error)
}

// ProjectRepository defines the contract for project data access.
type ProjectRepository interface {
	Save(ctx context.Context, p *project.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
	FindBySlug(ctx context.Context, slug string) (*project.Project, error)
	List(ctx context.Context, f ProjectFilter, page paging.Request) ([]*project.Project, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines the contract for product data access.
// Find methods populate Category and Origin by join.
type ProductRepository interface {
	Save(ctx context.Context, p *product.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
	FindBySlug(ctx context.Context, slug string) (*product.Product, error)
	List(ctx context.Context, f ProductFilter, page paging.Request) ([]*product.Product, int, error)
	AppendImage(ctx context.Context, id uuid.UUID, url string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
	CountByOrigin(ctx context.Context, originID uuid.UUID) (int, error)
}

// CategoryRepository defines the contract for product category access.
type CategoryRepository interface {
	Save(ctx context.Context, c *product.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*product.Category, error)
	FindBySlug(ctx context.Context, slug string) (*product.Category, error)
	ListAll(ctx context.Context) ([]*product.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OriginRepository defines the contract for product origin access.
type OriginRepository interface {
	Save(ctx context.Context, o *product.Origin) error
	FindByID(ctx context.Context, id uuid.UUID) (*product.Origin, error)
	ListAll(ctx context.Context) ([]*product.Origin, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewsRepository defines the contract for article data access.
type NewsRepository interface {
	Save(ctx context.Context, a *news.Article) error
	FindByID(ctx context.Context, id uuid.UUID) (*news.Article, error)
	FindBySlug(ctx context.Context, slug string) (*news.Article, error)
	List(ctx context.Context, f NewsFilter, page paging.Request) ([]*news.Article, int, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PositionRepository defines the contract for job position access.
type PositionRepository interface {
	Save(ctx context.Context, p *career.Position) error
	FindByID(ctx context.Context, id uuid.UUID) (*career.Position, error)
	FindBySlug(ctx context.Context, slug string) (*career.Position, error)
	List(ctx context.Context, f PositionFilter, page paging.Request) ([]*career.Position, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ApplicationRepository defines the contract for job application access.
type ApplicationRepository interface {
	Save(ctx context.Context, a *career.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*career.Application, error)
	List(ctx context.Context, f ApplicationFilter, page paging.Request) ([]*career.Application, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactRepository defines the contract for contact message access.
type ContactRepository interface {
	Save(ctx context.Context, m *contact.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*contact.Message, error)
	List(ctx context.Context, f ContactFilter, page paging.Request) ([]*contact.Message, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewsletterRepository defines the contract for subscriber, campaign and
// delivery access.
type NewsletterRepository interface {
	SaveSubscriber(ctx context.Context, s *newsletter.Subscriber) error
	FindSubscriberByEmail(ctx context.Context, email string) (*newsletter.Subscriber, error)
	ListSubscribers(ctx context.Context, f SubscriberFilter, page paging.Request) ([]*newsletter.Subscriber, int, error)

	SaveCampaign(ctx context.Context, c *newsletter.Campaign) error
	FindCampaignByID(ctx context.Context, id uuid.UUID) (*newsletter.Campaign, error)
	ListCampaigns(ctx context.Context, page paging.Request) ([]*newsletter.Campaign, int, error)

	// EnqueueDeliveries flips a draft campaign to "sending" and creates
	// one pending delivery per active subscriber, atomically. A campaign
	// that is no longer draft yields ErrDuplicate and no inserts; with
	// zero active subscribers the campaign goes straight to "sent".
	EnqueueDeliveries(ctx context.Context, campaignID uuid.UUID) (int, error)
	// ClaimPendingDeliveries fetches up to limit pending rows for the
	// single dispatcher goroutine.
	ClaimPendingDeliveries(ctx context.Context, limit int) ([]*newsletter.Delivery, error)
	MarkDelivery(ctx context.Context, id uuid.UUID, status newsletter.DeliveryStatus, sendErr string) error
	// FinishCampaignIfDrained flips "sending" campaigns with no pending
	// deliveries left to "sent".
	FinishCampaignIfDrained(ctx context.Context, campaignID uuid.UUID) error
}

// CompanyRepository defines the contract for the singleton company row.
type CompanyRepository interface {
	Get(ctx context.Context) (*company.Info, error)
	Save(ctx context.Context, info *company.Info) error
}
