package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/newsletter"
	"ginsengcms/internal/store/repositories"
)

type newsletterRepository struct {
	db *pgxpool.Pool
}

func NewNewsletterRepository(db *pgxpool.Pool) repositories.NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) SaveSubscriber(ctx context.Context, s *newsletter.Subscriber) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO newsletter_subscribers (id, email, is_active, subscribed_at, unsubscribed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			is_active = EXCLUDED.is_active,
			subscribed_at = EXCLUDED.subscribed_at,
			unsubscribed_at = EXCLUDED.unsubscribed_at`,
		s.ID, s.Email, s.IsActive, s.SubscribedAt, s.UnsubscribedAt)
	return translate("subscriber save", err)
}

func (r *newsletterRepository) FindSubscriberByEmail(ctx context.Context, email string) (*newsletter.Subscriber, error) {
	var s newsletter.Subscriber
	err := r.db.QueryRow(ctx, `
		SELECT id, email, is_active, subscribed_at, unsubscribed_at
		FROM newsletter_subscribers WHERE email = $1`, email).
		Scan(&s.ID, &s.Email, &s.IsActive, &s.SubscribedAt, &s.UnsubscribedAt)
	if err != nil {
		return nil, translate("subscriber find", err)
	}
	return &s, nil
}

func (r *newsletterRepository) ListSubscribers(ctx context.Context, f repositories.SubscriberFilter, page paging.Request) ([]*newsletter.Subscriber, int, error) {
	var sf sqlFilter
	if f.ActiveOnly {
		sf.add("is_active = $%d", true)
	}
	if f.Search != "" {
		sf.add("email ILIKE $%d", likePattern(f.Search))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM newsletter_subscribers`+sf.where(), sf.args...).Scan(&total); err != nil {
		return nil, 0, translate("subscriber count", err)
	}

	frag, args := sf.paged(page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, `
		SELECT id, email, is_active, subscribed_at, unsubscribed_at
		FROM newsletter_subscribers`+sf.where()+
		` ORDER BY subscribed_at DESC`+frag, args...)
	if err != nil {
		return nil, 0, translate("subscriber list", err)
	}
	defer rows.Close()

	var subs []*newsletter.Subscriber
	for rows.Next() {
		var s newsletter.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.IsActive, &s.SubscribedAt, &s.UnsubscribedAt); err != nil {
			return nil, 0, translate("subscriber scan", err)
		}
		subs = append(subs, &s)
	}
	return subs, total, translate("subscriber list", rows.Err())
}

func (r *newsletterRepository) SaveCampaign(ctx context.Context, c *newsletter.Campaign) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO newsletter_campaigns (id, subject, body, status, sent_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			subject = EXCLUDED.subject,
			body = EXCLUDED.body,
			status = EXCLUDED.status,
			sent_at = EXCLUDED.sent_at,
			updated_at = EXCLUDED.updated_at`,
		c.ID, c.Subject, c.Body, string(c.Status), c.SentAt, c.CreatedBy, c.CreatedAt, c.UpdatedAt)
	return translate("campaign save", err)
}

func (r *newsletterRepository) FindCampaignByID(ctx context.Context, id uuid.UUID) (*newsletter.Campaign, error) {
	var c newsletter.Campaign
	var status string
	err := r.db.QueryRow(ctx, `
		SELECT id, subject, body, status, sent_at, created_by, created_at, updated_at
		FROM newsletter_campaigns WHERE id = $1`, id).
		Scan(&c.ID, &c.Subject, &c.Body, &status, &c.SentAt, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translate("campaign find", err)
	}
	c.Status = newsletter.CampaignStatus(status)
	return &c, nil
}

func (r *newsletterRepository) ListCampaigns(ctx context.Context, page paging.Request) ([]*newsletter.Campaign, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM newsletter_campaigns`).Scan(&total); err != nil {
		return nil, 0, translate("campaign count", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, subject, body, status, sent_at, created_by, created_at, updated_at
		FROM newsletter_campaigns
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, translate("campaign list", err)
	}
	defer rows.Close()

	var campaigns []*newsletter.Campaign
	for rows.Next() {
		var c newsletter.Campaign
		var status string
		if err := rows.Scan(&c.ID, &c.Subject, &c.Body, &status, &c.SentAt, &c.CreatedBy,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, translate("campaign scan", err)
		}
		c.Status = newsletter.CampaignStatus(status)
		campaigns = append(campaigns, &c)
	}
	return campaigns, total, translate("campaign list", rows.Err())
}

// EnqueueDeliveries fans a campaign out to every active subscriber and
// flips it to "sending" in one transaction.
func (r *newsletterRepository) EnqueueDeliveries(ctx context.Context, campaignID uuid.UUID) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, translate("delivery enqueue", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// The status flip goes first and gates the insert, so a concurrent
	// send that lost the race inserts nothing instead of doubling every
	// delivery.
	flip, err := tx.Exec(ctx, `
		UPDATE newsletter_campaigns
		   SET status = 'sending', updated_at = now()
		 WHERE id = $1 AND status = 'draft'`, campaignID)
	if err != nil {
		return 0, translate("delivery enqueue", err)
	}
	if flip.RowsAffected() == 0 {
		return 0, fmt.Errorf("delivery enqueue: %w", apperr.ErrDuplicate)
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO newsletter_deliveries (id, campaign_id, subscriber_id, email, status)
		SELECT gen_random_uuid(), $1, s.id, s.email, 'pending'
		FROM newsletter_subscribers s
		WHERE s.is_active`, campaignID)
	if err != nil {
		return 0, translate("delivery enqueue", err)
	}

	// With zero recipients there is nothing for the dispatcher to drain,
	// so the campaign closes out here instead of idling in "sending".
	if tag.RowsAffected() == 0 {
		if _, err := tx.Exec(ctx, `
			UPDATE newsletter_campaigns
			   SET status = 'sent', sent_at = now(), updated_at = now()
			 WHERE id = $1`, campaignID); err != nil {
			return 0, translate("delivery enqueue", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, translate("delivery enqueue", err)
	}
	return int(tag.RowsAffected()), nil
}

// ClaimPendingDeliveries fetches the next batch for the dispatcher.
// A single dispatcher goroutine drains the queue, so a plain read is
// enough; no row locking.
func (r *newsletterRepository) ClaimPendingDeliveries(ctx context.Context, limit int) ([]*newsletter.Delivery, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, campaign_id, subscriber_id, email, status, attempts, last_error, sent_at, created_at
		FROM newsletter_deliveries
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, translate("delivery claim", err)
	}
	defer rows.Close()

	var deliveries []*newsletter.Delivery
	for rows.Next() {
		var d newsletter.Delivery
		var status string
		if err := rows.Scan(&d.ID, &d.CampaignID, &d.SubscriberID, &d.Email, &status,
			&d.Attempts, &d.LastError, &d.SentAt, &d.CreatedAt); err != nil {
			return nil, translate("delivery scan", err)
		}
		d.Status = newsletter.DeliveryStatus(status)
		deliveries = append(deliveries, &d)
	}
	return deliveries, translate("delivery claim", rows.Err())
}

func (r *newsletterRepository) MarkDelivery(ctx context.Context, id uuid.UUID, status newsletter.DeliveryStatus, sendErr string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE newsletter_deliveries
		   SET status = $1,
		       attempts = attempts + 1,
		       last_error = $2,
		       sent_at = CASE WHEN $1 = 'sent' THEN now() ELSE sent_at END
		 WHERE id = $3`, string(status), sendErr, id)
	return translate("delivery mark", err)
}

func (r *newsletterRepository) FinishCampaignIfDrained(ctx context.Context, campaignID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE newsletter_campaigns c
		   SET status = 'sent', sent_at = now(), updated_at = now()
		 WHERE c.id = $1
		   AND c.status = 'sending'
		   AND NOT EXISTS (
			SELECT 1 FROM newsletter_deliveries d
			 WHERE d.campaign_id = c.id AND d.status = 'pending')`, campaignID)
	return translate("campaign finish", err)
}
