package newsletters

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ginsengcms/internal/domain/newsletter"
	"ginsengcms/internal/mail"
	"ginsengcms/internal/store/repositories"
)

// Dispatcher drains the pending delivery queue and hands each row to
// the mailer. A single dispatcher goroutine runs per process, which is
// what lets ClaimPendingDeliveries skip row locking.
type Dispatcher struct {
	repo      repositories.NewsletterRepository
	mailer    mail.Mailer
	pollEvery time.Duration
	batch     int
}

func NewDispatcher(repo repositories.NewsletterRepository, mailer mail.Mailer) *Dispatcher {
	return &Dispatcher{repo: repo, mailer: mailer, pollEvery: 5 * time.Second, batch: 25}
}

func (d *Dispatcher) Run(ctx context.Context) {
	log.Info().Msg("newsletter dispatcher: started")
	t := time.NewTicker(d.pollEvery)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("newsletter dispatcher: stopping")
			return
		case <-t.C:
			d.tick(ctx)
		}
	}
}

func (d *Dispatcher) tick(ctx context.Context) {
	deliveries, err := d.repo.ClaimPendingDeliveries(ctx, d.batch)
	if err != nil {
		log.Error().Err(err).Msg("dispatcher: claim deliveries failed")
		return
	}
	if len(deliveries) == 0 {
		return
	}

	// Campaigns touched in this batch get a drain check afterwards.
	touched := map[uuid.UUID]struct{}{}
	for _, dl := range deliveries {
		if ctx.Err() != nil {
			return
		}
		touched[dl.CampaignID] = struct{}{}
		d.handleOne(ctx, dl)
	}

	for id := range touched {
		if err := d.repo.FinishCampaignIfDrained(ctx, id); err != nil {
			log.Error().Err(err).Str("campaign_id", id.String()).Msg("dispatcher: drain check failed")
		}
	}
}

func (d *Dispatcher) handleOne(ctx context.Context, dl *newsletter.Delivery) {
	campaign, err := d.repo.FindCampaignByID(ctx, dl.CampaignID)
	if err != nil {
		log.Error().Err(err).Str("delivery_id", dl.ID.String()).Msg("dispatcher: load campaign failed")
		return
	}

	sendErr := d.sendWithRetry(ctx, dl.Email, campaign.Subject, campaign.Body)

	status := newsletter.DeliverySent
	errText := ""
	if sendErr != nil {
		status = newsletter.DeliveryFailed
		errText = sendErr.Error()
		log.Error().Err(sendErr).
			Str("delivery_id", dl.ID.String()).
			Str("email", dl.Email).
			Msg("dispatcher: send failed")
	}
	if err := d.repo.MarkDelivery(ctx, dl.ID, status, errText); err != nil {
		log.Error().Err(err).Str("delivery_id", dl.ID.String()).Msg("dispatcher: mark delivery failed")
	}
}

// sendWithRetry retries transient SMTP failures with exponential
// backoff, bounded so one bad recipient cannot stall the batch.
func (d *Dispatcher) sendWithRetry(ctx context.Context, to, subject, body string) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	return backoff.Retry(func() error {
		return d.mailer.Send(to, subject, body)
	}, policy)
}
