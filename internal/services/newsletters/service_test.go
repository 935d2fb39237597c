package newsletters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/newsletter"
	"ginsengcms/internal/store/repositories"
)

type fakeNewsletterRepo struct {
	subscribers map[string]*newsletter.Subscriber
	campaigns   map[uuid.UUID]*newsletter.Campaign
	deliveries  []*newsletter.Delivery
}

func newFakeNewsletterRepo() *fakeNewsletterRepo {
	return &fakeNewsletterRepo{
		subscribers: map[string]*newsletter.Subscriber{},
		campaigns:   map[uuid.UUID]*newsletter.Campaign{},
	}
}

func (r *fakeNewsletterRepo) SaveSubscriber(_ context.Context, s *newsletter.Subscriber) error {
	cp := *s
	r.subscribers[s.Email] = &cp
	return nil
}

func (r *fakeNewsletterRepo) FindSubscriberByEmail(_ context.Context, email string) (*newsletter.Subscriber, error) {
	s, ok := r.subscribers[email]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeNewsletterRepo) ListSubscribers(_ context.Context, f repositories.SubscriberFilter, _ paging.Request) ([]*newsletter.Subscriber, int, error) {
	var out []*newsletter.Subscriber
	for _, s := range r.subscribers {
		if f.ActiveOnly && !s.IsActive {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeNewsletterRepo) SaveCampaign(_ context.Context, c *newsletter.Campaign) error {
	cp := *c
	r.campaigns[c.ID] = &cp
	return nil
}

func (r *fakeNewsletterRepo) FindCampaignByID(_ context.Context, id uuid.UUID) (*newsletter.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeNewsletterRepo) ListCampaigns(_ context.Context, _ paging.Request) ([]*newsletter.Campaign, int, error) {
	var out []*newsletter.Campaign
	for _, c := range r.campaigns {
		cp := *c
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeNewsletterRepo) EnqueueDeliveries(_ context.Context, campaignID uuid.UUID) (int, error) {
	c, ok := r.campaigns[campaignID]
	if !ok {
		return 0, apperr.ErrNotFound
	}
	if c.Status != newsletter.CampaignDraft {
		return 0, apperr.ErrDuplicate
	}
	c.Status = newsletter.CampaignSending
	n := 0
	for _, s := range r.subscribers {
		if !s.IsActive {
			continue
		}
		r.deliveries = append(r.deliveries, &newsletter.Delivery{
			ID:           uuid.New(),
			CampaignID:   campaignID,
			SubscriberID: s.ID,
			Email:        s.Email,
			Status:       newsletter.DeliveryPending,
			CreatedAt:    time.Now().UTC(),
		})
		n++
	}
	if n == 0 {
		c.Status = newsletter.CampaignSent
		now := time.Now().UTC()
		c.SentAt = &now
	}
	return n, nil
}

func (r *fakeNewsletterRepo) ClaimPendingDeliveries(_ context.Context, limit int) ([]*newsletter.Delivery, error) {
	var out []*newsletter.Delivery
	for _, d := range r.deliveries {
		if d.Status != newsletter.DeliveryPending {
			continue
		}
		out = append(out, d)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeNewsletterRepo) MarkDelivery(_ context.Context, id uuid.UUID, status newsletter.DeliveryStatus, sendErr string) error {
	for _, d := range r.deliveries {
		if d.ID == id {
			d.Status = status
			d.LastError = sendErr
			d.Attempts++
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (r *fakeNewsletterRepo) FinishCampaignIfDrained(_ context.Context, campaignID uuid.UUID) error {
	for _, d := range r.deliveries {
		if d.CampaignID == campaignID && d.Status == newsletter.DeliveryPending {
			return nil
		}
	}
	if c, ok := r.campaigns[campaignID]; ok && c.Status == newsletter.CampaignSending {
		c.Status = newsletter.CampaignSent
	}
	return nil
}

func TestSubscribeAndReactivate(t *testing.T) {
	svc := NewService(newFakeNewsletterRepo())
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, "Reader@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", sub.Email)
	assert.True(t, sub.IsActive)

	// Double subscribe is rejected.
	_, err = svc.Subscribe(ctx, "reader@example.com")
	assert.True(t, apperr.IsValidation(err))

	// Unsubscribe, then re-subscribe reuses the same row.
	require.NoError(t, svc.Unsubscribe(ctx, "reader@example.com"))
	again, err := svc.Subscribe(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, sub.ID, again.ID)
	assert.True(t, again.IsActive)
	assert.Nil(t, again.UnsubscribedAt)
}

func TestUnsubscribeIdempotent(t *testing.T) {
	svc := NewService(newFakeNewsletterRepo())
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, "reader@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Unsubscribe(ctx, "reader@example.com"))
	require.NoError(t, svc.Unsubscribe(ctx, "reader@example.com"))
}

func TestSendCampaignQueuesActiveSubscribersOnly(t *testing.T) {
	repo := newFakeNewsletterRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, "b@example.com")
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, "gone@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(ctx, "gone@example.com"))

	c, err := svc.CreateCampaign(ctx, CampaignInput{Subject: "Autumn harvest", Body: "hello"}, uuid.New())
	require.NoError(t, err)

	queued, err := svc.SendCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, queued)

	// Re-sending a campaign that already left draft is refused.
	_, err = svc.SendCampaign(ctx, c.ID)
	assert.True(t, apperr.IsTransition(err))
}

func TestSendCampaignWithNoActiveSubscribers(t *testing.T) {
	repo := newFakeNewsletterRepo()
	svc := NewService(repo)
	ctx := context.Background()

	c, err := svc.CreateCampaign(ctx, CampaignInput{Subject: "s", Body: "b"}, uuid.New())
	require.NoError(t, err)

	// Nothing to deliver, so the campaign completes immediately instead
	// of waiting forever on a drain that can never happen.
	queued, err := svc.SendCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, queued)
	assert.Empty(t, repo.deliveries)

	got, err := svc.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, newsletter.CampaignSent, got.Status)
	require.NotNil(t, got.SentAt)

	_, err = svc.SendCampaign(ctx, c.ID)
	assert.True(t, apperr.IsTransition(err))
}

func TestEnqueueDeliveriesIsOneShot(t *testing.T) {
	repo := newFakeNewsletterRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)

	c, err := svc.CreateCampaign(ctx, CampaignInput{Subject: "s", Body: "b"}, uuid.New())
	require.NoError(t, err)
	_, err = svc.SendCampaign(ctx, c.ID)
	require.NoError(t, err)

	// A racing send that read the campaign while it was still draft must
	// not enqueue a second round of deliveries.
	_, err = repo.EnqueueDeliveries(ctx, c.ID)
	require.ErrorIs(t, err, apperr.ErrDuplicate)
	assert.Len(t, repo.deliveries, 1)
}

type recordingMailer struct {
	sent []string
	fail map[string]error
}

func (m *recordingMailer) Send(to, subject, body string) error {
	if err, ok := m.fail[to]; ok {
		return err
	}
	m.sent = append(m.sent, to)
	return nil
}

func TestDispatcherDrainsQueue(t *testing.T) {
	repo := newFakeNewsletterRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, "b@example.com")
	require.NoError(t, err)

	c, err := svc.CreateCampaign(ctx, CampaignInput{Subject: "s", Body: "b"}, uuid.New())
	require.NoError(t, err)
	_, err = svc.SendCampaign(ctx, c.ID)
	require.NoError(t, err)

	mailer := &recordingMailer{}
	d := NewDispatcher(repo, mailer)
	d.tick(ctx)

	assert.Len(t, mailer.sent, 2)
	got, err := svc.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, newsletter.CampaignSent, got.Status)
	for _, dl := range repo.deliveries {
		assert.Equal(t, newsletter.DeliverySent, dl.Status)
	}
}
