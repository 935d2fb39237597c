package handlers

import (
	"net/http"

	middlewarex "ginsengcms/internal/http/middleware"
	"ginsengcms/internal/services/newsletters"
	"ginsengcms/internal/store/repositories"
)

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Subscribe is the public signup endpoint; re-subscribing a lapsed
// address re-activates it.
func Subscribe(svc *newsletters.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req subscribeRequest
		if err := decode(r, &req); err != nil {
			respondError(w, err)
			return
		}
		sub, err := svc.Subscribe(r.Context(), req.Email)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusCreated, sub)
	}
}

// Unsubscribe is public so list-unsubscribe links work without a session.
func Unsubscribe(svc *newsletters.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req subscribeRequest
		if err := decode(r, &req); err != nil {
			respondError(w, err)
			return
		}
		if err := svc.Unsubscribe(r.Context(), req.Email); err != nil {
			respondError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "unsubscribed")
	}
}

func ListSubscribers(svc *newsletters.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := repositories.SubscriberFilter{
			Search: queryStr(r, "search"),
		}
		if active := queryBool(r, "active"); active != nil {
			f.ActiveOnly = *active
		}
		items, p, err := svc.ListSubscribers(r.Context(), f, pageFrom(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondList(w, items, p)
	}
}

func CreateCampaign(svc *newsletters.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middlewarex.UserFrom(r.Context())
		var in newsletters.CampaignInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		c, err := svc.CreateCampaign(r.Context(), in, u.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusCreated, c)
	}
}

func GetCampaign(svc *newsletters.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		c, err := svc.GetCampaign(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, c)
	}
}

func ListCampaigns(svc *newsletters.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, p, err := svc.ListCampaigns(r.Context(), pageFrom(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondList(w, items, p)
	}
}

// SendCampaign queues deliveries for every active subscriber; the
// background dispatcher drains the queue.
func SendCampaign(svc *newsletters.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		queued, err := svc.SendCampaign(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, map[string]int{"queued": queued})
	}
}
