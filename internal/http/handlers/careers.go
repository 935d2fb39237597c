package handlers

import (
	"net/http"

	"ginsengcms/internal/domain/career"
	middlewarex "ginsengcms/internal/http/middleware"
	"ginsengcms/internal/services/careers"
	"ginsengcms/internal/store/repositories"
)

func CreatePosition(svc *careers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middlewarex.UserFrom(r.Context())
		var in careers.PositionInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		p, err := svc.CreatePosition(r.Context(), in, u.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusCreated, p)
	}
}

func GetPosition(svc *careers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		p, err := svc.GetPosition(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, p)
	}
}

func GetPositionBySlug(svc *careers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetPositionBySlug(r.Context(), pathSlug(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, p)
	}
}

func ListPositions(svc *careers.Service, publicOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := repositories.PositionFilter{
			Search:     queryStr(r, "search"),
			Department: queryStr(r, "department", "positions"),
			Location:   queryStr(r, "location"),
			ActiveOnly: publicOnly,
		}
		items, p, err := svc.ListPositions(r.Context(), f, pageFrom(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondList(w, items, p)
	}
}

func UpdatePosition(svc *careers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middlewarex.UserFrom(r.Context())
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var in careers.PositionInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		p, err := svc.UpdatePosition(r.Context(), id, in, u.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, p)
	}
}

func ClosePosition(svc *careers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middlewarex.UserFrom(r.Context())
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := svc.ClosePosition(r.Context(), id, u.ID); err != nil {
			respondError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "position closed")
	}
}

func DeletePosition(svc *careers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := svc.DeletePosition(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "position deleted")
	}
}

// Apply is the public application endpoint for a position.
func Apply(svc *careers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var in careers.ApplyInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		a, err := svc.Apply(r.Context(), id, in)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusCreated, a)
	}
}

func GetApplication(svc *careers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		a, err := svc.GetApplication(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, a)
	}
}

func ListApplications(svc *careers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := repositories.ApplicationFilter{
			PositionID: queryUUID(r, "position"),
			Status:     career.ApplicationStatus(queryStr(r, "status", "applications")),
			Search:     queryStr(r, "search"),
		}
		items, p, err := svc.ListApplications(r.Context(), f, pageFrom(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondList(w, items, p)
	}
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateApplicationStatus enforces the application status transition
// table; illegal moves come back as 409s.
func UpdateApplicationStatus(svc *careers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var req statusRequest
		if err := decode(r, &req); err != nil {
			respondError(w, err)
			return
		}
		a, err := svc.UpdateApplicationStatus(r.Context(), id, career.ApplicationStatus(req.Status))
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, a)
	}
}

func DeleteApplication(svc *careers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := svc.DeleteApplication(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "application deleted")
	}
}
