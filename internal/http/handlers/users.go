package handlers

import (
	"net/http"

	"ginsengcms/internal/domain/user"
	"ginsengcms/internal/services/users"
	"ginsengcms/internal/store/repositories"
)

func CreateUser(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in users.CreateInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		u, err := svc.Create(r.Context(), in)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusCreated, u)
	}
}

func GetUser(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		u, err := svc.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, u)
	}
}

func ListUsers(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := repositories.UserFilter{
			Search: queryStr(r, "search"),
			Role:   user.Role(queryStr(r, "role", "users")),
			Status: user.Status(queryStr(r, "status")),
		}
		items, p, err := svc.List(r.Context(), f, pageFrom(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondList(w, items, p)
	}
}

func UpdateUser(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var in users.UpdateInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		u, err := svc.Update(r.Context(), id, in)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, u)
	}
}

func DeleteUser(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "user deleted")
	}
}

func UserStats(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, stats)
	}
}
