package handlers

import (
	"net/http"

	middlewarex "ginsengcms/internal/http/middleware"
	"ginsengcms/internal/services/projects"
	"ginsengcms/internal/store/repositories"
)

func CreateProject(svc *projects.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middlewarex.UserFrom(r.Context())
		var in projects.CreateInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		p, err := svc.Create(r.Context(), in, u.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusCreated, p)
	}
}

func GetProject(svc *projects.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, p)
	}
}

func GetProjectBySlug(svc *projects.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetBySlug(r.Context(), pathSlug(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, p)
	}
}

// ListProjects serves both surfaces: publicOnly restricts the listing
// to active projects for the unauthenticated site.
func ListProjects(svc *projects.Service, publicOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := repositories.ProjectFilter{
			Search:     queryStr(r, "search"),
			Category:   queryStr(r, "category", "projects"),
			Status:     queryStr(r, "status"),
			ActiveOnly: publicOnly,
		}
		items, p, err := svc.List(r.Context(), f, pageFrom(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondList(w, items, p)
	}
}

func UpdateProject(svc *projects.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middlewarex.UserFrom(r.Context())
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var in projects.UpdateInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		p, err := svc.Update(r.Context(), id, in, u.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, p)
	}
}

func DeleteProject(svc *projects.Service) http.HandlerFunc {
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
		respondMessage(w, http.StatusOK, "project deleted")
	}
}
