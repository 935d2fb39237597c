package handlers

import (
	"net/http"

	"ginsengcms/internal/domain/news"
	middlewarex "ginsengcms/internal/http/middleware"
	"ginsengcms/internal/services/newsroom"
	"ginsengcms/internal/store/repositories"
)

func CreateArticle(svc *newsroom.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middlewarex.UserFrom(r.Context())
		var in newsroom.CreateInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		a, err := svc.Create(r.Context(), in, u)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusCreated, a)
	}
}

func GetArticle(svc *newsroom.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, a)
	}
}

// GetArticleBySlug is the public read; it 404s unpublished articles and
// bumps the view counter.
func GetArticleBySlug(svc *newsroom.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetBySlug(r.Context(), pathSlug(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, a)
	}
}

func ListArticles(svc *newsroom.Service, publicOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := repositories.NewsFilter{
			Search:        queryStr(r, "search"),
			// "news" is a real category value here, so only the "all"
			// sentinel is normalized away.
			Category:      news.Category(queryStr(r, "category")),
			AuthorID:      queryUUID(r, "author"),
			PublishedOnly: publicOnly,
		}
		items, p, err := svc.List(r.Context(), f, pageFrom(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondList(w, items, p)
	}
}

func UpdateArticle(svc *newsroom.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var in newsroom.UpdateInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		a, err := svc.Update(r.Context(), id, in)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, a)
	}
}

func DeleteArticle(svc *newsroom.Service) http.HandlerFunc {
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
		respondMessage(w, http.StatusOK, "article deleted")
	}
}
