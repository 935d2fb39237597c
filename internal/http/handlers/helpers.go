package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const maxBodyBytes = 1 << 20 // 1MB cap on JSON bodies

// decode reads and validates a JSON request body into dst.
func decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("invalid request body: %s", err)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if ok := isValidationErrors(err, &verrs); ok && len(verrs) > 0 {
			fe := verrs[0]
			return apperr.Validation("field %q failed %q validation", fe.Field(), fe.Tag())
		}
		return apperr.Validation("invalid request body")
	}
	return nil
}

func isValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

// pageFrom reads page/limit query parameters; paging.Normalize applies
// defaults and caps downstream.
func pageFrom(r *http.Request) paging.Request {
	var p paging.Request
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Limit = n
		}
	}
	return p
}

// queryStr reads a string filter parameter, treating the legacy
// sentinel values "all" and the collection name as absent.
func queryStr(r *http.Request, name string, sentinels ...string) string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if strings.EqualFold(v, "all") {
		return ""
	}
	for _, s := range sentinels {
		if strings.EqualFold(v, s) {
			return ""
		}
	}
	return v
}

// queryUUID reads a uuid filter parameter; malformed values are ignored
// rather than rejected so stale links degrade to an unfiltered listing.
func queryUUID(r *http.Request, name string) *uuid.UUID {
	v := queryStr(r, name)
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func queryInt64(r *http.Request, name string) *int64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func queryInt(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func queryBool(r *http.Request, name string) *bool {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

func pathSlug(r *http.Request) string {
	return chi.URLParam(r, "slug")
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid id %q", raw)
	}
	return id, nil
}
