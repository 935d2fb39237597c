package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperr.Validation("bad input"), http.StatusBadRequest},
		{"not found", apperr.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("find product: %w", apperr.ErrNotFound), http.StatusNotFound},
		{"bad credentials", apperr.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inactive account", apperr.ErrInactiveAccount, http.StatusUnauthorized},
		{"duplicate", apperr.ErrDuplicate, http.StatusConflict},
		{"in use", fmt.Errorf("category has 3 associated products: %w", apperr.ErrInUse), http.StatusConflict},
		{"transition", &apperr.TransitionError{Entity: "application", From: "accepted", To: "pending"}, http.StatusConflict},
		{"unknown", errors.New("pool exhausted"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)

			var body envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
			assert.Nil(t, body.Data)
		})
	}
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, errors.New("pq: connection refused on 10.0.0.3"))

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Error)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

func TestRespondListIncludesPagination(t *testing.T) {
	rec := httptest.NewRecorder()
	respondList(rec, []string{"a", "b"}, paging.NewResult(paging.Request{Page: 2, Limit: 10}, 15))

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 15, body.Pagination.Total)
	assert.Equal(t, 2, body.Pagination.Pages)
}
