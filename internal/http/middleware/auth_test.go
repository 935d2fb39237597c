package middlewarex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/user"
	"ginsengcms/internal/services/auth"
	"ginsengcms/internal/store/repositories"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (r *fakeUserRepo) Save(_ context.Context, u *user.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context, _ repositories.UserFilter, _ paging.Request) ([]*user.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) TouchLogin(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context) (map[user.Role]int, error) {
	return nil, nil
}

type authFixture struct {
	repo   *fakeUserRepo
	tokens *auth.TokenService
	svc    *auth.Service
	user   *user.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	repo := newFakeUserRepo()
	tokens := auth.NewTokenService(testSecret, time.Hour, 24*time.Hour)
	svc := auth.NewService(repo, tokens, 4)

	u, err := user.New("editor@example.com", "Editor", user.RoleEditor)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), u))

	return &authFixture{repo: repo, tokens: tokens, svc: svc, user: u}
}

func protectedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, _ := UserFrom(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": u.Email})
	})
}

func doRequest(h http.Handler, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthenticateBearerToken(t *testing.T) {
	fx := newAuthFixture(t)
	h := Authenticate(fx.svc, "token")(protectedHandler())

	token, err := fx.tokens.Generate(fx.user)
	require.NoError(t, err)

	rec := doRequest(h, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "editor@example.com", decodeBody(t, rec)["data"])
}

func TestAuthenticateCookieFallback(t *testing.T) {
	fx := newAuthFixture(t)
	h := Authenticate(fx.svc, "token")(protectedHandler())

	token, err := fx.tokens.Generate(fx.user)
	require.NoError(t, err)

	rec := doRequest(h, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "token", Value: token})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateMissingToken(t *testing.T) {
	fx := newAuthFixture(t)
	h := Authenticate(fx.svc, "token")(protectedHandler())

	rec := doRequest(h, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "data")
}

func TestAuthenticateExpiredToken(t *testing.T) {
	fx := newAuthFixture(t)
	h := Authenticate(fx.svc, "token")(protectedHandler())

	// Token signed with the right key but already past its expiry.
	expired := auth.NewTokenService(testSecret, -time.Hour, -time.Hour)
	token, err := expired.Generate(fx.user)
	require.NoError(t, err)

	rec := doRequest(h, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestAuthenticateInactiveUser(t *testing.T) {
	fx := newAuthFixture(t)
	h := Authenticate(fx.svc, "token")(protectedHandler())

	token, err := fx.tokens.Generate(fx.user)
	require.NoError(t, err)
	fx.user.Status = user.StatusSuspended
	require.NoError(t, fx.repo.Save(context.Background(), fx.user))

	rec := doRequest(h, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	fx := newAuthFixture(t)

	chain := func(roles ...user.Role) http.Handler {
		return Authenticate(fx.svc, "token")(RequireRole(roles...)(protectedHandler()))
	}
	token, err := fx.tokens.Generate(fx.user)
	require.NoError(t, err)
	withToken := func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }

	rec := doRequest(chain(user.RoleAdmin, user.RoleEditor), withToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(chain(user.RoleAdmin), withToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}
