package projects

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/project"
	"ginsengcms/internal/store/repositories"
)

type fakeProjectRepo struct {
	items map[uuid.UUID]*project.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{items: map[uuid.UUID]*project.Project{}}
}

func (r *fakeProjectRepo) Save(_ context.Context, p *project.Project) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*project.Project, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) FindBySlug(_ context.Context, slug string) (*project.Project, error) {
	for _, p := range r.items {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *fakeProjectRepo) List(_ context.Context, f repositories.ProjectFilter, page paging.Request) ([]*project.Project, int, error) {
	var matched []*project.Project
	for _, p := range r.items {
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })

	total := len(matched)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func seedProjects(t *testing.T, svc *Service, n int) {
	t.Helper()
	actor := uuid.New()
	for i := 0; i < n; i++ {
		_, err := svc.Create(context.Background(), CreateInput{
			Title:    fmt.Sprintf("Project %02d", i),
			Category: "restoration",
		}, actor)
		require.NoError(t, err)
	}
}

func TestListSecondPage(t *testing.T) {
	svc := NewService(newFakeProjectRepo())
	seedProjects(t, svc, 15)

	items, p, err := svc.List(context.Background(), repositories.ProjectFilter{ActiveOnly: true}, paging.Request{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, items, 5)
	assert.Equal(t, paging.Result{Page: 2, Limit: 10, Total: 15, Pages: 2}, p)
}

func TestListBeyondLastPage(t *testing.T) {
	svc := NewService(newFakeProjectRepo())
	seedProjects(t, svc, 15)

	items, p, err := svc.List(context.Background(), repositories.ProjectFilter{}, paging.Request{Page: 5, Limit: 10})
	require.NoError(t, err)

	// Empty page, but the total still reflects the full match count.
	assert.Empty(t, items)
	assert.Equal(t, 15, p.Total)
	assert.Equal(t, 2, p.Pages)
}

func TestListAppliesDefaults(t *testing.T) {
	svc := NewService(newFakeProjectRepo())
	seedProjects(t, svc, 15)

	items, p, err := svc.List(context.Background(), repositories.ProjectFilter{}, paging.Request{})
	require.NoError(t, err)

	assert.Len(t, items, paging.DefaultLimit)
	assert.Equal(t, 1, p.Page)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := NewService(repo)
	actor := uuid.New()

	created, err := svc.Create(context.Background(), CreateInput{
		Title:    "Riverside Pavilion",
		Summary:  "original summary",
		Category: "construction",
	}, actor)
	require.NoError(t, err)

	newTitle := "Riverside Pavilion Phase II"
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{Title: &newTitle}, actor)
	require.NoError(t, err)

	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "original summary", updated.Summary)
	assert.Equal(t, "construction", updated.Category)
}

func TestUpdateNotFound(t *testing.T) {
	svc := NewService(newFakeProjectRepo())
	title := "x"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Title: &title}, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
