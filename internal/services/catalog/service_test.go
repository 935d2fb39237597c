package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/product"
	"ginsengcms/internal/store/repositories"
)

// --- in-memory fakes ---

type fakeProductRepo struct {
	products map[uuid.UUID]*product.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*product.Product)}
}

func (r *fakeProductRepo) Save(_ context.Context, p *product.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*product.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindBySlug(_ context.Context, slug string) (*product.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *fakeProductRepo) List(_ context.Context, f repositories.ProductFilter, page paging.Request) ([]*product.Product, int, error) {
	var all []*product.Product
	for _, p := range r.products {
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		all = append(all, p)
	}
	total := len(all)
	off := page.Offset()
	if off >= total {
		return nil, total, nil
	}
	end := off + page.Limit
	if end > total {
		end = total
	}
	return all[off:end], total, nil
}

func (r *fakeProductRepo) AppendImage(_ context.Context, id uuid.UUID, url string) error {
	p, ok := r.products[id]
	if !ok {
		return apperr.ErrNotFound
	}
	p.Images = append(p.Images, url)
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int, error) {
	n := 0
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) CountByOrigin(_ context.Context, originID uuid.UUID) (int, error) {
	n := 0
	for _, p := range r.products {
		if p.OriginID == originID {
			n++
		}
	}
	return n, nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*product.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*product.Category)}
}

func (r *fakeCategoryRepo) Save(_ context.Context, c *product.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*product.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*product.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *fakeCategoryRepo) ListAll(_ context.Context) ([]*product.Category, error) {
	var out []*product.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type fakeOriginRepo struct {
	origins map[uuid.UUID]*product.Origin
}

func newFakeOriginRepo() *fakeOriginRepo {
	return &fakeOriginRepo{origins: make(map[uuid.UUID]*product.Origin)}
}

func (r *fakeOriginRepo) Save(_ context.Context, o *product.Origin) error {
	cp := *o
	r.origins[o.ID] = &cp
	return nil
}

func (r *fakeOriginRepo) FindByID(_ context.Context, id uuid.UUID) (*product.Origin, error) {
	o, ok := r.origins[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOriginRepo) ListAll(_ context.Context) ([]*product.Origin, error) {
	var out []*product.Origin
	for _, o := range r.origins {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOriginRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.origins[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.origins, id)
	return nil
}

func newTestService() (*Service, *fakeProductRepo, *fakeCategoryRepo, *fakeOriginRepo) {
	products := newFakeProductRepo()
	categories := newFakeCategoryRepo()
	origins := newFakeOriginRepo()
	return NewService(products, categories, origins), products, categories, origins
}

// --- tests ---

func TestCreateProductRoundTrip(t *testing.T) {
	svc, _, _, _ := newTestService()
	actor := uuid.New()

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:        "Korean Red Ginseng Extract",
		Description: "6-year roots",
		Grade:       product.GradeHeaven,
		Price:       45000,
		WeightGrams: 240,
		Stock:       12,
	}, actor)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "korean-red-ginseng-extract", created.Slug)

	got, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, product.GradeHeaven, got.Grade)
	assert.Equal(t, product.Money(45000), got.Price)
	assert.Equal(t, 240, got.WeightGrams)
	assert.Equal(t, 12, got.Stock)
	assert.Equal(t, actor, got.CreatedBy)
	assert.True(t, got.IsActive)
}

// An unknown reference id in the request body is the caller's mistake,
// so it reads as a validation failure rather than a missing resource.
func TestCreateProductUnknownCategory(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Sliced Ginseng",
		CategoryID: uuid.NewString(),
		Price:      1000,
	}, uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "unknown category id")
}

func TestUpdateProductUnknownOrigin(t *testing.T) {
	svc, _, _, _ := newTestService()
	actor := uuid.New()

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:  "Sliced Ginseng",
		Price: 1000,
	}, actor)
	require.NoError(t, err)

	bogus := uuid.NewString()
	_, err = svc.UpdateProduct(context.Background(), created.ID, UpdateProductInput{OriginID: &bogus}, actor)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "unknown origin id")
}

func TestDeleteCategoryGuard(t *testing.T) {
	svc, productRepo, _, _ := newTestService()
	actor := uuid.New()

	cat, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Extracts"})
	require.NoError(t, err)

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Extract Gold",
		CategoryID: cat.ID.String(),
		Price:      1000,
	}, actor)
	require.NoError(t, err)

	// in use: delete must refuse and keep the category
	err = svc.DeleteCategory(context.Background(), cat.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInUse)
	assert.Contains(t, err.Error(), "1 associated products")
	_, err = svc.categories.FindByID(context.Background(), cat.ID)
	assert.NoError(t, err, "category must survive a refused delete")

	// free: delete succeeds
	require.NoError(t, productRepo.Delete(context.Background(), created.ID))
	require.NoError(t, svc.DeleteCategory(context.Background(), cat.ID))
	_, err = svc.categories.FindByID(context.Background(), cat.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteOriginGuard(t *testing.T) {
	svc, _, _, _ := newTestService()
	actor := uuid.New()

	origin, err := svc.CreateOrigin(context.Background(), OriginInput{Name: "Geumsan", Country: "South Korea"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{
		Name:     "Roots",
		OriginID: origin.ID.String(),
	}, actor)
	require.NoError(t, err)

	err = svc.DeleteOrigin(context.Background(), origin.ID)
	assert.ErrorIs(t, err, apperr.ErrInUse)
}

func TestAddProductImage(t *testing.T) {
	svc, productRepo, _, _ := newTestService()

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Powder"}, uuid.New())
	require.NoError(t, err)

	require.NoError(t, svc.AddProductImage(context.Background(), created.ID, "https://cdn.example.com/a.jpg"))
	require.NoError(t, svc.AddProductImage(context.Background(), created.ID, "https://cdn.example.com/b.jpg"))

	got, err := productRepo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, got.Images)

	err = svc.AddProductImage(context.Background(), created.ID, "  ")
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateProductNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductInput{}, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
