package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/core/slug"
	"ginsengcms/internal/domain/product"
	"ginsengcms/internal/store/repositories"
)

// Service manages products and their category/origin references.
type Service struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	origins    repositories.OriginRepository
}

func NewService(
	products repositories.ProductRepository,
	categories repositories.CategoryRepository,
	origins repositories.OriginRepository,
) *Service {
	return &Service{products: products, categories: categories, origins: origins}
}

// CreateProductInput is the typed payload for product creation.
type CreateProductInput struct {
	Name        string        `json:"name" validate:"required,min=2,max=200"`
	Slug        string        `json:"slug" validate:"omitempty,max=200"`
	Description string        `json:"description"`
	Grade       product.Grade `json:"grade" validate:"omitempty,oneof=heaven earth good"`
	CategoryID  string        `json:"categoryId" validate:"omitempty,uuid"`
	OriginID    string        `json:"originId" validate:"omitempty,uuid"`
	Price       int64         `json:"price" validate:"gte=0"`
	WeightGrams int           `json:"weightGrams" validate:"gte=0"`
	Stock       int           `json:"stock" validate:"gte=0"`
	IsFeatured  bool          `json:"isFeatured"`
}

// UpdateProductInput carries optional field updates; nil means unchanged.
type UpdateProductInput struct {
	Name        *string        `json:"name" validate:"omitempty,min=2,max=200"`
	Slug        *string        `json:"slug" validate:"omitempty,max=200"`
	Description *string        `json:"description"`
	Grade       *product.Grade `json:"grade" validate:"omitempty,oneof=heaven earth good"`
	CategoryID  *string        `json:"categoryId" validate:"omitempty,uuid"`
	OriginID    *string        `json:"originId" validate:"omitempty,uuid"`
	Price       *int64         `json:"price" validate:"omitempty,gte=0"`
	WeightGrams *int           `json:"weightGrams" validate:"omitempty,gte=0"`
	Stock       *int           `json:"stock" validate:"omitempty,gte=0"`
	IsActive    *bool          `json:"isActive"`
	IsFeatured  *bool          `json:"isFeatured"`
}

// resolveRef maps a missing referenced row onto a validation error;
// the reference came from the request body, so reporting it as a
// missing resource would point at the wrong thing.
func resolveRef(kind string, err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.Validation("unknown %s id", kind)
	}
	return fmt.Errorf("resolve %s: %w", kind, err)
}

func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput, actor uuid.UUID) (*product.Product, error) {
	p, err := product.New(in.Name, in.Slug, in.Description, in.Grade, product.Money(in.Price), in.WeightGrams, actor)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	p.Stock = in.Stock
	p.IsFeatured = in.IsFeatured

	// Reference ids must point at existing rows; a malformed id was
	// already rejected by request validation.
	if in.CategoryID != "" {
		id, err := uuid.Parse(in.CategoryID)
		if err != nil {
			return nil, apperr.Validation("invalid category id")
		}
		if _, err := s.categories.FindByID(ctx, id); err != nil {
			return nil, resolveRef("category", err)
		}
		p.CategoryID = id
	}
	if in.OriginID != "" {
		id, err := uuid.Parse(in.OriginID)
		if err != nil {
			return nil, apperr.Validation("invalid origin id")
		}
		if _, err := s.origins.FindByID(ctx, id); err != nil {
			return nil, resolveRef("origin", err)
		}
		p.OriginID = id
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return s.products.FindByID(ctx, p.ID)
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *Service) GetProductBySlug(ctx context.Context, slg string) (*product.Product, error) {
	return s.products.FindBySlug(ctx, slg)
}

func (s *Service) ListProducts(ctx context.Context, f repositories.ProductFilter, page paging.Request) ([]*product.Product, paging.Result, error) {
	page.Normalize()
	items, total, err := s.products.List(ctx, f, page)
	if err != nil {
		return nil, paging.Result{}, err
	}
	return items, paging.NewResult(page, total), nil
}

func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput, actor uuid.UUID) (*product.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Slug != nil && *in.Slug != "" {
		p.Slug = slug.Make(*in.Slug)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Grade != nil {
		if *in.Grade != "" && !in.Grade.Valid() {
			return nil, apperr.Validation("unknown grade: %q", *in.Grade)
		}
		p.Grade = *in.Grade
	}
	if in.CategoryID != nil {
		if *in.CategoryID == "" {
			p.CategoryID = uuid.Nil
		} else {
			cid, err := uuid.Parse(*in.CategoryID)
			if err != nil {
				return nil, apperr.Validation("invalid category id")
			}
			if _, err := s.categories.FindByID(ctx, cid); err != nil {
				return nil, resolveRef("category", err)
			}
			p.CategoryID = cid
		}
	}
	if in.OriginID != nil {
		if *in.OriginID == "" {
			p.OriginID = uuid.Nil
		} else {
			oid, err := uuid.Parse(*in.OriginID)
			if err != nil {
				return nil, apperr.Validation("invalid origin id")
			}
			if _, err := s.origins.FindByID(ctx, oid); err != nil {
				return nil, resolveRef("origin", err)
			}
			p.OriginID = oid
		}
	}
	if in.Price != nil {
		p.Price = product.Money(*in.Price)
	}
	if in.WeightGrams != nil {
		p.WeightGrams = *in.WeightGrams
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	p.UpdatedBy = actor
	p.UpdatedAt = time.Now().UTC()
	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return s.products.FindByID(ctx, id)
}

// AddProductImage appends one gallery URL atomically at the store.
func (s *Service) AddProductImage(ctx context.Context, id uuid.UUID, url string) error {
	if strings.TrimSpace(url) == "" {
		return apperr.Validation("image url is required")
	}
	return s.products.AppendImage(ctx, id, url)
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

// --- categories ---

type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Slug        string `json:"slug" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"max=500"`
	SortOrder   int    `json:"sortOrder"`
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*product.Category, error) {
	c, err := product.NewCategory(in.Name, in.Slug, in.Description, in.SortOrder)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	if err := s.categories.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*product.Category, error) {
	return s.categories.ListAll(ctx)
}

func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (*product.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	if in.Slug != "" {
		c.Slug = slug.Make(in.Slug)
	}
	c.Description = in.Description
	c.SortOrder = in.SortOrder
	c.UpdatedAt = time.Now().UTC()
	if err := s.categories.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory refuses to remove a category that products still
// reference.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("category has %d associated products: %w", n, apperr.ErrInUse)
	}
	return s.categories.Delete(ctx, id)
}

// --- origins ---

type OriginInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Slug    string `json:"slug" validate:"omitempty,max=100"`
	Region  string `json:"region" validate:"max=100"`
	Country string `json:"country" validate:"required,max=100"`
}

func (s *Service) CreateOrigin(ctx context.Context, in OriginInput) (*product.Origin, error) {
	o, err := product.NewOrigin(in.Name, in.Slug, in.Region, in.Country)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	if err := s.origins.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) ListOrigins(ctx context.Context) ([]*product.Origin, error) {
	return s.origins.ListAll(ctx)
}

func (s *Service) UpdateOrigin(ctx context.Context, id uuid.UUID, in OriginInput) (*product.Origin, error) {
	o, err := s.origins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Name = strings.TrimSpace(in.Name)
	if in.Slug != "" {
		o.Slug = slug.Make(in.Slug)
	}
	o.Region = in.Region
	o.Country = strings.TrimSpace(in.Country)
	o.UpdatedAt = time.Now().UTC()
	if err := s.origins.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// DeleteOrigin refuses to remove an origin that products still
// reference.
func (s *Service) DeleteOrigin(ctx context.Context, id uuid.UUID) error {
	n, err := s.products.CountByOrigin(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("origin has %d associated products: %w", n, apperr.ErrInUse)
	}
	return s.origins.Delete(ctx, id)
}
