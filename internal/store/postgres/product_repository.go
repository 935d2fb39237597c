package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/product"
	"ginsengcms/internal/store/repositories"
)

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) repositories.ProductRepository {
	return &productRepository{db: db}
}

// selectProducts joins categories and origins so reads come back
// populated in one query.
const selectProducts = `
	SELECT p.id, p.name, p.slug, p.description, p.grade, p.category_id, p.origin_id,
	       p.price, p.weight_grams, p.stock, p.images, p.is_active, p.is_featured,
	       p.created_by, p.updated_by, p.created_at, p.updated_at,
	       c.id, c.name, c.slug, c.description, c.sort_order, c.created_at, c.updated_at,
	       o.id, o.name, o.slug, o.region, o.country, o.created_at, o.updated_at
	FROM products p
	LEFT JOIN product_categories c ON c.id = p.category_id
	LEFT JOIN product_origins o ON o.id = p.origin_id`

func (r *productRepository) Save(ctx context.Context, p *product.Product) error {
	var categoryID, originID *uuid.UUID
	if p.CategoryID != uuid.Nil {
		categoryID = &p.CategoryID
	}
	if p.OriginID != uuid.Nil {
		originID = &p.OriginID
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, slug, description, grade, category_id, origin_id,
			price, weight_grams, stock, images, is_active, is_featured,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			description = EXCLUDED.description,
			grade = EXCLUDED.grade,
			category_id = EXCLUDED.category_id,
			origin_id = EXCLUDED.origin_id,
			price = EXCLUDED.price,
			weight_grams = EXCLUDED.weight_grams,
			stock = EXCLUDED.stock,
			images = EXCLUDED.images,
			is_active = EXCLUDED.is_active,
			is_featured = EXCLUDED.is_featured,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.Name, p.Slug, p.Description, string(p.Grade), categoryID, originID,
		int64(p.Price), p.WeightGrams, p.Stock, p.Images, p.IsActive, p.IsFeatured,
		p.CreatedBy, p.UpdatedBy, p.CreatedAt, p.UpdatedAt)
	return translate("product save", err)
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	row := r.db.QueryRow(ctx, selectProducts+` WHERE p.id = $1`, id)
	return scanProduct(row)
}

func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*product.Product, error) {
	row := r.db.QueryRow(ctx, selectProducts+` WHERE p.slug = $1`, slug)
	return scanProduct(row)
}

func (r *productRepository) List(ctx context.Context, f repositories.ProductFilter, page paging.Request) ([]*product.Product, int, error) {
	var sf sqlFilter
	if f.ActiveOnly {
		sf.add("p.is_active = $%d", true)
	}
	if f.Search != "" {
		pat := likePattern(f.Search)
		sf.add("(p.name ILIKE $%d OR p.description ILIKE $%d)", pat, pat)
	}
	if f.Grade != "" {
		sf.add("p.grade = $%d", string(f.Grade))
	}
	if f.CategoryID != nil {
		sf.add("p.category_id = $%d", *f.CategoryID)
	}
	if f.OriginID != nil {
		sf.add("p.origin_id = $%d", *f.OriginID)
	}
	if f.PriceMin != nil {
		sf.add("p.price >= $%d", *f.PriceMin)
	}
	if f.PriceMax != nil {
		sf.add("p.price <= $%d", *f.PriceMax)
	}
	if f.WeightMin != nil {
		sf.add("p.weight_grams >= $%d", *f.WeightMin)
	}
	if f.WeightMax != nil {
		sf.add("p.weight_grams <= $%d", *f.WeightMax)
	}
	if f.Featured != nil {
		sf.add("p.is_featured = $%d", *f.Featured)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM products p`+sf.where(), sf.args...).Scan(&total); err != nil {
		return nil, 0, translate("product count", err)
	}

	frag, args := sf.paged(page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, selectProducts+sf.where()+
		` ORDER BY p.created_at DESC`+frag, args...)
	if err != nil {
		return nil, 0, translate("product list", err)
	}
	defer rows.Close()

	var products []*product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, translate("product list", rows.Err())
}

// AppendImage adds one gallery URL in a single statement so concurrent
// appends cannot lose updates.
func (r *productRepository) AppendImage(ctx context.Context, id uuid.UUID, url string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		   SET images = array_append(images, $1), updated_at = now()
		 WHERE id = $2`, url, id)
	if err != nil {
		return translate("product append image", err)
	}
	if tag.RowsAffected() == 0 {
		return translate("product append image", pgx.ErrNoRows)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translate("product delete", err)
	}
	if tag.RowsAffected() == 0 {
		return translate("product delete", pgx.ErrNoRows)
	}
	return nil
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n)
	return n, translate("product count by category", err)
}

func (r *productRepository) CountByOrigin(ctx context.Context, originID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM products WHERE origin_id = $1`, originID).Scan(&n)
	return n, translate("product count by origin", err)
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	var grade string
	var categoryID, originID *uuid.UUID

	// Joined columns are NULL when the reference is absent.
	var cID, oID *uuid.UUID
	var cName, cSlug, cDesc *string
	var cSort *int
	var cCreated, cUpdated *time.Time
	var oName, oSlug, oRegion, oCountry *string
	var oCreated, oUpdated *time.Time

	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &grade, &categoryID, &originID,
		&p.Price, &p.WeightGrams, &p.Stock, &p.Images, &p.IsActive, &p.IsFeatured,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
		&cID, &cName, &cSlug, &cDesc, &cSort, &cCreated, &cUpdated,
		&oID, &oName, &oSlug, &oRegion, &oCountry, &oCreated, &oUpdated)
	if err != nil {
		return nil, translate("product scan", err)
	}

	p.Grade = product.Grade(grade)
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	if originID != nil {
		p.OriginID = *originID
	}
	if cID != nil {
		p.Category = &product.Category{
			ID: *cID, Name: *cName, Slug: *cSlug, Description: *cDesc,
			SortOrder: *cSort, CreatedAt: *cCreated, UpdatedAt: *cUpdated,
		}
	}
	if oID != nil {
		p.Origin = &product.Origin{
			ID: *oID, Name: *oName, Slug: *oSlug, Region: *oRegion,
			Country: *oCountry, CreatedAt: *oCreated, UpdatedAt: *oUpdated,
		}
	}
	return &p, nil
}
