package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ginsengcms/internal/domain/product"
	"ginsengcms/internal/store/repositories"
)

type categoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) repositories.CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `id, name, slug, description, sort_order, created_at, updated_at`

func (r *categoryRepository) Save(ctx context.Context, c *product.Category) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO product_categories (`+categoryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			description = EXCLUDED.description,
			sort_order = EXCLUDED.sort_order,
			updated_at = EXCLUDED.updated_at`,
		c.ID, c.Name, c.Slug, c.Description, c.SortOrder, c.CreatedAt, c.UpdatedAt)
	return translate("category save", err)
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*product.Category, error) {
	row := r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM product_categories WHERE id = $1`, id)
	return scanCategory(row)
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*product.Category, error) {
	row := r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM product_categories WHERE slug = $1`, slug)
	return scanCategory(row)
}

func (r *categoryRepository) ListAll(ctx context.Context) ([]*product.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM product_categories
		ORDER BY sort_order ASC, name ASC`)
	if err != nil {
		return nil, translate("category list", err)
	}
	defer rows.Close()

	var cats []*product.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, translate("category list", rows.Err())
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_categories WHERE id = $1`, id)
	if err != nil {
		return translate("category delete", err)
	}
	if tag.RowsAffected() == 0 {
		return translate("category delete", pgx.ErrNoRows)
	}
	return nil
}

func scanCategory(row pgx.Row) (*product.Category, error) {
	var c product.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translate("category scan", err)
	}
	return &c, nil
}
