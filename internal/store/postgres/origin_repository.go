package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ginsengcms/internal/domain/product"
	"ginsengcms/internal/store/repositories"
)

type originRepository struct {
	db *pgxpool.Pool
}

func NewOriginRepository(db *pgxpool.Pool) repositories.OriginRepository {
	return &originRepository{db: db}
}

const originColumns = `id, name, slug, region, country, created_at, updated_at`

func (r *originRepository) Save(ctx context.Context, o *product.Origin) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO product_origins (`+originColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			region = EXCLUDED.region,
			country = EXCLUDED.country,
			updated_at = EXCLUDED.updated_at`,
		o.ID, o.Name, o.Slug, o.Region, o.Country, o.CreatedAt, o.UpdatedAt)
	return translate("origin save", err)
}

func (r *originRepository) FindByID(ctx context.Context, id uuid.UUID) (*product.Origin, error) {
	row := r.db.QueryRow(ctx, `SELECT `+originColumns+` FROM product_origins WHERE id = $1`, id)
	return scanOrigin(row)
}

func (r *originRepository) ListAll(ctx context.Context) ([]*product.Origin, error) {
	rows, err := r.db.Query(ctx, `SELECT `+originColumns+` FROM product_origins ORDER BY name ASC`)
	if err != nil {
		return nil, translate("origin list", err)
	}
	defer rows.Close()

	var origins []*product.Origin
	for rows.Next() {
		o, err := scanOrigin(rows)
		if err != nil {
			return nil, err
		}
		origins = append(origins, o)
	}
	return origins, translate("origin list", rows.Err())
}

func (r *originRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_origins WHERE id = $1`, id)
	if err != nil {
		return translate("origin delete", err)
	}
	if tag.RowsAffected() == 0 {
		return translate("origin delete", pgx.ErrNoRows)
	}
	return nil
}

func scanOrigin(row pgx.Row) (*product.Origin, error) {
	var o product.Origin
	err := row.Scan(&o.ID, &o.Name, &o.Slug, &o.Region, &o.Country, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, translate("origin scan", err)
	}
	return &o, nil
}
