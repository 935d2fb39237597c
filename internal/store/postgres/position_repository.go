package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/career"
	"ginsengcms/internal/store/repositories"
)

type positionRepository struct {
	db *pgxpool.Pool
}

func NewPositionRepository(db *pgxpool.Pool) repositories.PositionRepository {
	return &positionRepository{db: db}
}

const positionColumns = `id, title, slug, department, location, employment_type, description,
	requirements, is_active, sort_order, closes_at, created_by, updated_by, created_at, updated_at`

func (r *positionRepository) Save(ctx context.Context, p *career.Position) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO job_positions (`+positionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			department = EXCLUDED.department,
			location = EXCLUDED.location,
			employment_type = EXCLUDED.employment_type,
			description = EXCLUDED.description,
			requirements = EXCLUDED.requirements,
			is_active = EXCLUDED.is_active,
			sort_order = EXCLUDED.sort_order,
			closes_at = EXCLUDED.closes_at,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.Title, p.Slug, p.Department, p.Location, p.EmploymentType, p.Description,
		p.Requirements, p.IsActive, p.SortOrder, p.ClosesAt, p.CreatedBy, p.UpdatedBy,
		p.CreatedAt, p.UpdatedAt)
	return translate("position save", err)
}

func (r *positionRepository) FindByID(ctx context.Context, id uuid.UUID) (*career.Position, error) {
	row := r.db.QueryRow(ctx, `SELECT `+positionColumns+` FROM job_positions WHERE id = $1`, id)
	return scanPosition(row)
}

func (r *positionRepository) FindBySlug(ctx context.Context, slug string) (*career.Position, error) {
	row := r.db.QueryRow(ctx, `SELECT `+positionColumns+` FROM job_positions WHERE slug = $1`, slug)
	return scanPosition(row)
}

func (r *positionRepository) List(ctx context.Context, f repositories.PositionFilter, page paging.Request) ([]*career.Position, int, error) {
	var sf sqlFilter
	if f.ActiveOnly {
		sf.add("is_active = $%d", true)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		sf.add("(title ILIKE $%d OR description ILIKE $%d)", p, p)
	}
	if f.Department != "" {
		sf.add("department = $%d", f.Department)
	}
	if f.Location != "" {
		sf.add("location = $%d", f.Location)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM job_positions`+sf.where(), sf.args...).Scan(&total); err != nil {
		return nil, 0, translate("position count", err)
	}

	frag, args := sf.paged(page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+positionColumns+` FROM job_positions`+sf.where()+
		` ORDER BY sort_order ASC, created_at DESC`+frag, args...)
	if err != nil {
		return nil, 0, translate("position list", err)
	}
	defer rows.Close()

	var positions []*career.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, 0, err
		}
		positions = append(positions, p)
	}
	return positions, total, translate("position list", rows.Err())
}

func (r *positionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM job_positions WHERE id = $1`, id)
	if err != nil {
		return translate("position delete", err)
	}
	if tag.RowsAffected() == 0 {
		return translate("position delete", pgx.ErrNoRows)
	}
	return nil
}

func scanPosition(row pgx.Row) (*career.Position, error) {
	var p career.Position
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Department, &p.Location, &p.EmploymentType,
		&p.Description, &p.Requirements, &p.IsActive, &p.SortOrder, &p.ClosesAt,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate("position scan", err)
	}
	return &p, nil
}
