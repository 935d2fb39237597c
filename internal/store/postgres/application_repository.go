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

type applicationRepository struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) repositories.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, position_id, name, email, phone, cover_letter, resume_url,
	status, created_at, updated_at`

func (r *applicationRepository) Save(ctx context.Context, a *career.Application) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO job_applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			phone = EXCLUDED.phone,
			cover_letter = EXCLUDED.cover_letter,
			resume_url = EXCLUDED.resume_url,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`,
		a.ID, a.PositionID, a.Name, a.Email, a.Phone, a.CoverLetter, a.ResumeURL,
		string(a.Status), a.CreatedAt, a.UpdatedAt)
	return translate("application save", err)
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*career.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *applicationRepository) List(ctx context.Context, f repositories.ApplicationFilter, page paging.Request) ([]*career.Application, int, error) {
	var sf sqlFilter
	if f.PositionID != nil {
		sf.add("position_id = $%d", *f.PositionID)
	}
	if f.Status != "" {
		sf.add("status = $%d", string(f.Status))
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		sf.add("(name ILIKE $%d OR email ILIKE $%d)", p, p)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM job_applications`+sf.where(), sf.args...).Scan(&total); err != nil {
		return nil, 0, translate("application count", err)
	}

	frag, args := sf.paged(page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+applicationColumns+` FROM job_applications`+sf.where()+
		` ORDER BY created_at DESC`+frag, args...)
	if err != nil {
		return nil, 0, translate("application list", err)
	}
	defer rows.Close()

	var apps []*career.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		apps = append(apps, a)
	}
	return apps, total, translate("application list", rows.Err())
}

func (r *applicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
	if err != nil {
		return translate("application delete", err)
	}
	if tag.RowsAffected() == 0 {
		return translate("application delete", pgx.ErrNoRows)
	}
	return nil
}

func scanApplication(row pgx.Row) (*career.Application, error) {
	var a career.Application
	var status string
	err := row.Scan(&a.ID, &a.PositionID, &a.Name, &a.Email, &a.Phone, &a.CoverLetter,
		&a.ResumeURL, &status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, translate("application scan", err)
	}
	a.Status = career.ApplicationStatus(status)
	return &a, nil
}
