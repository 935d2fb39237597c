package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/project"
	"ginsengcms/internal/store/repositories"
)

type projectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) repositories.ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, title, slug, summary, body, category, status, cover_image,
	gallery, is_active, sort_order, created_by, updated_by, created_at, updated_at`

func (r *projectRepository) Save(ctx context.Context, p *project.Project) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			summary = EXCLUDED.summary,
			body = EXCLUDED.body,
			category = EXCLUDED.category,
			status = EXCLUDED.status,
			cover_image = EXCLUDED.cover_image,
			gallery = EXCLUDED.gallery,
			is_active = EXCLUDED.is_active,
			sort_order = EXCLUDED.sort_order,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.Title, p.Slug, p.Summary, p.Body, p.Category, string(p.Status),
		p.CoverImage, p.Gallery, p.IsActive, p.SortOrder, p.CreatedBy, p.UpdatedBy,
		p.CreatedAt, p.UpdatedAt)
	return translate("project save", err)
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	row := r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

func (r *projectRepository) FindBySlug(ctx context.Context, slug string) (*project.Project, error) {
	row := r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug = $1`, slug)
	return scanProject(row)
}

func (r *projectRepository) List(ctx context.Context, f repositories.ProjectFilter, page paging.Request) ([]*project.Project, int, error) {
	var sf sqlFilter
	if f.ActiveOnly {
		sf.add("is_active = $%d", true)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		sf.add("(title ILIKE $%d OR summary ILIKE $%d)", p, p)
	}
	if f.Category != "" {
		sf.add("category = $%d", f.Category)
	}
	if f.Status != "" {
		sf.add("status = $%d", f.Status)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM projects`+sf.where(), sf.args...).Scan(&total); err != nil {
		return nil, 0, translate("project count", err)
	}

	frag, args := sf.paged(page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+projectColumns+` FROM projects`+sf.where()+
		` ORDER BY sort_order ASC, created_at DESC`+frag, args...)
	if err != nil {
		return nil, 0, translate("project list", err)
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	return projects, total, translate("project list", rows.Err())
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return translate("project delete", err)
	}
	if tag.RowsAffected() == 0 {
		return translate("project delete", pgx.ErrNoRows)
	}
	return nil
}

func scanProject(row pgx.Row) (*project.Project, error) {
	var p project.Project
	var status string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Body, &p.Category, &status,
		&p.CoverImage, &p.Gallery, &p.IsActive, &p.SortOrder, &p.CreatedBy, &p.UpdatedBy,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate("project scan", err)
	}
	p.Status = project.Status(status)
	return &p, nil
}
