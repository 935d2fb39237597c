package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/news"
	"ginsengcms/internal/store/repositories"
)

type newsRepository struct {
	db *pgxpool.Pool
}

func NewNewsRepository(db *pgxpool.Pool) repositories.NewsRepository {
	return &newsRepository{db: db}
}

const newsColumns = `id, title, slug, excerpt, body, category, cover_image, author_id,
	author_name, is_published, published_at, view_count, created_at, updated_at`

func (r *newsRepository) Save(ctx context.Context, a *news.Article) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO news_articles (`+newsColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			excerpt = EXCLUDED.excerpt,
			body = EXCLUDED.body,
			category = EXCLUDED.category,
			cover_image = EXCLUDED.cover_image,
			author_name = EXCLUDED.author_name,
			is_published = EXCLUDED.is_published,
			published_at = EXCLUDED.published_at,
			updated_at = EXCLUDED.updated_at`,
		a.ID, a.Title, a.Slug, a.Excerpt, a.Body, string(a.Category), a.CoverImage,
		a.AuthorID, a.AuthorName, a.IsPublished, a.PublishedAt, a.ViewCount,
		a.CreatedAt, a.UpdatedAt)
	return translate("news save", err)
}

func (r *newsRepository) FindByID(ctx context.Context, id uuid.UUID) (*news.Article, error) {
	row := r.db.QueryRow(ctx, `SELECT `+newsColumns+` FROM news_articles WHERE id = $1`, id)
	return scanArticle(row)
}

func (r *newsRepository) FindBySlug(ctx context.Context, slug string) (*news.Article, error) {
	row := r.db.QueryRow(ctx, `SELECT `+newsColumns+` FROM news_articles WHERE slug = $1`, slug)
	return scanArticle(row)
}

func (r *newsRepository) List(ctx context.Context, f repositories.NewsFilter, page paging.Request) ([]*news.Article, int, error) {
	var sf sqlFilter
	if f.PublishedOnly {
		sf.add("is_published = $%d", true)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		sf.add("(title ILIKE $%d OR excerpt ILIKE $%d)", p, p)
	}
	if f.Category != "" {
		sf.add("category = $%d", string(f.Category))
	}
	if f.AuthorID != nil {
		sf.add("author_id = $%d", *f.AuthorID)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM news_articles`+sf.where(), sf.args...).Scan(&total); err != nil {
		return nil, 0, translate("news count", err)
	}

	frag, args := sf.paged(page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+newsColumns+` FROM news_articles`+sf.where()+
		` ORDER BY created_at DESC`+frag, args...)
	if err != nil {
		return nil, 0, translate("news list", err)
	}
	defer rows.Close()

	var articles []*news.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, a)
	}
	return articles, total, translate("news list", rows.Err())
}

// IncrementViews bumps the counter in one statement so concurrent reads
// never lose counts.
func (r *newsRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE news_articles SET view_count = view_count + 1 WHERE id = $1`, id)
	return translate("news increment views", err)
}

func (r *newsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM news_articles WHERE id = $1`, id)
	if err != nil {
		return translate("news delete", err)
	}
	if tag.RowsAffected() == 0 {
		return translate("news delete", pgx.ErrNoRows)
	}
	return nil
}

func scanArticle(row pgx.Row) (*news.Article, error) {
	var a news.Article
	var category string
	err := row.Scan(&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Body, &category, &a.CoverImage,
		&a.AuthorID, &a.AuthorName, &a.IsPublished, &a.PublishedAt, &a.ViewCount,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, translate("news scan", err)
	}
	a.Category = news.Category(category)
	return &a, nil
}
