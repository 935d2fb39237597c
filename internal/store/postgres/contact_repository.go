package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/contact"
	"ginsengcms/internal/store/repositories"
)

type contactRepository struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) repositories.ContactRepository {
	return &contactRepository{db: db}
}

const contactColumns = `id, name, email, phone, subject, body, status, created_at, updated_at`

func (r *contactRepository) Save(ctx context.Context, m *contact.Message) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO contact_messages (`+contactColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`,
		m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Body, string(m.Status),
		m.CreatedAt, m.UpdatedAt)
	return translate("contact save", err)
}

func (r *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*contact.Message, error) {
	row := r.db.QueryRow(ctx, `SELECT `+contactColumns+` FROM contact_messages WHERE id = $1`, id)
	return scanMessage(row)
}

func (r *contactRepository) List(ctx context.Context, f repositories.ContactFilter, page paging.Request) ([]*contact.Message, int, error) {
	var sf sqlFilter
	if f.Status != "" {
		sf.add("status = $%d", string(f.Status))
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		sf.add("(name ILIKE $%d OR email ILIKE $%d OR subject ILIKE $%d)", p, p, p)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM contact_messages`+sf.where(), sf.args...).Scan(&total); err != nil {
		return nil, 0, translate("contact count", err)
	}

	frag, args := sf.paged(page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+contactColumns+` FROM contact_messages`+sf.where()+
		` ORDER BY created_at DESC`+frag, args...)
	if err != nil {
		return nil, 0, translate("contact list", err)
	}
	defer rows.Close()

	var msgs []*contact.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, err
		}
		msgs = append(msgs, m)
	}
	return msgs, total, translate("contact list", rows.Err())
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return translate("contact delete", err)
	}
	if tag.RowsAffected() == 0 {
		return translate("contact delete", pgx.ErrNoRows)
	}
	return nil
}

func scanMessage(row pgx.Row) (*contact.Message, error) {
	var m contact.Message
	var status string
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Body, &status,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, translate("contact scan", err)
	}
	m.Status = contact.Status(status)
	return &m, nil
}
