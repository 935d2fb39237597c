package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ginsengcms/internal/core/paging"
	"ginsengcms/internal/domain/user"
	"ginsengcms/internal/store/repositories"
)

type userRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) repositories.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, name, hashed_password, role, status, last_login_at, created_at, updated_at`

func (r *userRepository) Save(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			hashed_password = EXCLUDED.hashed_password,
			role = EXCLUDED.role,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`,
		u.ID, u.Email, u.Name, u.HashedPassword, string(u.Role), string(u.Status),
		u.LastLoginAt, u.CreatedAt, u.UpdatedAt)
	return translate("user save", err)
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *userRepository) List(ctx context.Context, f repositories.UserFilter, page paging.Request) ([]*user.User, int, error) {
	var sf sqlFilter
	if f.Search != "" {
		p := likePattern(f.Search)
		sf.add("(email ILIKE $%d OR name ILIKE $%d)", p, p)
	}
	if f.Role != "" {
		sf.add("role = $%d", string(f.Role))
	}
	if f.Status != "" {
		sf.add("status = $%d", string(f.Status))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`+sf.where(), sf.args...).Scan(&total); err != nil {
		return nil, 0, translate("user count", err)
	}

	frag, args := sf.paged(page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users`+sf.where()+
		` ORDER BY created_at DESC`+frag, args...)
	if err != nil {
		return nil, 0, translate("user list", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, translate("user list", rows.Err())
}

func (r *userRepository) TouchLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, id)
	return translate("user touch login", err)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate("user delete", err)
	}
	if tag.RowsAffected() == 0 {
		return translate("user delete", pgx.ErrNoRows)
	}
	return nil
}

func (r *userRepository) CountByRole(ctx context.Context) (map[user.Role]int, error) {
	rows, err := r.db.Query(ctx, `SELECT role, count(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, translate("user stats", err)
	}
	defer rows.Close()

	out := make(map[user.Role]int)
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, translate("user stats", err)
		}
		out[user.Role(role)] = n
	}
	return out, translate("user stats", rows.Err())
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	var role, status string
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.HashedPassword, &role, &status,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, translate("user scan", err)
	}
	u.Role = user.Role(role)
	u.Status = user.Status(status)
	return &u, nil
}
