package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"ginsengcms/internal/domain/company"
	"ginsengcms/internal/store/repositories"
)

type companyRepository struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) repositories.CompanyRepository {
	return &companyRepository{db: db}
}

// Get returns the single company profile row.
func (r *companyRepository) Get(ctx context.Context) (*company.Info, error) {
	var info company.Info
	err := r.db.QueryRow(ctx, `
		SELECT id, name, tagline, about, address, phone, email, founded_year,
		       social_links, updated_by, updated_at
		FROM company_info
		LIMIT 1`).
		Scan(&info.ID, &info.Name, &info.Tagline, &info.About, &info.Address,
			&info.Phone, &info.Email, &info.FoundedYear, &info.SocialLinks,
			&info.UpdatedBy, &info.UpdatedAt)
	if err != nil {
		return nil, translate("company get", err)
	}
	return &info, nil
}

func (r *companyRepository) Save(ctx context.Context, info *company.Info) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO company_info (id, name, tagline, about, address, phone, email,
			founded_year, social_links, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			tagline = EXCLUDED.tagline,
			about = EXCLUDED.about,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			founded_year = EXCLUDED.founded_year,
			social_links = EXCLUDED.social_links,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at`,
		info.ID, info.Name, info.Tagline, info.About, info.Address, info.Phone,
		info.Email, info.FoundedYear, info.SocialLinks, info.UpdatedBy, info.UpdatedAt)
	return translate("company save", err)
}
