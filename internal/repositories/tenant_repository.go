package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"property-backend/internal/models"
)

type TenantRepository struct {
	DB *pgxpool.Pool
}

func NewTenantRepository(db *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{DB: db}
}

const tenantColumns = `id, name, last_name, COALESCE(email, ''), phone1, COALESCE(phone2, ''), COALESCE(observations, ''), created_at`

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	t := &models.Tenant{}
	err := row.Scan(&t.ID, &t.Name, &t.LastName, &t.Email, &t.Phone1, &t.Phone2, &t.Observations, &t.CreatedAt)
	return t, err
}

func (r *TenantRepository) Create(ctx context.Context, t *models.Tenant) error {
	query := `
		INSERT INTO tenants (name, last_name, email, phone1, phone2, observations)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query, t.Name, t.LastName, nullIfEmpty(t.Email), t.Phone1, nullIfEmpty(t.Phone2), nullIfEmpty(t.Observations)).
		Scan(&t.ID, &t.CreatedAt)
}

func (r *TenantRepository) Get(ctx context.Context, id int) (*models.Tenant, error) {
	t, err := scanTenant(r.DB.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "tenant", id)
	}
	return t, nil
}

// List returns tenants ordered by name; search matches name, last name or email.
func (r *TenantRepository) List(ctx context.Context, search string, opts ListOptions) ([]*models.Tenant, int, error) {
	var w whereBuilder
	if search != "" {
		w.add("(name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?)", "%"+search+"%")
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM tenants`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSQL, args := w.page(opts)
	rows, err := r.DB.Query(ctx, `SELECT `+tenantColumns+` FROM tenants`+w.sql()+` ORDER BY name, last_name, id`+pageSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, 0, err
		}
		tenants = append(tenants, t)
	}
	return tenants, total, rows.Err()
}

func (r *TenantRepository) Update(ctx context.Context, t *models.Tenant) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE tenants
		SET name = $1, last_name = $2, email = $3, phone1 = $4, phone2 = $5, observations = $6
		WHERE id = $7
	`, t.Name, t.LastName, nullIfEmpty(t.Email), t.Phone1, nullIfEmpty(t.Phone2), nullIfEmpty(t.Observations), t.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenant %d: %w", t.ID, ErrNotFound)
	}
	return nil
}

func (r *TenantRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenant %d: %w", id, ErrNotFound)
	}
	return nil
}
