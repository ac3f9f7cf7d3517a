package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"property-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, name, email, password_hash, role, tenant_id, is_active, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.TenantID, &u.IsActive, &u.CreatedAt)
	return u, err
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, tenant_id, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, is_active, created_at
	`
	err := r.DB.QueryRow(ctx, query, u.Name, strings.ToLower(u.Email), u.PasswordHash, u.Role, u.TenantID).
		Scan(&u.ID, &u.IsActive, &u.CreatedAt)
	if IsUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", u.Email, ErrDuplicate)
	}
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("tenant %v: %w", u.TenantID, ErrNotFound)
	}
	return err
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email)))
	if err != nil {
		return nil, notFound(err, "user", 0)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) SetActive(ctx context.Context, id int, active bool) error {
	tag, err := r.DB.Exec(ctx, `UPDATE users SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

// CountAdmins counts active admin accounts.
func (r *UserRepository) CountAdmins(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'admin' AND is_active`).Scan(&n)
	return n, err
}
