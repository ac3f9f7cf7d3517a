package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RevokedTokenRepository is the refresh token deny list. Rows outlive the token
// only until PurgeExpired runs.
type RevokedTokenRepository struct {
	DB *pgxpool.Pool
}

func NewRevokedTokenRepository(db *pgxpool.Pool) *RevokedTokenRepository {
	return &RevokedTokenRepository{DB: db}
}

// Revoke is idempotent; revoking an already revoked token is not an error.
func (r *RevokedTokenRepository) Revoke(ctx context.Context, jti string, userID int, expiresAt time.Time) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO revoked_tokens (jti, user_id, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (jti) DO NOTHING
	`, jti, userID, expiresAt)
	return err
}

func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`, jti).Scan(&revoked)
	return revoked, err
}

func (r *RevokedTokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
