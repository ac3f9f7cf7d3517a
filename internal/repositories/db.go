package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Postgres SQLSTATE codes mapped at this layer.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ListOptions is a 1-based page request.
type ListOptions struct {
	Page     int
	PageSize int
}

func (o ListOptions) limitOffset() (int, int) {
	size := o.PageSize
	if size <= 0 {
		size = 20
	}
	page := o.Page
	if page <= 0 {
		page = 1
	}
	return size, (page - 1) * size
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// constraintName returns the violated constraint, or "" for non-Postgres errors.
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func IsUniqueViolation(err error) bool     { return pgCode(err) == pgUniqueViolation }
func IsForeignKeyViolation(err error) bool { return pgCode(err) == pgForeignKeyViolation }
func IsExclusionViolation(err error) bool  { return pgCode(err) == pgExclusionViolation }

func notFound(err error, what string, id int) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return err
}

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

// addRaw appends a condition without arguments.
func (w *whereBuilder) addRaw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the clause and full argument list.
func (w *whereBuilder) page(opts ListOptions) (string, []any) {
	limit, offset := opts.limitOffset()
	args := append(append([]any(nil), w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)+1, len(w.args)+2), args
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
