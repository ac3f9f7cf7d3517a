package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"property-backend/internal/models"
)

type PropertyLawRepository struct {
	DB *pgxpool.Pool
}

func NewPropertyLawRepository(db *pgxpool.Pool) *PropertyLawRepository {
	return &PropertyLawRepository{DB: db}
}

const propertyLawSelect = `
	SELECT l.id, l.property_id, p.name, l.entity_name, l.document_url, l.original_amount, l.legal_number,
	       l.is_paid, l.created_at
	FROM property_laws l
	JOIN properties p ON p.id = l.property_id
`

func scanPropertyLaw(row pgx.Row) (*models.PropertyLaw, error) {
	l := &models.PropertyLaw{}
	err := row.Scan(&l.ID, &l.PropertyID, &l.PropertyName, &l.EntityName, &l.DocumentURL, &l.OriginalAmount,
		&l.LegalNumber, &l.IsPaid, &l.CreatedAt)
	return l, err
}

func (r *PropertyLawRepository) Create(ctx context.Context, l *models.PropertyLaw) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO property_laws (property_id, entity_name, document_url, original_amount, legal_number, is_paid)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, l.PropertyID, l.EntityName, l.DocumentURL, l.OriginalAmount, l.LegalNumber, l.IsPaid).Scan(&l.ID, &l.CreatedAt)
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("property %d: %w", l.PropertyID, ErrNotFound)
	}
	return err
}

func (r *PropertyLawRepository) Get(ctx context.Context, id int) (*models.PropertyLaw, error) {
	l, err := scanPropertyLaw(r.DB.QueryRow(ctx, propertyLawSelect+` WHERE l.id = $1`, id))
	if err != nil {
		return nil, notFound(err, "property law", id)
	}
	return l, nil
}

func (r *PropertyLawRepository) List(ctx context.Context, f models.PropertyLawFilter, opts ListOptions) ([]*models.PropertyLaw, int, error) {
	var w whereBuilder
	w.addRaw("p.deleted_at IS NULL")
	if f.PropertyID > 0 {
		w.add("l.property_id = ?", f.PropertyID)
	}
	if f.IsPaid != nil {
		w.add("l.is_paid = ?", *f.IsPaid)
	}

	var total int
	countSQL := `SELECT COUNT(*) FROM property_laws l JOIN properties p ON p.id = l.property_id` + w.sql()
	if err := r.DB.QueryRow(ctx, countSQL, w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSQL, args := w.page(opts)
	rows, err := r.DB.Query(ctx, propertyLawSelect+w.sql()+` ORDER BY l.id DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var laws []*models.PropertyLaw
	for rows.Next() {
		l, err := scanPropertyLaw(rows)
		if err != nil {
			return nil, 0, err
		}
		laws = append(laws, l)
	}
	return laws, total, rows.Err()
}

func (r *PropertyLawRepository) Update(ctx context.Context, l *models.PropertyLaw) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE property_laws
		SET property_id = $1, entity_name = $2, document_url = $3, original_amount = $4, legal_number = $5, is_paid = $6
		WHERE id = $7
	`, l.PropertyID, l.EntityName, l.DocumentURL, l.OriginalAmount, l.LegalNumber, l.IsPaid, l.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("property %d: %w", l.PropertyID, ErrNotFound)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("property law %d: %w", l.ID, ErrNotFound)
	}
	return nil
}

func (r *PropertyLawRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM property_laws WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("property law %d: %w", id, ErrNotFound)
	}
	return nil
}
