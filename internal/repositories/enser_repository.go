package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"property-backend/internal/models"
)

// EnserRepository stores the furniture catalogue and its per-property inventory.
type EnserRepository struct {
	DB *pgxpool.Pool
}

func NewEnserRepository(db *pgxpool.Pool) *EnserRepository {
	return &EnserRepository{DB: db}
}

const enserColumns = `id, name, price, condition`

func scanEnser(row pgx.Row) (*models.Enser, error) {
	e := &models.Enser{}
	err := row.Scan(&e.ID, &e.Name, &e.Price, &e.Condition)
	return e, err
}

func (r *EnserRepository) Create(ctx context.Context, e *models.Enser) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO ensers (name, price, condition) VALUES ($1, $2, $3) RETURNING id
	`, e.Name, e.Price, e.Condition).Scan(&e.ID)
}

func (r *EnserRepository) Get(ctx context.Context, id int) (*models.Enser, error) {
	e, err := scanEnser(r.DB.QueryRow(ctx, `SELECT `+enserColumns+` FROM ensers WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "enser", id)
	}
	return e, nil
}

func (r *EnserRepository) List(ctx context.Context, f models.EnserFilter, opts ListOptions) ([]*models.Enser, int, error) {
	var w whereBuilder
	if f.Condition != "" {
		w.add("condition = ?", f.Condition)
	}
	if f.NameContains != "" {
		w.add("name ILIKE ?", "%"+f.NameContains+"%")
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM ensers`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSQL, args := w.page(opts)
	rows, err := r.DB.Query(ctx, `SELECT `+enserColumns+` FROM ensers`+w.sql()+` ORDER BY name, id`+pageSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ensers []*models.Enser
	for rows.Next() {
		e, err := scanEnser(rows)
		if err != nil {
			return nil, 0, err
		}
		ensers = append(ensers, e)
	}
	return ensers, total, rows.Err()
}

func (r *EnserRepository) Update(ctx context.Context, e *models.Enser) error {
	tag, err := r.DB.Exec(ctx, `UPDATE ensers SET name = $1, price = $2, condition = $3 WHERE id = $4`,
		e.Name, e.Price, e.Condition, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("enser %d: %w", e.ID, ErrNotFound)
	}
	return nil
}

// Delete also removes the enser from every inventory.
func (r *EnserRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM ensers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("enser %d: %w", id, ErrNotFound)
	}
	return nil
}

const inventorySelect = `
	SELECT i.id, i.property_id, i.enser_id, e.name, e.condition, e.price, i.media_url, i.created_at
	FROM enser_inventory i
	JOIN ensers e ON e.id = i.enser_id
`

func scanInventoryItem(row pgx.Row) (*models.InventoryItem, error) {
	it := &models.InventoryItem{}
	err := row.Scan(&it.ID, &it.PropertyID, &it.EnserID, &it.EnserName, &it.Condition, &it.Price, &it.MediaURL, &it.CreatedAt)
	return it, err
}

// AddItem places an enser in a property; each enser appears at most once per property.
func (r *EnserRepository) AddItem(ctx context.Context, it *models.InventoryItem) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO enser_inventory (property_id, enser_id, media_url) VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, it.PropertyID, it.EnserID, it.MediaURL).Scan(&it.ID, &it.CreatedAt)
	switch {
	case IsUniqueViolation(err):
		return fmt.Errorf("enser %d in property %d: %w", it.EnserID, it.PropertyID, ErrDuplicate)
	case IsForeignKeyViolation(err):
		return fmt.Errorf("property %d or enser %d: %w", it.PropertyID, it.EnserID, ErrNotFound)
	}
	return err
}

func (r *EnserRepository) GetItem(ctx context.Context, propertyID, id int) (*models.InventoryItem, error) {
	it, err := scanInventoryItem(r.DB.QueryRow(ctx, inventorySelect+` WHERE i.id = $1 AND i.property_id = $2`, id, propertyID))
	if err != nil {
		return nil, notFound(err, "inventory item", id)
	}
	return it, nil
}

func (r *EnserRepository) ListInventory(ctx context.Context, propertyID int, opts ListOptions) ([]*models.InventoryItem, int, error) {
	var w whereBuilder
	w.add("i.property_id = ?", propertyID)

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM enser_inventory i`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSQL, args := w.page(opts)
	rows, err := r.DB.Query(ctx, inventorySelect+w.sql()+` ORDER BY e.name, i.id`+pageSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

func (r *EnserRepository) RemoveItem(ctx context.Context, propertyID, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM enser_inventory WHERE id = $1 AND property_id = $2`, id, propertyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory item %d: %w", id, ErrNotFound)
	}
	return nil
}
