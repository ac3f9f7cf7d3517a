package repositories

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"property-backend/internal/models"
)

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	require.Equal(t, "", w.sql())

	w.add("o.property_id = ?", 3)
	w.add("o.entity_name ILIKE ?", "%gas%")
	require.Equal(t, " WHERE o.property_id = $1 AND o.entity_name ILIKE $2", w.sql())

	clause, args := w.page(ListOptions{Page: 3, PageSize: 10})
	require.Equal(t, " LIMIT $3 OFFSET $4", clause)
	require.Equal(t, []any{3, "%gas%", 10, 20}, args)
	require.Len(t, w.args, 2)
}

func TestListOptionsDefaults(t *testing.T) {
	limit, offset := ListOptions{}.limitOffset()
	require.Equal(t, 20, limit)
	require.Equal(t, 0, offset)
}

func TestPgErrorClassification(t *testing.T) {
	require.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.True(t, IsExclusionViolation(&pgconn.PgError{Code: "23P01"}))
	require.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23P01"}))
	require.False(t, IsUniqueViolation(nil))
}

func TestWhereBuilderRawConditionKeepsNumbering(t *testing.T) {
	var w whereBuilder
	w.addRaw("p.deleted_at IS NULL")
	w.add("l.is_paid = ?", true)
	require.Equal(t, " WHERE p.deleted_at IS NULL AND l.is_paid = $1", w.sql())
}

func TestObligationWriteErrorNamesTheMissingReference(t *testing.T) {
	o := &models.Obligation{PropertyID: 4, ObligationType: "water"}

	err := obligationWriteError(&pgconn.PgError{Code: "23503", ConstraintName: obligationTypeFK}, o)
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), `obligation type "water"`)

	err = obligationWriteError(&pgconn.PgError{Code: "23503", ConstraintName: "obligations_property_id_fkey"}, o)
	require.Contains(t, err.Error(), "property 4")

	require.NoError(t, obligationWriteError(nil, o))
}
