package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productColumns() []string {
	return []string{"id", "name", "description", "price", "category", "created_at", "updated_at"}
}

// Search must rank inside the query, before LIMIT cuts the result: an
// exact name match has to survive truncation even when the substring
// matches alone would fill the page alphabetically ahead of it.
func TestSearch_RanksInQueryBeforeLimit(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(productColumns()).
		AddRow(9, "Widget", "exact match", 9.99, "Tools", now, now).
		AddRow(1, "Widget Pro", "prefix match", 19.99, "Tools", now, now).
		AddRow(2, "Alpha Widget", "substring match", 29.99, "Tools", now, now)

	mock.ExpectQuery(`ORDER BY CASE`).
		WithArgs("%widget%", "widget", "widget", 2).
		WillReturnRows(rows)

	repo := NewProductRepo(db)
	out, err := repo.Search(context.Background(), "Widget", 2)
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, "Widget", out[0].Name)
	assert.Equal(t, "exact match", out[0].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_ScansTotalFromEveryRow(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	cols := append(productColumns(), "total_count")
	rows := sqlmock.NewRows(cols).
		AddRow(1, "Widget", nil, 9.99, "Tools", now, now, 23).
		AddRow(2, "Gadget", "g", 19.99, "Tools", now, now, 23)

	mock.ExpectQuery(`CALL sp_get_products`).
		WithArgs(2, 10, nil, nil).
		WillReturnRows(rows)

	repo := NewProductRepo(db)
	out, total, err := repo.List(context.Background(), ProductQuery{Page: 2, PageSize: 10})
	require.NoError(t, err)

	assert.Len(t, out, 2)
	assert.Equal(t, 23, total)
	assert.Equal(t, "", out[0].Description, "NULL description scans to empty string")
	assert.NoError(t, mock.ExpectationsWereMet())
}
