package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmmanuelSan01/SportBot/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func productoRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "categoria_id", "nombre", "descripcion", "precio",
		"disponible", "fecha_creacion", "actualizado_en", "nombre",
	})
}

// ==========================
// Core Functionality Tests
// ==========================

func TestProductoStore_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := productoRows().
		AddRow(1, 2, "Dobok Premium", "Uniforme de competencia", 180000.0, true, now, now, "Doboks").
		AddRow(2, 2, "Dobok Básico", nil, 100000.0, true, now, now, "Doboks")

	mock.ExpectQuery(`SELECT (.+) FROM producto p`).WillReturnRows(rows)

	store := NewProductoStore(db)
	productos, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, productos, 2)

	assert.Equal(t, "Dobok Premium", productos[0].Nombre)
	assert.Equal(t, "Doboks", productos[0].CategoriaNombre)
	assert.Equal(t, 180000.0, productos[0].Precio)
	assert.Empty(t, productos[1].Descripcion)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductoStore_ListModifiedSince(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	rows := productoRows().
		AddRow(3, 1, "Peto Reversible", "Protección de torso", 140000.0, true, now, now, "Protección")

	mock.ExpectQuery(`WHERE p\.actualizado_en > \$1`).
		WithArgs(since).
		WillReturnRows(rows)

	store := NewProductoStore(db)
	productos, err := store.ListModifiedSince(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, productos, 1)
	assert.Equal(t, int64(3), productos[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductoStore_ListModifiedSince_ZeroTimeFullScan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// A zero since must not filter at all.
	mock.ExpectQuery(`SELECT (.+) FROM producto p LEFT JOIN categoria c (.+) ORDER BY p\.id`).
		WillReturnRows(productoRows())

	store := NewProductoStore(db)
	_, err = store.ListModifiedSince(context.Background(), time.Time{})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductoStore_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE p\.id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(productoRows())

	store := NewProductoStore(db)
	_, err = store.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductoStore_Update_NoFieldsFallsBackToGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`WHERE p\.id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(productoRows().
			AddRow(1, 2, "Dobok Premium", nil, 180000.0, true, now, now, "Doboks"))

	store := NewProductoStore(db)
	p, err := store.Update(context.Background(), 1, &models.ProductoUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Dobok Premium", p.Nombre)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductoStore_Update_PartialSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	precio := 165000.0
	mock.ExpectExec(`UPDATE producto SET precio = \$1, actualizado_en = NOW\(\) WHERE id = \$2`).
		WithArgs(precio, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now()
	mock.ExpectQuery(`WHERE p\.id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(productoRows().
			AddRow(1, 2, "Dobok Premium", nil, precio, true, now, now, "Doboks"))

	store := NewProductoStore(db)
	p, err := store.Update(context.Background(), 1, &models.ProductoUpdate{Precio: &precio})
	require.NoError(t, err)
	assert.Equal(t, precio, p.Precio)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductoStore_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM producto WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewProductoStore(db)
	err = store.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
