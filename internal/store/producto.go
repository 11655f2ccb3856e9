// internal/store/producto.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EmmanuelSan01/SportBot/internal/models"
)

type ProductoStore struct {
	db *sql.DB
}

func NewProductoStore(db *sql.DB) *ProductoStore {
	return &ProductoStore{db: db}
}

const productoColumns = `p.id, p.categoria_id, p.nombre, p.descripcion, p.precio,
	       p.disponible, p.fecha_creacion, p.actualizado_en, c.nombre`

func scanProducto(row interface{ Scan(...interface{}) error }) (*models.Producto, error) {
	var p models.Producto
	var descripcion, categoriaNombre sql.NullString
	err := row.Scan(
		&p.ID, &p.CategoriaID, &p.Nombre, &descripcion, &p.Precio,
		&p.Disponible, &p.FechaCreacion, &p.ActualizadoEn, &categoriaNombre,
	)
	if err != nil {
		return nil, err
	}
	p.Descripcion = descripcion.String
	p.CategoriaNombre = categoriaNombre.String
	return &p, nil
}

func (s *ProductoStore) List(ctx context.Context) ([]*models.Producto, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productoColumns+`
		FROM producto p
		LEFT JOIN categoria c ON p.categoria_id = c.id
		ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	defer rows.Close()

	var productos []*models.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
		}
		productos = append(productos, p)
	}
	return productos, rows.Err()
}

// ListModifiedSince returns products whose actualizado_en is strictly after
// the given timestamp. A zero timestamp returns every row.
func (s *ProductoStore) ListModifiedSince(ctx context.Context, since time.Time) ([]*models.Producto, error) {
	if since.IsZero() {
		return s.List(ctx)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productoColumns+`
		FROM producto p
		LEFT JOIN categoria c ON p.categoria_id = c.id
		WHERE p.actualizado_en > $1
		ORDER BY p.id`, since)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	defer rows.Close()

	var productos []*models.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
		}
		productos = append(productos, p)
	}
	return productos, rows.Err()
}

func (s *ProductoStore) ListByCategoria(ctx context.Context, categoriaID int64) ([]*models.Producto, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productoColumns+`
		FROM producto p
		LEFT JOIN categoria c ON p.categoria_id = c.id
		WHERE p.categoria_id = $1
		ORDER BY p.id`, categoriaID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	defer rows.Close()

	var productos []*models.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
		}
		productos = append(productos, p)
	}
	return productos, rows.Err()
}

func (s *ProductoStore) Get(ctx context.Context, id int64) (*models.Producto, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+productoColumns+`
		FROM producto p
		LEFT JOIN categoria c ON p.categoria_id = c.id
		WHERE p.id = $1`, id)
	p, err := scanProducto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	return p, nil
}

func (s *ProductoStore) Create(ctx context.Context, in *models.ProductoCreate) (*models.Producto, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO producto (categoria_id, nombre, descripcion, precio, disponible)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, fecha_creacion, actualizado_en`,
		in.CategoriaID, in.Nombre, nullString(in.Descripcion), in.Precio, in.Disponible)

	p := &models.Producto{
		CategoriaID: in.CategoriaID,
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Precio:      in.Precio,
		Disponible:  in.Disponible,
	}
	if err := row.Scan(&p.ID, &p.FechaCreacion, &p.ActualizadoEn); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	return p, nil
}

func (s *ProductoStore) Update(ctx context.Context, id int64, in *models.ProductoUpdate) (*models.Producto, error) {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	appendSet := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if in.CategoriaID != nil {
		appendSet("categoria_id", *in.CategoriaID)
	}
	if in.Nombre != nil {
		appendSet("nombre", *in.Nombre)
	}
	if in.Descripcion != nil {
		appendSet("descripcion", nullString(*in.Descripcion))
	}
	if in.Precio != nil {
		appendSet("precio", *in.Precio)
	}
	if in.Disponible != nil {
		appendSet("disponible", *in.Disponible)
	}
	if len(sets) == 0 {
		return s.Get(ctx, id)
	}
	sets = append(sets, "actualizado_en = NOW()")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE producto SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *ProductoStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM producto WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
