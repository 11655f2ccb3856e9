// internal/store/promocion.go
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

type PromocionStore struct {
	db *sql.DB
}

func NewPromocionStore(db *sql.DB) *PromocionStore {
	return &PromocionStore{db: db}
}

const promocionColumns = `p.id, p.producto_id, p.titulo, p.descripcion, p.descuento,
	       p.activa, p.fecha_creacion, p.actualizado_en, pr.nombre`

func scanPromocion(row interface{ Scan(...interface{}) error }) (*models.Promocion, error) {
	var p models.Promocion
	var descripcion, productoNombre sql.NullString
	err := row.Scan(
		&p.ID, &p.ProductoID, &p.Titulo, &descripcion, &p.Descuento,
		&p.Activa, &p.FechaCreacion, &p.ActualizadoEn, &productoNombre,
	)
	if err != nil {
		return nil, err
	}
	p.Descripcion = descripcion.String
	p.ProductoNombre = productoNombre.String
	return &p, nil
}

func (s *PromocionStore) List(ctx context.Context) ([]*models.Promocion, error) {
	return s.list(ctx, time.Time{})
}

func (s *PromocionStore) ListModifiedSince(ctx context.Context, since time.Time) ([]*models.Promocion, error) {
	return s.list(ctx, since)
}

func (s *PromocionStore) list(ctx context.Context, since time.Time) ([]*models.Promocion, error) {
	query := `
		SELECT ` + promocionColumns + `
		FROM promocion p
		LEFT JOIN producto pr ON p.producto_id = pr.id`
	args := []interface{}{}
	if !since.IsZero() {
		query += ` WHERE p.actualizado_en > $1`
		args = append(args, since)
	}
	query += ` ORDER BY p.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	defer rows.Close()

	var promociones []*models.Promocion
	for rows.Next() {
		p, err := scanPromocion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
		}
		promociones = append(promociones, p)
	}
	return promociones, rows.Err()
}

func (s *PromocionStore) Get(ctx context.Context, id int64) (*models.Promocion, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+promocionColumns+`
		FROM promocion p
		LEFT JOIN producto pr ON p.producto_id = pr.id
		WHERE p.id = $1`, id)
	p, err := scanPromocion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	return p, nil
}

func (s *PromocionStore) Create(ctx context.Context, in *models.PromocionCreate) (*models.Promocion, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO promocion (producto_id, titulo, descripcion, descuento, activa)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, fecha_creacion, actualizado_en`,
		in.ProductoID, in.Titulo, nullString(in.Descripcion), in.Descuento, in.Activa)

	p := &models.Promocion{
		ProductoID:  in.ProductoID,
		Titulo:      in.Titulo,
		Descripcion: in.Descripcion,
		Descuento:   in.Descuento,
		Activa:      in.Activa,
	}
	if err := row.Scan(&p.ID, &p.FechaCreacion, &p.ActualizadoEn); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	return p, nil
}

func (s *PromocionStore) Update(ctx context.Context, id int64, in *models.PromocionUpdate) (*models.Promocion, error) {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	appendSet := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if in.ProductoID != nil {
		appendSet("producto_id", *in.ProductoID)
	}
	if in.Titulo != nil {
		appendSet("titulo", *in.Titulo)
	}
	if in.Descripcion != nil {
		appendSet("descripcion", nullString(*in.Descripcion))
	}
	if in.Descuento != nil {
		appendSet("descuento", *in.Descuento)
	}
	if in.Activa != nil {
		appendSet("activa", *in.Activa)
	}
	if len(sets) == 0 {
		return s.Get(ctx, id)
	}
	sets = append(sets, "actualizado_en = NOW()")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE promocion SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *PromocionStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM promocion WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
