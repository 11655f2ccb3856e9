// internal/store/categoria.go
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

type CategoriaStore struct {
	db *sql.DB
}

func NewCategoriaStore(db *sql.DB) *CategoriaStore {
	return &CategoriaStore{db: db}
}

func scanCategoria(row interface{ Scan(...interface{}) error }) (*models.Categoria, error) {
	var c models.Categoria
	var descripcion sql.NullString
	err := row.Scan(&c.ID, &c.Nombre, &descripcion, &c.FechaCreacion, &c.ActualizadoEn)
	if err != nil {
		return nil, err
	}
	c.Descripcion = descripcion.String
	return &c, nil
}

func (s *CategoriaStore) List(ctx context.Context) ([]*models.Categoria, error) {
	return s.list(ctx, time.Time{})
}

func (s *CategoriaStore) ListModifiedSince(ctx context.Context, since time.Time) ([]*models.Categoria, error) {
	return s.list(ctx, since)
}

func (s *CategoriaStore) list(ctx context.Context, since time.Time) ([]*models.Categoria, error) {
	query := `SELECT id, nombre, descripcion, fecha_creacion, actualizado_en FROM categoria`
	args := []interface{}{}
	if !since.IsZero() {
		query += ` WHERE actualizado_en > $1`
		args = append(args, since)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	defer rows.Close()

	var categorias []*models.Categoria
	for rows.Next() {
		c, err := scanCategoria(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
		}
		categorias = append(categorias, c)
	}
	return categorias, rows.Err()
}

func (s *CategoriaStore) Get(ctx context.Context, id int64) (*models.Categoria, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, nombre, descripcion, fecha_creacion, actualizado_en
		FROM categoria WHERE id = $1`, id)
	c, err := scanCategoria(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	return c, nil
}

func (s *CategoriaStore) Create(ctx context.Context, in *models.CategoriaCreate) (*models.Categoria, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categoria (nombre, descripcion)
		VALUES ($1, $2)
		RETURNING id, fecha_creacion, actualizado_en`,
		in.Nombre, nullString(in.Descripcion))

	c := &models.Categoria{Nombre: in.Nombre, Descripcion: in.Descripcion}
	if err := row.Scan(&c.ID, &c.FechaCreacion, &c.ActualizadoEn); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	return c, nil
}

func (s *CategoriaStore) Update(ctx context.Context, id int64, in *models.CategoriaUpdate) (*models.Categoria, error) {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	if in.Nombre != nil {
		sets = append(sets, fmt.Sprintf("nombre = $%d", idx))
		args = append(args, *in.Nombre)
		idx++
	}
	if in.Descripcion != nil {
		sets = append(sets, fmt.Sprintf("descripcion = $%d", idx))
		args = append(args, nullString(*in.Descripcion))
		idx++
	}
	if len(sets) == 0 {
		return s.Get(ctx, id)
	}
	sets = append(sets, "actualizado_en = NOW()")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE categoria SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *CategoriaStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categoria WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
