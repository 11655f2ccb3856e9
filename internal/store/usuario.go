// internal/store/usuario.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/EmmanuelSan01/SportBot/internal/models"
)

type UsuarioStore struct {
	db *sql.DB
}

func NewUsuarioStore(db *sql.DB) *UsuarioStore {
	return &UsuarioStore{db: db}
}

func scanUsuario(row interface{ Scan(...interface{}) error }) (*models.Usuario, error) {
	var u models.Usuario
	var telefono sql.NullString
	err := row.Scan(&u.ID, &u.Nombre, &telefono, &u.FechaCreacion, &u.ActualizadoEn)
	if err != nil {
		return nil, err
	}
	u.Telefono = telefono.String
	return &u, nil
}

func (s *UsuarioStore) List(ctx context.Context) ([]*models.Usuario, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nombre, telefono, fecha_creacion, actualizado_en
		FROM usuario ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	defer rows.Close()

	var usuarios []*models.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

func (s *UsuarioStore) Get(ctx context.Context, id int64) (*models.Usuario, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, nombre, telefono, fecha_creacion, actualizado_en
		FROM usuario WHERE id = $1`, id)
	u, err := scanUsuario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	return u, nil
}

func (s *UsuarioStore) Create(ctx context.Context, in *models.UsuarioCreate) (*models.Usuario, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO usuario (nombre, telefono)
		VALUES ($1, $2)
		RETURNING id, fecha_creacion, actualizado_en`,
		in.Nombre, nullString(in.Telefono))

	u := &models.Usuario{Nombre: in.Nombre, Telefono: in.Telefono}
	if err := row.Scan(&u.ID, &u.FechaCreacion, &u.ActualizadoEn); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	return u, nil
}

func (s *UsuarioStore) Update(ctx context.Context, id int64, in *models.UsuarioUpdate) (*models.Usuario, error) {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	if in.Nombre != nil {
		sets = append(sets, fmt.Sprintf("nombre = $%d", idx))
		args = append(args, *in.Nombre)
		idx++
	}
	if in.Telefono != nil {
		sets = append(sets, fmt.Sprintf("telefono = $%d", idx))
		args = append(args, nullString(*in.Telefono))
		idx++
	}
	if len(sets) == 0 {
		return s.Get(ctx, id)
	}
	sets = append(sets, "actualizado_en = NOW()")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE usuario SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *UsuarioStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM usuario WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
