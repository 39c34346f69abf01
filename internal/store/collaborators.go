package store

import (
	"context"

	"eventops-service/internal/models"
)

// GetColaboradores retrieves staff, optionally filtered by a name/phone
// search term and by role. An empty or "todos" role matches everyone.
func (s *Store) GetColaboradores(ctx context.Context, search, cargo string) ([]models.Colaborador, error) {
	query := "SELECT * FROM colaboradores WHERE 1=1"
	args := []interface{}{}

	if search != "" {
		args = append(args, "%"+search+"%")
		query += " AND (nome ILIKE $1 OR telefone ILIKE $1)"
	}
	if cargo != "" && cargo != "todos" {
		args = append(args, cargo)
		if len(args) == 1 {
			query += " AND cargo = $1"
		} else {
			query += " AND cargo = $2"
		}
	}
	query += " ORDER BY id"

	var colaboradores []models.Colaborador
	err := s.db.SelectContext(ctx, &colaboradores, query, args...)
	return colaboradores, err
}

// GetColaboradorByID retrieves a staff member by ID
func (s *Store) GetColaboradorByID(ctx context.Context, id int64) (*models.Colaborador, error) {
	var colaborador models.Colaborador
	err := s.db.GetContext(ctx, &colaborador, "SELECT * FROM colaboradores WHERE id = $1", id)
	if err != nil {
		return nil, wrapNoRows(err, "colaborador", id)
	}
	return &colaborador, nil
}

// CreateColaborador creates a staff member
func (s *Store) CreateColaborador(ctx context.Context, c *models.Colaborador) error {
	query := `
		INSERT INTO colaboradores (nome, cargo, telefone, ativo)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, c, query, c.Nome, c.Cargo, c.Telefone, c.Ativo)
}

// UpdateColaborador updates a staff member
func (s *Store) UpdateColaborador(ctx context.Context, c *models.Colaborador) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE colaboradores
		SET nome = $1, cargo = $2, telefone = $3, ativo = $4, updated_at = NOW()
		WHERE id = $5`,
		c.Nome, c.Cargo, c.Telefone, c.Ativo, c.ID)
	if err != nil {
		return err
	}
	return requireRow(res, c.ID)
}

// DeleteColaborador deletes a staff member
func (s *Store) DeleteColaborador(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM colaboradores WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}
