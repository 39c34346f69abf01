package store

import (
	"context"
	"database/sql"
	"fmt"

	"eventops-service/internal/models"
)

// GetPessoas retrieves people, newest first, optionally filtered by a
// search term matched against name, document and instagram handle.
func (s *Store) GetPessoas(ctx context.Context, search string) ([]models.Pessoa, error) {
	var pessoas []models.Pessoa
	if search == "" {
		err := s.db.SelectContext(ctx, &pessoas,
			"SELECT * FROM pessoas ORDER BY created_at DESC, id DESC")
		return pessoas, err
	}

	pattern := "%" + search + "%"
	err := s.db.SelectContext(ctx, &pessoas, `
		SELECT * FROM pessoas
		WHERE nome ILIKE $1 OR cpf_rg ILIKE $1 OR instagram ILIKE $1
		ORDER BY created_at DESC, id DESC`, pattern)
	return pessoas, err
}

// GetPessoaByID retrieves a person by ID
func (s *Store) GetPessoaByID(ctx context.Context, id int64) (*models.Pessoa, error) {
	var pessoa models.Pessoa
	err := s.db.GetContext(ctx, &pessoa, "SELECT * FROM pessoas WHERE id = $1", id)
	if err != nil {
		return nil, wrapNoRows(err, "pessoa", id)
	}
	return &pessoa, nil
}

// CreatePessoa creates a person
func (s *Store) CreatePessoa(ctx context.Context, p *models.Pessoa) error {
	query := `
		INSERT INTO pessoas (nome, instagram, cpf_rg, data_nascimento, tipo_ingresso, observacao)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, p, query,
		p.Nome, p.Instagram, p.CpfRg, p.DataNascimento, p.TipoIngresso, p.Observacao)
}

// UpdatePessoa updates a person
func (s *Store) UpdatePessoa(ctx context.Context, p *models.Pessoa) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE pessoas
		SET nome = $1, instagram = $2, cpf_rg = $3, data_nascimento = $4,
		    tipo_ingresso = $5, observacao = $6, updated_at = NOW()
		WHERE id = $7`,
		p.Nome, p.Instagram, p.CpfRg, p.DataNascimento, p.TipoIngresso, p.Observacao, p.ID)
	if err != nil {
		return err
	}
	return requireRow(res, p.ID)
}

// DeletePessoa deletes a person. Sales referencing them keep the row
// with pessoa_id set to NULL; table memberships are removed by cascade.
func (s *Store) DeletePessoa(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM pessoas WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// PessoaExists reports whether a person row exists.
func (s *Store) PessoaExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM pessoas WHERE id = $1)", id)
	return exists, err
}

func wrapNoRows(err error, entity string, id int64) error {
	if err == sql.ErrNoRows {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return err
}
