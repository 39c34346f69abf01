package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eventops-service/internal/models"

	"github.com/lib/pq"
)

// mesaRow is the raw table shape; garrafas is a Postgres text array.
type mesaRow struct {
	ID        int64          `db:"id"`
	Nome      string         `db:"nome"`
	Garcom    string         `db:"garcom"`
	Garrafas  pq.StringArray `db:"garrafas"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r *mesaRow) toModel() models.MesaCamarote {
	return models.MesaCamarote{
		ID:        r.ID,
		Nome:      r.Nome,
		Garcom:    r.Garcom,
		Garrafas:  []string(r.Garrafas),
		Pessoas:   []models.Pessoa{},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// GetMesas retrieves all VIP tables with their members loaded.
func (s *Store) GetMesas(ctx context.Context) ([]models.MesaCamarote, error) {
	var rows []mesaRow
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM mesas_camarote ORDER BY id")
	if err != nil {
		return nil, err
	}

	mesas := make([]models.MesaCamarote, 0, len(rows))
	for i := range rows {
		mesa := rows[i].toModel()
		pessoas, err := s.getMesaPessoas(ctx, mesa.ID)
		if err != nil {
			return nil, err
		}
		mesa.Pessoas = pessoas
		mesas = append(mesas, mesa)
	}
	return mesas, nil
}

// GetMesaByID retrieves a VIP table with its members loaded.
func (s *Store) GetMesaByID(ctx context.Context, id int64) (*models.MesaCamarote, error) {
	var row mesaRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM mesas_camarote WHERE id = $1", id)
	if err != nil {
		return nil, wrapNoRows(err, "mesa", id)
	}

	mesa := row.toModel()
	pessoas, err := s.getMesaPessoas(ctx, id)
	if err != nil {
		return nil, err
	}
	mesa.Pessoas = pessoas
	return &mesa, nil
}

func (s *Store) getMesaPessoas(ctx context.Context, mesaID int64) ([]models.Pessoa, error) {
	pessoas := []models.Pessoa{}
	err := s.db.SelectContext(ctx, &pessoas, `
		SELECT p.* FROM pessoas p
		JOIN mesa_camarote_pessoa mp ON mp.pessoa_id = p.id
		WHERE mp.mesa_camarote_id = $1
		ORDER BY mp.id`, mesaID)
	return pessoas, err
}

// CreateMesa creates a VIP table with an empty bottle list.
func (s *Store) CreateMesa(ctx context.Context, m *models.MesaCamarote) error {
	row := mesaRow{}
	err := s.db.GetContext(ctx, &row, `
		INSERT INTO mesas_camarote (nome, garcom, garrafas)
		VALUES ($1, $2, '{}')
		RETURNING *`, m.Nome, m.Garcom)
	if err != nil {
		return err
	}
	*m = row.toModel()
	return nil
}

// UpdateMesa updates a table's name, waiter and bottle list.
func (s *Store) UpdateMesa(ctx context.Context, m *models.MesaCamarote) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE mesas_camarote
		SET nome = $1, garcom = $2, garrafas = $3, updated_at = NOW()
		WHERE id = $4`,
		m.Nome, m.Garcom, pq.StringArray(m.Garrafas), m.ID)
	if err != nil {
		return err
	}
	return requireRow(res, m.ID)
}

// DeleteMesa deletes a table; memberships go with it by cascade.
func (s *Store) DeleteMesa(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM mesas_camarote WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// AddMesaPessoa attaches a person to a table. Both sides are checked so
// a dangling reference never enters the join table.
func (s *Store) AddMesaPessoa(ctx context.Context, mesaID, pessoaID int64) error {
	exists, err := s.PessoaExists(ctx, pessoaID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("pessoa %d: %w", pessoaID, ErrNotFound)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO mesa_camarote_pessoa (mesa_camarote_id, pessoa_id)
		SELECT $1, $2 WHERE EXISTS (SELECT 1 FROM mesas_camarote WHERE id = $1)
		ON CONFLICT (mesa_camarote_id, pessoa_id) DO NOTHING`,
		mesaID, pessoaID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the mesa is missing or the pair already exists; the
		// person was verified above, so distinguish via the mesa.
		var mesaExists bool
		if err := s.db.GetContext(ctx, &mesaExists,
			"SELECT EXISTS(SELECT 1 FROM mesas_camarote WHERE id = $1)", mesaID); err != nil {
			return err
		}
		if !mesaExists {
			return fmt.Errorf("mesa %d: %w", mesaID, ErrNotFound)
		}
	}
	return nil
}

// RemoveMesaPessoa detaches a person from a table.
func (s *Store) RemoveMesaPessoa(ctx context.Context, mesaID, pessoaID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM mesa_camarote_pessoa
		WHERE mesa_camarote_id = $1 AND pessoa_id = $2`, mesaID, pessoaID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("mesa %d / pessoa %d: %w", mesaID, pessoaID, ErrNotFound)
	}
	return nil
}

// AddGarrafa appends a bottle label to a table's list.
func (s *Store) AddGarrafa(ctx context.Context, mesaID int64, garrafa string) (*models.MesaCamarote, error) {
	var row mesaRow
	err := s.db.GetContext(ctx, &row, `
		UPDATE mesas_camarote
		SET garrafas = array_append(garrafas, $1), updated_at = NOW()
		WHERE id = $2
		RETURNING *`, garrafa, mesaID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("mesa %d: %w", mesaID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	mesa := row.toModel()
	pessoas, err := s.getMesaPessoas(ctx, mesaID)
	if err != nil {
		return nil, err
	}
	mesa.Pessoas = pessoas
	return &mesa, nil
}
