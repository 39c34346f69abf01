package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eventops-service/internal/models"
)

// GetIngressos retrieves tickets, newest first, optionally filtered by
// ticket number.
func (s *Store) GetIngressos(ctx context.Context, search string) ([]models.Ingresso, error) {
	var ingressos []models.Ingresso
	if search == "" {
		err := s.db.SelectContext(ctx, &ingressos,
			"SELECT * FROM ingressos ORDER BY created_at DESC, id DESC")
		return ingressos, err
	}

	err := s.db.SelectContext(ctx, &ingressos, `
		SELECT * FROM ingressos
		WHERE numero ILIKE $1
		ORDER BY created_at DESC, id DESC`, "%"+search+"%")
	return ingressos, err
}

// GetIngressoByID retrieves a ticket by ID
func (s *Store) GetIngressoByID(ctx context.Context, id int64) (*models.Ingresso, error) {
	var ingresso models.Ingresso
	err := s.db.GetContext(ctx, &ingresso, "SELECT * FROM ingressos WHERE id = $1", id)
	if err != nil {
		return nil, wrapNoRows(err, "ingresso", id)
	}
	return &ingresso, nil
}

// CreateIngresso creates a ticket in the not-entered state.
func (s *Store) CreateIngresso(ctx context.Context, i *models.Ingresso) error {
	query := `
		INSERT INTO ingressos (numero, lote, valor_pago, vendedor, forma_pagamento)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, entrou, created_at, updated_at`

	return s.db.GetContext(ctx, i, query,
		i.Numero, i.Lote, i.ValorPago, i.Vendedor, i.FormaPagamento)
}

// DeleteIngresso deletes a ticket
func (s *Store) DeleteIngresso(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM ingressos WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// CheckInTx stamps entry time and wristband on a ticket. The ticket row
// is locked so two doormen scanning the same ticket cannot both pass the
// entered check. A second check-in fails with ErrAlreadyCheckedIn and
// changes nothing.
func (s *Store) CheckInTx(ctx context.Context, id int64, pulseira string, now time.Time) (*models.Ingresso, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var ingresso models.Ingresso
	err = tx.GetContext(ctx, &ingresso,
		"SELECT * FROM ingressos WHERE id = $1 FOR UPDATE", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("ingresso %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock ingresso: %w", err)
	}

	if ingresso.Entrou {
		return nil, fmt.Errorf("ingresso %d: %w", id, ErrAlreadyCheckedIn)
	}

	hora := now.Format(models.HoraLayout)
	err = tx.GetContext(ctx, &ingresso, `
		UPDATE ingressos
		SET entrou = TRUE, hora_entrada = $1, pulseira = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING *`, hora, pulseira, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check in ingresso: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &ingresso, nil
}
