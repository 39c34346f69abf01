package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eventops-service/internal/models"

	"github.com/shopspring/decimal"
)

// GetVendasBar retrieves all bar sales, newest first.
func (s *Store) GetVendasBar(ctx context.Context) ([]models.VendaBar, error) {
	var vendas []models.VendaBar
	err := s.db.SelectContext(ctx, &vendas,
		"SELECT * FROM vendas_bar ORDER BY created_at DESC, id DESC")
	return vendas, err
}

// GetVendaBarByID retrieves a sale by ID
func (s *Store) GetVendaBarByID(ctx context.Context, id int64) (*models.VendaBar, error) {
	var venda models.VendaBar
	err := s.db.GetContext(ctx, &venda, "SELECT * FROM vendas_bar WHERE id = $1", id)
	if err != nil {
		return nil, wrapNoRows(err, "venda", id)
	}
	return &venda, nil
}

// RecordSaleTx records a bar sale as one atomic unit: the product row is
// locked (FOR UPDATE), the stock check runs under that lock, stock is
// decremented and the sale row inserted, then the transaction commits.
// Two concurrent sales on the same product can never overdraw stock
// together. The sale total is the product's price at sale time and is
// never recomputed afterwards.
//
// Returns the inserted sale and the product's remaining stock.
func (s *Store) RecordSaleTx(ctx context.Context, produtoID int64, pessoaID *int64, vendedor string, quantidade int, now time.Time) (*models.VendaBar, int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var produto models.Produto
	err = tx.GetContext(ctx, &produto,
		"SELECT * FROM produtos WHERE id = $1 FOR UPDATE", produtoID)
	if err == sql.ErrNoRows {
		return nil, 0, fmt.Errorf("produto %d: %w", produtoID, ErrNotFound)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to lock produto: %w", err)
	}

	if produto.EstoqueAtual < quantidade {
		return nil, 0, fmt.Errorf("produto %d: estoque %d, pedido %d: %w",
			produtoID, produto.EstoqueAtual, quantidade, ErrInsufficientStock)
	}

	restante := produto.EstoqueAtual - quantidade
	_, err = tx.ExecContext(ctx,
		"UPDATE produtos SET estoque_atual = $1, updated_at = NOW() WHERE id = $2",
		restante, produtoID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decrement estoque: %w", err)
	}

	venda := models.VendaBar{
		ProdutoID:  produtoID,
		PessoaID:   pessoaID,
		Vendedor:   vendedor,
		Quantidade: quantidade,
		ValorTotal: produto.PrecoVenda.Mul(decimal.NewFromInt(int64(quantidade))),
		Hora:       now.Format(models.HoraLayout),
	}
	err = tx.GetContext(ctx, &venda, `
		INSERT INTO vendas_bar (produto_id, pessoa_id, vendedor, quantidade, valor_total, hora)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		venda.ProdutoID, venda.PessoaID, venda.Vendedor, venda.Quantidade,
		venda.ValorTotal, venda.Hora)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to insert venda: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return &venda, restante, nil
}

// ReverseSaleTx deletes a sale and credits its quantity back to the
// product in the same transaction, so a crash can neither double-credit
// stock nor orphan the sale row. Stock is clamped at estoque_inicial in
// case the initial stock was edited down since the sale. Reversing an
// already-reversed sale fails with ErrNotFound.
//
// Returns the reversed sale and the product's stock after the credit.
func (s *Store) ReverseSaleTx(ctx context.Context, saleID int64) (*models.VendaBar, int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var venda models.VendaBar
	err = tx.GetContext(ctx, &venda,
		"SELECT * FROM vendas_bar WHERE id = $1 FOR UPDATE", saleID)
	if err == sql.ErrNoRows {
		return nil, 0, fmt.Errorf("venda %d: %w", saleID, ErrNotFound)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to lock venda: %w", err)
	}

	var restante int
	err = tx.GetContext(ctx, &restante, `
		UPDATE produtos
		SET estoque_atual = LEAST(estoque_inicial, estoque_atual + $1), updated_at = NOW()
		WHERE id = $2
		RETURNING estoque_atual`, venda.Quantidade, venda.ProdutoID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to credit estoque: %w", err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM vendas_bar WHERE id = $1", saleID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to delete venda: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return &venda, restante, nil
}
