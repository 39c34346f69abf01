package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eventops-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// GetProdutoByID retrieves a product by ID
func (s *Store) GetProdutoByID(ctx context.Context, id int64) (*models.Produto, error) {
	var produto models.Produto
	err := s.db.GetContext(ctx, &produto, "SELECT * FROM produtos WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("produto %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &produto, nil
}

// GetProdutos retrieves all products
func (s *Store) GetProdutos(ctx context.Context) ([]models.Produto, error) {
	var produtos []models.Produto
	err := s.db.SelectContext(ctx, &produtos, "SELECT * FROM produtos ORDER BY id")
	return produtos, err
}

// CreateProduto creates a product. Current stock starts equal to the
// initial stock.
func (s *Store) CreateProduto(ctx context.Context, p *models.Produto) error {
	query := `
		INSERT INTO produtos (nome, custo, preco_venda, estoque_inicial, estoque_atual)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, estoque_atual, created_at, updated_at`

	return s.db.GetContext(ctx, p, query,
		p.Nome, p.Custo, p.PrecoVenda, p.EstoqueInicial)
}

// UpdateProduto applies a partial update to a product row.
func (s *Store) UpdateProduto(ctx context.Context, p *models.Produto) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE produtos
		SET nome = $1, custo = $2, preco_venda = $3,
		    estoque_inicial = $4, estoque_atual = $5, updated_at = NOW()
		WHERE id = $6`,
		p.Nome, p.Custo, p.PrecoVenda, p.EstoqueInicial, p.EstoqueAtual, p.ID)
	if err != nil {
		return err
	}
	return requireRow(res, p.ID)
}

// DeleteProduto deletes a product and, via FK cascade, its sales.
func (s *Store) DeleteProduto(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM produtos WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return nil
}
