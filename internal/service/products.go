package service

import (
	"context"

	"eventops-service/internal/models"
	"eventops-service/internal/redisclient"
	"eventops-service/internal/store"
	"eventops-service/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles bar product CRUD and keeps the Redis stock
// mirror seeded. Stock movement on sales belongs to the LedgerService;
// here estoque_atual only changes through explicit admin edits.
type ProductService struct {
	store  *store.Store
	redis  *redisclient.Client
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store *store.Store, redis *redisclient.Client) *ProductService {
	return &ProductService{
		store:  store,
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// CreateProdutoRequest represents a request to create a product
type CreateProdutoRequest struct {
	Nome           string          `json:"nome" binding:"required"`
	Custo          decimal.Decimal `json:"custo"`
	PrecoVenda     decimal.Decimal `json:"preco_venda"`
	EstoqueInicial int             `json:"estoque_inicial"`
}

// UpdateProdutoRequest represents a request to update a product.
// EstoqueAtual is accepted for admin corrections; the ledger still
// enforces the stock invariant on every sale and reversal.
type UpdateProdutoRequest struct {
	Nome           string          `json:"nome" binding:"required"`
	Custo          decimal.Decimal `json:"custo"`
	PrecoVenda     decimal.Decimal `json:"preco_venda"`
	EstoqueInicial int             `json:"estoque_inicial"`
	EstoqueAtual   *int            `json:"estoque_atual"`
}

// List returns all products.
func (s *ProductService) List(ctx context.Context) ([]models.Produto, error) {
	return s.store.GetProdutos(ctx)
}

// Create adds a product with current stock equal to initial stock.
func (s *ProductService) Create(ctx context.Context, req *CreateProdutoRequest) (*models.Produto, error) {
	if req.EstoqueInicial < 0 {
		return nil, NewValidationError("estoque_inicial", "must not be negative")
	}
	if req.Custo.IsNegative() || req.PrecoVenda.IsNegative() {
		return nil, NewValidationError("custo", "prices must not be negative")
	}

	produto := &models.Produto{
		Nome:           req.Nome,
		Custo:          req.Custo,
		PrecoVenda:     req.PrecoVenda,
		EstoqueInicial: req.EstoqueInicial,
	}
	if err := s.store.CreateProduto(ctx, produto); err != nil {
		return nil, err
	}

	s.seedMirror(ctx, produto.ID, produto.EstoqueAtual)
	s.invalidateDashboard(ctx)
	return produto, nil
}

// Update edits a product.
func (s *ProductService) Update(ctx context.Context, id int64, req *UpdateProdutoRequest) (*models.Produto, error) {
	if req.EstoqueInicial < 0 {
		return nil, NewValidationError("estoque_inicial", "must not be negative")
	}

	existing, err := s.store.GetProdutoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Nome = req.Nome
	existing.Custo = req.Custo
	existing.PrecoVenda = req.PrecoVenda
	existing.EstoqueInicial = req.EstoqueInicial
	if req.EstoqueAtual != nil {
		if *req.EstoqueAtual < 0 || *req.EstoqueAtual > req.EstoqueInicial {
			return nil, NewValidationError("estoque_atual",
				"must be between 0 and estoque_inicial")
		}
		existing.EstoqueAtual = *req.EstoqueAtual
	} else if existing.EstoqueAtual > req.EstoqueInicial {
		existing.EstoqueAtual = req.EstoqueInicial
	}

	if err := s.store.UpdateProduto(ctx, existing); err != nil {
		return nil, err
	}

	s.seedMirror(ctx, existing.ID, existing.EstoqueAtual)
	s.invalidateDashboard(ctx)
	return existing, nil
}

// Delete removes a product and, by cascade, its ledger entries.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteProduto(ctx, id); err != nil {
		return err
	}

	if s.redis != nil {
		if err := s.redis.DeleteStock(ctx, id); err != nil {
			s.logger.Warn("Failed to drop stock mirror", zap.Int64("produto_id", id), zap.Error(err))
		}
	}
	s.invalidateDashboard(ctx)
	return nil
}

// SyncStockMirror seeds the Redis stock mirror from the database. Run
// at startup so mirror reads reflect reality after a restart.
func (s *ProductService) SyncStockMirror(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}

	produtos, err := s.store.GetProdutos(ctx)
	if err != nil {
		return err
	}

	for _, produto := range produtos {
		if err := s.redis.InitStock(ctx, produto.ID, produto.EstoqueAtual); err != nil {
			s.logger.Error("Failed to seed stock mirror",
				zap.Int64("produto_id", produto.ID),
				zap.Error(err))
		}
	}

	s.logger.Info("Stock mirror synced", zap.Int("count", len(produtos)))
	return nil
}

func (s *ProductService) seedMirror(ctx context.Context, produtoID int64, estoque int) {
	if s.redis == nil {
		return
	}
	if err := s.redis.InitStock(ctx, produtoID, estoque); err != nil {
		s.logger.Warn("Failed to seed stock mirror",
			zap.Int64("produto_id", produtoID),
			zap.Error(err))
	}
}

func (s *ProductService) invalidateDashboard(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", zap.Error(err))
	}
}
