package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventops-service/internal/broker"
	"eventops-service/internal/models"
	"eventops-service/internal/redisclient"
	"eventops-service/internal/store"
	"eventops-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LedgerService owns the stock-affecting pair of operations: recording
// a sale (decrement + insert) and reversing one (credit + delete). The
// database transaction in the store is the atomic unit; the Redis
// mirror, dashboard cache and Kafka feed are updated best effort after
// commit and can never change the outcome.
type LedgerService struct {
	store          *store.Store
	redis          *redisclient.Client
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	store *store.Store,
	redis *redisclient.Client,
	eventPublisher *broker.EventPublisher,
) *LedgerService {
	return &LedgerService{
		store:          store,
		redis:          redis,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// RecordSaleRequest represents a request to record a bar sale
type RecordSaleRequest struct {
	ProdutoID  int64  `json:"produto_id" binding:"required"`
	PessoaID   *int64 `json:"pessoa_id"`
	Vendedor   string `json:"vendedor" binding:"required"`
	Quantidade int    `json:"quantidade" binding:"required,min=1"`
}

// RecordSale validates the request and runs the sale transaction.
func (s *LedgerService) RecordSale(ctx context.Context, req *RecordSaleRequest) (*models.VendaBar, error) {
	ctx, span := util.StartSpan(ctx, "LedgerService.RecordSale")
	defer span.End()

	if req.Quantidade < 1 {
		util.SalesFailedTotal.WithLabelValues("invalid_quantity").Inc()
		return nil, NewValidationError("quantidade", "must be at least 1")
	}

	if req.PessoaID != nil {
		exists, err := s.store.PessoaExists(ctx, *req.PessoaID)
		if err != nil {
			return nil, fmt.Errorf("failed to check pessoa: %w", err)
		}
		if !exists {
			util.SalesFailedTotal.WithLabelValues("pessoa_not_found").Inc()
			return nil, fmt.Errorf("pessoa %d: %w", *req.PessoaID, store.ErrNotFound)
		}
	}

	start := time.Now()
	venda, restante, err := s.store.RecordSaleTx(ctx,
		req.ProdutoID, req.PessoaID, req.Vendedor, req.Quantidade, time.Now())
	util.LedgerTxLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInsufficientStock):
			util.SalesFailedTotal.WithLabelValues("insufficient_stock").Inc()
		case errors.Is(err, store.ErrNotFound):
			util.SalesFailedTotal.WithLabelValues("produto_not_found").Inc()
		default:
			util.SalesFailedTotal.WithLabelValues("db_error").Inc()
		}
		return nil, err
	}

	util.SalesRecordedTotal.Inc()
	s.logger.Info("Sale recorded",
		zap.Int64("venda_id", venda.ID),
		zap.Int64("produto_id", venda.ProdutoID),
		zap.Int("quantidade", venda.Quantidade),
		zap.Int("estoque_restante", restante))

	s.afterSale(ctx, venda, restante, -venda.Quantidade)
	return venda, nil
}

// ReverseSale deletes a sale and credits its quantity back to stock.
func (s *LedgerService) ReverseSale(ctx context.Context, saleID int64) error {
	ctx, span := util.StartSpan(ctx, "LedgerService.ReverseSale")
	defer span.End()

	start := time.Now()
	venda, restante, err := s.store.ReverseSaleTx(ctx, saleID)
	util.LedgerTxLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	util.SalesReversedTotal.Inc()
	s.logger.Info("Sale reversed",
		zap.Int64("venda_id", venda.ID),
		zap.Int64("produto_id", venda.ProdutoID),
		zap.Int("quantidade", venda.Quantidade),
		zap.Int("estoque_restante", restante))

	s.invalidateDashboard(ctx)
	s.adjustMirror(ctx, venda.ProdutoID, venda.Quantidade)

	event := &models.SaleReversedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeSaleReversed,
			Timestamp: time.Now(),
		},
		SaleID:          venda.ID,
		ProdutoID:       venda.ProdutoID,
		Quantidade:      venda.Quantidade,
		EstoqueRestante: restante,
	}
	if err := s.eventPublisher.PublishSaleReversed(ctx, event); err != nil {
		s.logger.Error("Failed to publish SaleReversed event", zap.Error(err))
	}
	return nil
}

// ListSales returns all sales, newest first.
func (s *LedgerService) ListSales(ctx context.Context) ([]models.VendaBar, error) {
	return s.store.GetVendasBar(ctx)
}

// afterSale runs the post-commit side channel for a recorded sale.
func (s *LedgerService) afterSale(ctx context.Context, venda *models.VendaBar, restante, mirrorDelta int) {
	s.invalidateDashboard(ctx)
	s.adjustMirror(ctx, venda.ProdutoID, mirrorDelta)

	event := &models.SaleRecordedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeSaleRecorded,
			Timestamp: time.Now(),
		},
		SaleID:          venda.ID,
		ProdutoID:       venda.ProdutoID,
		PessoaID:        venda.PessoaID,
		Vendedor:        venda.Vendedor,
		Quantidade:      venda.Quantidade,
		ValorTotal:      venda.ValorTotal,
		EstoqueRestante: restante,
	}
	if err := s.eventPublisher.PublishSaleRecorded(ctx, event); err != nil {
		s.logger.Error("Failed to publish SaleRecorded event", zap.Error(err))
	}

	produto, err := s.store.GetProdutoByID(ctx, venda.ProdutoID)
	if err != nil {
		s.logger.Error("Failed to reload produto after sale", zap.Error(err))
		return
	}
	if produto.LowStock() {
		util.LowStockWarningsTotal.Inc()
		s.logger.Warn("Product stock is low",
			zap.Int64("produto_id", produto.ID),
			zap.String("nome", produto.Nome),
			zap.Int("restante", produto.EstoqueAtual))

		lowStock := &models.LowStockEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeLowStock,
				Timestamp: time.Now(),
			},
			ProdutoID: produto.ID,
			Nome:      produto.Nome,
			Restante:  produto.EstoqueAtual,
		}
		if err := s.eventPublisher.PublishLowStock(ctx, lowStock); err != nil {
			s.logger.Error("Failed to publish LowStock event", zap.Error(err))
		}
	}
}

func (s *LedgerService) adjustMirror(ctx context.Context, produtoID int64, delta int) {
	if s.redis == nil {
		return
	}
	if _, err := s.redis.AdjustStock(ctx, produtoID, delta); err != nil {
		s.logger.Warn("Failed to adjust stock mirror",
			zap.Int64("produto_id", produtoID),
			zap.Error(err))
	}
}

func (s *LedgerService) invalidateDashboard(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", zap.Error(err))
	}
}
