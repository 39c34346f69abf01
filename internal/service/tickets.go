package service

import (
	"context"
	"errors"
	"time"

	"eventops-service/internal/broker"
	"eventops-service/internal/models"
	"eventops-service/internal/redisclient"
	"eventops-service/internal/store"
	"eventops-service/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TicketService handles ticket CRUD and the check-in composite action.
type TicketService struct {
	store          *store.Store
	redis          *redisclient.Client
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewTicketService creates a new ticket service
func NewTicketService(
	store *store.Store,
	redis *redisclient.Client,
	eventPublisher *broker.EventPublisher,
) *TicketService {
	return &TicketService{
		store:          store,
		redis:          redis,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateIngressoRequest represents a request to create a ticket
type CreateIngressoRequest struct {
	Numero         string          `json:"numero" binding:"required"`
	Lote           string          `json:"lote"`
	ValorPago      decimal.Decimal `json:"valor_pago"`
	Vendedor       string          `json:"vendedor"`
	FormaPagamento string          `json:"forma_pagamento" binding:"required"`
}

// List returns tickets, optionally filtered by number.
func (s *TicketService) List(ctx context.Context, search string) ([]models.Ingresso, error) {
	return s.store.GetIngressos(ctx, search)
}

// Create creates a ticket in the not-entered state.
func (s *TicketService) Create(ctx context.Context, req *CreateIngressoRequest) (*models.Ingresso, error) {
	if !models.ValidFormaPagamento(req.FormaPagamento) {
		return nil, NewValidationError("forma_pagamento", "unknown payment method")
	}
	if req.ValorPago.IsNegative() {
		return nil, NewValidationError("valor_pago", "must not be negative")
	}

	ingresso := &models.Ingresso{
		Numero:         req.Numero,
		Lote:           req.Lote,
		ValorPago:      req.ValorPago,
		Vendedor:       req.Vendedor,
		FormaPagamento: req.FormaPagamento,
	}
	if err := s.store.CreateIngresso(ctx, ingresso); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	return ingresso, nil
}

// CheckIn stamps entry time and wristband on a ticket. A ticket enters
// exactly once; a repeated attempt is rejected and changes nothing.
func (s *TicketService) CheckIn(ctx context.Context, id int64, pulseira string) (*models.Ingresso, error) {
	ctx, span := util.StartSpan(ctx, "TicketService.CheckIn")
	defer span.End()

	if !models.ValidPulseira(pulseira) {
		util.CheckinsFailedTotal.WithLabelValues("invalid_pulseira").Inc()
		return nil, NewValidationError("pulseira", "unknown wristband")
	}

	ingresso, err := s.store.CheckInTx(ctx, id, pulseira, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyCheckedIn):
			util.CheckinsFailedTotal.WithLabelValues("already_checked_in").Inc()
		case errors.Is(err, store.ErrNotFound):
			util.CheckinsFailedTotal.WithLabelValues("not_found").Inc()
		default:
			util.CheckinsFailedTotal.WithLabelValues("db_error").Inc()
		}
		return nil, err
	}

	util.CheckinsTotal.Inc()
	s.logger.Info("Ticket checked in",
		zap.Int64("ingresso_id", ingresso.ID),
		zap.String("numero", ingresso.Numero),
		zap.String("pulseira", pulseira))

	s.invalidateDashboard(ctx)

	event := &models.TicketCheckedInEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeTicketCheckedIn,
			Timestamp: time.Now(),
		},
		IngressoID:  ingresso.ID,
		Numero:      ingresso.Numero,
		Pulseira:    pulseira,
		HoraEntrada: *ingresso.HoraEntrada,
	}
	if err := s.eventPublisher.PublishTicketCheckedIn(ctx, event); err != nil {
		s.logger.Error("Failed to publish TicketCheckedIn event", zap.Error(err))
	}

	return ingresso, nil
}

// Delete removes a ticket.
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteIngresso(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *TicketService) invalidateDashboard(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", zap.Error(err))
	}
}
