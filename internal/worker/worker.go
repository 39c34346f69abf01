package worker

import (
	"context"
	"encoding/json"
	"log"

	"eventops-service/internal/broker"
	"eventops-service/internal/models"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventLogWorker tails the operations feed and writes each domain event
// to the structured log. It runs in the standalone eventlog binary, not
// in the API server, which stays purely request/response.
type EventLogWorker struct {
	consumer *broker.Consumer
	logger   *zap.Logger
}

// NewEventLogWorker creates a new event log worker
func NewEventLogWorker(consumer *broker.Consumer, logger *zap.Logger) *EventLogWorker {
	return &EventLogWorker{
		consumer: consumer,
		logger:   logger,
	}
}

// Start starts the worker
func (w *EventLogWorker) Start(ctx context.Context) error {
	log.Println("Starting event log worker...")
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

// Stop stops the worker
func (w *EventLogWorker) Stop() error {
	log.Println("Stopping event log worker...")
	return w.consumer.Close()
}

func (w *EventLogWorker) handleMessage(ctx context.Context, msg kafka.Message) error {
	var base models.BaseEvent
	if err := json.Unmarshal(msg.Value, &base); err != nil {
		w.logger.Error("Failed to unmarshal event", zap.Error(err))
		return err
	}

	switch base.EventType {
	case models.EventTypeSaleRecorded:
		var event models.SaleRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		w.logger.Info("sale recorded",
			zap.Int64("venda_id", event.SaleID),
			zap.Int64("produto_id", event.ProdutoID),
			zap.Int("quantidade", event.Quantidade),
			zap.String("valor_total", event.ValorTotal.String()),
			zap.Int("estoque_restante", event.EstoqueRestante))

	case models.EventTypeSaleReversed:
		var event models.SaleReversedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		w.logger.Info("sale reversed",
			zap.Int64("venda_id", event.SaleID),
			zap.Int64("produto_id", event.ProdutoID),
			zap.Int("quantidade", event.Quantidade),
			zap.Int("estoque_restante", event.EstoqueRestante))

	case models.EventTypeTicketCheckedIn:
		var event models.TicketCheckedInEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		w.logger.Info("ticket checked in",
			zap.Int64("ingresso_id", event.IngressoID),
			zap.String("numero", event.Numero),
			zap.String("pulseira", event.Pulseira),
			zap.String("hora_entrada", event.HoraEntrada))

	case models.EventTypeLowStock:
		var event models.LowStockEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		w.logger.Warn("low stock",
			zap.Int64("produto_id", event.ProdutoID),
			zap.String("nome", event.Nome),
			zap.Int("restante", event.Restante))

	default:
		w.logger.Info("event", zap.String("type", base.EventType))
	}

	return nil
}
