package broker

import (
	"context"
	"fmt"

	"eventops-service/internal/models"
)

// EventPublisher publishes domain events to the operations feed. The
// feed is observational: publish failures are logged by callers and
// never affect the outcome of the mutation that produced the event.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishSaleRecorded publishes a SaleRecorded event
func (ep *EventPublisher) PublishSaleRecorded(ctx context.Context, event *models.SaleRecordedEvent) error {
	key := fmt.Sprintf("venda-%d", event.SaleID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishSaleReversed publishes a SaleReversed event
func (ep *EventPublisher) PublishSaleReversed(ctx context.Context, event *models.SaleReversedEvent) error {
	key := fmt.Sprintf("venda-%d", event.SaleID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishTicketCheckedIn publishes a TicketCheckedIn event
func (ep *EventPublisher) PublishTicketCheckedIn(ctx context.Context, event *models.TicketCheckedInEvent) error {
	key := fmt.Sprintf("ingresso-%d", event.IngressoID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishLowStock publishes a LowStock event
func (ep *EventPublisher) PublishLowStock(ctx context.Context, event *models.LowStockEvent) error {
	key := fmt.Sprintf("produto-%d", event.ProdutoID)
	return ep.producer.PublishEvent(ctx, key, event)
}
