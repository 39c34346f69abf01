package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeSaleRecorded    = "BAR_SALE_RECORDED"
	EventTypeSaleReversed    = "BAR_SALE_REVERSED"
	EventTypeTicketCheckedIn = "TICKET_CHECKED_IN"
	EventTypeLowStock        = "PRODUCT_LOW_STOCK"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// SaleRecordedEvent published after a bar sale commits
type SaleRecordedEvent struct {
	BaseEvent
	SaleID          int64           `json:"sale_id"`
	ProdutoID       int64           `json:"produto_id"`
	PessoaID        *int64          `json:"pessoa_id,omitempty"`
	Vendedor        string          `json:"vendedor,omitempty"`
	Quantidade      int             `json:"quantidade"`
	ValorTotal      decimal.Decimal `json:"valor_total"`
	EstoqueRestante int             `json:"estoque_restante"`
}

// SaleReversedEvent published after a sale deletion restores stock
type SaleReversedEvent struct {
	BaseEvent
	SaleID          int64 `json:"sale_id"`
	ProdutoID       int64 `json:"produto_id"`
	Quantidade      int   `json:"quantidade"`
	EstoqueRestante int   `json:"estoque_restante"`
}

// TicketCheckedInEvent published after a ticket check-in commits
type TicketCheckedInEvent struct {
	BaseEvent
	IngressoID  int64  `json:"ingresso_id"`
	Numero      string `json:"numero"`
	Pulseira    string `json:"pulseira"`
	HoraEntrada string `json:"hora_entrada"`
}

// LowStockEvent published when a sale pushes a product under 20% stock
type LowStockEvent struct {
	BaseEvent
	ProdutoID int64  `json:"produto_id"`
	Nome      string `json:"nome"`
	Restante  int    `json:"restante"`
}
