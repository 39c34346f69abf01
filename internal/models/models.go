package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pessoa is a registered guest.
type Pessoa struct {
	ID             int64      `db:"id" json:"id"`
	Nome           string     `db:"nome" json:"nome"`
	Instagram      string     `db:"instagram" json:"instagram,omitempty"`
	CpfRg          string     `db:"cpf_rg" json:"cpf_rg,omitempty"`
	DataNascimento *time.Time `db:"data_nascimento" json:"data_nascimento,omitempty"`
	TipoIngresso   string     `db:"tipo_ingresso" json:"tipo_ingresso"`
	Observacao     string     `db:"observacao" json:"observacao,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// IsMinor reports whether the person is under 18 as of the given date.
// Door staff use this when choosing a wristband. False when the birth
// date is unknown.
func (p *Pessoa) IsMinor(asOf time.Time) bool {
	if p.DataNascimento == nil {
		return false
	}
	return asOf.Before(p.DataNascimento.AddDate(18, 0, 0))
}

// Ingresso is a ticket. A ticket checks in at most once: Entrou flips to
// true with HoraEntrada and Pulseira stamped in the same update.
type Ingresso struct {
	ID             int64           `db:"id" json:"id"`
	Numero         string          `db:"numero" json:"numero"`
	Lote           string          `db:"lote" json:"lote,omitempty"`
	ValorPago      decimal.Decimal `db:"valor_pago" json:"valor_pago"`
	Vendedor       string          `db:"vendedor" json:"vendedor,omitempty"`
	FormaPagamento string          `db:"forma_pagamento" json:"forma_pagamento"`
	Entrou         bool            `db:"entrou" json:"entrou"`
	HoraEntrada    *string         `db:"hora_entrada" json:"hora_entrada,omitempty"`
	Pulseira       *string         `db:"pulseira" json:"pulseira,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// Produto is a bar product. EstoqueAtual is owned by the ledger:
// 0 <= estoque_atual <= estoque_inicial holds on every sale/reversal.
type Produto struct {
	ID             int64           `db:"id" json:"id"`
	Nome           string          `db:"nome" json:"nome"`
	Custo          decimal.Decimal `db:"custo" json:"custo"`
	PrecoVenda     decimal.Decimal `db:"preco_venda" json:"preco_venda"`
	EstoqueInicial int             `db:"estoque_inicial" json:"estoque_inicial"`
	EstoqueAtual   int             `db:"estoque_atual" json:"estoque_atual"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// LowStock reports whether the product is below 20% of its initial stock.
func (p *Produto) LowStock() bool {
	if p.EstoqueInicial <= 0 {
		return false
	}
	return float64(p.EstoqueAtual)/float64(p.EstoqueInicial) < 0.2
}

// VendaBar is an immutable ledger entry. ValorTotal is the sale-time
// price times quantity and is never recomputed, even if the product
// price changes later. Deleting a sale reverses its stock effect.
type VendaBar struct {
	ID         int64           `db:"id" json:"id"`
	ProdutoID  int64           `db:"produto_id" json:"produto_id"`
	PessoaID   *int64          `db:"pessoa_id" json:"pessoa_id,omitempty"`
	Vendedor   string          `db:"vendedor" json:"vendedor,omitempty"`
	Quantidade int             `db:"quantidade" json:"quantidade"`
	ValorTotal decimal.Decimal `db:"valor_total" json:"valor_total"`
	Hora       string          `db:"hora" json:"hora"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// Colaborador is a staff member.
type Colaborador struct {
	ID        int64     `db:"id" json:"id"`
	Nome      string    `db:"nome" json:"nome"`
	Cargo     string    `db:"cargo" json:"cargo"`
	Telefone  string    `db:"telefone" json:"telefone,omitempty"`
	Ativo     bool      `db:"ativo" json:"ativo"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// MesaCamarote is a VIP table. Garrafas is append-only in practice;
// membership lives in the mesa_camarote_pessoa join table.
type MesaCamarote struct {
	ID        int64     `db:"id" json:"id"`
	Nome      string    `db:"nome" json:"nome"`
	Garcom    string    `db:"garcom" json:"garcom,omitempty"`
	Garrafas  []string  `json:"garrafas"`
	Pessoas   []Pessoa  `json:"pessoas"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Ticket categories
const (
	TipoPista    = "pista"
	TipoCamarote = "camarote"
	TipoVip      = "vip"
	TipoFree     = "free"
)

// Payment methods
const (
	PagamentoDinheiro      = "dinheiro"
	PagamentoPix           = "pix"
	PagamentoCartaoCredito = "cartao_credito"
	PagamentoCartaoDebito  = "cartao_debito"
)

// Wristbands
const (
	PulseiraMaior    = "maior"
	PulseiraMenor    = "menor"
	PulseiraCamarote = "camarote"
	PulseiraStaff    = "staff"
)

// Staff roles
const (
	CargoBarman    = "barman"
	CargoGarcom    = "garcom"
	CargoPorteiro  = "porteiro"
	CargoPromoter  = "promoter"
	CargoSeguranca = "seguranca"
	CargoCaixa     = "caixa"
	CargoOutro     = "outro"
)

var (
	tiposIngresso = map[string]bool{
		TipoPista: true, TipoCamarote: true, TipoVip: true, TipoFree: true,
	}
	formasPagamento = map[string]bool{
		PagamentoDinheiro: true, PagamentoPix: true,
		PagamentoCartaoCredito: true, PagamentoCartaoDebito: true,
	}
	pulseiras = map[string]bool{
		PulseiraMaior: true, PulseiraMenor: true,
		PulseiraCamarote: true, PulseiraStaff: true,
	}
	cargos = map[string]bool{
		CargoBarman: true, CargoGarcom: true, CargoPorteiro: true,
		CargoPromoter: true, CargoSeguranca: true, CargoCaixa: true,
		CargoOutro: true,
	}
)

// ValidTipoIngresso reports whether s is a known ticket category.
func ValidTipoIngresso(s string) bool { return tiposIngresso[s] }

// ValidFormaPagamento reports whether s is a known payment method.
func ValidFormaPagamento(s string) bool { return formasPagamento[s] }

// ValidPulseira reports whether s is a known wristband tag.
func ValidPulseira(s string) bool { return pulseiras[s] }

// ValidCargo reports whether s is a known staff role.
func ValidCargo(s string) bool { return cargos[s] }

// HoraLayout is the wall-clock format stored in hora/hora_entrada.
const HoraLayout = "15:04"
