package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"eventops-service/internal/models"
	"eventops-service/internal/redisclient"
	"eventops-service/internal/store"
	"eventops-service/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Snapshot is the full entity state the aggregate views are computed
// from. Views are pure functions of a snapshot: reading twice with no
// mutation in between yields identical figures.
type Snapshot struct {
	Pessoas   []models.Pessoa       `json:"pessoas"`
	Ingressos []models.Ingresso     `json:"ingressos"`
	Produtos  []models.Produto      `json:"produtos"`
	Vendas    []models.VendaBar     `json:"vendas_bar"`
	Mesas     []models.MesaCamarote `json:"mesas_camarote"`
}

// TicketStats aggregates the door state.
type TicketStats struct {
	Total    int             `json:"total"`
	Entraram int             `json:"entraram"`
	Pendente int             `json:"pendente"`
	Receita  decimal.Decimal `json:"receita"`
}

// BarStats aggregates the sales ledger. Receita uses the sale-time
// price captured on each ledger row; Custo joins quantities against the
// product's cost at read time.
type BarStats struct {
	Receita decimal.Decimal `json:"receita"`
	Custo   decimal.Decimal `json:"custo"`
	Lucro   decimal.Decimal `json:"lucro"`
}

// RankingEntry is one row of a spend ranking, ordered by total
// descending with first-seen order preserved on ties.
type RankingEntry struct {
	PessoaID *int64          `json:"pessoa_id,omitempty"`
	Nome     string          `json:"nome"`
	Total    decimal.Decimal `json:"total"`
	Compras  int             `json:"compras"`
}

// Occupancy is door occupancy relative to the configured capacity.
// Percentual is the raw figure used for alerts; PercentualExibido is
// clamped at 100 for display.
type Occupancy struct {
	Dentro            int     `json:"dentro"`
	Capacidade        int     `json:"capacidade"`
	Percentual        float64 `json:"percentual"`
	PercentualExibido float64 `json:"percentual_exibido"`
	QuaseLotado       bool    `json:"quase_lotado"`
	Lotado            bool    `json:"lotado"`
}

// LowStockItem flags a product under 20% of its initial stock.
type LowStockItem struct {
	ProdutoID int64  `json:"produto_id"`
	Nome      string `json:"nome"`
	Restante  int    `json:"restante"`
	Inicial   int    `json:"inicial"`
}

// ProdutoVendido pairs a product with its units sold.
type ProdutoVendido struct {
	ProdutoID int64  `json:"produto_id"`
	Nome      string `json:"nome"`
	Vendidos  int    `json:"vendidos"`
}

// Summary is the dashboard payload: every aggregate view over one
// snapshot.
type Summary struct {
	Ingressos         TicketStats     `json:"ingressos"`
	Bar               BarStats        `json:"bar"`
	ReceitaTotal      decimal.Decimal `json:"receita_total"`
	Ocupacao          Occupancy       `json:"ocupacao"`
	RankingPessoas    []RankingEntry  `json:"ranking_pessoas"`
	RankingVendedores []RankingEntry  `json:"ranking_vendedores"`
	EstoqueBaixo      []LowStockItem  `json:"estoque_baixo"`
	ProdutoTop        *ProdutoVendido `json:"produto_top,omitempty"`
	TotalGarrafas     int             `json:"total_garrafas"`
	PessoasCamarote   int             `json:"pessoas_camarote"`
}

// ComputeTicketStats totals the door state over all tickets.
func ComputeTicketStats(ingressos []models.Ingresso) TicketStats {
	stats := TicketStats{Total: len(ingressos), Receita: decimal.Zero}
	for i := range ingressos {
		if ingressos[i].Entrou {
			stats.Entraram++
		}
		stats.Receita = stats.Receita.Add(ingressos[i].ValorPago)
	}
	stats.Pendente = stats.Total - stats.Entraram
	return stats
}

// ComputeBarStats totals revenue from the ledger rows and cost from the
// current product cost.
func ComputeBarStats(vendas []models.VendaBar, produtos []models.Produto) BarStats {
	custoByID := make(map[int64]decimal.Decimal, len(produtos))
	for i := range produtos {
		custoByID[produtos[i].ID] = produtos[i].Custo
	}

	stats := BarStats{Receita: decimal.Zero, Custo: decimal.Zero}
	for i := range vendas {
		stats.Receita = stats.Receita.Add(vendas[i].ValorTotal)
		if custo, ok := custoByID[vendas[i].ProdutoID]; ok {
			qty := decimal.NewFromInt(int64(vendas[i].Quantidade))
			stats.Custo = stats.Custo.Add(custo.Mul(qty))
		}
	}
	stats.Lucro = stats.Receita.Sub(stats.Custo)
	return stats
}

// RankPessoas groups sales by buyer and orders by total spend,
// descending. Sales without a buyer are skipped. Ties keep first-seen
// input order so the ranking is stable across renders.
func RankPessoas(vendas []models.VendaBar, pessoas []models.Pessoa) []RankingEntry {
	nomeByID := make(map[int64]string, len(pessoas))
	for i := range pessoas {
		nomeByID[pessoas[i].ID] = pessoas[i].Nome
	}

	index := make(map[int64]int)
	entries := []RankingEntry{}
	for i := range vendas {
		if vendas[i].PessoaID == nil {
			continue
		}
		id := *vendas[i].PessoaID
		pos, ok := index[id]
		if !ok {
			pos = len(entries)
			index[id] = pos
			pid := id
			entries = append(entries, RankingEntry{
				PessoaID: &pid,
				Nome:     nomeByID[id],
				Total:    decimal.Zero,
			})
		}
		entries[pos].Total = entries[pos].Total.Add(vendas[i].ValorTotal)
		entries[pos].Compras++
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Total.GreaterThan(entries[b].Total)
	})
	return entries
}

// RankVendedores groups sales by seller name and orders by total,
// descending, first-seen order on ties.
func RankVendedores(vendas []models.VendaBar) []RankingEntry {
	index := make(map[string]int)
	entries := []RankingEntry{}
	for i := range vendas {
		vendedor := vendas[i].Vendedor
		if vendedor == "" {
			continue
		}
		pos, ok := index[vendedor]
		if !ok {
			pos = len(entries)
			index[vendedor] = pos
			entries = append(entries, RankingEntry{Nome: vendedor, Total: decimal.Zero})
		}
		entries[pos].Total = entries[pos].Total.Add(vendas[i].ValorTotal)
		entries[pos].Compras++
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Total.GreaterThan(entries[b].Total)
	})
	return entries
}

// ComputeOccupancy derives occupancy alerts from the entered count.
func ComputeOccupancy(dentro, capacidade int) Occupancy {
	occ := Occupancy{Dentro: dentro, Capacidade: capacidade}
	if capacidade > 0 {
		occ.Percentual = float64(dentro) / float64(capacidade) * 100
	}
	occ.PercentualExibido = occ.Percentual
	if occ.PercentualExibido > 100 {
		occ.PercentualExibido = 100
	}
	occ.QuaseLotado = occ.Percentual >= 80
	occ.Lotado = occ.Percentual >= 100
	return occ
}

// LowStockProducts lists products under 20% of their initial stock.
func LowStockProducts(produtos []models.Produto) []LowStockItem {
	items := []LowStockItem{}
	for i := range produtos {
		if produtos[i].LowStock() {
			items = append(items, LowStockItem{
				ProdutoID: produtos[i].ID,
				Nome:      produtos[i].Nome,
				Restante:  produtos[i].EstoqueAtual,
				Inicial:   produtos[i].EstoqueInicial,
			})
		}
	}
	return items
}

// TopProduto returns the product with most units sold, or nil when
// there are no sales.
func TopProduto(vendas []models.VendaBar, produtos []models.Produto) *ProdutoVendido {
	soldByID := make(map[int64]int)
	for i := range vendas {
		soldByID[vendas[i].ProdutoID] += vendas[i].Quantidade
	}

	var top *ProdutoVendido
	for i := range produtos {
		vendidos := soldByID[produtos[i].ID]
		if vendidos == 0 {
			continue
		}
		if top == nil || vendidos > top.Vendidos {
			top = &ProdutoVendido{
				ProdutoID: produtos[i].ID,
				Nome:      produtos[i].Nome,
				Vendidos:  vendidos,
			}
		}
	}
	return top
}

// BuildSummary computes every aggregate view over one snapshot.
func BuildSummary(snap *Snapshot, capacidade int) *Summary {
	tickets := ComputeTicketStats(snap.Ingressos)
	bar := ComputeBarStats(snap.Vendas, snap.Produtos)

	totalGarrafas := 0
	pessoasCamarote := 0
	for i := range snap.Mesas {
		totalGarrafas += len(snap.Mesas[i].Garrafas)
		pessoasCamarote += len(snap.Mesas[i].Pessoas)
	}

	return &Summary{
		Ingressos:         tickets,
		Bar:               bar,
		ReceitaTotal:      tickets.Receita.Add(bar.Receita),
		Ocupacao:          ComputeOccupancy(tickets.Entraram, capacidade),
		RankingPessoas:    RankPessoas(snap.Vendas, snap.Pessoas),
		RankingVendedores: RankVendedores(snap.Vendas),
		EstoqueBaixo:      LowStockProducts(snap.Produtos),
		ProdutoTop:        TopProduto(snap.Vendas, snap.Produtos),
		TotalGarrafas:     totalGarrafas,
		PessoasCamarote:   pessoasCamarote,
	}
}

// ReportService serves the dashboard summary, caching the rendered
// payload in Redis between mutations.
type ReportService struct {
	store      *store.Store
	redis      *redisclient.Client
	capacidade int
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(store *store.Store, redis *redisclient.Client, capacidade int, cacheTTL time.Duration) *ReportService {
	return &ReportService{
		store:      store,
		redis:      redis,
		capacidade: capacidade,
		cacheTTL:   cacheTTL,
		logger:     util.GetLogger(),
	}
}

// LoadSnapshot reads the full entity state from the store.
func (s *ReportService) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	pessoas, err := s.store.GetPessoas(ctx, "")
	if err != nil {
		return nil, err
	}
	ingressos, err := s.store.GetIngressos(ctx, "")
	if err != nil {
		return nil, err
	}
	produtos, err := s.store.GetProdutos(ctx)
	if err != nil {
		return nil, err
	}
	vendas, err := s.store.GetVendasBar(ctx)
	if err != nil {
		return nil, err
	}
	mesas, err := s.store.GetMesas(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Pessoas:   pessoas,
		Ingressos: ingressos,
		Produtos:  produtos,
		Vendas:    vendas,
		Mesas:     mesas,
	}, nil
}

// Dashboard returns the aggregate summary, from cache when warm.
func (s *ReportService) Dashboard(ctx context.Context) (*Summary, error) {
	ctx, span := util.StartSpan(ctx, "ReportService.Dashboard")
	defer span.End()

	if s.redis != nil {
		if data, found, err := s.redis.GetDashboard(ctx); err != nil {
			s.logger.Warn("Dashboard cache read failed", zap.Error(err))
		} else if found {
			var summary Summary
			if err := json.Unmarshal(data, &summary); err == nil {
				util.DashboardCacheHits.WithLabelValues("hit").Inc()
				return &summary, nil
			}
			s.logger.Warn("Dashboard cache payload corrupt; recomputing")
		}
	}
	util.DashboardCacheHits.WithLabelValues("miss").Inc()

	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	summary := BuildSummary(snap, s.capacidade)

	if s.redis != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := s.redis.SetDashboard(ctx, data, s.cacheTTL); err != nil {
				s.logger.Warn("Dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return summary, nil
}
