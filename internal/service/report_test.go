package service

import (
	"testing"

	"eventops-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func ptr(v int64) *int64 { return &v }

func TestComputeTicketStats(t *testing.T) {
	ingressos := []models.Ingresso{
		{Numero: "001", ValorPago: dec("80"), Entrou: true},
		{Numero: "002", ValorPago: dec("200"), Entrou: true},
		{Numero: "003", ValorPago: dec("80"), Entrou: false},
	}

	stats := ComputeTicketStats(ingressos)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Entraram)
	assert.Equal(t, 1, stats.Pendente)
	assert.True(t, stats.Receita.Equal(dec("360")))
}

func TestComputeBarStats(t *testing.T) {
	produtos := []models.Produto{
		{ID: 1, Custo: dec("3"), PrecoVenda: dec("10")},
		{ID: 2, Custo: dec("40"), PrecoVenda: dec("120")},
	}
	vendas := []models.VendaBar{
		{ProdutoID: 1, Quantidade: 3, ValorTotal: dec("30")},
		{ProdutoID: 2, Quantidade: 1, ValorTotal: dec("120")},
	}

	stats := ComputeBarStats(vendas, produtos)
	assert.True(t, stats.Receita.Equal(dec("150")))
	// Cost joins against the product's current cost: 3*3 + 1*40.
	assert.True(t, stats.Custo.Equal(dec("49")))
	assert.True(t, stats.Lucro.Equal(dec("101")))
}

func TestComputeBarStatsRevenueKeepsSaleTimePrice(t *testing.T) {
	// The ledger row carries the price paid; a later price change must
	// not alter revenue.
	produtos := []models.Produto{{ID: 1, Custo: dec("3"), PrecoVenda: dec("99")}}
	vendas := []models.VendaBar{{ProdutoID: 1, Quantidade: 3, ValorTotal: dec("30")}}

	stats := ComputeBarStats(vendas, produtos)
	assert.True(t, stats.Receita.Equal(dec("30")))
}

func TestRankPessoas(t *testing.T) {
	pessoas := []models.Pessoa{
		{ID: 1, Nome: "Ana"},
		{ID: 2, Nome: "Bruno"},
	}
	vendas := []models.VendaBar{
		{ProdutoID: 1, PessoaID: ptr(1), ValorTotal: dec("30"), Quantidade: 1},
		{ProdutoID: 1, PessoaID: ptr(2), ValorTotal: dec("120"), Quantidade: 1},
		{ProdutoID: 1, PessoaID: nil, ValorTotal: dec("999"), Quantidade: 1},
	}

	ranking := RankPessoas(vendas, pessoas)
	require.Len(t, ranking, 2, "anonymous sales are skipped")
	assert.Equal(t, "Bruno", ranking[0].Nome)
	assert.True(t, ranking[0].Total.Equal(dec("120")))
	assert.Equal(t, "Ana", ranking[1].Nome)
}

func TestRankPessoasTiesKeepFirstSeenOrder(t *testing.T) {
	pessoas := []models.Pessoa{
		{ID: 1, Nome: "Ana"},
		{ID: 2, Nome: "Bruno"},
		{ID: 3, Nome: "Carla"},
	}
	vendas := []models.VendaBar{
		{PessoaID: ptr(2), ValorTotal: dec("50"), Quantidade: 1},
		{PessoaID: ptr(1), ValorTotal: dec("50"), Quantidade: 1},
		{PessoaID: ptr(3), ValorTotal: dec("50"), Quantidade: 1},
	}

	ranking := RankPessoas(vendas, pessoas)
	require.Len(t, ranking, 3)
	assert.Equal(t, "Bruno", ranking[0].Nome)
	assert.Equal(t, "Ana", ranking[1].Nome)
	assert.Equal(t, "Carla", ranking[2].Nome)
}

func TestRankVendedores(t *testing.T) {
	vendas := []models.VendaBar{
		{Vendedor: "Maria", ValorTotal: dec("10"), Quantidade: 1},
		{Vendedor: "Joao", ValorTotal: dec("250"), Quantidade: 1},
		{Vendedor: "Maria", ValorTotal: dec("100"), Quantidade: 2},
	}

	ranking := RankVendedores(vendas)
	require.Len(t, ranking, 2)
	assert.Equal(t, "Joao", ranking[0].Nome)
	assert.Equal(t, "Maria", ranking[1].Nome)
	assert.True(t, ranking[1].Total.Equal(dec("110")))
	assert.Equal(t, 2, ranking[1].Compras)
}

func TestComputeOccupancy(t *testing.T) {
	occ := ComputeOccupancy(400, 500)
	assert.InDelta(t, 80.0, occ.Percentual, 0.001)
	assert.True(t, occ.QuaseLotado)
	assert.False(t, occ.Lotado)

	occ = ComputeOccupancy(550, 500)
	assert.InDelta(t, 110.0, occ.Percentual, 0.001)
	assert.Equal(t, 100.0, occ.PercentualExibido, "display value is clamped")
	assert.True(t, occ.Lotado)

	occ = ComputeOccupancy(10, 0)
	assert.Equal(t, 0.0, occ.Percentual, "zero capacity never divides")
}

func TestLowStockProducts(t *testing.T) {
	produtos := []models.Produto{
		{ID: 1, Nome: "Cerveja", EstoqueInicial: 200, EstoqueAtual: 30},
		{ID: 2, Nome: "Vodka", EstoqueInicial: 30, EstoqueAtual: 25},
		{ID: 3, Nome: "Brinde", EstoqueInicial: 0, EstoqueAtual: 0},
	}

	items := LowStockProducts(produtos)
	require.Len(t, items, 1)
	assert.Equal(t, "Cerveja", items[0].Nome)
	assert.Equal(t, 30, items[0].Restante)
}

func TestTopProduto(t *testing.T) {
	produtos := []models.Produto{
		{ID: 1, Nome: "Cerveja"},
		{ID: 2, Nome: "Vodka"},
	}
	vendas := []models.VendaBar{
		{ProdutoID: 1, Quantidade: 3},
		{ProdutoID: 2, Quantidade: 1},
		{ProdutoID: 1, Quantidade: 2},
	}

	top := TopProduto(vendas, produtos)
	require.NotNil(t, top)
	assert.Equal(t, "Cerveja", top.Nome)
	assert.Equal(t, 5, top.Vendidos)

	assert.Nil(t, TopProduto(nil, produtos), "no sales, no top product")
}

func TestBuildSummaryIsDeterministic(t *testing.T) {
	snap := &Snapshot{
		Pessoas: []models.Pessoa{{ID: 1, Nome: "Ana"}, {ID: 2, Nome: "Bruno"}},
		Ingressos: []models.Ingresso{
			{Numero: "001", ValorPago: dec("80"), Entrou: true},
			{Numero: "002", ValorPago: dec("200"), Entrou: false},
		},
		Produtos: []models.Produto{
			{ID: 1, Nome: "Cerveja", Custo: dec("3"), PrecoVenda: dec("10"),
				EstoqueInicial: 200, EstoqueAtual: 197},
		},
		Vendas: []models.VendaBar{
			{ID: 1, ProdutoID: 1, PessoaID: ptr(1), ValorTotal: dec("30"), Quantidade: 3},
			{ID: 2, ProdutoID: 1, PessoaID: ptr(2), ValorTotal: dec("120"), Quantidade: 1},
		},
		Mesas: []models.MesaCamarote{
			{ID: 1, Garrafas: []string{"Vodka", "Whisky"}, Pessoas: []models.Pessoa{{ID: 2}}},
		},
	}

	first := BuildSummary(snap, 500)
	second := BuildSummary(snap, 500)

	// Same snapshot, same figures: reading twice with no mutation in
	// between must agree on every aggregate.
	assert.Equal(t, first, second)

	assert.True(t, first.ReceitaTotal.Equal(dec("430")))
	assert.Equal(t, 2, first.TotalGarrafas)
	assert.Equal(t, 1, first.PessoasCamarote)
	require.Len(t, first.RankingPessoas, 2)
	assert.Equal(t, "Bruno", first.RankingPessoas[0].Nome)
	assert.Equal(t, "Ana", first.RankingPessoas[1].Nome)
}
