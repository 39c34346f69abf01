package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"eventops-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer is an in-memory stand-in for the API, just enough state to
// drive the cache through refresh, accept and reject paths.
type fakeServer struct {
	mu       sync.Mutex
	produtos []models.Produto
	vendas   []models.VendaBar
	pessoas  []models.Pessoa

	rejectSales bool
	saleCalls   int
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	list := func(get func() interface{}) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			json.NewEncoder(w).Encode(get())
		}
	}

	mux.Handle("/api/v1/pessoas", list(func() interface{} { return f.pessoas }))
	mux.Handle("/api/v1/produtos", list(func() interface{} { return f.produtos }))
	mux.Handle("/api/v1/ingressos", list(func() interface{} { return []models.Ingresso{} }))
	mux.Handle("/api/v1/colaboradores", list(func() interface{} { return []models.Colaborador{} }))
	mux.Handle("/api/v1/mesas-camarote", list(func() interface{} { return []models.MesaCamarote{} }))

	mux.HandleFunc("/api/v1/vendas-bar", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(f.vendas)
			return
		}

		f.saleCalls++
		if f.rejectSales {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"error": "Estoque insuficiente"})
			return
		}

		var req struct {
			ProdutoID  int64  `json:"produto_id"`
			Quantidade int    `json:"quantidade"`
			Vendedor   string `json:"vendedor"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		for i := range f.produtos {
			if f.produtos[i].ID == req.ProdutoID {
				f.produtos[i].EstoqueAtual -= req.Quantidade
				venda := models.VendaBar{
					ID:         int64(len(f.vendas) + 1),
					ProdutoID:  req.ProdutoID,
					Vendedor:   req.Vendedor,
					Quantidade: req.Quantidade,
					ValorTotal: f.produtos[i].PrecoVenda.Mul(decimal.NewFromInt(int64(req.Quantidade))),
					Hora:       "22:30",
				}
				f.vendas = append([]models.VendaBar{venda}, f.vendas...)
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(venda)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	return mux
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		produtos: []models.Produto{
			{ID: 1, Nome: "Cerveja", PrecoVenda: decimal.NewFromInt(10),
				EstoqueInicial: 100, EstoqueAtual: 50},
		},
		pessoas: []models.Pessoa{{ID: 1, Nome: "Ana"}},
	}
}

func TestRefresh(t *testing.T) {
	fake := newFakeServer()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.Refresh(context.Background()))

	snap := c.Snapshot()
	require.Len(t, snap.Produtos, 1)
	assert.Equal(t, 50, snap.Produtos[0].EstoqueAtual)
	require.Len(t, snap.Pessoas, 1)
	assert.Equal(t, "Ana", snap.Pessoas[0].Nome)
}

func TestRecordSaleReconcilesWithServer(t *testing.T) {
	fake := newFakeServer()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	ctx := context.Background()
	c := New(srv.URL)
	require.NoError(t, c.Refresh(ctx))

	require.NoError(t, c.RecordSale(ctx, 1, nil, "Maria", 3))

	// The post-mutation refresh replaces the optimistic rows with the
	// server's, so the pending sale picks up its assigned id and hora.
	snap := c.Snapshot()
	assert.Equal(t, 47, snap.Produtos[0].EstoqueAtual)
	require.Len(t, snap.Vendas, 1)
	assert.Equal(t, int64(1), snap.Vendas[0].ID)
	assert.Equal(t, "22:30", snap.Vendas[0].Hora)
	assert.True(t, snap.Vendas[0].ValorTotal.Equal(decimal.NewFromInt(30)))
}

func TestRecordSaleRollsBackOnRejection(t *testing.T) {
	fake := newFakeServer()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	ctx := context.Background()
	c := New(srv.URL)
	require.NoError(t, c.Refresh(ctx))

	fake.mu.Lock()
	fake.rejectSales = true
	fake.mu.Unlock()

	err := c.RecordSale(ctx, 1, nil, "Maria", 3)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)

	// Rollback restores the pre-patch snapshot untouched.
	snap := c.Snapshot()
	assert.Equal(t, 50, snap.Produtos[0].EstoqueAtual)
	assert.Empty(t, snap.Vendas)
}

func TestRecordSaleRefusesLocallyOnShortStock(t *testing.T) {
	fake := newFakeServer()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	ctx := context.Background()
	c := New(srv.URL)
	require.NoError(t, c.Refresh(ctx))

	err := c.RecordSale(ctx, 1, nil, "Maria", 51)
	require.Error(t, err)

	fake.mu.Lock()
	calls := fake.saleCalls
	fake.mu.Unlock()
	assert.Zero(t, calls, "short stock is refused before any request")

	snap := c.Snapshot()
	assert.Equal(t, 50, snap.Produtos[0].EstoqueAtual)
}

func TestDeletePessoaRollsBackOnFailure(t *testing.T) {
	fake := newFakeServer()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	ctx := context.Background()
	c := New(srv.URL)
	require.NoError(t, c.Refresh(ctx))

	// The fake mux has no DELETE route for /pessoas/:id, so the server
	// answers 404 and the optimistic removal must be undone.
	err := c.DeletePessoa(ctx, 1)
	require.Error(t, err)

	snap := c.Snapshot()
	require.Len(t, snap.Pessoas, 1)
	assert.Equal(t, "Ana", snap.Pessoas[0].Nome)
}
