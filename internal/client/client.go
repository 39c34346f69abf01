// Package client is the console-side state cache for the event API. It
// holds the last-fetched snapshot of every entity, applies mutations
// optimistically so callers see the change before the round-trip
// completes, and restores the previous snapshot when the server rejects
// the request. After a successful mutation the authoritative state is
// re-fetched rather than trusting the optimistic patch, so
// server-assigned ids and derived fields (sale hora, entry time) are
// reconciled.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"eventops-service/internal/models"
	"eventops-service/internal/service"

	"github.com/shopspring/decimal"
)

// Snapshot mirrors the server-side entity state.
type Snapshot struct {
	Pessoas       []models.Pessoa
	Ingressos     []models.Ingresso
	Produtos      []models.Produto
	Vendas        []models.VendaBar
	Colaboradores []models.Colaborador
	Mesas         []models.MesaCamarote
}

// clone deep-copies the snapshot so an optimistic patch never leaks
// into the saved rollback state.
func (s *Snapshot) clone() *Snapshot {
	c := &Snapshot{
		Pessoas:       append([]models.Pessoa(nil), s.Pessoas...),
		Ingressos:     append([]models.Ingresso(nil), s.Ingressos...),
		Produtos:      append([]models.Produto(nil), s.Produtos...),
		Vendas:        append([]models.VendaBar(nil), s.Vendas...),
		Colaboradores: append([]models.Colaborador(nil), s.Colaboradores...),
		Mesas:         append([]models.MesaCamarote(nil), s.Mesas...),
	}
	for i := range c.Mesas {
		c.Mesas[i].Garrafas = append([]string(nil), c.Mesas[i].Garrafas...)
		c.Mesas[i].Pessoas = append([]models.Pessoa(nil), c.Mesas[i].Pessoas...)
	}
	return c
}

// Client talks to the event API and keeps the local snapshot.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	state *Snapshot
}

// New creates a client for the given API base URL (without the /api/v1
// prefix).
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		state:   &Snapshot{},
	}
}

// Snapshot returns a copy of the current local state.
func (c *Client) Snapshot() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Refresh fetches the authoritative state for every entity.
func (c *Client) Refresh(ctx context.Context) error {
	fresh := &Snapshot{}
	if err := c.getJSON(ctx, "/api/v1/pessoas", &fresh.Pessoas); err != nil {
		return err
	}
	if err := c.getJSON(ctx, "/api/v1/ingressos", &fresh.Ingressos); err != nil {
		return err
	}
	if err := c.getJSON(ctx, "/api/v1/produtos", &fresh.Produtos); err != nil {
		return err
	}
	if err := c.getJSON(ctx, "/api/v1/vendas-bar", &fresh.Vendas); err != nil {
		return err
	}
	if err := c.getJSON(ctx, "/api/v1/colaboradores", &fresh.Colaboradores); err != nil {
		return err
	}
	if err := c.getJSON(ctx, "/api/v1/mesas-camarote", &fresh.Mesas); err != nil {
		return err
	}

	c.mu.Lock()
	c.state = fresh
	c.mu.Unlock()
	return nil
}

// Dashboard fetches the server-computed aggregate summary.
func (c *Client) Dashboard(ctx context.Context) (*service.Summary, error) {
	var summary service.Summary
	if err := c.getJSON(ctx, "/api/v1/dashboard", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// mutate applies an optimistic patch, issues the request, and either
// rolls back to the saved snapshot (failure) or refreshes from the
// server (success).
func (c *Client) mutate(ctx context.Context, patch func(*Snapshot), call func(context.Context) error) error {
	c.mu.Lock()
	saved := c.state
	optimistic := saved.clone()
	patch(optimistic)
	c.state = optimistic
	c.mu.Unlock()

	if err := call(ctx); err != nil {
		c.mu.Lock()
		c.state = saved
		c.mu.Unlock()
		return err
	}

	return c.Refresh(ctx)
}

// RecordSale records a bar sale. The optimistic patch mirrors the
// ledger: it refuses locally when the cached stock is short, decrements
// the cached product and appends a pending sale row.
func (c *Client) RecordSale(ctx context.Context, produtoID int64, pessoaID *int64, vendedor string, quantidade int) error {
	c.mu.Lock()
	var produto *models.Produto
	for i := range c.state.Produtos {
		if c.state.Produtos[i].ID == produtoID {
			produto = &c.state.Produtos[i]
			break
		}
	}
	if produto == nil {
		c.mu.Unlock()
		return fmt.Errorf("produto %d not in snapshot", produtoID)
	}
	if produto.EstoqueAtual < quantidade {
		c.mu.Unlock()
		return fmt.Errorf("produto %d: estoque %d, pedido %d", produtoID, produto.EstoqueAtual, quantidade)
	}
	preco := produto.PrecoVenda
	c.mu.Unlock()

	return c.mutate(ctx,
		func(s *Snapshot) {
			for i := range s.Produtos {
				if s.Produtos[i].ID == produtoID {
					s.Produtos[i].EstoqueAtual -= quantidade
				}
			}
			s.Vendas = append([]models.VendaBar{{
				ProdutoID:  produtoID,
				PessoaID:   pessoaID,
				Vendedor:   vendedor,
				Quantidade: quantidade,
				ValorTotal: preco.Mul(decimal.NewFromInt(int64(quantidade))),
			}}, s.Vendas...)
		},
		func(ctx context.Context) error {
			req := service.RecordSaleRequest{
				ProdutoID:  produtoID,
				PessoaID:   pessoaID,
				Vendedor:   vendedor,
				Quantidade: quantidade,
			}
			return c.postJSON(ctx, "/api/v1/vendas-bar", req, nil)
		})
}

// DeleteSale reverses a sale; the optimistic patch credits the cached
// stock back and drops the row.
func (c *Client) DeleteSale(ctx context.Context, saleID int64) error {
	return c.mutate(ctx,
		func(s *Snapshot) {
			for i := range s.Vendas {
				if s.Vendas[i].ID != saleID {
					continue
				}
				venda := s.Vendas[i]
				for j := range s.Produtos {
					if s.Produtos[j].ID == venda.ProdutoID {
						s.Produtos[j].EstoqueAtual += venda.Quantidade
						if s.Produtos[j].EstoqueAtual > s.Produtos[j].EstoqueInicial {
							s.Produtos[j].EstoqueAtual = s.Produtos[j].EstoqueInicial
						}
					}
				}
				s.Vendas = append(s.Vendas[:i], s.Vendas[i+1:]...)
				break
			}
		},
		func(ctx context.Context) error {
			return c.delete(ctx, fmt.Sprintf("/api/v1/vendas-bar/%d", saleID))
		})
}

// CheckIn marks a ticket as entered with the given wristband.
func (c *Client) CheckIn(ctx context.Context, ingressoID int64, pulseira string) error {
	return c.mutate(ctx,
		func(s *Snapshot) {
			for i := range s.Ingressos {
				if s.Ingressos[i].ID == ingressoID && !s.Ingressos[i].Entrou {
					hora := time.Now().Format(models.HoraLayout)
					p := pulseira
					s.Ingressos[i].Entrou = true
					s.Ingressos[i].HoraEntrada = &hora
					s.Ingressos[i].Pulseira = &p
				}
			}
		},
		func(ctx context.Context) error {
			body := map[string]string{"pulseira": pulseira}
			return c.postJSON(ctx, fmt.Sprintf("/api/v1/ingressos/%d/check-in", ingressoID), body, nil)
		})
}

// CreatePessoa registers a guest.
func (c *Client) CreatePessoa(ctx context.Context, req *service.PessoaRequest) error {
	return c.mutate(ctx,
		func(s *Snapshot) {
			s.Pessoas = append([]models.Pessoa{{
				Nome:           req.Nome,
				Instagram:      req.Instagram,
				CpfRg:          req.CpfRg,
				DataNascimento: req.DataNascimento,
				TipoIngresso:   req.TipoIngresso,
				Observacao:     req.Observacao,
			}}, s.Pessoas...)
		},
		func(ctx context.Context) error {
			return c.postJSON(ctx, "/api/v1/pessoas", req, nil)
		})
}

// DeletePessoa removes a guest.
func (c *Client) DeletePessoa(ctx context.Context, id int64) error {
	return c.mutate(ctx,
		func(s *Snapshot) {
			for i := range s.Pessoas {
				if s.Pessoas[i].ID == id {
					s.Pessoas = append(s.Pessoas[:i], s.Pessoas[i+1:]...)
					break
				}
			}
		},
		func(ctx context.Context) error {
			return c.delete(ctx, fmt.Sprintf("/api/v1/pessoas/%d", id))
		})
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d body=%s", e.Status, e.Body)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(data)}
	}
	if out != nil && len(data) > 0 {
		return json.Unmarshal(data, out)
	}
	return nil
}
