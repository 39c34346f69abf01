package api

import (
	"net/http"

	"eventops-service/internal/service"

	"github.com/gin-gonic/gin"
)

// listVendas handles sale listing
func (h *Handler) listVendas(c *gin.Context) {
	vendas, err := h.ledger.ListSales(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendas)
}

// createVenda records a bar sale through the ledger transaction
func (h *Handler) createVenda(c *gin.Context) {
	var req service.RecordSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	venda, err := h.ledger.RecordSale(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, venda)
}

// deleteVenda reverses a sale, crediting its stock back
func (h *Handler) deleteVenda(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.ledger.ReverseSale(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
