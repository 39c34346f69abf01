package api

import (
	"net/http"

	"eventops-service/internal/service"

	"github.com/gin-gonic/gin"
)

// listProdutos handles product listing
func (h *Handler) listProdutos(c *gin.Context) {
	produtos, err := h.products.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, produtos)
}

// createProduto handles product creation
func (h *Handler) createProduto(c *gin.Context) {
	var req service.CreateProdutoRequest
	if !bindJSON(c, &req) {
		return
	}

	produto, err := h.products.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, produto)
}

// updateProduto handles product updates
func (h *Handler) updateProduto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateProdutoRequest
	if !bindJSON(c, &req) {
		return
	}

	produto, err := h.products.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, produto)
}

// deleteProduto handles product deletion
func (h *Handler) deleteProduto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
