package api

import (
	"net/http"

	"eventops-service/internal/service"

	"github.com/gin-gonic/gin"
)

// listPessoas handles guest listing with an optional search term
func (h *Handler) listPessoas(c *gin.Context) {
	pessoas, err := h.registry.ListPessoas(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pessoas)
}

// createPessoa handles guest registration
func (h *Handler) createPessoa(c *gin.Context) {
	var req service.PessoaRequest
	if !bindJSON(c, &req) {
		return
	}

	pessoa, err := h.registry.CreatePessoa(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pessoa)
}

// updatePessoa handles guest updates
func (h *Handler) updatePessoa(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.PessoaRequest
	if !bindJSON(c, &req) {
		return
	}

	pessoa, err := h.registry.UpdatePessoa(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pessoa)
}

// deletePessoa handles guest deletion
func (h *Handler) deletePessoa(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.registry.DeletePessoa(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
