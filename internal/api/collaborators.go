package api

import (
	"net/http"

	"eventops-service/internal/service"

	"github.com/gin-gonic/gin"
)

// listColaboradores handles staff listing with optional filters
func (h *Handler) listColaboradores(c *gin.Context) {
	colaboradores, err := h.registry.ListColaboradores(
		c.Request.Context(), c.Query("search"), c.Query("cargo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, colaboradores)
}

// createColaborador handles staff creation
func (h *Handler) createColaborador(c *gin.Context) {
	var req service.ColaboradorRequest
	if !bindJSON(c, &req) {
		return
	}

	colaborador, err := h.registry.CreateColaborador(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, colaborador)
}

// updateColaborador handles staff updates
func (h *Handler) updateColaborador(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.ColaboradorRequest
	if !bindJSON(c, &req) {
		return
	}

	colaborador, err := h.registry.UpdateColaborador(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, colaborador)
}

// deleteColaborador handles staff deletion
func (h *Handler) deleteColaborador(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.registry.DeleteColaborador(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
