package api

import (
	"net/http"

	"eventops-service/internal/service"

	"github.com/gin-gonic/gin"
)

// listMesas handles VIP table listing
func (h *Handler) listMesas(c *gin.Context) {
	mesas, err := h.tables.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mesas)
}

// createMesa handles VIP table creation
func (h *Handler) createMesa(c *gin.Context) {
	var req service.MesaRequest
	if !bindJSON(c, &req) {
		return
	}

	mesa, err := h.tables.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mesa)
}

// updateMesa handles VIP table updates
func (h *Handler) updateMesa(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.MesaRequest
	if !bindJSON(c, &req) {
		return
	}

	mesa, err := h.tables.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mesa)
}

// deleteMesa handles VIP table deletion
func (h *Handler) deleteMesa(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.tables.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type mesaPessoaRequest struct {
	PessoaID int64 `json:"pessoa_id" binding:"required"`
}

// addMesaPessoa attaches a guest to a table
func (h *Handler) addMesaPessoa(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req mesaPessoaRequest
	if !bindJSON(c, &req) {
		return
	}

	mesa, err := h.tables.AddPessoa(c.Request.Context(), id, req.PessoaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mesa)
}

// removeMesaPessoa detaches a guest from a table
func (h *Handler) removeMesaPessoa(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req mesaPessoaRequest
	if !bindJSON(c, &req) {
		return
	}

	mesa, err := h.tables.RemovePessoa(c.Request.Context(), id, req.PessoaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mesa)
}

type garrafaRequest struct {
	Garrafa string `json:"garrafa" binding:"required"`
}

// addGarrafa appends a bottle label to a table
func (h *Handler) addGarrafa(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req garrafaRequest
	if !bindJSON(c, &req) {
		return
	}

	mesa, err := h.tables.AddGarrafa(c.Request.Context(), id, req.Garrafa)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mesa)
}
