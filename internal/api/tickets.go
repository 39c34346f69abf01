package api

import (
	"net/http"

	"eventops-service/internal/service"

	"github.com/gin-gonic/gin"
)

// listIngressos handles ticket listing with an optional number search
func (h *Handler) listIngressos(c *gin.Context) {
	ingressos, err := h.tickets.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingressos)
}

// createIngresso handles ticket creation
func (h *Handler) createIngresso(c *gin.Context) {
	var req service.CreateIngressoRequest
	if !bindJSON(c, &req) {
		return
	}

	ingresso, err := h.tickets.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ingresso)
}

type checkInRequest struct {
	Pulseira string `json:"pulseira" binding:"required"`
}

// checkInIngresso stamps entry time and wristband on a ticket
func (h *Handler) checkInIngresso(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req checkInRequest
	if !bindJSON(c, &req) {
		return
	}

	ingresso, err := h.tickets.CheckIn(c.Request.Context(), id, req.Pulseira)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingresso)
}

// deleteIngresso handles ticket deletion
func (h *Handler) deleteIngresso(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.tickets.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
