package api

import (
	"errors"
	"net/http"

	"eventops-service/internal/service"
	"eventops-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError translates the service/store error taxonomy into HTTP:
// validation → 422 field-keyed, insufficient stock → 422, repeated
// check-in → 409, missing rows → 404, anything else → 500.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, store.ErrInsufficientStock):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Estoque insuficiente",
			"details": err.Error(),
		})
	case errors.Is(err, store.ErrAlreadyCheckedIn):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Ingresso ja utilizado",
			"details": err.Error(),
		})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"details": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// bindJSON decodes the body into req. Malformed JSON yields 400;
// binding-tag failures yield the same field-keyed 422 shape the
// services produce. Returns false when a response was already written.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = "failed on " + fe.Tag()
			}
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "Validation failed",
				"fields": fields,
			})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return false
	}
	return true
}

// pathID parses the :id path parameter. Returns false when a 400 was
// already written.
func pathID(c *gin.Context) (int64, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}
