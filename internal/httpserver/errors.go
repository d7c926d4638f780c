package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"pix-limit-service/internal/domain"
)

// writeError maps the domain error taxonomy onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
		return
	}
	var ie *domain.InvariantError
	if errors.As(err, &ie) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ie.Msg})
		return
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "customer already exists"})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "concurrent update, reload and retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
