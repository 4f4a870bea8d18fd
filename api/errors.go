package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/studiobooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses. Anything unrecognized
// is treated as a repository/transport failure the client may retry.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err), errors.Is(err, domain.ErrUnknownStudio):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNothingToExport):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "retryable": true})
	}
}
