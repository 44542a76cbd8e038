package handlers

import (
	"errors"
	"net/http"

	"statement-converter-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrMissingFile),
		errors.Is(err, domain.ErrMissingBank),
		errors.Is(err, domain.ErrUnknownBank),
		errors.Is(err, domain.ErrUnknownOutputFormat),
		errors.Is(err, domain.ErrInvalidFileFormat),
		errors.Is(err, domain.ErrEmptyFile),
		errors.Is(err, domain.ErrInvalidOpeningBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Service unavailable errors
	case errors.Is(err, domain.ErrJobStoreDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
