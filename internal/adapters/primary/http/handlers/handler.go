package handlers

import (
	"statement-converter-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	converterSvc *services.ConverterService
}

func New(converterSvc *services.ConverterService) *Handler {
	return &Handler{converterSvc: converterSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Bank catalog and manual-entry template
	r.GET("/banks", h.ListBanks)
	r.GET("/template", h.DownloadTemplate)

	// Conversion
	r.POST("/convert", h.Convert)
	r.POST("/validate", h.Validate)
	r.POST("/summary", h.Summarize)

	// Conversion history
	r.GET("/jobs", h.ListJobs)
	r.GET("/jobs/:id", h.GetJob)
}
