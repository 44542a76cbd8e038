package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"statement-converter-service/internal/adapters/primary/http/dto"
	ports "statement-converter-service/internal/core/ports/output"
)

func (h *Handler) ListJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := ports.JobListFilter{
		Bank:   c.Query("bank"),
		Limit:  limit,
		Offset: offset,
	}

	jobs, total, err := h.converterSvc.ListJobs(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list conversion jobs failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ConversionJobResponse, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, dto.ToConversionJobResponse(j))
	}

	c.JSON(http.StatusOK, dto.ListConversionJobsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := h.converterSvc.GetJob(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionJobResponse(job))
}
