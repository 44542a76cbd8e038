package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"statement-converter-service/internal/adapters/primary/http/dto"
	"statement-converter-service/internal/core/domain"
	"statement-converter-service/internal/core/services"
)

const templateContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) ListBanks(c *gin.Context) {
	banks := h.converterSvc.Banks()

	items := make([]dto.BankResponse, 0, len(banks))
	for _, b := range banks {
		items = append(items, dto.ToBankResponse(b))
	}

	c.JSON(http.StatusOK, dto.ListBanksResponse{Banks: items})
}

func (h *Handler) Convert(c *gin.Context) {
	filename, data, err := readUpload(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	req := services.ConvertRequest{
		Bank:            c.PostForm("bank"),
		Format:          outputFormat(c),
		Filename:        filename,
		Data:            data,
		AccountNumber:   c.PostForm("account_number"),
		StatementNumber: c.PostForm("statement_number"),
	}

	if raw := c.PostForm("opening_balance"); raw != "" {
		// Accept both "250,00" and "250.00"
		opening, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%v: %q", domain.ErrInvalidOpeningBalance, raw)})
			return
		}
		req.OpeningBalance = &opening
	}

	result, err := h.converterSvc.Convert(c.Request.Context(), req)
	if err != nil {
		log.WithError(err).WithField("bank", req.Bank).Warn("conversion failed")
		mapDomainError(c, err)
		return
	}

	if result.Job != nil {
		c.Header("X-Conversion-Job-ID", result.Job.ID.String())
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, []byte(result.Content))
}

func (h *Handler) Validate(c *gin.Context) {
	_, data, err := readUpload(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	result, err := h.converterSvc.Validate(c.PostForm("bank"), data)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToValidationResponse(result))
}

func (h *Handler) Summarize(c *gin.Context) {
	_, data, err := readUpload(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	summary, err := h.converterSvc.Summarize(c.PostForm("bank"), data)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

func (h *Handler) DownloadTemplate(c *gin.Context) {
	data, err := h.converterSvc.Template()
	if err != nil {
		log.WithError(err).Error("template generation failed")
		mapDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transacties_template.xlsx"`)
	c.Data(http.StatusOK, templateContentType, data)
}

// readUpload returns the "file" form part. A missing part maps to
// ErrMissingFile rather than a generic multipart error.
func readUpload(c *gin.Context) (string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, domain.ErrMissingFile
	}
	data, err := readAll(fileHeader)
	if err != nil {
		return "", nil, err
	}
	return fileHeader.Filename, data, nil
}

func readAll(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

func outputFormat(c *gin.Context) domain.OutputFormat {
	format := c.PostForm("format")
	if format == "" {
		return domain.FormatMT940
	}
	return domain.OutputFormat(format)
}
