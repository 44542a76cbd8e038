package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"statement-converter-service/internal/core/domain"
	ports "statement-converter-service/internal/core/ports/output"
)

const defaultCurrency = "EUR"

// ConvertRequest carries one uploaded file plus the caller's overrides.
// Optional fields default from the file contents.
type ConvertRequest struct {
	Bank            string
	Format          domain.OutputFormat
	Filename        string
	Data            []byte
	AccountNumber   string
	StatementNumber string
	OpeningBalance  *decimal.Decimal
}

// ConvertResult is the rendered statement plus its download metadata.
type ConvertResult struct {
	Content     string
	ContentType string
	Filename    string
	Job         *domain.ConversionJob
}

type ConverterService struct {
	registry   ports.ParserRegistry
	formatters map[domain.OutputFormat]ports.StatementFormatter
	templates  ports.TemplateGenerator
	jobs       ports.ConversionJobRepository
}

// NewConverterService wires the parser registry and formatters. jobs may be
// nil, in which case conversions are not recorded and the history endpoints
// report the store as disabled.
func NewConverterService(
	registry ports.ParserRegistry,
	formatters map[domain.OutputFormat]ports.StatementFormatter,
	templates ports.TemplateGenerator,
	jobs ports.ConversionJobRepository,
) *ConverterService {
	return &ConverterService{
		registry:   registry,
		formatters: formatters,
		templates:  templates,
		jobs:       jobs,
	}
}

func (s *ConverterService) Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error) {
	if len(req.Data) == 0 {
		return nil, domain.ErrMissingFile
	}
	if req.Bank == "" {
		return nil, domain.ErrMissingBank
	}

	parser, err := s.registry.Get(req.Bank)
	if err != nil {
		return nil, err
	}

	formatter, ok := s.formatters[req.Format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownOutputFormat, req.Format)
	}

	transactions, err := parser.Parse(req.Data)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, domain.ErrEmptyFile
	}

	info, err := parser.AccountInfo(req.Data)
	if err != nil {
		return nil, err
	}

	accountNumber := req.AccountNumber
	if accountNumber == "" {
		accountNumber = info.AccountNumber
	}
	statementNumber := req.StatementNumber
	if statementNumber == "" {
		statementNumber = "CC" + info.StartDate.Format("20060102")
	}
	opening := decimal.Zero
	if req.OpeningBalance != nil {
		opening = *req.OpeningBalance
	}

	stmt := &domain.AccountStatement{
		AccountNumber:   accountNumber,
		StatementNumber: statementNumber,
		OpeningBalance:  opening,
		ClosingBalance:  domain.ClosingBalance(opening, transactions),
		Currency:        defaultCurrency,
		Date:            info.EndDate,
		Transactions:    transactions,
	}

	content, err := formatter.Format(stmt)
	if err != nil {
		return nil, err
	}

	result := &ConvertResult{
		Content:     content,
		ContentType: formatter.ContentType(),
		Filename:    fmt.Sprintf("%s_%s.%s", req.Format, time.Now().Format("20060102_150405"), formatter.FileExtension()),
	}
	result.Job = s.recordJob(ctx, req, stmt)

	return result, nil
}

// recordJob persists the conversion when a repository is configured. A
// failure to record never fails the conversion itself.
func (s *ConverterService) recordJob(ctx context.Context, req ConvertRequest, stmt *domain.AccountStatement) *domain.ConversionJob {
	if s.jobs == nil {
		return nil
	}

	job := &domain.ConversionJob{
		ID:               uuid.New(),
		CreatedAt:        time.Now(),
		Bank:             req.Bank,
		Format:           req.Format,
		SourceFilename:   req.Filename,
		AccountNumber:    stmt.AccountNumber,
		StatementNumber:  stmt.StatementNumber,
		TransactionCount: len(stmt.Transactions),
		OpeningBalance:   stmt.OpeningBalance,
		ClosingBalance:   stmt.ClosingBalance,
		Status:           domain.JobStatusCompleted,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		log.WithError(err).Warn("failed to record conversion job")
		return nil
	}
	return job
}

// Validate checks an upload against the selected bank format without
// converting it.
func (s *ConverterService) Validate(bank string, data []byte) (domain.ValidationResult, error) {
	if len(data) == 0 {
		return domain.ValidationResult{}, domain.ErrMissingFile
	}
	parser, err := s.registry.Get(bank)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	return parser.Validate(data), nil
}

// Summarize parses an upload and returns totals for preview.
func (s *ConverterService) Summarize(bank string, data []byte) (*domain.Summary, error) {
	if len(data) == 0 {
		return nil, domain.ErrMissingFile
	}
	parser, err := s.registry.Get(bank)
	if err != nil {
		return nil, err
	}

	transactions, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, domain.ErrEmptyFile
	}

	info, err := parser.AccountInfo(data)
	if err != nil {
		return nil, err
	}

	return domain.Summarize(info.AccountNumber, info.StartDate, info.EndDate, transactions), nil
}

func (s *ConverterService) Banks() []domain.BankInfo {
	return s.registry.Banks()
}

// Template produces the manual-entry spreadsheet.
func (s *ConverterService) Template() ([]byte, error) {
	return s.templates.Generate()
}

func (s *ConverterService) GetJob(ctx context.Context, id uuid.UUID) (*domain.ConversionJob, error) {
	if s.jobs == nil {
		return nil, domain.ErrJobStoreDisabled
	}
	return s.jobs.GetByID(ctx, id)
}

func (s *ConverterService) ListJobs(ctx context.Context, filter ports.JobListFilter) ([]*domain.ConversionJob, int, error) {
	if s.jobs == nil {
		return nil, 0, domain.ErrJobStoreDisabled
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.jobs.List(ctx, filter)
}
