package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OutputFormat selects the statement rendering.
type OutputFormat string

const (
	FormatMT940   OutputFormat = "mt940"
	FormatCAMT053 OutputFormat = "camt053"
)

type JobStatus string

const (
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

// ConversionJob records one completed conversion for the history endpoints.
type ConversionJob struct {
	ID               uuid.UUID
	CreatedAt        time.Time
	Bank             string
	Format           OutputFormat
	SourceFilename   string
	AccountNumber    string
	StatementNumber  string
	TransactionCount int
	OpeningBalance   decimal.Decimal
	ClosingBalance   decimal.Decimal
	Status           JobStatus
}
