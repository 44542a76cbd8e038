package ports

import (
	"statement-converter-service/internal/core/domain"
)

// StatementParser reads one bank's export format and produces normalized
// transactions with the bank's business rules already applied.
type StatementParser interface {
	// Bank returns the registry key, e.g. "rabobank_new".
	Bank() string
	// Name returns the bank name shown to users.
	Name() string
	// DisplayName distinguishes format variants of the same bank.
	DisplayName() string
	// FileTypes lists supported file extensions without the dot.
	FileTypes() []string

	Parse(data []byte) ([]domain.Transaction, error)
	AccountInfo(data []byte) (domain.AccountInfo, error)
	Validate(data []byte) domain.ValidationResult
}

// ParserRegistry resolves bank keys to parsers.
type ParserRegistry interface {
	Get(bank string) (StatementParser, error)
	Banks() []domain.BankInfo
}

// TemplateGenerator produces the fill-in spreadsheet for manual entry.
type TemplateGenerator interface {
	Generate() ([]byte, error)
}
