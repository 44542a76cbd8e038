package ports

import (
	"statement-converter-service/internal/core/domain"
)

// StatementFormatter renders an account statement into an interchange format.
type StatementFormatter interface {
	Format(stmt *domain.AccountStatement) (string, error)
	// ContentType is the MIME type of the rendered document.
	ContentType() string
	// FileExtension is used to build download filenames, without the dot.
	FileExtension() string
}
