package ports

import (
	"context"

	"github.com/google/uuid"

	"statement-converter-service/internal/core/domain"
)

// JobListFilter pages through conversion history, newest first.
type JobListFilter struct {
	Bank   string
	Limit  int
	Offset int
}

// ConversionJobRepository persists conversion history.
type ConversionJobRepository interface {
	Create(ctx context.Context, job *domain.ConversionJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ConversionJob, error)
	List(ctx context.Context, filter JobListFilter) ([]*domain.ConversionJob, int, error)
}
