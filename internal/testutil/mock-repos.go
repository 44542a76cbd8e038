package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"statement-converter-service/internal/core/domain"
	ports "statement-converter-service/internal/core/ports/output"
)

// MockConversionJobRepo is a mock of ConversionJobRepository.
type MockConversionJobRepo struct {
	mock.Mock
}

func (m *MockConversionJobRepo) Create(ctx context.Context, job *domain.ConversionJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockConversionJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ConversionJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionJob), args.Error(1)
}

func (m *MockConversionJobRepo) List(ctx context.Context, filter ports.JobListFilter) ([]*domain.ConversionJob, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ConversionJob), args.Int(1), args.Error(2)
}
