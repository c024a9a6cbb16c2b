package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"swapr-backend/internal/domain"
)

type MockSwapRepository struct {
	mock.Mock
}

func (m *MockSwapRepository) Create(ctx context.Context, swap *domain.SwapRequest) error {
	args := m.Called(ctx, swap)
	return args.Error(0)
}

func (m *MockSwapRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SwapRequest), args.Error(1)
}

func (m *MockSwapRepository) Update(ctx context.Context, swap *domain.SwapRequest) error {
	args := m.Called(ctx, swap)
	return args.Error(0)
}

func (m *MockSwapRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSwapRepository) List(ctx context.Context, filter domain.SwapFilter, params domain.PaginationParams) ([]domain.SwapRequest, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.SwapRequest), args.Get(1).(int64), args.Error(2)
}
