package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"swapr-backend/internal/domain"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetBySwapAndReviewer(ctx context.Context, swapRequestID, reviewerID uuid.UUID) (*domain.Review, error) {
	args := m.Called(ctx, swapRequestID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByReviewee(ctx context.Context, revieweeID uuid.UUID, params domain.PaginationParams) ([]domain.Review, int64, error) {
	args := m.Called(ctx, revieweeID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ListByReviewer(ctx context.Context, reviewerID uuid.UUID, params domain.PaginationParams) ([]domain.Review, int64, error) {
	args := m.Called(ctx, reviewerID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) RecalculateUserRating(ctx context.Context, revieweeID uuid.UUID) (float64, int, error) {
	args := m.Called(ctx, revieweeID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}
