package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"swapr-backend/internal/domain"
)

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (*domain.NotificationList, error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationList), args.Error(1)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) Broadcast(ctx context.Context, input domain.BroadcastInput) (int, error) {
	args := m.Called(ctx, input)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) NotifySwapRequest(ctx context.Context, swap *domain.SwapRequest, sender *domain.User) error {
	args := m.Called(ctx, swap, sender)
	return args.Error(0)
}

func (m *MockNotificationService) NotifySwapStatus(ctx context.Context, swap *domain.SwapRequest, actor *domain.User, status domain.SwapStatus) error {
	args := m.Called(ctx, swap, actor, status)
	return args.Error(0)
}

func (m *MockNotificationService) NotifyReview(ctx context.Context, review *domain.Review, reviewer *domain.User) error {
	args := m.Called(ctx, review, reviewer)
	return args.Error(0)
}
