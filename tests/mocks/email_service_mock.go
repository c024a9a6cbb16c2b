package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	args := m.Called(ctx, toEmail, name)
	return args.Error(0)
}

func (m *MockEmailService) SendSwapRequestEmail(ctx context.Context, toEmail, recipientName, senderName, skillOffered, skillWanted string) error {
	args := m.Called(ctx, toEmail, recipientName, senderName, skillOffered, skillWanted)
	return args.Error(0)
}

func (m *MockEmailService) SendSwapStatusEmail(ctx context.Context, toEmail, recipientName, actorName, status string) error {
	args := m.Called(ctx, toEmail, recipientName, actorName, status)
	return args.Error(0)
}

func (m *MockEmailService) SendReviewEmail(ctx context.Context, toEmail, recipientName, reviewerName string, rating int) error {
	args := m.Called(ctx, toEmail, recipientName, reviewerName, rating)
	return args.Error(0)
}
