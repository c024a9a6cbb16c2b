package unit

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swapr-backend/internal/domain"
	"swapr-backend/internal/service/notification"
	"swapr-backend/tests/mocks"
)

func newNotificationService() (notification.Service, *mocks.MockNotificationRepository, *mocks.MockUserRepository) {
	notifRepo := new(mocks.MockNotificationRepository)
	userRepo := new(mocks.MockUserRepository)

	svc := notification.NewService(notifRepo, userRepo, nil)
	return svc, notifRepo, userRepo
}

func TestListNotifications_UnreadOnlyPassesThrough(t *testing.T) {
	svc, notifRepo, _ := newNotificationService()
	userID := uuid.New()
	params := domain.DefaultPagination()

	notifRepo.On("ListByUser", mock.Anything, userID, true, params).
		Return([]domain.Notification{{ID: uuid.New(), UserID: userID}}, int64(1), nil)
	notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(1), nil)

	list, err := svc.List(context.Background(), userID, true, params)

	require.NoError(t, err)
	assert.Len(t, list.Notifications, 1)
	assert.Equal(t, int64(1), list.UnreadCount)
	assert.Equal(t, int64(1), list.Pagination.Total)
}

func TestMarkAsRead_NotOwned(t *testing.T) {
	svc, notifRepo, _ := newNotificationService()
	id := uuid.New()
	userID := uuid.New()

	notifRepo.On("MarkAsRead", mock.Anything, id, userID).Return(nil, nil)

	_, err := svc.MarkAsRead(context.Background(), id, userID)
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}

func TestBroadcast_CountsTargets(t *testing.T) {
	svc, notifRepo, userRepo := newNotificationService()
	targets := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	userRepo.On("ListBroadcastTargets", mock.Anything, "active").Return(targets, nil)
	notifRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(notifs []domain.Notification) bool {
		if len(notifs) != 3 {
			return false
		}
		for _, n := range notifs {
			if n.Type != domain.NotifAdminAnnouncement || n.Title != "Maintenance" {
				return false
			}
		}
		return true
	})).Return(nil)

	sent, err := svc.Broadcast(context.Background(), domain.BroadcastInput{
		Title:   "Maintenance",
		Message: "Downtime at midnight",
		SendTo:  "active",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, sent)
}

func TestBroadcast_DefaultsToAll(t *testing.T) {
	svc, notifRepo, userRepo := newNotificationService()

	userRepo.On("ListBroadcastTargets", mock.Anything, "all").Return([]uuid.UUID{}, nil)

	sent, err := svc.Broadcast(context.Background(), domain.BroadcastInput{
		Title:   "Hello",
		Message: "World",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	notifRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestNotifySwapStatus_Accepted(t *testing.T) {
	svc, notifRepo, _ := newNotificationService()
	sender := uuid.New()
	actor := &domain.User{ID: uuid.New(), Name: "Ben"}

	swap := &domain.SwapRequest{
		ID:         uuid.New(),
		FromUserID: sender,
		ToUserID:   actor.ID,
		Status:     domain.SwapAccepted,
	}

	notifRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == sender &&
			n.Type == domain.NotifSwapAccepted &&
			n.Title == "Swap Request Accepted" &&
			n.Message == "Ben accepted your swap request"
	})).Return(nil)

	err := svc.NotifySwapStatus(context.Background(), swap, actor, domain.SwapAccepted)
	require.NoError(t, err)
	notifRepo.AssertExpectations(t)
}

func TestNotifySwapRequest_DataCarriesSwapRequestID(t *testing.T) {
	svc, notifRepo, _ := newNotificationService()
	sender := &domain.User{ID: uuid.New(), Name: "Ana"}

	swap := &domain.SwapRequest{
		ID:           uuid.New(),
		FromUserID:   sender.ID,
		ToUserID:     uuid.New(),
		SkillOffered: "Guitar",
		SkillWanted:  "Spanish",
		Status:       domain.SwapPending,
	}

	notifRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return strings.Contains(string(n.Data), `"swapRequestId":"`+swap.ID.String()+`"`)
	})).Return(nil)

	err := svc.NotifySwapRequest(context.Background(), swap, sender)
	require.NoError(t, err)
	notifRepo.AssertExpectations(t)
}

func TestUnreadListEmptyAfterMarkAllAsRead(t *testing.T) {
	svc, notifRepo, _ := newNotificationService()
	userID := uuid.New()
	params := domain.DefaultPagination()

	notifRepo.On("ListByUser", mock.Anything, userID, true, params).
		Return([]domain.Notification{{ID: uuid.New(), UserID: userID}}, int64(1), nil).Once()
	notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(1), nil).Once()

	before, err := svc.List(context.Background(), userID, true, params)
	require.NoError(t, err)
	require.Len(t, before.Notifications, 1)
	require.Equal(t, int64(1), before.UnreadCount)

	notifRepo.On("MarkAllAsRead", mock.Anything, userID).Return(nil)
	require.NoError(t, svc.MarkAllAsRead(context.Background(), userID))

	notifRepo.On("ListByUser", mock.Anything, userID, true, params).
		Return([]domain.Notification{}, int64(0), nil).Once()
	notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(0), nil).Once()

	after, err := svc.List(context.Background(), userID, true, params)
	require.NoError(t, err)
	assert.Empty(t, after.Notifications)
	assert.Equal(t, int64(0), after.UnreadCount)
}

func TestNotifySwapStatus_CancelledIsSilent(t *testing.T) {
	svc, notifRepo, _ := newNotificationService()
	actor := &domain.User{ID: uuid.New(), Name: "Ana"}

	swap := &domain.SwapRequest{
		ID:         uuid.New(),
		FromUserID: actor.ID,
		ToUserID:   uuid.New(),
		Status:     domain.SwapCancelled,
	}

	err := svc.NotifySwapStatus(context.Background(), swap, actor, domain.SwapCancelled)
	require.NoError(t, err)
	notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotifyReview_MessageFormat(t *testing.T) {
	svc, notifRepo, _ := newNotificationService()
	reviewer := &domain.User{ID: uuid.New(), Name: "Ana"}
	revieweeID := uuid.New()

	review := &domain.Review{
		ID:            uuid.New(),
		SwapRequestID: uuid.New(),
		ReviewerID:    reviewer.ID,
		RevieweeID:    revieweeID,
		Rating:        5,
	}

	notifRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == revieweeID &&
			n.Type == domain.NotifReview &&
			n.Title == "New Review" &&
			n.Message == "Ana left you a 5-star review"
	})).Return(nil)

	err := svc.NotifyReview(context.Background(), review, reviewer)
	require.NoError(t, err)
	notifRepo.AssertExpectations(t)
}
