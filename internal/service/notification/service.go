package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"swapr-backend/internal/domain"
	"swapr-backend/internal/repository"
)

const unreadCacheTTL = 5 * time.Minute

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (*domain.NotificationList, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Broadcast(ctx context.Context, input domain.BroadcastInput) (int, error)

	NotifySwapRequest(ctx context.Context, swap *domain.SwapRequest, sender *domain.User) error
	NotifySwapStatus(ctx context.Context, swap *domain.SwapRequest, actor *domain.User, status domain.SwapStatus) error
	NotifyReview(ctx context.Context, review *domain.Review, reviewer *domain.User) error
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	redis     *redis.Client
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, redisClient *redis.Client) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		redis:     redisClient,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (*domain.NotificationList, error) {
	params.Validate()

	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}

	unread, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.NotificationList{
		Notifications: notifications,
		UnreadCount:   unread,
		Pagination:    domain.NewPagination(params, total),
	}, nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	notification, err := s.notifRepo.MarkAsRead(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, domain.ErrNotificationNotFound
	}

	s.invalidateUnread(ctx, userID)
	return notification, nil
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notifRepo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.notifRepo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	cacheKey := unreadCacheKey(userID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, cacheKey, count, unreadCacheTTL).Err(); err != nil {
			logrus.WithError(err).Warn("failed to cache unread count")
		}
	}

	return count, nil
}

func (s *service) Broadcast(ctx context.Context, input domain.BroadcastInput) (int, error) {
	audience := input.SendTo
	if audience == "" {
		audience = "all"
	}

	targets, err := s.userRepo.ListBroadcastTargets(ctx, audience)
	if err != nil {
		return 0, err
	}
	if len(targets) == 0 {
		return 0, nil
	}

	notifications := make([]domain.Notification, 0, len(targets))
	for _, userID := range targets {
		notifications = append(notifications, domain.Notification{
			ID:      uuid.New(),
			UserID:  userID,
			Type:    domain.NotifAdminAnnouncement,
			Title:   input.Title,
			Message: input.Message,
		})
	}

	if err := s.notifRepo.CreateBatch(ctx, notifications); err != nil {
		return 0, err
	}

	for _, userID := range targets {
		s.invalidateUnread(ctx, userID)
	}

	return len(targets), nil
}

func (s *service) NotifySwapRequest(ctx context.Context, swap *domain.SwapRequest, sender *domain.User) error {
	actionURL := "/swaps"
	return s.create(ctx, &domain.Notification{
		ID:        uuid.New(),
		UserID:    swap.ToUserID,
		Type:      domain.NotifSwapRequest,
		Title:     "New Swap Request",
		Message:   fmt.Sprintf("%s wants to swap %s for %s", sender.Name, swap.SkillOffered, swap.SkillWanted),
		Data:      swapData(swap),
		ActionURL: &actionURL,
	})
}

func (s *service) NotifySwapStatus(ctx context.Context, swap *domain.SwapRequest, actor *domain.User, status domain.SwapStatus) error {
	var title, message string
	switch status {
	case domain.SwapAccepted:
		title = "Swap Request Accepted"
		message = fmt.Sprintf("%s accepted your swap request", actor.Name)
	case domain.SwapRejected:
		title = "Swap Request Declined"
		message = fmt.Sprintf("%s declined your swap request", actor.Name)
	case domain.SwapCompleted:
		title = "Swap Completed"
		message = fmt.Sprintf("Your swap with %s has been marked as completed", actor.Name)
	default:
		// Cancellations are silent. The counterparty sees the change in
		// their swap list without an inbox entry.
		return nil
	}

	actionURL := "/swaps"
	return s.create(ctx, &domain.Notification{
		ID:        uuid.New(),
		UserID:    swap.Counterparty(actor.ID),
		Type:      notifTypeForStatus(status),
		Title:     title,
		Message:   message,
		Data:      swapData(swap),
		ActionURL: &actionURL,
	})
}

func (s *service) NotifyReview(ctx context.Context, review *domain.Review, reviewer *domain.User) error {
	data, _ := json.Marshal(map[string]string{
		"reviewId":      review.ID.String(),
		"swapRequestId": review.SwapRequestID.String(),
	})

	actionURL := "/profile"
	return s.create(ctx, &domain.Notification{
		ID:        uuid.New(),
		UserID:    review.RevieweeID,
		Type:      domain.NotifReview,
		Title:     "New Review",
		Message:   fmt.Sprintf("%s left you a %d-star review", reviewer.Name, review.Rating),
		Data:      data,
		ActionURL: &actionURL,
	})
}

func (s *service) create(ctx context.Context, notification *domain.Notification) error {
	if err := s.notifRepo.Create(ctx, notification); err != nil {
		return err
	}
	s.invalidateUnread(ctx, notification.UserID)
	return nil
}

func (s *service) invalidateUnread(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, unreadCacheKey(userID)).Err(); err != nil {
		logrus.WithError(err).Warn("failed to invalidate unread count cache")
	}
}

func unreadCacheKey(userID uuid.UUID) string {
	return "notif:unread:" + userID.String()
}

func notifTypeForStatus(status domain.SwapStatus) domain.NotificationType {
	switch status {
	case domain.SwapAccepted:
		return domain.NotifSwapAccepted
	case domain.SwapRejected:
		return domain.NotifSwapRejected
	default:
		return domain.NotifSwapCompleted
	}
}

func swapData(swap *domain.SwapRequest) json.RawMessage {
	data, _ := json.Marshal(map[string]string{
		"swapRequestId": swap.ID.String(),
	})
	return data
}
