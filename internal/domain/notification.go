package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"userId" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	IsRead    bool             `json:"isRead" db:"is_read"`
	Data      json.RawMessage  `json:"data,omitempty" db:"data"`
	ActionURL *string          `json:"actionUrl,omitempty" db:"action_url"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}

type NotificationType string

const (
	NotifSwapRequest       NotificationType = "swap_request"
	NotifSwapAccepted      NotificationType = "swap_accepted"
	NotifSwapRejected      NotificationType = "swap_rejected"
	NotifSwapCompleted     NotificationType = "swap_completed"
	NotifReview            NotificationType = "review"
	NotifAdminAnnouncement NotificationType = "admin_announcement"
)

type BroadcastInput struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
	SendTo  string `json:"sendTo" validate:"omitempty,oneof=all active inactive"`
}

// NotificationList is the wire envelope for the notification listing; the
// unread count rides along so clients can badge without a second call.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
	Pagination    Pagination     `json:"pagination"`
}
