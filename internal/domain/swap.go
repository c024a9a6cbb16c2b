package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSwapNotFound      = errors.New("swap request not found")
	ErrTargetNotFound    = errors.New("target user not found")
	ErrSelfSwap          = errors.New("cannot create a swap request with yourself")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotAuthorized     = errors.New("not authorized")
)

type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapAccepted  SwapStatus = "accepted"
	SwapRejected  SwapStatus = "rejected"
	SwapCancelled SwapStatus = "cancelled"
	SwapCompleted SwapStatus = "completed"
)

func (s SwapStatus) IsValid() bool {
	switch s {
	case SwapPending, SwapAccepted, SwapRejected, SwapCancelled, SwapCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is permitted from s.
func (s SwapStatus) IsTerminal() bool {
	switch s {
	case SwapRejected, SwapCancelled, SwapCompleted:
		return true
	default:
		return false
	}
}

type MeetingType string

const (
	MeetingInPerson MeetingType = "in-person"
	MeetingVideo    MeetingType = "video"
	MeetingChat     MeetingType = "chat"
)

func (m MeetingType) IsValid() bool {
	switch m {
	case MeetingInPerson, MeetingVideo, MeetingChat:
		return true
	default:
		return false
	}
}

type SwapRequest struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	FromUserID   uuid.UUID   `json:"fromUserId" db:"from_user_id"`
	ToUserID     uuid.UUID   `json:"toUserId" db:"to_user_id"`
	SkillOffered string      `json:"skillOffered" db:"skill_offered"`
	SkillWanted  string      `json:"skillWanted" db:"skill_wanted"`
	Message      *string     `json:"message,omitempty" db:"message"`
	Status       SwapStatus  `json:"status" db:"status"`
	ScheduledAt  *time.Time  `json:"scheduledAt,omitempty" db:"scheduled_at"`
	Duration     int         `json:"duration" db:"duration"`
	MeetingType  MeetingType `json:"meetingType" db:"meeting_type"`
	Location     *string     `json:"location,omitempty" db:"location"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
}

func (r *SwapRequest) IsParty(userID uuid.UUID) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

// Counterparty returns the other side of the swap relative to userID.
func (r *SwapRequest) Counterparty(userID uuid.UUID) uuid.UUID {
	if r.FromUserID == userID {
		return r.ToUserID
	}
	return r.FromUserID
}

// CanTransition checks both the state machine and which party may trigger
// the move:
//
//	pending  -> accepted   (recipient)
//	pending  -> rejected   (recipient)
//	pending  -> cancelled  (sender)
//	accepted -> completed  (either party)
//
// Everything else is refused; terminal states admit no transition at all.
func (r *SwapRequest) CanTransition(target SwapStatus, actorID uuid.UUID) error {
	if !r.IsParty(actorID) {
		return ErrNotAuthorized
	}

	switch {
	case r.Status == SwapPending && target == SwapAccepted:
		if actorID != r.ToUserID {
			return ErrNotAuthorized
		}
	case r.Status == SwapPending && target == SwapRejected:
		if actorID != r.ToUserID {
			return ErrNotAuthorized
		}
	case r.Status == SwapPending && target == SwapCancelled:
		if actorID != r.FromUserID {
			return ErrNotAuthorized
		}
	case r.Status == SwapAccepted && target == SwapCompleted:
	default:
		return ErrInvalidTransition
	}

	return nil
}

type CreateSwapInput struct {
	ToUserID     uuid.UUID   `json:"toUserId" validate:"required"`
	SkillOffered string      `json:"skillOffered" validate:"required"`
	SkillWanted  string      `json:"skillWanted" validate:"required"`
	Message      *string     `json:"message,omitempty"`
	Duration     int         `json:"duration,omitempty" validate:"omitempty,min=1"`
	MeetingType  MeetingType `json:"meetingType,omitempty"`
	Location     *string     `json:"location,omitempty"`
}

type UpdateSwapInput struct {
	Status      *SwapStatus `json:"status,omitempty"`
	ScheduledAt *time.Time  `json:"scheduledAt,omitempty"`
}

type SwapFilter struct {
	// Type is "sent", "received" or "all", relative to UserID. A nil UserID
	// (admin oversight) ignores Type and spans every user.
	UserID *uuid.UUID
	Type   string
	Status SwapStatus
}
