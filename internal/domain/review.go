package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrDuplicateReview = errors.New("review already exists")

type Review struct {
	ID                  uuid.UUID      `json:"id" db:"id"`
	SwapRequestID       uuid.UUID      `json:"swapRequestId" db:"swap_request_id"`
	ReviewerID          uuid.UUID      `json:"reviewerId" db:"reviewer_id"`
	RevieweeID          uuid.UUID      `json:"revieweeId" db:"reviewee_id"`
	Rating              int            `json:"rating" db:"rating"`
	Comment             *string        `json:"comment,omitempty" db:"comment"`
	SkillRating         *int           `json:"skillRating,omitempty" db:"skill_rating"`
	CommunicationRating *int           `json:"communicationRating,omitempty" db:"communication_rating"`
	PunctualityRating   *int           `json:"punctualityRating,omitempty" db:"punctuality_rating"`
	HelpfulnessRating   *int           `json:"helpfulnessRating,omitempty" db:"helpfulness_rating"`
	Tags                pq.StringArray `json:"tags" db:"tags"`
	WouldSwapAgain      bool           `json:"wouldSwapAgain" db:"would_swap_again"`
	CreatedAt           time.Time      `json:"createdAt" db:"created_at"`
}

type CreateReviewInput struct {
	SwapRequestID       uuid.UUID `json:"swapRequestId" validate:"required"`
	RevieweeID          uuid.UUID `json:"revieweeId" validate:"required"`
	Rating              int       `json:"rating" validate:"required,min=1,max=5"`
	Comment             *string   `json:"comment,omitempty"`
	SkillRating         *int      `json:"skillRating,omitempty" validate:"omitempty,min=1,max=5"`
	CommunicationRating *int      `json:"communicationRating,omitempty" validate:"omitempty,min=1,max=5"`
	PunctualityRating   *int      `json:"punctualityRating,omitempty" validate:"omitempty,min=1,max=5"`
	HelpfulnessRating   *int      `json:"helpfulnessRating,omitempty" validate:"omitempty,min=1,max=5"`
	Tags                []string  `json:"tags,omitempty"`
	WouldSwapAgain      *bool     `json:"wouldSwapAgain,omitempty"`
}
