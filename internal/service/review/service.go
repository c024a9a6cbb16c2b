package review

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"swapr-backend/internal/domain"
	"swapr-backend/internal/repository"
	"swapr-backend/internal/service/email"
	"swapr-backend/internal/service/notification"
)

// ErrInvalidReviewee means the revieweeId in the request is not the other
// party of the named swap.
var ErrInvalidReviewee = errors.New("reviewee is not the counterparty of this swap")

type Service interface {
	Create(ctx context.Context, reviewer *domain.User, input domain.CreateReviewInput) (*domain.Review, error)
	ListForUser(ctx context.Context, revieweeID uuid.UUID, params domain.PaginationParams) ([]domain.Review, int64, error)
	ListGiven(ctx context.Context, reviewerID uuid.UUID, params domain.PaginationParams) ([]domain.Review, int64, error)
}

type service struct {
	reviewRepo   repository.ReviewRepository
	swapRepo     repository.SwapRepository
	userRepo     repository.UserRepository
	notifService notification.Service
	emailService email.Service
}

func NewService(reviewRepo repository.ReviewRepository, swapRepo repository.SwapRepository, userRepo repository.UserRepository, notifService notification.Service, emailService email.Service) Service {
	return &service{
		reviewRepo:   reviewRepo,
		swapRepo:     swapRepo,
		userRepo:     userRepo,
		notifService: notifService,
		emailService: emailService,
	}
}

func (s *service) Create(ctx context.Context, reviewer *domain.User, input domain.CreateReviewInput) (*domain.Review, error) {
	swap, err := s.swapRepo.GetByID(ctx, input.SwapRequestID)
	if err != nil {
		return nil, err
	}
	if swap == nil {
		return nil, domain.ErrSwapNotFound
	}

	if !swap.IsParty(reviewer.ID) {
		return nil, domain.ErrNotAuthorized
	}
	if input.RevieweeID != swap.Counterparty(reviewer.ID) {
		return nil, ErrInvalidReviewee
	}

	existing, err := s.reviewRepo.GetBySwapAndReviewer(ctx, input.SwapRequestID, reviewer.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateReview
	}

	review := &domain.Review{
		ID:                  uuid.New(),
		SwapRequestID:       input.SwapRequestID,
		ReviewerID:          reviewer.ID,
		RevieweeID:          input.RevieweeID,
		Rating:              input.Rating,
		Comment:             input.Comment,
		SkillRating:         input.SkillRating,
		CommunicationRating: input.CommunicationRating,
		PunctualityRating:   input.PunctualityRating,
		HelpfulnessRating:   input.HelpfulnessRating,
		Tags:                pq.StringArray(input.Tags),
		WouldSwapAgain:      true,
	}
	if review.Tags == nil {
		review.Tags = pq.StringArray{}
	}
	if input.WouldSwapAgain != nil {
		review.WouldSwapAgain = *input.WouldSwapAgain
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// Two submissions can pass the pre-check concurrently; the unique
		// index breaks the tie.
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateReview
		}
		return nil, err
	}

	if _, _, err := s.reviewRepo.RecalculateUserRating(ctx, review.RevieweeID); err != nil {
		return nil, err
	}

	if err := s.notifService.NotifyReview(ctx, review, reviewer); err != nil {
		logrus.WithError(err).Warn("failed to notify review")
	}

	go func() {
		reviewee, err := s.userRepo.GetByID(context.Background(), review.RevieweeID)
		if err != nil || reviewee == nil {
			logrus.WithError(err).Warn("failed to load reviewee for email")
			return
		}
		if err := s.emailService.SendReviewEmail(context.Background(),
			reviewee.Email, reviewee.Name, reviewer.Name, review.Rating); err != nil {
			logrus.WithError(err).Warn("failed to send review email")
		}
	}()

	return review, nil
}

func (s *service) ListForUser(ctx context.Context, revieweeID uuid.UUID, params domain.PaginationParams) ([]domain.Review, int64, error) {
	return s.reviewRepo.ListByReviewee(ctx, revieweeID, params)
}

func (s *service) ListGiven(ctx context.Context, reviewerID uuid.UUID, params domain.PaginationParams) ([]domain.Review, int64, error) {
	return s.reviewRepo.ListByReviewer(ctx, reviewerID, params)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
