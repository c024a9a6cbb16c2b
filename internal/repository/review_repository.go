package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"swapr-backend/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetBySwapAndReviewer(ctx context.Context, swapRequestID, reviewerID uuid.UUID) (*domain.Review, error)
	ListByReviewee(ctx context.Context, revieweeID uuid.UUID, params domain.PaginationParams) ([]domain.Review, int64, error)
	ListByReviewer(ctx context.Context, reviewerID uuid.UUID, params domain.PaginationParams) ([]domain.Review, int64, error)
	RecalculateUserRating(ctx context.Context, revieweeID uuid.UUID) (float64, int, error)
}

type reviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, swap_request_id, reviewer_id, reviewee_id, rating, comment,
			skill_rating, communication_rating, punctuality_rating, helpfulness_rating,
			tags, would_swap_again)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		review.ID, review.SwapRequestID, review.ReviewerID, review.RevieweeID,
		review.Rating, review.Comment,
		review.SkillRating, review.CommunicationRating, review.PunctualityRating,
		review.HelpfulnessRating, review.Tags, review.WouldSwapAgain,
	).Scan(&review.CreatedAt)
}

func (r *reviewRepository) GetBySwapAndReviewer(ctx context.Context, swapRequestID, reviewerID uuid.UUID) (*domain.Review, error) {
	var review domain.Review
	query := `SELECT * FROM reviews WHERE swap_request_id = $1 AND reviewer_id = $2`

	err := r.db.GetContext(ctx, &review, query, swapRequestID, reviewerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByReviewee(ctx context.Context, revieweeID uuid.UUID, params domain.PaginationParams) ([]domain.Review, int64, error) {
	return r.listBy(ctx, "reviewee_id", revieweeID, params)
}

func (r *reviewRepository) ListByReviewer(ctx context.Context, reviewerID uuid.UUID, params domain.PaginationParams) ([]domain.Review, int64, error) {
	return r.listBy(ctx, "reviewer_id", reviewerID, params)
}

func (r *reviewRepository) listBy(ctx context.Context, column string, id uuid.UUID, params domain.PaginationParams) ([]domain.Review, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM reviews WHERE ` + column + ` = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, id); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM reviews WHERE ` + column + ` = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	var reviews []domain.Review
	err := r.db.SelectContext(ctx, &reviews, query, id, params.Limit, params.Offset())
	return reviews, total, err
}

// RecalculateUserRating rewrites the reviewee's aggregate from the full
// review history in one statement, so concurrent submissions cannot land a
// stale mean. Only the two aggregate columns are touched; a user with no
// reviews keeps the 5.0 they started with.
func (r *reviewRepository) RecalculateUserRating(ctx context.Context, revieweeID uuid.UUID) (float64, int, error) {
	query := `
		UPDATE users
		SET rating = COALESCE((SELECT AVG(rating)::float8 FROM reviews WHERE reviewee_id = $1), 5.0),
			total_reviews = (SELECT COUNT(*) FROM reviews WHERE reviewee_id = $1),
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING rating, total_reviews`

	var rating float64
	var totalReviews int
	err := r.db.QueryRowxContext(ctx, query, revieweeID).Scan(&rating, &totalReviews)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, domain.ErrUserNotFound
	}
	return rating, totalReviews, err
}
