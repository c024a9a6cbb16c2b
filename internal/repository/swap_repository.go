package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"swapr-backend/internal/domain"
)

type SwapRepository interface {
	Create(ctx context.Context, swap *domain.SwapRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error)
	Update(ctx context.Context, swap *domain.SwapRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.SwapFilter, params domain.PaginationParams) ([]domain.SwapRequest, int64, error)
}

type swapRepository struct {
	db *sqlx.DB
}

func NewSwapRepository(db *sqlx.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, swap *domain.SwapRequest) error {
	query := `
		INSERT INTO swap_requests (id, from_user_id, to_user_id, skill_offered, skill_wanted,
			message, status, duration, meeting_type, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		swap.ID, swap.FromUserID, swap.ToUserID, swap.SkillOffered, swap.SkillWanted,
		swap.Message, swap.Status, swap.Duration, swap.MeetingType, swap.Location,
	).Scan(&swap.CreatedAt, &swap.UpdatedAt)
}

func (r *swapRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	var swap domain.SwapRequest
	query := `SELECT * FROM swap_requests WHERE id = $1`

	err := r.db.GetContext(ctx, &swap, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &swap, nil
}

func (r *swapRepository) Update(ctx context.Context, swap *domain.SwapRequest) error {
	query := `
		UPDATE swap_requests
		SET status = $2, scheduled_at = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, swap.ID, swap.Status, swap.ScheduledAt).Scan(&swap.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrSwapNotFound
	}
	return err
}

func (r *swapRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM swap_requests WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *swapRepository) List(ctx context.Context, filter domain.SwapFilter, params domain.PaginationParams) ([]domain.SwapRequest, int64, error) {
	params.Validate()

	where := `1 = 1`
	args := []interface{}{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		n := len(args)
		switch filter.Type {
		case "sent":
			where += fmt.Sprintf(` AND from_user_id = $%d`, n)
		case "received":
			where += fmt.Sprintf(` AND to_user_id = $%d`, n)
		default:
			where += fmt.Sprintf(` AND (from_user_id = $%d OR to_user_id = $%d)`, n, n)
		}
	}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM swap_requests WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`SELECT * FROM swap_requests WHERE %s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	var swaps []domain.SwapRequest
	err := r.db.SelectContext(ctx, &swaps, query, args...)
	return swaps, total, err
}
