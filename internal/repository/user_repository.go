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

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetOnline(ctx context.Context, id uuid.UUID, online bool) error
	ListPublic(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error)
	ListMembers(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error)
	ListBroadcastTargets(ctx context.Context, audience string) ([]uuid.UUID, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, location, profile_photo,
			skills_offered, skills_wanted, availability, is_public, is_admin, rating, total_reviews)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING last_active, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Location, user.ProfilePhoto,
		user.SkillsOffered, user.SkillsWanted, user.Availability,
		user.IsPublic, user.IsAdmin, user.Rating, user.TotalReviews,
	).Scan(&user.LastActive, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE LOWER(email) = LOWER(TRIM($1)) AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER(TRIM($1)) AND deleted_at IS NULL)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

// Update writes every profile column except rating and total_reviews: those
// two belong to the review recompute and must never be clobbered here.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = :name, location = :location, profile_photo = :profile_photo,
			skills_offered = :skills_offered, skills_wanted = :skills_wanted,
			availability = :availability, is_public = :is_public, is_admin = :is_admin,
			updated_at = NOW()
		WHERE id = :id AND deleted_at IS NULL`

	_, err := r.db.NamedExecContext(ctx, query, user)
	return err
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *userRepository) SetOnline(ctx context.Context, id uuid.UUID, online bool) error {
	query := `UPDATE users SET is_online = $2, last_active = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id, online)
	return err
}

// ListPublic serves the unauthenticated browse/search surface: only public,
// non-admin profiles, matched case-insensitively on name, location and the
// names of offered/wanted skills.
func (r *userRepository) ListPublic(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error) {
	where := `is_public = TRUE AND is_admin = FALSE AND deleted_at IS NULL`
	return r.list(ctx, where, filter, params)
}

// ListMembers serves the admin oversight listing: every non-admin account,
// with "active"/"inactive" mapping to profile visibility.
func (r *userRepository) ListMembers(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error) {
	where := `is_admin = FALSE AND deleted_at IS NULL`
	switch filter.Status {
	case "active":
		where += ` AND is_public = TRUE`
	case "inactive":
		where += ` AND is_public = FALSE`
	}
	return r.list(ctx, where, filter, params)
}

func (r *userRepository) list(ctx context.Context, where string, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error) {
	params.Validate()

	args := []interface{}{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (name ILIKE $%d OR COALESCE(location, '') ILIKE $%d
			OR EXISTS (SELECT 1 FROM jsonb_array_elements(skills_offered) s WHERE s->>'name' ILIKE $%d)
			OR EXISTS (SELECT 1 FROM jsonb_array_elements(skills_wanted) s WHERE s->>'name' ILIKE $%d))`, n, n, n, n)
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		where += fmt.Sprintf(` AND COALESCE(location, '') ILIKE $%d`, len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM users WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`SELECT * FROM users WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	var users []domain.User
	err := r.db.SelectContext(ctx, &users, query, args...)
	return users, total, err
}

func (r *userRepository) ListBroadcastTargets(ctx context.Context, audience string) ([]uuid.UUID, error) {
	query := `SELECT id FROM users WHERE is_admin = FALSE AND deleted_at IS NULL`
	switch audience {
	case "active":
		query += ` AND is_public = TRUE`
	case "inactive":
		query += ` AND is_public = FALSE`
	}

	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, query)
	return ids, err
}
