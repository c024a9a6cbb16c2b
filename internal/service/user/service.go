package user

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"swapr-backend/internal/domain"
	"swapr-backend/internal/repository"
)

const profileCacheTTL = 10 * time.Minute

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetVisibleByID(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error)
	ListPublic(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error)
	ListMembers(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error)
	AdminUpdate(ctx context.Context, id uuid.UUID, input domain.AdminUpdateUserInput) (*domain.User, error)
	AdminDelete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	userRepo repository.UserRepository
	redis    *redis.Client
}

func NewService(userRepo repository.UserRepository, redisClient *redis.Client) Service {
	return &service{
		userRepo: userRepo,
		redis:    redisClient,
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// GetVisibleByID applies profile visibility. Private profiles resolve only
// for their owner and for admins; everyone else gets a not-found so the
// existence of a hidden profile is not leaked.
func (s *service) GetVisibleByID(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.User, error) {
	user := s.getCachedProfile(ctx, id)
	if user == nil {
		var err error
		user, err = s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
		s.cacheProfile(ctx, user)
	}

	if !user.IsPublic && !canSeePrivate(viewer, id) {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	applyProfileInput(user, input)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.invalidateProfile(ctx, userID)
	return user, nil
}

func (s *service) ListPublic(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error) {
	params.Validate()
	return s.userRepo.ListPublic(ctx, filter, params)
}

func (s *service) ListMembers(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error) {
	params.Validate()
	return s.userRepo.ListMembers(ctx, filter, params)
}

func (s *service) AdminUpdate(ctx context.Context, id uuid.UUID, input domain.AdminUpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	applyProfileInput(user, domain.UpdateProfileInput{
		Name:          input.Name,
		Location:      input.Location,
		ProfilePhoto:  input.ProfilePhoto,
		IsPublic:      input.IsPublic,
		SkillsOffered: input.SkillsOffered,
		SkillsWanted:  input.SkillsWanted,
		Availability:  input.Availability,
	})
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.invalidateProfile(ctx, id)
	return user, nil
}

func (s *service) AdminDelete(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateProfile(ctx, id)
	return nil
}

func applyProfileInput(user *domain.User, input domain.UpdateProfileInput) {
	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" {
			user.Name = name
		}
	}
	if input.Location != nil {
		location := strings.TrimSpace(*input.Location)
		if location == "" {
			user.Location = nil
		} else {
			user.Location = &location
		}
	}
	if input.ProfilePhoto != nil {
		user.ProfilePhoto = input.ProfilePhoto
	}
	if input.IsPublic != nil {
		user.IsPublic = *input.IsPublic
	}
	if input.SkillsOffered != nil {
		user.SkillsOffered = domain.NormalizeSkills(*input.SkillsOffered, domain.LevelIntermediate)
	}
	if input.SkillsWanted != nil {
		user.SkillsWanted = domain.NormalizeSkills(*input.SkillsWanted, domain.LevelBeginner)
	}
	if input.Availability != nil {
		user.Availability = domain.NormalizeAvailability(*input.Availability)
	}
}

func canSeePrivate(viewer *domain.User, ownerID uuid.UUID) bool {
	if viewer == nil {
		return false
	}
	return viewer.ID == ownerID || viewer.IsAdmin
}

func (s *service) getCachedProfile(ctx context.Context, id uuid.UUID) *domain.User {
	if s.redis == nil {
		return nil
	}

	data, err := s.redis.Get(ctx, profileCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}

func (s *service) cacheProfile(ctx context.Context, user *domain.User) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, profileCacheKey(user.ID), data, profileCacheTTL).Err(); err != nil {
		logrus.WithError(err).Warn("failed to cache user profile")
	}
}

func (s *service) invalidateProfile(ctx context.Context, id uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, profileCacheKey(id)).Err(); err != nil {
		logrus.WithError(err).Warn("failed to invalidate profile cache")
	}
}

func profileCacheKey(id uuid.UUID) string {
	return "user:profile:" + id.String()
}
