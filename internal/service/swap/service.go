package swap

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"swapr-backend/internal/domain"
	"swapr-backend/internal/repository"
	"swapr-backend/internal/service/email"
	"swapr-backend/internal/service/notification"
)

// ErrBlankSkill means skillOffered or skillWanted was empty or whitespace
// after trimming.
var ErrBlankSkill = errors.New("skillOffered and skillWanted must not be blank")

type Service interface {
	Create(ctx context.Context, fromUser *domain.User, input domain.CreateSwapInput) (*domain.SwapRequest, error)
	Get(ctx context.Context, caller *domain.User, id uuid.UUID) (*domain.SwapRequest, error)
	List(ctx context.Context, callerID uuid.UUID, swapType string, status domain.SwapStatus, params domain.PaginationParams) ([]domain.SwapRequest, int64, error)
	ListAll(ctx context.Context, status domain.SwapStatus, params domain.PaginationParams) ([]domain.SwapRequest, int64, error)
	Update(ctx context.Context, caller *domain.User, id uuid.UUID, input domain.UpdateSwapInput) (*domain.SwapRequest, error)
	Delete(ctx context.Context, caller *domain.User, id uuid.UUID) error
}

type service struct {
	swapRepo     repository.SwapRepository
	userRepo     repository.UserRepository
	notifService notification.Service
	emailService email.Service
}

func NewService(swapRepo repository.SwapRepository, userRepo repository.UserRepository, notifService notification.Service, emailService email.Service) Service {
	return &service{
		swapRepo:     swapRepo,
		userRepo:     userRepo,
		notifService: notifService,
		emailService: emailService,
	}
}

func (s *service) Create(ctx context.Context, fromUser *domain.User, input domain.CreateSwapInput) (*domain.SwapRequest, error) {
	if input.ToUserID == fromUser.ID {
		return nil, domain.ErrSelfSwap
	}

	skillOffered := strings.TrimSpace(input.SkillOffered)
	skillWanted := strings.TrimSpace(input.SkillWanted)
	if skillOffered == "" || skillWanted == "" {
		return nil, ErrBlankSkill
	}

	target, err := s.userRepo.GetByID(ctx, input.ToUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrTargetNotFound
	}

	swap := &domain.SwapRequest{
		ID:           uuid.New(),
		FromUserID:   fromUser.ID,
		ToUserID:     input.ToUserID,
		SkillOffered: skillOffered,
		SkillWanted:  skillWanted,
		Message:      input.Message,
		Status:       domain.SwapPending,
		Duration:     input.Duration,
		MeetingType:  input.MeetingType,
		Location:     input.Location,
	}
	if swap.Duration <= 0 {
		swap.Duration = 60
	}
	if !swap.MeetingType.IsValid() {
		swap.MeetingType = domain.MeetingVideo
	}

	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return nil, err
	}

	if err := s.notifService.NotifySwapRequest(ctx, swap, fromUser); err != nil {
		logrus.WithError(err).Warn("failed to notify swap request")
	}

	go func() {
		if err := s.emailService.SendSwapRequestEmail(context.Background(),
			target.Email, target.Name, fromUser.Name, swap.SkillOffered, swap.SkillWanted); err != nil {
			logrus.WithError(err).Warn("failed to send swap request email")
		}
	}()

	return swap, nil
}

func (s *service) Get(ctx context.Context, caller *domain.User, id uuid.UUID) (*domain.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap == nil {
		return nil, domain.ErrSwapNotFound
	}

	if !swap.IsParty(caller.ID) && !caller.IsAdmin {
		return nil, domain.ErrNotAuthorized
	}
	return swap, nil
}

func (s *service) List(ctx context.Context, callerID uuid.UUID, swapType string, status domain.SwapStatus, params domain.PaginationParams) ([]domain.SwapRequest, int64, error) {
	filter := domain.SwapFilter{
		UserID: &callerID,
		Type:   swapType,
		Status: status,
	}
	return s.swapRepo.List(ctx, filter, params)
}

func (s *service) ListAll(ctx context.Context, status domain.SwapStatus, params domain.PaginationParams) ([]domain.SwapRequest, int64, error) {
	return s.swapRepo.List(ctx, domain.SwapFilter{Status: status}, params)
}

func (s *service) Update(ctx context.Context, caller *domain.User, id uuid.UUID, input domain.UpdateSwapInput) (*domain.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap == nil {
		return nil, domain.ErrSwapNotFound
	}

	if !swap.IsParty(caller.ID) {
		return nil, domain.ErrNotAuthorized
	}

	var statusChanged domain.SwapStatus
	if input.Status != nil {
		target := *input.Status
		if !target.IsValid() {
			return nil, domain.ErrInvalidTransition
		}
		if err := swap.CanTransition(target, caller.ID); err != nil {
			return nil, err
		}
		swap.Status = target
		statusChanged = target
	}
	if input.ScheduledAt != nil {
		swap.ScheduledAt = input.ScheduledAt
	}

	if err := s.swapRepo.Update(ctx, swap); err != nil {
		return nil, err
	}

	if statusChanged != "" {
		if err := s.notifService.NotifySwapStatus(ctx, swap, caller, statusChanged); err != nil {
			logrus.WithError(err).Warn("failed to notify swap status change")
		}
		s.emailCounterparty(swap, caller, statusChanged)
	}

	return swap, nil
}

// Delete removes a request outright; only its sender may do so, in any state.
func (s *service) Delete(ctx context.Context, caller *domain.User, id uuid.UUID) error {
	swap, err := s.swapRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if swap == nil {
		return domain.ErrSwapNotFound
	}

	if swap.FromUserID != caller.ID {
		return domain.ErrNotAuthorized
	}

	return s.swapRepo.Delete(ctx, id)
}

func (s *service) emailCounterparty(swap *domain.SwapRequest, actor *domain.User, status domain.SwapStatus) {
	if status == domain.SwapCancelled {
		return
	}

	go func() {
		recipient, err := s.userRepo.GetByID(context.Background(), swap.Counterparty(actor.ID))
		if err != nil || recipient == nil {
			logrus.WithError(err).Warn("failed to load swap counterparty for email")
			return
		}
		if err := s.emailService.SendSwapStatusEmail(context.Background(),
			recipient.Email, recipient.Name, actor.Name, string(status)); err != nil {
			logrus.WithError(err).Warn("failed to send swap status email")
		}
	}()
}
