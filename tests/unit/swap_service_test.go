package unit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swapr-backend/internal/domain"
	"swapr-backend/internal/service/swap"
	"swapr-backend/tests/mocks"
)

func newSwapService() (swap.Service, *mocks.MockSwapRepository, *mocks.MockUserRepository, *mocks.MockNotificationService, *mocks.MockEmailService) {
	swapRepo := new(mocks.MockSwapRepository)
	userRepo := new(mocks.MockUserRepository)
	notifService := new(mocks.MockNotificationService)
	emailService := new(mocks.MockEmailService)

	svc := swap.NewService(swapRepo, userRepo, notifService, emailService)
	return svc, swapRepo, userRepo, notifService, emailService
}

func TestCreateSwap_SelfSwapRejected(t *testing.T) {
	svc, swapRepo, _, _, _ := newSwapService()
	me := &domain.User{ID: uuid.New(), Name: "Ana"}

	_, err := svc.Create(context.Background(), me, domain.CreateSwapInput{
		ToUserID:     me.ID,
		SkillOffered: "Guitar",
		SkillWanted:  "Spanish",
	})

	assert.ErrorIs(t, err, domain.ErrSelfSwap)
	swapRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateSwap_TargetNotFound(t *testing.T) {
	svc, _, userRepo, _, _ := newSwapService()
	me := &domain.User{ID: uuid.New(), Name: "Ana"}
	targetID := uuid.New()

	userRepo.On("GetByID", mock.Anything, targetID).Return(nil, nil)

	_, err := svc.Create(context.Background(), me, domain.CreateSwapInput{
		ToUserID:     targetID,
		SkillOffered: "Guitar",
		SkillWanted:  "Spanish",
	})

	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestCreateSwap_DefaultsAndNotification(t *testing.T) {
	svc, swapRepo, userRepo, notifService, emailService := newSwapService()
	me := &domain.User{ID: uuid.New(), Name: "Ana"}
	target := &domain.User{ID: uuid.New(), Name: "Ben", Email: "ben@example.com"}

	userRepo.On("GetByID", mock.Anything, target.ID).Return(target, nil)
	swapRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.SwapRequest")).Return(nil)
	notifService.On("NotifySwapRequest", mock.Anything, mock.Anything, me).Return(nil)
	emailService.On("SendSwapRequestEmail", mock.Anything, target.Email, target.Name, me.Name, "Guitar", "Spanish").Return(nil).Maybe()

	created, err := svc.Create(context.Background(), me, domain.CreateSwapInput{
		ToUserID:     target.ID,
		SkillOffered: "Guitar",
		SkillWanted:  "Spanish",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SwapPending, created.Status)
	assert.Equal(t, 60, created.Duration)
	assert.Equal(t, domain.MeetingVideo, created.MeetingType)
	assert.Equal(t, me.ID, created.FromUserID)

	notifService.AssertCalled(t, "NotifySwapRequest", mock.Anything, mock.Anything, me)
}

func TestCreateSwap_TrimsSkills(t *testing.T) {
	svc, swapRepo, userRepo, notifService, emailService := newSwapService()
	me := &domain.User{ID: uuid.New(), Name: "Ana"}
	target := &domain.User{ID: uuid.New(), Name: "Ben", Email: "ben@example.com"}

	userRepo.On("GetByID", mock.Anything, target.ID).Return(target, nil)
	swapRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.SwapRequest")).Return(nil)
	notifService.On("NotifySwapRequest", mock.Anything, mock.Anything, me).Return(nil)
	emailService.On("SendSwapRequestEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	created, err := svc.Create(context.Background(), me, domain.CreateSwapInput{
		ToUserID:     target.ID,
		SkillOffered: "  Guitar  ",
		SkillWanted:  "  Spanish  ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Guitar", created.SkillOffered)
	assert.Equal(t, "Spanish", created.SkillWanted)
}

func TestCreateSwap_BlankSkillRejected(t *testing.T) {
	svc, swapRepo, userRepo, _, _ := newSwapService()
	me := &domain.User{ID: uuid.New(), Name: "Ana"}
	targetID := uuid.New()

	_, err := svc.Create(context.Background(), me, domain.CreateSwapInput{
		ToUserID:     targetID,
		SkillOffered: "Guitar",
		SkillWanted:  "   ",
	})

	assert.ErrorIs(t, err, swap.ErrBlankSkill)
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	swapRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateSwap_RecipientAccepts(t *testing.T) {
	svc, swapRepo, _, notifService, _ := newSwapService()
	sender := &domain.User{ID: uuid.New(), Name: "Ana"}
	recipient := &domain.User{ID: uuid.New(), Name: "Ben"}

	existing := &domain.SwapRequest{
		ID:         uuid.New(),
		FromUserID: sender.ID,
		ToUserID:   recipient.ID,
		Status:     domain.SwapPending,
	}

	swapRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	swapRepo.On("Update", mock.Anything, existing).Return(nil)
	notifService.On("NotifySwapStatus", mock.Anything, existing, recipient, domain.SwapAccepted).Return(nil)

	accepted := domain.SwapAccepted
	updated, err := svc.Update(context.Background(), recipient, existing.ID, domain.UpdateSwapInput{Status: &accepted})

	require.NoError(t, err)
	assert.Equal(t, domain.SwapAccepted, updated.Status)
	notifService.AssertExpectations(t)
}

func TestUpdateSwap_SenderCannotAccept(t *testing.T) {
	svc, swapRepo, _, _, _ := newSwapService()
	sender := &domain.User{ID: uuid.New(), Name: "Ana"}

	existing := &domain.SwapRequest{
		ID:         uuid.New(),
		FromUserID: sender.ID,
		ToUserID:   uuid.New(),
		Status:     domain.SwapPending,
	}
	swapRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	accepted := domain.SwapAccepted
	_, err := svc.Update(context.Background(), sender, existing.ID, domain.UpdateSwapInput{Status: &accepted})

	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	swapRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateSwap_NonPartyForbidden(t *testing.T) {
	svc, swapRepo, _, _, _ := newSwapService()
	stranger := &domain.User{ID: uuid.New(), Name: "Eve"}

	existing := &domain.SwapRequest{
		ID:         uuid.New(),
		FromUserID: uuid.New(),
		ToUserID:   uuid.New(),
		Status:     domain.SwapPending,
	}
	swapRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	accepted := domain.SwapAccepted
	_, err := svc.Update(context.Background(), stranger, existing.ID, domain.UpdateSwapInput{Status: &accepted})

	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}

func TestUpdateSwap_TerminalStateImmutable(t *testing.T) {
	svc, swapRepo, _, _, _ := newSwapService()
	recipient := &domain.User{ID: uuid.New(), Name: "Ben"}

	existing := &domain.SwapRequest{
		ID:         uuid.New(),
		FromUserID: uuid.New(),
		ToUserID:   recipient.ID,
		Status:     domain.SwapCompleted,
	}
	swapRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	accepted := domain.SwapAccepted
	_, err := svc.Update(context.Background(), recipient, existing.ID, domain.UpdateSwapInput{Status: &accepted})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateSwap_ScheduleOnly(t *testing.T) {
	svc, swapRepo, _, notifService, _ := newSwapService()
	sender := &domain.User{ID: uuid.New(), Name: "Ana"}

	existing := &domain.SwapRequest{
		ID:         uuid.New(),
		FromUserID: sender.ID,
		ToUserID:   uuid.New(),
		Status:     domain.SwapAccepted,
	}
	swapRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	swapRepo.On("Update", mock.Anything, existing).Return(nil)

	scheduledAt := existing.CreatedAt.AddDate(0, 0, 7)
	updated, err := svc.Update(context.Background(), sender, existing.ID, domain.UpdateSwapInput{ScheduledAt: &scheduledAt})

	require.NoError(t, err)
	assert.Equal(t, &scheduledAt, updated.ScheduledAt)
	notifService.AssertNotCalled(t, "NotifySwapStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteSwap_OnlySender(t *testing.T) {
	svc, swapRepo, _, _, _ := newSwapService()
	sender := &domain.User{ID: uuid.New(), Name: "Ana"}
	recipient := &domain.User{ID: uuid.New(), Name: "Ben"}

	existing := &domain.SwapRequest{
		ID:         uuid.New(),
		FromUserID: sender.ID,
		ToUserID:   recipient.ID,
		Status:     domain.SwapPending,
	}
	swapRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	err := svc.Delete(context.Background(), recipient, existing.ID)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	swapRepo.On("Delete", mock.Anything, existing.ID).Return(nil)
	require.NoError(t, svc.Delete(context.Background(), sender, existing.ID))
}

func TestGetSwap_PartyOrAdminOnly(t *testing.T) {
	svc, swapRepo, _, _, _ := newSwapService()
	sender := &domain.User{ID: uuid.New(), Name: "Ana"}
	stranger := &domain.User{ID: uuid.New(), Name: "Eve"}
	admin := &domain.User{ID: uuid.New(), Name: "Root", IsAdmin: true}

	existing := &domain.SwapRequest{
		ID:         uuid.New(),
		FromUserID: sender.ID,
		ToUserID:   uuid.New(),
		Status:     domain.SwapPending,
	}
	swapRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	_, err := svc.Get(context.Background(), stranger, existing.ID)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	found, err := svc.Get(context.Background(), sender, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, found.ID)

	_, err = svc.Get(context.Background(), admin, existing.ID)
	assert.NoError(t, err)
}
