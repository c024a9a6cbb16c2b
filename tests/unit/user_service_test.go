package unit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swapr-backend/internal/domain"
	"swapr-backend/internal/service/user"
	"swapr-backend/tests/mocks"
)

func newUserService() (user.Service, *mocks.MockUserRepository) {
	userRepo := new(mocks.MockUserRepository)
	svc := user.NewService(userRepo, nil)
	return svc, userRepo
}

func TestGetVisibleByID_PrivateProfileHidden(t *testing.T) {
	svc, userRepo := newUserService()

	hidden := &domain.User{ID: uuid.New(), Name: "Ben", IsPublic: false}
	userRepo.On("GetByID", mock.Anything, hidden.ID).Return(hidden, nil)

	// anonymous viewer
	_, err := svc.GetVisibleByID(context.Background(), nil, hidden.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// unrelated authenticated viewer
	stranger := &domain.User{ID: uuid.New()}
	_, err = svc.GetVisibleByID(context.Background(), stranger, hidden.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// the owner
	found, err := svc.GetVisibleByID(context.Background(), hidden, hidden.ID)
	require.NoError(t, err)
	assert.Equal(t, hidden.ID, found.ID)

	// an admin
	admin := &domain.User{ID: uuid.New(), IsAdmin: true}
	_, err = svc.GetVisibleByID(context.Background(), admin, hidden.ID)
	assert.NoError(t, err)
}

func TestUpdateProfile_NormalizesSkills(t *testing.T) {
	svc, userRepo := newUserService()

	existing := &domain.User{ID: uuid.New(), Name: "Ana", IsPublic: true}
	userRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	userRepo.On("Update", mock.Anything, existing).Return(nil)

	skills := []domain.SkillInput{{Skill: domain.Skill{Name: "  Guitar  "}}, {Skill: domain.Skill{Name: ""}}}
	name := "  Ana Maria  "

	updated, err := svc.UpdateProfile(context.Background(), existing.ID, domain.UpdateProfileInput{
		Name:          &name,
		SkillsOffered: &skills,
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	require.Len(t, updated.SkillsOffered, 1)
	assert.Equal(t, "Guitar", updated.SkillsOffered[0].Name)
	assert.Equal(t, "General", updated.SkillsOffered[0].Category)
	assert.Equal(t, domain.LevelIntermediate, updated.SkillsOffered[0].Level)
}

func TestUpdateProfile_UserNotFound(t *testing.T) {
	svc, userRepo := newUserService()
	id := uuid.New()

	userRepo.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.UpdateProfile(context.Background(), id, domain.UpdateProfileInput{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAdminUpdate_TogglesAdminFlag(t *testing.T) {
	svc, userRepo := newUserService()

	existing := &domain.User{ID: uuid.New(), Name: "Ana", IsPublic: true}
	userRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	userRepo.On("Update", mock.Anything, existing).Return(nil)

	isAdmin := true
	isPublic := false
	updated, err := svc.AdminUpdate(context.Background(), existing.ID, domain.AdminUpdateUserInput{
		IsAdmin:  &isAdmin,
		IsPublic: &isPublic,
	})

	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
	assert.False(t, updated.IsPublic)
}

func TestAdminDelete_UserNotFound(t *testing.T) {
	svc, userRepo := newUserService()
	id := uuid.New()

	userRepo.On("GetByID", mock.Anything, id).Return(nil, nil)

	err := svc.AdminDelete(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestListPublic_PassesFilter(t *testing.T) {
	svc, userRepo := newUserService()
	filter := domain.UserFilter{Search: "guitar", Location: "Lisbon"}
	params := domain.DefaultPagination()

	userRepo.On("ListPublic", mock.Anything, filter, params).
		Return([]domain.User{{ID: uuid.New(), Name: "Ana"}}, int64(1), nil)

	users, total, err := svc.ListPublic(context.Background(), filter, params)

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, int64(1), total)
}
