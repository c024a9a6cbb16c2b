package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"swapr-backend/internal/domain"
	"swapr-backend/internal/middleware"
	"swapr-backend/internal/service/media"
	"swapr-backend/internal/service/user"
)

type UserHandler struct {
	userService  user.Service
	mediaService media.Service
}

func NewUserHandler(userService user.Service, mediaService media.Service) *UserHandler {
	return &UserHandler{
		userService:  userService,
		mediaService: mediaService,
	}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	filter := domain.UserFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
	}
	params := getPaginationParams(c)

	users, total, err := h.userService.ListPublic(c.Context(), filter, params)
	if err != nil {
		return err
	}

	public := make([]domain.User, 0, len(users))
	for _, u := range users {
		public = append(public, u.PublicView())
	}

	return c.JSON(fiber.Map{
		"users":      public,
		"pagination": domain.NewPagination(params, total),
	})
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	viewer := middleware.GetCurrentUser(c)
	found, err := h.userService.GetVisibleByID(c.Context(), viewer, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	if viewer == nil || (viewer.ID != found.ID && !viewer.IsAdmin) {
		return c.JSON(found.PublicView())
	}
	return c.JSON(found)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	updated, err := h.userService.UpdateProfile(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.JSON(updated)
}

func (h *UserHandler) UploadPhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return middleware.BadRequest("Photo file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Cannot read uploaded file")
	}
	defer file.Close()

	url, err := h.mediaService.UploadProfilePhoto(c.Context(),
		middleware.GetCurrentUserID(c),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		if errors.Is(err, media.ErrNotAnImage) || errors.Is(err, media.ErrFileTooLarge) {
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	updated, err := h.userService.UpdateProfile(c.Context(), middleware.GetCurrentUserID(c), domain.UpdateProfileInput{
		ProfilePhoto: &url,
	})
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (h *UserHandler) AdminList(c *fiber.Ctx) error {
	filter := domain.UserFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	params := getPaginationParams(c)

	users, total, err := h.userService.ListMembers(c.Context(), filter, params)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"users":      users,
		"pagination": domain.NewPagination(params, total),
	})
}

func (h *UserHandler) AdminUpdate(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.AdminUpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	updated, err := h.userService.AdminUpdate(c.Context(), id, input)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.JSON(updated)
}

func (h *UserHandler) AdminDelete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.AdminDelete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}
