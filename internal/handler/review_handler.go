package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"swapr-backend/internal/domain"
	"swapr-backend/internal/middleware"
	"swapr-backend/internal/service/review"
)

type ReviewHandler struct {
	reviewService review.Service
}

func NewReviewHandler(reviewService review.Service) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateReviewInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	created, err := h.reviewService.Create(c.Context(), middleware.GetCurrentUser(c), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSwapNotFound):
			return middleware.NotFound("Swap request not found")
		case errors.Is(err, domain.ErrNotAuthorized):
			return middleware.Forbidden("Not a party of this swap request")
		case errors.Is(err, review.ErrInvalidReviewee):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, domain.ErrDuplicateReview):
			return middleware.BadRequest("You have already reviewed this swap")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ReviewHandler) ListForUser(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return err
	}
	params := getPaginationParams(c)

	reviews, total, err := h.reviewService.ListForUser(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"reviews":    reviews,
		"pagination": domain.NewPagination(params, total),
	})
}

func (h *ReviewHandler) ListGiven(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	reviews, total, err := h.reviewService.ListGiven(c.Context(), middleware.GetCurrentUserID(c), params)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"reviews":    reviews,
		"pagination": domain.NewPagination(params, total),
	})
}
