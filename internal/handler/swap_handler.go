package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"swapr-backend/internal/domain"
	"swapr-backend/internal/middleware"
	"swapr-backend/internal/service/swap"
)

type SwapHandler struct {
	swapService swap.Service
}

func NewSwapHandler(swapService swap.Service) *SwapHandler {
	return &SwapHandler{swapService: swapService}
}

func (h *SwapHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateSwapInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	created, err := h.swapService.Create(c.Context(), middleware.GetCurrentUser(c), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfSwap):
			return middleware.BadRequest("Cannot create a swap request with yourself")
		case errors.Is(err, swap.ErrBlankSkill):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, domain.ErrTargetNotFound):
			return middleware.NotFound("Target user not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *SwapHandler) List(c *fiber.Ctx) error {
	status, err := parseStatusQuery(c)
	if err != nil {
		return err
	}
	params := getPaginationParams(c)

	swaps, total, err := h.swapService.List(c.Context(),
		middleware.GetCurrentUserID(c), c.Query("type"), status, params)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"swaps":      swaps,
		"pagination": domain.NewPagination(params, total),
	})
}

func (h *SwapHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	found, err := h.swapService.Get(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return mapSwapError(err)
	}

	return c.JSON(found)
}

func (h *SwapHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateSwapInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.swapService.Update(c.Context(), middleware.GetCurrentUser(c), id, input)
	if err != nil {
		return mapSwapError(err)
	}

	return c.JSON(updated)
}

func (h *SwapHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.swapService.Delete(c.Context(), middleware.GetCurrentUser(c), id); err != nil {
		return mapSwapError(err)
	}

	return c.JSON(fiber.Map{"message": "Swap request deleted"})
}

func (h *SwapHandler) AdminListAll(c *fiber.Ctx) error {
	status, err := parseStatusQuery(c)
	if err != nil {
		return err
	}
	params := getPaginationParams(c)

	swaps, total, err := h.swapService.ListAll(c.Context(), status, params)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"swaps":      swaps,
		"pagination": domain.NewPagination(params, total),
	})
}

func parseStatusQuery(c *fiber.Ctx) (domain.SwapStatus, error) {
	status := domain.SwapStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		return "", middleware.BadRequest("Invalid status filter")
	}
	return status, nil
}

func mapSwapError(err error) error {
	switch {
	case errors.Is(err, domain.ErrSwapNotFound):
		return middleware.NotFound("Swap request not found")
	case errors.Is(err, domain.ErrNotAuthorized):
		return middleware.Forbidden("Not authorized for this swap request")
	case errors.Is(err, domain.ErrInvalidTransition):
		return middleware.BadRequest("Invalid status transition")
	}
	return err
}
