package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/picshare/picshare/pkg/internal/models"
	"github.com/picshare/picshare/pkg/internal/services"
)

func (v *Deps) doFollow(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	target := c.Params("id")

	if err := v.Graph.Follow(user.ID, target); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfFollow):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrAlreadyFollowing):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case errors.Is(err, services.ErrAccountNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		default:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (v *Deps) doUnfollow(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	target := c.Params("id")

	if err := v.Graph.Unfollow(user.ID, target); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFollowing):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrAccountNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		default:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
