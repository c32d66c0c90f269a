package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/picshare/picshare/pkg/internal/models"
	"github.com/picshare/picshare/pkg/internal/services"
)

// createPost publishes an image post: upload the attachment, record the post
// and fan it out. Partial delivery never fails the request; the receipt tells
// the caller which followers were missed.
func (v *Deps) createPost(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	file, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "an image is required to post")
	}

	src, err := file.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unable to read upload: %v", err))
	}
	defer src.Close()

	postRef, err := v.Uploader.Upload(c.UserContext(), file.Filename, src)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var caption *string
	if val := c.FormValue("caption"); len(val) > 0 {
		caption = &val
	}

	item, receipt, err := v.Fanout.Publish(c.UserContext(), user.ID, postRef, caption)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"code":      fiber.StatusOK,
		"message":   "Successfully Posted!",
		"post":      item,
		"delivered": receipt.Delivered,
		"failed":    receipt.Failed,
	})
}

func (v *Deps) listFeed(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	data, err := v.Feed.ReadAll(c.UserContext(), user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"id":   user.ID,
		"data": data,
	})
}

func (v *Deps) listNotifications(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	lines, err := v.Notifications.ListRendered(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrNoNotifications) {
			return c.SendString("Empty notifications")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"code":          fiber.StatusOK,
		"notifications": lines,
	})
}
