package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/picshare/picshare/pkg/internal/http/exts"
	"github.com/picshare/picshare/pkg/internal/models"
	"github.com/picshare/picshare/pkg/internal/services"
)

func (v *Deps) doSignup(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"name" validate:"required,min=3,max=20"`
		Username string `json:"username" validate:"required,min=5,max=20"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := v.Auth.Signup(data.Name, data.Username, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case errors.Is(err, services.ErrWeakPassword):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       account.ID,
		"username": account.Username,
	})
}

func (v *Deps) doLogin(c *fiber.Ctx) error {
	var data struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, token, err := v.Auth.Login(data.Username, data.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(v.Auth.Lifetime()),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"id":       account.ID,
		"username": account.Username,
	})
}

func (v *Deps) doLogout(c *fiber.Ctx) error {
	session := c.Locals("session").(models.Session)

	if err := v.Auth.Logout(session); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.ClearCookie(CookieName)
	return c.SendStatus(fiber.StatusNoContent)
}

func (v *Deps) getMe(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	return c.JSON(user)
}
