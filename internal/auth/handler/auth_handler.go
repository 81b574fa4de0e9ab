package handler

import (
	"errors"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/access-gate/internal/errors"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	userService *service.UserService
	sessions    *Sessions
}

func NewAuthHandler(userService *service.UserService, sessions *Sessions) *AuthHandler {
	return &AuthHandler{userService: userService, sessions: sessions}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	profile, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}

	sess, err := h.sessions.Store(c).Establish(c.UserContext(), profile.Identity())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to establish session",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SessionOutput{Session: sess})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	profile, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}

	sess, err := h.sessions.Store(c).Establish(c.UserContext(), profile.Identity())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to establish session",
		})
	}
	return c.Status(fiber.StatusOK).JSON(dto.SessionOutput{Session: sess})
}

// Session reports the restored session, or {"session":null}.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(dto.SessionOutput{Session: h.sessions.Restore(c)})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Store(c).Clear(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to clear session",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, autherror.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, autherror.ErrUsernameTaken):
		status = fiber.StatusConflict
	case errors.Is(err, autherror.ErrInvalidUsername),
		errors.Is(err, autherror.ErrPasswordRequired),
		errors.Is(err, autherror.ErrPasswordTooShort),
		errors.Is(err, autherror.ErrPasswordTooLong),
		errors.Is(err, autherror.ErrBanReasonRequired),
		errors.Is(err, autherror.ErrInvalidBanDuration):
		status = fiber.StatusBadRequest
	case errors.Is(err, autherror.ErrNotAuthenticated):
		status = fiber.StatusUnauthorized
	case errors.Is(err, autherror.ErrProfileNotFound):
		status = fiber.StatusNotFound
	}

	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
