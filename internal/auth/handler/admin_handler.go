package handler

import (
	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/service"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService *service.AdminService
	sessions     *Sessions
}

func NewAdminHandler(adminService *service.AdminService, sessions *Sessions) *AdminHandler {
	return &AdminHandler{adminService: adminService, sessions: sessions}
}

// RequireAdmin rejects requests without a session (401) and sessions whose
// profile is not an administrator (403).
func (h *AdminHandler) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := h.sessions.Restore(c)
		if sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "not authenticated",
			})
		}
		if !h.adminService.IsAdmin(c.UserContext(), sess.User.ID) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}
		return c.Next()
	}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	profiles, err := h.adminService.ListUsers(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list users",
		})
	}

	users := make([]dto.UserOutput, 0, len(profiles))
	for _, p := range profiles {
		users = append(users, dto.NewUserOutput(p))
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

func (h *AdminHandler) BanUser(c *fiber.Ctx) error {
	var input dto.BanInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if err := h.adminService.BanUser(c.UserContext(), c.Params("id"), input); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "user banned",
	})
}

func (h *AdminHandler) UnbanUser(c *fiber.Ctx) error {
	if err := h.adminService.UnbanUser(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "user unbanned",
	})
}
