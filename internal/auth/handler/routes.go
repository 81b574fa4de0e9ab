package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, auth *AuthHandler, g *GateHandler, admin *AdminHandler) {
	app.Post("api/v1/register", auth.Register)
	app.Post("api/v1/login", auth.Login)
	app.Get("api/v1/session", auth.Session)
	app.Delete("api/v1/session", auth.Logout)

	app.Post("api/v1/gate", g.Evaluate)
	app.Get("api/v1/banned", g.Banned)
	app.Get("api/v1/me", g.Middleware(), g.Me)

	// Admin-only endpoints
	group := app.Group("/api/v1/admin", admin.RequireAdmin())
	group.Get("/users", admin.ListUsers)
	group.Post("/user/:id/ban", admin.BanUser)
	group.Delete("/user/:id/ban", admin.UnbanUser)
}
