package handler

import (
	"context"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/access-gate/internal/fingerprint"
	"github.com/AnthoniusHendriyanto/access-gate/internal/gate"
	"github.com/AnthoniusHendriyanto/access-gate/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

// Evaluator runs the access gate for one request.
type Evaluator interface {
	Evaluate(ctx context.Context, sess *domain.Session, signals fingerprint.Signals) gate.Decision
	Suspension(ctx context.Context, sess *domain.Session) (*dto.SuspensionOutput, error)
}

type GateHandler struct {
	gate     Evaluator
	sessions *Sessions
}

func NewGateHandler(g Evaluator, sessions *Sessions) *GateHandler {
	return &GateHandler{gate: g, sessions: sessions}
}

// Evaluate answers the gate check the browser runs on every route change.
func (h *GateHandler) Evaluate(c *fiber.Ctx) error {
	d := h.gate.Evaluate(c.UserContext(), h.sessions.Restore(c), SignalsFromRequest(c))

	out := dto.GateOutput{Decision: d.Verdict(), State: d.State.String()}
	if d.Blocked() {
		out.Redirect = constant.BannedPath
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Banned serves the suspended-account view. It is never gated.
func (h *GateHandler) Banned(c *fiber.Ctx) error {
	out, err := h.gate.Suspension(c.UserContext(), h.sessions.Restore(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Middleware blocks guarded routes for suspended accounts and devices.
func (h *GateHandler) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := h.gate.Evaluate(c.UserContext(), h.sessions.Restore(c), SignalsFromRequest(c))
		if d.Blocked() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":    "account suspended",
				"redirect": constant.BannedPath,
			})
		}
		return c.Next()
	}
}

// Me returns the signed-in identity.
func (h *GateHandler) Me(c *fiber.Ctx) error {
	sess := h.sessions.Restore(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "not authenticated",
		})
	}
	return c.Status(fiber.StatusOK).JSON(sess.User)
}
