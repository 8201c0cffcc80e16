package controller

import (
	"context"
	"time"

	"workflow-hub-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	checks map[string]HealthCheck
}

func NewHealthController(checks map[string]HealthCheck) IHealthController {
	return &healthController{checks: checks}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	checkCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(c.checks))
	healthy := true
	for name, check := range c.checks {
		if err := check(checkCtx); err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponseWithData(fiber.StatusServiceUnavailable, "Unhealthy", status))
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", status))
}
