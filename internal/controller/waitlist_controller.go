package controller

import (
	"workflow-hub-be/internal/dto"
	"workflow-hub-be/internal/pkg/serverutils"
	"workflow-hub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWaitlistController interface {
	RegisterRoutes(r fiber.Router)
	Join(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type waitlistController struct {
	waitlistService service.IWaitlistService
}

func NewWaitlistController(waitlistService service.IWaitlistService) IWaitlistController {
	return &waitlistController{
		waitlistService: waitlistService,
	}
}

func (c *waitlistController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/waitlist")
	h.Post("", c.Join)
	h.Get("status", c.Status)
}

func (c *waitlistController) Join(ctx *fiber.Ctx) error {
	var req dto.JoinWaitlistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.waitlistService.Join(ctx.UserContext(), &req, ctx.IP())
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success join waitlist", res))
}

func (c *waitlistController) Status(ctx *fiber.Ctx) error {
	res, err := c.waitlistService.Status(ctx.UserContext(), ctx.IP())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get waitlist status", res))
}
