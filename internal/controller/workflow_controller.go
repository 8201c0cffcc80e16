package controller

import (
	"net/url"

	"workflow-hub-be/internal/dto"
	"workflow-hub-be/internal/pkg/serverutils"
	"workflow-hub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWorkflowController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Categories(ctx *fiber.Ctx) error
}

type workflowController struct {
	catalogService service.ICatalogService
}

func NewWorkflowController(catalogService service.ICatalogService) IWorkflowController {
	return &workflowController{
		catalogService: catalogService,
	}
}

func (c *workflowController) RegisterRoutes(r fiber.Router) {
	r.Get("/workflows", c.List)
	r.Get("/workflows/:name", c.Show)
	r.Get("/categories", c.Categories)
}

func (c *workflowController) List(ctx *fiber.Ctx) error {
	var req dto.ListWorkflowsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	res, err := c.catalogService.List(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list workflows", res))
}

func (c *workflowController) Show(ctx *fiber.Ctx) error {
	name, err := url.PathUnescape(ctx.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid workflow name")
	}

	res, err := c.catalogService.GetByName(ctx.UserContext(), name)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show workflow", res))
}

func (c *workflowController) Categories(ctx *fiber.Ctx) error {
	res, err := c.catalogService.Categories(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list categories", res))
}
