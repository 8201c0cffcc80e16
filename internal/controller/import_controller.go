package controller

import (
	"io"
	"strings"

	"workflow-hub-be/internal/pkg/serverutils"
	"workflow-hub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const maxImportFileSize = 20 << 20

type IImportController interface {
	RegisterRoutes(r fiber.Router)
	Import(ctx *fiber.Ctx) error
}

type importController struct {
	importService service.IImportService
	jwtSecret     string
}

func NewImportController(importService service.IImportService, jwtSecret string) IImportController {
	return &importController{
		importService: importService,
		jwtSecret:     jwtSecret,
	}
}

func (c *importController) RegisterRoutes(r fiber.Router) {
	r.Post("/workflows/import", serverutils.NewJwtMiddleware(c.jwtSecret), c.Import)
}

// Import accepts the JSON document as the raw body or as a multipart "file" field.
func (c *importController) Import(ctx *fiber.Ctx) error {
	raw, err := readImportBody(ctx)
	if err != nil {
		return err
	}

	res, err := c.importService.Import(ctx.UserContext(), raw)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success import workflows", res))
}

func readImportBody(ctx *fiber.Ctx) ([]byte, error) {
	if !strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return ctx.Body(), nil
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Missing file field")
	}
	if fileHeader.Size > maxImportFileSize {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "Import file is too large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, maxImportFileSize))
}
