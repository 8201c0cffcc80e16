package controller

import (
	"errors"

	"workflow-hub-be/internal/dto"
	"workflow-hub-be/internal/pkg/serverutils"
	"workflow-hub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.SendChat)
	r.Get("/chat/:threadId/history", c.History)
}

// SendChat answers with the bare {response, threadId, links} body or {error}.
func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ChatErrorResponse{Error: "Invalid request body"})
	}

	res, err := c.chatService.SendChat(ctx.UserContext(), &req, ctx.IP())
	if err != nil {
		code, body := ChatError(err)
		return ctx.Status(code).JSON(body)
	}

	return ctx.JSON(res)
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	res, err := c.chatService.History(ctx.UserContext(), ctx.Params("threadId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

// ChatError maps a chat failure to its status and {error} body.
func ChatError(err error) (int, dto.ChatErrorResponse) {
	code, _ := serverutils.ResolveError(err)
	body := dto.ChatErrorResponse{Error: err.Error()}

	var trialErr *dto.TrialExpiredError
	if errors.As(err, &trialErr) {
		ended := trialErr.EndedAt
		body.TrialEndedAt = &ended
		body.ShowWaitlistModal = true
	}
	return code, body
}
