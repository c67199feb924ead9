package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/service"
)

// publicChatController serves the embeddable widget. No JWT: anonymous
// visitors chat with a chatbot identified only by its id.
type IPublicChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type publicChatController struct {
	service service.IChatService
}

func NewPublicChatController(service service.IChatService) IPublicChatController {
	return &publicChatController{service: service}
}

func (c *publicChatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat/:chatbotId", c.Chat)
}

func (c *publicChatController) Chat(ctx *fiber.Ctx) error {
	chatbotId, err := uuid.Parse(ctx.Params("chatbotId"))
	if err != nil {
		return serverutils.NewValidation("invalid chatbot id")
	}

	var req dto.PublicChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.PublicChat(ctx.Context(), chatbotId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
