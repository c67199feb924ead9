package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	ClearChat(ctx *fiber.Ctx) error
	EndChat(ctx *fiber.Ctx) error
	SubmitFeedback(ctx *fiber.Ctx) error
	HideSession(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/session", c.StartSession)
	h.Post("/message", c.SendMessage)
	h.Get("/history", c.GetHistory)
	h.Get("/session/:id", c.GetSession)
	h.Delete("/session/:id/messages", c.ClearChat)
	h.Post("/session/:id/end", c.EndChat)
	h.Post("/session/:id/feedback", c.SubmitFeedback)
	h.Post("/session/:id/hide", c.HideSession)
}

func (c *chatController) StartSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.StartSession(ctx.Context(), req.ChatbotId, &userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session started", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.Context(), req.SessionId, &userId, req.Message)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetHistory(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *chatController) GetSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.GetSession(ctx.Context(), id, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *chatController) ClearChat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.ClearChat(ctx.Context(), id, userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Chat cleared", nil))
}

func (c *chatController) EndChat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.EndChat(ctx.Context(), id, userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Session ended", nil))
}

func (c *chatController) SubmitFeedback(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.SubmitFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SessionId = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.SubmitFeedback(ctx.Context(), id, userId, req.Rating, req.Feedback); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Feedback recorded", nil))
}

func (c *chatController) HideSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.HideSession(ctx.Context(), id, userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Session hidden", nil))
}
