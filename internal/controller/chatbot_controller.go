package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/constant"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/service"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ListChatflows(ctx *fiber.Ctx) error
	Sync(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service           service.IChatbotService
	permissionService service.IPermissionService
}

func NewChatbotController(service service.IChatbotService, permissionService service.IPermissionService) IChatbotController {
	return &chatbotController{service: service, permissionService: permissionService}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Get("/flowise/chatflows", c.ListChatflows)
	h.Get("/:id", c.Show)

	admin := h.Group("", requirePermission(c.permissionService, constant.PermissionManageChatbots))
	admin.Post("", c.Create)
	admin.Put("/:id", c.Update)
	admin.Delete("/:id", c.Delete)
	admin.Post("/sync", c.Sync)
}

func (c *chatbotController) GetAll(ctx *fiber.Ctx) error {
	department := ctx.Query("department")

	res, err := c.service.GetAll(ctx.Context(), department)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all chatbots", res))
}

func (c *chatbotController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidation("invalid chatbot id")
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chatbot", res))
}

func (c *chatbotController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateChatbotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chatbot created", res))
}

func (c *chatbotController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidation("invalid chatbot id")
	}

	var req dto.UpdateChatbotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Update(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Chatbot updated", nil))
}

func (c *chatbotController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidation("invalid chatbot id")
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Chatbot deleted", nil))
}

func (c *chatbotController) ListChatflows(ctx *fiber.Ctx) error {
	res, err := c.service.ListChatflows(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list chatflows", res))
}

func (c *chatbotController) Sync(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	department := ctx.Query("department")
	if department == "" {
		return serverutils.NewValidation("department query parameter is required")
	}

	res, err := c.service.SyncFromFlowise(ctx.Context(), department, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Sync complete", res))
}
