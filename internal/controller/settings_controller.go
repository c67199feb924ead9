package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/constant"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/logger"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/service"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type settingsController struct {
	service           service.ISettingsService
	permissionService service.IPermissionService
	logger            logger.ILogger
}

func NewSettingsController(service service.ISettingsService, permissionService service.IPermissionService, log logger.ILogger) ISettingsController {
	return &settingsController{service: service, permissionService: permissionService, logger: log}
}

func (c *settingsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/settings/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(requirePermission(c.permissionService, constant.PermissionManageSettings))
	h.Get("", c.Get)
	h.Put("", c.Update)
	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)
}

func (c *settingsController) Get(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get settings", res))
}

func (c *settingsController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Settings updated", res))
}

func (c *settingsController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	logs, err := c.logger.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", logs))
}

func (c *settingsController) GetLogDetail(ctx *fiber.Ctx) error {
	entry, err := c.logger.GetLogById(ctx.Params("id"))
	if err != nil {
		return err
	}
	if entry == nil {
		return serverutils.NewNotFound("log entry not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get log detail", entry))
}
