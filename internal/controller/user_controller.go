package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/constant"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/service"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Profile(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	GetPermissions(ctx *fiber.Ctx) error
	SetPermissions(ctx *fiber.Ctx) error
}

type userController struct {
	service           service.IUserService
	permissionService service.IPermissionService
}

func NewUserController(service service.IUserService, permissionService service.IPermissionService) IUserController {
	return &userController{service: service, permissionService: permissionService}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/profile", c.Profile)

	admin := h.Group("", requirePermission(c.permissionService, constant.PermissionManageDepartments))
	admin.Get("", c.GetAll)
	admin.Put("/:id", c.Update)
	admin.Get("/:id/permissions", c.GetPermissions)
	admin.Put("/:id/permissions", c.SetPermissions)
}

func (c *userController) Profile(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.Profile(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *userController) GetAll(ctx *fiber.Ctx) error {
	department := ctx.Query("department")

	res, err := c.service.GetAll(ctx.Context(), department)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all users", res))
}

func (c *userController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidation("invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := c.service.Update(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Profile updated", nil))
}

func (c *userController) GetPermissions(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidation("invalid user id")
	}

	res, err := c.permissionService.GetPermissions(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get permissions", res))
}

func (c *userController) SetPermissions(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidation("invalid user id")
	}

	var req dto.SetPermissionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.UserId = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.permissionService.SetPermissions(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Permissions updated", nil))
}
