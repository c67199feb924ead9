package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/constant"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/service"
)

type IDepartmentController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type departmentController struct {
	service           service.IDepartmentService
	permissionService service.IPermissionService
}

func NewDepartmentController(service service.IDepartmentService, permissionService service.IPermissionService) IDepartmentController {
	return &departmentController{service: service, permissionService: permissionService}
}

func (c *departmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/department/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)

	admin := h.Group("", requirePermission(c.permissionService, constant.PermissionManageDepartments))
	admin.Post("", c.Create)
	admin.Put("/rename", c.Rename)
	admin.Delete("/:name", c.Delete)
}

func (c *departmentController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all departments", res))
}

func (c *departmentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Department created", res))
}

func (c *departmentController) Rename(ctx *fiber.Ctx) error {
	var req dto.RenameDepartmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Rename(ctx.Context(), req.OldName, req.NewName); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Department renamed", nil))
}

func (c *departmentController) Delete(ctx *fiber.Ctx) error {
	name := ctx.Params("name")
	if name == "" {
		return serverutils.NewValidation("department name is required")
	}

	if err := c.service.Delete(ctx.Context(), name); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Department deleted", nil))
}
