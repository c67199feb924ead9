package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/constant"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/service"
)

type IArticleController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type articleController struct {
	service           service.IArticleService
	permissionService service.IPermissionService
}

func NewArticleController(service service.IArticleService, permissionService service.IPermissionService) IArticleController {
	return &articleController{service: service, permissionService: permissionService}
}

func (c *articleController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/article/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Get("/search", c.Search)
	h.Get("/:id", c.Show)

	admin := h.Group("", requirePermission(c.permissionService, constant.PermissionManageKnowledge))
	admin.Post("", c.Create)
	admin.Put("/:id", c.Update)
	admin.Delete("/:id", c.Delete)
}

func (c *articleController) GetAll(ctx *fiber.Ctx) error {
	department := ctx.Query("department")

	res, err := c.service.GetAll(ctx.Context(), department)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all articles", res))
}

func (c *articleController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidation("invalid article id")
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get article", res))
}

func (c *articleController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateArticleRequest
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

	return ctx.JSON(serverutils.SuccessResponse("Article created", res))
}

func (c *articleController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidation("invalid article id")
	}

	var req dto.UpdateArticleRequest
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

	return ctx.JSON(serverutils.SuccessResponse[any]("Article updated", nil))
}

func (c *articleController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidation("invalid article id")
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Article deleted", nil))
}

func (c *articleController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	department := ctx.Query("department")
	limit := ctx.QueryInt("limit", 5)

	res, err := c.service.SemanticSearch(ctx.Context(), department, query, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search articles", res))
}
