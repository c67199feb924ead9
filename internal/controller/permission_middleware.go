package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/service"
)

// requirePermission guards admin routes. It runs after JwtMiddleware, so
// user_id is already in locals.
func requirePermission(permissionService service.IPermissionService, name string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userIdStr, ok := ctx.Locals("user_id").(string)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
		}
		userId, err := uuid.Parse(userIdStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
		}

		allowed, err := permissionService.HasPermission(ctx.Context(), userId, name)
		if err != nil {
			return err
		}
		if !allowed {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied"))
		}
		return ctx.Next()
	}
}
