package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/selyo-ustp/request_service/internal/domain"
	"github.com/selyo-ustp/request_service/internal/helper"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("userID", uint(user.UserID))
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

func AdminOnly() fiber.Handler {
	return requireRole(domain.RoleAdmin, "admin only")
}

func StudentOnly() fiber.Handler {
	return requireRole(domain.RoleStudent, "students only")
}

// requireRole trusts the role claim baked into the token; roles never change
// after registration, so no DB round trip is needed here.
func requireRole(role, denyMsg string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID, ok := ctx.Locals("userID").(uint)
		if !ok || userID == 0 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		user, err := helper.Auth{}.GetCurrentUser(ctx)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		if user.Role != role {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": denyMsg,
			})
		}

		return ctx.Next()
	}
}
