package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/selyo-ustp/request_service/internal/apperr"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// create a generic response function for success
func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

// ResponseAppError maps the business error taxonomy to HTTP statuses.
// Anything outside the taxonomy is an infrastructure failure -> 500.
func ResponseAppError(ctx *fiber.Ctx, err error) error {
	switch {
	case apperr.IsValidation(err):
		return ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	case apperr.IsNotFound(err):
		return ResponseError(ctx, fiber.StatusNotFound, err.Error())
	case apperr.IsConflict(err):
		return ResponseError(ctx, fiber.StatusConflict, err.Error())
	case apperr.IsInvalidState(err):
		return ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
}
