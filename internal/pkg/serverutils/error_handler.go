package serverutils

import (
	"errors"

	"docchat-be/internal/constant"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping handlers into the
// standard error envelope. Domain error types carry their own status
// mapping; anything unknown becomes a 500 with a generic message so
// internals never leak to clients.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		var indexErr *constant.DocumentIndexError
		if errors.As(err, &indexErr) {
			return c.Status(fiber.StatusUnprocessableEntity).
				JSON(ErrorResponse(fiber.StatusUnprocessableEntity, indexErr.Error()))
		}

		var argErr *constant.ToolArgumentParseError
		if errors.As(err, &argErr) {
			return c.Status(fiber.StatusBadRequest).
				JSON(ErrorResponse(fiber.StatusBadRequest, argErr.Error()))
		}

		var execErr *constant.ToolExecutionError
		if errors.As(err, &execErr) {
			return c.Status(fiber.StatusBadGateway).
				JSON(ErrorResponse(fiber.StatusBadGateway, execErr.Error()))
		}

		var searchErr *constant.SearchUnavailableError
		if errors.As(err, &searchErr) {
			return c.Status(fiber.StatusServiceUnavailable).
				JSON(ErrorResponse(fiber.StatusServiceUnavailable, searchErr.Error()))
		}

		return c.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
