package serverutils

import (
	"errors"
	"log"

	"ai-boardroom-be/pkg/meeting"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbled out of handlers into the
// standard response envelope. Validation problems become 400s; everything
// else is a 500 with a generic message so internals never leak.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		if meeting.IsValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		}

		log.Printf("[ERROR] Unhandled error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}
