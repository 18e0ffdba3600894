package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders errors that escape a handler, such as unknown routes
// or recovered panics, in the same envelope the handlers use.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
