package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/kyc-labs/facematch/internal/domain"
)

// ErrorHandler converts errors into the service's single response shape:
// {"msg": "..."}. User-facing rejections keep their message; anything in the
// 5xx range is logged with full context and answered with a generic message
// so internal detail never leaks.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"msg": fiberErr.Message,
			})
		}

		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			if appErr.StatusCode >= 500 {
				logger.Error("infrastructure fault",
					slog.String("code", appErr.Code),
					slog.String("path", c.Path()),
					slog.Any("error", err),
				)
				return c.Status(appErr.StatusCode).JSON(fiber.Map{
					"msg": domain.ErrInternal.Message,
				})
			}

			return c.Status(appErr.StatusCode).JSON(fiber.Map{
				"msg": appErr.Message,
			})
		}

		logger.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Path()),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"msg": domain.ErrInternal.Message,
		})
	}
}
