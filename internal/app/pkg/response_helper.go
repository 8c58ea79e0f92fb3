package pkg

import (
	"errors"
	"reflect"

	"github.com/gofiber/fiber/v2"
	appError "github.com/safatanc/promotion-core/internal/app/errors"
	"github.com/safatanc/promotion-core/internal/app/models"
	"github.com/sirupsen/logrus"
)

func SuccessResponse[T any](c *fiber.Ctx, data T) error {
	return SuccessResponseWithStatus(c, fiber.StatusOK, data)
}

func SuccessResponseWithStatus[T any](c *fiber.Ctx, status int, data T) error {
	return c.Status(status).JSON(models.WebResponse[T]{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, err error) error {
	var appErr *appError.AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.StatusCode).JSON(models.WebResponse[any]{
			Success: false,
			Message: appErr.Message,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.WebResponse[any]{
			Success: false,
			Message: fiberErr.Message,
		})
	}

	logrus.Errorf("[%s] %s", reflect.TypeOf(err).String(), err)

	return c.Status(fiber.StatusInternalServerError).JSON(models.WebResponse[any]{
		Success: false,
		Message: "Internal Server Error",
	})
}

// ErrorHandler renders errors that escape a handler, such as unknown routes,
// in the same envelope as ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return ErrorResponse(c, err)
}
