package handlers

import (
	"errors"

	applog "multiciber/internal/log"
	"multiciber/internal/repos"
	"multiciber/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Every response uses the same envelope: {success, message?, data?}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

var valid = validator.New()

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(envelope{Success: true, Data: data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(envelope{Success: true, Data: data})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(envelope{Success: false, Message: msg})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusBadRequest, msg)
}

// rejected by the settlement/catalog engines before any write
var validationErrs = []error{
	services.ErrEmptyItems,
	services.ErrAmountRequired,
	services.ErrBadQuantity,
	services.ErrNegativeTotal,
	services.ErrBadAmount,
	services.ErrNameRequired,
	services.ErrNameTaken,
	services.ErrBarcodeTaken,
	services.ErrCategoryExists,
	services.ErrCategoryInUse,
	services.ErrDescriptionRequired,
}

// svcError maps a service failure onto the error taxonomy: validation 400,
// not-found 404, everything else a logged 500 with no internal detail.
func svcError(c *fiber.Ctx, action string, err error) error {
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return badRequest(c, err.Error())
		}
	}
	if repos.IsNotFound(err) {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	applog.Error(c, action, err, nil)
	return fail(c, fiber.StatusInternalServerError, "internal error")
}

// parseBody decodes and struct-validates a JSON request body.
func parseBody(c *fiber.Ctx, dst any) bool {
	if err := c.BodyParser(dst); err != nil {
		return false
	}
	return valid.Struct(dst) == nil
}
