package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/labelforge/api/internal/model"
	"github.com/labelforge/api/internal/service"
	"github.com/labelforge/api/pkg/response"
)

type PrintHandler struct {
	service   *service.PrintService
	validator *validator.Validate
}

func NewPrintHandler(svc *service.PrintService, v *validator.Validate) *PrintHandler {
	return &PrintHandler{
		service:   svc,
		validator: v,
	}
}

// Print handles POST /api/v1/print
func (h *PrintHandler) Print(c *fiber.Ctx) error {
	var req model.PrintRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.Print(c.Context(), &req)
	if err != nil {
		return printError(c, err)
	}

	return response.OK(c, result)
}

// printError maps pipeline error kinds onto HTTP statuses.
func printError(c *fiber.Ctx, err error) error {
	kind := model.KindOf(err)
	code := string(kind)
	msg := err.Error()

	switch kind {
	case model.ErrUnsupportedDPI:
		return response.Error(c, fiber.StatusBadRequest, code, msg, nil)
	case model.ErrSizeOutOfRange, model.ErrCanvasTooSmall, model.ErrLayoutDoesNotFit:
		return response.Unprocessable(c, code, msg)
	case model.ErrPrinterUnavailable:
		return response.Unavailable(c, code, msg)
	case model.ErrDispatchTimeout:
		return response.Timeout(c, code, msg)
	case model.ErrArtifactWriteFailed, model.ErrSubmissionFailed:
		return response.Error(c, fiber.StatusInternalServerError, code, msg, nil)
	default:
		return response.ServiceError(c, msg)
	}
}

// formatValidationErrors formats validator errors for response
func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}
