package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"internship-portal/internal/domain"
)

type ErrorResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
}

var notFoundMessages = []struct {
	err     error
	message string
}{
	{domain.ErrReportNotFound, "Weekly report not found"},
	{domain.ErrInternshipNotFound, "Student internship record not found."},
	{domain.ErrNotificationNotFound, "Notification not found"},
}

// ErrorHandler translates domain errors into the response envelope. Anything
// unrecognised is logged and answered with a generic 500.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		var fields map[string]string

		var ve *domain.ValidationError
		var fe *fiber.Error

		switch {
		case errors.As(err, &ve):
			code = fiber.StatusBadRequest
			message = ve.Message
			fields = ve.Fields
		case errors.Is(err, domain.ErrReportNotAssigned):
			code = fiber.StatusNotFound
			message = domain.ErrReportNotAssigned.Error()
		case errors.Is(err, domain.ErrNotFound):
			code = fiber.StatusNotFound
			message = "Resource not found"
			for _, nf := range notFoundMessages {
				if errors.Is(err, nf.err) {
					message = nf.message
					break
				}
			}
		case errors.Is(err, domain.ErrEmailExists):
			code = fiber.StatusConflict
			message = "Email already registered"
		case errors.Is(err, domain.ErrUsernameExists):
			code = fiber.StatusConflict
			message = "Username already taken"
		case errors.As(err, &fe):
			code = fe.Code
			message = fe.Message
		}

		requestID, _ := c.Locals("requestid").(string)
		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("request_id", requestID),
				zap.Error(err))
		}

		return c.Status(code).JSON(ErrorResponse{
			Success:   false,
			Message:   message,
			Errors:    fields,
			RequestID: requestID,
		})
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}
