package response

import (
	"errors"

	"semdex-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// SuccessBody is the standardized success JSON shape.
type SuccessBody struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// ErrorBody is the standardized error JSON shape.
type ErrorBody struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

// ErrorDetail is the nested error object.
type ErrorDetail struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

const statusSuccess = "success"
const statusError = "error"

// Success sends a 200 OK response with the standard success format.
func Success(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return send(c, fiber.StatusOK, message, data, metadata)
}

// SuccessCreated sends a 201 Created response with the standard success format.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return send(c, fiber.StatusCreated, message, data, metadata)
}

func send(c *fiber.Ctx, code int, message string, data interface{}, metadata interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return c.Status(code).JSON(SuccessBody{
		Status:   statusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// Error sends a response with the standard error format.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	return c.Status(statusCode).JSON(ErrorBody{
		Status: statusError,
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
			Details:    details,
		},
	})
}

// Unauthorized sends 401 with the same shape as other errors.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized, nil)
}

// FromError maps the domain error taxonomy onto HTTP:
// validation 400, auth 401, not found 404, anything else is a store failure (500, not retried).
func FromError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	var aerr *domain.AuthError
	switch {
	case errors.As(err, &verr):
		details := map[string]interface{}{}
		if len(verr.Fields) > 0 {
			details["fields"] = verr.Fields
		}
		return Error(c, verr.Message, fiber.StatusBadRequest, details)
	case errors.Is(err, domain.ErrValidation):
		return Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.As(err, &aerr):
		return Unauthorized(c, aerr.Message)
	case errors.Is(err, domain.ErrAuth):
		return Unauthorized(c, "Not authenticated")
	case errors.Is(err, domain.ErrNotFound):
		return Error(c, err.Error(), fiber.StatusNotFound, nil)
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("store error")
	return Error(c, "Internal Server Error", fiber.StatusInternalServerError, map[string]interface{}{
		"cause": err.Error(),
	})
}
