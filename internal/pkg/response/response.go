// Package response renders the JSON envelope every HTTP handler writes.
// The body carries the status code, a lowercase message and the payload in
// one shape for success and failure alike, so clients branch on the code
// without sniffing the body structure.
package response

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/utils/v2"
)

// SemanticResponse is the envelope for every API reply.
type SemanticResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Messages handlers pass explicitly. An empty message falls back to the
// lowercased registered text for the status code.
const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

// Success writes the envelope for a completed request.
func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, status, message, data)
}

// Error writes the envelope for a failed request. Data carries structured
// detail such as per-field validation errors, or nil.
func Error(c fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, status, message, data)
}

func write(c fiber.Ctx, status int, message string, data interface{}) error {
	if status < fiber.StatusContinue || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = fallbackMessage(status)
	}
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}

// fallbackMessage lowercases the registered status text so defaults line up
// with the Message constants. Codes outside the registry collapse to a
// generic message by class.
func fallbackMessage(status int) string {
	if text := utils.StatusMessage(status); text != "" {
		return strings.ToLower(text)
	}
	if status >= fiber.StatusInternalServerError {
		return MessageInternalServerError
	}
	return MessageError
}
