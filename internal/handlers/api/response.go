package api

import (
	"github.com/gofiber/fiber/v3"
)

// Envelope status values
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Envelope is the body of every JSON response the service sends, including
// errors raised outside the API handlers.
type Envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Success writes data in the envelope with the given status code.
func Success(c fiber.Ctx, code int, data any) error {
	return c.Status(code).JSON(Envelope{Status: StatusOK, Data: data})
}

// Failure writes an error message in the envelope with the given status code.
func Failure(c fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(Envelope{Status: StatusError, Error: message})
}
