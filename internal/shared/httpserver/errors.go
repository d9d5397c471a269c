package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const codeInternal = "INTERNAL_SERVER_ERROR"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ErrorHandler renders every error returned by a handler as an ErrorResponse.
// Errors outside the apperr taxonomy never leak their text.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := apperr.From(err); ok {
		status := statusOf(err)
		fields := []zap.Field{
			zap.String("code", appErr.Code.Name),
			zap.String("path", c.Path()),
			zap.Error(err),
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", fields...)
		} else {
			log.Warn("Request rejected", fields...)
		}
		return c.Status(status).JSON(ErrorResponse{
			Code:    appErr.Code.Name,
			Message: appErr.Message(),
			Status:  status,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse{
			Code:    codeFromStatus(fiberErr.Code),
			Message: fiberErr.Message,
			Status:  fiberErr.Code,
		})
	}

	log.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Code:    codeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
	})
}

// statusOf returns the HTTP status an error will be rendered with, or 0 if unknown.
func statusOf(err error) int {
	if appErr, ok := apperr.From(err); ok {
		if appErr.Code.Status == 0 {
			return http.StatusInternalServerError
		}
		return appErr.Code.Status
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return http.StatusInternalServerError
}

func codeFromStatus(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return codeInternal
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
