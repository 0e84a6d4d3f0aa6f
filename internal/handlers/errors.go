package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/rate_ledger/internal/apperrors"
	"github.com/SscSPs/rate_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps err onto a status code. Validation failures echo their message;
// everything else answers with msg so driver details do not leak.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromContext(c)
	status := apperrors.StatusCode(err)

	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn(msg, slog.String("error", err.Error()))
		if errors.As(err, &appErr) {
			c.JSON(status, ErrorResponse{Error: appErr.Message})
			return
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrPersistence):
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: msg + ": rate store unavailable, please retry"})
	default:
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: msg})
	}
}

func badRequest(c *gin.Context, msg string, err error) {
	middleware.GetLoggerFromContext(c).Warn(msg, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg + ": " + err.Error()})
}
