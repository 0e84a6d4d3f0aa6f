package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/rate_ledger/internal/apperrors"
	"github.com/SscSPs/rate_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RequireWriter rejects callers the write policy does not admit. It must run after
// AuthMiddleware.
func RequireWriter(policy domain.WritePolicy) gin.HandlerFunc {
	if policy == nil {
		policy = domain.AllowAllWriters
	}
	return func(c *gin.Context) {
		actor, ok := GetActorFromContext(c)
		if !ok || !policy(actor) {
			err := apperrors.NewAppError(http.StatusForbidden, "You are not allowed to record conversion rates", apperrors.ErrForbidden)
			GetLoggerFromContext(c).Warn("Write rejected by policy",
				slog.String("user_id", actor.ID), slog.String("role", actor.Role))
			c.AbortWithStatusJSON(apperrors.StatusCode(err), gin.H{"error": err.Message})
			return
		}
		c.Next()
	}
}
