package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/enhancify/auth-service/internal/core/domain"
	logicv1 "github.com/enhancify/auth-service/internal/logic/v1"
	"github.com/enhancify/auth-service/middleware"
)

// identityKey is the gin context key under which the gate stores the
// resolved identity.
const identityKey = "auth.identity"

const bearerPrefix = "Bearer "

// RequireAuth is the access gate: prefix middleware for any route requiring
// an authenticated identity. It extracts the bearer token, verifies it, and
// re-resolves the asserted username to a live identity record. Every failure
// aborts the request; a handler behind this gate never runs with a partially
// resolved identity.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := middleware.StartSpan(c.Request.Context(), "auth.gate", trace.WithAttributes(
			attribute.String("layer", "web"),
		))
		defer span.End()

		logger := zerolog.Ctx(ctx)

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			span.SetAttributes(attribute.Bool("auth.present", false))
			abortError(c, http.StatusUnauthorized, msgMissingToken)
			return
		}

		span.SetAttributes(attribute.Bool("auth.present", true))

		user, err := h.auth.VerifyToken(ctx, token)
		if err != nil {
			span.RecordError(err)
			logger.Warn().Err(err).Msg("Gate rejected request")

			if errors.Is(err, logicv1.ErrUserNotFound) {
				abortError(c, http.StatusNotFound, msgUserNotFound)
				return
			}
			abortError(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		span.SetAttributes(attribute.String("user.id", user.ID))

		c.Set(identityKey, user)
		c.Next()
	}
}

// Identity returns the identity the gate attached to the request, or nil
// when the route is not behind the gate.
func Identity(c *gin.Context) *domain.User {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	user, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

func abortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
