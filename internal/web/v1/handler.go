// Package v1 exposes the HTTP surface of the auth service. It owns the
// single translation point from the logic layer's error taxonomy to HTTP
// statuses and user-facing messages; no other layer formats responses.
package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/enhancify/auth-service/internal/core/domain"
	logicv1 "github.com/enhancify/auth-service/internal/logic/v1"
	"github.com/enhancify/auth-service/middleware"
)

// User-facing messages, kept stable for existing clients.
const (
	msgSignedUp    = "User Signed Up Successfully"
	msgLoggedIn    = "User Logged in Successfully"
	msgUserFetched = "User details fetched Successfully"

	msgUserExists   = "User Already Exists"
	msgUserNotFound = "User not Signed Up"
	msgUnauthorized = "Unauthorized Access"
	msgMissingToken = "Missing JWT Token"
	msgInvalidToken = "Invalid JWT Token"
	msgInternal     = "Internal server error"
)

// Handler groups the HTTP handlers for the users API.
// Dependencies are injected via the constructor — no global state.
type Handler struct {
	auth *logicv1.AuthService
}

// NewHandler creates a new Handler backed by the given AuthService.
func NewHandler(auth *logicv1.AuthService) *Handler {
	return &Handler{auth: auth}
}

// RegisterRoutes registers the users routes on the given router group.
// The :id route sits behind the access gate.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.Signup)
	rg.POST("/login", h.Login)
	rg.GET("/:id", h.RequireAuth(), h.GetUser)
}

// Signup handles POST /users/signup.
func (h *Handler) Signup(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		logger.Warn().Err(err).Msg("Invalid signup request")
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	span.SetAttributes(attribute.Bool("request.valid", true))

	if err := h.auth.Register(ctx, req); err != nil {
		span.RecordError(err)
		logger.Error().Err(err).Str("username", req.Username).Msg("Signup failed")
		h.respondServiceError(c, err)
		return
	}

	logger.Info().Str("username", req.Username).Msg("User registered")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msgSignedUp,
	})
}

// Login handles POST /users/login.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		logger.Warn().Err(err).Msg("Invalid login request")
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	span.SetAttributes(attribute.Bool("request.valid", true))

	token, err := h.auth.Login(ctx, req)
	if err != nil {
		span.RecordError(err)
		logger.Error().Err(err).Str("username", req.Username).Msg("Login failed")
		h.respondServiceError(c, err)
		return
	}

	logger.Info().Str("username", req.Username).Msg("User logged in")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msgLoggedIn,
		"token":   token,
	})
}

// GetUser handles GET /users/:id. The access gate has already verified the
// bearer token by the time this runs; the id lookup is still its own step
// and can miss independently.
func (h *Handler) GetUser(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)
	requester := Identity(c)

	user, err := h.auth.GetUser(ctx, c.Param("id"))
	if err != nil {
		span.RecordError(err)
		logger.Warn().Err(err).Msg("User lookup failed")
		h.respondServiceError(c, err)
		return
	}

	logger.Info().
		Str("user_id", user.ID).
		Str("requester", requester.Username).
		Msg("User fetched")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msgUserFetched,
		"user":    user,
	})
}

// respondServiceError maps the logic layer's sentinel errors to HTTP
// statuses. Anything outside the taxonomy is an internal error and leaks no
// detail to the client.
func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, logicv1.ErrUserExists):
		respondError(c, http.StatusConflict, msgUserExists)
	case errors.Is(err, logicv1.ErrUserNotFound):
		respondError(c, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, logicv1.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, logicv1.ErrInvalidToken):
		respondError(c, http.StatusUnauthorized, msgInvalidToken)
	case errors.Is(err, logicv1.ErrMissingToken):
		respondError(c, http.StatusUnauthorized, msgMissingToken)
	default:
		respondError(c, http.StatusInternalServerError, msgInternal)
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
