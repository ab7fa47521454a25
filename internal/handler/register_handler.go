package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"user_register/internal/metrics"
	"user_register/internal/middleware"
	"user_register/internal/model"
	"user_register/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgRegistered     = "User registered successfully!"
	msgEmailExists    = "Email already exists"
	msgRegisterFailed = "Registration failed"
	msgInvalidBody    = "Invalid request body"
)

// RegisterHandler handles registration requests
type RegisterHandler struct {
	service service.RegisterService
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewRegisterHandler creates a new RegisterHandler
func NewRegisterHandler(s service.RegisterService, logger *slog.Logger, m *metrics.Metrics) *RegisterHandler {
	return &RegisterHandler{service: s, logger: logger, metrics: m}
}

func (h *RegisterHandler) Register(c *gin.Context) {
	// An empty body is treated as {} and left for the store to reject.
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.metrics.RecordRegistration(metrics.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			h.metrics.RecordRegistration(metrics.OutcomeDuplicate)
			h.logger.Info("registration rejected: email exists", "request_id", middleware.GetRequestID(c))
			c.JSON(http.StatusBadRequest, gin.H{"error": msgEmailExists})
			return
		}
		h.metrics.RecordRegistration(metrics.OutcomeFailed)
		h.logger.Error("registration error", "error", err, "request_id", middleware.GetRequestID(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgRegisterFailed})
		return
	}

	h.metrics.RecordRegistration(metrics.OutcomeCreated)
	c.JSON(http.StatusCreated, gin.H{"message": msgRegistered})
}

// RegisterRoutes registers the registration route
func (h *RegisterHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/register", h.Register)
}
