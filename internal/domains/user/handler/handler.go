package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/domains/user/service"
	"bookreview-backend/internal/shared/middleware"
	"bookreview-backend/internal/shared/response"
	"bookreview-backend/pkg/logger"
)

type UserHandler struct {
	service service.ServiceInterface
}

func NewUserHandler(service service.ServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// Register - POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	auth, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, auth)
}

// Login - POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// GetProfile - GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	principalID, ok := middleware.PrincipalID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), principalID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrUsernameTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, model.ErrAccountLocked):
		response.ErrorResponse(c, http.StatusTooManyRequests, "ACCOUNT_LOCKED", err.Error())
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", verrs)
			return
		}
		logger.Error("user operation failed", err)
		response.InternalServerError(c, "Internal server error")
	}
}
