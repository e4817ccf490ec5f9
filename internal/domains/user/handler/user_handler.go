package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bestiary-backend/internal/domains/user/model"
	"bestiary-backend/internal/domains/user/service"
	"bestiary-backend/internal/shared/middleware"
	"bestiary-backend/internal/shared/response"
	"bestiary-backend/pkg/logger"
)

type UserHandler struct {
	service service.Service
}

func NewUserHandler(svc service.Service) *UserHandler {
	return &UserHandler{service: svc}
}

// Register - POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.Entity(c, http.StatusCreated, resp)
}

// Login - POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.Entity(c, http.StatusOK, resp)
}

// GetProfile - GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	resp, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.Entity(c, http.StatusOK, resp)
}

func handleUserError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.As(err, &validationErrs):
		response.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrInvalidPassword):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, model.ErrDuplicateEmail), errors.Is(err, model.ErrDuplicateUsername):
		response.Conflict(c, err.Error())
	default:
		logger.Error("user handler error", err)
		response.InternalServerError(c, "internal server error")
	}
}
