package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bestiary-backend/internal/domains/favourite/model"
	"bestiary-backend/internal/domains/favourite/service"
	"bestiary-backend/internal/shared/middleware"
	"bestiary-backend/internal/shared/response"
	"bestiary-backend/pkg/imagecodec"
	"bestiary-backend/pkg/logger"
)

type FavouriteHandler struct {
	service service.Service
}

func NewFavouriteHandler(svc service.Service) *FavouriteHandler {
	return &FavouriteHandler{service: svc}
}

// Add - POST /api/v1/favourites
func (h *FavouriteHandler) Add(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	var req model.AddFavouriteRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Add(c.Request.Context(), userID, &req)
	if err != nil {
		handleFavouriteError(c, err)
		return
	}

	response.Entity(c, http.StatusCreated, resp)
}

// Remove - DELETE /api/v1/favourites/:creatureId
func (h *FavouriteHandler) Remove(c *gin.Context) {
	userID, creatureID, ok := h.scope(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, creatureID); err != nil {
		handleFavouriteError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "favourite removed successfully")
}

// SetBackground - PUT /api/v1/favourites/:creatureId/background
func (h *FavouriteHandler) SetBackground(c *gin.Context) {
	userID, creatureID, ok := h.scope(c)
	if !ok {
		return
	}

	var req model.SetBackgroundRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.SetBackground(c.Request.Context(), userID, creatureID, &req); err != nil {
		handleFavouriteError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "background updated successfully")
}

// ClearBackground - DELETE /api/v1/favourites/:creatureId/background
func (h *FavouriteHandler) ClearBackground(c *gin.Context) {
	userID, creatureID, ok := h.scope(c)
	if !ok {
		return
	}

	if err := h.service.ClearBackground(c.Request.Context(), userID, creatureID); err != nil {
		handleFavouriteError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "background reset to default")
}

// GetBackground - GET /api/v1/favourites/:creatureId/background
func (h *FavouriteHandler) GetBackground(c *gin.Context) {
	userID, creatureID, ok := h.scope(c)
	if !ok {
		return
	}

	resp, err := h.service.GetBackground(c.Request.Context(), userID, creatureID)
	if err != nil {
		handleFavouriteError(c, err)
		return
	}

	response.Entity(c, http.StatusOK, resp)
}

// scope extracts the authenticated user and the creature id path param.
func (h *FavouriteHandler) scope(c *gin.Context) (int64, int64, bool) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return 0, 0, false
	}

	creatureID, err := strconv.ParseInt(c.Param("creatureId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid creature id")
		return 0, 0, false
	}

	return userID, creatureID, true
}

func handleFavouriteError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.As(err, &validationErrs):
		response.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrFavouriteNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrUnsupportedImage),
		errors.Is(err, model.ErrImageTooLarge),
		errors.Is(err, imagecodec.ErrMalformedDataURI):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("favourite handler error", err)
		response.InternalServerError(c, "internal server error")
	}
}
