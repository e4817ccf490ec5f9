package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bestiary-backend/internal/domains/creature/model"
	"bestiary-backend/internal/domains/creature/service"
	"bestiary-backend/internal/shared/middleware"
	"bestiary-backend/internal/shared/response"
)

// AdminCreatureHandler serves the management surface. Routes using it sit
// behind the admin-role middleware; it still reads the authenticated user
// for audit attribution.
type AdminCreatureHandler struct {
	service service.Service
}

func NewAdminCreatureHandler(svc service.Service) *AdminCreatureHandler {
	return &AdminCreatureHandler{service: svc}
}

// List - GET /api/v1/admin/creatures
//
// Same query surface as the public listing but the envelope reports only
// the matched count.
func (h *AdminCreatureHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	req, err := parseListQuery(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListCreatures(c.Request.Context(), userID, req)
	if err != nil {
		handleCreatureError(c, err)
		return
	}

	response.ListMatched(c, http.StatusOK, result.Items, result.MatchedCount)
}

// Create - POST /api/v1/admin/creatures
func (h *AdminCreatureHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	var req model.CreateCreatureRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	detail, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleCreatureError(c, err)
		return
	}

	response.Entity(c, http.StatusCreated, detail)
}

// Update - PUT /api/v1/admin/creatures/:id
func (h *AdminCreatureHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	creatureID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid creature id")
		return
	}

	var req model.UpdateCreatureRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Update(c.Request.Context(), userID, creatureID, &req); err != nil {
		handleCreatureError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "creature updated successfully")
}

// Delete - DELETE /api/v1/admin/creatures/:id
func (h *AdminCreatureHandler) Delete(c *gin.Context) {
	creatureID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid creature id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), creatureID); err != nil {
		handleCreatureError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "creature deleted successfully")
}
