package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bestiary-backend/internal/domains/creature/model"
	"bestiary-backend/internal/domains/creature/service"
	"bestiary-backend/internal/shared/middleware"
	"bestiary-backend/internal/shared/response"
	"bestiary-backend/pkg/imagecodec"
	"bestiary-backend/pkg/logger"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// CreatureHandler serves the read-only catalog surface available to any
// authenticated user.
type CreatureHandler struct {
	service service.Service
}

func NewCreatureHandler(svc service.Service) *CreatureHandler {
	return &CreatureHandler{service: svc}
}

// List - GET /api/v1/creatures
func (h *CreatureHandler) List(c *gin.Context) {
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

	response.List(c, http.StatusOK, result.Items, result.MatchedCount, result.TotalCount)
}

// GetDetails - GET /api/v1/creatures/:id
func (h *CreatureHandler) GetDetails(c *gin.Context) {
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

	detail, err := h.service.GetDetails(c.Request.Context(), userID, creatureID)
	if err != nil {
		handleCreatureError(c, err)
		return
	}

	response.Entity(c, http.StatusOK, detail)
}

// parseListQuery maps the listing query string onto a ListCreaturesRequest.
// Page and limit default rather than error when absent; latest must be
// RFC 3339 when present.
func parseListQuery(c *gin.Context) (*model.ListCreaturesRequest, error) {
	req := &model.ListCreaturesRequest{
		Name:  c.Query("name"),
		Page:  defaultPage,
		Limit: defaultLimit,
	}

	if raw := c.Query("latest"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.New("latest must be an RFC 3339 timestamp")
		}
		req.Latest = &t
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, errors.New("page must be a positive integer")
		}
		req.Page = page
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return nil, errors.New("limit must be a positive integer")
		}
		req.Limit = limit
	}

	req.OnlyFavorites = boolQuery(c, "onlyFavorites")
	req.ExcludeFavorites = boolQuery(c, "excludeFavorites")
	req.OfflineSnapshot = boolQuery(c, "offlineSnapshot")

	if req.OnlyFavorites && req.ExcludeFavorites {
		return nil, errors.New("onlyFavorites and excludeFavorites are mutually exclusive")
	}

	return req, nil
}

func boolQuery(c *gin.Context, key string) bool {
	return c.Query(key) == "true"
}

func handleCreatureError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.As(err, &validationErrs):
		response.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrCreatureNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrDuplicateName):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrUnsupportedImage),
		errors.Is(err, model.ErrImageTooLarge),
		errors.Is(err, model.ErrInvalidPageLimit),
		errors.Is(err, imagecodec.ErrMalformedDataURI):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("creature handler error", err)
		response.InternalServerError(c, "internal server error")
	}
}
