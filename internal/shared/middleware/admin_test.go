package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bestiary-backend/internal/domains/user/model"
	"bestiary-backend/pkg/jwt"
)

func newAdminRouter(t *testing.T, manager *jwt.Manager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	admin := router.Group("/admin", AuthMiddleware(manager), RequireAdmin())
	admin.POST("/creatures", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"message": "created"})
	})
	return router
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newAdminRouter(t, manager)

	token, err := manager.GenerateToken(1, model.RoleAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/creatures", strings.NewReader(`{"Name":"Griffin"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

// A non-admin is refused with 403 before any payload handling, however
// well-formed the request body.
func TestRequireAdminRejectsUserRole(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newAdminRouter(t, manager)

	token, err := manager.GenerateToken(2, model.RoleUser)
	require.NoError(t, err)

	for _, body := range []string{`{"Name":"Griffin"}`, `{`, ``} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/creatures", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "admins only")
	}
}

func TestRequireAdminRejectsUnknownRole(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newAdminRouter(t, manager)

	token, err := manager.GenerateToken(3, "Moderator")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/creatures", strings.NewReader(`{"Name":"Griffin"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminWithoutAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// RequireAdmin mounted without AuthMiddleware has no role to check.
	router := gin.New()
	router.POST("/admin/creatures", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"message": "created"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/creatures", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
