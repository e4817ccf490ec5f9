package response

import (
	"github.com/gin-gonic/gin"
)

// ListResponse is the envelope for paginated list endpoints. TotalCount is
// a pointer so endpoints that only report the filtered count can omit it.
type ListResponse struct {
	Data         interface{} `json:"data"`
	MatchedCount int64       `json:"matchedCount"`
	TotalCount   *int64      `json:"totalCount,omitempty"`
}

// List writes a list envelope with both the filtered and unfiltered counts.
func List(c *gin.Context, statusCode int, data interface{}, matched, total int64) {
	c.JSON(statusCode, ListResponse{
		Data:         data,
		MatchedCount: matched,
		TotalCount:   &total,
	})
}

// ListMatched writes a list envelope reporting only the filtered count.
func ListMatched(c *gin.Context, statusCode int, data interface{}, matched int64) {
	c.JSON(statusCode, ListResponse{
		Data:         data,
		MatchedCount: matched,
	})
}

// Entity writes a single entity as-is.
func Entity(c *gin.Context, statusCode int, entity interface{}) {
	c.JSON(statusCode, entity)
}

// Message writes a confirmation envelope.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// Error writes an error envelope.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 403, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 409, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, 500, message)
}
