// ===============================
// internal/handlers/respond.go - Shared Response Helpers
// ===============================

package handlers

import (
	"log"
	"net/http"
	"strconv"

	"videohub/internal/apperr"
	"videohub/internal/models"

	"github.com/gin-gonic/gin"
)

// respond writes the success envelope.
func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, models.APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// fail maps a service error to the error envelope. Internal causes are
// logged, never echoed to the client.
func fail(c *gin.Context, err error) {
	appErr := apperr.From(err)
	if appErr.Code == apperr.CodeInternal {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr)
	}

	c.JSON(appErr.HTTPStatus(), models.APIResponse{
		StatusCode: appErr.HTTPStatus(),
		Message:    appErr.Message,
		Success:    false,
	})
}

// pageParams reads page/limit query params with per-endpoint defaults.
func pageParams(c *gin.Context, defaultLimit, maxLimit int) models.PageParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	return models.NormalizePage(page, limit, defaultLimit, maxLimit)
}

// currentUserID returns the authenticated user id, empty for
// anonymous requests behind OptionalAuth.
func currentUserID(c *gin.Context) string {
	return c.GetString("userID")
}

// mustUserID aborts with 401 when no user is authenticated. Routes
// behind RequireAuth never hit the abort path.
func mustUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, models.APIResponse{
			StatusCode: http.StatusUnauthorized,
			Message:    "authentication required",
			Success:    false,
		})
		return "", false
	}
	return userID, true
}
