package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// HandleError writes the standard error envelope for an error. Every API
// error leaves the server as {"success": false, "message": ...}; wrapped
// causes stay in the server log.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error",
			"code", appErr.Code,
			"error", appErr.Error(),
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(appErr.HTTPCode, gin.H{
		"success": false,
		"message": appErr.Message,
	})
}
