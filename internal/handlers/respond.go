package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/GioRdrz/food-delivery/internal/apperr"
)

// respondError translates a service error into its stable HTTP status and
// reason string. Internal errors are logged with their cause but surfaced
// with a generic message.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if apperr.KindOf(err) == apperr.Internal {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": apperr.Reason(err)})
}
